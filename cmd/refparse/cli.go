package main

import (
	"context"
	"io"
)

// Dependencies holds shared configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Parse ParseCmd `cmd:"" help:"Extract references from fetched document files"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Files       []string `arg:"" type:"existingfile" help:"Document files to parse"`
	Charset     string   `default:"utf-8" help:"Charset the documents were served with"`
	BaseURL     string   `name:"base-url" default:"http://localhost/" help:"URL the documents were fetched from"`
	RedirectURL string   `name:"redirect-url" help:"Final URL after redirects; overrides the base"`
	Format      string   `default:"auto" enum:"auto,html,xml,text" help:"Document format (auto maps by file extension)"`
	JSON        bool     `help:"Emit JSON instead of plain text"`
	Emails      bool     `help:"Include email addresses in the output"`
	Unique      bool     `help:"Suppress URLs already seen in earlier files"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent parse limit"`
	Verbose     bool     `short:"v" help:"Log extraction details to stderr"`
}
