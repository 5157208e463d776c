package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/refparse"
	"github.com/fwojciec/refparse/bloom"
	xmlparser "github.com/fwojciec/refparse/etree"
	htmlparser "github.com/fwojciec/refparse/goquery"
	"github.com/fwojciec/refparse/parser"
	refslog "github.com/fwojciec/refparse/slog"
)

// seenCapacity sizes the cross-file dedup filter; a session parsing more
// URLs than this only risks a slightly higher false positive rate.
const seenCapacity = 100000

type report struct {
	File   string   `json:"file"`
	Parsed []string `json:"parsed"`
	Regex  []string `json:"regex"`
	Emails []string `json:"emails,omitempty"`
}

// Run executes the parse command: one parser instance per file, fanned out
// up to the concurrency limit. Parser instances share nothing, so no
// coordination is needed beyond collecting the reports.
func (c *ParseCmd) Run(deps *Dependencies) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	baseURL, err := refparse.ParseURL(c.BaseURL, c.Charset)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	var redirectURL *refparse.URL
	if c.RedirectURL != "" {
		redirectURL, err = refparse.ParseURL(c.RedirectURL, c.Charset)
		if err != nil {
			return fmt.Errorf("invalid redirect URL: %w", err)
		}
	}

	reports := make([]*report, len(c.Files))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, file := range c.Files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := c.parseFile(file, baseURL, redirectURL, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if c.Unique {
		seen := bloom.NewSeen(seenCapacity, 0.001)
		for _, r := range reports {
			r.Parsed = dropSeen(seen, r.Parsed)
			r.Regex = dropSeen(seen, r.Regex)
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for _, r := range reports {
		printReport(deps, r)
	}
	return nil
}

func (c *ParseCmd) parseFile(file string, baseURL, redirectURL *refparse.URL, logger *slog.Logger) (*report, error) {
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	doc := &refparse.Document{
		Body:        body,
		Charset:     c.Charset,
		URL:         baseURL,
		RedirectURL: redirectURL,
	}

	var p refparse.DocumentParser
	switch c.formatFor(file) {
	case "html":
		p, err = htmlparser.NewParser(doc)
	case "xml":
		p, err = xmlparser.NewParser(doc)
	default:
		p, err = parser.NewTextParser(doc)
	}
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		p = refslog.NewLoggingParser(p, logger.With("file", file))
	}

	parsed, regex := p.References()
	r := &report{
		File:   file,
		Parsed: urlStrings(parsed),
		Regex:  urlStrings(regex),
	}
	if c.Emails {
		r.Emails = p.Emails("")
	}
	return r, nil
}

func (c *ParseCmd) formatFor(file string) string {
	if c.Format != "auto" {
		return c.Format
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".html", ".htm", ".xhtml":
		return "html"
	case ".xml", ".rss", ".atom", ".svg":
		return "xml"
	default:
		return "text"
	}
}

func urlStrings(urls []*refparse.URL) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, u.String())
	}
	return out
}

func dropSeen(seen *bloom.Seen, urls []string) []string {
	out := urls[:0]
	for _, u := range urls {
		if !seen.Check(u) {
			out = append(out, u)
		}
	}
	return out
}

func printReport(deps *Dependencies, r *report) {
	fmt.Fprintln(deps.Stdout, r.File)
	for _, u := range r.Parsed {
		fmt.Fprintf(deps.Stdout, "  %s\n", u)
	}
	for _, u := range r.Regex {
		fmt.Fprintf(deps.Stdout, "  %s (regex)\n", u)
	}
	for _, e := range r.Emails {
		fmt.Fprintf(deps.Stdout, "  %s (email)\n", e)
	}
}
