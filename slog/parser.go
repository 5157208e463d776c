// Package slog provides logging decorators for refparse interfaces. The
// library itself never logs — per-candidate discards are silent by contract
// — so observability is layered on from outside with these wrappers.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/refparse"
)

// Ensure LoggingParser implements refparse.DocumentParser.
var _ refparse.DocumentParser = (*LoggingParser)(nil)

// LoggingParser wraps a DocumentParser with debug logging of result sizes.
type LoggingParser struct {
	next   refparse.DocumentParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next refparse.DocumentParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// References delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) References() (parsed []*refparse.URL, regex []*refparse.URL) {
	defer func(begin time.Time) {
		p.logger.Debug("references",
			"parsed", len(parsed),
			"regex", len(regex),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.References()
}

// Forms delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Forms() (forms []refparse.Form) {
	defer func() { p.logger.Debug("forms", "count", len(forms)) }()
	return p.next.Forms()
}

// Emails delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Emails(domain string) (emails []string) {
	defer func() { p.logger.Debug("emails", "domain", domain, "count", len(emails)) }()
	return p.next.Emails(domain)
}

// Comments delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Comments() (comments []string) {
	defer func() { p.logger.Debug("comments", "count", len(comments)) }()
	return p.next.Comments()
}

// Scripts delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Scripts() (scripts []string) {
	defer func() { p.logger.Debug("scripts", "count", len(scripts)) }()
	return p.next.Scripts()
}

// MetaRedirects delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) MetaRedirects() (redirects []*refparse.URL) {
	defer func() { p.logger.Debug("meta redirects", "count", len(redirects)) }()
	return p.next.MetaRedirects()
}

// MetaTags delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) MetaTags() (tags []refparse.MetaTag) {
	defer func() { p.logger.Debug("meta tags", "count", len(tags)) }()
	return p.next.MetaTags()
}
