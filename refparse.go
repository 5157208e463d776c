// Package refparse recovers hyperlink references from fetched document
// bodies. Given a raw body, a declared charset, and the URL it was fetched
// from, the package yields de-duplicated, normalized URLs together with
// forms, emails, comments, scripts, and meta tags where the document format
// supports them. It never fetches anything itself.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, charset/).
package refparse
