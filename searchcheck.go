// Package searchcheck verifies that a static documentation site's
// client-side search indexes files located in nested folders.
// It inspects the site's config.json, checks the search script for known
// fixes, probes for a local development server and drives a short manual
// verification session against the search-results page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, rod/, goquery/, ojg/).
package searchcheck
