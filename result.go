package searchcheck

import "strings"

// SearchResult is a single hit rendered on the search-results page.
type SearchResult struct {
	// Title is the visible text of the result link.
	Title string

	// Href is the link target as written in the page.
	Href string

	// File is the decoded documentation path the link opens in the viewer.
	// Empty when the link does not point at the viewer.
	File string
}

// Nested reports whether the result opens a file inside a sub-folder of
// the docs directory.
func (r SearchResult) Nested() bool {
	return strings.Contains(strings.Trim(r.File, "/"), "/")
}

// ResultExtractor finds search results in a rendered search-results page.
type ResultExtractor interface {
	ExtractResults(html string) ([]SearchResult, error)
}
