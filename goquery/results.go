// Package goquery implements searchcheck.ResultExtractor using
// github.com/PuerkitoBio/goquery to read rendered search-results pages.
package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/searchcheck"
)

// Ensure ResultExtractor implements searchcheck.ResultExtractor at compile time.
var _ searchcheck.ResultExtractor = (*ResultExtractor)(nil)

// viewerPage is the page search results link to.
const viewerPage = "viewer.html"

// DefaultContainers are the selectors tried, in order, to locate the
// result list. The first one present in the page scopes the search.
var DefaultContainers = []string{
	"#search-results",
	".search-results",
	"#results",
	"main",
}

// ResultExtractor finds links to the document viewer on a search-results page.
type ResultExtractor struct {
	containers []string
}

// NewResultExtractor creates a ResultExtractor. If no containers are given,
// DefaultContainers are used.
func NewResultExtractor(containers ...string) *ResultExtractor {
	if len(containers) == 0 {
		containers = DefaultContainers
	}
	return &ResultExtractor{containers: containers}
}

// ExtractResults returns viewer links in document order, deduplicated by href.
func (e *ResultExtractor) ExtractResults(html string) ([]searchcheck.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, searchcheck.Errorf(searchcheck.EINVALID, "failed to parse HTML: %v", err)
	}

	scope := doc.Selection
	for _, sel := range e.containers {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			scope = found
			break
		}
	}

	seen := make(map[string]bool)
	var results []searchcheck.SearchResult
	scope.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		file := ViewerFile(href)
		if file == "" || seen[href] {
			return
		}
		seen[href] = true

		results = append(results, searchcheck.SearchResult{
			Title: strings.Join(strings.Fields(a.Text()), " "),
			Href:  href,
			File:  file,
		})
	})

	return results, nil
}

// ViewerFile returns the decoded file parameter of a link to the document
// viewer, or "" if href does not point at the viewer.
func ViewerFile(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if path.Base(u.Path) != viewerPage {
		return ""
	}
	return u.Query().Get("file")
}
