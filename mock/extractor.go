package mock

import "github.com/fwojciec/searchcheck"

var _ searchcheck.ResultExtractor = (*ResultExtractor)(nil)

// ResultExtractor is a mock implementation of searchcheck.ResultExtractor.
type ResultExtractor struct {
	ExtractResultsFn func(html string) ([]searchcheck.SearchResult, error)
}

func (e *ResultExtractor) ExtractResults(html string) ([]searchcheck.SearchResult, error) {
	return e.ExtractResultsFn(html)
}
