package searchcheck

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultQueries are sample queries whose matches live in nested folders.
var DefaultQueries = []string{
	"贡献者",
	"新人",
	"Topic",
	"Mod",
}

// DefaultQueryHints describe where each default query's matches live.
var DefaultQueryHints = map[string]string{
	"贡献者":   "should find files in the '给贡献者阅读的文章' folder",
	"新人":    "should find files in the 'Modder入门' folder",
	"Topic": "should find 'TopicSystem使用指南.md'",
}

// SearchURL returns the search-results URL for query on the server at base.
func SearchURL(base, searchPath, query string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteString("/")
	b.WriteString(strings.TrimLeft(searchPath, "/"))
	b.WriteString("?q=")
	b.WriteString(EscapeQuery(query))
	return b.String()
}

// EscapeQuery percent-encodes a query for use as a URL parameter value.
// The query is NFC-normalized first so composed and decomposed forms of the
// same text produce the same URL. Every byte outside the RFC 3986 unreserved
// set and "/" is encoded, so spaces become %20 and "&", "=", "+" cannot leak
// into the query string.
func EscapeQuery(q string) string {
	q = norm.NFC.String(q)

	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(q) * 3)
	for i := 0; i < len(q); i++ {
		c := q[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
