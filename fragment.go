package searchcheck

import (
	"context"
	"strings"
)

// Fragment is a literal snippet expected to appear in the search script.
// Fragments guard against regressions of specific fixes; they are matched
// as plain substrings, so any reformatting of the checked line breaks them.
type Fragment struct {
	Label   string
	Snippet string
}

// FragmentResult reports whether a single fragment was found.
type FragmentResult struct {
	Fragment Fragment
	Found    bool
}

// DefaultFragments are the fixes that let search resolve files in nested
// folders.
var DefaultFragments = []Fragment{
	{
		Label:   "viewerUrl uses relative path",
		Snippet: "const viewerUrl = `docs/viewer.html?file=${encodeURIComponent(relativePath)}`;",
	},
	{
		Label:   "parseMetadataWithConfig accepts full path",
		Snippet: "async parseMetadataWithConfig(content, fileName, fullPath)",
	},
	{
		Label:   "getTutorialFilesFromConfig deduplicates files",
		Snippet: "const processedFiles = new Set();",
	},
	{
		Label:   "full file path kept for matching",
		Snippet: "filePath: file // 保存完整文件路径用于后续匹配",
	},
}

// CheckFragments tests content for each fragment in order.
func CheckFragments(content string, fragments []Fragment) []FragmentResult {
	results := make([]FragmentResult, 0, len(fragments))
	for _, f := range fragments {
		results = append(results, FragmentResult{
			Fragment: f,
			Found:    strings.Contains(content, f.Snippet),
		})
	}
	return results
}

// AllFound reports whether every result was found.
// An empty result set counts as found.
func AllFound(results []FragmentResult) bool {
	for _, r := range results {
		if !r.Found {
			return false
		}
	}
	return true
}

// SourceReader reads the text of a source file.
type SourceReader interface {
	// ReadSource returns the file content.
	// Returns ENOTFOUND if the file does not exist and EINVALID if it is
	// not valid UTF-8.
	ReadSource(ctx context.Context, path string) (string, error)
}
