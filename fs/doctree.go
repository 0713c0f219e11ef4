// Package fs provides file-based access to the documentation site:
// the markdown tree under the docs directory and the search script source.
package fs

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/searchcheck"
)

// Ensure DocTree implements searchcheck.DocTree at compile time.
var _ searchcheck.DocTree = (*DocTree)(nil)

// markdownPattern matches markdown files at any depth.
const markdownPattern = "**/*.md"

// DocTree reads markdown files below a root directory.
type DocTree struct {
	root string
	fsys fs.FS
}

// NewDocTree creates a DocTree rooted at dir.
func NewDocTree(dir string) *DocTree {
	return &DocTree{
		root: dir,
		fsys: os.DirFS(dir),
	}
}

// ListMarkdown returns the slash-separated paths of all markdown files
// below the root, sorted.
func (t *DocTree) ListMarkdown(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(t.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, searchcheck.Errorf(searchcheck.ENOTFOUND, "%s: no such directory", t.root)
	} else if err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, searchcheck.Errorf(searchcheck.EINVALID, "%s: not a directory", t.root)
	}

	names, err := doublestar.Glob(t.fsys, markdownPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ReadFrontMatter reads the named file and parses its front matter.
func (t *DocTree) ReadFrontMatter(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !fs.ValidPath(name) {
		return nil, searchcheck.Errorf(searchcheck.EINVALID, "%s: invalid path", name)
	}

	b, err := fs.ReadFile(t.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, searchcheck.Errorf(searchcheck.ENOTFOUND, "%s: no such file", name)
	} else if err != nil {
		return nil, err
	}

	return ParseFrontMatter(b)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// trimBOM removes a leading UTF-8 byte order mark.
func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, utf8BOM)
}
