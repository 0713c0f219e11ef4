package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/fwojciec/searchcheck"
)

// Ensure SourceReader implements searchcheck.SourceReader at compile time.
var _ searchcheck.SourceReader = (*SourceReader)(nil)

// SourceReader reads UTF-8 text files from disk.
type SourceReader struct{}

// NewSourceReader creates a new SourceReader.
func NewSourceReader() *SourceReader {
	return &SourceReader{}
}

// ReadSource returns the content of the file at path.
func (r *SourceReader) ReadSource(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", searchcheck.Errorf(searchcheck.ENOTFOUND, "%s: no such file", path)
	} else if err != nil {
		return "", err
	}

	b = trimBOM(b)
	if !utf8.Valid(b) {
		return "", searchcheck.Errorf(searchcheck.EINVALID, "%s: not valid UTF-8", path)
	}
	return string(b), nil
}
