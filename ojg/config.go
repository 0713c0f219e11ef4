// Package ojg implements searchcheck.ConfigLoader on top of the
// github.com/ohler55/ojg JSON parser and JSONPath evaluator.
package ojg

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/fwojciec/searchcheck"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Ensure ConfigLoader implements searchcheck.ConfigLoader at compile time.
var _ searchcheck.ConfigLoader = (*ConfigLoader)(nil)

var (
	allFilesPath   = jp.MustParseString("$.all_files")
	categoriesPath = jp.MustParseString("$.categories")
	topicsPath     = jp.MustParseString("$.topics")
	filesPath      = jp.MustParseString("$.files")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ConfigLoader reads the site configuration document from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new ConfigLoader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// LoadConfig reads and decodes the configuration document at path.
func (l *ConfigLoader) LoadConfig(ctx context.Context, path string) (*searchcheck.SiteConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, searchcheck.Errorf(searchcheck.ENOTFOUND, "%s: no such file", path)
	} else if err != nil {
		return nil, err
	}

	b = bytes.TrimPrefix(b, utf8BOM)
	if !utf8.Valid(b) {
		return nil, searchcheck.Errorf(searchcheck.EINVALID, "%s: not valid UTF-8", path)
	}

	data, err := oj.Parse(b)
	if err != nil {
		return nil, searchcheck.Errorf(searchcheck.EINVALID, "%s: %v", path, err)
	}

	return Decode(data), nil
}

// Decode maps a generic JSON value onto a SiteConfig. Keys that are
// missing or hold values of an unexpected type are treated as absent.
func Decode(data any) *searchcheck.SiteConfig {
	cfg := &searchcheck.SiteConfig{}

	if list, ok := allFilesPath.First(data).([]any); ok {
		cfg.HasAllFiles = true
		cfg.AllFiles = decodeFiles(list)
	}

	categories, ok := categoriesPath.First(data).(map[string]any)
	cfg.HasCategories = ok
	for _, name := range sortedKeys(categories) {
		cat := searchcheck.Category{Name: name}

		topics, _ := topicsPath.First(categories[name]).(map[string]any)
		for _, topicName := range sortedKeys(topics) {
			files, _ := filesPath.First(topics[topicName]).([]any)
			cat.Topics = append(cat.Topics, searchcheck.Topic{
				Name:  topicName,
				Files: decodeFiles(files),
			})
		}

		cfg.Categories = append(cfg.Categories, cat)
	}

	return cfg
}

func decodeFiles(list []any) []searchcheck.FileDescriptor {
	files := make([]searchcheck.FileDescriptor, 0, len(list))
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		files = append(files, searchcheck.FileDescriptor{
			Path:     stringField(m, "path"),
			Filename: stringField(m, "filename"),
			Title:    stringField(m, "title"),
		})
	}
	return files
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
