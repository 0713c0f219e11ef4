package fs

import (
	"bytes"
	"strings"

	"github.com/fwojciec/searchcheck"
	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// ParseFrontMatter extracts the "---" delimited block at the start of a
// markdown document. A document without front matter yields an empty
// FrontMatter.
//
// The block is decoded as YAML where possible. Site authors write it as
// "key: value" lines, so a block that is not valid YAML, or a value that
// YAML reads as a list or map (such as "title: [WIP] guide"), falls back
// to splitting the line at its first colon.
func ParseFrontMatter(content []byte) (*searchcheck.FrontMatter, error) {
	fm := &searchcheck.FrontMatter{}

	content = bytes.ReplaceAll(trimBOM(content), []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, delimiter) {
		return fm, nil
	}

	rest := content[len(delimiter):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm, nil
	}
	rest = rest[nl+1:]

	// Prepend a newline so an empty block ("---\n---") is found too.
	padded := append([]byte{'\n'}, rest...)
	end := bytes.Index(padded, []byte("\n---"))
	if end < 0 {
		return fm, nil
	}
	block := padded[:end]
	lines := parseLines(block)

	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		for key, value := range lines {
			setField(fm, key, value)
		}
		finishDate(fm, lines)
		return fm, nil
	}
	if len(doc.Content) == 0 {
		return fm, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, searchcheck.Errorf(searchcheck.EINVALID, "front matter: expected key: value lines")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind == yaml.ScalarNode {
			setField(fm, key.Value, value.Value)
		} else if raw, ok := lines[key.Value]; ok {
			setField(fm, key.Value, raw)
		}
	}
	finishDate(fm, lines)

	return fm, nil
}

// parseLines reads "key: value" lines, splitting at the first colon.
// Surrounding quotes are removed from values; later keys win.
func parseLines(block []byte) map[string]string {
	m := make(map[string]string)
	for _, line := range strings.Split(string(block), "\n") {
		i := strings.Index(line, ":")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		if key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		m[key] = unquote(strings.TrimSpace(line[i+1:]))
	}
	return m
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func setField(fm *searchcheck.FrontMatter, key, value string) {
	switch key {
	case "title":
		fm.Title = value
	case "category":
		fm.Category = value
	case "difficulty":
		fm.Difficulty = value
	case "time":
		fm.Time = value
	case "date":
		fm.Date = value
	case "description":
		fm.Description = value
	}
}

// finishDate falls back to last_updated when no date is given.
func finishDate(fm *searchcheck.FrontMatter, lines map[string]string) {
	if fm.Date == "" {
		fm.Date = lines["last_updated"]
	}
}
