// Package yaml loads searchcheck.Settings from YAML files using
// gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"os"
	"time"

	"github.com/fwojciec/searchcheck"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is looked up in the working directory when no
// settings file is named explicitly.
const DefaultSettingsFile = ".searchcheck.yaml"

// settingsFile mirrors searchcheck.Settings. Pointer and nil-able fields
// distinguish absent keys from zero values.
type settingsFile struct {
	ConfigPath *string           `yaml:"config_path"`
	ScriptPath *string           `yaml:"script_path"`
	DocsDir    *string           `yaml:"docs_dir"`
	IndexFile  *string           `yaml:"index_file"`
	Servers    []string          `yaml:"servers"`
	SearchPath *string           `yaml:"search_path"`
	Queries    []string          `yaml:"queries"`
	Hints      map[string]string `yaml:"hints"`
	Fragments  []fragmentFile    `yaml:"fragments"`
	Timeout    *string           `yaml:"timeout"`
}

type fragmentFile struct {
	Label   string `yaml:"label"`
	Snippet string `yaml:"snippet"`
}

// LoadSettings reads the file at path and applies its keys on top of base.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot
// be decoded or contains unknown keys.
func LoadSettings(path string, base searchcheck.Settings) (searchcheck.Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, searchcheck.Errorf(searchcheck.ENOTFOUND, "settings file %s not found", path)
	} else if err != nil {
		return base, searchcheck.Errorf(searchcheck.EINTERNAL, "read settings %s: %v", path, err)
	}
	return DecodeSettings(data, base)
}

// DecodeSettings applies the YAML document in data on top of base.
// An empty document leaves base unchanged.
func DecodeSettings(data []byte, base searchcheck.Settings) (searchcheck.Settings, error) {
	var f settingsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return base, searchcheck.Errorf(searchcheck.EINVALID, "settings: %v", err)
	}

	s := base
	s.Servers = append([]string(nil), base.Servers...)
	s.Queries = append([]string(nil), base.Queries...)
	s.Fragments = append([]searchcheck.Fragment(nil), base.Fragments...)
	s.Hints = maps.Clone(base.Hints)

	setString(&s.ConfigPath, f.ConfigPath)
	setString(&s.ScriptPath, f.ScriptPath)
	setString(&s.DocsDir, f.DocsDir)
	setString(&s.IndexFile, f.IndexFile)
	setString(&s.SearchPath, f.SearchPath)
	if f.Servers != nil {
		s.Servers = f.Servers
	}
	if f.Queries != nil {
		s.Queries = f.Queries
	}
	if f.Hints != nil {
		s.Hints = f.Hints
	}
	if f.Fragments != nil {
		s.Fragments = make([]searchcheck.Fragment, 0, len(f.Fragments))
		for i, fr := range f.Fragments {
			if fr.Snippet == "" {
				return base, searchcheck.Errorf(searchcheck.EINVALID, "settings: fragment %d has no snippet", i+1)
			}
			label := fr.Label
			if label == "" {
				label = fr.Snippet
			}
			s.Fragments = append(s.Fragments, searchcheck.Fragment{Label: label, Snippet: fr.Snippet})
		}
	}
	if f.Timeout != nil {
		d, err := time.ParseDuration(*f.Timeout)
		if err != nil {
			return base, searchcheck.Errorf(searchcheck.EINVALID, "settings: timeout: %v", err)
		}
		s.Timeout = d
	}

	if err := s.Validate(); err != nil {
		return base, err
	}
	return s, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
