package searchcheck

import (
	"maps"
	"time"
)

// Default settings values.
const (
	DefaultConfigPath = "docs/config.json"
	DefaultScriptPath = "assets/js/search.js"
	DefaultDocsDir    = "docs"
	DefaultSearchPath = "/search-results.html"
	DefaultIndexFile  = "tutorial-index.md"
	DefaultTimeout    = 5 * time.Second
)

// DefaultServers are the candidate development servers, probed in order.
var DefaultServers = []string{
	"http://localhost:8080",
	"http://localhost:8050",
}

// Settings controls what the checker inspects and where it looks.
type Settings struct {
	// ConfigPath is the site configuration document.
	ConfigPath string

	// ScriptPath is the client-side search script checked for fragments.
	ScriptPath string

	// DocsDir is the directory holding the markdown files listed in the
	// configuration. An empty DocsDir disables the docs-tree audit.
	DocsDir string

	// IndexFile is a generated file inside DocsDir that is never expected
	// to be listed in the configuration.
	IndexFile string

	// Servers are candidate base URLs, probed in order.
	Servers []string

	// SearchPath is the search-results page on the server.
	SearchPath string

	// Queries are the sample search queries.
	Queries []string

	// Hints describe the expected matches per query in the manual guide.
	Hints map[string]string

	// Fragments are the literal snippets expected in the search script.
	Fragments []Fragment

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ConfigPath: DefaultConfigPath,
		ScriptPath: DefaultScriptPath,
		DocsDir:    DefaultDocsDir,
		IndexFile:  DefaultIndexFile,
		Servers:    append([]string(nil), DefaultServers...),
		SearchPath: DefaultSearchPath,
		Queries:    append([]string(nil), DefaultQueries...),
		Hints:      maps.Clone(DefaultQueryHints),
		Fragments:  append([]Fragment(nil), DefaultFragments...),
		Timeout:    DefaultTimeout,
	}
}

// Validate returns EINVALID if the settings cannot drive a run.
func (s *Settings) Validate() error {
	switch {
	case s.ConfigPath == "":
		return Errorf(EINVALID, "config path required")
	case s.ScriptPath == "":
		return Errorf(EINVALID, "script path required")
	case len(s.Servers) == 0:
		return Errorf(EINVALID, "at least one server required")
	case s.Timeout <= 0:
		return Errorf(EINVALID, "timeout must be positive")
	}
	return nil
}
