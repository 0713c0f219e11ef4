package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Settings   string        `help:"YAML settings file (default: .searchcheck.yaml if present)" type:"path"`
	ConfigFile string        `name:"config-file" help:"Site configuration JSON to inspect"`
	Script     string        `help:"Client-side search script to check for fixes"`
	DocsDir    string        `name:"docs-dir" help:"Directory holding the configured markdown files"`
	NoAudit    bool          `name:"no-audit" help:"Skip the docs-tree audit"`
	Servers    []string      `name:"server" short:"s" sep:"none" help:"Candidate server base URL, probed in order (repeatable)"`
	Queries    []string      `name:"query" short:"q" sep:"none" help:"Sample search query (repeatable)"`
	Timeout    time.Duration `short:"t" help:"Per-request timeout (default 5s)"`
	Rate       float64       `help:"Maximum requests per second per host (0 = unlimited)"`
	Render     bool          `help:"Render search results in a headless browser and list them"`
	Yes        bool          `short:"y" help:"Open the browser without asking" xor:"browser"`
	NoBrowser  bool          `name:"no-browser" help:"Never offer to open the browser" xor:"browser"`
	Strict     bool          `help:"Fail when search fixes or configured files are missing"`
	Verbose    bool          `short:"v" help:"Write debug logs to stderr"`
	Color      string        `enum:"auto,always,never" default:"auto" help:"Colour status tags (auto, always, never)"`
}
