// Package check runs the search-fix verification: it inspects the site
// configuration and search script, probes for a development server and
// drives the manual verification session.
package check

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/searchcheck"
)

// Runner executes the verification phases in order.
//
// Required fields: Settings, Configs, Sources, Fetcher, Report.
// Optional fields: Docs, Renderer (requires Results), Limiter, Prompter,
// Browser, Guide.
type Runner struct {
	Settings searchcheck.Settings
	Configs  searchcheck.ConfigLoader
	Sources  searchcheck.SourceReader
	Docs     searchcheck.DocTree
	Fetcher  searchcheck.Fetcher
	Renderer searchcheck.Fetcher
	Results  searchcheck.ResultExtractor
	Limiter  searchcheck.HostLimiter
	Prompter searchcheck.Prompter
	Browser  searchcheck.Browser
	Guide    searchcheck.GuideRenderer
	Report   *Reporter

	// Strict makes missing fragments fail the fragment check and files
	// missing from the docs tree fail the configuration check.
	Strict bool

	// OpenBrowser opens the browser without prompting.
	OpenBrowser bool
}

// Summary collects the outcome of a run.
type Summary struct {
	Config      *searchcheck.SiteConfig
	ConfigOK    bool
	Audit       *searchcheck.DocAudit
	Fragments   []searchcheck.FragmentResult
	FragmentsOK bool
	ServerURL   string
	Queries     []QueryResult
}

// OK reports whether both static checks passed.
func (s *Summary) OK() bool {
	return s.ConfigOK && s.FragmentsOK
}

// ExitCode returns the process exit status for the run. Server
// availability never affects it.
func (s *Summary) ExitCode() int {
	if s.OK() {
		return 0
	}
	return 1
}

// QueryResult is the outcome of one sample query against the server.
type QueryResult struct {
	Query string
	URL   string
	Err   error

	// Rendered is set when the page was also rendered headless.
	Rendered  bool
	RenderErr error
	Results   []searchcheck.SearchResult
}

// Run executes every phase and prints the summary.
func (r *Runner) Run(ctx context.Context) *Summary {
	s := &Summary{}

	r.Report.Banner("Search fix check")

	s.Config, s.ConfigOK = r.CheckConfig(ctx)
	if s.ConfigOK && r.Docs != nil {
		var err error
		s.Audit, err = r.AuditDocs(ctx, s.Config)
		if r.Strict && (err != nil || !s.Audit.OK()) {
			s.ConfigOK = false
		}
	}

	s.Fragments, s.FragmentsOK = r.CheckFragments(ctx)

	s.ServerURL = r.FindServer(ctx)
	if s.ServerURL != "" {
		s.Queries = r.VerifySearch(ctx, s.ServerURL)
		r.PrintGuide(s.ServerURL)
		r.OfferBrowser(ctx, s.ServerURL)
	}

	r.PrintSummary(s)
	return s
}

// CheckConfig loads the site configuration and reports what it lists.
// Missing keys are reported but only a load failure fails the check.
func (r *Runner) CheckConfig(ctx context.Context) (*searchcheck.SiteConfig, bool) {
	path := r.Settings.ConfigPath
	r.Report.Section("Checking %s", path)

	cfg, err := r.Configs.LoadConfig(ctx, path)
	if err != nil {
		r.Report.Error("Failed to read %s: %s", path, searchcheck.ErrorMessage(err))
		return nil, false
	}

	if len(cfg.AllFiles) > 0 {
		r.Report.OK("Found %d files in all_files", len(cfg.AllFiles))
		for _, f := range cfg.AllFiles {
			r.Report.Item(1, "%s", describeFile(f, true))
		}
	} else {
		r.Report.Error("%s has no all_files or it is empty", path)
	}

	if cfg.HasCategories {
		r.Report.OK("Found %d categories", len(cfg.Categories))
		for _, cat := range cfg.Categories {
			for _, topic := range cat.Topics {
				if len(topic.Files) == 0 {
					continue
				}
				r.Report.Item(1, "Category %s / topic %s: %d files", cat.Name, topic.Name, len(topic.Files))
				for _, f := range topic.Files {
					r.Report.Item(2, "%s", describeFile(f, false))
				}
			}
		}
	}

	return cfg, true
}

// AuditDocs compares the configuration with the markdown files on disk.
// The returned audit is never nil; it holds what was collected before any
// error.
func (r *Runner) AuditDocs(ctx context.Context, cfg *searchcheck.SiteConfig) (*searchcheck.DocAudit, error) {
	r.Report.Section("Checking docs tree %s", r.Settings.DocsDir)

	audit, err := searchcheck.AuditDocs(ctx, cfg, r.Docs, r.Settings.IndexFile)
	if audit == nil {
		audit = &searchcheck.DocAudit{}
	}
	if err != nil {
		r.Report.Error("Failed to read docs tree %s: %s", r.Settings.DocsDir, searchcheck.ErrorMessage(err))
	}

	if audit.OK() {
		if err == nil {
			r.Report.OK("All %d configured files exist", audit.Checked)
		}
	} else {
		r.Report.Error("%d of %d configured files are missing", len(audit.Missing), audit.Checked)
		for _, name := range audit.Missing {
			r.Report.Item(1, "%s", name)
		}
	}

	for _, m := range audit.TitleMismatches {
		r.Report.Warn("Title mismatch for %s: config %q, file %q", m.Name, m.ConfigTitle, m.FileTitle)
	}
	for _, m := range audit.CategoryMismatches {
		r.Report.Warn("Category mismatch for %s: file %q, listed under %s", m.Name, m.FileCategory, strings.Join(m.ConfigCategories, ", "))
	}
	for _, name := range audit.Malformed {
		r.Report.Warn("Unreadable front matter in %s", name)
	}
	if len(audit.Orphans) > 0 {
		r.Report.Warn("%d markdown files are not listed in the configuration", len(audit.Orphans))
		for _, name := range audit.Orphans {
			r.Report.Item(1, "%s", name)
		}
	}

	if len(audit.Latest) > 0 {
		r.Report.Line("Latest updates:")
		for _, e := range audit.Latest {
			r.Report.Item(1, "%s %s", e.FrontMatter.Date, describeEntry(e))
			if e.FrontMatter.Description != "" {
				r.Report.Item(2, "%s", e.FrontMatter.Description)
			}
		}
	}

	return audit, err
}

// CheckFragments verifies the search script still contains every fix.
// Missing fixes are reported; they fail the check only in strict mode.
func (r *Runner) CheckFragments(ctx context.Context) ([]searchcheck.FragmentResult, bool) {
	path := r.Settings.ScriptPath
	r.Report.Section("Checking %s fixes", path)

	content, err := r.Sources.ReadSource(ctx, path)
	if err != nil {
		r.Report.Error("Failed to read %s: %s", path, searchcheck.ErrorMessage(err))
		return nil, false
	}

	results := searchcheck.CheckFragments(content, r.Settings.Fragments)
	for _, res := range results {
		if res.Found {
			r.Report.OK("%s - fixed", res.Fragment.Label)
		} else {
			r.Report.Error("%s - fix not found", res.Fragment.Label)
		}
	}

	if r.Strict {
		return results, searchcheck.AllFound(results)
	}
	return results, true
}

// FindServer returns the first candidate server answering 200 OK, or ""
// after printing instructions for starting one.
func (r *Runner) FindServer(ctx context.Context) string {
	r.Report.Section("Checking server")

	for _, server := range r.Settings.Servers {
		if _, err := r.fetch(ctx, r.Fetcher, server); err != nil {
			r.Report.Error("No server running at %s: %s", server, searchcheck.ErrorMessage(err))
			continue
		}
		r.Report.OK("Server running at %s", server)
		return server
	}

	r.Report.Line("Start a server first:")
	for i, cmd := range startCommands(r.Settings.Servers) {
		if i > 0 {
			r.Report.Line("  or")
		}
		r.Report.Line("  %s", cmd)
	}
	return ""
}

// VerifySearch loads the search-results page for every sample query.
// Only the response status is inspected unless a Renderer is set.
func (r *Runner) VerifySearch(ctx context.Context, base string) []QueryResult {
	r.Report.Section("Checking search (server: %s)", base)

	results := make([]QueryResult, 0, len(r.Settings.Queries))
	for _, q := range r.Settings.Queries {
		r.Report.Line("")
		r.Report.Line("Search: %s", q)

		res := QueryResult{
			Query: q,
			URL:   searchcheck.SearchURL(base, r.Settings.SearchPath, q),
		}

		_, res.Err = r.fetch(ctx, r.Fetcher, res.URL)
		switch {
		case res.Err == nil:
			r.Report.OK("Search page loaded: %s", res.URL)
		case searchcheck.ErrorCode(res.Err) == searchcheck.EUNAVAILABLE:
			r.Report.Error("Search page failed to load: %s", searchcheck.ErrorMessage(res.Err))
		default:
			r.Report.Error("Search request failed: %s", searchcheck.ErrorMessage(res.Err))
		}

		if res.Err == nil && r.Renderer != nil {
			r.render(ctx, &res)
		}

		results = append(results, res)
	}
	return results
}

// render loads the page in the headless browser and lists its results.
func (r *Runner) render(ctx context.Context, res *QueryResult) {
	res.Rendered = true

	html, err := r.fetch(ctx, r.Renderer, res.URL)
	if err != nil {
		res.RenderErr = err
		r.Report.Error("Render failed: %s", searchcheck.ErrorMessage(err))
		return
	}

	res.Results, err = r.Results.ExtractResults(html)
	if err != nil {
		res.RenderErr = err
		r.Report.Error("Reading results failed: %s", searchcheck.ErrorMessage(err))
		return
	}

	if len(res.Results) == 0 {
		r.Report.Warn("No results rendered for %q", res.Query)
		return
	}

	r.Report.OK("%d results rendered", len(res.Results))
	for _, hit := range res.Results {
		if hit.Nested() {
			r.Report.Item(1, "%s (nested folder)", hit.File)
		} else {
			r.Report.Item(1, "%s", hit.File)
		}
	}
}

// PrintGuide writes the manual testing checklist.
func (r *Runner) PrintGuide(base string) {
	r.Report.Section("Manual testing guide")

	md := ManualGuide(base, r.Settings.Queries, r.Settings.Hints)
	if r.Guide != nil {
		if rendered, err := r.Guide.RenderGuide(md); err == nil {
			fmt.Fprint(r.Report.Writer(), rendered)
			return
		}
	}
	fmt.Fprint(r.Report.Writer(), md)
}

// OfferBrowser opens base in the system browser if the operator agrees.
// An interrupted prompt is not an error.
func (r *Runner) OfferBrowser(ctx context.Context, base string) {
	if r.Browser == nil {
		return
	}

	if !r.OpenBrowser {
		if r.Prompter == nil {
			return
		}
		r.Report.Line("")
		ok, err := r.Prompter.Confirm(ctx, "Open a browser for testing? (y/n)")
		if errors.Is(err, searchcheck.ErrInterrupted) {
			return
		} else if err != nil {
			r.Report.Error("Prompt failed: %s", searchcheck.ErrorMessage(err))
			return
		} else if !ok {
			return
		}
	}

	if err := r.Browser.Open(ctx, base); err != nil {
		r.Report.Error("Failed to open browser: %s", searchcheck.ErrorMessage(err))
	}
}

// PrintSummary writes the closing summary.
func (r *Runner) PrintSummary(s *Summary) {
	r.Report.Section("Summary")

	if !s.OK() {
		r.Report.Error("There are problems, check the errors above")
		return
	}

	r.Report.OK("All code fixes are in place")
	if s.ServerURL != "" {
		r.Report.OK("Server is running, ready for manual testing")
	} else {
		r.Report.Error("Server is not running, full test not possible")
	}
}

// fetch waits for the host's rate limit and fetches rawURL.
func (r *Runner) fetch(ctx context.Context, f searchcheck.Fetcher, rawURL string) (string, error) {
	if r.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", searchcheck.Errorf(searchcheck.EINVALID, "invalid url %q", rawURL)
		}
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return f.Fetch(ctx, rawURL)
}

// describeEntry formats a dated file for the latest updates list.
func describeEntry(e searchcheck.DocEntry) string {
	fm := e.FrontMatter
	title := fm.Title
	if title == "" {
		title = "unknown"
	}
	var extra []string
	for _, v := range []string{fm.Difficulty, fm.Time} {
		if v != "" {
			extra = append(extra, v)
		}
	}
	if len(extra) == 0 {
		return fmt.Sprintf("%s (%s)", e.Name, title)
	}
	return fmt.Sprintf("%s (%s; %s)", e.Name, title, strings.Join(extra, ", "))
}

// describeFile formats a descriptor for listing.
func describeFile(f searchcheck.FileDescriptor, withTitle bool) string {
	if !f.HasPath() {
		return f.Filename + " (no path field)"
	}
	if !withTitle {
		return f.Path
	}
	title := f.Title
	if title == "" {
		title = "unknown"
	}
	return fmt.Sprintf("%s (title: %s)", f.Path, title)
}

// startCommands suggests how to serve the site on the candidate ports.
func startCommands(servers []string) []string {
	var cmds []string
	for i, server := range servers {
		u, err := url.Parse(server)
		if err != nil || u.Port() == "" {
			continue
		}
		if i == 0 {
			cmds = append(cmds, "npx http-server . -p "+u.Port()+" -c-1 --cors")
		} else {
			cmds = append(cmds, "python -m http.server "+u.Port())
		}
	}
	return cmds
}

// ManualGuide returns the markdown checklist for verifying search by hand.
// Only queries with a hint are listed.
func ManualGuide(base string, queries []string, hints map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "1. Open %s in a browser\n", base)
	b.WriteString("2. Search for the following keywords:\n")
	for _, q := range queries {
		if hint, ok := hints[q]; ok {
			fmt.Fprintf(&b, "   - %s (%s)\n", q, hint)
		}
	}
	b.WriteString("3. Click a search result and confirm the file opens\n")
	b.WriteString("4. Check that the URL contains the full file path\n")
	return b.String()
}
