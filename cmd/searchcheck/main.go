package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/searchcheck"
	"github.com/fwojciec/searchcheck/check"
	"github.com/fwojciec/searchcheck/fs"
	"github.com/fwojciec/searchcheck/glamour"
	"github.com/fwojciec/searchcheck/goquery"
	schttp "github.com/fwojciec/searchcheck/http"
	"github.com/fwojciec/searchcheck/huh"
	"github.com/fwojciec/searchcheck/ojg"
	"github.com/fwojciec/searchcheck/rod"
	scslog "github.com/fwojciec/searchcheck/slog"
	"github.com/fwojciec/searchcheck/term"
	"github.com/fwojciec/searchcheck/yaml"
	"github.com/google/uuid"
)

// ErrChecksFailed is returned by Run when the configuration or fragment
// check failed. The report already explains why.
var ErrChecksFailed = errors.New("checks failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, ErrChecksFailed) {
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the browser prompt.
	Stdin io.Reader

	// Browser opens the system browser. Defaults to rod.Browser.
	Browser searchcheck.Browser

	// Summary holds the outcome of the last Run.
	Summary *check.Summary
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:   os.Stdin,
		Browser: rod.NewBrowser(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("searchcheck"),
		kong.Description("Verify that a static docs site's search finds files in nested folders"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	settings, err := loadSettings(cli)
	if err != nil {
		return err
	}

	logger := newLogger(cli.Verbose, stderr)
	logger.Debug("settings",
		"config", settings.ConfigPath,
		"script", settings.ScriptPath,
		"docs", settings.DocsDir,
		"servers", settings.Servers,
		"timeout", settings.Timeout,
	)

	color := cli.Color == "always" || (cli.Color == "auto" && term.IsTerminal(stdout))

	runner := &check.Runner{
		Settings: settings,
		Configs:  scslog.NewLoggingConfigLoader(ojg.NewConfigLoader(), logger),
		Sources:  scslog.NewLoggingSourceReader(fs.NewSourceReader(), logger),
		Limiter:  check.NewHostLimiter(cli.Rate),
		Report:   check.NewReporter(stdout, color),
		Strict:   cli.Strict,
	}

	if settings.DocsDir != "" && !cli.NoAudit {
		runner.Docs = scslog.NewLoggingDocTree(fs.NewDocTree(settings.DocsDir), logger)
	}

	fetcher := schttp.NewFetcher(schttp.WithTimeout(settings.Timeout))
	defer fetcher.Close()
	runner.Fetcher = scslog.NewLoggingFetcher(fetcher, logger)

	if cli.Render {
		renderer := &lazyRenderer{opts: []rod.Option{rod.WithFetchTimeout(2 * settings.Timeout)}}
		defer renderer.Close()
		runner.Renderer = scslog.NewLoggingFetcher(renderer, logger)
		runner.Results = scslog.NewLoggingResultExtractor(goquery.NewResultExtractor(), logger)
	}

	if !cli.NoBrowser {
		runner.Browser = m.Browser
		runner.OpenBrowser = cli.Yes
		runner.Prompter = m.prompter(stdout)
	}

	if color {
		runner.Guide = glamour.NewGuideRenderer()
	}

	m.Summary = runner.Run(ctx)
	if m.Summary.ExitCode() != 0 {
		return ErrChecksFailed
	}
	return nil
}

// prompter returns an interactive form when both ends are terminals and a
// line reader otherwise.
func (m *Main) prompter(stdout io.Writer) searchcheck.Prompter {
	if term.IsTerminal(m.Stdin) && term.IsTerminal(stdout) {
		return huh.NewPrompter(huh.WithInput(m.Stdin), huh.WithOutput(stdout))
	}
	return term.NewLinePrompter(m.Stdin, stdout)
}

// loadSettings merges defaults, the settings file and flags, in that order.
func loadSettings(cli *CLI) (searchcheck.Settings, error) {
	settings := searchcheck.DefaultSettings()

	path := cli.Settings
	if path == "" {
		path = yaml.DefaultSettingsFile
	}
	loaded, err := yaml.LoadSettings(path, settings)
	switch {
	case err == nil:
		settings = loaded
	case cli.Settings == "" && searchcheck.ErrorCode(err) == searchcheck.ENOTFOUND:
	default:
		return settings, fmt.Errorf("failed to load settings: %s", searchcheck.ErrorMessage(err))
	}

	if cli.ConfigFile != "" {
		settings.ConfigPath = cli.ConfigFile
	}
	if cli.Script != "" {
		settings.ScriptPath = cli.Script
	}
	if cli.DocsDir != "" {
		settings.DocsDir = cli.DocsDir
	}
	if len(cli.Servers) > 0 {
		settings.Servers = cli.Servers
	}
	if len(cli.Queries) > 0 {
		settings.Queries = cli.Queries
	}
	if cli.Timeout != 0 {
		settings.Timeout = cli.Timeout
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %s", searchcheck.ErrorMessage(err))
	}
	return settings, nil
}

// newLogger returns a debug logger tagged with a run id, or a logger that
// discards everything.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler).With("run", uuid.NewString())
}
