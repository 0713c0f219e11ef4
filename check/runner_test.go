package check_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/searchcheck"
	"github.com/fwojciec/searchcheck/check"
	"github.com/fwojciec/searchcheck/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedScript() string {
	var b strings.Builder
	for _, f := range searchcheck.DefaultFragments {
		b.WriteString(f.Snippet)
		b.WriteString("\n")
	}
	return b.String()
}

func sampleConfig() *searchcheck.SiteConfig {
	return &searchcheck.SiteConfig{
		HasAllFiles: true,
		AllFiles: []searchcheck.FileDescriptor{
			{Path: "getting-started/intro.md", Filename: "intro.md", Title: "Intro"},
			{Path: "mods/guide.md", Filename: "guide.md"},
			{Filename: "faq.md"},
		},
		HasCategories: true,
		Categories: []searchcheck.Category{
			{
				Name: "basics",
				Topics: []searchcheck.Topic{
					{Name: "start", Files: []searchcheck.FileDescriptor{{Path: "getting-started/intro.md"}}},
					{Name: "empty"},
				},
			},
		},
	}
}

type harness struct {
	out     bytes.Buffer
	fetched []string
	runner  *check.Runner
}

// newHarness returns a runner with every static check passing and no
// server reachable.
func newHarness() *harness {
	h := &harness{}
	h.runner = &check.Runner{
		Settings: searchcheck.DefaultSettings(),
		Configs: &mock.ConfigLoader{
			LoadConfigFn: func(ctx context.Context, path string) (*searchcheck.SiteConfig, error) {
				return sampleConfig(), nil
			},
		},
		Sources: &mock.SourceReader{
			ReadSourceFn: func(ctx context.Context, path string) (string, error) {
				return fixedScript(), nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				h.fetched = append(h.fetched, url)
				return "", searchcheck.Errorf(searchcheck.EUNAVAILABLE, "connection refused")
			},
		},
		Report: check.NewReporter(&h.out, false),
	}
	return h
}

// serveOn makes the fetcher answer for base and everything below it.
func (h *harness) serveOn(base string) {
	h.runner.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			h.fetched = append(h.fetched, url)
			if strings.HasPrefix(url, base) {
				return "<html></html>", nil
			}
			return "", searchcheck.Errorf(searchcheck.EUNAVAILABLE, "connection refused")
		},
	}
}

func TestRunner_CheckConfig(t *testing.T) {
	t.Parallel()

	t.Run("lists files and topics", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		cfg, ok := h.runner.CheckConfig(context.Background())

		require.True(t, ok)
		require.NotNil(t, cfg)
		out := h.out.String()
		assert.Contains(t, out, "=== Checking docs/config.json ===")
		assert.Contains(t, out, "[OK] Found 3 files in all_files")
		assert.Contains(t, out, "  - getting-started/intro.md (title: Intro)\n")
		assert.Contains(t, out, "  - mods/guide.md (title: unknown)\n")
		assert.Contains(t, out, "  - faq.md (no path field)\n")
		assert.Contains(t, out, "[OK] Found 1 categories")
		assert.Contains(t, out, "  - Category basics / topic start: 1 files\n")
		assert.Contains(t, out, "    - getting-started/intro.md\n")
		assert.NotContains(t, out, "topic empty")
	})

	t.Run("missing keys are reported but pass", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Configs = &mock.ConfigLoader{
			LoadConfigFn: func(ctx context.Context, path string) (*searchcheck.SiteConfig, error) {
				return &searchcheck.SiteConfig{}, nil
			},
		}

		_, ok := h.runner.CheckConfig(context.Background())

		assert.True(t, ok)
		assert.Contains(t, h.out.String(), "[ERROR] docs/config.json has no all_files or it is empty")
		assert.NotContains(t, h.out.String(), "categories")
	})

	t.Run("load failure fails the check", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Configs = &mock.ConfigLoader{
			LoadConfigFn: func(ctx context.Context, path string) (*searchcheck.SiteConfig, error) {
				return nil, searchcheck.Errorf(searchcheck.EINVALID, "invalid JSON in %s", path)
			},
		}

		cfg, ok := h.runner.CheckConfig(context.Background())

		assert.False(t, ok)
		assert.Nil(t, cfg)
		assert.Contains(t, h.out.String(), "[ERROR] Failed to read docs/config.json: invalid JSON in docs/config.json")
	})
}

func TestRunner_CheckFragments(t *testing.T) {
	t.Parallel()

	t.Run("all fixes present", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		results, ok := h.runner.CheckFragments(context.Background())

		assert.True(t, ok)
		assert.Len(t, results, len(searchcheck.DefaultFragments))
		assert.Equal(t, len(searchcheck.DefaultFragments), strings.Count(h.out.String(), "- fixed"))
	})

	t.Run("removing one fragment flips only that entry", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		removed := searchcheck.DefaultFragments[2]
		h.runner.Sources = &mock.SourceReader{
			ReadSourceFn: func(ctx context.Context, path string) (string, error) {
				return strings.Replace(fixedScript(), removed.Snippet, "", 1), nil
			},
		}

		results, ok := h.runner.CheckFragments(context.Background())

		assert.True(t, ok, "a readable script passes the check")
		for i, r := range results {
			assert.Equal(t, i != 2, r.Found, r.Fragment.Label)
		}
		assert.Contains(t, h.out.String(), "[ERROR] "+removed.Label+" - fix not found")
		assert.Equal(t, 1, strings.Count(h.out.String(), "fix not found"))
	})

	t.Run("strict mode fails on a missing fragment", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Strict = true
		h.runner.Sources = &mock.SourceReader{
			ReadSourceFn: func(ctx context.Context, path string) (string, error) {
				return strings.Replace(fixedScript(), searchcheck.DefaultFragments[0].Snippet, "", 1), nil
			},
		}

		_, ok := h.runner.CheckFragments(context.Background())

		assert.False(t, ok)
	})

	t.Run("unreadable script fails", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Sources = &mock.SourceReader{
			ReadSourceFn: func(ctx context.Context, path string) (string, error) {
				return "", searchcheck.Errorf(searchcheck.ENOTFOUND, "%s not found", path)
			},
		}

		results, ok := h.runner.CheckFragments(context.Background())

		assert.False(t, ok)
		assert.Nil(t, results)
		assert.Contains(t, h.out.String(), "[ERROR] Failed to read assets/js/search.js")
	})
}

func TestRunner_FindServer(t *testing.T) {
	t.Parallel()

	t.Run("no server prints start instructions", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		got := h.runner.FindServer(context.Background())

		assert.Empty(t, got)
		assert.Equal(t, searchcheck.DefaultServers, h.fetched)
		out := h.out.String()
		assert.Contains(t, out, "[ERROR] No server running at http://localhost:8080")
		assert.Contains(t, out, "[ERROR] No server running at http://localhost:8050")
		assert.Contains(t, out, "npx http-server . -p 8080 -c-1 --cors")
		assert.Contains(t, out, "python -m http.server 8050")
	})

	t.Run("second candidate wins", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.serveOn("http://localhost:8050")

		got := h.runner.FindServer(context.Background())

		assert.Equal(t, "http://localhost:8050", got)
		assert.Contains(t, h.out.String(), "[OK] Server running at http://localhost:8050")
	})

	t.Run("first candidate stops the probe", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.serveOn("http://localhost:8080")

		got := h.runner.FindServer(context.Background())

		assert.Equal(t, "http://localhost:8080", got)
		assert.Equal(t, []string{"http://localhost:8080"}, h.fetched)
	})

	t.Run("paces requests per host", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		var hosts []string
		h.runner.Limiter = &mock.HostLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				hosts = append(hosts, host)
				return nil
			},
		}

		h.runner.FindServer(context.Background())

		assert.Equal(t, []string{"localhost:8080", "localhost:8050"}, hosts)
	})
}

func TestRunner_VerifySearch(t *testing.T) {
	t.Parallel()

	t.Run("requests encoded search urls", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.serveOn("http://localhost:8080")

		results := h.runner.VerifySearch(context.Background(), "http://localhost:8080")

		require.Len(t, results, 4)
		assert.Equal(t, []string{
			"http://localhost:8080/search-results.html?q=%E8%B4%A1%E7%8C%AE%E8%80%85",
			"http://localhost:8080/search-results.html?q=%E6%96%B0%E4%BA%BA",
			"http://localhost:8080/search-results.html?q=Topic",
			"http://localhost:8080/search-results.html?q=Mod",
		}, h.fetched)
		for _, r := range results {
			assert.NoError(t, r.Err)
			assert.False(t, r.Rendered)
		}
		assert.Contains(t, h.out.String(), "[OK] Search page loaded: http://localhost:8080/search-results.html?q=Topic")
	})

	t.Run("failed page is reported", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Settings.Queries = []string{"a b"}
		h.runner.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", searchcheck.Errorf(searchcheck.EUNAVAILABLE, "HTTP 404 for %s", url)
			},
		}

		results := h.runner.VerifySearch(context.Background(), "http://localhost:8080")

		require.Len(t, results, 1)
		assert.Equal(t, "http://localhost:8080/search-results.html?q=a%20b", results[0].URL)
		assert.Error(t, results[0].Err)
		assert.Contains(t, h.out.String(), "[ERROR] Search page failed to load: HTTP 404")
	})

	t.Run("renders and lists results", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.serveOn("http://localhost:8080")
		h.runner.Settings.Queries = []string{"Mod"}
		h.runner.Renderer = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<rendered>", nil
			},
		}
		h.runner.Results = &mock.ResultExtractor{
			ExtractResultsFn: func(html string) ([]searchcheck.SearchResult, error) {
				assert.Equal(t, "<rendered>", html)
				return []searchcheck.SearchResult{
					{Title: "Guide", File: "mods/guide.md"},
					{Title: "FAQ", File: "faq.md"},
				}, nil
			},
		}

		results := h.runner.VerifySearch(context.Background(), "http://localhost:8080")

		require.Len(t, results, 1)
		assert.True(t, results[0].Rendered)
		assert.NoError(t, results[0].RenderErr)
		assert.Len(t, results[0].Results, 2)
		out := h.out.String()
		assert.Contains(t, out, "[OK] 2 results rendered")
		assert.Contains(t, out, "  - mods/guide.md (nested folder)\n")
		assert.Contains(t, out, "  - faq.md\n")
	})

	t.Run("render failure is not fatal", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.serveOn("http://localhost:8080")
		h.runner.Settings.Queries = []string{"Mod", "Topic"}
		h.runner.Renderer = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", searchcheck.Errorf(searchcheck.EUNAVAILABLE, "browser crashed")
			},
		}

		results := h.runner.VerifySearch(context.Background(), "http://localhost:8080")

		require.Len(t, results, 2)
		for _, r := range results {
			assert.NoError(t, r.Err)
			assert.Error(t, r.RenderErr)
		}
		assert.Equal(t, 2, strings.Count(h.out.String(), "[ERROR] Render failed: browser crashed"))
	})
}

func TestRunner_OfferBrowser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		yes      bool
		answer   bool
		err      error
		wantOpen bool
		wantOut  string
	}{
		{name: "yes opens", answer: true, wantOpen: true},
		{name: "no skips", answer: false},
		{name: "interrupt skips silently", err: searchcheck.ErrInterrupted},
		{name: "prompt error is reported", err: searchcheck.Errorf(searchcheck.EINTERNAL, "tty gone"), wantOut: "[ERROR] Prompt failed: tty gone"},
		{name: "auto open skips prompt", yes: true, wantOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness()
			var opened string
			h.runner.OpenBrowser = tt.yes
			h.runner.Prompter = &mock.Prompter{
				ConfirmFn: func(ctx context.Context, question string) (bool, error) {
					require.False(t, tt.yes, "prompted despite auto open")
					assert.Equal(t, "Open a browser for testing? (y/n)", question)
					return tt.answer, tt.err
				},
			}
			h.runner.Browser = &mock.Browser{
				OpenFn: func(ctx context.Context, url string) error {
					opened = url
					return nil
				},
			}

			h.runner.OfferBrowser(context.Background(), "http://localhost:8080")

			if tt.wantOpen {
				assert.Equal(t, "http://localhost:8080", opened)
			} else {
				assert.Empty(t, opened)
			}
			if tt.wantOut != "" {
				assert.Contains(t, h.out.String(), tt.wantOut)
			} else {
				assert.NotContains(t, h.out.String(), "[ERROR]")
			}
		})
	}
}

func TestRunner_PrintGuide(t *testing.T) {
	t.Parallel()

	t.Run("uses renderer output", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Guide = &mock.GuideRenderer{
			RenderGuideFn: func(markdown string) (string, error) {
				assert.Contains(t, markdown, "1. Open http://localhost:8080 in a browser")
				return "RENDERED\n", nil
			},
		}

		h.runner.PrintGuide("http://localhost:8080")

		assert.Contains(t, h.out.String(), "RENDERED\n")
	})

	t.Run("falls back to markdown on render error", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Guide = &mock.GuideRenderer{
			RenderGuideFn: func(markdown string) (string, error) {
				return "", searchcheck.Errorf(searchcheck.EINTERNAL, "bad style")
			},
		}

		h.runner.PrintGuide("http://localhost:8080")

		assert.Contains(t, h.out.String(), "1. Open http://localhost:8080 in a browser")
	})
}

func TestManualGuide(t *testing.T) {
	t.Parallel()

	got := check.ManualGuide("http://localhost:8050", []string{"Mod", "x"}, map[string]string{"Mod": "mod guides"})

	assert.Equal(t, "1. Open http://localhost:8050 in a browser\n"+
		"2. Search for the following keywords:\n"+
		"   - Mod (mod guides)\n"+
		"3. Click a search result and confirm the file opens\n"+
		"4. Check that the URL contains the full file path\n", got)
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes without a server", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		s := h.runner.Run(context.Background())

		assert.True(t, s.ConfigOK)
		assert.True(t, s.FragmentsOK)
		assert.Empty(t, s.ServerURL)
		assert.Empty(t, s.Queries)
		assert.Equal(t, 0, s.ExitCode())
		assert.Equal(t, searchcheck.DefaultServers, h.fetched)
		out := h.out.String()
		assert.Contains(t, out, "[OK] All code fixes are in place")
		assert.Contains(t, out, "[ERROR] Server is not running, full test not possible")
	})

	t.Run("missing fragments are reported but pass", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.serveOn("http://localhost:8080")
		h.runner.Sources = &mock.SourceReader{
			ReadSourceFn: func(ctx context.Context, path string) (string, error) {
				return "nothing here", nil
			},
		}

		s := h.runner.Run(context.Background())

		assert.Equal(t, "http://localhost:8080", s.ServerURL)
		assert.Len(t, s.Queries, 4)
		assert.True(t, s.FragmentsOK)
		assert.Equal(t, 0, s.ExitCode())
		assert.Equal(t, 4, strings.Count(h.out.String(), "fix not found"))
	})

	t.Run("strict mode fails on missing fragments", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Strict = true
		h.runner.Sources = &mock.SourceReader{
			ReadSourceFn: func(ctx context.Context, path string) (string, error) {
				return "nothing here", nil
			},
		}

		s := h.runner.Run(context.Background())

		assert.False(t, s.FragmentsOK)
		assert.Equal(t, 1, s.ExitCode())
		assert.Contains(t, h.out.String(), "[ERROR] There are problems, check the errors above")
	})

	t.Run("unreadable script fails", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Sources = &mock.SourceReader{
			ReadSourceFn: func(ctx context.Context, path string) (string, error) {
				return "", searchcheck.Errorf(searchcheck.ENOTFOUND, "%s not found", path)
			},
		}

		s := h.runner.Run(context.Background())

		assert.False(t, s.FragmentsOK)
		assert.Equal(t, 1, s.ExitCode())
	})

	t.Run("strict audit fails when the docs tree is missing", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Strict = true
		h.runner.Docs = &mock.DocTree{
			ListMarkdownFn: func(ctx context.Context) ([]string, error) {
				return nil, searchcheck.Errorf(searchcheck.ENOTFOUND, "docs: no such directory")
			},
			ReadFrontMatterFn: func(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
				return nil, searchcheck.Errorf(searchcheck.ENOTFOUND, "%s not found", name)
			},
		}

		s := h.runner.Run(context.Background())

		require.NotNil(t, s.Audit)
		assert.Len(t, s.Audit.Missing, 3)
		assert.False(t, s.ConfigOK)
		assert.Equal(t, 1, s.ExitCode())
		out := h.out.String()
		assert.Contains(t, out, "[ERROR] Failed to read docs tree docs: docs: no such directory")
		assert.Contains(t, out, "[ERROR] 3 of 3 configured files are missing")
	})

	t.Run("strict audit fails on unreadable docs tree", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Strict = true
		h.runner.Docs = &mock.DocTree{
			ListMarkdownFn: func(ctx context.Context) ([]string, error) {
				return nil, searchcheck.Errorf(searchcheck.EINTERNAL, "walk failed")
			},
			ReadFrontMatterFn: func(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
				return &searchcheck.FrontMatter{}, nil
			},
		}

		s := h.runner.Run(context.Background())

		require.NotNil(t, s.Audit)
		assert.True(t, s.Audit.OK())
		assert.False(t, s.ConfigOK)
	})

	t.Run("audit lists category mismatches and latest updates", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Docs = &mock.DocTree{
			ListMarkdownFn: func(ctx context.Context) ([]string, error) {
				return []string{"getting-started/intro.md", "mods/guide.md", "faq.md"}, nil
			},
			ReadFrontMatterFn: func(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
				switch name {
				case "getting-started/intro.md":
					return &searchcheck.FrontMatter{
						Title:       "Intro",
						Category:    "高级主题",
						Date:        "2025-11-27",
						Difficulty:  "初级",
						Time:        "30分钟",
						Description: "给新人的入门建议",
					}, nil
				case "mods/guide.md":
					return &searchcheck.FrontMatter{Date: "2025-01-01"}, nil
				}
				return &searchcheck.FrontMatter{}, nil
			},
		}

		s := h.runner.Run(context.Background())

		assert.Equal(t, 0, s.ExitCode())
		out := h.out.String()
		assert.Contains(t, out, `[WARN] Category mismatch for getting-started/intro.md: file "高级主题", listed under basics`)
		assert.Contains(t, out, "Latest updates:\n"+
			"  - 2025-11-27 getting-started/intro.md (Intro; 初级, 30分钟)\n"+
			"    - 给新人的入门建议\n"+
			"  - 2025-01-01 mods/guide.md (unknown)\n")
	})

	t.Run("strict audit fails on missing files", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Strict = true
		h.runner.Docs = &mock.DocTree{
			ListMarkdownFn: func(ctx context.Context) ([]string, error) {
				return []string{"getting-started/intro.md"}, nil
			},
			ReadFrontMatterFn: func(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
				if name == "getting-started/intro.md" {
					return &searchcheck.FrontMatter{Title: "Intro"}, nil
				}
				return nil, searchcheck.Errorf(searchcheck.ENOTFOUND, "%s not found", name)
			},
		}

		s := h.runner.Run(context.Background())

		require.NotNil(t, s.Audit)
		assert.ElementsMatch(t, []string{"mods/guide.md", "faq.md"}, s.Audit.Missing)
		assert.False(t, s.ConfigOK)
		assert.Equal(t, 1, s.ExitCode())
		assert.Contains(t, h.out.String(), "[ERROR] 2 of 3 configured files are missing")
	})

	t.Run("audit is informational without strict", func(t *testing.T) {
		t.Parallel()

		h := newHarness()
		h.runner.Docs = &mock.DocTree{
			ListMarkdownFn: func(ctx context.Context) ([]string, error) {
				return []string{"getting-started/intro.md", "orphan.md"}, nil
			},
			ReadFrontMatterFn: func(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
				return nil, searchcheck.Errorf(searchcheck.ENOTFOUND, "%s not found", name)
			},
		}

		s := h.runner.Run(context.Background())

		assert.True(t, s.ConfigOK)
		assert.Equal(t, 0, s.ExitCode())
		assert.Contains(t, h.out.String(), "[WARN] 1 markdown files are not listed in the configuration")
	})
}
