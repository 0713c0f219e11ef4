package searchcheck

import (
	"context"
	"path"
	"slices"
	"sort"
	"strings"
)

// LatestCount is the number of most recently updated files an audit keeps.
const LatestCount = 5

// CategoryAliases maps the category names used in front matter to the
// category keys of the site configuration.
var CategoryAliases = map[string]string{
	"入门":    "getting-started",
	"基础概念":  "basic-concepts",
	"Mod开发": "mod-development",
	"高级主题":  "advanced-topics",
	"资源参考":  "resources",
}

// FrontMatter is the metadata block at the top of a documentation file.
type FrontMatter struct {
	Title       string
	Category    string
	Difficulty  string
	Time        string
	Date        string
	Description string
}

// DocTree provides access to the markdown files of the documentation site.
// Names are slash-separated paths relative to the docs directory.
type DocTree interface {
	// ListMarkdown returns every markdown file in the tree, sorted.
	ListMarkdown(ctx context.Context) ([]string, error)

	// ReadFrontMatter returns the front matter of the named file.
	// A file without front matter yields an empty FrontMatter.
	// Returns ENOTFOUND if the file does not exist and EINVALID if the
	// front matter cannot be decoded.
	ReadFrontMatter(ctx context.Context, name string) (*FrontMatter, error)
}

// DocAudit is the outcome of comparing the configuration with the docs tree.
type DocAudit struct {
	// Checked is the number of distinct descriptors looked up.
	Checked int

	// Missing lists configured files that do not exist.
	Missing []string

	// Orphans lists markdown files that no descriptor references.
	Orphans []string

	// TitleMismatches lists files whose front matter title differs from
	// the configured title.
	TitleMismatches []TitleMismatch

	// CategoryMismatches lists files whose front matter category is not
	// one of the configuration categories listing them.
	CategoryMismatches []CategoryMismatch

	// Malformed lists files whose front matter could not be decoded.
	Malformed []string

	// Latest holds the most recently dated files, newest first.
	Latest []DocEntry
}

// TitleMismatch pairs a configured title with the file's own title.
type TitleMismatch struct {
	Name        string
	ConfigTitle string
	FileTitle   string
}

// CategoryMismatch pairs a file's category with the configuration
// categories that list it.
type CategoryMismatch struct {
	Name             string
	FileCategory     string
	ConfigCategories []string
}

// DocEntry is a configured file together with its front matter.
type DocEntry struct {
	Name        string
	FrontMatter FrontMatter
}

// OK reports whether every configured file exists.
func (a *DocAudit) OK() bool {
	return len(a.Missing) == 0
}

// AuditDocs checks every descriptor in cfg against tree and collects
// markdown files that cfg does not reference. indexFile names a generated
// file that is never treated as an orphan.
//
// If the tree cannot be listed, the audit collected so far is returned
// along with the error.
func AuditDocs(ctx context.Context, cfg *SiteConfig, tree DocTree, indexFile string) (*DocAudit, error) {
	audit := &DocAudit{}
	listed := make(map[string]bool)
	categories := categoriesByFile(cfg)

	for _, f := range cfg.Files() {
		name := cleanDocName(f.Name())
		listed[name] = true
		audit.Checked++

		fm, err := tree.ReadFrontMatter(ctx, name)
		switch ErrorCode(err) {
		case "":
		case ENOTFOUND:
			audit.Missing = append(audit.Missing, name)
			continue
		case EINVALID:
			audit.Malformed = append(audit.Malformed, name)
			continue
		default:
			return audit, err
		}

		configTitle := strings.TrimSpace(f.Title)
		fileTitle := strings.TrimSpace(fm.Title)
		if configTitle != "" && fileTitle != "" && configTitle != fileTitle {
			audit.TitleMismatches = append(audit.TitleMismatches, TitleMismatch{
				Name:        name,
				ConfigTitle: configTitle,
				FileTitle:   fileTitle,
			})
		}

		if cats := categories[name]; len(cats) > 0 && fm.Category != "" {
			if !slices.Contains(cats, CanonicalCategory(fm.Category)) {
				audit.CategoryMismatches = append(audit.CategoryMismatches, CategoryMismatch{
					Name:             name,
					FileCategory:     fm.Category,
					ConfigCategories: cats,
				})
			}
		}

		if fm.Date != "" {
			audit.Latest = append(audit.Latest, DocEntry{Name: name, FrontMatter: *fm})
		}
	}
	audit.Latest = latest(audit.Latest, LatestCount)

	names, err := tree.ListMarkdown(ctx)
	if err != nil {
		return audit, err
	}
	for _, name := range names {
		name = cleanDocName(name)
		if listed[name] || (indexFile != "" && path.Base(name) == indexFile) {
			continue
		}
		audit.Orphans = append(audit.Orphans, name)
	}
	sort.Strings(audit.Orphans)

	return audit, nil
}

// CanonicalCategory maps a front matter category to its configuration key.
// Unknown names are returned unchanged.
func CanonicalCategory(name string) string {
	name = strings.TrimSpace(name)
	if key, ok := CategoryAliases[name]; ok {
		return key
	}
	return name
}

// categoriesByFile returns, per cleaned file name, the sorted names of the
// categories whose topics list the file.
func categoriesByFile(cfg *SiteConfig) map[string][]string {
	m := make(map[string][]string)
	for _, cat := range cfg.Categories {
		for _, topic := range cat.Topics {
			for _, f := range topic.Files {
				name := cleanDocName(f.Name())
				if !slices.Contains(m[name], cat.Name) {
					m[name] = append(m[name], cat.Name)
				}
			}
		}
	}
	for _, cats := range m {
		sort.Strings(cats)
	}
	return m
}

// latest sorts entries newest first and keeps at most n. Dates are
// compared as strings, which orders ISO dates correctly.
func latest(entries []DocEntry, n int) []DocEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].FrontMatter.Date != entries[j].FrontMatter.Date {
			return entries[i].FrontMatter.Date > entries[j].FrontMatter.Date
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// cleanDocName normalizes a descriptor path to a slash-separated name
// relative to the docs directory.
func cleanDocName(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimPrefix(name, "/")
}
