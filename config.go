package searchcheck

import "context"

// FileDescriptor identifies one documentation file listed in the site
// configuration document.
type FileDescriptor struct {
	// Path is the file location relative to the docs directory,
	// including any nested folders. May be empty for legacy entries.
	Path string

	// Filename is the bare file name used by entries without a path.
	Filename string

	// Title is the human-readable title, if any.
	Title string
}

// Name returns the path of the file, falling back to the filename.
func (f FileDescriptor) Name() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Filename
}

// HasPath reports whether the descriptor carries a path field.
func (f FileDescriptor) HasPath() bool {
	return f.Path != ""
}

// SiteConfig is the parsed site configuration document (docs/config.json).
// Every field is optional; a document without the expected keys yields
// an empty SiteConfig rather than an error.
type SiteConfig struct {
	// AllFiles is the flat list of documentation files.
	AllFiles []FileDescriptor

	// HasAllFiles reports whether the all_files key was present.
	HasAllFiles bool

	// Categories groups files by category and topic, sorted by name.
	Categories []Category

	// HasCategories reports whether the categories key was present.
	HasCategories bool
}

// Category is a named group of topics.
type Category struct {
	Name   string
	Topics []Topic
}

// Topic is a named list of files inside a category.
type Topic struct {
	Name  string
	Files []FileDescriptor
}

// Files returns every descriptor in the document, all_files first followed
// by topic files in category order. Descriptors are deduplicated by Name.
func (c *SiteConfig) Files() []FileDescriptor {
	if c == nil {
		return nil
	}

	seen := make(map[string]bool)
	var files []FileDescriptor
	add := func(f FileDescriptor) {
		name := f.Name()
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		files = append(files, f)
	}

	for _, f := range c.AllFiles {
		add(f)
	}
	for _, cat := range c.Categories {
		for _, topic := range cat.Topics {
			for _, f := range topic.Files {
				add(f)
			}
		}
	}
	return files
}

// ConfigLoader reads the site configuration document.
type ConfigLoader interface {
	// LoadConfig reads and parses the document at path.
	// Returns ENOTFOUND if the file does not exist and EINVALID if it
	// cannot be decoded.
	LoadConfig(ctx context.Context, path string) (*SiteConfig, error)
}
