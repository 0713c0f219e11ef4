// Package glamour renders the manual testing guide for terminals using
// github.com/charmbracelet/glamour.
package glamour

import (
	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/searchcheck"
)

// DefaultStyle is the glamour standard style used for rendering.
const DefaultStyle = "dark"

// DefaultWordWrap is the column the guide is wrapped at.
const DefaultWordWrap = 80

// Ensure GuideRenderer implements searchcheck.GuideRenderer at compile time.
var _ searchcheck.GuideRenderer = (*GuideRenderer)(nil)

// GuideRenderer renders markdown with a glamour standard style.
type GuideRenderer struct {
	style string
	wrap  int
}

// Option configures a GuideRenderer.
type Option func(*GuideRenderer)

// WithStyle sets the standard style name ("dark", "light", "notty", ...).
func WithStyle(style string) Option {
	return func(r *GuideRenderer) {
		r.style = style
	}
}

// WithWordWrap sets the wrap column.
func WithWordWrap(width int) Option {
	return func(r *GuideRenderer) {
		r.wrap = width
	}
}

// NewGuideRenderer creates a GuideRenderer.
func NewGuideRenderer(opts ...Option) *GuideRenderer {
	r := &GuideRenderer{
		style: DefaultStyle,
		wrap:  DefaultWordWrap,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderGuide returns markdown rendered for the terminal.
// Returns EINVALID if the style is unknown.
func (r *GuideRenderer) RenderGuide(markdown string) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(r.wrap),
	)
	if err != nil {
		return "", searchcheck.Errorf(searchcheck.EINVALID, "guide style %q: %v", r.style, err)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", searchcheck.Errorf(searchcheck.EINTERNAL, "render guide: %v", err)
	}
	return out, nil
}
