package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Reporter writes human-readable status lines.
// Status lines carry an [OK], [ERROR] or [WARN] tag; with colour enabled
// the tags are styled for the terminal.
type Reporter struct {
	w     io.Writer
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	title lipgloss.Style
	color bool
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, color bool) *Reporter {
	r := &Reporter{w: w, color: color}
	if color {
		renderer := lipgloss.NewRenderer(w)
		r.ok = renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
		r.err = renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		r.warn = renderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
		r.title = renderer.NewStyle().Bold(true)
	}
	return r
}

// Banner writes the program heading followed by a rule.
func (r *Reporter) Banner(text string) {
	fmt.Fprintln(r.w, r.style(r.title, text))
	fmt.Fprintln(r.w, strings.Repeat("=", 50))
}

// Section starts a new block of output.
func (r *Reporter) Section(format string, args ...any) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.style(r.title, "=== "+fmt.Sprintf(format, args...)+" ==="))
}

// OK writes a success line.
func (r *Reporter) OK(format string, args ...any) {
	r.tagged(r.ok, "[OK]", format, args...)
}

// Error writes a failure line.
func (r *Reporter) Error(format string, args ...any) {
	r.tagged(r.err, "[ERROR]", format, args...)
}

// Warn writes a line for a problem that does not fail the run.
func (r *Reporter) Warn(format string, args ...any) {
	r.tagged(r.warn, "[WARN]", format, args...)
}

// Item writes an indented list entry; depth 1 is the first level.
func (r *Reporter) Item(depth int, format string, args ...any) {
	fmt.Fprintf(r.w, "%s- %s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

// Line writes plain text.
func (r *Reporter) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Writer returns the underlying writer.
func (r *Reporter) Writer() io.Writer {
	return r.w
}

func (r *Reporter) tagged(style lipgloss.Style, tag, format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", r.style(style, tag), fmt.Sprintf(format, args...))
}

func (r *Reporter) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}
