// Package term provides terminal detection and a plain line-based prompt
// for non-interactive input, using golang.org/x/term.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/searchcheck"
	"golang.org/x/term"
)

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Ensure LinePrompter implements searchcheck.Prompter at compile time.
var _ searchcheck.Prompter = (*LinePrompter)(nil)

// LinePrompter asks questions by writing to w and reading one line from r.
// Only "y" in either case counts as yes; "yes" and end of input are a no.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

type lineResult struct {
	line string
	err  error
}

// Confirm writes question and waits for an answer. A cancelled context
// returns searchcheck.ErrInterrupted.
func (p *LinePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if ctx.Err() != nil {
		return false, searchcheck.ErrInterrupted
	}
	fmt.Fprint(p.w, question+" ")

	// The read cannot be cancelled; on interrupt the goroutine is left
	// blocked until the process exits.
	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.r.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.w)
		return false, searchcheck.ErrInterrupted
	case res := <-ch:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", res.err)
		}
		if errors.Is(res.err, io.EOF) && res.line == "" {
			fmt.Fprintln(p.w)
			return false, nil
		}
		return isYes(res.line), nil
	}
}

func isYes(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}
