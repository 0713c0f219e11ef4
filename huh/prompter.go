// Package huh implements searchcheck.Prompter with an interactive
// confirmation form from github.com/charmbracelet/huh.
package huh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fwojciec/searchcheck"
)

// Ensure Prompter implements searchcheck.Prompter at compile time.
var _ searchcheck.Prompter = (*Prompter)(nil)

// Prompter asks yes/no questions with a huh confirm field.
type Prompter struct {
	input      io.Reader
	output     io.Writer
	accessible bool
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithInput sets the reader the form reads keys from.
func WithInput(r io.Reader) Option {
	return func(p *Prompter) {
		p.input = r
	}
}

// WithOutput sets the writer the form draws to.
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		p.output = w
	}
}

// WithAccessible switches the form to plain line prompts for screen readers.
func WithAccessible(accessible bool) Option {
	return func(p *Prompter) {
		p.accessible = accessible
	}
}

// NewPrompter creates a Prompter.
func NewPrompter(opts ...Option) *Prompter {
	p := &Prompter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Confirm shows question with Yes/No buttons. Aborting the form returns
// searchcheck.ErrInterrupted.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	var ok bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(strings.TrimSuffix(question, " (y/n)")).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithAccessible(p.accessible)
	if p.input != nil {
		form = form.WithInput(p.input)
	}
	if p.output != nil {
		form = form.WithOutput(p.output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		return false, confirmError(err)
	}
	return ok, nil
}

func confirmError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return searchcheck.ErrInterrupted
	}
	return fmt.Errorf("confirm: %w", err)
}
