package searchcheck

import "context"

// Prompter asks the operator yes/no questions.
type Prompter interface {
	// Confirm asks question and reports the answer.
	// Returns ErrInterrupted if the operator aborts the prompt.
	Confirm(ctx context.Context, question string) (bool, error)
}

// Browser opens URLs for the operator to inspect.
type Browser interface {
	Open(ctx context.Context, url string) error
}

// GuideRenderer formats the markdown manual-testing guide for display.
type GuideRenderer interface {
	RenderGuide(markdown string) (string, error)
}
