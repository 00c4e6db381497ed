// Package ai wraps the remote completion vendor behind a small interface
// so callers never depend on a concrete SDK.
package ai

import "context"

// CompletionProvider produces a short completion for a prompt. Callers
// must treat any error as "answer locally instead".
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Enabled() bool
}

// Disabled is the provider used when no API key is configured.
type Disabled struct{}

// Complete always fails so callers fall back to their local answer.
func (Disabled) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrDisabled
}

// Enabled reports that no remote vendor is configured.
func (Disabled) Enabled() bool { return false }
