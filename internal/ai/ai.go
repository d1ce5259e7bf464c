// Package ai defines the content-generation contract implemented by
// provider-specific clients.
package ai

import "context"

// ContentGenerator produces text for a prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
