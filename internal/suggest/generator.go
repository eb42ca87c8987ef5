// ABOUTME: Generator interface consumed by the suggestion pipelines
// ABOUTME: Abstracts the external text-generation capability

package suggest

import "context"

// Generator produces free-form text from a prompt. Implementations are
// network-bound, fallible, and non-deterministic in content; callers must
// treat every reply as untrusted until validated.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
