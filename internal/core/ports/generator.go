package ports

import "context"

// TextGenerator is the external language-model collaborator. It is
// untrusted: output must pass the hallucination gate before use, and any
// error means the caller keeps its deterministic fallback. Implementations
// bound their own wait; callers make a single attempt, no retries.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder turns a query string into the vector the track index was built
// with.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
