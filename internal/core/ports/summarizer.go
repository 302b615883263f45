package ports

import "context"

// SummarizeInput is the contract with the external analysis collaborator:
// only these four fields are sent.
type SummarizeInput struct {
	Title       string
	Description string
	Category    string
	Address     string
}

// Summarizer produces a plain-text analysis of an issue. Implementations talk
// to an external text-generation API; callers are expected to bound the call
// with a context deadline.
type Summarizer interface {
	Summarize(ctx context.Context, input SummarizeInput) (string, error)
}
