package pipeline

import (
	"context"
)

// StatementFetcher downloads a statement document by URI.
type StatementFetcher interface {
	FetchStatement(ctx context.Context, uri string) ([]byte, error)
}

// StatementFetcherFunc adapts a function to StatementFetcher.
type StatementFetcherFunc func(ctx context.Context, uri string) ([]byte, error)

// FetchStatement calls f.
func (f StatementFetcherFunc) FetchStatement(ctx context.Context, uri string) ([]byte, error) {
	return f(ctx, uri)
}
