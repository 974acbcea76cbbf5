package domain

import "errors"

var (
	// ErrInvalidQuery signals bad search parameters (client fault).
	ErrInvalidQuery = errors.New("invalid query")
	// ErrPageNotFound signals a missing page.
	ErrPageNotFound = errors.New("page not found")
	// ErrSearchBackend signals that the store rejected a query or is unreachable.
	ErrSearchBackend = errors.New("search backend error")
	// ErrEmbeddingProviderError signals an embedding inference failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
