package domain

import "context"

// VectorDim is the embedding dimensionality. Tied to the deployed model's
// output size; swapping models requires a full reindex.
const VectorDim = 384

// KeyPrefix namespaces all store keys written by this service.
const KeyPrefix = "astroseek:"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
