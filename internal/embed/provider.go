// Package embed converts chunk text into fixed-dimension vectors via an
// external embedding service.
package embed

import "context"

// Provider defines the interface for embedding text into vectors.
// Implementations may use local model servers, remote APIs, or other
// embedding services.
type Provider interface {
	// Embed converts an ordered slice of texts into their vector
	// representations, one vector per input, same order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the dimensionality of the vectors produced by
	// this provider.
	Dimensions() int

	// Close releases any resources held by the provider.
	Close() error
}
