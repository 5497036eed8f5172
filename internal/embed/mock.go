package embed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// MockProvider is a test implementation that generates deterministic
// embeddings by hashing the input text.
type MockProvider struct {
	dimensions int

	// Fail, when set, makes Embed return this error.
	Fail error
}

// NewMockProvider creates a mock embedding provider for testing.
func NewMockProvider(dimensions int) *MockProvider {
	return &MockProvider{dimensions: dimensions}
}

// Embed generates mock embeddings from a hash of each text, ensuring
// deterministic, reproducible vectors.
func (p *MockProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if p.Fail != nil {
		return nil, p.Fail
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		hash := sha256.Sum256([]byte(text))

		embedding := make([]float32, p.dimensions)
		for j := 0; j < p.dimensions; j++ {
			offset := (j * 4) % (len(hash) - 4)
			val := binary.BigEndian.Uint32(hash[offset : offset+4])
			// Normalize to [-1, 1] range
			embedding[j] = (float32(val)/float32(1<<32))*2.0 - 1.0
		}
		embeddings[i] = embedding
	}

	return embeddings, nil
}

// Dimensions returns the dimensionality of mock embeddings.
func (p *MockProvider) Dimensions() int { return p.dimensions }

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error { return nil }
