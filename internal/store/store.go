// Package store persists chunk vectors and their payloads in a vector
// database keyed by deterministic record ids.
package store

import (
	"context"

	"github.com/devrag/devrag/internal/chunk"
)

// Payload is the flat record payload persisted with each vector. The field
// set is fixed so schema drift is caught at compile time; Metadata is the
// one open nested field.
type Payload struct {
	Document      string         `json:"document"` // embedding input text
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	FilePath      string         `json:"file_path"`
	Signature     string         `json:"signature"`
	Documentation string         `json:"documentation"`
	Code          string         `json:"code"`
	Information   string         `json:"information"`
	Metadata      chunk.Metadata `json:"metadata"`
}

// Record is one persisted vector with its payload.
type Record struct {
	ID      string
	Vector  []float32
	Payload Payload
}

// SearchResult is one hit from a similarity search, ordered by score
// descending.
type SearchResult struct {
	ID      string
	Score   float32
	Payload Payload
}

// VectorStore is the external storage contract. Upserting a record with an
// existing id replaces it.
type VectorStore interface {
	// EnsureCollection creates the named collection with the given vector
	// dimensionality and cosine distance if it does not exist.
	EnsureCollection(ctx context.Context, name string, dimensions int) error

	// Upsert writes records into a collection, replacing records with
	// matching ids.
	Upsert(ctx context.Context, collection string, records []Record) error

	// Search returns up to limit records most similar to queryVector.
	Search(ctx context.Context, collection string, queryVector []float32, limit int) ([]SearchResult, error)

	// Count returns the number of records in a collection.
	Count(collection string) int

	// Close releases store resources.
	Close() error
}
