package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/devrag/devrag/internal/chunk"
)

// chromemStore implements VectorStore on an embedded chromem-go database
// persisted under a directory.
type chromemStore struct {
	db          *chromem.DB
	collections map[string]*chromem.Collection
}

// NewChromem opens (or creates) a persistent chromem-go database at the
// given location. An empty location yields an in-memory store, which tests
// use directly.
func NewChromem(location string) (VectorStore, error) {
	var db *chromem.DB
	var err error

	if location == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(location, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector store at %s: %w", location, err)
		}
	}

	return &chromemStore{
		db:          db,
		collections: make(map[string]*chromem.Collection),
	}, nil
}

func (s *chromemStore) EnsureCollection(ctx context.Context, name string, dimensions int) error {
	meta := map[string]string{
		"dimensions": strconv.Itoa(dimensions),
		"distance":   "cosine",
	}

	collection, err := s.db.GetOrCreateCollection(name, meta, nil)
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}

	s.collections[name] = collection
	return nil
}

func (s *chromemStore) Upsert(ctx context.Context, collection string, records []Record) error {
	c, err := s.collection(collection)
	if err != nil {
		return err
	}

	for _, r := range records {
		// Delete-then-add gives upsert semantics; a missing id is fine.
		_ = c.Delete(ctx, nil, nil, r.ID)

		doc := chromem.Document{
			ID:        r.ID,
			Content:   r.Payload.Document,
			Embedding: r.Vector,
			Metadata:  payloadToMetadata(r.Payload),
		}
		if err := c.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("failed to upsert record %s: %w", r.ID, err)
		}
	}

	return nil
}

func (s *chromemStore) Search(ctx context.Context, collection string, queryVector []float32, limit int) ([]SearchResult, error) {
	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	// chromem rejects queries for more results than stored documents.
	if count := c.Count(); limit > count {
		limit = count
	}
	if limit == 0 {
		return nil, nil
	}

	docs, err := c.QueryEmbedding(ctx, queryVector, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, SearchResult{
			ID:      doc.ID,
			Score:   doc.Similarity,
			Payload: metadataToPayload(doc.Content, doc.Metadata),
		})
	}

	return results, nil
}

func (s *chromemStore) Count(collection string) int {
	c, err := s.collection(collection)
	if err != nil {
		return 0
	}
	return c.Count()
}

func (s *chromemStore) Close() error {
	// chromem-go doesn't require explicit cleanup
	return nil
}

func (s *chromemStore) collection(name string) (*chromem.Collection, error) {
	if c, ok := s.collections[name]; ok {
		return c, nil
	}

	c := s.db.GetCollection(name, nil)
	if c == nil {
		return nil, fmt.Errorf("collection %s does not exist", name)
	}
	s.collections[name] = c
	return c, nil
}

// payloadToMetadata flattens a Payload into chromem's string metadata map.
// The nested chunk metadata travels as a JSON value.
func payloadToMetadata(p Payload) map[string]string {
	meta := map[string]string{
		"type":          p.Type,
		"name":          p.Name,
		"file_path":     p.FilePath,
		"signature":     p.Signature,
		"documentation": p.Documentation,
		"code":          p.Code,
		"information":   p.Information,
	}
	if data, err := json.Marshal(p.Metadata); err == nil {
		meta["metadata"] = string(data)
	}
	return meta
}

// metadataToPayload is the inverse of payloadToMetadata.
func metadataToPayload(document string, meta map[string]string) Payload {
	p := Payload{
		Document:      document,
		Type:          meta["type"],
		Name:          meta["name"],
		FilePath:      meta["file_path"],
		Signature:     meta["signature"],
		Documentation: meta["documentation"],
		Code:          meta["code"],
		Information:   meta["information"],
	}
	if raw, ok := meta["metadata"]; ok {
		var m chunk.Metadata
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			p.Metadata = m
		}
	}
	return p
}
