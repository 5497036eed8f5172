package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPProvider talks to an embedding server over its JSON /embed endpoint.
type HTTPProvider struct {
	endpoint   string
	dimensions int
	client     *http.Client
}

// NewHTTPProvider creates a provider against the given endpoint URL. The
// dimensionality is not validated here; a mismatch surfaces at first use in
// the store.
func NewHTTPProvider(endpoint string, dimensions int) *HTTPProvider {
	return &HTTPProvider{
		endpoint:   endpoint,
		dimensions: dimensions,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// embedRequest represents the JSON request body for the /embed endpoint.
type embedRequest struct {
	Texts []string `json:"texts"`
	Model string   `json:"model,omitempty"`
}

// embedResponse represents the JSON response from the /embed endpoint.
type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed converts a slice of text strings into their vector representations.
func (p *HTTPProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	jsonData, err := json.Marshal(embedRequest{Texts: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding server returned status %d", resp.StatusCode)
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embedResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding server returned %d vectors for %d texts",
			len(embedResp.Embeddings), len(texts))
	}

	return embedResp.Embeddings, nil
}

// Dimensions returns the configured embedding dimensionality.
func (p *HTTPProvider) Dimensions() int { return p.dimensions }

// Close is a no-op; the provider holds no long-lived resources.
func (p *HTTPProvider) Close() error { return nil }
