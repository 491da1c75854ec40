package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// remoteProvider calls an out-of-process embedding endpoint over HTTP.
// The endpoint is treated as an opaque capability: POST {texts, mode} -> {embeddings}.
// Loading is lazy: the first Embed call probes dimensions from the response;
// calls are serialized with embedLock because the remote model behind the
// endpoint is not assumed to be safe for concurrent requests.
type remoteProvider struct {
	endpoint string
	client   *http.Client

	embedLock sync.Mutex
	dims      int
}

func newRemoteProvider(endpoint string) (*remoteProvider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("embedding endpoint must not be empty")
	}
	return &remoteProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type embedRequest struct {
	Texts []string `json:"texts"`
	Mode  string   `json:"mode"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed converts texts into unit-normalized vectors. The dedicated lock
// serializes all calls into the remote model, which may not be thread-safe.
func (p *remoteProvider) Embed(ctx context.Context, texts []string, mode EmbedMode) ([][]float32, error) {
	p.embedLock.Lock()
	defer p.embedLock.Unlock()

	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	body, err := json.Marshal(embedRequest{Texts: texts, Mode: string(mode)})
	if err != nil {
		return nil, fmt.Errorf("encode embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding endpoint returned status %d", resp.StatusCode)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}

	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding endpoint returned %d vectors for %d texts", len(out.Embeddings), len(texts))
	}

	normalizeRows(out.Embeddings)

	if p.dims == 0 && len(out.Embeddings) > 0 {
		p.dims = len(out.Embeddings[0])
	}

	return out.Embeddings, nil
}

// Dimensions returns the dimensionality observed from the last Embed call,
// or 0 before the first call has happened (lazy loading, spec.md section 5).
func (p *remoteProvider) Dimensions() int {
	p.embedLock.Lock()
	defer p.embedLock.Unlock()
	return p.dims
}

func (p *remoteProvider) Close() error {
	return nil
}
