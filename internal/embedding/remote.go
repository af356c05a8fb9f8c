package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultRemoteURL is the default feature-extraction endpoint.
	DefaultRemoteURL = "https://api-inference.huggingface.co/pipeline/feature-extraction/sentence-transformers/all-MiniLM-L6-v2"

	// DefaultRemoteModel is the model name recorded for remote embeddings.
	DefaultRemoteModel = "all-MiniLM-L6-v2"

	// DefaultDimensions is the expected output dimensions for all-MiniLM.
	DefaultDimensions = 384

	// DefaultTimeout is the timeout for a single embedding request.
	DefaultTimeout = 30 * time.Second

	// DefaultLoadingWait is how long to wait before the single retry when
	// the service reports the model is still loading (HTTP 503).
	DefaultLoadingWait = 15 * time.Second
)

// RemoteProvider generates embeddings by calling a hosted feature-extraction
// service. When the service signals that the model is still loading it waits
// once and retries exactly one time; every other failure is returned to the
// caller, who decides whether to fall back.
type RemoteProvider struct {
	url         string
	model       string
	token       string
	dimensions  int
	loadingWait time.Duration
	client      *http.Client
}

// RemoteOption configures a RemoteProvider.
type RemoteOption func(*RemoteProvider)

// WithURL sets the feature-extraction endpoint URL.
func WithURL(url string) RemoteOption {
	return func(p *RemoteProvider) {
		p.url = url
	}
}

// WithToken sets the bearer token for authenticated requests.
func WithToken(token string) RemoteOption {
	return func(p *RemoteProvider) {
		p.token = token
	}
}

// WithModel sets the model name recorded on embeddings.
func WithModel(model string) RemoteOption {
	return func(p *RemoteProvider) {
		p.model = model
	}
}

// WithDimensions sets the expected vector dimensions.
func WithDimensions(dims int) RemoteOption {
	return func(p *RemoteProvider) {
		p.dimensions = dims
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) RemoteOption {
	return func(p *RemoteProvider) {
		p.client.Timeout = timeout
	}
}

// WithLoadingWait sets the wait before the single model-loading retry.
func WithLoadingWait(d time.Duration) RemoteOption {
	return func(p *RemoteProvider) {
		p.loadingWait = d
	}
}

// NewRemoteProvider creates a remote embedding provider.
func NewRemoteProvider(opts ...RemoteOption) *RemoteProvider {
	p := &RemoteProvider{
		url:         DefaultRemoteURL,
		model:       DefaultRemoteModel,
		dimensions:  DefaultDimensions,
		loadingWait: DefaultLoadingWait,
		client:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// remoteEmbedRequest is the request body for the feature-extraction API.
type remoteEmbedRequest struct {
	Inputs  string        `json:"inputs"`
	Options remoteOptions `json:"options"`
}

type remoteOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Embed generates an embedding for the given text.
func (p *RemoteProvider) Embed(ctx context.Context, text string) (Embedding, error) {
	vec, status, err := p.doEmbed(ctx, text)
	if err == nil {
		return Embedding{Vector: vec}, nil
	}

	// 503 means the model is still loading. Wait once and retry exactly
	// one time; any failure after that is the caller's problem.
	if status != http.StatusServiceUnavailable {
		return Embedding{}, err
	}

	select {
	case <-time.After(p.loadingWait):
	case <-ctx.Done():
		return Embedding{}, ctx.Err()
	}

	vec, _, err = p.doEmbed(ctx, text)
	if err != nil {
		return Embedding{}, err
	}
	return Embedding{Vector: vec}, nil
}

// doEmbed performs one embedding request. The returned status is the HTTP
// status code when one was received, 0 otherwise.
func (p *RemoteProvider) doEmbed(ctx context.Context, text string) ([]float32, int, error) {
	body, err := json.Marshal(remoteEmbedRequest{
		Inputs:  text,
		Options: remoteOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	vec, err := decodeVector(raw)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if len(vec) != p.dimensions {
		return nil, resp.StatusCode, fmt.Errorf("unexpected embedding dimensions: got %d, want %d", len(vec), p.dimensions)
	}
	return vec, resp.StatusCode, nil
}

// decodeVector accepts exactly two payload shapes: a flat vector, or a
// singleton-wrapped vector. Anything else is rejected so the caller can
// route to the fallback path.
func decodeVector(raw []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	var wrapped [][]float32
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped) > 0 && len(wrapped[0]) > 0 {
		return wrapped[0], nil
	}

	return nil, fmt.Errorf("malformed embedding payload")
}

// ModelName returns the name of the embedding model.
func (p *RemoteProvider) ModelName() string {
	return p.model
}

// Dimensions returns the expected vector dimensions.
func (p *RemoteProvider) Dimensions() int {
	return p.dimensions
}
