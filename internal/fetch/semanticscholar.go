package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// S2BaseURL is the Semantic Scholar Graph API base URL.
	S2BaseURL = "https://api.semanticscholar.org/graph/v1"

	// s2Fields are the fields requested for paper lookups.
	s2Fields = "title,abstract,authors,year,externalIds"

	// s2RateLimit keeps unauthenticated use inside the public quota.
	s2RateLimit = 1.0
)

// S2Client is a rate-limited client for the Semantic Scholar Graph API.
type S2Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// S2Option configures an S2Client.
type S2Option func(*S2Client)

// WithS2APIKey sets the API key for authenticated requests.
func WithS2APIKey(key string) S2Option {
	return func(c *S2Client) {
		c.apiKey = key
	}
}

// WithS2BaseURL sets a custom base URL (for testing).
func WithS2BaseURL(u string) S2Option {
	return func(c *S2Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithS2HTTPClient sets a custom HTTP client.
func WithS2HTTPClient(hc *http.Client) S2Option {
	return func(c *S2Client) {
		c.httpClient = hc
	}
}

// NewS2Client creates a Semantic Scholar metadata client.
func NewS2Client(opts ...S2Option) *S2Client {
	c := &S2Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(s2RateLimit), 1),
		baseURL:    S2BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type s2Paper struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Year     int    `json:"year"`
	Authors  []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ExternalIDs struct {
		DOI   string `json:"DOI"`
		ArXiv string `json:"ArXiv"`
	} `json:"externalIds"`
}

// FetchByDOI retrieves metadata for a paper identified by DOI. The input may
// be a bare DOI or a doi.org URL.
func (c *S2Client) FetchByDOI(ctx context.Context, doi string) (*Metadata, error) {
	clean, ok := ExtractDOI(doi)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, doi)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/paper/DOI:%s?fields=%s", c.baseURL, url.PathEscape(clean), s2Fields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying Semantic Scholar: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: DOI %s", ErrNotFound, clean)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: Semantic Scholar returned status %d", ErrAPIError, resp.StatusCode)
	}

	var paper s2Paper
	if err := json.NewDecoder(resp.Body).Decode(&paper); err != nil {
		return nil, fmt.Errorf("decoding Semantic Scholar response: %w", err)
	}

	names := make([]string, len(paper.Authors))
	for i, a := range paper.Authors {
		names[i] = a.Name
	}

	meta := &Metadata{
		Title:    collapseWhitespace(paper.Title),
		Abstract: collapseWhitespace(paper.Abstract),
		Authors:  strings.Join(names, ", "),
		Year:     paper.Year,
		DOI:      clean,
		ArXivID:  paper.ExternalIDs.ArXiv,
	}
	if paper.ExternalIDs.DOI != "" {
		meta.DOI = paper.ExternalIDs.DOI
	}
	return meta, nil
}
