package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ArxivBaseURL is the arXiv export API endpoint.
	ArxivBaseURL = "http://export.arxiv.org/api/query"

	// arxivRateInterval follows arXiv's request-spacing guidance.
	arxivRateInterval = 3 * time.Second
)

// ArxivClient is a rate-limited client for the arXiv export API.
type ArxivClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ArxivOption configures an ArxivClient.
type ArxivOption func(*ArxivClient)

// WithArxivBaseURL sets a custom endpoint (for testing).
func WithArxivBaseURL(u string) ArxivOption {
	return func(c *ArxivClient) {
		c.baseURL = u
	}
}

// WithArxivHTTPClient sets a custom HTTP client.
func WithArxivHTTPClient(hc *http.Client) ArxivOption {
	return func(c *ArxivClient) {
		c.httpClient = hc
	}
}

// NewArxivClient creates an arXiv metadata client.
func NewArxivClient(opts ...ArxivOption) *ArxivClient {
	c := &ArxivClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(arxivRateInterval), 1),
		baseURL:    ArxivBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
	DOI       string       `xml:"doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

// FetchByID retrieves metadata for one arXiv paper. The identifier may be a
// bare id, a versioned id, or an abs/pdf URL.
func (c *ArxivClient) FetchByID(ctx context.Context, id string) (*Metadata, error) {
	arxivID, ok := ExtractArxivID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + "?id_list=" + url.QueryEscape(arxivID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying arXiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arXiv returned status %d", ErrAPIError, resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding arXiv feed: %w", err)
	}

	if len(feed.Entries) == 0 {
		return nil, fmt.Errorf("%w: arXiv id %s", ErrNotFound, arxivID)
	}
	entry := feed.Entries[0]
	// Unknown ids come back as a single entry titled "Error".
	if entry.Title == "Error" || strings.Contains(entry.ID, "api/errors") {
		return nil, fmt.Errorf("%w: arXiv id %s", ErrNotFound, arxivID)
	}

	names := make([]string, len(entry.Authors))
	for i, a := range entry.Authors {
		names[i] = collapseWhitespace(a.Name)
	}

	year := 0
	if len(entry.Published) >= 4 {
		year, _ = strconv.Atoi(entry.Published[:4])
	}

	return &Metadata{
		Title:    collapseWhitespace(entry.Title),
		Abstract: collapseWhitespace(entry.Summary),
		Authors:  strings.Join(names, ", "),
		Year:     year,
		DOI:      entry.DOI,
		ArXivID:  arxivID,
	}, nil
}
