package label

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultChatURL is the OpenAI-compatible chat completions base URL.
	DefaultChatURL = "https://api.openai.com/v1"

	// DefaultChatModel is the model used for cluster labeling.
	DefaultChatModel = "gpt-4o-mini"

	// DefaultChatTimeout bounds one labeling request.
	DefaultChatTimeout = 30 * time.Second

	// abstractPreviewLength limits how much abstract text each member
	// contributes to the prompt.
	abstractPreviewLength = 300
)

const systemPrompt = "You name clusters of research papers. " +
	"Reply with only a concise 3-6 word topic label, no punctuation or explanation."

// ChatClient labels clusters through an OpenAI-compatible chat completions
// endpoint.
type ChatClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// ChatOption configures a ChatClient.
type ChatOption func(*ChatClient)

// WithChatURL sets a custom base URL (for testing or alternate providers).
func WithChatURL(url string) ChatOption {
	return func(c *ChatClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithChatModel sets the completion model.
func WithChatModel(model string) ChatOption {
	return func(c *ChatClient) {
		c.model = model
	}
}

// WithChatHTTPClient sets a custom HTTP client.
func WithChatHTTPClient(hc *http.Client) ChatOption {
	return func(c *ChatClient) {
		c.httpClient = hc
	}
}

// NewChatClient creates a labeling client. The API key may be empty when the
// endpoint does not require one.
func NewChatClient(apiKey string, opts ...ChatOption) *ChatClient {
	c := &ChatClient{
		httpClient: &http.Client{Timeout: DefaultChatTimeout},
		baseURL:    DefaultChatURL,
		apiKey:     apiKey,
		model:      DefaultChatModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ClusterLabel asks the model for a short topic label covering the members.
func (c *ChatClient) ClusterLabel(ctx context.Context, members []Member) (string, error) {
	if len(members) == 0 {
		return "", fmt.Errorf("no members to label")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildMemberPrompt(members)},
		},
		Temperature: 0.2,
		MaxTokens:   20,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("labeling request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("labeling request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	name := CleanLabel(parsed.Choices[0].Message.Content)
	if name == "" {
		return "", fmt.Errorf("response contained an empty label")
	}
	return name, nil
}

func buildMemberPrompt(members []Member) string {
	var b strings.Builder
	b.WriteString("Papers in this cluster:\n")
	for _, m := range members {
		b.WriteString("- ")
		b.WriteString(m.Title)
		if abstract := truncateRunes(m.Abstract, abstractPreviewLength); abstract != "" {
			b.WriteString(": ")
			b.WriteString(abstract)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// truncateRunes cuts text to at most maxLen bytes on a rune boundary.
func truncateRunes(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}
	valid := maxLen
	for valid > 0 && !utf8.RuneStart(text[valid]) {
		valid--
	}
	return text[:valid]
}
