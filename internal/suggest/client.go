// Package suggest asks a chat-completions service to brainstorm related seed
// words.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultAPIVersion is the Azure OpenAI API version used unless overridden.
const DefaultAPIVersion = "2024-02-01"

var (
	// ErrNotReady is returned by a Client that was never initialised.
	ErrNotReady = errors.New("suggestion client is not initialised")
	// ErrEmptyPrompt is returned when the system or user prompt is blank.
	ErrEmptyPrompt = errors.New("system or user prompt content is missing")
)

// Client talks to an Azure OpenAI deployment. The zero value is a valid
// client that is not ready.
type Client struct {
	endpoint   string
	key        string
	apiVersion string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIVersion overrides the api-version query parameter.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient returns a ready Client for endpoint authenticated with key.
func NewClient(endpoint, key string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	key = strings.TrimSpace(key)
	if endpoint == "" || key == "" {
		return nil, fmt.Errorf("endpoint and key are required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		key:        key,
		apiVersion: DefaultAPIVersion,
		httpClient: cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ready reports whether the client can send requests.
func (c *Client) Ready() bool {
	return c != nil && c.endpoint != "" && c.key != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Suggest sends the prompts to the model deployment and returns the reply
// split into trimmed, non-empty lines. A successful reply with no content
// yields an empty slice.
func (c *Client) Suggest(ctx context.Context, system, user, model string) ([]string, error) {
	if !c.Ready() {
		return nil, ErrNotReady
	}
	system = strings.TrimSpace(system)
	user = strings.TrimSpace(user)
	if system == "" || user == "" {
		return nil, ErrEmptyPrompt
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model name is required")
	}

	body, err := json.Marshal(chatRequest{Messages: []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, url.PathEscape(model), url.QueryEscape(c.apiVersion))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.key)

	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("unexpected suggestion status: %s: %s", resp.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("unexpected suggestion status: %s", resp.Status)
	}

	var payload chatResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return []string{}, nil
	}
	return SplitLines(payload.Choices[0].Message.Content), nil
}

// SplitLines returns the trimmed, non-empty lines of s.
func SplitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
