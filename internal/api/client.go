// Package api provides the HTTP client for the Recipe Service, the remote
// backend that owns the persistent recipe catalog.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// DefaultBaseURL is the public Recipe Service deployment.
const DefaultBaseURL = "https://recipe-app-backend-1.onrender.com"

// Compile-time interface check.
var _ domain.RecipeService = (*Client)(nil)

// ── Wire types ───────────────────────────────────────────────────

// recipeJSON is a recipe as returned by GET /recipes.
type recipeJSON struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// draftJSON is the request body of POST /recipes.
type draftJSON struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

func (r recipeJSON) toDomain() domain.Recipe {
	return domain.Recipe{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout. Zero means no timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// Client talks to the Recipe Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a Recipe Service client for the given base URL
// (e.g. "https://recipes.example.com"). Requests never time out unless
// WithHTTPTimeout is given.
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches the full recipe collection in service order.
func (c *Client) List(ctx context.Context) ([]domain.Recipe, error) {
	const op = "list recipes"
	url := c.baseURL + "/recipes"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("api: %s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("GET %s", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s: %w: %w", op, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: %s: read response: %w: %w", op, domain.ErrTransport, err)
	}

	if !success(resp.StatusCode) {
		return nil, statusError(op, resp, respBody)
	}

	var wire []recipeJSON
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, fmt.Errorf("api: %s: decode response: %w: %w", op, domain.ErrService, err)
	}

	out := make([]domain.Recipe, len(wire))
	for i, r := range wire {
		out[i] = r.toDomain()
	}
	c.log.Debug("fetched %d recipes", len(out))
	return out, nil
}

// Create submits a new recipe. Any 2xx status is success; the response
// body is not read.
func (c *Client) Create(ctx context.Context, draft domain.Draft) error {
	const op = "create recipe"
	url := c.baseURL + "/recipes"

	jsonData, err := json.Marshal(draftJSON{
		Title:       draft.Title,
		Description: draft.Description,
		Ingredients: nonNil(draft.Ingredients),
		Steps:       nonNil(draft.Steps),
	})
	if err != nil {
		return fmt.Errorf("api: %s: marshal payload: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("api: %s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("POST %s (%d bytes)", url, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: %w: %w", op, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return statusError(op, resp, body)
	}

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	c.log.Info("recipe created: %q", draft.Title)
	return nil
}

func success(code int) bool {
	return code >= 200 && code < 300
}

func statusError(op string, resp *http.Response, body []byte) error {
	return fmt.Errorf("api: %w", &domain.ServiceError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       truncate(strings.TrimSpace(string(body)), 200),
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
