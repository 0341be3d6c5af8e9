// Package api is the client for the phrase backend's REST surface. The
// backend is treated as opaque: three list endpoints and the liveness root.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Phrase is one record from GET /api/frases/{category}/{subcategory}.
type Phrase struct {
	Ordem    int    `json:"ordem"`
	Nome     string `json:"nome"`
	Conteudo string `json:"conteudo"`
}

// Client talks to the phrase backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Categories fetches the ordered category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "/api/categorias", &names); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return names, nil
}

// Subcategories fetches the ordered subcategory names for a category.
func (c *Client) Subcategories(ctx context.Context, category string) ([]string, error) {
	var names []string
	path := "/api/subcategorias/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, &names); err != nil {
		return nil, fmt.Errorf("failed to load subcategories for %q: %w", category, err)
	}
	return names, nil
}

// Phrases fetches the ordered phrase records for a category/subcategory pair.
// Literal \n escape sequences in the content are rendered as real line breaks
// before the records leave this package.
func (c *Client) Phrases(ctx context.Context, category, subcategory string) ([]Phrase, error) {
	var phrases []Phrase
	path := "/api/frases/" + url.PathEscape(category) + "/" + url.PathEscape(subcategory)
	if err := c.getJSON(ctx, path, &phrases); err != nil {
		return nil, fmt.Errorf("failed to load phrases for %q/%q: %w", category, subcategory, err)
	}
	for i := range phrases {
		phrases[i].Conteudo = DecodeContent(phrases[i].Conteudo)
	}
	return phrases, nil
}

// DecodeContent replaces the backend's literal two-character newline escapes
// with real line breaks.
func DecodeContent(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
