// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway is the client for the Guardian content API. It issues
// parameterized read-only queries and returns structured records or a
// classified *Error.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/guardian-mcp/internal/httputil"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// DefaultBaseURL is the public content API endpoint.
const DefaultBaseURL = "https://content.guardianapis.com"

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 2048

// Params are query parameters. Values are scalars; nil and empty-string
// values are dropped when the request is built.
type Params map[string]any

// Client queries the content API. Build it once with New and pass it
// explicitly to every component.
type Client struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	HTTP      *http.Client
}

// New returns a Client for cfg. It fails fast when no API key is set.
func New(cfg types.GatewayConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "guardian-mcp/dev"
	}
	return &Client{
		BaseURL:   strings.TrimRight(base, "/"),
		APIKey:    cfg.APIKey,
		UserAgent: ua,
		HTTP:      httputil.NewClient(cfg.Timeout),
	}, nil
}

// Search queries /search.
func (c *Client) Search(ctx context.Context, params Params) (types.SearchPage, error) {
	var env envelope[searchResponse]
	if err := c.get(ctx, "/search", params, &env); err != nil {
		return types.SearchPage{}, err
	}
	r := env.Response
	page := types.SearchPage{
		Total:       r.Total,
		StartIndex:  r.StartIndex,
		PageSize:    r.PageSize,
		CurrentPage: r.CurrentPage,
		Pages:       r.Pages,
		OrderBy:     r.OrderBy,
		Results:     make([]types.Article, 0, len(r.Results)),
	}
	for _, a := range r.Results {
		page.Results = append(page.Results, a.toArticle())
	}
	return page, nil
}

// GetArticle fetches a single item by id. The id may also be a full
// theguardian.com URL.
func (c *Client) GetArticle(ctx context.Context, id string, params Params) (types.Article, error) {
	path := ParseArticleID(id)
	if path == "" {
		return types.Article{}, &Error{Kind: KindNotFound}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var env envelope[contentResponse]
	if err := c.get(ctx, path, params, &env); err != nil {
		return types.Article{}, err
	}
	if env.Response.Content == nil {
		return types.Article{}, &Error{Kind: KindNotFound}
	}
	return env.Response.Content.toArticle(), nil
}

// Sections lists all content sections.
func (c *Client) Sections(ctx context.Context) ([]types.Section, error) {
	var env envelope[sectionsResponse]
	if err := c.get(ctx, "/sections", nil, &env); err != nil {
		return nil, err
	}
	out := make([]types.Section, 0, len(env.Response.Results))
	for _, s := range env.Response.Results {
		out = append(out, types.Section{ID: s.ID, Title: s.WebTitle, WebURL: s.WebURL})
	}
	return out, nil
}

// SearchTags queries /tags.
func (c *Client) SearchTags(ctx context.Context, params Params) (types.TagPage, error) {
	var env envelope[tagsResponse]
	if err := c.get(ctx, "/tags", params, &env); err != nil {
		return types.TagPage{}, err
	}
	r := env.Response
	page := types.TagPage{
		Total:       r.Total,
		CurrentPage: r.CurrentPage,
		Pages:       r.Pages,
		Results:     make([]types.Tag, 0, len(r.Results)),
	}
	for _, t := range r.Results {
		page.Results = append(page.Results, t.toTag())
	}
	return page, nil
}

// get issues GET base+path with params plus the API key and decodes the
// JSON body into out.
func (c *Client) get(ctx context.Context, path string, params Params, out any) error {
	reqURL := c.BaseURL + path + "?" + c.encode(params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &Error{Kind: KindUnknown, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", c.UserAgent)

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindInvalidCredential, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Kind: KindUpstream, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindUnknown, Err: fmt.Errorf("parsing content API response: %w", err)}
	}
	return nil
}

// encode renders params in key order, dropping empty values and adding the
// API key.
func (c *Client) encode(params Params) string {
	v := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val := params[k]
		if val == nil {
			continue
		}
		s := fmt.Sprint(val)
		if s == "" {
			continue
		}
		v.Set(k, s)
	}
	v.Set("api-key", c.APIKey)
	return v.Encode()
}

// ParseArticleID turns a theguardian.com URL into a content id. Anything
// else is returned unchanged.
func ParseArticleID(idOrURL string) string {
	s := strings.TrimSpace(idOrURL)
	if !strings.HasPrefix(s, "http") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		s = strings.TrimPrefix(s, "https://")
		s = strings.TrimPrefix(s, "http://")
		s = strings.TrimPrefix(s, "www.")
		return strings.TrimPrefix(s, "theguardian.com/")
	}
	if u.Hostname() == "www.theguardian.com" || u.Hostname() == "theguardian.com" {
		return strings.TrimPrefix(u.Path, "/")
	}
	return s
}

// parseTimestamp parses an upstream RFC 3339 timestamp; bad or empty values
// yield the zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
