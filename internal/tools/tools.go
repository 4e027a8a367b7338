// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools exposes the Guardian content operations as named tools
// with declared argument schemas. Each call decodes and validates its
// arguments, runs the gateway and analytical components, and renders the
// result as text.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/internal/httputil"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// ErrUnknownTool is returned by Call for names not in the registry.
var ErrUnknownTool = errors.New("unknown tool")

// Gateway is the content API surface the tools use.
type Gateway interface {
	Search(ctx context.Context, params gateway.Params) (types.SearchPage, error)
	GetArticle(ctx context.Context, id string, params gateway.Params) (types.Article, error)
	Sections(ctx context.Context) ([]types.Section, error)
	SearchTags(ctx context.Context, params gateway.Params) (types.TagPage, error)
}

// Deps are the collaborators shared by every tool.
type Deps struct {
	Gateway Gateway

	// Pacer spaces the upstream calls of multi-call tools. Nil disables
	// pacing.
	Pacer *httputil.Pacer

	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time

	// Location is used for the editorial publication-hour rule
	// (default time.Local).
	Location *time.Location
}

type handler func(ctx context.Context, log *slog.Logger, raw json.RawMessage) (string, error)

// Tool describes one callable tool.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	InputSchema Schema `json:"inputSchema" yaml:"input_schema"`

	run handler
}

// Registry holds the tool catalogue and dispatches calls.
type Registry struct {
	deps   Deps
	args   *argValidator
	tools  []Tool
	byName map[string]int
}

// New builds the registry of all tools.
func New(deps Deps) *Registry {
	if deps.Pacer == nil {
		deps.Pacer = httputil.NewPacer(0)
	}
	r := &Registry{deps: deps, args: newArgValidator(), byName: make(map[string]int)}

	handlers := map[string]handler{
		"guardian_search":              r.search,
		"guardian_get_article":         r.getArticle,
		"guardian_longread":            r.longread,
		"guardian_lookback":            r.lookback,
		"guardian_browse_section":      r.browseSection,
		"guardian_get_sections":        r.getSections,
		"guardian_search_tags":         r.searchTags,
		"guardian_search_by_length":    r.searchByLength,
		"guardian_search_by_author":    r.searchByAuthor,
		"guardian_find_related":        r.findRelated,
		"guardian_get_article_tags":    r.getArticleTags,
		"guardian_content_timeline":    r.contentTimeline,
		"guardian_author_profile":      r.authorProfile,
		"guardian_topic_trends":        r.topicTrends,
		"guardian_top_stories_by_date": r.topStoriesByDate,
		"guardian_recommend_longreads": r.recommendLongreads,
	}
	for _, t := range catalog() {
		t.run = handlers[t.Name]
		r.byName[t.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return r
}

// List returns the tool descriptions in catalogue order.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Lookup returns the named tool.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Call runs the named tool with raw JSON arguments and returns its text.
// Content API failures are rendered as "Error: <message>" text rather than
// returned. Argument problems are returned as *ArgumentError.
func (r *Registry) Call(ctx context.Context, name string, raw json.RawMessage) (string, error) {
	tool, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	log := r.logger().With("request_id", uuid.NewString(), "tool", name)
	start := time.Now()
	text, err := tool.run(ctx, log, raw)

	var gerr *gateway.Error
	switch {
	case err == nil:
		log.Debug("tool call complete", "elapsed", time.Since(start))
		return text, nil
	case errors.As(err, &gerr):
		log.Warn("content API error", "kind", gerr.Kind, "error", err)
		return "Error: " + gerr.Error(), nil
	default:
		log.Info("tool call failed", "error", err)
		return "", err
	}
}

func (r *Registry) logger() *slog.Logger {
	if r.deps.Logger != nil {
		return r.deps.Logger
	}
	return slog.Default()
}

func (r *Registry) now() time.Time {
	if r.deps.Now != nil {
		return r.deps.Now()
	}
	return time.Now()
}

func (r *Registry) location() *time.Location {
	if r.deps.Location != nil {
		return r.deps.Location
	}
	return time.Local
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
