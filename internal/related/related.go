// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package related finds articles similar to a reference article by counting
// the specific tags they share with it.
package related

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/internal/httputil"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

const (
	DefaultThreshold = 2
	DefaultPageSize  = 10
	MaxPageSize      = 50

	// maxSearchTags bounds the number of per-tag searches.
	maxSearchTags = 5
	tagPageSize   = 20
)

var (
	ErrNotFound          = errors.New("Original article not found.")
	ErrNoTags            = errors.New("Original article has no tags for similarity matching.")
	ErrNoSimilarityBasis = errors.New("Original article has no specific tags for similarity matching.")
)

// Source is the subset of the content gateway the engine needs.
type Source interface {
	GetArticle(ctx context.Context, id string, params gateway.Params) (types.Article, error)
	Search(ctx context.Context, params gateway.Params) (types.SearchPage, error)
}

// Options control one similarity lookup.
type Options struct {
	ArticleID          string
	Threshold          int
	ExcludeSameSection bool

	// MaxDaysOld limits candidates to ±MaxDaysOld days around the reference
	// publication date. Zero means unbounded.
	MaxDaysOld int

	PageSize int
}

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	return o
}

// Match is a candidate article with the useful tag ids it shares with the
// reference.
type Match struct {
	Article    types.Article `json:"article" yaml:"article"`
	SharedTags []string      `json:"shared_tags" yaml:"shared_tags"`
}

// Shared returns the shared-tag count.
func (m Match) Shared() int { return len(m.SharedTags) }

// Result is the outcome of Find.
type Result struct {
	Reference  types.Article `json:"reference" yaml:"reference"`
	UsefulTags []types.Tag   `json:"useful_tags" yaml:"useful_tags"`
	Threshold  int           `json:"threshold" yaml:"threshold"`
	Related    []Match       `json:"related" yaml:"related"`
}

// Engine runs similarity lookups against a Source.
type Engine struct {
	Source Source
	Pacer  *httputil.Pacer
	Logger *slog.Logger
}

// Find returns the candidates sharing at least opts.Threshold useful tags
// with the reference article, most similar first. Equal counts keep the
// order in which candidates were discovered.
func (e *Engine) Find(ctx context.Context, opts Options) (Result, error) {
	opts = opts.withDefaults()
	log := e.logger()

	ref, err := e.Source.GetArticle(ctx, opts.ArticleID, gateway.Params{
		"show-tags":   "all",
		"show-fields": "headline,firstPublicationDate",
	})
	if errors.Is(err, gateway.ErrNotFound) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("fetching reference article: %w", err)
	}
	if len(ref.Tags) == 0 {
		return Result{}, ErrNoTags
	}

	useful := UsefulTags(ref.Tags)
	if len(useful) == 0 {
		return Result{}, ErrNoSimilarityBasis
	}

	res := Result{Reference: ref, UsefulTags: useful, Threshold: opts.Threshold}

	seen := map[string]bool{ref.ID: true}
	var candidates []types.Article
	for i, tag := range useful {
		if i == maxSearchTags {
			break
		}
		if err := e.Pacer.Wait(ctx); err != nil {
			return Result{}, err
		}
		page, err := e.Source.Search(ctx, e.tagParams(tag, ref, opts))
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			log.Warn("tag search failed", "tag", tag.ID, "error", err)
			continue
		}
		for _, a := range page.Results {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			candidates = append(candidates, a)
		}
	}

	for _, a := range candidates {
		if opts.ExcludeSameSection && a.SectionID == ref.SectionID {
			continue
		}
		shared := sharedTags(a, useful)
		if len(shared) < opts.Threshold {
			continue
		}
		res.Related = append(res.Related, Match{Article: a, SharedTags: shared})
	}

	sort.SliceStable(res.Related, func(i, j int) bool {
		return res.Related[i].Shared() > res.Related[j].Shared()
	})
	if len(res.Related) > opts.PageSize {
		res.Related = res.Related[:opts.PageSize]
	}

	log.Debug("related lookup complete", "reference", ref.ID,
		"useful_tags", len(useful), "candidates", len(candidates), "matches", len(res.Related))
	return res, nil
}

// UsefulTags keeps keyword, contributor and series tags whose id has at
// least two path segments. Duplicate ids are dropped.
func UsefulTags(tags []types.Tag) []types.Tag {
	var out []types.Tag
	seen := make(map[string]bool)
	for _, t := range tags {
		switch t.Type {
		case types.TagKeyword, types.TagContributor, types.TagSeries:
		default:
			continue
		}
		if t.Segments() < 2 || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func (e *Engine) tagParams(tag types.Tag, ref types.Article, opts Options) gateway.Params {
	p := gateway.Params{
		"tag":         tag.ID,
		"show-tags":   "all",
		"show-fields": "headline,standfirst,byline,publication,firstPublicationDate",
		"page-size":   tagPageSize,
	}
	if opts.MaxDaysOld > 0 && !ref.PublishedAt.IsZero() {
		at := ref.PublishedAt.UTC()
		p["from-date"] = at.AddDate(0, 0, -opts.MaxDaysOld).Format(types.DateLayout)
		p["to-date"] = at.AddDate(0, 0, opts.MaxDaysOld).Format(types.DateLayout)
	}
	return p
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// sharedTags lists the useful tag ids that a also carries, in useful order.
func sharedTags(a types.Article, useful []types.Tag) []string {
	has := make(map[string]bool, len(a.Tags))
	for _, t := range a.Tags {
		has[t.ID] = true
	}
	var out []string
	for _, t := range useful {
		if has[t.ID] {
			out = append(out, t.ID)
		}
	}
	return out
}
