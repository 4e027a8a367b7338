// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package related

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// --- fake source ---

type fakeSource struct {
	ref      types.Article
	refErr   error
	byTag    map[string][]types.Article
	failTags map[string]bool
	calls    []gateway.Params
}

func (f *fakeSource) GetArticle(_ context.Context, _ string, _ gateway.Params) (types.Article, error) {
	return f.ref, f.refErr
}

func (f *fakeSource) Search(_ context.Context, p gateway.Params) (types.SearchPage, error) {
	f.calls = append(f.calls, p)
	tag, _ := p["tag"].(string)
	if f.failTags[tag] {
		return types.SearchPage{}, &gateway.Error{Kind: gateway.KindUpstream, StatusCode: 500}
	}
	return types.SearchPage{Results: f.byTag[tag]}, nil
}

func kw(id string) types.Tag { return types.Tag{ID: id, Type: types.TagKeyword, Title: id} }

func article(id, section string, tags ...types.Tag) types.Article {
	return types.Article{ID: id, SectionID: section, Title: id, Tags: tags}
}

func reference() types.Article {
	return types.Article{
		ID:          "world/ref",
		SectionID:   "world",
		Title:       "Reference",
		PublishedAt: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		Tags: []types.Tag{
			kw("world/ukraine"),
			kw("world/russia"),
			{ID: "profile/jane-doe", Type: types.TagContributor},
			{ID: "world/world", Type: types.TagSection},
			{ID: "tone/news", Type: "tone"},
			kw("ukraine"),
			kw("world/ukraine"),
		},
	}
}

func TestUsefulTags(t *testing.T) {
	got := UsefulTags(reference().Tags)
	ids := make([]string, len(got))
	for i, tg := range got {
		ids[i] = tg.ID
	}
	assert.Equal(t, []string{"world/ukraine", "world/russia", "profile/jane-doe"}, ids)
}

func TestFindRanksByShared(t *testing.T) {
	ref := reference()
	a := article("a", "world", kw("world/ukraine"), kw("world/russia"))
	b := article("b", "politics", kw("world/ukraine"), kw("world/russia"), types.Tag{ID: "profile/jane-doe", Type: types.TagContributor})
	c := article("c", "world", kw("world/ukraine"))
	d := article("d", "world", kw("world/russia"), kw("world/ukraine"))

	src := &fakeSource{
		ref: ref,
		byTag: map[string][]types.Article{
			"world/ukraine":    {a, ref, c, d},
			"world/russia":     {a, b, d},
			"profile/jane-doe": {b},
		},
	}
	e := &Engine{Source: src}

	res, err := e.Find(context.Background(), Options{ArticleID: ref.ID})
	require.NoError(t, err)

	var ids []string
	for _, m := range res.Related {
		ids = append(ids, m.Article.ID)
		assert.GreaterOrEqual(t, m.Shared(), 2)
		assert.NotEqual(t, ref.ID, m.Article.ID)
	}
	// b shares 3; a and d share 2 and keep discovery order; c shares 1.
	assert.Equal(t, []string{"b", "a", "d"}, ids)
	assert.Len(t, src.calls, 3)
}

func TestFindExcludeSameSectionAndThreshold(t *testing.T) {
	ref := reference()
	a := article("a", "world", kw("world/ukraine"), kw("world/russia"))
	b := article("b", "politics", kw("world/ukraine"), kw("world/russia"))
	c := article("c", "politics", kw("world/ukraine"))

	src := &fakeSource{ref: ref, byTag: map[string][]types.Article{"world/ukraine": {a, b, c}}}
	e := &Engine{Source: src}

	res, err := e.Find(context.Background(), Options{ArticleID: ref.ID, ExcludeSameSection: true})
	require.NoError(t, err)
	require.Len(t, res.Related, 1)
	assert.Equal(t, "b", res.Related[0].Article.ID)

	res, err = e.Find(context.Background(), Options{ArticleID: ref.ID, Threshold: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, res.Related, 2)
}

func TestFindDegradesOnTagFailure(t *testing.T) {
	ref := reference()
	a := article("a", "world", kw("world/ukraine"), kw("world/russia"))

	src := &fakeSource{
		ref:      ref,
		byTag:    map[string][]types.Article{"world/russia": {a}},
		failTags: map[string]bool{"world/ukraine": true},
	}
	res, err := (&Engine{Source: src}).Find(context.Background(), Options{ArticleID: ref.ID})
	require.NoError(t, err)
	require.Len(t, res.Related, 1)
	assert.Equal(t, "a", res.Related[0].Article.ID)
}

func TestFindFatalConditions(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
		want error
	}{
		{"not found", &fakeSource{refErr: &gateway.Error{Kind: gateway.KindNotFound}}, ErrNotFound},
		{"no tags", &fakeSource{ref: article("x", "world")}, ErrNoTags},
		{"no useful tags", &fakeSource{ref: article("x", "world", kw("ukraine"), types.Tag{ID: "world/world", Type: types.TagSection})}, ErrNoSimilarityBasis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Engine{Source: tt.src}).Find(context.Background(), Options{ArticleID: "x"})
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, tt.src.calls, "no searches on fatal conditions")
		})
	}
}

func TestFindPropagatesGatewayError(t *testing.T) {
	src := &fakeSource{refErr: &gateway.Error{Kind: gateway.KindRateLimited}}
	_, err := (&Engine{Source: src}).Find(context.Background(), Options{ArticleID: "x"})

	var gerr *gateway.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, gateway.KindRateLimited, gerr.Kind)
}

func TestFindDateWindowAndTagLimit(t *testing.T) {
	ref := reference()
	for i := 0; i < 4; i++ {
		ref.Tags = append(ref.Tags, kw("world/extra-"+string(rune('a'+i))))
	}
	src := &fakeSource{ref: ref}

	_, err := (&Engine{Source: src}).Find(context.Background(), Options{ArticleID: ref.ID, MaxDaysOld: 10})
	require.NoError(t, err)
	require.Len(t, src.calls, 5)
	assert.Equal(t, "2024-06-05", src.calls[0]["from-date"])
	assert.Equal(t, "2024-06-25", src.calls[0]["to-date"])
	assert.Equal(t, 20, src.calls[0]["page-size"])
}

func TestFindWideDateWindow(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		from, to string
	}{
		{name: "ten years", days: 3650, from: "2014-06-18", to: "2034-06-13"},
		{name: "beyond duration range", days: 120000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{ref: reference()}
			_, err := (&Engine{Source: src}).Find(context.Background(), Options{ArticleID: "world/ref", MaxDaysOld: tt.days})
			require.NoError(t, err)
			require.NotEmpty(t, src.calls)

			from, err := time.Parse(types.DateLayout, src.calls[0]["from-date"].(string))
			require.NoError(t, err)
			to, err := time.Parse(types.DateLayout, src.calls[0]["to-date"].(string))
			require.NoError(t, err)
			assert.True(t, from.Before(to), "window %s..%s is inverted", from, to)
			if tt.from != "" {
				assert.Equal(t, tt.from, src.calls[0]["from-date"])
				assert.Equal(t, tt.to, src.calls[0]["to-date"])
			} else {
				assert.Less(t, from.Year(), 1700)
				assert.Greater(t, to.Year(), 2350)
			}
		})
	}
}

func TestFindCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{ref: reference(), failTags: map[string]bool{"world/ukraine": true}}
	_, err := (&Engine{Source: src}).Find(ctx, Options{ArticleID: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
