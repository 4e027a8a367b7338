// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guardian-mcp/pkg/types"
)

var now = time.Date(2024, 9, 30, 12, 0, 0, 0, time.UTC)

func fixedScorer() Scorer { return Scorer{Now: func() time.Time { return now }} }

func longread(id, title, words string, published time.Time, byline string, keywords ...string) types.Article {
	a := types.Article{ID: id, Title: title, Fields: &types.Fields{
		WordCount:            words,
		Byline:               byline,
		FirstPublicationDate: published,
	}}
	for _, k := range keywords {
		a.Tags = append(a.Tags, types.Tag{ID: "x/" + k, Type: types.TagKeyword, Title: k})
	}
	return a
}

func TestAnalyzeContext(t *testing.T) {
	tests := []struct {
		name      string
		context   string
		pref      string
		interests []string
		types     []string
		themes    []string
	}{
		{
			"interests types and themes",
			"I want a fascinating investigation into climate policy",
			"",
			[]string{"Environment", "Politics"},
			[]string{"investigative"},
			[]string{"intriguing"},
		},
		{
			"topic preference counts",
			"",
			"Football",
			[]string{"Sports"},
			nil,
			nil,
		},
		{
			"fallback interests",
			"",
			"",
			[]string{"Culture", "Society", "World Affairs"},
			nil,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := AnalyzeContext(tt.context, tt.pref)
			assert.Equal(t, tt.interests, p.Interests)
			assert.Equal(t, tt.types, p.Types)
			assert.Equal(t, tt.themes, p.Themes)
		})
	}
}

func TestFallbackNotShared(t *testing.T) {
	p := AnalyzeContext("", "")
	p.Interests[0] = "changed"
	assert.Equal(t, "Culture", FallbackInterests[0])
}

func TestQuarterFixtureRanking(t *testing.T) {
	mid := now.AddDate(0, 0, -20)
	articles := []types.Article{
		longread("a", "The long road", "2200", mid.AddDate(0, 0, -30), "", "Culture"),
		longread("b", "A short night", "500", mid, "", "Culture"),
		longread("c", "The deep archive", "3500", mid, "", "Culture"),
	}
	p := Profile{Interests: []string{"Culture"}}

	ranked := fixedScorer().Rank(articles, p, 3)
	require.Len(t, ranked, 3)

	pos := map[string]int{}
	for i, r := range ranked {
		pos[r.Article.ID] = i
	}
	assert.Less(t, pos["c"], pos["b"], "3500-word article ranks above the 500-word one")
	assert.True(t, ranked[pos["c"]].HasReason(ReasonComprehensive))
	assert.Equal(t, "14 min read", ranked[pos["c"]].ReadingTime)
}

func TestScore(t *testing.T) {
	p := Profile{
		Interests: []string{"Technology", "World Affairs"},
		Types:     []string{"profile"},
		Themes:    []string{"unusual"},
	}
	a := longread("x", "Meet the strange life of a coder", "2500", now.AddDate(0, 0, -45), "Sarah Smith",
		"Technology", "Artificial intelligence (AI)", "World", "Computing", "Internet")

	got := fixedScorer().Score(a, p)
	assert.Equal(t, []string{
		"matches technology",
		"matches world affairs",
		"unusual content",
		"profile style",
		"detailed exploration",
		"fairly recent",
		"acclaimed author",
	}, got.Reasons)
	assert.Equal(t, 100.0, got.Score, "40+20+20+15+18+8+8+8 is capped")
	assert.Equal(t, []string{"Technology", "Artificial intelligence (AI)", "World", "Computing"}, got.Topics)
}

func TestScoreFallbacks(t *testing.T) {
	a := types.Article{ID: "bare", Title: "Untold"}
	got := fixedScorer().Score(a, Profile{Interests: []string{"History"}})

	assert.Equal(t, 40.0, got.Score)
	assert.Equal(t, []string{"quality longform journalism"}, got.Reasons)
	assert.Equal(t, []string{"General Interest"}, got.Topics)
	assert.Equal(t, "Unknown length", got.ReadingTime)
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "Unknown length"},
		{1, "1 min read"},
		{250, "1 min read"},
		{251, "2 min read"},
		{14750, "59 min read"},
		{15000, "1h 0m read"},
		{20000, "1h 20m read"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadingTime(tt.words), "words=%d", tt.words)
	}
}

func TestPopularTopics(t *testing.T) {
	articles := []types.Article{
		longread("1", "", "", time.Time{}, "", "Books", "History"),
		longread("2", "", "", time.Time{}, "", "History"),
		longread("3", "", "", time.Time{}, "", "Music", "History", "Books"),
	}
	assert.Equal(t, []string{"History", "Books"}, PopularTopics(articles, 2))
}
