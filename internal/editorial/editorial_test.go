// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editorial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guardian-mcp/pkg/types"
)

func scorer() Scorer { return Scorer{Location: time.UTC} }

func story(section, title, words, byline string, hour int, tags ...string) types.Article {
	a := types.Article{ID: title, SectionName: section, Title: title, Fields: &types.Fields{
		WordCount: words,
		Byline:    byline,
	}}
	if hour >= 0 {
		a.Fields.FirstPublicationDate = time.Date(2024, 3, 4, hour, 0, 0, 0, time.UTC)
	}
	for _, id := range tags {
		a.Tags = append(a.Tags, types.Tag{ID: id, Type: types.TagKeyword})
	}
	return a
}

func TestMaximumFixture(t *testing.T) {
	a := story("Politics", "Breaking: cabinet reshuffle", "5000", "Political Editor", 8, "politics/politics")
	got := scorer().ScoreArticle(a)

	assert.Equal(t, 100.0, got.Score)
	assert.Equal(t, []string{
		"politics priority",
		"high complexity",
		"morning breaking news",
		"breaking news",
		"major topic",
		"senior correspondent",
	}, got.Reasons)
}

func TestScoreRules(t *testing.T) {
	tests := []struct {
		name    string
		article types.Article
		score   float64
		reasons []string
	}{
		{
			"default section short piece",
			story("Fashion", "Spring looks", "200", "", -1),
			5, []string{},
		},
		{
			"missing word count is penalised",
			story("Sport", "Match report", "", "", -1),
			5, []string{"sports story"},
		},
		{
			"detailed midday",
			story("Science", "New telescope images", "900", "", 12),
			16 + 10 + 10, []string{"science priority", "detailed coverage", "midday update"},
		},
		{
			"first headline group only",
			story("Opinion", "Crisis as election vote looms", "500", "", 20),
			5 + 20, []string{"opinion piece", "major story"},
		},
		{
			"uk news before us news",
			story("UK news", "Rail timetable", "500", "", -1),
			25, []string{"national news"},
		},
		{
			"tag bonus per tag single reason",
			story("Culture", "Film review", "500", "", -1, "world/europe", "environment/climate-crisis", "film/film"),
			12 + 16, []string{"cultural story", "major topic"},
		},
		{
			"clamped at zero",
			types.Article{SectionName: "Opinion"},
			0, []string{"opinion piece"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer().ScoreArticle(tt.article)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.reasons, got.Reasons)
		})
	}
}

func TestHourUsesLocation(t *testing.T) {
	a := story("Fashion", "x", "500", "", 4)
	assert.Equal(t, 10.0, scorer().ScoreArticle(a).Score)

	tokyo := time.FixedZone("JST", 9*3600)
	got := Scorer{Location: tokyo}.ScoreArticle(a)
	assert.Equal(t, 20.0, got.Score, "04:00 UTC is 13:00 in JST")
}

func TestScoreDayStableAndBounded(t *testing.T) {
	articles := []types.Article{
		story("Sport", "a", "500", "", -1),
		story("Politics", "b", "500", "", -1),
		story("Sport", "c", "500", "", -1),
		story("Politics", "Breaking war crisis", "5000", "chief correspondent", 9, "politics/a", "world/b", "uk/brexit"),
	}
	got := scorer().ScoreDay(articles)
	require.Len(t, got, 4)

	ids := []string{got[0].Article.ID, got[1].Article.ID, got[2].Article.ID, got[3].Article.ID}
	assert.Equal(t, []string{"Breaking war crisis", "b", "a", "c"}, ids)
	for _, s := range got {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 100.0)
	}
}

func TestSummarize(t *testing.T) {
	all := []types.Article{
		story("World news", "a", "2000", "", -1),
		story("Sport", "b", "100", "", -1),
		story("World news", "c", "100", "", -1),
		story("", "d", "100", "", -1),
		story("Music", "e", "100", "", -1),
	}
	top := scorer().ScoreDay(all)[:2]
	sum := Summarize(all, top)

	assert.Equal(t, 5, sum.Total)
	require.Len(t, sum.TopSections, 3)
	assert.Equal(t, "World news", sum.TopSections[0].Key)
	assert.Equal(t, 2, sum.TopSections[0].Count)
	assert.Equal(t, "Sport", sum.TopSections[1].Key)
	assert.Equal(t, "Unknown", sum.TopSections[2].Key)
	assert.Equal(t, 1, sum.HighComplexity)
	assert.InDelta(t, (48.0+23.0)/2, sum.AverageScore, 1e-9)
}
