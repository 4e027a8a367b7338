// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package editorial ranks one day's articles by estimated editorial
// importance. A score is an additive sum of labeled rules clamped to
// [0,100]; the reasons list names every rule that fired.
package editorial

import (
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/guardian-mcp/internal/tally"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// Reason labels that callers inspect.
const (
	ReasonHighComplexity = "high complexity"
	ReasonMajorTopic     = "major topic"
)

type weight struct {
	key    string
	score  float64
	reason string
}

// sectionWeights is matched in order against the lowercased section name;
// the first contained key wins.
var sectionWeights = []weight{
	{"politics", 30, "politics priority"},
	{"world", 28, "world news priority"},
	{"uk news", 25, "national news"},
	{"us news", 25, "us news priority"},
	{"business", 22, "business importance"},
	{"environment", 20, "environmental priority"},
	{"society", 18, "social importance"},
	{"science", 16, "science priority"},
	{"technology", 15, "tech significance"},
	{"culture", 12, "cultural story"},
	{"sport", 10, "sports story"},
	{"lifestyle", 8, "lifestyle content"},
	{"opinion", 5, "opinion piece"},
}

const defaultSectionScore = 10

type keywordGroup struct {
	words []string
	score float64
	label string
}

// headlineGroups is scanned in order; only the first matching group counts.
var headlineGroups = []keywordGroup{
	{[]string{"breaking", "urgent", "exclusive"}, 25, "breaking news"},
	{[]string{"crisis", "scandal", "investigation"}, 20, "major story"},
	{[]string{"election", "vote", "poll"}, 18, "political significance"},
	{[]string{"dies", "dead", "death", "killed"}, 18, "major news"},
	{[]string{"wins", "victory", "defeat"}, 15, "significant outcome"},
	{[]string{"announces", "reveals", "confirms"}, 12, "official news"},
	{[]string{"budget", "economy", "recession"}, 15, "economic importance"},
	{[]string{"war", "attack", "conflict"}, 22, "international crisis"},
	{[]string{"climate", "environment", "warming"}, 12, "environmental story"},
}

var watchedTopics = []string{"politics", "world", "brexit", "trump", "climate", "coronavirus", "economy"}

var seniorBylines = []string{"editor", "correspondent", "chief", "political", "foreign", "diplomatic"}

const tagBonus = 8

// Scorer scores articles. Location sets the clock used for the
// publication-hour bonus; nil means time.Local.
type Scorer struct {
	Location *time.Location
}

// ScoreArticle applies every rule to a.
func (s Scorer) ScoreArticle(a types.Article) types.ScoredArticle {
	var score float64
	reasons := []string{}

	w := sectionWeight(a.SectionName)
	score += w.score
	if w.reason != "" {
		reasons = append(reasons, w.reason)
	}

	// A missing word count is treated as zero words.
	words, _ := a.WordCount()
	switch {
	case words > 1500:
		score += 20
		reasons = append(reasons, ReasonHighComplexity)
	case words > 800:
		score += 10
		reasons = append(reasons, "detailed coverage")
	case words < 300:
		score -= 5
	}

	if first, ok := a.FirstPublished(); ok {
		switch h := first.In(s.location()).Hour(); {
		case h >= 6 && h <= 10:
			score += 15
			reasons = append(reasons, "morning breaking news")
		case h >= 11 && h <= 14:
			score += 10
			reasons = append(reasons, "midday update")
		}
	}

	headline := strings.ToLower(a.Title)
	for _, g := range headlineGroups {
		if containsAny(headline, g.words) {
			score += g.score
			reasons = append(reasons, g.label)
			break
		}
	}

	var watched int
	for _, t := range a.Tags {
		if containsAny(strings.ToLower(t.ID), watchedTopics) {
			watched++
		}
	}
	if watched > 0 {
		score += float64(watched * tagBonus)
		reasons = append(reasons, ReasonMajorTopic)
	}

	if containsAny(strings.ToLower(a.Byline()), seniorBylines) {
		score += 10
		reasons = append(reasons, "senior correspondent")
	}

	return types.ScoredArticle{Article: a, Score: types.Clamp(score, 0, 100), Reasons: reasons}
}

// ScoreDay scores and ranks articles, highest first. Equal scores keep
// input order.
func (s Scorer) ScoreDay(articles []types.Article) []types.ScoredArticle {
	out := make([]types.ScoredArticle, len(articles))
	for i, a := range articles {
		out[i] = s.ScoreArticle(a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// SectionBreakdown counts articles per section name, most frequent first.
func SectionBreakdown(articles []types.Article) []tally.Entry {
	var c tally.Counter
	for _, a := range articles {
		name := a.SectionName
		if name == "" {
			name = "Unknown"
		}
		c.Add(name)
	}
	return c.Top(0)
}

// DaySummary describes a ranked day for the report footer.
type DaySummary struct {
	Total          int
	TopSections    []tally.Entry
	AverageScore   float64
	HighComplexity int
}

// Summarize builds the summary of a day. all is every fetched article; top
// is the ranked selection shown to the user.
func Summarize(all []types.Article, top []types.ScoredArticle) DaySummary {
	sum := DaySummary{Total: len(all)}
	sections := SectionBreakdown(all)
	if len(sections) > 3 {
		sections = sections[:3]
	}
	sum.TopSections = sections

	var total float64
	for _, s := range top {
		total += s.Score
		if s.HasReason(ReasonHighComplexity) {
			sum.HighComplexity++
		}
	}
	if len(top) > 0 {
		sum.AverageScore = total / float64(len(top))
	}
	return sum
}

func (s Scorer) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func sectionWeight(name string) weight {
	lower := strings.ToLower(name)
	for _, w := range sectionWeights {
		if strings.Contains(lower, w.key) {
			return w
		}
	}
	return weight{score: defaultSectionScore}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
