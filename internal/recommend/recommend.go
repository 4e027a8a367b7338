// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend scores long-form articles against a reader profile.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/guardian-mcp/internal/tally"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

const (
	baseScore      = 40
	interestBonus  = 20
	themeBonus     = 15
	typeBonus      = 18
	wordsPerMinute = 250
	maxTopics      = 4
)

// ReasonComprehensive is given to articles over 3000 words.
const ReasonComprehensive = "comprehensive coverage"

var prominentAuthors = []string{"john", "rachel", "david", "sarah", "michael", "emma"}

// Recommendation is a scored article ready for display.
type Recommendation struct {
	types.ScoredArticle
	Topics      []string `json:"topics" yaml:"topics"`
	ReadingTime string   `json:"reading_time" yaml:"reading_time"`
}

// Scorer scores articles. Now supplies the clock for the recency bonus; nil
// means time.Now.
type Scorer struct {
	Now func() time.Time
}

// Score rates a against p. The result is capped at 100 and always carries
// at least one reason.
func (s Scorer) Score(a types.Article, p Profile) Recommendation {
	score := float64(baseScore)
	var reasons []string

	var titles []string
	for _, t := range a.TagsOfType(types.TagKeyword) {
		titles = append(titles, t.Title)
	}
	for _, interest := range p.Interests {
		if matchesInterest(titles, interest) {
			score += interestBonus
			reasons = append(reasons, "matches "+strings.ToLower(interest))
		}
	}

	text := strings.ToLower(a.Title + " " + a.Standfirst())
	for _, theme := range p.Themes {
		if containsAny(text, themeWords[theme]) {
			score += themeBonus
			reasons = append(reasons, theme+" content")
		}
	}
	for _, typ := range p.Types {
		if containsAny(text, typeWords[typ]) {
			score += typeBonus
			reasons = append(reasons, typ+" style")
		}
	}

	words, _ := a.WordCount()
	switch {
	case words > 3000:
		score += 10
		reasons = append(reasons, ReasonComprehensive)
	case words > 2000:
		score += 8
		reasons = append(reasons, "detailed exploration")
	}

	if first, ok := a.FirstPublished(); ok {
		days := s.now().Sub(first).Hours() / 24
		switch {
		case days < 30:
			score += 12
			reasons = append(reasons, "recent publication")
		case days < 60:
			score += 8
			reasons = append(reasons, "fairly recent")
		}
	}

	if containsAny(strings.ToLower(a.Byline()), prominentAuthors) {
		score += 8
		reasons = append(reasons, "acclaimed author")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "quality longform journalism")
	}

	topics := titles
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	if len(topics) == 0 {
		topics = []string{"General Interest"}
	}

	return Recommendation{
		ScoredArticle: types.ScoredArticle{Article: a, Score: math.Min(score, 100), Reasons: reasons},
		Topics:        topics,
		ReadingTime:   ReadingTime(words),
	}
}

// Rank scores every article and returns the best count, highest first.
// Equal scores keep input order.
func (s Scorer) Rank(articles []types.Article, p Profile, count int) []Recommendation {
	out := make([]Recommendation, len(articles))
	for i, a := range articles {
		out[i] = s.Score(a, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if count > 0 && count < len(out) {
		out = out[:count]
	}
	return out
}

// ReadingTime estimates reading time at 250 words a minute.
func ReadingTime(words int) string {
	if words <= 0 {
		return "Unknown length"
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 60 {
		return fmt.Sprintf("%d min read", minutes)
	}
	return fmt.Sprintf("%dh %dm read", minutes/60, minutes%60)
}

// PopularTopics ranks keyword tag titles across articles by frequency.
func PopularTopics(articles []types.Article, n int) []string {
	var c tally.Counter
	for _, a := range articles {
		for _, t := range a.TagsOfType(types.TagKeyword) {
			c.Add(t.Title)
		}
	}
	var out []string
	for _, e := range c.Top(n) {
		out = append(out, e.Key)
	}
	return out
}

// matchesInterest reports whether any title contains the interest or is
// contained in it, ignoring case.
func matchesInterest(titles []string, interest string) bool {
	in := strings.ToLower(interest)
	for _, t := range titles {
		lt := strings.ToLower(t)
		if lt == "" {
			continue
		}
		if strings.Contains(lt, in) || strings.Contains(in, lt) {
			return true
		}
	}
	return false
}

func (s Scorer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
