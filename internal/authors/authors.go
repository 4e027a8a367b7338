// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors builds publishing statistics for one contributor.
package authors

import (
	"math"
	"strings"

	"github.com/pdiddy/guardian-mcp/internal/tally"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

const (
	recentHeadlines = 5

	// monthsPerPeriod is the fixed denominator of AveragePerMonth. It does
	// not follow the requested date span.
	monthsPerPeriod = 12

	specialistShare = 0.5
)

// FilterByByline keeps the articles whose byline contains author, ignoring
// case. Matching is by substring, so "Ann" also matches "Joanna".
func FilterByByline(articles []types.Article, author string) []types.Article {
	needle := strings.ToLower(author)
	var out []types.Article
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Byline()), needle) {
			out = append(out, a)
		}
	}
	return out
}

// Stats aggregates an author's articles. Build it with Build.
type Stats struct {
	Total            int
	AverageWordCount int
	RecentHeadlines  []string

	sections tally.Counter
	months   tally.Counter
	tags     tally.Counter
}

// Build makes one pass over articles, which must already be filtered to the
// author. Month labels use the UTC first-publication date.
func Build(articles []types.Article) *Stats {
	s := &Stats{Total: len(articles)}
	var words, counted int
	for _, a := range articles {
		section := a.SectionName
		if section == "" {
			section = "Unknown"
		}
		s.sections.Add(section)

		if first, ok := a.FirstPublished(); ok {
			s.months.Add(first.UTC().Format("January 2006"))
		}

		if n, ok := a.WordCount(); ok {
			words += n
			counted++
		}

		for _, t := range a.TagsOfType(types.TagKeyword) {
			s.tags.Add(t.Title)
		}

		if len(s.RecentHeadlines) < recentHeadlines {
			title := a.Title
			if title == "" {
				title = "Untitled"
			}
			s.RecentHeadlines = append(s.RecentHeadlines, title)
		}
	}
	if counted > 0 {
		s.AverageWordCount = int(math.Round(float64(words) / float64(counted)))
	}
	return s
}

// AveragePerMonth is Total divided by twelve.
func (s *Stats) AveragePerMonth() float64 {
	return float64(s.Total) / monthsPerPeriod
}

// TopSections returns the n most covered sections.
func (s *Stats) TopSections(n int) []tally.Entry { return s.sections.Top(n) }

// TopMonths returns the n most active months.
func (s *Stats) TopMonths(n int) []tally.Entry { return s.months.Top(n) }

// TopTags returns the n most frequent keyword tag titles.
func (s *Stats) TopTags(n int) []tally.Entry { return s.tags.Top(n) }

// Share returns count as a fraction of Total.
func (s *Stats) Share(count int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(count) / float64(s.Total)
}

// Style labels the author's typical article length.
func (s *Stats) Style() string {
	switch {
	case s.AverageWordCount < 400:
		return "Brief news reporting"
	case s.AverageWordCount < 800:
		return "Standard journalism"
	}
	return "Long-form analysis"
}

// Specialization returns the leading section when it holds more than half
// of the author's articles.
func (s *Stats) Specialization() (section string, share float64, ok bool) {
	top := s.sections.Top(1)
	if len(top) == 0 {
		return "", 0, false
	}
	share = s.Share(top[0].Count)
	if share <= specialistShare {
		return "", share, false
	}
	return top[0].Key, share, true
}
