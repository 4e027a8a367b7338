// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/guardian-mcp/internal/authors"
	"github.com/pdiddy/guardian-mcp/internal/editorial"
	"github.com/pdiddy/guardian-mcp/internal/recommend"
	"github.com/pdiddy/guardian-mcp/internal/related"
	"github.com/pdiddy/guardian-mcp/internal/trends"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

const maxSharedTags = 3

// Related renders a similarity lookup.
func Related(res related.Result) string {
	if len(res.Related) == 0 {
		return fmt.Sprintf("No related articles found with at least %d shared tags.", res.Threshold)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d related article(s) to '%s':\n\n", len(res.Related), orDefault(res.Reference.Title, "Unknown"))
	for i, m := range res.Related {
		a := m.Article
		fmt.Fprintf(&b, "**%d. %s** (Similarity: %d shared tags)\n", i+1, orDefault(a.Title, "Untitled"), m.Shared())
		if len(m.SharedTags) > 0 {
			shown := m.SharedTags
			if len(shown) > maxSharedTags {
				shown = shown[:maxSharedTags]
			}
			line := strings.Join(shown, ", ")
			if extra := len(m.SharedTags) - len(shown); extra > 0 {
				line += fmt.Sprintf(" (+%d more)", extra)
			}
			fmt.Fprintf(&b, "Shared tags: %s\n", line)
		}
		writeByline(&b, a)
		writePublished(&b, a)
		if s := a.Standfirst(); s != "" {
			fmt.Fprintf(&b, "Summary: %s\n", s)
		}
		fmt.Fprintf(&b, "Section: %s\n", orDefault(a.SectionName, "Unknown"))
		fmt.Fprintf(&b, "URL: %s\n\n", orDefault(a.WebURL, "N/A"))
	}
	return b.String()
}

var intensityMarks = [...]string{"○", "●", "●●", "●●●"}

// Timeline renders the coverage of one query over time.
func Timeline(tl trends.Timeline) string {
	q := tl.Query
	var b strings.Builder
	fmt.Fprintf(&b, "Content Timeline for \"%s\" (%s to %s):\n\n", q.Query,
		q.From.Format(types.DateLayout), q.To.Format(types.DateLayout))

	fmt.Fprintf(&b, "**Total Articles**: %s\n", humanize.Comma(int64(tl.Total)))
	unit := string(q.Granularity)
	if len(tl.Points) != 1 {
		unit += "s"
	}
	fmt.Fprintf(&b, "**Analysis Period**: %d %s\n\n", len(tl.Points), unit)

	peak := tl.Max()
	if peaks := tl.Peaks(); len(peaks) > 0 {
		fmt.Fprintf(&b, "**Peak Coverage** (%s articles):\n", humanize.Comma(int64(peak)))
		for _, p := range peaks {
			fmt.Fprintf(&b, "• %s\n", p.Period.Label)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Timeline Breakdown**:\n")
	for _, p := range tl.Points {
		fmt.Fprintf(&b, "%s **%s**: %s articles\n", intensityMarks[trends.Intensity(p.Count, peak)],
			p.Period.Label, humanize.Comma(int64(p.Count)))
		for _, h := range p.Headlines {
			fmt.Fprintf(&b, "   • %s\n", h)
		}
		b.WriteString("\n")
	}

	if m, ok := tl.Movement(); ok {
		fmt.Fprintf(&b, "**Trend Analysis**: %s\n", movementText(m))
	}
	return b.String()
}

func movementText(m trends.Movement) string {
	switch {
	case m.Kind == types.TrendIncreasing && m.FromZero:
		return "Coverage increased from none in the first half of the period"
	case m.Kind == types.TrendIncreasing:
		return fmt.Sprintf("Coverage increased by %d%% over the period", m.Change)
	case m.Kind == types.TrendDecreasing:
		return fmt.Sprintf("Coverage decreased by %d%% over the period", m.Change)
	}
	return "Coverage remained relatively stable over time"
}

// TrendIcon is the glyph shown next to a topic's total.
func TrendIcon(kind types.TrendKind, strength float64) string {
	switch kind {
	case types.TrendIncreasing:
		if strength > 50 {
			return "📈⬆️"
		}
		return "📈"
	case types.TrendDecreasing:
		if strength < -50 {
			return "📉⬇️"
		}
		return "📉"
	case types.TrendVolatile:
		return "📊"
	}
	return "➡️"
}

var medals = [...]string{"🥇", "🥈", "🥉"}

// TopicTrends renders a multi-topic comparison.
func TopicTrends(rep trends.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic Trends Analysis (%s to %s)\n", rep.From.Format(types.DateLayout), rep.To.Format(types.DateLayout))
	names := make([]string, len(rep.Topics))
	for i, t := range rep.Topics {
		names[i] = t.Topic
	}
	fmt.Fprintf(&b, "Comparing: %s\n\n", strings.Join(names, ", "))

	b.WriteString("**Overall Statistics**\n")
	for _, t := range rep.Topics {
		fmt.Fprintf(&b, "• %s: %s articles %s\n", t.Topic, humanize.Comma(int64(t.Total)), TrendIcon(t.Trend, t.Strength))
	}
	b.WriteString("\n")

	b.WriteString("**Period Breakdown**\n")
	for i, p := range rep.Periods {
		fmt.Fprintf(&b, "\n**%s**\n", p.Label)
		for rank, t := range rep.Ranked(i) {
			icon := "  "
			if rank < len(medals) {
				icon = medals[rank]
			}
			fmt.Fprintf(&b, "%s %s: %s articles\n", icon, t.Topic, humanize.Comma(int64(t.Periods[i].Count)))
		}
	}

	b.WriteString("\n**Comparative Analysis**\n")
	if dom, ok := rep.Dominant(); ok {
		fmt.Fprintf(&b, "• Most Covered: \"%s\" (%s articles)\n", dom.Topic, humanize.Comma(int64(dom.Total)))
	}
	if fast, ok := rep.FastestGrowing(); ok {
		fmt.Fprintf(&b, "• Fastest Growing: \"%s\" (%.1f%% increase)\n", fast.Topic, fast.Strength)
	}
	if len(rep.Correlated) > 0 {
		pairs := make([]string, len(rep.Correlated))
		for i, p := range rep.Correlated {
			pairs[i] = p.A + " & " + p.B
		}
		fmt.Fprintf(&b, "• Correlated Topics: %s\n", strings.Join(pairs, ", "))
	}
	if seasonal := rep.SeasonalQ4(); len(seasonal) > 0 {
		fmt.Fprintf(&b, "• Seasonal Pattern: %s show higher Q4 coverage\n", strings.Join(seasonal, ", "))
	}
	return b.String()
}

// TopStories renders a ranked day. requested is the story count asked for.
func TopStories(day time.Time, section string, requested int, ranked []types.ScoredArticle, sum editorial.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Stories for %s:\n", requested, day.Format("Monday, January 2, 2006"))
	if section != "" {
		fmt.Fprintf(&b, "Section: %s\n", section)
	}
	b.WriteString("\n**Intelligent Story Ranking** (based on editorial importance, complexity, and newsworthiness)\n\n")

	for i, s := range ranked {
		a := s.Article
		marker := fmt.Sprintf("%d. ", i+1)
		switch i {
		case 0:
			marker = "🏆 "
		case 1:
			marker = "🥈 "
		case 2:
			marker = "🥉 "
		}
		fmt.Fprintf(&b, "%s**%s**\n", marker, orDefault(a.Title, "Untitled"))
		fmt.Fprintf(&b, "Score: %.1f (%s)\n", s.Score, strings.Join(s.Reasons, ", "))
		writeByline(&b, a)
		if sf := a.Standfirst(); sf != "" {
			fmt.Fprintf(&b, "Summary: %s\n", sf)
		}
		if a.Fields != nil && a.Fields.WordCount != "" {
			fmt.Fprintf(&b, "Length: %s words\n", a.Fields.WordCount)
		}
		fmt.Fprintf(&b, "Section: %s\n", orDefault(a.SectionName, "Unknown"))
		fmt.Fprintf(&b, "URL: %s\n", orDefault(a.WebURL, "N/A"))
		fmt.Fprintf(&b, "Guardian ID: %s\n\n", orDefault(a.ID, "N/A"))
	}

	b.WriteString("**Day's News Analysis**:\n")
	fmt.Fprintf(&b, "• Total articles: %s\n", humanize.Comma(int64(sum.Total)))
	sections := make([]string, len(sum.TopSections))
	for i, e := range sum.TopSections {
		sections[i] = fmt.Sprintf("%s (%d)", e.Key, e.Count)
	}
	fmt.Fprintf(&b, "• Top sections: %s\n", strings.Join(sections, ", "))
	fmt.Fprintf(&b, "• Average story importance: %.1f/100\n", sum.AverageScore)
	if sum.HighComplexity > 0 {
		fmt.Fprintf(&b, "• Major breaking news events: %d\n", sum.HighComplexity)
	}
	return b.String()
}

// Longreads renders long-read recommendations.
func Longreads(p recommend.Profile, recs []recommend.Recommendation, popular []string) string {
	var b strings.Builder
	b.WriteString("📚 **Curated Long Read Recommendations**\n")
	basis := "diverse topics"
	if len(p.Interests) > 0 {
		basis = strings.Join(p.Interests, ", ")
	}
	fmt.Fprintf(&b, "Based on: %s\n\n", basis)

	for i, r := range recs {
		a := r.Article
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, orDefault(a.Title, "Untitled"))
		fmt.Fprintf(&b, "%s • Relevance: %.1f/100\n", r.ReadingTime, r.Score)
		writeByline(&b, a)
		if first, ok := a.FirstPublished(); ok {
			fmt.Fprintf(&b, "Published: %s\n", first.UTC().Format("January 2, 2006"))
		}
		if s := a.Standfirst(); s != "" {
			fmt.Fprintf(&b, "Summary: %s\n", s)
		}
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(r.Topics, ", "))
		fmt.Fprintf(&b, "Why recommended: %s\n", strings.Join(r.Reasons, ", "))
		fmt.Fprintf(&b, "URL: %s\n", orDefault(a.WebURL, "N/A"))
		fmt.Fprintf(&b, "Guardian ID: %s\n\n", orDefault(a.ID, "N/A"))
	}

	b.WriteString("**Explore More**:\n")
	b.WriteString("• Use guardian_longread with specific queries for targeted searches\n")
	b.WriteString("• Try guardian_search_by_author with Long Read contributors\n")
	if len(popular) > 0 {
		fmt.Fprintf(&b, "• Popular Long Read topics: %s\n", strings.Join(popular, ", "))
	}
	return b.String()
}

// AuthorProfile renders an author's publishing statistics.
func AuthorProfile(author string, from, to time.Time, s *authors.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Author Profile: %s (%s to %s)\n\n", author, from.Format(types.DateLayout), to.Format(types.DateLayout))

	b.WriteString("**Publishing Statistics**\n")
	fmt.Fprintf(&b, "• Total Articles: %s\n", humanize.Comma(int64(s.Total)))
	fmt.Fprintf(&b, "• Average Word Count: %s words\n", humanize.Comma(int64(s.AverageWordCount)))
	fmt.Fprintf(&b, "• Average Output: %.1f articles per month\n\n", s.AveragePerMonth())

	b.WriteString("**Section Coverage**\n")
	for _, e := range s.TopSections(8) {
		fmt.Fprintf(&b, "• %s: %d articles (%.1f%%)\n", e.Key, e.Count, s.Share(e.Count)*100)
	}
	b.WriteString("\n")

	b.WriteString("**Most Active Months**\n")
	for _, e := range s.TopMonths(6) {
		fmt.Fprintf(&b, "• %s: %d articles\n", e.Key, e.Count)
	}
	b.WriteString("\n")

	b.WriteString("**Top Topics**\n")
	for _, e := range s.TopTags(10) {
		fmt.Fprintf(&b, "• %s: %d articles\n", e.Key, e.Count)
	}
	b.WriteString("\n")

	b.WriteString("**Recent Headlines**\n")
	for i, h := range s.RecentHeadlines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h)
	}

	b.WriteString("\n**Writing Patterns**\n")
	fmt.Fprintf(&b, "• Style: %s (avg. %d words)\n", s.Style(), s.AverageWordCount)
	if section, share, ok := s.Specialization(); ok {
		fmt.Fprintf(&b, "• Specialization: %s specialist (%.1f%% coverage)\n", section, share*100)
	} else {
		b.WriteString("• Specialization: Multi-section correspondent\n")
	}
	return b.String()
}
