// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trends measures coverage volume over time. Analyze compares up to
// five topics across calendar periods; Timeline follows one query with
// sample headlines per period.
package trends

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/internal/httputil"
	"github.com/pdiddy/guardian-mcp/internal/period"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// MaxTopics bounds the number of topics compared in one analysis.
const MaxTopics = 5

// seasonalFactor is how far above its overall mean a topic's Q4 mean must
// sit to be reported as seasonal.
const seasonalFactor = 1.2

// ErrTopicCount is returned when Analyze receives no topics or too many.
var ErrTopicCount = fmt.Errorf("between 1 and %d topics are required", MaxTopics)

// Source is the subset of the content gateway the analyzer needs.
type Source interface {
	Search(ctx context.Context, params gateway.Params) (types.SearchPage, error)
}

// Analyzer issues one count query per topic and period, sequentially.
type Analyzer struct {
	Source Source
	Pacer  *httputil.Pacer
	Logger *slog.Logger
}

// Report is the outcome of Analyze.
type Report struct {
	From        time.Time          `json:"from" yaml:"from"`
	To          time.Time          `json:"to" yaml:"to"`
	Granularity types.Granularity  `json:"granularity" yaml:"granularity"`
	Periods     []types.TimePeriod `json:"periods" yaml:"periods"`
	Topics      []types.TopicTrend `json:"topics" yaml:"topics"`
	Correlated  []Pair             `json:"correlated" yaml:"correlated"`
}

// Analyze counts coverage of each topic in each period between from and to.
// A failed period query counts as zero so every topic keeps one entry per
// period.
func (a *Analyzer) Analyze(ctx context.Context, topics []string, from, to time.Time, g types.Granularity) (Report, error) {
	if len(topics) == 0 || len(topics) > MaxTopics {
		return Report{}, ErrTopicCount
	}
	periods := period.Generate(from, to, g)
	rep := Report{From: period.Day(from), To: period.Day(to), Granularity: g, Periods: periods}

	for _, topic := range topics {
		trend := types.TopicTrend{Topic: topic, Periods: make([]types.PeriodCount, 0, len(periods))}
		for _, p := range periods {
			count, err := a.count(ctx, topic, p)
			if err != nil {
				return Report{}, err
			}
			trend.Periods = append(trend.Periods, types.PeriodCount{Period: p, Count: count})
			trend.Total += count
		}
		for i := range trend.Periods {
			if trend.Total > 0 {
				trend.Periods[i].Percentage = float64(trend.Periods[i].Count) / float64(trend.Total) * 100
			}
		}
		counts := trend.Counts()
		trend.Trend = Classify(counts)
		trend.Strength = Strength(counts)
		rep.Topics = append(rep.Topics, trend)
	}
	rep.Correlated = Correlations(rep.Topics)
	return rep, nil
}

// count returns the total for one topic and period. Upstream failures are
// logged and count as zero; only cancellation is returned.
func (a *Analyzer) count(ctx context.Context, topic string, p types.TimePeriod) (int, error) {
	if err := a.Pacer.Wait(ctx); err != nil {
		return 0, err
	}
	page, err := a.Source.Search(ctx, gateway.Params{
		"q":           `"` + topic + `"`,
		"from-date":   p.StartDate(),
		"to-date":     p.EndDate(),
		"page-size":   1,
		"show-fields": "headline",
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		logger(a.Logger).Warn("period count failed", "topic", topic, "period", p.Label, "error", err)
		return 0, nil
	}
	return page.Total, nil
}

// Dominant returns the topic with the most articles. Ties go to the later
// topic.
func (r Report) Dominant() (types.TopicTrend, bool) {
	if len(r.Topics) == 0 {
		return types.TopicTrend{}, false
	}
	best := r.Topics[0]
	for _, t := range r.Topics[1:] {
		if t.Total >= best.Total {
			best = t
		}
	}
	return best, true
}

// FastestGrowing returns the increasing topic with the highest strength.
func (r Report) FastestGrowing() (types.TopicTrend, bool) {
	var best types.TopicTrend
	found := false
	for _, t := range r.Topics {
		if t.Trend != types.TrendIncreasing {
			continue
		}
		if !found || t.Strength > best.Strength {
			best, found = t, true
		}
	}
	return best, found
}

// SeasonalQ4 lists topics whose mean count in fourth-quarter periods is more
// than 1.2 times their overall mean. It only applies to quarterly reports.
func (r Report) SeasonalQ4() []string {
	if r.Granularity != types.Quarter {
		return nil
	}
	var out []string
	for _, t := range r.Topics {
		var q4 []int
		for _, pc := range t.Periods {
			if period.Quarter(pc.Period.Start) == 4 {
				q4 = append(q4, pc.Count)
			}
		}
		if len(q4) == 0 {
			continue
		}
		if mean(q4) > mean(t.Counts())*seasonalFactor {
			out = append(out, t.Topic)
		}
	}
	return out
}

// Ranked returns the topics ordered by their count in period i, highest
// first. Ties keep topic order.
func (r Report) Ranked(i int) []types.TopicTrend {
	out := make([]types.TopicTrend, len(r.Topics))
	copy(out, r.Topics)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Periods[i].Count > out[b].Periods[i].Count
	})
	return out
}

func logger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
