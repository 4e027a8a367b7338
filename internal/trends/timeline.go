// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"context"
	"math"
	"time"

	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/internal/period"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

const (
	timelinePageSize = 10
	sampleHeadlines  = 3

	// movementBandPct is the half-over-half change below which a timeline
	// is reported as stable.
	movementBandPct = 10.0
)

// TimelineQuery selects the coverage to follow.
type TimelineQuery struct {
	Query       string
	Section     string
	From, To    time.Time
	Granularity types.Granularity
}

// Point is one period of a timeline.
type Point struct {
	Period    types.TimePeriod `json:"period" yaml:"period"`
	Count     int              `json:"count" yaml:"count"`
	Headlines []string         `json:"headlines,omitempty" yaml:"headlines,omitempty"`
}

// Timeline is the per-period coverage of one query.
type Timeline struct {
	Query  TimelineQuery `json:"-" yaml:"-"`
	Points []Point       `json:"points" yaml:"points"`
	Total  int           `json:"total" yaml:"total"`
}

// Timeline fetches the count and up to three sample headlines for every
// period of q. Failed periods are zero with no headlines.
func (a *Analyzer) Timeline(ctx context.Context, q TimelineQuery) (Timeline, error) {
	out := Timeline{Query: q}
	for _, p := range period.Generate(q.From, q.To, q.Granularity) {
		if err := a.Pacer.Wait(ctx); err != nil {
			return Timeline{}, err
		}
		page, err := a.Source.Search(ctx, gateway.Params{
			"q":           q.Query,
			"section":     q.Section,
			"from-date":   p.StartDate(),
			"to-date":     p.EndDate(),
			"page-size":   timelinePageSize,
			"show-fields": "headline,firstPublicationDate",
			"order-by":    "relevance",
		})
		pt := Point{Period: p}
		if err != nil {
			if ctx.Err() != nil {
				return Timeline{}, ctx.Err()
			}
			logger(a.Logger).Warn("timeline period failed", "query", q.Query, "period", p.Label, "error", err)
		} else {
			pt.Count = page.Total
			for i, art := range page.Results {
				if i == sampleHeadlines {
					break
				}
				title := art.Title
				if title == "" {
					title = "Untitled"
				}
				pt.Headlines = append(pt.Headlines, title)
			}
		}
		out.Points = append(out.Points, pt)
		out.Total += pt.Count
	}
	return out, nil
}

// Max returns the highest period count.
func (t Timeline) Max() int {
	m := 0
	for _, p := range t.Points {
		if p.Count > m {
			m = p.Count
		}
	}
	return m
}

// Peaks returns the periods that reach the maximum count. It is empty when
// every period is zero.
func (t Timeline) Peaks() []Point {
	m := t.Max()
	if m == 0 {
		return nil
	}
	var out []Point
	for _, p := range t.Points {
		if p.Count == m {
			out = append(out, p)
		}
	}
	return out
}

// Intensity buckets count relative to the peak count: 0 for none, 1 below
// 30% of the peak, 2 below 70%, otherwise 3.
func Intensity(count, peak int) int {
	switch {
	case count == 0:
		return 0
	case float64(count) < float64(peak)*0.3:
		return 1
	case float64(count) < float64(peak)*0.7:
		return 2
	}
	return 3
}

// Movement summarizes the half-over-half change of a timeline.
type Movement struct {
	Kind types.TrendKind

	// Change is the rounded absolute percentage change.
	Change int

	// FromZero is set when the first half had no coverage at all.
	FromZero bool
}

// Movement compares the mean of the second half of the periods against the
// first half. It reports false for fewer than three periods.
func (t Timeline) Movement() (Movement, bool) {
	if len(t.Points) < minClassifyLen {
		return Movement{}, false
	}
	counts := make([]int, len(t.Points))
	for i, p := range t.Points {
		counts[i] = p.Count
	}
	mid := len(counts) / 2
	first, second := mean(counts[:mid]), mean(counts[mid:])
	if first == 0 {
		if second > 0 {
			return Movement{Kind: types.TrendIncreasing, FromZero: true}, true
		}
		return Movement{Kind: types.TrendStable}, true
	}

	change := (second - first) / first * 100
	switch {
	case math.Abs(change) < movementBandPct:
		return Movement{Kind: types.TrendStable}, true
	case change > 0:
		return Movement{Kind: types.TrendIncreasing, Change: int(math.Round(change))}, true
	default:
		return Movement{Kind: types.TrendDecreasing, Change: int(math.Round(-change))}, true
	}
}
