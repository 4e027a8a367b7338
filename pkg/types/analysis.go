// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// Granularity is the bucket size used to split a date range.
type Granularity string

const (
	Day     Granularity = "day"
	Week    Granularity = "week"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
	Year    Granularity = "year"
)

// TimePeriod is an inclusive range of calendar days with a display label.
// Start and End are UTC midnights and Start is never after End.
type TimePeriod struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Label string    `json:"label" yaml:"label"`
}

// StartDate returns Start formatted as YYYY-MM-DD.
func (p TimePeriod) StartDate() string { return p.Start.Format(DateLayout) }

// EndDate returns End formatted as YYYY-MM-DD.
func (p TimePeriod) EndDate() string { return p.End.Format(DateLayout) }

// DateLayout is the date format accepted by the content API.
const DateLayout = "2006-01-02"

// ScoredArticle wraps an article with a score in [0,100] and the labeled
// reasons that produced it.
type ScoredArticle struct {
	Article Article  `json:"article" yaml:"article"`
	Score   float64  `json:"score" yaml:"score"`
	Reasons []string `json:"reasons" yaml:"reasons"`
}

// HasReason reports whether reason is among the score's reasons.
func (s ScoredArticle) HasReason(reason string) bool {
	for _, r := range s.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// TrendKind classifies the trajectory of a count series.
type TrendKind string

const (
	TrendIncreasing TrendKind = "increasing"
	TrendDecreasing TrendKind = "decreasing"
	TrendStable     TrendKind = "stable"
	TrendVolatile   TrendKind = "volatile"
)

// PeriodCount is a topic's article count within one period.
type PeriodCount struct {
	Period     TimePeriod `json:"period" yaml:"period"`
	Count      int        `json:"count" yaml:"count"`
	Percentage float64    `json:"percentage" yaml:"percentage"`
}

// TopicTrend is the per-period series and classification for one topic.
type TopicTrend struct {
	Topic    string        `json:"topic" yaml:"topic"`
	Periods  []PeriodCount `json:"periods" yaml:"periods"`
	Total    int           `json:"total" yaml:"total"`
	Trend    TrendKind     `json:"trend" yaml:"trend"`
	Strength float64       `json:"strength" yaml:"strength"`
}

// Counts returns the per-period counts in order.
func (t TopicTrend) Counts() []int {
	out := make([]int, len(t.Periods))
	for i, p := range t.Periods {
		out[i] = p.Count
	}
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseGranularity converts s into a Granularity that must be one of allowed.
func ParseGranularity(s string, allowed ...Granularity) (Granularity, error) {
	for _, g := range allowed {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unsupported interval %q (allowed: %v)", s, allowed)
}
