// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package period splits a date range into contiguous calendar buckets.
package period

import (
	"fmt"
	"time"

	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// TimelineGranularities are the buckets accepted by the content timeline.
var TimelineGranularities = []types.Granularity{types.Day, types.Week, types.Month, types.Quarter}

// TrendGranularities are the buckets accepted by multi-topic trend comparison.
var TrendGranularities = []types.Granularity{types.Month, types.Quarter, types.Year}

// Generate returns the ordered periods covering [from, to] at granularity g.
// Both bounds are truncated to UTC calendar days. When from is after to, or g
// is not a known granularity, the result is empty.
func Generate(from, to time.Time, g types.Granularity) []types.TimePeriod {
	from, to = Day(from), Day(to)
	if from.After(to) || !known(g) {
		return nil
	}

	var out []types.TimePeriod
	for cursor := from; !cursor.After(to); {
		end := bucketEnd(cursor, g)
		if end.After(to) {
			end = to
		}
		out = append(out, types.TimePeriod{Start: cursor, End: end, Label: Label(cursor, g)})
		cursor = end.AddDate(0, 0, 1)
	}
	return out
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Label formats the display label of a bucket starting at start.
func Label(start time.Time, g types.Granularity) string {
	switch g {
	case types.Day:
		return start.Format("Jan 2, 2006")
	case types.Week:
		return "Week of " + start.Format("Jan 2")
	case types.Month:
		return start.Format("January 2006")
	case types.Quarter:
		return fmt.Sprintf("Q%d %d", quarter(start.Month()), start.Year())
	case types.Year:
		return start.Format("2006")
	}
	return start.Format(types.DateLayout)
}

// Quarter returns the quarter (1..4) of t.
func Quarter(t time.Time) int { return quarter(t.Month()) }

func quarter(m time.Month) int { return (int(m)-1)/3 + 1 }

func known(g types.Granularity) bool {
	switch g {
	case types.Day, types.Week, types.Month, types.Quarter, types.Year:
		return true
	}
	return false
}

// bucketEnd is the last day of the bucket that starts at cursor. Week
// buckets are seven-day windows anchored at the cursor.
func bucketEnd(cursor time.Time, g types.Granularity) time.Time {
	y, m, _ := cursor.Date()
	switch g {
	case types.Week:
		return cursor.AddDate(0, 0, 6)
	case types.Month:
		return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
	case types.Quarter:
		last := time.Month(quarter(m) * 3)
		return time.Date(y, last+1, 0, 0, 0, 0, 0, time.UTC)
	case types.Year:
		return time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return cursor
}
