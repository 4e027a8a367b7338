// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"math"

	"github.com/pdiddy/guardian-mcp/pkg/types"
)

const (
	volatileCV     = 0.5
	stableBandPct  = 15.0
	minClassifyLen = 3
)

// Classify labels a count series. Series shorter than three periods are
// stable. A coefficient of variation above 0.5 is volatile; otherwise a
// half-over-half change under 15% is stable and the sign of the change
// picks increasing or decreasing.
func Classify(counts []int) types.TrendKind {
	if len(counts) < minClassifyLen {
		return types.TrendStable
	}
	if coefficientOfVariation(counts) > volatileCV {
		return types.TrendVolatile
	}
	change := halfChange(counts)
	switch {
	case math.Abs(change) < stableBandPct:
		return types.TrendStable
	case change > 0:
		return types.TrendIncreasing
	default:
		return types.TrendDecreasing
	}
}

// Strength is the signed percentage change of the second-half mean over the
// first-half mean. It is 0 for fewer than two periods or a zero first half.
func Strength(counts []int) float64 {
	if len(counts) < 2 {
		return 0
	}
	return halfChange(counts)
}

// halfChange splits counts so the first half gets the smaller share on odd
// lengths.
func halfChange(counts []int) float64 {
	mid := len(counts) / 2
	first, second := mean(counts[:mid]), mean(counts[mid:])
	if first <= 0 {
		return 0
	}
	return (second - first) / first * 100
}

// coefficientOfVariation is the population standard deviation over the
// mean, or 0 when the mean is 0.
func coefficientOfVariation(counts []int) float64 {
	m := mean(counts)
	if m <= 0 {
		return 0
	}
	var ss float64
	for _, c := range counts {
		d := float64(c) - m
		ss += d * d
	}
	return math.Sqrt(ss/float64(len(counts))) / m
}

func mean(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	var sum int
	for _, c := range counts {
		sum += c
	}
	return float64(sum) / float64(len(counts))
}

// Pair is two topics moving in the same direction.
type Pair struct {
	A, B      string
	Direction types.TrendKind
}

// Correlations returns every unordered pair of topics that are both
// increasing or both decreasing, in input order.
func Correlations(trends []types.TopicTrend) []Pair {
	var out []Pair
	for i := 0; i < len(trends); i++ {
		for j := i + 1; j < len(trends); j++ {
			a, b := trends[i], trends[j]
			if a.Trend != b.Trend {
				continue
			}
			if a.Trend == types.TrendIncreasing || a.Trend == types.TrendDecreasing {
				out = append(out, Pair{A: a.Topic, B: b.Topic, Direction: a.Trend})
			}
		}
	}
	return out
}
