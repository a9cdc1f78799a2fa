// Package charts shapes aggregation results into the long (group, category, value)
// rows chart consumers expect, and renders chart specs to images.
//
// Assembly is structural only: it keeps the rounding and ordering established by the
// aggregate package, except where a helper documents a sort.
package charts

import (
	"math"
	"sort"

	"github.com/lueurxax/coverage-dashboard/internal/aggregate"
	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
)

// Point is one bar, slice or segment: a value for a (group, category) pair.
// Category is empty for single-series charts.
type Point struct {
	Group    string  `json:"group"`
	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value"`
}

// MeltPct turns per-group flag percentages into one point per (group, flag).
// Groups keep their order, flags follow the given order and are labelled by network generation.
func MeltPct(groups []aggregate.GroupPct, flags []string) []Point {
	out := make([]Point, 0, len(groups)*len(flags))

	for _, g := range groups {
		for _, f := range flags {
			out = append(out, Point{Group: g.Group, Category: domain.NetworkLabel(f), Value: g.Pct[f]})
		}
	}

	return out
}

// FromCounts converts a frequency table into single-series points, keeping its order.
func FromCounts(counts []aggregate.Count) []Point {
	out := make([]Point, 0, len(counts))

	for _, c := range counts {
		out = append(out, Point{Group: c.Value, Value: float64(c.Count)})
	}

	return out
}

// FromPairs converts stacked flag counts into points grouped by network generation,
// one category per flag token.
func FromPairs(pairs []aggregate.PairCount) []Point {
	out := make([]Point, 0, len(pairs))

	for _, p := range pairs {
		out = append(out, Point{Group: domain.NetworkLabel(p.Column), Category: p.Value, Value: float64(p.Count)})
	}

	return out
}

// FromGroupValues rounds group statistics to places decimals and, when sortDesc is set,
// orders them by descending value. The sort is stable and puts NaN last.
func FromGroupValues(values []aggregate.GroupValue, places int, sortDesc bool) []Point {
	out := make([]Point, 0, len(values))

	for _, v := range values {
		out = append(out, Point{Group: v.Group, Value: aggregate.Round(v.Value, places)})
	}

	if sortDesc {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Value, out[j].Value
			if math.IsNaN(b) {
				return !math.IsNaN(a)
			}

			return a > b
		})
	}

	return out
}

// Categories returns the distinct categories of points in first-seen order.
func Categories(points []Point) []string {
	seen := make(map[string]struct{})

	var out []string

	for _, p := range points {
		if _, ok := seen[p.Category]; ok {
			continue
		}

		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}

	return out
}
