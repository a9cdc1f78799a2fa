// Package aggregate computes grouped descriptive statistics over a filtered table.
//
// Every function is a pure function of its input table. Group results are ordered by
// group key ascending unless documented otherwise. Missing numeric cells are skipped;
// a statistic over no values is NaN and is passed through to callers instead of
// being coerced to zero.
package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
)

// Count is one entry of a frequency table.
type Count struct {
	Value string
	Count int
}

// GroupValue is a numeric statistic of one group.
type GroupValue struct {
	Group string
	Value float64
}

// GroupPct holds, for one group, the percentage of YES rows per flag column.
type GroupPct struct {
	Group string
	Pct   map[string]float64
}

// GroupMode is the most frequent value of one group.
type GroupMode struct {
	Group string
	Mode  string
}

// PairCount counts the rows holding Value in Column.
type PairCount struct {
	Column string
	Value  string
	Count  int
}

// groups partitions row indices by the value of col. Keys are sorted ascending.
// Rows with an empty key belong to no group.
func groups(t *dataset.Table, col int) ([]string, map[string][]int) {
	members := make(map[string][]int)

	for i := 0; i < t.Len(); i++ {
		k := t.Cell(i, col)
		if k == "" {
			continue
		}

		members[k] = append(members[k], i)
	}

	keys := make([]string, 0, len(members))
	for k := range members {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys, members
}

// CountBy returns the frequency table of column ordered by descending count.
// Ties keep first-seen order. Empty cells are not counted.
func CountBy(t *dataset.Table, column string) ([]Count, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	var out []Count

	pos := make(map[string]int)

	for i := 0; i < t.Len(); i++ {
		v := t.Cell(i, col)
		if v == "" {
			continue
		}

		if p, ok := pos[v]; ok {
			out[p].Count++
			continue
		}

		pos[v] = len(out)
		out = append(out, Count{Value: v, Count: 1})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})

	return out, nil
}

// Mean returns the arithmetic mean of the non-missing values of column, or NaN.
func Mean(t *dataset.Table, column string) (float64, error) {
	col, err := t.Column(column)
	if err != nil {
		return math.NaN(), err
	}

	all := make([]int, t.Len())
	for i := range all {
		all[i] = i
	}

	return meanOf(t, all, col), nil
}

// MeanBy returns the mean of valueColumn per distinct groupColumn value.
// A group whose values are all missing reports NaN.
func MeanBy(t *dataset.Table, groupColumn, valueColumn string) ([]GroupValue, error) {
	gcol, err := t.Column(groupColumn)
	if err != nil {
		return nil, err
	}

	vcol, err := t.Column(valueColumn)
	if err != nil {
		return nil, err
	}

	keys, members := groups(t, gcol)
	out := make([]GroupValue, 0, len(keys))

	for _, k := range keys {
		out = append(out, GroupValue{Group: k, Value: meanOf(t, members[k], vcol)})
	}

	return out, nil
}

func meanOf(t *dataset.Table, rows []int, col int) float64 {
	values := make([]float64, 0, len(rows))

	for _, r := range rows {
		if v, ok := t.Float(r, col); ok {
			values = append(values, v)
		}
	}

	if len(values) == 0 {
		return math.NaN()
	}

	return stat.Mean(values, nil)
}

// PctTrueBy returns, per group and flag column, the share of rows whose flag equals
// the YES token, as a percentage rounded to 2 decimals.
func PctTrueBy(t *dataset.Table, groupColumn string, flagColumns []string) ([]GroupPct, error) {
	gcol, err := t.Column(groupColumn)
	if err != nil {
		return nil, err
	}

	fcols := make([]int, len(flagColumns))
	for i, f := range flagColumns {
		if fcols[i], err = t.Column(f); err != nil {
			return nil, err
		}
	}

	keys, members := groups(t, gcol)
	out := make([]GroupPct, 0, len(keys))

	for _, k := range keys {
		rows := members[k]
		pct := make(map[string]float64, len(flagColumns))

		for i, f := range flagColumns {
			yes := 0

			for _, r := range rows {
				if t.Cell(r, fcols[i]) == domain.FlagYes {
					yes++
				}
			}

			pct[f] = Round(float64(yes)/float64(len(rows))*100, 2)
		}

		out = append(out, GroupPct{Group: k, Pct: pct})
	}

	return out, nil
}

// ModeBy returns the most frequent valueColumn value per group.
// Ties go to the value that reaches the maximum count first when the group's rows are
// scanned in table order, so [A B A B] yields A. Empty cells are ignored; a group with
// no values reports "".
func ModeBy(t *dataset.Table, groupColumn, valueColumn string) ([]GroupMode, error) {
	gcol, err := t.Column(groupColumn)
	if err != nil {
		return nil, err
	}

	vcol, err := t.Column(valueColumn)
	if err != nil {
		return nil, err
	}

	keys, members := groups(t, gcol)
	out := make([]GroupMode, 0, len(keys))

	for _, k := range keys {
		out = append(out, GroupMode{Group: k, Mode: modeOf(t, members[k], vcol)})
	}

	return out, nil
}

func modeOf(t *dataset.Table, rows []int, col int) string {
	counts := make(map[string]int)
	best, bestCount := "", 0

	for _, r := range rows {
		v := t.Cell(r, col)
		if v == "" {
			continue
		}

		counts[v]++

		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}

	return best
}

// CountPairs counts rows per (column, value) over the given columns, as if the columns
// were stacked into one long (column, value) table. Output follows the column order
// given, then value ascending.
func CountPairs(t *dataset.Table, columns []string) ([]PairCount, error) {
	var out []PairCount

	for _, c := range columns {
		col, err := t.Column(c)
		if err != nil {
			return nil, err
		}

		keys, members := groups(t, col)
		for _, k := range keys {
			out = append(out, PairCount{Column: c, Value: k, Count: len(members[k])})
		}
	}

	return out, nil
}

// Round rounds v to the given number of decimal places, halves to even.
// NaN and infinities pass through.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	p := math.Pow(10, float64(places))

	return math.RoundToEven(v*p) / p
}
