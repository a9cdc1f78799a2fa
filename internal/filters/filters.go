// Package filters restricts a table to the rows matching the user's geographic selection.
package filters

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
)

// Query parameter names of the hierarchy filters.
const (
	ParamDepartment      = "department"
	ParamMunicipality    = "municipality"
	ParamPopulatedCenter = "populated_center"
)

// Field describes one hierarchy filter.
type Field struct {
	Param  string
	Column string
	Label  string
}

var paramColumns = []Field{
	{ParamDepartment, domain.ColDepartment, "Department"},
	{ParamMunicipality, domain.ColMunicipality, "Municipality"},
	{ParamPopulatedCenter, domain.ColPopulatedCenter, "Populated center"},
}

// Fields returns the hierarchy filters from broadest to narrowest.
func Fields() []Field {
	return append([]Field(nil), paramColumns...)
}

// Constraints maps a column to its allowed values.
// An empty value set leaves the column unconstrained.
type Constraints map[string][]string

// Active reports whether any column is constrained.
func (c Constraints) Active() bool {
	for _, values := range c {
		if len(values) > 0 {
			return true
		}
	}

	return false
}

// Values returns the allowed values of col.
func (c Constraints) Values(col string) []string {
	return c[col]
}

// Query encodes the hierarchy constraints as URL query parameters.
func (c Constraints) Query() url.Values {
	q := url.Values{}

	for _, pc := range paramColumns {
		for _, v := range c[pc.Column] {
			q.Add(pc.Param, v)
		}
	}

	return q
}

// FromQuery reads the hierarchy constraints from URL query parameters.
// Each parameter may be repeated; values are not split on commas because
// names such as "Bogotá, D.C." contain them.
func FromQuery(q url.Values) Constraints {
	c := Constraints{}

	for _, pc := range paramColumns {
		var values []string

		for _, v := range q[pc.Param] {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}

		if len(values) > 0 {
			c[pc.Column] = values
		}
	}

	return c
}

type columnCheck struct {
	col     int
	allowed map[string]struct{}
}

// Apply returns the rows of t matching every non-empty constraint, in source order.
// A row matches a constraint when its value is one of the allowed values.
// The input table is never modified; with no active constraint t itself is returned.
func Apply(t *dataset.Table, c Constraints) (*dataset.Table, error) {
	checks, err := compile(t, c)
	if err != nil {
		return nil, err
	}

	if len(checks) == 0 {
		return t, nil
	}

	rows := make([]int, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		if matches(t, i, checks) {
			rows = append(rows, i)
		}
	}

	return t.Select(rows), nil
}

func compile(t *dataset.Table, c Constraints) ([]columnCheck, error) {
	cols := make([]string, 0, len(c))
	for col := range c {
		cols = append(cols, col)
	}

	sort.Strings(cols)

	var checks []columnCheck

	for _, col := range cols {
		values := c[col]
		if len(values) == 0 {
			continue
		}

		idx, err := t.Column(col)
		if err != nil {
			return nil, err
		}

		allowed := make(map[string]struct{}, len(values))
		for _, v := range values {
			allowed[v] = struct{}{}
		}

		checks = append(checks, columnCheck{col: idx, allowed: allowed})
	}

	return checks, nil
}

func matches(t *dataset.Table, row int, checks []columnCheck) bool {
	for _, chk := range checks {
		if _, ok := chk.allowed[t.Cell(row, chk.col)]; !ok {
			return false
		}
	}

	return true
}

// Options returns the sorted distinct values of column offered by a multi-select.
// Values are collated for Spanish so accented names sort next to their base letters.
func Options(t *dataset.Table, column string) ([]string, error) {
	values, err := t.Distinct(column)
	if err != nil {
		return nil, err
	}

	collate.New(language.Spanish).SortStrings(values)

	return values, nil
}

// HierarchyOptions returns the options of every hierarchy filter keyed by column.
func HierarchyOptions(t *dataset.Table) (map[string][]string, error) {
	out := make(map[string][]string, len(paramColumns))

	for _, pc := range paramColumns {
		values, err := Options(t, pc.Column)
		if err != nil {
			return nil, err
		}

		out[pc.Column] = values
	}

	return out, nil
}
