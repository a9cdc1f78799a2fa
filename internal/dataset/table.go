package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

// Table is an immutable in-memory table of string cells with canonical column names.
// Views returned by Select share the backing rows; nothing in the package mutates them
// after load, so a Table can be read from any number of goroutines.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

func newTable(columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	return &Table{columns: columns, index: index, rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.rows)
}

// Columns returns a copy of the column names in file order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)

	return out
}

// Has reports whether the table carries col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Column returns the position of col, or an error wrapping ErrUnknownColumn.
func (t *Table) Column(col string) (int, error) {
	idx, ok := t.index[col]
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrUnknownColumn, col)
	}

	return idx, nil
}

// Cell returns the raw value at row and column position.
func (t *Table) Cell(row, col int) string {
	return t.rows[row][col]
}

// Value returns the raw value of col at row, or "" when the column is absent.
func (t *Table) Value(row int, col string) string {
	idx, ok := t.index[col]
	if !ok {
		return ""
	}

	return t.rows[row][idx]
}

// Float parses the cell at row and column position.
// Empty, unparsable and NaN cells are missing and report false.
func (t *Table) Float(row, col int) (float64, bool) {
	return parseFloat(t.rows[row][col])
}

// Select returns a view holding the given rows, in the given order.
func (t *Table) Select(rows []int) *Table {
	selected := make([][]string, len(rows))
	for i, r := range rows {
		selected[i] = t.rows[r]
	}

	return &Table{columns: t.columns, index: t.index, rows: selected}
}

// Distinct returns the distinct values of col in first-seen order.
func (t *Table) Distinct(col string) ([]string, error) {
	idx, err := t.Column(col)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var out []string

	for _, row := range t.rows {
		v := row[idx]
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out, nil
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}

	return v, true
}
