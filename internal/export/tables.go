// Package export writes a rendered dashboard view as an XLSX workbook or as plain-text tables.
package export

import (
	"math"
	"strconv"
	"strings"

	"github.com/lueurxax/coverage-dashboard/internal/charts"
	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	"github.com/lueurxax/coverage-dashboard/internal/dashboard"
	"github.com/lueurxax/coverage-dashboard/internal/filters"
)

// Sheet names.
const (
	SheetSummary          = "Summary"
	SheetProviders        = "Providers"
	SheetProviderCoverage = "Provider Coverage"
	SheetCoverage         = "Coverage"
	SheetMunicipalities   = "Municipalities"
	SheetDepartments      = "Departments"
	SheetUnemployment     = "Unemployment"
	SheetStratum          = "Stratum"
	SheetPrecipitation    = "Precipitation"
)

const notAvailable = "n/a"

// table is one exported grid. Cells are strings, ints or float64; NaN means no data.
type table struct {
	name   string
	header []string
	rows   [][]any
}

// tables lists the grids of vm: the summary first, then the tables of the rendered page.
func tables(vm *dashboard.ViewModel) []table {
	out := []table{summary(vm)}

	if p := vm.Providers; p != nil {
		out = append(out,
			singleSeries(SheetProviders, "Provider", "Count", p.Counts.Points),
			grouped(SheetProviderCoverage, "Provider", "Network", "Coverage (%)", p.Coverage.Points),
		)
	}

	if c := vm.Coverage; c != nil {
		out = append(out,
			grouped(SheetCoverage, "Network", "Coverage", "Count", c.Distribution.Points),
			municipalities(c.Municipalities),
		)

		if c.Map != nil {
			out = append(out, departments(c))
		}
	}

	if s := vm.Socioeconomic; s != nil {
		out = append(out,
			singleSeries(SheetUnemployment, "Department", "Unemployment rate (%)", s.Unemployment.Points),
			singleSeries(SheetStratum, "Average stratum", "Count", s.Stratum.Points),
			singleSeries(SheetPrecipitation, "Department", "Mean precipitation (mm/year)", s.Precipitation.Points),
		)
	}

	return out
}

func summary(vm *dashboard.ViewModel) table {
	t := table{name: SheetSummary, header: []string{"Metric", "Value"}}

	t.rows = append(t.rows,
		[]any{"Page", vm.Selection.Page.Title()},
		[]any{"Rows", vm.Rows},
	)

	for _, f := range filters.Fields() {
		if values := vm.Selection.Filters.Values(f.Column); len(values) > 0 {
			t.rows = append(t.rows, []any{f.Label, strings.Join(values, "; ")})
		}
	}

	for _, m := range vm.Metrics {
		var v any = math.NaN()
		if m.Value != nil {
			v = *m.Value
		}

		t.rows = append(t.rows, []any{m.Label, v})
	}

	for _, w := range vm.Warnings {
		t.rows = append(t.rows, []any{"Warning", w})
	}

	return t
}

func singleSeries(name, groupHeader, valueHeader string, points []charts.Point) table {
	t := table{name: name, header: []string{groupHeader, valueHeader}}

	for _, p := range points {
		t.rows = append(t.rows, []any{p.Group, p.Value})
	}

	return t
}

func grouped(name, groupHeader, categoryHeader, valueHeader string, points []charts.Point) table {
	t := table{name: name, header: []string{groupHeader, categoryHeader, valueHeader}}

	for _, p := range points {
		t.rows = append(t.rows, []any{p.Group, p.Category, p.Value})
	}

	return t
}

func networkHeaders() []string {
	out := make([]string, 0, domain.MaxCoverages)
	for _, c := range domain.CoverageColumns() {
		out = append(out, domain.NetworkLabel(c))
	}

	return out
}

func municipalities(rows []dashboard.MunicipalityView) table {
	networks := networkHeaders()

	header := append([]string{"Municipality"}, networks...)
	t := table{name: SheetMunicipalities, header: append(header, "Coverages", "Connectivity level")}

	for _, r := range rows {
		row := []any{r.Municipality}
		for _, n := range networks {
			row = append(row, r.Coverage[n])
		}

		t.rows = append(t.rows, append(row, r.NumCoverages, r.Level))
	}

	return t
}

func departments(c *dashboard.CoverageSection) table {
	header := []string{"Department", "Latitude", "Longitude", "Household internet (%)"}
	for _, n := range networkHeaders() {
		header = append(header, n+" rate")
	}

	t := table{name: SheetDepartments, header: append(header, "Coverages", "Connectivity level")}

	for _, d := range c.Departments {
		row := []any{d.Department, d.Latitude, d.Longitude, d.HouseholdInternet}
		for _, r := range d.CoverageRates {
			row = append(row, r)
		}

		t.rows = append(t.rows, append(row, d.NumCoverages, string(d.Level)))
	}

	return t
}

// text renders a cell for plain-text output.
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		if math.IsNaN(x) {
			return notAvailable
		}

		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
