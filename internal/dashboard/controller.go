// Package dashboard turns a selection (page, filters, map variable) into a view model
// over the loaded coverage table and serves it over HTTP as HTML, chart images, JSON and XLSX.
package dashboard

import (
	"fmt"
	"math"
	"net/url"

	"github.com/dustin/go-humanize"

	"github.com/lueurxax/coverage-dashboard/internal/aggregate"
	"github.com/lueurxax/coverage-dashboard/internal/charts"
	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
	"github.com/lueurxax/coverage-dashboard/internal/filters"
)

// Query parameters besides the filter ones.
const (
	ParamPage        = "page"
	ParamMapVariable = "map"
)

// Chart names, unique across pages.
const (
	ChartProviders            = "providers"
	ChartProviderCoverage     = "provider-coverage"
	ChartCoverageDistribution = "coverage-distribution"
	ChartConnectivityMap      = "connectivity-map"
	ChartUnemployment         = "unemployment"
	ChartStratum              = "stratum"
	ChartPrecipitation        = "precipitation"
)

const (
	metricPlaces        = 2
	unemploymentPlaces  = 2
	precipitationPlaces = 0

	notAvailable = "n/a"
)

// Connectivity level colours on the department map.
var levelColors = map[string]string{
	string(domain.LevelHigh):       "#006D2C",
	string(domain.LevelMediumHigh): "#31A354",
	string(domain.LevelMedium):     "#A1D99B",
	string(domain.LevelLow):        "#FDD49E",
	string(domain.LevelNone):       "#E5E5E5",
}

var flagColors = map[string]string{
	domain.FlagYes: "#007F5F",
	domain.FlagNo:  "#D62828",
}

// Selection is the user's choice of page, filters and map variable.
type Selection struct {
	Page        domain.Page         `json:"page"`
	Filters     filters.Constraints `json:"filters"`
	MapVariable domain.MapVariable  `json:"map_variable"`
}

// SelectionFromQuery parses a selection from URL query parameters.
// Missing page and map variable fall back to their defaults.
func SelectionFromQuery(q url.Values) (Selection, error) {
	page, err := domain.ParsePage(q.Get(ParamPage))
	if err != nil {
		return Selection{}, err
	}

	variable, err := domain.ParseMapVariable(q.Get(ParamMapVariable))
	if err != nil {
		return Selection{}, err
	}

	return Selection{Page: page, Filters: filters.FromQuery(q), MapVariable: variable}, nil
}

// Query encodes the selection back into URL query parameters.
func (s Selection) Query() url.Values {
	q := s.Filters.Query()
	if s.Page != "" {
		q.Set(ParamPage, string(s.Page))
	}

	if s.MapVariable != "" {
		q.Set(ParamMapVariable, string(s.MapVariable))
	}

	return q
}

// Metric is one headline number. Value is nil when there is no data.
type Metric struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// ProvidersSection holds the providers page charts.
type ProvidersSection struct {
	Counts   charts.BarSpec `json:"counts"`
	Coverage charts.BarSpec `json:"coverage"`
}

// CoverageSection holds the coverage page charts and tables.
// Map is nil when the table carries no coordinates.
type CoverageSection struct {
	Distribution   charts.BarSpec            `json:"distribution"`
	Municipalities []MunicipalityView        `json:"municipalities"`
	Departments    []aggregate.DepartmentRow `json:"-"`
	Map            *charts.MapSpec           `json:"map,omitempty"`
	MapVariables   []domain.MapVariable      `json:"map_variables"`
}

// MunicipalityView is one row of the municipality connectivity table.
type MunicipalityView struct {
	Municipality string            `json:"municipality"`
	Coverage     map[string]string `json:"coverage"`
	NumCoverages int               `json:"num_coverages"`
	Level        string            `json:"level"`
}

// SocioeconomicSection holds the socioeconomic page charts.
type SocioeconomicSection struct {
	Unemployment  charts.BarSpec `json:"unemployment"`
	Stratum       charts.PieSpec `json:"stratum"`
	Precipitation charts.BarSpec `json:"precipitation"`
}

// ViewModel is everything one page render shows.
type ViewModel struct {
	Title         string                `json:"title,omitempty"`
	Selection     Selection             `json:"selection"`
	Pages         []domain.Page         `json:"pages"`
	Options       map[string][]string   `json:"options"`
	Rows          int                   `json:"rows"`
	Empty         bool                  `json:"empty"`
	Warnings      []string              `json:"warnings,omitempty"`
	Metrics       []Metric              `json:"metrics"`
	Providers     *ProvidersSection     `json:"providers,omitempty"`
	Coverage      *CoverageSection      `json:"coverage,omitempty"`
	Socioeconomic *SocioeconomicSection `json:"socioeconomic,omitempty"`
}

// Chart returns the named chart spec of the rendered page:
// a charts.BarSpec, charts.PieSpec or charts.MapSpec.
func (vm *ViewModel) Chart(name string) (any, error) {
	switch {
	case vm.Providers != nil:
		switch name {
		case ChartProviders:
			return vm.Providers.Counts, nil
		case ChartProviderCoverage:
			return vm.Providers.Coverage, nil
		}
	case vm.Coverage != nil:
		switch name {
		case ChartCoverageDistribution:
			return vm.Coverage.Distribution, nil
		case ChartConnectivityMap:
			if vm.Coverage.Map != nil {
				return *vm.Coverage.Map, nil
			}
		}
	case vm.Socioeconomic != nil:
		switch name {
		case ChartUnemployment:
			return vm.Socioeconomic.Unemployment, nil
		case ChartStratum:
			return vm.Socioeconomic.Stratum, nil
		case ChartPrecipitation:
			return vm.Socioeconomic.Precipitation, nil
		}
	}

	return nil, fmt.Errorf("%w: %q on page %s", apperrors.ErrUnknownChart, name, vm.Selection.Page)
}

// ChartNames lists the charts of the rendered page in display order.
func (vm *ViewModel) ChartNames() []string {
	switch {
	case vm.Providers != nil:
		return []string{ChartProviders, ChartProviderCoverage}
	case vm.Coverage != nil:
		if vm.Coverage.Map == nil {
			return []string{ChartCoverageDistribution}
		}

		return []string{ChartCoverageDistribution, ChartConnectivityMap}
	case vm.Socioeconomic != nil:
		return []string{ChartUnemployment, ChartStratum, ChartPrecipitation}
	}

	return nil
}

// Render builds the view model of sel over t. It is pure: t is never modified.
// A selection matching no rows is not an error; the view is flagged Empty and carries a warning.
func Render(t *dataset.Table, sel Selection) (*ViewModel, error) {
	if sel.Page == "" {
		sel.Page = domain.PageProviders
	}

	if sel.MapVariable == "" {
		sel.MapVariable = domain.MapConnectivityLevel
	}

	options, err := filters.HierarchyOptions(t)
	if err != nil {
		return nil, fmt.Errorf("filter options: %w", err)
	}

	filtered, err := filters.Apply(t, sel.Filters)
	if err != nil {
		return nil, fmt.Errorf("apply filters: %w", err)
	}

	vm := &ViewModel{
		Selection: sel,
		Pages:     domain.Pages(),
		Options:   options,
		Rows:      filtered.Len(),
		Metrics:   metrics(aggregate.Summarize(filtered)),
	}

	if filtered.Len() == 0 {
		vm.Empty = true
		vm.Warnings = append(vm.Warnings, apperrors.ErrEmptyResult.Error())
	}

	switch sel.Page {
	case domain.PageProviders:
		vm.Providers, err = providersSection(filtered)
	case domain.PageCoverage:
		vm.Coverage, err = coverageSection(filtered, sel.MapVariable)
	case domain.PageSocioeconomic:
		vm.Socioeconomic, err = socioeconomicSection(filtered)
	default:
		err = fmt.Errorf("%w: %q", apperrors.ErrUnknownPage, sel.Page)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s page: %w", sel.Page, err)
	}

	return vm, nil
}

func metrics(s aggregate.Summary) []Metric {
	return []Metric{
		newMetric("poverty_rate", "Average poverty rate", s.PovertyRate, formatNumber),
		newMetric("unemployment_rate", "Average unemployment rate", s.UnemploymentRate, formatNumber),
		newMetric("electrification_rate", "Average electrification rate", s.ElectrificationRate, formatNumber),
		newMetric("household_income", "Average household income", s.HouseholdIncome, FormatCurrency),
	}
}

func newMetric(key, label string, v float64, format func(float64) string) Metric {
	m := Metric{Key: key, Label: label, Display: format(v)}

	if !math.IsNaN(v) {
		rounded := aggregate.Round(v, metricPlaces)
		m.Value = &rounded
	}

	return m
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return notAvailable
	}

	return humanize.Commaf(aggregate.Round(v, metricPlaces))
}

// FormatCurrency renders v as dollars with thousands separators and two decimals.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) {
		return notAvailable
	}

	return "$" + humanize.FormatFloat("#,###.##", v)
}

func providersSection(t *dataset.Table) (*ProvidersSection, error) {
	counts, err := aggregate.CountBy(t, domain.ColProvider)
	if err != nil {
		return nil, err
	}

	pct, err := aggregate.PctTrueBy(t, domain.ColProvider, domain.CoverageColumns())
	if err != nil {
		return nil, err
	}

	return &ProvidersSection{
		Counts: charts.BarSpec{
			Name:    ChartProviders,
			Title:   "Provider distribution",
			XLabel:  "Provider",
			YLabel:  "Number of people",
			Points:  charts.FromCounts(counts),
			Palette: charts.PaletteBlues,
		},
		Coverage: charts.BarSpec{
			Name:    ChartProviderCoverage,
			Title:   "Average coverage by provider and network type (%)",
			XLabel:  "Provider",
			YLabel:  "Percentage (%)",
			Points:  charts.MeltPct(pct, domain.CoverageColumns()),
			Grouped: true,
			Mode:    charts.ColorByCategory,
			Palette: charts.PaletteBlues,
		},
	}, nil
}

func coverageSection(t *dataset.Table, variable domain.MapVariable) (*CoverageSection, error) {
	pairs, err := aggregate.CountPairs(t, domain.CoverageColumns())
	if err != nil {
		return nil, err
	}

	municipalities, err := aggregate.MunicipalityConnectivity(t)
	if err != nil {
		return nil, err
	}

	section := &CoverageSection{
		Distribution: charts.BarSpec{
			Name:    ChartCoverageDistribution,
			Title:   "Coverage distribution by network type",
			XLabel:  "Network type",
			YLabel:  "Count",
			Points:  charts.FromPairs(pairs),
			Grouped: true,
			Mode:    charts.ColorByCategory,
			Colors:  flagColors,
		},
		Municipalities: municipalityViews(municipalities),
		MapVariables:   domain.MapVariables(),
	}

	if !t.Has(domain.ColLatitude) || !t.Has(domain.ColLongitude) {
		return section, nil
	}

	departments, err := aggregate.DepartmentConnectivity(t)
	if err != nil {
		return nil, err
	}

	spec := departmentMap(departments, variable)
	section.Departments = departments
	section.Map = &spec

	return section, nil
}

func municipalityViews(rows []aggregate.MunicipalityRow) []MunicipalityView {
	columns := domain.CoverageColumns()
	out := make([]MunicipalityView, 0, len(rows))

	for _, r := range rows {
		coverage := make(map[string]string, len(columns))
		for i, c := range columns {
			coverage[domain.NetworkLabel(c)] = r.Coverage[i]
		}

		out = append(out, MunicipalityView{
			Municipality: r.Municipality,
			Coverage:     coverage,
			NumCoverages: r.NumCoverages,
			Level:        string(r.Level),
		})
	}

	return out
}

func departmentMap(rows []aggregate.DepartmentRow, variable domain.MapVariable) charts.MapSpec {
	spec := charts.MapSpec{
		Name:        ChartConnectivityMap,
		Variable:    string(variable),
		Categorical: variable.Categorical(),
		Points:      make([]charts.MapPoint, 0, len(rows)),
	}

	if spec.Categorical {
		spec.Title = "Average connectivity level by department"
		spec.Colors = levelColors

		for _, l := range domain.ConnectivityLevels() {
			spec.Legend = append(spec.Legend, string(l))
		}
	} else {
		spec.Title = "Map of " + string(variable) + " by department"
		spec.Gradient = charts.GradientYlGn
	}

	for _, r := range rows {
		p := charts.MapPoint{Label: r.Department, Latitude: r.Latitude, Longitude: r.Longitude}

		if spec.Categorical {
			p.Category = string(r.Level)
			p.Value = float64(r.NumCoverages)
		} else {
			p.Value = mapValue(r, variable)
		}

		p.Size = p.Value
		spec.Points = append(spec.Points, p)
	}

	return spec
}

func mapValue(r aggregate.DepartmentRow, variable domain.MapVariable) float64 {
	if variable == domain.MapHouseholdInternet {
		return r.HouseholdInternet
	}

	for i, c := range domain.CoverageColumns() {
		if c == string(variable) {
			return r.CoverageRates[i]
		}
	}

	return math.NaN()
}

func socioeconomicSection(t *dataset.Table) (*SocioeconomicSection, error) {
	unemployment, err := aggregate.MeanBy(t, domain.ColDepartment, domain.ColUnemploymentRate)
	if err != nil {
		return nil, err
	}

	stratum, err := aggregate.CountBy(t, domain.ColAverageStratum)
	if err != nil {
		return nil, err
	}

	precipitation, err := aggregate.MeanBy(t, domain.ColDepartment, domain.ColMeanPrecipitation)
	if err != nil {
		return nil, err
	}

	return &SocioeconomicSection{
		Unemployment: charts.BarSpec{
			Name:     ChartUnemployment,
			Title:    "Average unemployment rate by department (%)",
			XLabel:   "Department",
			YLabel:   "Unemployment rate",
			Points:   charts.FromGroupValues(unemployment, unemploymentPlaces, true),
			Mode:     charts.ColorByValue,
			Gradient: charts.GradientOranges,
		},
		Stratum: charts.PieSpec{
			Name:    ChartStratum,
			Title:   "Average stratum distribution",
			Points:  charts.FromCounts(stratum),
			Palette: charts.PaletteSunset,
		},
		Precipitation: charts.BarSpec{
			Name:     ChartPrecipitation,
			Title:    "Average mean precipitation by department (mm/year)",
			XLabel:   "Department",
			YLabel:   "Mean precipitation",
			Points:   charts.FromGroupValues(precipitation, precipitationPlaces, true),
			Mode:     charts.ColorByValue,
			Gradient: charts.GradientBlues,
		},
	}, nil
}
