package dashboard

import (
	"encoding/json"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/coverage-dashboard/internal/charts"
	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
	"github.com/lueurxax/coverage-dashboard/internal/filters"
)

func TestSelectionFromQuery(t *testing.T) {
	sel, err := SelectionFromQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, domain.PageProviders, sel.Page)
	assert.Equal(t, domain.MapConnectivityLevel, sel.MapVariable)
	assert.False(t, sel.Filters.Active())

	sel, err = SelectionFromQuery(url.Values{
		ParamPage:               {"coverage"},
		ParamMapVariable:        {"coverage_4g"},
		filters.ParamDepartment: {testBogota},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PageCoverage, sel.Page)
	assert.Equal(t, domain.MapCoverage4G, sel.MapVariable)
	assert.Equal(t, []string{testBogota}, sel.Filters.Values(domain.ColDepartment))

	round, err := SelectionFromQuery(sel.Query())
	require.NoError(t, err)
	assert.Equal(t, sel, round)

	_, err = SelectionFromQuery(url.Values{ParamPage: {"maps"}})
	require.ErrorIs(t, err, apperrors.ErrUnknownPage)

	_, err = SelectionFromQuery(url.Values{ParamMapVariable: {"ALTITUDE"}})
	require.ErrorIs(t, err, apperrors.ErrUnknownMapVariable)
}

func TestRender_Providers(t *testing.T) {
	vm, err := Render(newTestTable(t), Selection{})
	require.NoError(t, err)

	assert.Equal(t, domain.PageProviders, vm.Selection.Page)
	assert.Equal(t, 4, vm.Rows)
	assert.False(t, vm.Empty)
	assert.Empty(t, vm.Warnings)
	assert.Equal(t, []string{testAntioquia, testBogota}, vm.Options[domain.ColDepartment])
	require.NotNil(t, vm.Providers)
	assert.Nil(t, vm.Coverage)
	assert.Nil(t, vm.Socioeconomic)

	assert.Equal(t, []charts.Point{
		{Group: "Claro", Value: 2},
		{Group: "Tigo", Value: 1},
		{Group: "Movistar", Value: 1},
	}, vm.Providers.Counts.Points)

	coverage := vm.Providers.Coverage.Points
	require.Len(t, coverage, 12)
	assert.Equal(t, charts.Point{Group: "Claro", Category: "2G", Value: 100}, coverage[0])
	assert.Equal(t, charts.Point{Group: "Movistar", Category: "5G", Value: 100}, coverage[7])
	assert.Equal(t, charts.Point{Group: "Tigo", Category: "5G", Value: 0}, coverage[11])

	assert.Equal(t, []string{ChartProviders, ChartProviderCoverage}, vm.ChartNames())
}

func TestRender_Metrics(t *testing.T) {
	vm, err := Render(newTestTable(t), Selection{})
	require.NoError(t, err)

	require.Len(t, vm.Metrics, 4)
	assert.Equal(t, "25", vm.Metrics[0].Display)
	assert.Equal(t, "11", vm.Metrics[1].Display)
	assert.Equal(t, "92.5", vm.Metrics[2].Display)
	assert.Equal(t, "$2,500,000.00", vm.Metrics[3].Display)
	require.NotNil(t, vm.Metrics[2].Value)
	assert.InDelta(t, 92.5, *vm.Metrics[2].Value, 1e-9)
}

func TestRender_CoverageConnectivity(t *testing.T) {
	vm, err := Render(newTestTable(t), Selection{Page: domain.PageCoverage})
	require.NoError(t, err)
	require.NotNil(t, vm.Coverage)

	municipalities := vm.Coverage.Municipalities
	require.Len(t, municipalities, 3)
	assert.Equal(t, testBogota, municipalities[0].Municipality)
	assert.Equal(t, string(domain.LevelHigh), municipalities[0].Level)
	assert.Equal(t, "Envigado", municipalities[1].Municipality)
	assert.Equal(t, 2, municipalities[1].NumCoverages)
	assert.Equal(t, domain.FlagNo, municipalities[1].Coverage["4G"])

	require.NotNil(t, vm.Coverage.Map)
	points := vm.Coverage.Map.Points
	require.Len(t, points, 2)
	assert.Equal(t, testAntioquia, points[0].Label)
	assert.Equal(t, string(domain.LevelMedium), points[0].Category)
	assert.InDelta(t, 2, points[0].Size, 1e-9)
	assert.Equal(t, string(domain.LevelHigh), points[1].Category)
	assert.InDelta(t, 4, points[1].Size, 1e-9)
	assert.True(t, vm.Coverage.Map.Categorical)

	var yes, no float64
	for _, p := range vm.Coverage.Distribution.Points {
		if p.Group != "4G" {
			continue
		}

		switch p.Category {
		case domain.FlagYes:
			yes = p.Value
		case domain.FlagNo:
			no = p.Value
		}
	}

	assert.InDelta(t, 1, yes, 1e-9)
	assert.InDelta(t, 3, no, 1e-9)
	assert.Equal(t, []string{ChartCoverageDistribution, ChartConnectivityMap}, vm.ChartNames())
}

func TestRender_CoverageContinuousMap(t *testing.T) {
	vm, err := Render(newTestTable(t), Selection{Page: domain.PageCoverage, MapVariable: domain.MapHouseholdInternet})
	require.NoError(t, err)

	spec := vm.Coverage.Map
	require.NotNil(t, spec)
	assert.False(t, spec.Categorical)
	assert.InDelta(t, 40, spec.Points[0].Value, 1e-9)
	assert.InDelta(t, 80, spec.Points[1].Value, 1e-9)

	vm, err = Render(newTestTable(t), Selection{Page: domain.PageCoverage, MapVariable: domain.MapCoverage5G})
	require.NoError(t, err)
	assert.InDelta(t, 0, vm.Coverage.Map.Points[0].Value, 1e-9)
	assert.InDelta(t, 1, vm.Coverage.Map.Points[1].Value, 1e-9)
}

func TestRender_Socioeconomic(t *testing.T) {
	vm, err := Render(newTestTable(t), Selection{Page: domain.PageSocioeconomic})
	require.NoError(t, err)
	require.NotNil(t, vm.Socioeconomic)

	assert.Equal(t, []charts.Point{
		{Group: testAntioquia, Value: 12},
		{Group: testBogota, Value: 8},
	}, vm.Socioeconomic.Unemployment.Points)

	assert.Equal(t, []charts.Point{
		{Group: testAntioquia, Value: 1600},
		{Group: testBogota, Value: 800},
	}, vm.Socioeconomic.Precipitation.Points)

	assert.Equal(t, []charts.Point{
		{Group: "2", Value: 2},
		{Group: "3", Value: 2},
	}, vm.Socioeconomic.Stratum.Points)
}

func TestRender_FiltersApplyToEveryPage(t *testing.T) {
	sel := Selection{Filters: filters.Constraints{domain.ColDepartment: {testBogota}}}

	for _, page := range domain.Pages() {
		sel.Page = page

		vm, err := Render(newTestTable(t), sel)
		require.NoError(t, err)
		assert.Equal(t, 1, vm.Rows, page)
		assert.Len(t, vm.Options[domain.ColDepartment], 2, "options come from the whole table")
	}
}

func TestRender_EmptyResult(t *testing.T) {
	sel := Selection{Page: domain.PageCoverage, Filters: filters.Constraints{domain.ColDepartment: {"Amazonas"}}}

	vm, err := Render(newTestTable(t), sel)
	require.NoError(t, err)

	assert.True(t, vm.Empty)
	assert.Equal(t, []string{apperrors.ErrEmptyResult.Error()}, vm.Warnings)
	assert.Zero(t, vm.Rows)
	assert.Empty(t, vm.Coverage.Municipalities)
	assert.Empty(t, vm.Coverage.Distribution.Points)

	for _, m := range vm.Metrics {
		assert.Nil(t, m.Value, m.Key)
		assert.Equal(t, "n/a", m.Display, m.Key)
	}

	raw, err := json.Marshal(vm)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"empty":true`)
}

func TestRender_UnknownPage(t *testing.T) {
	_, err := Render(newTestTable(t), Selection{Page: "maps"})
	require.ErrorIs(t, err, apperrors.ErrUnknownPage)
}

func TestViewModel_Chart(t *testing.T) {
	vm, err := Render(newTestTable(t), Selection{Page: domain.PageSocioeconomic})
	require.NoError(t, err)

	spec, err := vm.Chart(ChartStratum)
	require.NoError(t, err)
	assert.IsType(t, charts.PieSpec{}, spec)

	_, err = vm.Chart(ChartProviders)
	require.ErrorIs(t, err, apperrors.ErrUnknownChart)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", FormatCurrency(1234567.891))
	assert.Equal(t, "n/a", FormatCurrency(math.NaN()))
}
