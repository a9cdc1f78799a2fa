package export

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	"github.com/lueurxax/coverage-dashboard/internal/dashboard"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
	"github.com/lueurxax/coverage-dashboard/internal/filters"
)

func newTestView(t *testing.T, sel dashboard.Selection) *dashboard.ViewModel {
	t.Helper()

	header := []string{
		"DEPARTAMENTO", "MUNICIPIO", "CENTRO_POBLADO", "NOMBRE_PROVEEDOR_COMERCIAL",
		"COBERTURA_2G", "COBERTURA_3G", "COBERTURA_4G", "COBERTURA_5G",
		"TASA_POBREZA", "TASA_DESEMPLEO", "TASA_ELECTRIFICACION", "INGRESO_PROMEDIO_HOGAR",
		"ESTRATO_PROMEDIO", "PCT_HOGARES_INTERNET", "PRECIPITACION_MEDIA", "LATITUD", "LONGITUD",
	}
	records := [][]string{
		{"Antioquia", "Medellín", "Medellín", "Claro", "SÍ", "SÍ", "NO", "NO", "20", "10", "95", "1000000", "2", "40", "1500", "6.2", "-75.5"},
		{"Antioquia", "Envigado", "Envigado", "Tigo", "SÍ", "SÍ", "NO", "NO", "30", "12", "90", "2000000", "3", "50", "1700", "6.1", "-75.6"},
		{"Caldas", "Manizales", "Manizales", "Claro", "SÍ", "SÍ", "SÍ", "SÍ", "15", "9", "99", "2500000", "3", "70", "", "5.1", "-75.5"},
	}

	tbl, err := dataset.FromRecords(header, records, dataset.DefaultSchema())
	require.NoError(t, err)

	vm, err := dashboard.Render(tbl, sel)
	require.NoError(t, err)

	vm.Title = "Coverage report"

	return vm
}

func readWorkbook(t *testing.T, vm *dashboard.ViewModel) *excelize.File {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, vm))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	return f
}

func TestWriteWorkbook_SheetsFollowPage(t *testing.T) {
	tests := []struct {
		page   domain.Page
		sheets []string
	}{
		{domain.PageProviders, []string{SheetSummary, SheetProviders, SheetProviderCoverage}},
		{domain.PageCoverage, []string{SheetSummary, SheetCoverage, SheetMunicipalities, SheetDepartments}},
		{domain.PageSocioeconomic, []string{SheetSummary, SheetUnemployment, SheetStratum, SheetPrecipitation}},
	}

	for _, tt := range tests {
		t.Run(string(tt.page), func(t *testing.T) {
			f := readWorkbook(t, newTestView(t, dashboard.Selection{Page: tt.page}))
			assert.Equal(t, tt.sheets, f.GetSheetList())
		})
	}
}

func TestWriteWorkbook_Contents(t *testing.T) {
	f := readWorkbook(t, newTestView(t, dashboard.Selection{Page: domain.PageCoverage}))

	rows, err := f.GetRows(SheetMunicipalities)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Municipality", "2G", "3G", "4G", "5G", "Coverages", "Connectivity level"}, rows[0])
	assert.Equal(t, []string{"Envigado", "YES", "YES", "NO", "NO", "2", string(domain.LevelMedium)}, rows[1])

	rows, err = f.GetRows(SheetDepartments)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Caldas", rows[2][0])
	assert.Equal(t, string(domain.LevelHigh), rows[2][len(rows[2])-1])

	rows, err = f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Page", "Coverage"}, rows[1])
	assert.Equal(t, []string{"Rows", "3"}, rows[2])
}

func TestWriteWorkbook_MissingValuesAreBlank(t *testing.T) {
	sel := dashboard.Selection{
		Page:    domain.PageSocioeconomic,
		Filters: filters.Constraints{domain.ColDepartment: {"Caldas"}},
	}

	f := readWorkbook(t, newTestView(t, sel))

	rows, err := f.GetRows(SheetPrecipitation)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Caldas"}, rows[1])

	rows, err = f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Contains(t, rows, []string{"Department", "Caldas"})
}

func TestWriteReport(t *testing.T) {
	vm := newTestView(t, dashboard.Selection{
		Page:    domain.PageProviders,
		Filters: filters.Constraints{domain.ColDepartment: {"Amazonas"}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, vm))

	out := buf.String()
	assert.Contains(t, out, "Coverage report")
	assert.Contains(t, out, "== Summary ==")
	assert.Contains(t, out, "== Provider Coverage ==")
	assert.Contains(t, out, "Average household income")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "filters matched no rows")
}

func TestText(t *testing.T) {
	assert.Equal(t, "n/a", text(math.NaN()))
	assert.Equal(t, "12.5", text(12.5))
	assert.Equal(t, "3", text(3))
	assert.Equal(t, "Claro", text("Claro"))
}
