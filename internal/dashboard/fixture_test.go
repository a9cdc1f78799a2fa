package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lueurxax/coverage-dashboard/internal/dataset"
)

var testHeader = []string{
	"DEPARTAMENTO", "MUNICIPIO", "CENTRO_POBLADO", "NOMBRE_PROVEEDOR_COMERCIAL",
	"COBERTURA_2G", "COBERTURA_3G", "COBERTURA_4G", "COBERTURA_5G",
	"TASA_POBREZA", "TASA_DESEMPLEO", "TASA_ELECTRIFICACION", "INGRESO_PROMEDIO_HOGAR",
	"ESTRATO_PROMEDIO", "PCT_HOGARES_INTERNET", "PRECIPITACION_MEDIA", "LATITUD", "LONGITUD",
}

const (
	testAntioquia = "Antioquia"
	testBogota    = "Bogotá, D.C."
)

func newTestTable(t *testing.T) *dataset.Table {
	t.Helper()

	records := [][]string{
		{testAntioquia, "Medellín", "Medellín", "Claro", "SÍ", "SÍ", "NO", "NO", "20", "10", "95", "1000000", "2", "40", "1500", "6.2", "-75.5"},
		{testAntioquia, "Envigado", "Envigado", "Tigo", "SÍ", "SÍ", "NO", "NO", "30", "12", "90", "2000000", "3", "50", "1700", "6.1", "-75.6"},
		{testAntioquia, "Medellín", "Santa Elena", "Claro", "SÍ", "SÍ", "NO", "NO", "10", "14", "85", "3000000", "2", "30", "1600", "6.3", "-75.4"},
		{testBogota, testBogota, "Bogotá", "Movistar", "SÍ", "SÍ", "SÍ", "SÍ", "40", "8", "100", "4000000", "3", "80", "800", "4.6", "-74.1"},
	}

	tbl, err := dataset.FromRecords(testHeader, records, dataset.DefaultSchema())
	require.NoError(t, err)

	return tbl
}
