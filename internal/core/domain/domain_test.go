package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

func TestConnectivityLevelFor(t *testing.T) {
	tests := []struct {
		count int
		want  ConnectivityLevel
	}{
		{4, "High (2G-5G)"},
		{3, "Medium-High (no 5G)"},
		{2, "Medium"},
		{1, "Low"},
		{0, "None"},
		{-1, "None"},
		{5, "None"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConnectivityLevelFor(tt.count), "count %d", tt.count)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		input string
		want  Page
	}{
		{"", PageProviders},
		{"providers", PageProviders},
		{" Coverage ", PageCoverage},
		{"SOCIOECONOMIC", PageSocioeconomic},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePage("weather")
	require.ErrorIs(t, err, apperrors.ErrUnknownPage)
}

func TestParseMapVariable(t *testing.T) {
	got, err := ParseMapVariable("")
	require.NoError(t, err)
	assert.Equal(t, MapConnectivityLevel, got)
	assert.True(t, got.Categorical())

	got, err = ParseMapVariable("coverage_4g")
	require.NoError(t, err)
	assert.Equal(t, MapCoverage4G, got)
	assert.False(t, got.Categorical())

	_, err = ParseMapVariable("POVERTY_RATE")
	require.ErrorIs(t, err, apperrors.ErrUnknownMapVariable)
}

func TestNetworkLabel(t *testing.T) {
	labels := make([]string, 0, MaxCoverages)
	for _, col := range CoverageColumns() {
		assert.True(t, IsCoverageColumn(col))
		labels = append(labels, NetworkLabel(col))
	}

	assert.Equal(t, []string{"2G", "3G", "4G", "5G"}, labels)
	assert.False(t, IsCoverageColumn(ColDepartment))
}
