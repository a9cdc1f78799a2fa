package aggregate

import (
	"math"

	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
)

// Summary holds the headline metrics of a filtered table.
// Metrics are NaN when the table is empty or the column is absent.
type Summary struct {
	Rows                int
	PovertyRate         float64
	UnemploymentRate    float64
	ElectrificationRate float64
	HouseholdIncome     float64
}

// Summarize computes the headline metrics over t.
func Summarize(t *dataset.Table) Summary {
	return Summary{
		Rows:                t.Len(),
		PovertyRate:         optionalMean(t, domain.ColPovertyRate),
		UnemploymentRate:    optionalMean(t, domain.ColUnemploymentRate),
		ElectrificationRate: optionalMean(t, domain.ColElectrificationRate),
		HouseholdIncome:     optionalMean(t, domain.ColHouseholdIncome),
	}
}

func optionalMean(t *dataset.Table, column string) float64 {
	if !t.Has(column) {
		return nan()
	}

	v, err := Mean(t, column)
	if err != nil {
		return nan()
	}

	return v
}

func nan() float64 {
	return math.NaN()
}
