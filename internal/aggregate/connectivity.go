package aggregate

import (
	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
)

// coverageRateThreshold is the share of YES rows above which a group counts as covered.
const coverageRateThreshold = 0.5

// MunicipalityRow is one line of the per-municipality connectivity table.
type MunicipalityRow struct {
	Municipality string
	// Coverage holds the modal flag per coverage column, in domain.CoverageColumns order.
	Coverage     []string
	NumCoverages int
	Level        domain.ConnectivityLevel
}

// DepartmentRow is one point of the per-department coverage map.
type DepartmentRow struct {
	Department        string
	Latitude          float64
	Longitude         float64
	HouseholdInternet float64
	// CoverageRates holds the share of YES rows per coverage column, in domain.CoverageColumns order.
	CoverageRates []float64
	NumCoverages  int
	Level         domain.ConnectivityLevel
}

// ConnectivityLevel classifies a count of available network generations.
func ConnectivityLevel(yesCount int) domain.ConnectivityLevel {
	return domain.ConnectivityLevelFor(yesCount)
}

// NumCoverages counts the flags equal to the YES token.
func NumCoverages(flags []string) int {
	n := 0

	for _, f := range flags {
		if f == domain.FlagYes {
			n++
		}
	}

	return n
}

// NumCoveragesFromRates counts the coverage rates strictly above one half.
// NaN rates never count.
func NumCoveragesFromRates(rates []float64) int {
	n := 0

	for _, r := range rates {
		if r > coverageRateThreshold {
			n++
		}
	}

	return n
}

// MunicipalityConnectivity classifies each municipality from the mode of every coverage flag.
func MunicipalityConnectivity(t *dataset.Table) ([]MunicipalityRow, error) {
	gcol, err := t.Column(domain.ColMunicipality)
	if err != nil {
		return nil, err
	}

	coverage := domain.CoverageColumns()

	fcols := make([]int, len(coverage))
	for i, c := range coverage {
		if fcols[i], err = t.Column(c); err != nil {
			return nil, err
		}
	}

	keys, members := groups(t, gcol)
	out := make([]MunicipalityRow, 0, len(keys))

	for _, k := range keys {
		modes := make([]string, len(fcols))
		for i, fc := range fcols {
			modes[i] = modeOf(t, members[k], fc)
		}

		n := NumCoverages(modes)
		out = append(out, MunicipalityRow{
			Municipality: k,
			Coverage:     modes,
			NumCoverages: n,
			Level:        ConnectivityLevel(n),
		})
	}

	return out, nil
}

// DepartmentConnectivity averages coordinates, household internet share and 0/1 coverage
// flags per department, then classifies each department from the rates above one half.
// Flag tokens other than YES and NO are skipped. A missing HOUSEHOLD_INTERNET_PCT column
// reports NaN; missing coordinates are an error.
func DepartmentConnectivity(t *dataset.Table) ([]DepartmentRow, error) {
	gcol, err := t.Column(domain.ColDepartment)
	if err != nil {
		return nil, err
	}

	latCol, err := t.Column(domain.ColLatitude)
	if err != nil {
		return nil, err
	}

	lonCol, err := t.Column(domain.ColLongitude)
	if err != nil {
		return nil, err
	}

	internetCol, hasInternet := -1, t.Has(domain.ColHouseholdInternet)
	if hasInternet {
		internetCol, _ = t.Column(domain.ColHouseholdInternet)
	}

	coverage := domain.CoverageColumns()

	fcols := make([]int, len(coverage))
	for i, c := range coverage {
		if fcols[i], err = t.Column(c); err != nil {
			return nil, err
		}
	}

	keys, members := groups(t, gcol)
	out := make([]DepartmentRow, 0, len(keys))

	for _, k := range keys {
		rows := members[k]

		rates := make([]float64, len(fcols))
		for i, fc := range fcols {
			rates[i] = flagRate(t, rows, fc)
		}

		row := DepartmentRow{
			Department:        k,
			Latitude:          meanOf(t, rows, latCol),
			Longitude:         meanOf(t, rows, lonCol),
			HouseholdInternet: nan(),
			CoverageRates:     rates,
		}

		if hasInternet {
			row.HouseholdInternet = meanOf(t, rows, internetCol)
		}

		row.NumCoverages = NumCoveragesFromRates(rates)
		row.Level = ConnectivityLevel(row.NumCoverages)

		out = append(out, row)
	}

	return out, nil
}

func flagRate(t *dataset.Table, rows []int, col int) float64 {
	yes, n := 0, 0

	for _, r := range rows {
		switch t.Cell(r, col) {
		case domain.FlagYes:
			yes++
			n++
		case domain.FlagNo:
			n++
		}
	}

	if n == 0 {
		return nan()
	}

	return float64(yes) / float64(n)
}
