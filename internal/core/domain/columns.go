package domain

// Canonical column names. Source headers are mapped onto these by the dataset schema.
const (
	ColDepartment      = "DEPARTMENT"
	ColMunicipality    = "MUNICIPALITY"
	ColPopulatedCenter = "POPULATED_CENTER"
	ColProvider        = "PROVIDER_NAME"

	ColCoverage2G = "COVERAGE_2G"
	ColCoverage3G = "COVERAGE_3G"
	ColCoverage4G = "COVERAGE_4G"
	ColCoverage5G = "COVERAGE_5G"

	ColPovertyRate         = "POVERTY_RATE"
	ColUnemploymentRate    = "UNEMPLOYMENT_RATE"
	ColElectrificationRate = "ELECTRIFICATION_RATE"
	ColHouseholdIncome     = "AVERAGE_HOUSEHOLD_INCOME"
	ColAverageStratum      = "AVERAGE_STRATUM"
	ColHouseholdInternet   = "HOUSEHOLD_INTERNET_PCT"
	ColMeanPrecipitation   = "MEAN_PRECIPITATION"

	ColLatitude  = "LATITUDE"
	ColLongitude = "LONGITUDE"
)

// Canonical coverage flag tokens. Flags are compared by token equality only.
const (
	FlagYes = "YES"
	FlagNo  = "NO"
)

// CoverageColumns returns the coverage flag columns ordered by network generation.
func CoverageColumns() []string {
	return []string{ColCoverage2G, ColCoverage3G, ColCoverage4G, ColCoverage5G}
}

// HierarchyColumns returns the geographic filter columns, outermost first.
func HierarchyColumns() []string {
	return []string{ColDepartment, ColMunicipality, ColPopulatedCenter}
}

// IsCoverageColumn reports whether col is one of the coverage flag columns.
func IsCoverageColumn(col string) bool {
	switch col {
	case ColCoverage2G, ColCoverage3G, ColCoverage4G, ColCoverage5G:
		return true
	default:
		return false
	}
}

// NetworkLabel returns the short network generation label for a coverage column ("2G", "3G", ...).
func NetworkLabel(col string) string {
	switch col {
	case ColCoverage2G:
		return "2G"
	case ColCoverage3G:
		return "3G"
	case ColCoverage4G:
		return "4G"
	case ColCoverage5G:
		return "5G"
	default:
		return col
	}
}
