package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

// Page identifies one of the dashboard presentation modes.
type Page string

// Dashboard pages.
const (
	PageProviders     Page = "providers"
	PageCoverage      Page = "coverage"
	PageSocioeconomic Page = "socioeconomic"
)

// Pages returns the pages in selector order.
func Pages() []Page {
	return []Page{PageProviders, PageCoverage, PageSocioeconomic}
}

// ParsePage parses a page selector value. An empty value selects the providers page.
func ParsePage(s string) (Page, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PageProviders, nil
	}

	for _, p := range Pages() {
		if string(p) == s {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownPage, s)
}

// Title returns the human readable page name.
func (p Page) Title() string {
	switch p {
	case PageProviders:
		return "Providers"
	case PageCoverage:
		return "Coverage"
	case PageSocioeconomic:
		return "Socioeconomic Variables"
	default:
		return string(p)
	}
}

// MapVariable is the variable plotted on the coverage page map.
type MapVariable string

// Map variables. MapConnectivityLevel is categorical, the others are continuous.
const (
	MapConnectivityLevel MapVariable = "CONNECTIVITY_LEVEL"
	MapHouseholdInternet MapVariable = ColHouseholdInternet
	MapCoverage2G        MapVariable = ColCoverage2G
	MapCoverage3G        MapVariable = ColCoverage3G
	MapCoverage4G        MapVariable = ColCoverage4G
	MapCoverage5G        MapVariable = ColCoverage5G
)

// MapVariables returns the map variables in selector order.
func MapVariables() []MapVariable {
	return []MapVariable{
		MapConnectivityLevel,
		MapHouseholdInternet,
		MapCoverage2G,
		MapCoverage3G,
		MapCoverage4G,
		MapCoverage5G,
	}
}

// ParseMapVariable parses a map variable. An empty value selects the connectivity level.
func ParseMapVariable(s string) (MapVariable, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return MapConnectivityLevel, nil
	}

	for _, v := range MapVariables() {
		if string(v) == s {
			return v, nil
		}
	}

	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownMapVariable, s)
}

// Categorical reports whether the variable is a category rather than a number.
func (v MapVariable) Categorical() bool {
	return v == MapConnectivityLevel
}
