package charts

import (
	"fmt"
	"strings"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

// Format is an image encoding.
type Format string

// Supported image formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat parses an image format extension.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: image %q", apperrors.ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}

	return "image/png"
}

// ColorMode selects how bars or slices are coloured.
type ColorMode int

// Colour modes.
const (
	// ColorByGroup cycles Palette over groups.
	ColorByGroup ColorMode = iota
	// ColorByCategory looks categories up in Colors, falling back to Palette.
	ColorByCategory
	// ColorByValue interpolates Gradient between the smallest and largest value.
	ColorByValue
)

// BarSpec describes a bar chart. Grouped charts draw one bar per (group, category) point.
type BarSpec struct {
	Name     string            `json:"name"`
	Title    string            `json:"title"`
	XLabel   string            `json:"x_label"`
	YLabel   string            `json:"y_label"`
	Points   []Point           `json:"points"`
	Grouped  bool              `json:"grouped"`
	Mode     ColorMode         `json:"-"`
	Palette  []string          `json:"-"`
	Colors   map[string]string `json:"-"`
	Gradient [2]string         `json:"-"`
}

// PieSpec describes a pie chart; each point's Group labels a slice.
type PieSpec struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Points  []Point  `json:"points"`
	Palette []string `json:"-"`
}

// MapPoint is one department on the coverage map.
type MapPoint struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  string  `json:"category,omitempty"`
	Value     float64 `json:"value"`
	Size      float64 `json:"size"`
}

// MapSpec describes the department map, coloured either by category or by value.
type MapSpec struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Variable    string            `json:"variable"`
	Categorical bool              `json:"categorical"`
	Points      []MapPoint        `json:"points"`
	Colors      map[string]string `json:"-"`
	Legend      []string          `json:"-"`
	Gradient    [2]string         `json:"-"`
}

// Palettes shared by the dashboard pages.
var (
	PaletteBlues = []string{
		"#08306B", "#08519C", "#2171B5", "#4292C6", "#6BAED6", "#9ECAE1", "#C6DBEF", "#DEEBF7",
	}
	PaletteSunset = []string{
		"#F3E79B", "#FAC484", "#F8A07E", "#EB7F86", "#CE6693", "#A059A0", "#5C53A5",
	}
	GradientOranges = [2]string{"#FEE6CE", "#A63603"}
	GradientBlues   = [2]string{"#DEEBF7", "#08519C"}
	GradientYlGn    = [2]string{"#F7FCB9", "#006837"}
)
