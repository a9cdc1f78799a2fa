package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

const (
	defaultWidth  = 960
	defaultHeight = 480

	titleFontSize = 14
	minBarWidth   = 4
	maxBarWidth   = 80
	labelRotation = 45.0
	headroom      = 1.1

	noDataLabel = "No data"
	naSuffix    = " (n/a)"
)

var titleColor = drawing.ColorFromHex("003366")

// Renderer draws chart specs as images of a fixed size.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer; non-positive sizes fall back to 960x480.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}

	if height <= 0 {
		height = defaultHeight
	}

	return &Renderer{width: width, height: height}
}

func provider(f Format) (chart.RendererProvider, error) {
	switch f {
	case FormatPNG:
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: image %q", apperrors.ErrUnsupportedFormat, f)
	}
}

// Bar renders a bar chart. A spec without points renders a "No data" placeholder.
func (r *Renderer) Bar(w io.Writer, spec BarSpec, f Format) error {
	rp, err := provider(f)
	if err != nil {
		return err
	}

	if len(spec.Points) == 0 {
		return r.placeholder(w, spec.Title, rp)
	}

	raw := make([]float64, len(spec.Points))
	for i, p := range spec.Points {
		raw[i] = p.Value
	}

	lo, hi, ok := valueRange(raw)
	if !ok {
		return r.placeholder(w, spec.Title, rp)
	}

	categories := Categories(spec.Points)
	bars := make([]chart.Value, 0, len(spec.Points))

	for i, p := range spec.Points {
		label := p.Group
		if spec.Grouped && p.Category != "" {
			label = p.Group + " " + p.Category
		}

		v := p.Value
		if math.IsNaN(v) {
			v, label = 0, label+naSuffix
		}

		fill := r.barColor(spec, i, p, categories, lo, hi)
		bars = append(bars, chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		})
	}

	graph := chart.BarChart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: titleColor},
		Width:      r.width,
		Height:     r.height,
		BarWidth:   r.barWidth(len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 96}},
		XAxis:      chart.Style{TextRotationDegrees: labelRotation},
		YAxis: chart.YAxis{
			Name:  spec.YLabel,
			Range: &chart.ContinuousRange{Min: math.Min(0, lo), Max: upper(lo, hi)},
		},
		Bars: bars,
	}

	if err := graph.Render(rp, w); err != nil {
		return fmt.Errorf("render bar chart %s: %w", spec.Name, err)
	}

	return nil
}

func (r *Renderer) barColor(spec BarSpec, i int, p Point, categories []string, lo, hi float64) drawing.Color {
	palette := spec.Palette
	if len(palette) == 0 {
		palette = PaletteBlues
	}

	switch spec.Mode {
	case ColorByValue:
		return lerpColor(spec.Gradient, normalize(p.Value, lo, hi))
	case ColorByCategory:
		if c, ok := spec.Colors[p.Category]; ok {
			return hexColor(c)
		}

		for j, c := range categories {
			if c == p.Category {
				return hexColor(palette[j%len(palette)])
			}
		}
	}

	return hexColor(palette[i%len(palette)])
}

func (r *Renderer) barWidth(n int) int {
	width := r.width / (2 * n)

	return max(minBarWidth, min(maxBarWidth, width))
}

func upper(lo, hi float64) float64 {
	if hi <= 0 {
		if lo < 0 {
			return 0
		}

		return 1
	}

	return hi * headroom
}

// Pie renders a pie chart. Zero and missing slices are dropped; nothing left renders a placeholder.
func (r *Renderer) Pie(w io.Writer, spec PieSpec, f Format) error {
	rp, err := provider(f)
	if err != nil {
		return err
	}

	palette := spec.Palette
	if len(palette) == 0 {
		palette = PaletteSunset
	}

	values := make([]chart.Value, 0, len(spec.Points))

	for _, p := range spec.Points {
		if math.IsNaN(p.Value) || p.Value <= 0 {
			continue
		}

		fill := hexColor(palette[len(values)%len(palette)])
		values = append(values, chart.Value{
			Label: p.Group,
			Value: p.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: drawing.ColorWhite},
		})
	}

	if len(values) == 0 {
		return r.placeholder(w, spec.Title, rp)
	}

	pie := chart.PieChart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: titleColor},
		Width:      r.width,
		Height:     r.height,
		Values:     values,
	}

	if err := pie.Render(rp, w); err != nil {
		return fmt.Errorf("render pie chart %s: %w", spec.Name, err)
	}

	return nil
}

func (r *Renderer) placeholder(w io.Writer, title string, rp chart.RendererProvider) error {
	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: titleColor},
		Width:      r.width,
		Height:     r.height,
		BarWidth:   maxBarWidth,
		Background: chart.Style{Padding: chart.Box{Top: 48}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Bars:       []chart.Value{{Label: noDataLabel, Value: 0}},
	}

	if err := graph.Render(rp, w); err != nil {
		return fmt.Errorf("render placeholder: %w", err)
	}

	return nil
}
