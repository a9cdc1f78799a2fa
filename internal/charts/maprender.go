package charts

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	pixelsPerInch = 96

	minGlyphRadius = 4
	maxGlyphRadius = 18
	coordPadding   = 1.0
)

// Map renders the department map as a longitude/latitude scatter.
// Categorical specs colour each department by its category and size it by Size;
// continuous specs colour and size it by Value.
func (r *Renderer) Map(w io.Writer, spec MapSpec, f Format) error {
	if _, err := provider(f); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(titleFontSize)
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())

	points := finitePoints(spec.Points)
	if len(points) == 0 {
		p.Title.Text = spec.Title + " (" + noDataLabel + ")"
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
	} else if err := r.addMapPoints(p, spec, points); err != nil {
		return err
	}

	wt, err := p.WriterTo(pixels(r.width), pixels(r.height), string(f))
	if err != nil {
		return fmt.Errorf("render map %s: %w", spec.Name, err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write map %s: %w", spec.Name, err)
	}

	return nil
}

func (r *Renderer) addMapPoints(p *plot.Plot, spec MapSpec, points []MapPoint) error {
	values := make([]float64, len(points))
	sizes := make([]float64, len(points))

	for i, pt := range points {
		values[i] = pt.Value
		sizes[i] = pt.Size
	}

	vlo, vhi, _ := valueRange(values)
	slo, shi, _ := valueRange(sizes)
	legendDone := make(map[string]bool)

	xys := make(plotter.XYs, len(points))
	labels := make([]string, len(points))

	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.Longitude, Y: pt.Latitude}
		labels[i] = pt.Label

		sc, err := plotter.NewScatter(plotter.XYs{xys[i]})
		if err != nil {
			return fmt.Errorf("map point %s: %w", pt.Label, err)
		}

		sc.GlyphStyle.Shape = draw.CircleGlyph{}

		if spec.Categorical {
			sc.GlyphStyle.Color = hexColor(spec.Colors[pt.Category])
			sc.GlyphStyle.Radius = glyphRadius(pt.Size, slo, shi)

			if !legendDone[pt.Category] {
				p.Legend.Add(pt.Category, sc)
				legendDone[pt.Category] = true
			}
		} else {
			t := normalize(pt.Value, vlo, vhi)
			sc.GlyphStyle.Color = lerpColor(spec.Gradient, t)
			sc.GlyphStyle.Radius = glyphRadius(pt.Value, vlo, vhi)
		}

		p.Add(sc)
	}

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("map labels: %w", err)
	}

	p.Add(names)

	xlo, xhi, _ := valueRange(longitudes(points))
	ylo, yhi, _ := valueRange(latitudes(points))
	p.X.Min, p.X.Max = xlo-coordPadding, xhi+coordPadding
	p.Y.Min, p.Y.Max = ylo-coordPadding, yhi+coordPadding
	p.Legend.Top = true

	return nil
}

func finitePoints(points []MapPoint) []MapPoint {
	out := make([]MapPoint, 0, len(points))

	for _, pt := range points {
		if math.IsNaN(pt.Latitude) || math.IsNaN(pt.Longitude) {
			continue
		}

		out = append(out, pt)
	}

	return out
}

func longitudes(points []MapPoint) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = pt.Longitude
	}

	return out
}

func latitudes(points []MapPoint) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = pt.Latitude
	}

	return out
}

func glyphRadius(v, lo, hi float64) vg.Length {
	if math.IsNaN(v) {
		return vg.Points(minGlyphRadius)
	}

	t := normalize(v, lo, hi)

	return vg.Points(minGlyphRadius + t*(maxGlyphRadius-minGlyphRadius))
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / pixelsPerInch
}
