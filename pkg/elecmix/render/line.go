package render

import (
	"errors"
	"strconv"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// tickStep is the spacing of year ticks on the line panel.
const tickStep = 2

var errNoYears = errors.New("table has no years")

// Line draws one marked line per country across every year of t. No legend.
func Line(s *Surface, t models.YearTable, spec models.PanelSpec, countries []string) error {
	if len(t.Years) == 0 {
		return errNoYears
	}
	p := s.Plot
	applyLabels(p, spec)

	xs, err := t.Column(models.YearsColumn)
	if err != nil {
		return err
	}

	for i, country := range countries {
		ys, err := t.Column(country)
		if err != nil {
			return err
		}
		pts := make(plotter.XYs, len(xs))
		for k := range xs {
			pts[k].X = xs[k]
			pts[k].Y = ys[k]
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(line, points)
	}

	p.X.Tick.Marker = yearTicks(t.Years[0], t.Years[len(t.Years)-1], tickStep)
	return nil
}

// yearTicks labels every step-th year from first up to, not including, last.
func yearTicks(first, last, step int) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for y := first; y < last; y += step {
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}
