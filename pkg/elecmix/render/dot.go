package render

import (
	"math"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/reshape"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Dot melts t into (year, country, value) observations and draws one point
// series per country over nominal year categories. The legend sits outside
// the plot area.
func Dot(s *Surface, t models.YearTable, spec models.PanelSpec, countries []string) error {
	if len(t.Years) == 0 {
		return errNoYears
	}
	obs, err := reshape.Melt(t, countries)
	if err != nil {
		return err
	}

	position := make(map[int]float64, len(t.Years))
	for i, y := range t.Years {
		position[y] = float64(i)
	}
	byCountry := make(map[string]plotter.XYs, len(countries))
	for _, o := range obs {
		byCountry[o.Country] = append(byCountry[o.Country], plotter.XY{X: position[o.Year], Y: o.Value})
	}

	p := s.Plot
	applyLabels(p, spec)
	legend := s.outsideLegend()

	for i, country := range countries {
		line, points, err := plotter.NewLinePoints(byCountry[country])
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(line, points)
		legend.Add(country, line, points)
	}

	p.NominalX(t.YearLabels()...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return nil
}
