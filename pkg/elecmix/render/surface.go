// Package render draws the report panels onto gonum/plot surfaces.
package render

import (
	"fmt"
	"image/color"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	// Beige is the figure and panel background.
	Beige = color.RGBA{R: 245, G: 245, B: 220, A: 255}
	// LightYellow backs the report title.
	LightYellow = color.RGBA{R: 255, G: 255, B: 224, A: 255}

	gridColor = color.Gray{Y: 210}
)

// legendStrip is the share of a surface's width given to an outside legend.
const legendStrip = 0.24

// Surface is one drawing region of the report: a plot and, for panels whose
// legend sits outside the plot area, a separate legend.
type Surface struct {
	Plot   *plot.Plot
	Legend *plot.Legend
}

// NewSurface returns a surface carrying the shared report style.
func NewSurface() *Surface {
	p := plot.New()
	p.BackgroundColor = Beige

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	return &Surface{Plot: p}
}

// outsideLegend attaches a legend drawn to the right of the plot area.
func (s *Surface) outsideLegend() *plot.Legend {
	l := plot.NewLegend()
	l.Top = true
	l.Left = true
	l.XOffs = vg.Points(6)
	s.Legend = &l
	return s.Legend
}

// Draw renders the surface onto c.
func (s *Surface) Draw(c draw.Canvas) {
	if s.Legend == nil {
		s.Plot.Draw(c)
		return
	}
	width := c.Rectangle.Size().X
	strip := width * legendStrip
	s.Plot.Draw(draw.Crop(c, 0, -strip, 0, 0))

	legend := draw.Crop(c, width-strip, 0, 0, 0)
	legend.SetColor(Beige)
	legend.Fill(legend.Rectangle.Path())
	s.Legend.Draw(legend)
}

// Panel dispatches spec to its renderer.
func Panel(s *Surface, spec models.PanelSpec, ct models.CountryTable, yt models.YearTable, countries []string) error {
	switch spec.Kind {
	case models.PanelLine:
		return Line(s, yt, spec, countries)
	case models.PanelDot:
		return Dot(s, yt, spec, countries)
	case models.PanelPie:
		return Pie(s, ct, spec, countries)
	case models.PanelBar:
		return Bar(s, yt, spec, countries)
	case models.PanelHorizontalBar:
		return HorizontalBar(s, yt, spec, countries)
	}
	return fmt.Errorf("unknown panel kind %q", spec.Kind)
}

func applyLabels(p *plot.Plot, spec models.PanelSpec) {
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
}
