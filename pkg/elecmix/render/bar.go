package render

import (
	"math"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// groupShare is the share of a year's category slot covered by its bars.
const groupShare = 0.65

// Bar draws grouped vertical bars, one group per year in spec.Years and one
// bar per country. The legend sits outside the plot area.
func Bar(s *Surface, t models.YearTable, spec models.PanelSpec, countries []string) error {
	sub, err := t.FilterYears(spec.Years...)
	if err != nil {
		return err
	}
	p := s.Plot
	applyLabels(p, spec)
	legend := s.outsideLegend()

	group, err := groupedBars(sub, countries, false)
	if err != nil {
		return err
	}
	p.Add(group)
	for i, b := range group.bars {
		legend.Add(countries[i], b)
	}
	p.NominalX(sub.YearLabels()...)
	return nil
}

// HorizontalBar draws grouped horizontal bars for the years in spec.Years.
// No legend.
func HorizontalBar(s *Surface, t models.YearTable, spec models.PanelSpec, countries []string) error {
	sub, err := t.FilterYears(spec.Years...)
	if err != nil {
		return err
	}
	p := s.Plot
	applyLabels(p, spec)

	group, err := groupedBars(sub, countries, true)
	if err != nil {
		return err
	}
	p.Add(group)
	p.NominalY(sub.YearLabels()...)
	return nil
}

// barGroup draws one bar chart per country side by side around each year's
// category position. Bar widths are fixed at draw time so that a year's
// group covers groupShare of its slot however many years are shown.
type barGroup struct {
	bars       []*plotter.BarChart
	horizontal bool
}

// groupedBars builds the bar charts of a group, one per country.
func groupedBars(t models.YearTable, countries []string, horizontal bool) (*barGroup, error) {
	g := &barGroup{horizontal: horizontal}
	for i, country := range countries {
		col, err := t.Column(country)
		if err != nil {
			return nil, err
		}
		// Width is replaced in Plot once the slot size is known.
		b, err := plotter.NewBarChart(plotter.Values(col), vg.Points(1))
		if err != nil {
			return nil, err
		}
		b.Horizontal = horizontal
		b.Color = plotutil.Color(i)
		b.LineStyle.Width = 0
		g.bars = append(g.bars, b)
	}
	return g, nil
}

// Plot implements plot.Plotter.
func (g *barGroup) Plot(c draw.Canvas, plt *plot.Plot) {
	if len(g.bars) == 0 {
		return
	}
	trX, trY := plt.Transforms(&c)
	tr := trX
	if g.horizontal {
		tr = trY
	}
	slot := tr(1) - tr(0)
	if slot < 0 {
		slot = -slot
	}

	width := slot * groupShare / vg.Length(len(g.bars))
	mid := float64(len(g.bars)-1) / 2
	for i, b := range g.bars {
		b.Width = width
		b.Offset = vg.Length(float64(i)-mid) * width
		b.Plot(c, plt)
	}
}

// DataRange implements plot.DataRanger. The category axis is padded by half
// a slot on each side so the outer groups are not clipped.
func (g *barGroup) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, b := range g.bars {
		x0, x1, y0, y1 := b.DataRange()
		xmin, xmax = math.Min(xmin, x0), math.Max(xmax, x1)
		ymin, ymax = math.Min(ymin, y0), math.Max(ymax, y1)
	}
	if g.horizontal {
		ymin, ymax = ymin-0.5, ymax+0.5
	} else {
		xmin, xmax = xmin-0.5, xmax+0.5
	}
	return xmin, xmax, ymin, ymax
}
