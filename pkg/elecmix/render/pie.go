package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Pie wedge styling.
const (
	pieExplode    = 0.1
	pieStartAngle = math.Pi
	pieRadius     = 0.38 // share of the shorter canvas side
	pieLabelAt    = 1.1
	piePercentAt  = 0.6
)

var errEmptyPie = errors.New("pie values sum to zero")

// Pie draws the cross-country snapshot of spec.Years[0] from a country-major
// table, one wedge per country in the given order. A year absent from the
// table is an error; no wedge is ever silently omitted.
func Pie(s *Surface, t models.CountryTable, spec models.PanelSpec, countries []string) error {
	if len(spec.Years) == 0 {
		return errNoYears
	}
	year := spec.Years[0]

	values := make([]float64, len(countries))
	for i, country := range countries {
		row, err := t.Row(country)
		if err != nil {
			return err
		}
		j := -1
		for k, y := range t.Years {
			if y == year {
				j = k
				break
			}
		}
		if j < 0 {
			return fmt.Errorf("%w: %d", models.ErrYearNotFound, year)
		}
		if row[j] < 0 {
			return fmt.Errorf("negative pie value %v for %q", row[j], country)
		}
		values[i] = row[j]
	}

	total := 0.0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return errEmptyPie
	}

	p := s.Plot
	applyLabels(p, spec)
	p.HideAxes()

	labelStyle := p.Title.TextStyle
	labelStyle.Font.Size = vg.Points(10)
	labelStyle.YAlign = text.YCenter
	pctStyle := labelStyle
	pctStyle.XAlign = text.XCenter

	colors := make([]color.Color, len(values))
	for i := range colors {
		colors[i] = plotutil.Color(i)
	}

	p.Add(&pieChart{
		values:     values,
		total:      total,
		labels:     countries,
		colors:     colors,
		edge:       draw.LineStyle{Color: color.Black, Width: vg.Points(2)},
		labelStyle: labelStyle,
		pctStyle:   pctStyle,
	})
	return nil
}

// pieChart implements plot.Plotter; gonum/plot has no pie plotter.
type pieChart struct {
	values     []float64
	total      float64
	labels     []string
	colors     []color.Color
	edge       draw.LineStyle
	labelStyle text.Style
	pctStyle   text.Style
}

// Plot draws the wedges counter-clockwise from pieStartAngle.
func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	size := c.Rectangle.Size()
	center := vg.Point{X: c.Min.X + size.X/2, Y: c.Min.Y + size.Y/2}
	radius := size.X
	if size.Y < radius {
		radius = size.Y
	}
	radius *= pieRadius

	angle := pieStartAngle
	for i, v := range pc.values {
		sweep := 2 * math.Pi * v / pc.total
		mid := angle + sweep/2
		origin := center.Add(polar(mid, radius*pieExplode))

		var wedge vg.Path
		wedge.Move(origin)
		wedge.Arc(origin, radius, angle, sweep)
		wedge.Close()

		c.SetColor(pc.colors[i])
		c.Fill(wedge)
		c.SetLineStyle(pc.edge)
		c.Stroke(wedge)

		c.FillText(pc.pctStyle, origin.Add(polar(mid, radius*piePercentAt)), fmt.Sprintf("%1.0f%%", 100*v/pc.total))

		sty := pc.labelStyle
		if math.Cos(mid) >= 0 {
			sty.XAlign = text.XLeft
		} else {
			sty.XAlign = text.XRight
		}
		c.FillText(sty, origin.Add(polar(mid, radius*pieLabelAt)), pc.labels[i])

		angle += sweep
	}
}

// DataRange keeps the pie centered when axes are hidden.
func (pc *pieChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

func polar(angle float64, r vg.Length) vg.Point {
	return vg.Point{
		X: vg.Length(math.Cos(angle)) * r,
		Y: vg.Length(math.Sin(angle)) * r,
	}
}
