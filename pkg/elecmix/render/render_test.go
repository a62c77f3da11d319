package render

import (
	"errors"
	"testing"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var testCountries = []string{"Australia", "India", "Japan"}

func testTables() (models.CountryTable, models.YearTable) {
	ct := models.CountryTable{
		Indicator: "oil",
		Countries: testCountries,
		Years:     []int{2000, 2005, 2010, 2015},
		Values: [][]float64{
			{1.2, 1.0, 1.9, 2.0},
			{4.1, 4.5, 1.2, 1.8},
			{11.0, 12.5, 8.6, 9.8},
		},
	}
	yt := models.YearTable{
		Indicator: ct.Indicator,
		Years:     ct.Years,
		Countries: ct.Countries,
		Columns:   make(map[string][]float64),
	}
	for i, c := range ct.Countries {
		yt.Columns[c] = ct.Values[i]
	}
	return ct, yt
}

func drawSurface(t *testing.T, s *Surface) {
	t.Helper()
	c := vgimg.New(4*vg.Inch, 3*vg.Inch)
	s.Draw(draw.New(c))
}

func TestPanels(t *testing.T) {
	ct, yt := testTables()

	tests := []struct {
		spec       models.PanelSpec
		wantLegend bool
	}{
		{models.PanelSpec{Kind: models.PanelLine, Title: "line", XLabel: "Years"}, false},
		{models.PanelSpec{Kind: models.PanelDot, Title: "dot"}, true},
		{models.PanelSpec{Kind: models.PanelPie, Title: "pie", Years: []int{2010}}, false},
		{models.PanelSpec{Kind: models.PanelBar, Title: "bar", Years: []int{2015}}, true},
		{models.PanelSpec{Kind: models.PanelHorizontalBar, Title: "hbar", Years: []int{2000, 2015}}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.spec.Kind), func(t *testing.T) {
			s := NewSurface()
			if err := Panel(s, tt.spec, ct, yt, testCountries); err != nil {
				t.Fatalf("Panel failed: %v", err)
			}
			if s.Plot.Title.Text != tt.spec.Title {
				t.Errorf("title = %q, expected %q", s.Plot.Title.Text, tt.spec.Title)
			}
			if (s.Legend != nil) != tt.wantLegend {
				t.Errorf("outside legend = %v, expected %v", s.Legend != nil, tt.wantLegend)
			}
			drawSurface(t, s)
		})
	}
}

func TestPanelUnknownKind(t *testing.T) {
	ct, yt := testTables()
	err := Panel(NewSurface(), models.PanelSpec{Kind: "area"}, ct, yt, testCountries)
	if err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPieAbsentYear(t *testing.T) {
	ct, _ := testTables()
	spec := models.PanelSpec{Kind: models.PanelPie, Years: []int{2012}}

	err := Pie(NewSurface(), ct, spec, testCountries)
	if !errors.Is(err, models.ErrYearNotFound) {
		t.Errorf("Pie() error = %v, expected ErrYearNotFound", err)
	}
}

func TestPieRejects(t *testing.T) {
	ct, _ := testTables()
	spec := models.PanelSpec{Kind: models.PanelPie, Years: []int{2010}}

	zero := ct
	zero.Values = [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}
	if err := Pie(NewSurface(), zero, spec, testCountries); !errors.Is(err, errEmptyPie) {
		t.Errorf("all-zero pie error = %v, expected errEmptyPie", err)
	}

	negative := ct
	negative.Values = [][]float64{{1, 1, -1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}}
	if err := Pie(NewSurface(), negative, spec, testCountries); err == nil {
		t.Error("expected error for a negative wedge")
	}

	if err := Pie(NewSurface(), ct, models.PanelSpec{}, testCountries); !errors.Is(err, errNoYears) {
		t.Errorf("pie without year error = %v, expected errNoYears", err)
	}
}

func TestMissingCountry(t *testing.T) {
	ct, yt := testTables()
	countries := []string{"Australia", "Peru"}

	tests := []models.PanelSpec{
		{Kind: models.PanelLine},
		{Kind: models.PanelDot},
		{Kind: models.PanelPie, Years: []int{2010}},
		{Kind: models.PanelBar, Years: []int{2015}},
		{Kind: models.PanelHorizontalBar, Years: []int{2015}},
	}
	for _, spec := range tests {
		err := Panel(NewSurface(), spec, ct, yt, countries)
		if !errors.Is(err, models.ErrColumnNotFound) {
			t.Errorf("%s: error = %v, expected ErrColumnNotFound", spec.Kind, err)
		}
	}
}

func TestBarAbsentYear(t *testing.T) {
	_, yt := testTables()
	spec := models.PanelSpec{Kind: models.PanelBar, Years: []int{1999}}
	if err := Bar(NewSurface(), yt, spec, testCountries); !errors.Is(err, models.ErrYearNotFound) {
		t.Errorf("Bar() error = %v, expected ErrYearNotFound", err)
	}
}

func TestYearTicks(t *testing.T) {
	ticks := yearTicks(1998, 2015, 2)
	if len(ticks) != 9 {
		t.Fatalf("got %d ticks, expected 9", len(ticks))
	}
	if ticks[0].Label != "1998" || ticks[8].Label != "2014" {
		t.Errorf("ticks run %s..%s, expected 1998..2014", ticks[0].Label, ticks[8].Label)
	}
}

func TestLineEmpty(t *testing.T) {
	if err := Line(NewSurface(), models.YearTable{}, models.PanelSpec{}, nil); !errors.Is(err, errNoYears) {
		t.Errorf("Line() error = %v, expected errNoYears", err)
	}
}

func TestBarWidthScalesWithYears(t *testing.T) {
	width := func(years int) vg.Length {
		yt := models.YearTable{Columns: make(map[string][]float64)}
		for y := 0; y < years; y++ {
			yt.Years = append(yt.Years, 2000+y)
		}
		for _, c := range testCountries {
			yt.Countries = append(yt.Countries, c)
			yt.Columns[c] = make([]float64, years)
			for i := range yt.Columns[c] {
				yt.Columns[c][i] = float64(i + 1)
			}
		}

		group, err := groupedBars(yt, testCountries, false)
		if err != nil {
			t.Fatalf("groupedBars failed: %v", err)
		}
		p := plot.New()
		p.Add(group)
		p.NominalX(yt.YearLabels()...)
		p.Draw(draw.New(vgimg.New(4*vg.Inch, 3*vg.Inch)))
		return group.bars[0].Width
	}

	few, many := width(2), width(16)
	if many >= few {
		t.Errorf("bar width with 16 years = %v, not below %v with 2 years", many, few)
	}
	// A group never spills into the next year's slot.
	canvasWidth := 4 * vg.Inch
	if groupWidth := many * vg.Length(len(testCountries)); groupWidth >= canvasWidth/16 {
		t.Errorf("group width %v exceeds a 16th of the canvas %v", groupWidth, canvasWidth)
	}
}
