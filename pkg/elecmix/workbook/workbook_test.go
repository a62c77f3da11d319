package workbook

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"github.com/xuri/excelize/v2"
)

var testCountries = []string{"Australia", "India", "Japan"}

func testTable() models.YearTable {
	return models.YearTable{
		Indicator: "coal",
		Years:     []int{2000, 2005, 2010, 2015},
		Countries: testCountries,
		Columns: map[string][]float64{
			"Australia": {83.1, 79.6, 70.9, 61.2},
			"India":     {78.0, 68.7, 67.9, 75.1},
			"Japan":     {21.7, 27.4, 27.2, 33.9},
		},
	}
}

func testDefinition() models.Definition {
	return models.Definition{
		Title:     "Test report",
		Caption:   "first line\nsecond line",
		Countries: testCountries,
		FirstYear: 2000,
		LastYear:  2015,
		Panels: []models.PanelSpec{
			{Kind: models.PanelLine, Indicator: "coal", Title: "Line panel", YLabel: "percent"},
			{Kind: models.PanelDot, Indicator: "coal", Title: "Dot panel"},
			{Kind: models.PanelPie, Indicator: "coal", Title: "Pie panel", Years: []int{2010}},
			{Kind: models.PanelBar, Indicator: "coal", Title: "Bar panel", Years: []int{2015}},
			{Kind: models.PanelHorizontalBar, Indicator: "coal", Title: "Hbar panel", Years: []int{2000, 2015}},
		},
	}
}

func exportTest(t *testing.T) string {
	t.Helper()
	def := testDefinition()
	var panels []Panel
	for _, spec := range def.Panels {
		panels = append(panels, Panel{Spec: spec, Table: testTable()})
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Export(path, def, panels); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	return path
}

func TestExportSheets(t *testing.T) {
	path := exportTest(t)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer f.Close()

	want := []string{ReportSheet, "Panel1", "Panel2", "Panel3", "Panel4", "Panel5"}
	got := f.GetSheetList()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("sheets = %v, expected %v", got, want)
	}

	title, _ := f.GetCellValue(ReportSheet, "A1")
	if title != "Test report" {
		t.Errorf("title cell = %q, expected %q", title, "Test report")
	}

	rows, err := f.GetRows("Panel1")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("Panel1 has %d rows, expected 5", len(rows))
	}
	if rows[0][0] != models.YearsColumn || rows[0][1] != "Australia" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "2000" || rows[1][1] != "83.1" {
		t.Errorf("first data row = %v", rows[1])
	}

	// Bar sheets hold only the selected years.
	rows, _ = f.GetRows("Panel5")
	if len(rows) != 3 || rows[1][0] != "2000" || rows[2][0] != "2015" {
		t.Errorf("Panel5 rows = %v", rows)
	}
}

func TestInspectCharts(t *testing.T) {
	path := exportTest(t)

	charts, err := InspectCharts(path)
	if err != nil {
		t.Fatalf("InspectCharts failed: %v", err)
	}
	report := charts[ReportSheet]
	if len(report) != 5 {
		t.Fatalf("found %d charts, expected 5", len(report))
	}

	tests := []struct {
		chartType string
		title     string
		series    int
	}{
		{"Line", "Line panel", 3},
		{"XYScatter", "Dot panel", 3},
		{"Pie", "Pie panel", 1},
		{"Column", "Bar panel", 3},
		{"Bar", "Hbar panel", 3},
	}
	for i, tt := range tests {
		c := report[i]
		if c.ChartType != tt.chartType {
			t.Errorf("chart %d type = %q, expected %q", i, c.ChartType, tt.chartType)
		}
		if c.Title != tt.title {
			t.Errorf("chart %d title = %q, expected %q", i, c.Title, tt.title)
		}
		if len(c.Series) != tt.series {
			t.Errorf("chart %d has %d series, expected %d", i, len(c.Series), tt.series)
		}
	}

	line := report[0]
	if line.From != "B3" {
		t.Errorf("line chart anchored at %q, expected B3", line.From)
	}
	if line.YAxisTitle != "percent" {
		t.Errorf("line y axis title = %q, expected %q", line.YAxisTitle, "percent")
	}
	if got := line.Series[0].YRange; got != "Panel1!$B$2:$B$5" {
		t.Errorf("line series values = %q", got)
	}
	if got := line.Series[1].NameRange; got != "Panel1!$C$1" {
		t.Errorf("line series name = %q", got)
	}
	if got := report[2].Series[0].YRange; got != "Panel3!$B$4:$D$4" {
		t.Errorf("pie values = %q", got)
	}
}

func TestExportMissingPieYear(t *testing.T) {
	def := testDefinition()
	spec := def.Panels[2]
	spec.Years = []int{1990}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	err := Export(path, def, []Panel{{Spec: spec, Table: testTable()}})
	if err == nil {
		t.Fatal("expected error for a pie year outside the table")
	}
}

func TestGridCell(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "B3"},
		{1, "L3"},
		{2, "B21"},
		{3, "L21"},
		{5, "L39"},
	}

	for _, tt := range tests {
		if got := gridCell(tt.index); got != tt.expected {
			t.Errorf("gridCell(%d) = %q, expected %q", tt.index, got, tt.expected)
		}
	}
}

func TestInspectChartsNotWorkbook(t *testing.T) {
	if _, err := InspectCharts(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected error for a missing file")
	}
}

// copyWithout rewrites the zip at src to dst, leaving out the first entry
// whose name has the given prefix.
func copyWithout(t *testing.T, src, dst, prefix string) {
	t.Helper()
	r, err := zip.OpenReader(src)
	if err != nil {
		t.Fatalf("open %s: %v", src, err)
	}
	defer r.Close()

	out, err := os.Create(dst)
	if err != nil {
		t.Fatalf("create %s: %v", dst, err)
	}
	defer out.Close()
	zw := zip.NewWriter(out)

	dropped := false
	for _, f := range r.File {
		if !dropped && strings.HasPrefix(f.Name, prefix) {
			dropped = true
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			t.Fatalf("create entry %s: %v", f.Name, err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			t.Fatalf("copy entry %s: %v", f.Name, err)
		}
		rc.Close()
	}
	if !dropped {
		t.Fatalf("no entry with prefix %q in %s", prefix, src)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

func TestInspectChartsDamaged(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"missing chart part", "xl/charts/chart"},
		{"missing drawing part", "xl/drawings/drawing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := exportTest(t)
			dst := filepath.Join(t.TempDir(), "damaged.xlsx")
			copyWithout(t, src, dst, tt.prefix)

			_, err := InspectCharts(dst)
			if !errors.Is(err, ErrDamaged) {
				t.Errorf("InspectCharts error = %v, expected ErrDamaged", err)
			}
		})
	}
}
