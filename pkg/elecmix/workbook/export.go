// Package workbook writes the reshaped report tables to an xlsx file with
// native charts, and reads chart metadata back out of such files.
package workbook

import (
	"fmt"
	"strings"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"github.com/xuri/excelize/v2"
)

// ReportSheet holds the title, caption and one chart per panel.
const ReportSheet = "Report"

// Chart frame size in pixels and grid placement on the report sheet.
const (
	chartWidth   = 560
	chartHeight  = 320
	chartCols    = 9  // default-width columns spanned by a chart
	chartRows    = 17 // default-height rows spanned by a chart
	gridCols     = 2
	firstGridRow = 3
)

// Panel is one panel's data as drawn in the report.
type Panel struct {
	Spec  models.PanelSpec
	Table models.YearTable
}

// SheetName returns the data sheet name of the i-th panel (0-based).
func SheetName(i int) string {
	return fmt.Sprintf("Panel%d", i+1)
}

// Export writes one data sheet per panel plus the report sheet to path.
func Export(path string, def models.Definition, panels []Panel) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return err
	}

	for i, p := range panels {
		table, err := plotted(p)
		if err != nil {
			return fmt.Errorf("panel %d: %w", i+1, err)
		}
		sheet := SheetName(i)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeTable(f, sheet, table, def.Countries); err != nil {
			return fmt.Errorf("panel %d: %w", i+1, err)
		}

		chart, err := nativeChart(sheet, p.Spec, table, def.Countries)
		if err != nil {
			return fmt.Errorf("panel %d: %w", i+1, err)
		}
		if err := f.AddChart(ReportSheet, gridCell(i), chart); err != nil {
			return fmt.Errorf("panel %d: %w", i+1, err)
		}
	}

	if err := writeHeading(f, def, len(panels)); err != nil {
		return err
	}
	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

// plotted narrows a panel's table to the rows its chart draws.
func plotted(p Panel) (models.YearTable, error) {
	switch p.Spec.Kind {
	case models.PanelBar, models.PanelHorizontalBar:
		return p.Table.FilterYears(p.Spec.Years...)
	}
	return p.Table, nil
}

// writeTable lays a year-major table out with a Years column followed by
// one column per country.
func writeTable(f *excelize.File, sheet string, t models.YearTable, countries []string) error {
	header := []interface{}{models.YearsColumn}
	for _, c := range countries {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, y := range t.Years {
		row := []interface{}{y}
		for _, c := range countries {
			col, err := t.Column(c)
			if err != nil {
				return err
			}
			row = append(row, col[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func nativeChart(sheet string, spec models.PanelSpec, t models.YearTable, countries []string) (*excelize.Chart, error) {
	last := len(t.Years) + 1
	chart := &excelize.Chart{
		Title:     []excelize.RichTextRun{{Text: spec.Title}},
		Legend:    excelize.ChartLegend{Position: "right"},
		Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.XLabel}}},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: spec.YLabel}},
			MajorGridLines: true,
		},
	}

	switch spec.Kind {
	case models.PanelPie:
		if len(spec.Years) == 0 {
			return nil, fmt.Errorf("%w: pie needs a year", models.ErrYearNotFound)
		}
		row := -1
		for i, y := range t.Years {
			if y == spec.Years[0] {
				row = i + 2
			}
		}
		if row < 0 {
			return nil, fmt.Errorf("%w: %d", models.ErrYearNotFound, spec.Years[0])
		}
		lastCol, err := excelize.ColumnNumberToName(len(countries) + 1)
		if err != nil {
			return nil, err
		}
		chart.Type = excelize.Pie
		chart.PlotArea = excelize.ChartPlotArea{ShowPercent: true}
		chart.Series = []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$A$%d", sheet, row),
			Categories: fmt.Sprintf("%s!$B$1:$%s$1", sheet, lastCol),
			Values:     fmt.Sprintf("%s!$B$%d:$%s$%d", sheet, row, lastCol, row),
		}}
		return chart, nil
	case models.PanelLine:
		chart.Type = excelize.Line
		chart.Legend.Position = "none"
	case models.PanelDot:
		chart.Type = excelize.Scatter
	case models.PanelBar:
		chart.Type = excelize.Col
	case models.PanelHorizontalBar:
		chart.Type = excelize.Bar
		chart.Legend.Position = "none"
	default:
		return nil, fmt.Errorf("unknown panel kind %q", spec.Kind)
	}

	for i := range countries {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return nil, err
		}
		s := excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", sheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, col, col, last),
		}
		if spec.Kind == models.PanelLine || spec.Kind == models.PanelDot {
			s.Marker = excelize.ChartMarker{Symbol: "circle", Size: 5}
		}
		if spec.Kind == models.PanelDot {
			s.Line = excelize.ChartLine{Type: excelize.ChartLineNone}
		}
		chart.Series = append(chart.Series, s)
	}
	return chart, nil
}

// gridCell returns the top-left anchor of the i-th chart on the report sheet.
func gridCell(i int) string {
	col := 1 + (i%gridCols)*(chartCols+1)
	row := firstGridRow + (i/gridCols)*(chartRows+1)
	cell, _ := excelize.CoordinatesToCellName(col+1, row)
	return cell
}

// writeHeading puts the title in A1 and the caption in the grid cell after
// the last chart.
func writeHeading(f *excelize.File, def models.Definition, n int) error {
	if err := f.SetCellValue(ReportSheet, "A1", def.Title); err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 20},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFFE0"}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ReportSheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	if def.Caption == "" {
		return nil
	}
	top := gridCell(n)
	col, row, err := excelize.CellNameToCoordinates(top)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col+chartCols-1, row+chartRows-1)
	if err != nil {
		return err
	}
	if err := f.MergeCell(ReportSheet, top, bottom); err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSpace(def.Caption), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if err := f.SetCellValue(ReportSheet, top, strings.Join(lines, " ")); err != nil {
		return err
	}
	captionStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(ReportSheet, top, bottom, captionStyle)
}
