package workbook

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"github.com/xuri/excelize/v2"
)

// ChartTypeMap maps OOXML plot elements to chart type names. Bar charts are
// refined to "Column" or "Bar" from their barDir.
var ChartTypeMap = map[string]string{
	"lineChart":     "Line",
	"line3DChart":   "3DLine",
	"barChart":      "Bar",
	"bar3DChart":    "3DBar",
	"areaChart":     "Area",
	"pieChart":      "Pie",
	"pie3DChart":    "3DPie",
	"doughnutChart": "Doughnut",
	"scatterChart":  "XYScatter",
	"radarChart":    "Radar",
}

// ErrDamaged indicates a workbook whose relationships name parts it lacks or
// cannot read.
var ErrDamaged = errors.New("damaged workbook")

// anchor is one chart frame found in a drawing part.
type anchor struct {
	name    string
	rID     string
	fromCol int
	fromRow int
	toCol   int
	toRow   int
}

// InspectCharts lists the charts of every sheet in an xlsx file, ordered by
// anchor position (top to bottom, left to right).
func InspectCharts(xlsxPath string) (map[string][]models.Chart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pkg := ooxml{&r.Reader}
	sheets, err := pkg.sheetParts()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.Chart)
	for sheetName, sheetPart := range sheets {
		drawingPart := pkg.relTarget(sheetPart, "drawing")
		if drawingPart == "" {
			continue
		}
		data, err := pkg.require(drawingPart)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		anchors := parseDrawingAnchors(data)
		sort.SliceStable(anchors, func(i, j int) bool {
			if anchors[i].fromRow != anchors[j].fromRow {
				return anchors[i].fromRow < anchors[j].fromRow
			}
			return anchors[i].fromCol < anchors[j].fromCol
		})

		chartParts := pkg.relTargets(drawingPart, "chart")
		var charts []models.Chart
		for _, a := range anchors {
			part, ok := chartParts[a.rID]
			if !ok {
				return nil, fmt.Errorf("sheet %q: %w: no chart relationship %s", sheetName, ErrDamaged, a.rID)
			}
			chartXML, err := pkg.require(part)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
			}
			charts = append(charts, parseChartXML(chartXML, a))
		}
		if len(charts) > 0 {
			result[sheetName] = charts
		}
	}
	return result, nil
}

// require reads a part that a relationship names; a missing part is damage.
func (p ooxml) require(name string) ([]byte, error) {
	data, err := p.read(name)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDamaged, name, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: missing part %s", ErrDamaged, name)
	}
	return data, nil
}

// ooxml reads parts and relationships out of an xlsx package.
type ooxml struct {
	zr *zip.Reader
}

func (p ooxml) read(name string) ([]byte, error) {
	for _, f := range p.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// sheetParts maps sheet names to their worksheet part paths.
func (p ooxml) sheetParts() (map[string]string, error) {
	data, err := p.read("xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("not a workbook: xl/workbook.xml missing")
	}

	names := make(map[string]string) // rId -> sheet name
	d := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attr(se, "name"), attr(se, "id")
			if name != "" && rID != "" {
				names[rID] = name
			}
		}
	}

	result := make(map[string]string)
	for rID, target := range p.relTargets("xl/workbook.xml", "worksheet") {
		if name, ok := names[rID]; ok {
			result[name] = target
		}
	}
	return result, nil
}

// relTarget returns the first relationship target of part whose type
// contains kind.
func (p ooxml) relTarget(part, kind string) string {
	for _, t := range p.relTargets(part, kind) {
		return t
	}
	return ""
}

// relTargets maps relationship ids of part to resolved part paths, keeping
// relationships whose type ends in kind.
func (p ooxml) relTargets(part, kind string) map[string]string {
	dir, file := path.Split(part)
	data, err := p.read(dir + "_rels/" + file + ".rels")
	result := make(map[string]string)
	if err != nil || data == nil {
		return result
	}

	d := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(attr(se, "Type")), "/"+kind) {
			continue
		}
		target := attr(se, "Target")
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join(dir, target)
		}
		result[attr(se, "Id")] = target
	}
	return result
}

// parseDrawingAnchors finds chart frames in a drawing part.
func parseDrawingAnchors(data []byte) []anchor {
	var result []anchor
	d := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || (se.Name.Local != "twoCellAnchor" && se.Name.Local != "oneCellAnchor") {
			continue
		}

		var a anchor
		walk(d, func(se xml.StartElement) bool {
			switch se.Name.Local {
			case "from":
				a.fromCol, a.fromRow = parseMarker(d)
				return true
			case "to":
				a.toCol, a.toRow = parseMarker(d)
				return true
			case "cNvPr":
				a.name = attr(se, "name")
			case "chart":
				a.rID = attr(se, "id")
			}
			return false
		})
		if a.rID != "" {
			result = append(result, a)
		}
	}
	return result
}

// parseMarker reads an anchor's zero-based col and row.
func parseMarker(d *xml.Decoder) (col, row int) {
	walk(d, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "col":
			col, _ = strconv.Atoi(strings.TrimSpace(readText(d)))
			return true
		case "row":
			row, _ = strconv.Atoi(strings.TrimSpace(readText(d)))
			return true
		}
		return false
	})
	return
}

// parseChartXML parses a chart part.
func parseChartXML(data []byte, a anchor) models.Chart {
	chart := models.Chart{Name: a.name}
	if cell, err := excelize.CoordinatesToCellName(a.fromCol+1, a.fromRow+1); err == nil {
		chart.From = cell
	}
	if cell, err := excelize.CoordinatesToCellName(a.toCol+1, a.toRow+1); err == nil {
		chart.To = cell
	}

	d := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "chart" {
			parseChartElement(d, &chart)
			break
		}
	}

	if chart.ChartType == "" {
		chart.ChartType = "unknown"
	}
	return chart
}

func parseChartElement(d *xml.Decoder, chart *models.Chart) {
	walk(d, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "title":
			chart.Title = parseTitle(d)
			return true
		case "plotArea":
			parsePlotArea(d, chart)
			return true
		}
		return false
	})
}

// parseTitle joins the text runs of a title element.
func parseTitle(d *xml.Decoder) string {
	var b strings.Builder
	walk(d, func(se xml.StartElement) bool {
		if se.Name.Local == "t" {
			b.WriteString(readText(d))
			return true
		}
		return false
	})
	return strings.TrimSpace(b.String())
}

func parsePlotArea(d *xml.Decoder, chart *models.Chart) {
	var yAxisSeen, yAxisVertical bool
	walk(d, func(se xml.StartElement) bool {
		if ct, ok := ChartTypeMap[se.Name.Local]; ok && chart.ChartType == "" {
			chart.ChartType = ct
			parsePlot(d, chart)
			return true
		}
		if se.Name.Local == "valAx" {
			title, axisRange, pos := parseValueAxis(d)
			// A vertical value axis wins over a horizontal one (scatter x axes).
			vertical := pos == "l" || pos == "r"
			if !yAxisSeen || (vertical && !yAxisVertical) {
				chart.YAxisTitle, chart.YAxisRange = title, axisRange
				yAxisSeen, yAxisVertical = true, vertical
			}
			return true
		}
		return false
	})
}

// parsePlot reads the series of one plot element and its bar direction.
func parsePlot(d *xml.Decoder, chart *models.Chart) {
	walk(d, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "barDir":
			if chart.ChartType == "Bar" && attr(se, "val") == "col" {
				chart.ChartType = "Column"
			}
		case "ser":
			chart.Series = append(chart.Series, parseSeries(d))
			return true
		}
		return false
	})
}

func parseSeries(d *xml.Decoder) models.ChartSeries {
	var s models.ChartSeries
	walk(d, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "tx":
			s.NameRange, s.Name = parseRef(d)
			return true
		case "cat", "xVal":
			s.XRange, _ = parseRef(d)
			return true
		case "val", "yVal":
			s.YRange, _ = parseRef(d)
			return true
		}
		return false
	})
	return s
}

// parseRef returns the formula and first cached value of a reference element.
func parseRef(d *xml.Decoder) (formula, value string) {
	walk(d, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "f":
			formula = strings.TrimSpace(readText(d))
			return true
		case "v":
			if value == "" {
				value = strings.TrimSpace(readText(d))
			} else {
				readText(d)
			}
			return true
		}
		return false
	})
	return
}

func parseValueAxis(d *xml.Decoder) (title string, axisRange []float64, pos string) {
	var lo, hi *float64
	walk(d, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "title":
			title = parseTitle(d)
			return true
		case "axPos":
			pos = attr(se, "val")
		case "min", "max":
			if v, err := strconv.ParseFloat(attr(se, "val"), 64); err == nil {
				if se.Name.Local == "min" {
					lo = &v
				} else {
					hi = &v
				}
			}
		}
		return false
	})
	if lo != nil && hi != nil {
		axisRange = []float64{*lo, *hi}
	}
	return
}

// walk consumes tokens until the element opened before the call closes,
// calling visit for every nested start element. visit returns true when it
// consumed that element up to and including its end tag.
func walk(d *xml.Decoder, visit func(se xml.StartElement) bool) {
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if visit(t) {
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// readText returns the character data of the current element and consumes
// its end tag.
func readText(d *xml.Decoder) string {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String()
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
