package models

// ChartSeries represents series metadata for a workbook chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// XRange is the range reference for category values.
	XRange string `json:"x_range,omitempty"`
	// YRange is the range reference for plotted values.
	YRange string `json:"y_range,omitempty"`
}

// Chart describes one chart found in an exported report workbook.
type Chart struct {
	Name       string        `json:"name"`
	ChartType  string        `json:"chart_type"`
	Title      string        `json:"title,omitempty"`
	YAxisTitle string        `json:"y_axis_title,omitempty"`
	YAxisRange []float64     `json:"y_axis_range,omitempty"`
	Series     []ChartSeries `json:"series"`
	// From and To are the anchor cells of the chart frame, e.g. "B3" and "J18".
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}
