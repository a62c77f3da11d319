package models

// PanelKind names one of the five chart renderers.
type PanelKind string

const (
	// PanelLine draws one line per country across years.
	PanelLine PanelKind = "line"
	// PanelDot draws melted (year, country, value) points with an outside legend.
	PanelDot PanelKind = "dot"
	// PanelPie draws a single-year cross-country snapshot.
	PanelPie PanelKind = "pie"
	// PanelBar draws grouped vertical bars for selected years.
	PanelBar PanelKind = "bar"
	// PanelHorizontalBar draws grouped horizontal bars for selected years.
	PanelHorizontalBar PanelKind = "hbar"
)

// PanelSpec describes one cell of the report grid.
type PanelSpec struct {
	Kind      PanelKind `toml:"kind" json:"kind"`
	Indicator string    `toml:"indicator" json:"indicator"`
	Title     string    `toml:"title" json:"title"`
	XLabel    string    `toml:"x_label" json:"x_label,omitempty"`
	YLabel    string    `toml:"y_label" json:"y_label,omitempty"`
	// Years selects the snapshot years for pie (first entry) and bar kinds.
	Years []int `toml:"years" json:"years,omitempty"`
}

// Definition is the full, fixed description of a report.
type Definition struct {
	Title     string      `toml:"title" json:"title"`
	Caption   string      `toml:"caption" json:"caption"`
	Countries []string    `toml:"countries" json:"countries"`
	FirstYear int         `toml:"first_year" json:"first_year"`
	LastYear  int         `toml:"last_year" json:"last_year"`
	Panels    []PanelSpec `toml:"panels" json:"panels"`
}

// YearRange returns every year from FirstYear to LastYear inclusive.
func (d Definition) YearRange() []int {
	if d.LastYear < d.FirstYear {
		return nil
	}
	years := make([]int, 0, d.LastYear-d.FirstYear+1)
	for y := d.FirstYear; y <= d.LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// Report summarizes one generation run.
type Report struct {
	// Title is the suptitle drawn on the composed image.
	Title string `json:"title"`
	// Panels lists panel titles in grid order.
	Panels []string `json:"panels"`
	// Files lists every file written, composed image first.
	Files []string `json:"files"`
}
