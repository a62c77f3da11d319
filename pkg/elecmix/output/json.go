// Package output serializes run results for the CLI.
package output

import (
	"encoding/json"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ChartsToJSON serializes per-sheet chart listings.
func ChartsToJSON(charts map[string][]models.Chart, pretty bool) ([]byte, error) {
	return ToJSON(charts, pretty)
}

// ReportToJSON serializes a run summary.
func ReportToJSON(r *models.Report, pretty bool) ([]byte, error) {
	return ToJSON(r, pretty)
}
