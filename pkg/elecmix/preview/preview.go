// Package preview prints reshaped indicator tables to a terminal.
package preview

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
)

// Write prints t with one row per year and one column per country.
func Write(w io.Writer, t models.YearTable) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{models.YearsColumn}, t.Countries...))
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, y := range t.Years {
		row := []string{strconv.Itoa(y)}
		for _, c := range t.Countries {
			col, err := t.Column(c)
			if err != nil {
				return err
			}
			row = append(row, fmt.Sprintf("%.2f", col[i]))
		}
		table.Append(row)
	}

	if t.Indicator != "" {
		table.SetCaption(true, t.Indicator)
	}
	table.Render()
	return nil
}
