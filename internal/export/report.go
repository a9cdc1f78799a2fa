package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/lueurxax/coverage-dashboard/internal/dashboard"
)

// WriteReport writes vm as plain-text tables, one per exported sheet.
func WriteReport(w io.Writer, vm *dashboard.ViewModel) error {
	if vm.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", vm.Title); err != nil {
			return fmt.Errorf("write report title: %w", err)
		}
	}

	for _, t := range tables(vm) {
		if _, err := fmt.Fprintf(w, "== %s ==\n", t.name); err != nil {
			return fmt.Errorf("write report section %s: %w", t.name, err)
		}

		tw := tablewriter.NewWriter(w)
		tw.SetHeader(t.header)
		tw.SetAutoFormatHeaders(false)

		for _, row := range t.rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = text(v)
			}

			tw.Append(cells)
		}

		tw.Render()

		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write report section %s: %w", t.name, err)
		}
	}

	return nil
}
