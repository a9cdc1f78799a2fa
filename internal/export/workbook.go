package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/lueurxax/coverage-dashboard/internal/dashboard"
)

const (
	defaultSheet = "Sheet1"
	colWidth     = 22
)

// WriteWorkbook writes vm as an XLSX workbook with one sheet per table.
// Missing values are left as blank cells.
func WriteWorkbook(w io.Writer, vm *dashboard.ViewModel) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"003366"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, t := range tables(vm) {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, t.name)
		} else {
			_, err = f.NewSheet(t.name)
		}

		if err != nil {
			return fmt.Errorf("create sheet %s: %w", t.name, err)
		}

		if err := writeSheet(f, t, headerStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, t table, headerStyle int) error {
	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}

	if err := f.SetSheetRow(t.name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", t.name, err)
	}

	last, err := excelize.ColumnNumberToName(len(t.header))
	if err != nil {
		return fmt.Errorf("sheet %s: %w", t.name, err)
	}

	if err := f.SetCellStyle(t.name, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", t.name, err)
	}

	if err := f.SetColWidth(t.name, "A", last, colWidth); err != nil {
		return fmt.Errorf("size %s columns: %w", t.name, err)
	}

	for i, row := range t.rows {
		cells := make([]any, len(row))
		for j, v := range row {
			if x, ok := v.(float64); ok && math.IsNaN(x) {
				continue
			}

			cells[j] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", t.name, err)
		}

		if err := f.SetSheetRow(t.name, cell, &cells); err != nil {
			return fmt.Errorf("write %s row %d: %w", t.name, i+1, err)
		}
	}

	return nil
}
