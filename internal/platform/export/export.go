// Package export renders tabular data as Excel workbooks for download,
// currently used for the admin staff roster.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of an export: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Workbook renders the sheets into a single xlsx file.
func Workbook(sheets []Sheet) (*bytes.Buffer, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		name := sheet.Name
		if name == "" {
			return nil, fmt.Errorf("sheet %d has no name", i)
		}

		if i == 0 {
			// excelize always starts with one default sheet; rename it.
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("renaming sheet %q: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("adding sheet %q: %w", name, err)
			}
		}

		if err := writeRow(f, name, 1, toInterfaces(sheet.Header)); err != nil {
			return nil, err
		}
		for r, row := range sheet.Rows {
			if err := writeRow(f, name, r+2, row); err != nil {
				return nil, err
			}
		}

		// Bold header.
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil && len(sheet.Header) > 0 {
			end, _ := excelize.CoordinatesToCellName(len(sheet.Header), 1)
			_ = f.SetCellStyle(name, "A1", end, style)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return &buf, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
