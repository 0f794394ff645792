package contacts

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/hr-outreach/internal/types"
)

const sheetName = "Contacts"

// loadXLSX reads the first sheet of a workbook.
func loadXLSX(path string) ([]types.Contact, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &DataError{Path: path, Message: "failed to open workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DataError{Path: path, Message: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DataError{Path: path, Message: "failed to read sheet " + sheets[0], Cause: err}
	}

	out, err := fromRows(rows)
	if err != nil {
		if de, ok := err.(*DataError); ok {
			de.Path = path
		}
		return nil, err
	}
	return out, nil
}

func saveXLSX(path string, contacts []types.Contact) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	for r, c := range contacts {
		for col, v := range toRow(c) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}
	_ = f.SetColWidth(sheetName, "B", "E", 28)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
