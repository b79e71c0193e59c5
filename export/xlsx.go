package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/tableau/model"
)

// WriteXLSX writes the table set as a workbook, one sheet per table. Recap
// blocks get a trailing key/value section on their table's sheet.
func WriteXLSX(w io.Writer, set *model.TableSet) error {
	f := excelize.NewFile()
	defer f.Close()

	for ti, t := range set.Tables {
		sheet := fmt.Sprintf("%s %d (p%d-%d)", t.Kind, ti+1, t.PageStart, t.PageEnd)
		if ti == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}

		row := 1
		if labels, ok := columnLabels(t); ok {
			for i, label := range labels {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				_ = f.SetCellValue(sheet, cell, label)
			}
			row++
		}

		for _, record := range t.RawData() {
			for i, v := range record {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		if recap := t.Recap.Map(); len(recap) > 0 {
			row++ // blank separator line
			for _, key := range sortedKeys(recap) {
				kCell, _ := excelize.CoordinatesToCellName(1, row)
				vCell, _ := excelize.CoordinatesToCellName(2, row)
				_ = f.SetCellValue(sheet, kCell, key)
				_ = f.SetCellValue(sheet, vCell, recap[key])
				row++
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sortedKeys returns the map's keys in stable order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
