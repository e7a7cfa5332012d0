package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// OwnerTotal is one owner's daily starter tally.
type OwnerTotal struct {
	Owner        string
	StarterPooh  int
	StartersSeen int
}

const maxColumnWidth = 45

// WriteTodayWorkbook writes the daily workbook: a Players sheet with every
// captured stat line and an OwnerTotals sheet with starter tallies. Headers
// are bold and centered; columns are sized to their content.
func WriteTodayWorkbook(path string, playerCols []string, playerRows []map[string]string, ownerTotals []OwnerTotal) error {
	f := excelize.NewFile()
	defer f.Close()

	const playersSheet = "Players"
	if err := f.SetSheetName("Sheet1", playersSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	grid := make([][]string, 0, len(playerRows)+1)
	grid = append(grid, playerCols)
	for _, row := range playerRows {
		cells := make([]string, len(playerCols))
		for i, col := range playerCols {
			cells[i] = row[col]
		}
		grid = append(grid, cells)
	}
	if err := writeSheet(f, playersSheet, grid, headerStyle); err != nil {
		return err
	}

	const ownersSheet = "OwnerTotals"
	if _, err := f.NewSheet(ownersSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", ownersSheet, err)
	}
	ownerGrid := [][]string{{"owner", "starter_pooh_total", "starters_count_so_far"}}
	for _, t := range ownerTotals {
		ownerGrid = append(ownerGrid, []string{
			t.Owner,
			fmt.Sprintf("%d", t.StarterPooh),
			fmt.Sprintf("%d", t.StartersSeen),
		})
	}
	if err := writeSheet(f, ownersSheet, ownerGrid, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, grid [][]string, headerStyle int) error {
	for r, row := range grid {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}

	if len(grid) > 0 && len(grid[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(grid[0]), 1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header row: %w", err)
		}
	}

	return autosizeColumns(f, sheet, grid)
}

func autosizeColumns(f *excelize.File, sheet string, grid [][]string) error {
	widths := make(map[int]int)
	for _, row := range grid {
		for c, v := range row {
			if len(v) > widths[c] {
				widths[c] = len(v)
			}
		}
	}
	for c, w := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		width := float64(min(w+2, maxColumnWidth))
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
