// =============================================================================
// EM63 CSV to INI Converter - XLSX Inventory Reader
// =============================================================================
//
// Machine inventories are often kept in Excel. This module reads one
// worksheet and renders it as delimiter-separated text, which then goes
// through exactly the same validation and conversion as a pasted CSV.
//
// SHEET LAYOUT (Expected):
//
//   | Machine ID | IP address | Mng.        | ...any other columns |
//   |------------|------------|-------------|----------------------|
//   | 3          | 10.0.0.3   | OK          |                      |
//   | 7          | 10.0.0.7   | Out of Mng. |                      |
//
// Column order is free; only the header names matter.
//
// NOTES:
//   - Fully blank rows are dropped
//   - Short rows are padded to the header width, because excelize omits
//     trailing empty cells
//   - Cell values are the formatted strings excelize reports
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Extensions lists the file extensions handled by this package.
var Extensions = []string{".xlsx", ".xlsm"}

// IsWorkbook reports whether path has a spreadsheet extension.
func IsWorkbook(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadSheet opens a workbook and returns one sheet as delimited text.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//   - sheet: The sheet name. Empty selects the first sheet.
//   - delimiter: The separator placed between cells.
//
// RETURNS:
//   - The sheet as text, one line per non-blank row, '\n' separated.
//   - An error if the workbook or sheet cannot be read.
func ReadSheet(path, sheet string, delimiter rune) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
	}

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return "", fmt.Errorf("sheet %q not found (available: %s)",
			sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to read rows: %w", err)
	}

	return joinRows(rows, delimiter), nil
}

// joinRows renders rows as delimited lines.
func joinRows(rows [][]string, delimiter rune) string {
	sep := string(delimiter)
	width := 0
	var lines []string

	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		// The first non-blank row is the header and fixes the width.
		if width == 0 {
			width = len(row)
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}

		lines = append(lines, strings.Join(row, sep))
	}

	return strings.Join(lines, "\n")
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
