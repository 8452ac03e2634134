package table

import (
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "wqcli/internal/errors"
)

// LoadXLSX reads a table from a workbook sheet. An empty sheet name selects the first sheet.
// Trailing empty cells that the workbook omits are restored up to the header width.
func LoadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("open workbook", err).WithContext("file", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("file", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("read sheet rows", err).
			WithContext("file", path).
			WithContext("sheet", sheet)
	}

	rows = trimEmptyRows(rows)
	if len(rows) > 0 {
		width := len(rows[0])
		for i := 1; i < len(rows); i++ {
			for len(rows[i]) < width {
				rows[i] = append(rows[i], "")
			}
		}
	}
	return FromRecords(path, rows)
}

func trimEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, r := range rows {
		if strings.TrimSpace(strings.Join(r, "")) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
