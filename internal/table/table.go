// Package table loads measurement tables and extracts engine inputs from them.
//
// A table has a header row whose first cell labels the key column (dates or
// subgroup labels) and whose remaining cells name parameters. Every row must have
// exactly as many cells as the header.
package table

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "wqcli/internal/errors"
)

const utf8BOM = "\ufeff"

// Table is a rectangular grid of raw cells with a header row
type Table struct {
	Source string
	header []string
	rows   [][]string
}

// Load reads a table from path, selecting the reader by file extension
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "")
	case ".csv", ".txt", "":
		return LoadCSV(path)
	default:
		return nil, apperrors.NewParsingError(fmt.Sprintf("unsupported table format %q", filepath.Ext(path)), nil).
			WithContext("file", path)
	}
}

// FromRecords builds a table from a header row followed by data rows.
// Row widths must match the header exactly.
func FromRecords(source string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("table is empty", nil).WithContext("file", source)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if len(header) < 2 {
		return nil, apperrors.NewParsingError("header needs a key column and at least one parameter", nil).
			WithContext("file", source)
	}

	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if h == "" && i > 0 {
			return nil, apperrors.NewParsingError(fmt.Sprintf("header column %d is empty", i+1), nil).
				WithContext("file", source)
		}
		if seen[h] {
			return nil, apperrors.NewParsingError(fmt.Sprintf("duplicate column %q", h), nil).
				WithContext("file", source)
		}
		seen[h] = true
	}

	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("line %d has %d columns, header has %d", i+2, len(rec), len(header)), nil).
				WithContext("file", source).
				WithContext("line", i+2)
		}
		row := make([]string, len(rec))
		for j, cell := range rec {
			row[j] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	return &Table{Source: source, header: header, rows: rows}, nil
}

// KeyLabel returns the header of the first column
func (t *Table) KeyLabel() string {
	return t.header[0]
}

// Header returns all column names including the key column
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Parameters returns the column names after the key column
func (t *Table) Parameters() []string {
	return append([]string(nil), t.header[1:]...)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Keys returns the key column values in row order
func (t *Table) Keys() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[0]
	}
	return out
}

// Row returns a copy of the raw cells of row i
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

func (t *Table) columnIndex(name string) (int, error) {
	for i, h := range t.header {
		if h == name {
			return i, nil
		}
	}
	return -1, apperrors.NewAppValidationError(fmt.Sprintf("column %q not found", name)).
		WithContext("file", t.Source).
		WithContext("parameter", name)
}

// Column parses every cell of the named column as a float.
// Empty cells fail with a missing-parameter error naming the row key.
func (t *Table) Column(name string) ([]float64, error) {
	col, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(t.rows))
	for i, r := range t.rows {
		if r[col] == "" {
			return nil, apperrors.NewMissingParameterError(name, t.pointAt(i))
		}
		if values[i], err = t.cell(name, r[col], i, t.pointAt(i)); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Values parses the non-empty cells of the named column, skipping empty ones.
// Tables without a key column use it, so errors name the line instead of a key.
func (t *Table) Values(name string) ([]float64, error) {
	col, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(t.rows))
	for i, r := range t.rows {
		if r[col] == "" {
			continue
		}
		v, err := t.cell(name, r[col], i, fmt.Sprintf("line %d", i+2))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (t *Table) cell(name, raw string, i int, at string) (float64, error) {
	v, err := parseFloat(raw)
	if err != nil {
		return 0, apperrors.NewParsingError(
			fmt.Sprintf("parameter %q at %s: %q is not a number", name, at, raw), err).
			WithContext("parameter", name).
			WithContext("line", i+2)
	}
	return v, nil
}

func (t *Table) pointAt(i int) string {
	if key := t.rows[i][0]; key != "" {
		return key
	}
	return fmt.Sprintf("line %d", i+2)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	return v, err
}
