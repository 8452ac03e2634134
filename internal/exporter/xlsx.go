package exporter

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"wqcli/internal/config"
	apperrors "wqcli/internal/errors"
)

// XLSXWriter writes each table as a single-sheet workbook
type XLSXWriter struct {
	paths  *config.Paths
	sheet  string
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer. Tables are written to a sheet named "Results".
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, sheet: "Results", logger: logger}
}

// Extension returns the file extension produced by the writer
func (w *XLSXWriter) Extension() string {
	return ".xlsx"
}

// Write writes one table under name (without extension) and returns the file path.
// Cells that parse as numbers are stored as numbers.
func (w *XLSXWriter) Write(name string, headers []string, records [][]string) (string, error) {
	fullPath := name + w.Extension()
	if !filepath.IsAbs(fullPath) && w.paths != nil {
		fullPath = w.paths.GetReportPath(fullPath)
	}

	w.logger.Debug("writing workbook",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apperrors.NewStorageError("create output directory", err).WithContext("file", fullPath)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheet); err != nil {
		return "", apperrors.NewStorageError("name sheet", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", apperrors.NewStorageError("create header style", err)
	}

	if err := w.writeRow(f, 1, toCells(headers, false)); err != nil {
		return "", err
	}
	if len(headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(headers))
		if err := f.SetCellStyle(w.sheet, "A1", last+"1", style); err != nil {
			return "", apperrors.NewStorageError("style header", err)
		}
	}

	for i, rec := range records {
		if err := w.writeRow(f, i+2, toCells(rec, true)); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", apperrors.NewStorageError("save workbook", err).WithContext("file", fullPath)
	}
	return fullPath, nil
}

func (w *XLSXWriter) writeRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return apperrors.NewStorageError("address row", err)
	}
	if err := f.SetSheetRow(w.sheet, cell, &cells); err != nil {
		return apperrors.NewStorageError("write row", err).WithContext("row", row)
	}
	return nil
}

func toCells(values []string, numeric bool) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		if numeric {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				cells[i] = f
				continue
			}
		}
		cells[i] = v
	}
	return cells
}
