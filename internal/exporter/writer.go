package exporter

import (
	"fmt"
	"log/slog"

	"wqcli/internal/config"
)

// TableWriter writes a header and records under a base name and reports the file it created
type TableWriter interface {
	Write(name string, headers []string, records [][]string) (string, error)
	Extension() string
}

// NewTableWriter returns the writer for an output format
func NewTableWriter(format string, paths *config.Paths, bomPrefix bool, logger *slog.Logger) (TableWriter, error) {
	switch format {
	case config.FormatCSV, "":
		return NewCSVWriter(paths, bomPrefix, logger), nil
	case config.FormatXLSX:
		return NewXLSXWriter(paths, logger), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
