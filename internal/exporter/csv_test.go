package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wqcli/internal/config"
	apperrors "wqcli/internal/errors"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	return &config.Paths{OutputDir: dir, ChartsDir: dir, LogsDir: dir}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_Write(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths, false, nil)

	path, err := w.Write("plant_analysis_DCO_values", []string{"Subgroup", "X-bar", "R"}, [][]string{
		{"1", "10.0000", "2.0000"},
		{"2", "11.0000", "1.0000"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.OutputDir, "plant_analysis_DCO_values.csv"), path)

	records := readCSV(t, path)
	assert.Equal(t, [][]string{
		{"Subgroup", "X-bar", "R"},
		{"1", "10.0000", "2.0000"},
		{"2", "11.0000", "1.0000"},
	}, records)
}

func TestCSVWriter_BOMPrefix(t *testing.T) {
	tests := []struct {
		name    string
		bom     bool
		wantBOM bool
	}{
		{"with BOM", true, true},
		{"without BOM", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewCSVWriter(testPaths(t), tt.bom, nil)
			path, err := w.Write("out", []string{"a", "b"}, nil)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			hasBOM := len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF
			assert.Equal(t, tt.wantBOM, hasBOM)
		})
	}
}

func TestCSVWriter_WriteCSVCreatesNestedDirectory(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths, false, nil)

	err := w.WriteCSV(filepath.Join("nested", "deeper", "file.csv"), WriteOptions{
		Headers: []string{"x"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(paths.OutputDir, "nested", "deeper", "file.csv"))
}

func TestCSVWriter_StorageErrorOnUnwritablePath(t *testing.T) {
	paths := testPaths(t)
	blocker := filepath.Join(paths.OutputDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	w := NewCSVWriter(paths, false, nil)
	err := w.WriteCSV(filepath.Join(blocker, "file.csv"), WriteOptions{Headers: []string{"x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestNewTableWriter(t *testing.T) {
	paths := testPaths(t)

	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{config.FormatCSV, ".csv", false},
		{"", ".csv", false},
		{config.FormatXLSX, ".xlsx", false},
		{"json", "", true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			w, err := NewTableWriter(tt.format, paths, false, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, w.Extension())
		})
	}
}
