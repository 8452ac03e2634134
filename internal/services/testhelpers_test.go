package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wqcli/internal/config"
)

const testStandards = `
parameters:
  - name: A
    standard: 10
  - name: B
    standard: 20
limits:
  A: {lsl: 0, usl: 30}
  B: {usl: 30}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, charts bool) (*config.Config, *config.Paths) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.ChartsDir = filepath.Join(dir, "charts")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")
	cfg.Analysis.Charts = charts
	cfg.Analysis.BOM = false
	cfg.Analysis.Precision = 4

	paths, err := config.NewPaths(cfg.Paths)
	require.NoError(t, err)
	return cfg, paths
}

func testService(t *testing.T, charts bool) (*AnalysisService, *config.Paths) {
	t.Helper()
	cfg, paths := testConfig(t, charts)
	svc, err := NewAnalysisService(cfg, paths, nil, nil)
	require.NoError(t, err)
	return svc, paths
}

func testStandardsDoc(t *testing.T) *config.StandardsDocument {
	t.Helper()
	doc, err := config.ParseStandards([]byte(testStandards))
	require.NoError(t, err)
	return doc
}
