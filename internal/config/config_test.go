package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "wqcli/internal/errors"
)

var envVars = []string{
	"WQ_LOGGING_LEVEL", "WQ_LOGGING_OUTPUT", "WQ_LOGGING_FILE_PATH",
	"WQ_PATHS_OUTPUT_DIR", "WQ_PATHS_CHARTS_DIR",
	"WQ_ANALYSIS_PARALLELISM", "WQ_ANALYSIS_OUTPUT_FORMAT", "WQ_ANALYSIS_PRECISION",
	"WQ_ANALYSIS_DATE_LAYOUT", "WQ_ANALYSIS_CHARTS", "WQ_ANALYSIS_TIMEOUT",
	"WQ_TELEMETRY_TRACING", "WQ_TELEMETRY_METRICS_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		if val, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, val) })
		}
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, "output", cfg.Paths.OutputDir)
				assert.Equal(t, 4, cfg.Analysis.Parallelism)
				assert.Equal(t, "02-01-2006", cfg.Analysis.DateLayout)
				assert.Equal(t, FormatCSV, cfg.Analysis.OutputFormat)
				assert.True(t, cfg.Analysis.Charts)
				assert.True(t, cfg.Analysis.BOM)
				assert.False(t, cfg.Telemetry.Tracing)
			},
		},
		{
			name: "file overrides defaults",
			file: `
logging:
  level: debug
analysis:
  parallelism: 2
  output_format: xlsx
  timeout: 30s
paths:
  output_dir: results
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 2, cfg.Analysis.Parallelism)
				assert.Equal(t, FormatXLSX, cfg.Analysis.OutputFormat)
				assert.Equal(t, 30*time.Second, cfg.Analysis.Timeout)
				assert.Equal(t, "results", cfg.Paths.OutputDir)
				assert.Equal(t, 4, cfg.Analysis.Precision)
			},
		},
		{
			name: "env overrides file",
			file: "analysis:\n  parallelism: 2\n",
			env: map[string]string{
				"WQ_ANALYSIS_PARALLELISM": "8",
				"WQ_LOGGING_LEVEL":        "WARN",
				"WQ_ANALYSIS_CHARTS":      "false",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8, cfg.Analysis.Parallelism)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.False(t, cfg.Analysis.Charts)
			},
		},
		{
			name:    "unknown file key",
			file:    "analysis:\n  paralelism: 2\n",
			wantErr: true,
		},
		{
			name:    "invalid env value",
			env:     map[string]string{"WQ_ANALYSIS_PARALLELISM": "many"},
			wantErr: true,
		},
		{
			name:    "invalid output format",
			env:     map[string]string{"WQ_ANALYSIS_OUTPUT_FORMAT": "json"},
			wantErr: true,
		},
		{
			name:    "zero parallelism",
			file:    "analysis:\n  parallelism: 0\n",
			wantErr: true,
		},
		{
			name:    "date layout without year",
			env:     map[string]string{"WQ_ANALYSIS_DATE_LAYOUT": "02-01"},
			wantErr: true,
		},
		{
			name:    "tracing without file",
			file:    "telemetry:\n  tracing: true\n  trace_file: \"\"\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrConfig)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfig)
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_LoggingFileRequired(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""
	assert.Error(t, cfg.Validate())

	cfg.Logging.Output = "syslog"
	assert.Error(t, cfg.Validate())
}

func TestNewPaths(t *testing.T) {
	dir := t.TempDir()

	p, err := NewPaths(PathsConfig{OutputDir: filepath.Join(dir, "out"), LogsDir: filepath.Join(dir, "logs")})
	require.NoError(t, err)
	assert.Equal(t, p.OutputDir, p.ChartsDir)

	require.NoError(t, p.EnsureDirectories())
	assert.True(t, FileExists(p.OutputDir))
	assert.True(t, FileExists(p.LogsDir))
	assert.Equal(t, filepath.Join(dir, "out", "a.csv"), p.GetReportPath("a.csv"))
	assert.Equal(t, filepath.Join(dir, "logs", "wq.log"), p.GetLogPath("wq.log"))

	p, err = NewPaths(PathsConfig{OutputDir: filepath.Join(dir, "out"), ChartsDir: filepath.Join(dir, "img")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "img", "c.png"), p.GetChartPath("c.png"))
}

func TestShippedConfigs(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join("..", "..", "configs", "wq.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Analysis.Timeout)
	assert.Equal(t, "configs/standards.yaml", cfg.Paths.StandardsFile)

	doc, err := LoadStandards(filepath.Join("..", "..", "configs", "standards.yaml"))
	require.NoError(t, err)
	assert.Len(t, doc.Standards(), 6)
	limits, ok := doc.LimitsFor("pH")
	require.True(t, ok)
	assert.True(t, limits.HasUpper && limits.HasLower)
}
