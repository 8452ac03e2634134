package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved output locations of a run
type Paths struct {
	OutputDir string
	ChartsDir string
	LogsDir   string
}

// NewPaths resolves configured directories. Relative paths are taken from the
// working directory, and an empty charts directory falls back to the output directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	out, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}

	charts := out
	if cfg.ChartsDir != "" {
		if charts, err = filepath.Abs(cfg.ChartsDir); err != nil {
			return nil, fmt.Errorf("resolve charts dir: %w", err)
		}
	}

	logs := cfg.LogsDir
	if logs == "" {
		logs = "logs"
	}
	if logs, err = filepath.Abs(logs); err != nil {
		return nil, fmt.Errorf("resolve logs dir: %w", err)
	}

	return &Paths{OutputDir: out, ChartsDir: charts, LogsDir: logs}, nil
}

// EnsureDirectories creates all directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.ChartsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the full path for a result file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetChartPath returns the full path for a chart image
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.ChartsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("resolved paths",
		slog.String("output_dir", p.OutputDir),
		slog.String("charts_dir", p.ChartsDir),
		slog.String("logs_dir", p.LogsDir),
	)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
