package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "wqcli/internal/errors"
)

// EnvPrefix namespaces every environment variable, e.g. WQ_LOGGING_LEVEL
const EnvPrefix = "WQ"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	ChartsDir     string `yaml:"charts_dir" envconfig:"CHARTS_DIR"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	StandardsFile string `yaml:"standards_file" envconfig:"STANDARDS_FILE"`
}

// AnalysisConfig controls how tables are read and results written
type AnalysisConfig struct {
	Parallelism  int           `yaml:"parallelism" envconfig:"PARALLELISM"`
	DateLayout   string        `yaml:"date_layout" envconfig:"DATE_LAYOUT"`
	OutputFormat string        `yaml:"output_format" envconfig:"OUTPUT_FORMAT"`
	OutputPrefix string        `yaml:"output_prefix" envconfig:"OUTPUT_PREFIX"`
	Charts       bool          `yaml:"charts" envconfig:"CHARTS"`
	Precision    int           `yaml:"precision" envconfig:"PRECISION"`
	BOM          bool          `yaml:"bom" envconfig:"BOM"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// TelemetryConfig controls tracing and metrics export
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Tracing     bool   `yaml:"tracing" envconfig:"TRACING"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Output formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Load builds the configuration from defaults, the first config file found,
// and WQ_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("load config file", err).WithContext("file", configFile)
		}
	}

	// Fields carry no default tags, so unset variables leave file values alone.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate validates and normalizes the configuration
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperrors.NewConfigError(fmt.Sprintf(format, args...), nil)
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("invalid logging level %q", c.Logging.Level)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return invalid("invalid logging output %q (want console, file or both)", c.Logging.Output)
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return invalid("logging file_path is required for output %q", c.Logging.Output)
	}

	if c.Analysis.Parallelism < 1 {
		return invalid("analysis parallelism must be at least 1, got %d", c.Analysis.Parallelism)
	}

	c.Analysis.OutputFormat = strings.ToLower(c.Analysis.OutputFormat)
	if c.Analysis.OutputFormat != FormatCSV && c.Analysis.OutputFormat != FormatXLSX {
		return invalid("invalid output format %q (want csv or xlsx)", c.Analysis.OutputFormat)
	}

	if c.Analysis.Precision < 0 || c.Analysis.Precision > 12 {
		return invalid("analysis precision must be between 0 and 12, got %d", c.Analysis.Precision)
	}

	if c.Analysis.DateLayout == "" {
		return invalid("analysis date_layout must not be empty")
	}
	probe := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got, err := time.Parse(c.Analysis.DateLayout, probe.Format(c.Analysis.DateLayout)); err != nil || !got.Equal(probe) {
		return invalid("analysis date_layout %q does not encode a full date", c.Analysis.DateLayout)
	}

	if c.Analysis.Timeout < 0 {
		return invalid("analysis timeout must not be negative")
	}

	if c.Paths.OutputDir == "" {
		return invalid("paths output_dir must not be empty")
	}
	if c.Telemetry.Tracing && c.Telemetry.TraceFile == "" {
		return invalid("telemetry trace_file is required when tracing is enabled")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"wq.yaml",
		"configs/wq.yaml",
		"../configs/wq.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/wq.log",
		},
		Paths: PathsConfig{
			OutputDir: "output",
			LogsDir:   "logs",
		},
		Analysis: AnalysisConfig{
			Parallelism:  4,
			DateLayout:   "02-01-2006",
			OutputFormat: FormatCSV,
			Charts:       true,
			Precision:    4,
			BOM:          true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: AppName,
			TraceFile:   "logs/traces.json",
		},
	}
}
