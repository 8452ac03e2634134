package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"wqcli/internal/config"
	"wqcli/internal/infrastructure"
	"wqcli/internal/services"
	"wqcli/internal/validation"
)

// Options override configuration values for one invocation
type Options struct {
	ConfigFile  string
	OutputDir   string
	Format      string
	Prefix      string
	LogLevel    string
	Parallelism int
	Charts      *bool
}

func (o Options) apply(cfg *config.Config) {
	if o.OutputDir != "" {
		cfg.Paths.OutputDir = o.OutputDir
	}
	if o.Format != "" {
		cfg.Analysis.OutputFormat = o.Format
	}
	if o.Prefix != "" {
		cfg.Analysis.OutputPrefix = o.Prefix
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.Parallelism > 0 {
		cfg.Analysis.Parallelism = o.Parallelism
	}
	if o.Charts != nil {
		cfg.Analysis.Charts = *o.Charts
	}
}

// Application holds the components of one command-line run
type Application struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	Service   *services.AnalysisService
	Batch     *services.BatchRunner
}

// NewApplication loads configuration and wires the analysis services
func NewApplication(opts Options) (*Application, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigFile != "" {
		cfg, err = config.LoadFrom(opts.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	svc, err := services.NewAnalysisService(cfg, paths, tel, logger)
	if err != nil {
		_ = tel.Shutdown(context.Background())
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Telemetry: tel,
		Service:   svc,
		Batch:     services.NewBatchRunner(svc, cfg.Analysis.Parallelism, logger),
	}, nil
}

// Stop writes the metrics file and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if err := a.Telemetry.WriteMetrics(); err != nil {
		errs = append(errs, err)
	}
	if err := a.Telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		a.Logger.ErrorContext(ctx, "shutdown incomplete", infrastructure.ErrorAttrs(err)...)
		return err
	}
	return nil
}

// Main runs the tool for kind and returns the process exit code
func Main(ctx context.Context, kind services.Kind, flags *Flags, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(flags.Inputs) == 0 {
		fmt.Fprintf(stderr, "%s: at least one -in is required\n", kind)
		return 2
	}

	opts := flags.Options()
	if flags.Prompt {
		// Questions for different files must not interleave.
		opts.Parallelism = 1
	}

	a, err := NewApplication(opts)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", kind, err)
		return 1
	}
	ctx = infrastructure.EnsureRunID(ctx)
	defer func() {
		// Results are already on disk; a failed flush is reported but keeps the exit code.
		if err := a.Stop(context.WithoutCancel(ctx)); err != nil {
			fmt.Fprintf(stderr, "%s: shutdown: %v\n", kind, err)
		}
	}()

	reports, err := a.run(ctx, kind, flags, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", kind, err)
		return 1
	}

	if err := PrintReports(stdout, reports); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", kind, err)
		return 1
	}
	return 0
}

func (a *Application) run(ctx context.Context, kind services.Kind, flags *Flags, stdin io.Reader, stdout io.Writer) ([]*services.Report, error) {
	inputs, err := validation.NewFileValidator(a.Logger).ExpandInputs(flags.Inputs)
	if err != nil {
		return nil, err
	}

	standardsFile := flags.Standards
	if standardsFile == "" {
		standardsFile = a.Config.Paths.StandardsFile
	}
	var doc *config.StandardsDocument
	if standardsFile != "" {
		if doc, err = config.LoadStandards(standardsFile); err != nil {
			return nil, err
		}
	}

	req := services.Request{
		Kind:       kind,
		Parameters: flags.Parameters,
		Standards:  doc,
		Limits:     services.StandardsLimits{Doc: doc},
	}
	if flags.Prompt {
		req.Limits = services.NewPrompter(stdin, stdout, services.StandardsLimits{Doc: doc})
	}

	a.Logger.InfoContext(ctx, "starting analysis",
		"kind", kind,
		"inputs", len(inputs),
		"standards", standardsFile,
		"output_dir", a.Paths.OutputDir,
		"format", a.Config.Analysis.OutputFormat,
	)
	return a.Batch.Run(ctx, req, inputs)
}
