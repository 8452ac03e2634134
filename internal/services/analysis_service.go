package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"wqcli/internal/chart"
	"wqcli/internal/config"
	apperrors "wqcli/internal/errors"
	"wqcli/internal/exporter"
	"wqcli/internal/infrastructure"
	"wqcli/internal/quality"
	"wqcli/internal/table"
)

// Kind selects the analysis workflow
type Kind string

const (
	KindWQI        Kind = "wqi"
	KindXBarR      Kind = "xbar-r"
	KindCapability Kind = "capability"
)

// Request describes one analysis run
type Request struct {
	Kind       Kind
	Input      string
	Parameters []string // empty selects every applicable parameter
	Standards  *config.StandardsDocument
	Limits     LimitSource
	Prefix     string // output name prefix; defaults per workflow
}

// Report collects what a run computed and wrote
type Report struct {
	Kind       Kind
	Input      string
	RunID      string
	Files      []string
	WQI        *WQIReport
	Control    []quality.SubgroupAnalysis
	Capability []quality.CapabilityResult
	Duration   time.Duration
}

// WQIReport holds per-time-point results and their summary
type WQIReport struct {
	Results []quality.WQIResult
	Summary quality.WQISummary
}

// AnalysisService runs analysis workflows over input tables
type AnalysisService struct {
	cfg       config.AnalysisConfig
	writer    exporter.TableWriter
	renderer  *chart.Renderer // nil when charts are off
	analyzer  *quality.Analyzer
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
}

// NewAnalysisService wires the writer and renderer for cfg into a service
func NewAnalysisService(cfg *config.Config, paths *config.Paths, tel *infrastructure.Telemetry, logger *slog.Logger) (*AnalysisService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "analysis")

	if tel == nil {
		var err error
		if tel, err = infrastructure.InitializeTelemetry(config.TelemetryConfig{}, logger); err != nil {
			return nil, err
		}
	}

	writer, err := exporter.NewTableWriter(cfg.Analysis.OutputFormat, paths, cfg.Analysis.BOM, logger)
	if err != nil {
		return nil, apperrors.NewConfigError("output writer", err)
	}

	s := &AnalysisService{
		cfg:       cfg.Analysis,
		writer:    writer,
		analyzer:  quality.NewAnalyzer(logger),
		telemetry: tel,
		logger:    logger,
	}
	if cfg.Analysis.Charts {
		s.renderer = chart.NewRenderer(paths, config.DefaultChartWidth, config.DefaultChartHeight, logger)
	}
	return s, nil
}

// Run executes the workflow selected by req.Kind
func (s *AnalysisService) Run(ctx context.Context, req Request) (*Report, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	ctx, span := s.telemetry.StartSpan(ctx, "analysis."+string(req.Kind),
		attribute.String("input", req.Input),
		attribute.String("run_id", infrastructure.GetRunID(ctx)),
	)
	defer span.End()

	start := time.Now()
	rep := &Report{Kind: req.Kind, Input: req.Input, RunID: infrastructure.GetRunID(ctx)}
	s.logger.InfoContext(ctx, "analysis started",
		"kind", req.Kind,
		"input", req.Input,
	)

	var err error
	switch req.Kind {
	case KindWQI:
		err = s.runWQI(ctx, req, rep)
	case KindXBarR:
		err = s.runXBarR(ctx, req, rep)
	case KindCapability:
		err = s.runCapability(ctx, req, rep)
	default:
		err = apperrors.NewAppValidationError(fmt.Sprintf("unknown analysis kind %q", req.Kind))
	}

	rep.Duration = time.Since(start)
	s.telemetry.Metrics.RecordRun(ctx, string(req.Kind), rep.Duration, err)
	if err != nil {
		infrastructure.RecordError(span, err)
		s.logger.ErrorContext(ctx, "analysis failed", append([]any{
			"kind", req.Kind,
			"input", req.Input,
		}, infrastructure.ErrorAttrs(err)...)...)
		return nil, err
	}

	span.SetAttributes(attribute.Int("files_written", len(rep.Files)))
	s.logger.InfoContext(ctx, "analysis completed",
		"kind", req.Kind,
		"input", req.Input,
		"files", len(rep.Files),
		"duration", rep.Duration,
	)
	return rep, nil
}

func (s *AnalysisService) load(ctx context.Context, req Request) (*table.Table, error) {
	_, span := s.telemetry.StartSpan(ctx, "table.load", attribute.String("input", req.Input))
	defer span.End()

	tbl, err := table.Load(req.Input)
	if err != nil {
		infrastructure.RecordError(span, err)
		return nil, fmt.Errorf("load %s: %w", req.Input, err)
	}
	span.SetAttributes(attribute.Int("rows", tbl.Len()))
	s.telemetry.Metrics.RecordRows(ctx, string(req.Kind), tbl.Len())
	s.logger.DebugContext(ctx, "table loaded",
		"input", req.Input,
		"rows", tbl.Len(),
		"columns", tbl.Header(),
	)
	return tbl, nil
}

func (s *AnalysisService) runWQI(ctx context.Context, req Request, rep *Report) error {
	if req.Standards == nil {
		return apperrors.NewConfigError("the water quality index needs a standards file", nil)
	}

	tbl, err := s.load(ctx, req)
	if err != nil {
		return err
	}
	samples, err := tbl.Samples(s.cfg.DateLayout)
	if err != nil {
		return err
	}

	engine, err := quality.NewWQIEngine(req.Standards.Standards())
	if err != nil {
		return fmt.Errorf("build wqi engine: %w", err)
	}
	if len(req.Parameters) > 0 {
		if engine, err = engine.Select(req.Parameters); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	results, summary, err := s.analyzer.AnalyzeWQI(ctx, engine, samples)
	if err != nil {
		return err
	}
	params := engine.Parameters()
	s.telemetry.Metrics.RecordParameters(ctx, string(KindWQI), len(params))
	rep.WQI = &WQIReport{Results: results, Summary: summary}

	prefix := req.Prefix
	if prefix == "" {
		prefix = s.cfg.OutputPrefix
	}

	headers, records := exporter.WQIRecords(tbl.KeyLabel(), samples, results, params, s.cfg.Precision)
	if err := s.write(ctx, rep, joinName(prefix, config.WQIResultsPrefix, summary.Period), headers, records); err != nil {
		return err
	}
	headers, records = exporter.WQISummaryRecords(summary, s.cfg.Precision)
	if err := s.write(ctx, rep, joinName(prefix, config.WQISummaryPrefix, summary.Period), headers, records); err != nil {
		return err
	}

	if s.renderer == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.chart(ctx, rep, func() (string, error) {
		return s.renderer.SaveWQITrend(prefix, summary.Period, results)
	}); err != nil {
		return err
	}
	return s.chart(ctx, rep, func() (string, error) {
		return s.renderer.SaveContributions(prefix, results, summary)
	})
}

func (s *AnalysisService) runXBarR(ctx context.Context, req Request, rep *Report) error {
	tbl, err := s.load(ctx, req)
	if err != nil {
		return err
	}

	params := req.Parameters
	if len(params) == 0 {
		params = tbl.Parameters()
	}
	prefix := s.prefix(req)
	limits := limitSource(req)

	fixedSize := 0
	if req.Standards != nil {
		fixedSize = req.Standards.SubgroupSize
	}
	var labels []string
	if fixedSize == 0 {
		labels = tbl.SubgroupLabels()
	}

	for _, p := range params {
		if err := ctx.Err(); err != nil {
			return err
		}

		series, err := subgroupedSeries(tbl, p, fixedSize)
		if err != nil {
			return err
		}
		lim, err := limits.Limits(ctx, p)
		if err != nil {
			return err
		}

		pctx, span := s.telemetry.StartSpan(ctx, "xbar-r.parameter", attribute.String("parameter", p))
		analysis, err := s.analyzer.AnalyzeSubgroups(pctx, series, lim)
		if err != nil {
			infrastructure.RecordError(span, err)
			span.End()
			return err
		}
		span.End()

		rep.Control = append(rep.Control, analysis)
		if analysis.Capability != nil {
			s.recordUndefined(ctx, "Cp", "Cpk", *analysis.Capability)
		}

		base := joinName(prefix, config.AnalysisInfix, p)
		headers, records := exporter.SubgroupValueRecords(labels, analysis.Chart, s.cfg.Precision)
		if err := s.write(ctx, rep, base+"_values", headers, records); err != nil {
			return err
		}
		headers, records = exporter.ControlStatsRecords(analysis, s.cfg.Precision)
		if err := s.write(ctx, rep, base+"_stats", headers, records); err != nil {
			return err
		}

		if s.renderer != nil {
			if err := s.chart(ctx, rep, func() (string, error) {
				return s.renderer.SaveControlChart(prefix, analysis.Chart, labels)
			}); err != nil {
				return err
			}
		}
	}
	s.telemetry.Metrics.RecordParameters(ctx, string(KindXBarR), len(params))

	headers, records := exporter.ControlSummaryRecords(rep.Control, s.cfg.Precision)
	return s.write(ctx, rep, joinName(prefix, config.AnalysisInfix, "summary"), headers, records)
}

func (s *AnalysisService) runCapability(ctx context.Context, req Request, rep *Report) error {
	tbl, err := s.load(ctx, req)
	if err != nil {
		return err
	}

	// Every column is a parameter here, the first one included.
	params := req.Parameters
	if len(params) == 0 {
		params = tbl.Header()
	}
	limits := limitSource(req)

	for _, p := range params {
		if err := ctx.Err(); err != nil {
			return err
		}

		series, err := tbl.Series(p)
		if err != nil {
			return err
		}
		lim, err := limits.Limits(ctx, p)
		if err != nil {
			return err
		}
		res, err := s.analyzer.AnalyzeOverall(ctx, series, lim)
		if err != nil {
			return err
		}
		s.recordUndefined(ctx, "Pp", "Ppk", res)
		rep.Capability = append(rep.Capability, res)
	}
	s.telemetry.Metrics.RecordParameters(ctx, string(KindCapability), len(params))

	headers, records := exporter.CapabilityRecords(rep.Capability, s.cfg.Precision)
	return s.write(ctx, rep, joinName(s.prefix(req), config.PpPpkSuffix), headers, records)
}

func (s *AnalysisService) write(ctx context.Context, rep *Report, name string, headers []string, records [][]string) error {
	path, err := s.writer.Write(name, headers, records)
	if err != nil {
		return err
	}
	rep.Files = append(rep.Files, path)
	s.telemetry.Metrics.RecordFile(ctx, "table")
	s.logger.InfoContext(ctx, "results written", "path", path, "rows", len(records))
	return nil
}

func (s *AnalysisService) chart(ctx context.Context, rep *Report, save func() (string, error)) error {
	path, err := save()
	if err != nil {
		return err
	}
	rep.Files = append(rep.Files, path)
	s.telemetry.Metrics.RecordFile(ctx, "chart")
	s.logger.InfoContext(ctx, "chart written", "path", path)
	return nil
}

func (s *AnalysisService) recordUndefined(ctx context.Context, potential, performance string, r quality.CapabilityResult) {
	if !r.Potential.IsDefined() {
		s.telemetry.Metrics.RecordUndefined(ctx, potential, string(r.Potential.Reason()))
	}
	if !r.Performance.IsDefined() {
		s.telemetry.Metrics.RecordUndefined(ctx, performance, string(r.Performance.Reason()))
	}
}

// prefix returns the request prefix, the configured one, or the input file stem
func (s *AnalysisService) prefix(req Request) string {
	if req.Prefix != "" {
		return req.Prefix
	}
	if s.cfg.OutputPrefix != "" {
		return s.cfg.OutputPrefix
	}
	return inputStem(req.Input)
}

func subgroupedSeries(tbl *table.Table, parameter string, fixedSize int) (quality.ParameterSeries, error) {
	if fixedSize == 0 {
		return tbl.SubgroupedSeries(parameter)
	}
	values, err := tbl.Column(parameter)
	if err != nil {
		return quality.ParameterSeries{}, err
	}
	return quality.NewSubgroupedSeries(parameter, values, fixedSize)
}

func limitSource(req Request) LimitSource {
	if req.Limits != nil {
		return req.Limits
	}
	return StandardsLimits{Doc: req.Standards}
}

func inputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// joinName joins the non-empty parts with underscores
func joinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}
