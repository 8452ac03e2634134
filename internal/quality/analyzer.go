package quality

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SubgroupAnalysis is the X-bar/R chart of one parameter and, when limits were
// supplied, its Cp/Cpk.
type SubgroupAnalysis struct {
	Chart      ControlChart      `json:"chart"`
	Capability *CapabilityResult `json:"capability,omitempty"`
}

// Analyzer runs the engine functions with logging. It holds no per-run state
// and is safe for concurrent use.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil logger falls back to slog.Default().
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// AnalyzeSubgroups computes subgroup statistics, control limits and, if limits
// are set, within-subgroup capability for a grouped series.
func (a *Analyzer) AnalyzeSubgroups(ctx context.Context, series ParameterSeries, limits SpecLimits) (SubgroupAnalysis, error) {
	start := time.Now()
	a.logger.DebugContext(ctx, "analyzing subgroups",
		"parameter", series.Name(),
		"observations", series.Len(),
		"subgroup_size", series.SubgroupSize(),
	)

	stats, err := ComputeSubgroupStatistics(series)
	if err != nil {
		return SubgroupAnalysis{}, fmt.Errorf("subgroup statistics: %w", err)
	}
	chart, err := ComputeControlLimits(series.Name(), stats, series.SubgroupSize())
	if err != nil {
		return SubgroupAnalysis{}, fmt.Errorf("control limits: %w", err)
	}

	out := SubgroupAnalysis{Chart: chart}
	if limits.IsSet() {
		capRes, err := WithinCapability(chart, limits)
		if err != nil {
			return SubgroupAnalysis{}, fmt.Errorf("capability: %w", err)
		}
		out.Capability = &capRes
		a.logCapability(ctx, capRes)
	} else {
		a.logger.InfoContext(ctx, "no specification limits, skipping capability",
			"parameter", series.Name())
	}

	a.logger.InfoContext(ctx, "control limits computed",
		"parameter", chart.Parameter,
		"subgroups", len(chart.Subgroups),
		"grand_mean", chart.GrandMean,
		"average_range", chart.AverageRange,
		"xbar_ucl", chart.XBar.Upper,
		"xbar_lcl", chart.XBar.Lower,
		"r_ucl", chart.R.Upper,
		"duration", time.Since(start),
	)
	return out, nil
}

// AnalyzeOverall computes Pp/Ppk for an ungrouped series
func (a *Analyzer) AnalyzeOverall(ctx context.Context, series ParameterSeries, limits SpecLimits) (CapabilityResult, error) {
	res, err := OverallCapability(series, limits)
	if err != nil {
		return CapabilityResult{}, fmt.Errorf("overall capability: %w", err)
	}
	a.logCapability(ctx, res)
	return res, nil
}

// AnalyzeWQI computes the index for every sample and summarizes the run
func (a *Analyzer) AnalyzeWQI(ctx context.Context, engine *WQIEngine, samples []Sample) ([]WQIResult, WQISummary, error) {
	start := time.Now()
	a.logger.InfoContext(ctx, "computing water quality index",
		"samples", len(samples),
		"parameters", engine.Parameters(),
	)

	results, err := engine.Compute(samples)
	if err != nil {
		a.logger.ErrorContext(ctx, "water quality index failed", "error", err)
		return nil, WQISummary{}, fmt.Errorf("compute wqi: %w", err)
	}

	summary := Summarize(results, engine.Parameters())
	a.logger.InfoContext(ctx, "water quality index computed",
		"period", summary.Period,
		"mean_wqi", summary.MeanIndex,
		"mean_class", summary.MeanClass(),
		"duration", time.Since(start),
	)
	return results, summary, nil
}

func (a *Analyzer) logCapability(ctx context.Context, r CapabilityResult) {
	attrs := []any{
		"parameter", r.Parameter,
		"mode", r.Mode,
		"mean", r.Mean,
		"sigma", r.Sigma,
		"sample_size", r.SampleSize,
		"potential", r.Potential.String(),
		"performance", r.Performance.String(),
	}
	if !r.Performance.IsDefined() {
		a.logger.WarnContext(ctx, "capability undefined", attrs...)
		return
	}
	a.logger.InfoContext(ctx, "capability computed", attrs...)
}
