// Package quality implements the statistical engine behind the water-quality toolkit.
//
// The package computes three families of metrics from periodic laboratory measurements:
//
//  1. Water Quality Index (WQI): weighted aggregation of per-parameter quality ratings
//  2. X-bar / R control charts: control limits derived from rational subgroups
//  3. Process capability: Cp/Cpk from subgrouped data, Pp/Ppk from ungrouped data
//
// # Architecture
//
//   - series.go: ParameterSeries, the immutable input for the chart and capability engines
//   - constants.go: tabulated control-chart constants for subgroup sizes 2 through 10
//   - subgroup.go: per-subgroup mean and range
//   - control.go: X-bar and R control limits
//   - capability.go: Cp/Cpk and Pp/Ppk with a tagged undefined state
//   - rating.go: standards and the pluggable rating strategies
//   - wqi.go: per-time-point index and contribution breakdown
//   - summary.go: run-level WQI summary and classification
//   - analyzer.go: logging orchestrator over the pure functions above
//
// Every function except the Analyzer methods is pure: no I/O, no logging, no shared state.
// Reading tables, writing results and drawing charts live in sibling packages.
//
// # Within-subgroup sigma
//
// Cp and Cpk estimate the process standard deviation as R̄/d2(n), the classical
// range-based estimator. Pp and Ppk use the sample standard deviation with an n-1 divisor.
//
// # Usage Example
//
//	series, err := quality.NewSubgroupedSeries("DCO", observations, 5)
//	if err != nil {
//	    return err
//	}
//	stats, err := quality.ComputeSubgroupStatistics(series)
//	if err != nil {
//	    return err
//	}
//	chart, err := quality.ComputeControlLimits(series.Name(), stats, series.SubgroupSize())
//	if err != nil {
//	    return err
//	}
//	result, err := quality.WithinCapability(chart, quality.TwoSided(5, 15))
package quality
