package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AnalysisMetrics holds the instruments recorded by analysis runs
type AnalysisMetrics struct {
	runs               metric.Int64Counter
	runDuration        metric.Float64Histogram
	rowsLoaded         metric.Int64Counter
	parametersAnalyzed metric.Int64Counter
	undefinedIndices   metric.Int64Counter
	filesWritten       metric.Int64Counter
	goroutines         metric.Int64Gauge
	heapAlloc          metric.Int64Gauge
}

// NewAnalysisMetrics creates the analysis instruments on meter
func NewAnalysisMetrics(meter metric.Meter) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{}
	var err error

	if m.runs, err = meter.Int64Counter(
		"wq_analysis_runs",
		metric.WithDescription("Analysis runs by kind and status"),
	); err != nil {
		return nil, err
	}
	if m.runDuration, err = meter.Float64Histogram(
		"wq_analysis_duration",
		metric.WithDescription("Duration of analysis runs"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.rowsLoaded, err = meter.Int64Counter(
		"wq_rows_loaded",
		metric.WithDescription("Table rows loaded"),
	); err != nil {
		return nil, err
	}
	if m.parametersAnalyzed, err = meter.Int64Counter(
		"wq_parameters_analyzed",
		metric.WithDescription("Parameters analyzed"),
	); err != nil {
		return nil, err
	}
	if m.undefinedIndices, err = meter.Int64Counter(
		"wq_capability_undefined",
		metric.WithDescription("Capability indices reported as undefined, by reason"),
	); err != nil {
		return nil, err
	}
	if m.filesWritten, err = meter.Int64Counter(
		"wq_files_written",
		metric.WithDescription("Result tables and charts written"),
	); err != nil {
		return nil, err
	}
	if m.goroutines, err = meter.Int64Gauge(
		"wq_runtime_goroutines",
		metric.WithDescription("Goroutines at the end of the batch"),
	); err != nil {
		return nil, err
	}
	if m.heapAlloc, err = meter.Int64Gauge(
		"wq_runtime_heap_alloc",
		metric.WithDescription("Heap bytes allocated at the end of the batch"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordRun records one finished run of kind
func (m *AnalysisMetrics) RecordRun(ctx context.Context, kind string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind), attribute.String("status", status))
	m.runs.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordRows records rows read from an input table
func (m *AnalysisMetrics) RecordRows(ctx context.Context, kind string, n int) {
	if m == nil {
		return
	}
	m.rowsLoaded.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordParameters records parameters analyzed by a run
func (m *AnalysisMetrics) RecordParameters(ctx context.Context, kind string, n int) {
	if m == nil {
		return
	}
	m.parametersAnalyzed.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordUndefined records a capability index that could not be computed
func (m *AnalysisMetrics) RecordUndefined(ctx context.Context, index, reason string) {
	if m == nil {
		return
	}
	m.undefinedIndices.Add(ctx, 1, metric.WithAttributes(
		attribute.String("index", index),
		attribute.String("reason", reason),
	))
}

// RecordFile records a written output file of type kind ("table" or "chart")
func (m *AnalysisMetrics) RecordFile(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.filesWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("type", kind)))
}

// RecordRuntime samples goroutine and heap usage
func (m *AnalysisMetrics) RecordRuntime(ctx context.Context) {
	if m == nil {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.goroutines.Record(ctx, int64(runtime.NumGoroutine()))
	m.heapAlloc.Record(ctx, int64(ms.HeapAlloc))
}
