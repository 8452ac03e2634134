// Package services implements the analysis workflows behind the command-line tools.
//
// An AnalysisService runs one input table through a workflow:
//
//	load table -> extract series or samples -> quality engine -> result tables -> charts
//
// Three workflows exist: the water quality index (KindWQI), X-bar/R control
// charts with Cp/Cpk (KindXBarR), and overall Pp/Ppk capability (KindCapability).
// Every run gets a span, run metrics and structured log lines carrying the run ID.
//
// A BatchRunner fans several inputs out over the service with a bounded number
// of concurrent runs. Each run builds its own engine values, so runs share no
// mutable state besides the writer and renderer, which only create files.
//
// Specification limits come from a LimitSource: the standards document, an
// interactive Prompter, or none at all.
package services
