// Package config provides configuration management for the water-quality tools.
//
// # Configuration Sources
//
// Configuration is built from the following sources in increasing order of precedence:
//
//	1. Default values (Default)
//	2. The first YAML file found: wq.yaml, configs/wq.yaml, ../configs/wq.yaml
//	3. Environment variables prefixed with WQ_
//
// # Environment Variables
//
//	WQ_LOGGING_LEVEL=debug
//	WQ_LOGGING_OUTPUT=both
//	WQ_PATHS_OUTPUT_DIR=results
//	WQ_ANALYSIS_PARALLELISM=8
//	WQ_ANALYSIS_OUTPUT_FORMAT=xlsx
//	WQ_TELEMETRY_METRICS_FILE=metrics/wq.prom
//
// # Standards Document
//
// WQI standards and capability limits live in a separate YAML document:
//
//	subgroup_size: 5
//	parameters:
//	  - name: DBO5
//	    standard: 7
//	  - name: pH
//	    standard: 8.5
//	    class: ideal
//	    ideal: 7
//	  - name: T
//	    standard: 30
//	    class: range
//	    low: 10
//	    high: 25
//	limits:
//	  DCO: {usl: 40}
//	  pH: {lsl: 6.5, usl: 8.5}
//
// The document is checked with validator struct tags and then with cross-field
// rules (ideal value for class ideal, band for class range, USL above LSL).
package config
