package config

// Application constants
const (
	AppName    = "wqcli"
	AppVersion = "1.0.0"
)

// Output file naming
const (
	WQIResultsPrefix   = "WQI_results"
	WQISummaryPrefix   = "WQI_summary"
	AnalysisInfix      = "analysis"
	PpPpkSuffix        = "pp_ppk_analysis"
	WQITrendPrefix     = "WQI_fig"
	WQIStackedPrefix   = "WQI_param_contrib_stacked"
	XBarRPrefix        = "xbar_r"
	DefaultChartWidth  = 1200
	DefaultChartHeight = 600
)
