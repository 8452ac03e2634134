package exporter

import (
	"strconv"

	"wqcli/internal/quality"
)

// formatFloat formats a float64 value with a fixed number of decimals
func formatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatIndex writes an undefined capability index as the literal "undefined"
func formatIndex(idx quality.CapabilityIndex, precision int) string {
	return idx.Format(precision)
}

// formatLimit leaves the cell empty when a one-sided limit is absent
func formatLimit(value float64, present bool, precision int) string {
	if !present {
		return ""
	}
	return formatFloat(value, precision)
}
