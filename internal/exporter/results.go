package exporter

import (
	"wqcli/internal/quality"
)

// WQIRecords lays out one row per time point: the key column, the observed values,
// then WQI, WQI_Class, one <param>_contribution column (percent) per parameter,
// Month_Name and Year.
func WQIRecords(keyLabel string, samples []quality.Sample, results []quality.WQIResult, parameters []string, precision int) ([]string, [][]string) {
	headers := make([]string, 0, 2*len(parameters)+5)
	headers = append(headers, keyLabel)
	headers = append(headers, parameters...)
	headers = append(headers, "WQI", "WQI_Class")
	for _, p := range parameters {
		headers = append(headers, p+"_contribution")
	}
	headers = append(headers, "Month_Name", "Year")

	records := make([][]string, 0, len(results))
	for i, r := range results {
		row := make([]string, 0, len(headers))
		row = append(row, r.Label)
		for _, p := range parameters {
			row = append(row, formatFloat(samples[i].Values[p], precision))
		}
		row = append(row, formatFloat(r.Index, precision), string(r.Class))
		for _, p := range parameters {
			row = append(row, formatFloat(r.ContributionPercent[p], precision))
		}
		month, year := "", ""
		if !r.Date.IsZero() {
			month, year = r.Date.Month().String(), formatInt(r.Date.Year())
		}
		row = append(row, month, year)
		records = append(records, row)
	}
	return headers, records
}

// WQISummaryRecords lays out the run summary as Statistic/Value rows
func WQISummaryRecords(s quality.WQISummary, precision int) ([]string, [][]string) {
	records := [][]string{
		{"Period", s.Period},
		{"Samples", formatInt(s.Count)},
		{"Mean WQI", formatFloat(s.MeanIndex, precision)},
		{"Mean WQI Class", string(s.MeanClass())},
	}
	for _, c := range quality.WQIClasses {
		records = append(records, []string{string(c) + " Count", formatInt(s.ClassCounts[c])})
	}
	for _, p := range s.Parameters {
		records = append(records, []string{p + " Mean Contribution (%)", formatFloat(s.MeanContributionPercent[p], precision)})
	}
	return []string{"Statistic", "Value"}, records
}

// SubgroupValueRecords lists the mean and range of every subgroup
func SubgroupValueRecords(labels []string, chart quality.ControlChart, precision int) ([]string, [][]string) {
	records := make([][]string, 0, len(chart.Subgroups))
	for i, s := range chart.Subgroups {
		label := formatInt(s.Index)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		records = append(records, []string{label, formatFloat(s.Mean, precision), formatFloat(s.Range, precision)})
	}
	return []string{"Subgroup", "X-bar", "R"}, records
}

// ControlStatsRecords lists the chart statistics and capability of one parameter
func ControlStatsRecords(a quality.SubgroupAnalysis, precision int) ([]string, [][]string) {
	c := a.Chart
	records := [][]string{
		{"X-bar-bar", formatFloat(c.GrandMean, precision)},
		{"R-bar", formatFloat(c.AverageRange, precision)},
		{"UCL (X-bar)", formatFloat(c.XBar.Upper, precision)},
		{"LCL (X-bar)", formatFloat(c.XBar.Lower, precision)},
		{"UCL (R)", formatFloat(c.R.Upper, precision)},
		{"LCL (R)", formatFloat(c.R.Lower, precision)},
		{"Sigma (within)", formatFloat(c.WithinSigma(), precision)},
	}
	cp := capabilityCells(a.Capability, precision)
	records = append(records,
		[]string{"USL", cp.usl},
		[]string{"LSL", cp.lsl},
		[]string{"Cp", cp.potential},
		[]string{"Cpk", cp.performance},
		[]string{"CPU", cp.upper},
		[]string{"CPL", cp.lower},
		[]string{"Subgroup Size", formatInt(c.SubgroupSize)},
		[]string{"Subgroups", formatInt(len(c.Subgroups))},
	)
	return []string{"Statistic", "Value"}, records
}

// ControlSummaryRecords lays out one row per parameter
func ControlSummaryRecords(analyses []quality.SubgroupAnalysis, precision int) ([]string, [][]string) {
	headers := []string{
		"Parameter", "X-bar-bar", "R-bar", "UCL (X-bar)", "LCL (X-bar)", "UCL (R)", "LCL (R)",
		"Cp", "Cpk", "Subgroup Size", "USL", "LSL",
	}
	records := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		c := a.Chart
		cp := capabilityCells(a.Capability, precision)
		records = append(records, []string{
			c.Parameter,
			formatFloat(c.GrandMean, precision),
			formatFloat(c.AverageRange, precision),
			formatFloat(c.XBar.Upper, precision),
			formatFloat(c.XBar.Lower, precision),
			formatFloat(c.R.Upper, precision),
			formatFloat(c.R.Lower, precision),
			cp.potential,
			cp.performance,
			formatInt(c.SubgroupSize),
			cp.usl,
			cp.lsl,
		})
	}
	return headers, records
}

// CapabilityRecords lays out Pp/Ppk results with one column per parameter
func CapabilityRecords(results []quality.CapabilityResult, precision int) ([]string, [][]string) {
	headers := make([]string, 0, len(results)+1)
	headers = append(headers, "Statistic")
	for _, r := range results {
		headers = append(headers, r.Parameter)
	}

	stats := []string{"Mean", "Standard Deviation", "USL", "LSL", "Pp", "Ppk", "PPU", "PPL", "Sample Size"}
	records := make([][]string, len(stats))
	for i, s := range stats {
		records[i] = append(make([]string, 0, len(headers)), s)
	}
	for _, r := range results {
		cp := capabilityCells(&r, precision)
		cells := []string{
			formatFloat(r.Mean, precision),
			formatFloat(r.Sigma, precision),
			cp.usl,
			cp.lsl,
			cp.potential,
			cp.performance,
			cp.upper,
			cp.lower,
			formatInt(r.SampleSize),
		}
		for i, v := range cells {
			records[i] = append(records[i], v)
		}
	}
	return headers, records
}

type capabilityRow struct {
	usl, lsl               string
	potential, performance string
	upper, lower           string
}

func capabilityCells(r *quality.CapabilityResult, precision int) capabilityRow {
	if r == nil {
		return capabilityRow{}
	}
	return capabilityRow{
		usl:         formatLimit(r.Limits.Upper, r.Limits.HasUpper, precision),
		lsl:         formatLimit(r.Limits.Lower, r.Limits.HasLower, precision),
		potential:   formatIndex(r.Potential, precision),
		performance: formatIndex(r.Performance, precision),
		upper:       formatIndex(r.UpperIndex, precision),
		lower:       formatIndex(r.LowerIndex, precision),
	}
}
