package quality

import (
	"fmt"
	"time"
)

// WQISummary aggregates the per-time-point results of one run
type WQISummary struct {
	Period                  string             `json:"period"`
	Count                   int                `json:"count"`
	MeanIndex               float64            `json:"mean_index"`
	MeanContributionPercent map[string]float64 `json:"mean_contribution_percent"`
	ClassCounts             map[WQIClass]int   `json:"class_counts"`
	Parameters              []string           `json:"parameters"`
}

// MeanClass classifies the mean index
func (s WQISummary) MeanClass() WQIClass {
	return Classify(s.MeanIndex)
}

// PeriodLabel returns "<Month>_<Year>" for t, e.g. "March_2024"
func PeriodLabel(t time.Time) string {
	if t.IsZero() {
		return "undated"
	}
	return fmt.Sprintf("%s_%d", t.Month(), t.Year())
}

// Summarize averages index values and contribution percentages over results.
// The period is taken from the first result's date.
func Summarize(results []WQIResult, parameters []string) WQISummary {
	s := WQISummary{
		Count:                   len(results),
		MeanContributionPercent: make(map[string]float64, len(parameters)),
		ClassCounts:             make(map[WQIClass]int, len(WQIClasses)),
		Parameters:              append([]string(nil), parameters...),
	}
	for _, c := range WQIClasses {
		s.ClassCounts[c] = 0
	}
	if len(results) == 0 {
		s.Period = PeriodLabel(time.Time{})
		return s
	}
	s.Period = PeriodLabel(results[0].Date)

	indices := make([]float64, len(results))
	for i, r := range results {
		indices[i] = r.Index
		s.ClassCounts[r.Class]++
	}
	s.MeanIndex = mean(indices)

	for _, p := range parameters {
		pcts := make([]float64, len(results))
		for i, r := range results {
			pcts[i] = r.ContributionPercent[p]
		}
		s.MeanContributionPercent[p] = mean(pcts)
	}
	return s
}
