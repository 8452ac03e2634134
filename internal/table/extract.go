package table

import (
	"fmt"
	"time"

	apperrors "wqcli/internal/errors"
	"wqcli/internal/quality"
)

// DefaultDateLayout is the day-first layout of the key column in dated tables
const DefaultDateLayout = quality.DateLayout

// Samples converts each row into a dated sample. Key cells are parsed with layout
// (DefaultDateLayout when empty). Empty parameter cells are left out of the sample
// so that the engine reports them as missing for the affected time point.
func (t *Table) Samples(layout string) ([]quality.Sample, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}

	params := t.Parameters()
	samples := make([]quality.Sample, 0, len(t.rows))
	for i, r := range t.rows {
		date, err := time.Parse(layout, r[0])
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("line %d: date %q does not match layout %s", i+2, r[0], layout), err).
				WithContext("file", t.Source).
				WithContext("line", i+2)
		}

		values := make(map[string]float64, len(params))
		for j, p := range params {
			cell := r[j+1]
			if cell == "" {
				continue
			}
			v, err := parseFloat(cell)
			if err != nil {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("parameter %q at %s: %q is not a number", p, r[0], cell), err).
					WithContext("parameter", p).
					WithContext("line", i+2)
			}
			values[p] = v
		}

		samples = append(samples, quality.Sample{Date: date, Label: r[0], Values: values})
	}
	return samples, nil
}

// SubgroupedSeries extracts the named column partitioned into subgroups.
// Consecutive rows sharing a key form one subgroup; all subgroups must be the same size
// and a key may not reappear after a different one.
func (t *Table) SubgroupedSeries(name string) (quality.ParameterSeries, error) {
	values, err := t.Column(name)
	if err != nil {
		return quality.ParameterSeries{}, err
	}

	sizes, labels := runs(t.Keys())
	if len(sizes) == 0 {
		return quality.ParameterSeries{}, apperrors.NewInvalidSubgroupError(name, "table has no rows")
	}
	seen := make(map[string]bool, len(labels))
	for i, label := range labels {
		if seen[label] {
			return quality.ParameterSeries{}, apperrors.NewInvalidSubgroupError(name,
				fmt.Sprintf("subgroup %q reappears after subgroup %q; rows of a subgroup must be consecutive", label, labels[i-1])).
				WithContext("subgroup", label)
		}
		seen[label] = true
	}
	for i, n := range sizes {
		if n != sizes[0] {
			return quality.ParameterSeries{}, apperrors.NewInvalidSubgroupError(name,
				fmt.Sprintf("subgroup %q has %d observations, expected %d", labels[i], n, sizes[0])).
				WithContext("subgroup", labels[i])
		}
	}

	return quality.NewSubgroupedSeries(name, values, sizes[0])
}

// SubgroupLabels returns the key of each subgroup in order
func (t *Table) SubgroupLabels() []string {
	_, labels := runs(t.Keys())
	return labels
}

// Series extracts any column, the key column included, as an ungrouped series.
// Empty cells are left out, so columns of a table may differ in length.
func (t *Table) Series(name string) (quality.ParameterSeries, error) {
	values, err := t.Values(name)
	if err != nil {
		return quality.ParameterSeries{}, err
	}
	return quality.NewParameterSeries(name, values)
}

func runs(keys []string) (sizes []int, labels []string) {
	for i, k := range keys {
		if i > 0 && k == keys[i-1] {
			sizes[len(sizes)-1]++
			continue
		}
		sizes = append(sizes, 1)
		labels = append(labels, k)
	}
	return sizes, labels
}
