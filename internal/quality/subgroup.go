package quality

import (
	"fmt"

	apperrors "wqcli/internal/errors"
)

// SubgroupStat is the mean and range of one rational subgroup
type SubgroupStat struct {
	Index int     `json:"index"` // 1-based position of the subgroup
	Mean  float64 `json:"mean"`
	Range float64 `json:"range"`
}

// ComputeSubgroupStatistics splits the series into consecutive subgroups and
// returns their means and ranges in subgroup order.
func ComputeSubgroupStatistics(series ParameterSeries) ([]SubgroupStat, error) {
	n := series.subgroupSize
	if err := checkPartition(series.name, len(series.observations), n); err != nil {
		return nil, err
	}

	count := len(series.observations) / n
	stats := make([]SubgroupStat, 0, count)
	for i := 0; i < count; i++ {
		group := series.observations[i*n : (i+1)*n]
		lo, hi := minMax(group)
		stats = append(stats, SubgroupStat{
			Index: i + 1,
			Mean:  mean(group),
			Range: hi - lo,
		})
	}
	return stats, nil
}

// Means returns the subgroup means in order
func Means(stats []SubgroupStat) []float64 {
	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = s.Mean
	}
	return out
}

// Ranges returns the subgroup ranges in order
func Ranges(stats []SubgroupStat) []float64 {
	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = s.Range
	}
	return out
}

func validateSubgroupStats(parameter string, stats []SubgroupStat) error {
	if len(stats) == 0 {
		return apperrors.NewInvalidSubgroupError(parameter, "no subgroups")
	}
	for _, s := range stats {
		if !isFinite(s.Mean) || !isFinite(s.Range) || s.Range < 0 {
			return apperrors.NewInvalidSubgroupError(parameter,
				fmt.Sprintf("subgroup %d has a non-finite mean or a negative range", s.Index)).
				WithContext("subgroup", s.Index)
		}
	}
	return nil
}
