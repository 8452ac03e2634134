package quality

import (
	"fmt"

	apperrors "wqcli/internal/errors"
)

// ParameterSeries is a named, immutable sequence of observations of one parameter,
// optionally partitioned into consecutive subgroups of equal size.
type ParameterSeries struct {
	name         string
	observations []float64
	subgroupSize int
}

// NewParameterSeries creates an ungrouped series. All observations must be finite.
func NewParameterSeries(name string, observations []float64) (ParameterSeries, error) {
	if err := validateObservations(name, observations); err != nil {
		return ParameterSeries{}, err
	}
	obs := make([]float64, len(observations))
	copy(obs, observations)
	return ParameterSeries{name: name, observations: obs}, nil
}

// NewSubgroupedSeries creates a series partitioned into subgroups of subgroupSize.
// The observation count must be an exact multiple of the subgroup size.
func NewSubgroupedSeries(name string, observations []float64, subgroupSize int) (ParameterSeries, error) {
	s, err := NewParameterSeries(name, observations)
	if err != nil {
		return ParameterSeries{}, err
	}
	if err := checkPartition(name, len(observations), subgroupSize); err != nil {
		return ParameterSeries{}, err
	}
	s.subgroupSize = subgroupSize
	return s, nil
}

// Name returns the parameter name
func (s ParameterSeries) Name() string {
	return s.name
}

// Observations returns a copy of the observations in input order
func (s ParameterSeries) Observations() []float64 {
	out := make([]float64, len(s.observations))
	copy(out, s.observations)
	return out
}

// Len returns the number of observations
func (s ParameterSeries) Len() int {
	return len(s.observations)
}

// SubgroupSize returns the subgroup size, or 0 for an ungrouped series
func (s ParameterSeries) SubgroupSize() int {
	return s.subgroupSize
}

// IsGrouped reports whether the series carries a subgroup partition
func (s ParameterSeries) IsGrouped() bool {
	return s.subgroupSize > 0
}

func validateObservations(name string, observations []float64) error {
	if name == "" {
		return apperrors.NewAppValidationError("parameter series requires a name")
	}
	for i, v := range observations {
		if !isFinite(v) {
			return apperrors.NewAppValidationError(
				fmt.Sprintf("parameter %q: observation %d is not finite", name, i+1)).
				WithContext("parameter", name).
				WithContext("observation", i+1)
		}
	}
	return nil
}

func checkPartition(name string, count, size int) error {
	switch {
	case size == 0:
		return apperrors.NewInvalidSubgroupError(name, "subgroup size is not set")
	case size < 0:
		return apperrors.NewInvalidSubgroupError(name, fmt.Sprintf("subgroup size %d must be positive", size))
	case count == 0:
		return apperrors.NewInvalidSubgroupError(name, "no observations to partition")
	case count%size != 0:
		return apperrors.NewInvalidSubgroupError(name,
			fmt.Sprintf("%d observations are not divisible into subgroups of %d", count, size))
	}
	return nil
}
