package quality

import (
	"fmt"
	"math"
	"strconv"

	apperrors "wqcli/internal/errors"
)

// CapabilityMode distinguishes within-subgroup (Cp/Cpk) from overall (Pp/Ppk) capability
type CapabilityMode string

const (
	// ModeWithin uses R̄/d2 from subgrouped data
	ModeWithin CapabilityMode = "within"
	// ModeOverall uses the sample standard deviation of ungrouped data
	ModeOverall CapabilityMode = "overall"
)

// UndefinedReason explains why a capability index has no value
type UndefinedReason string

const (
	ReasonZeroVariation    UndefinedReason = "zero variation"
	ReasonOneSided         UndefinedReason = "one-sided"
	ReasonInsufficientData UndefinedReason = "insufficient data"
)

// CapabilityIndex is either a defined value or an undefined marker with a reason.
// It never carries NaN or a sentinel number.
type CapabilityIndex struct {
	value   float64
	defined bool
	reason  UndefinedReason
}

// DefinedIndex wraps a computed index value
func DefinedIndex(v float64) CapabilityIndex {
	return CapabilityIndex{value: v, defined: true}
}

// UndefinedIndex returns the undefined marker
func UndefinedIndex(reason UndefinedReason) CapabilityIndex {
	return CapabilityIndex{reason: reason}
}

// Value returns the index and whether it is defined
func (c CapabilityIndex) Value() (float64, bool) {
	return c.value, c.defined
}

// IsDefined reports whether the index has a value
func (c CapabilityIndex) IsDefined() bool {
	return c.defined
}

// Reason returns why the index is undefined, or "" when it is defined
func (c CapabilityIndex) Reason() UndefinedReason {
	return c.reason
}

// Format renders the value with the given precision, or "undefined"
func (c CapabilityIndex) Format(precision int) string {
	if !c.defined {
		return "undefined"
	}
	return strconv.FormatFloat(c.value, 'f', precision, 64)
}

// MarshalJSON encodes a defined index as a number and an undefined one as its reason
func (c CapabilityIndex) MarshalJSON() ([]byte, error) {
	if !c.defined {
		return []byte(strconv.Quote("undefined: " + string(c.reason))), nil
	}
	return []byte(strconv.FormatFloat(c.value, 'g', -1, 64)), nil
}

func (c CapabilityIndex) String() string {
	if !c.defined {
		return fmt.Sprintf("undefined (%s)", c.reason)
	}
	return strconv.FormatFloat(c.value, 'f', 4, 64)
}

// SpecLimits holds the upper and lower specification limits. Either side may be absent.
type SpecLimits struct {
	Upper    float64 `json:"usl"`
	Lower    float64 `json:"lsl"`
	HasUpper bool    `json:"has_usl"`
	HasLower bool    `json:"has_lsl"`
}

// TwoSided returns limits with both LSL and USL
func TwoSided(lsl, usl float64) SpecLimits {
	return SpecLimits{Upper: usl, Lower: lsl, HasUpper: true, HasLower: true}
}

// UpperOnly returns a one-sided limit with only a USL
func UpperOnly(usl float64) SpecLimits {
	return SpecLimits{Upper: usl, HasUpper: true}
}

// LowerOnly returns a one-sided limit with only an LSL
func LowerOnly(lsl float64) SpecLimits {
	return SpecLimits{Lower: lsl, HasLower: true}
}

// IsSet reports whether at least one limit is present
func (l SpecLimits) IsSet() bool {
	return l.HasUpper || l.HasLower
}

// IsTwoSided reports whether both limits are present
func (l SpecLimits) IsTwoSided() bool {
	return l.HasUpper && l.HasLower
}

// Validate checks the limits for the named parameter
func (l SpecLimits) Validate(parameter string) error {
	if !l.IsSet() {
		return apperrors.NewInvalidSpecLimitsError(parameter, "at least one of USL or LSL is required")
	}
	if l.HasUpper && !isFinite(l.Upper) {
		return apperrors.NewInvalidSpecLimitsError(parameter, "USL is not finite")
	}
	if l.HasLower && !isFinite(l.Lower) {
		return apperrors.NewInvalidSpecLimitsError(parameter, "LSL is not finite")
	}
	if l.IsTwoSided() && l.Upper <= l.Lower {
		return apperrors.NewInvalidSpecLimitsError(parameter,
			fmt.Sprintf("USL %g must be greater than LSL %g", l.Upper, l.Lower))
	}
	return nil
}

// CapabilityResult holds the capability indices of one parameter.
// In ModeWithin Potential/Performance are Cp/Cpk and UpperIndex/LowerIndex are CPU/CPL;
// in ModeOverall they are Pp/Ppk and PPU/PPL.
type CapabilityResult struct {
	Parameter   string          `json:"parameter"`
	Mode        CapabilityMode  `json:"mode"`
	Limits      SpecLimits      `json:"limits"`
	Mean        float64         `json:"mean"`
	Sigma       float64         `json:"sigma"`
	SampleSize  int             `json:"sample_size"`
	Potential   CapabilityIndex `json:"potential"`
	Performance CapabilityIndex `json:"performance"`
	UpperIndex  CapabilityIndex `json:"upper_index"`
	LowerIndex  CapabilityIndex `json:"lower_index"`
}

// WithinCapability computes Cp and Cpk from a control chart using sigma = R̄/d2(n)
func WithinCapability(chart ControlChart, limits SpecLimits) (CapabilityResult, error) {
	if err := limits.Validate(chart.Parameter); err != nil {
		return CapabilityResult{}, err
	}
	if chart.Constants.D2 <= 0 {
		return CapabilityResult{}, apperrors.NewUnsupportedSubgroupSizeError(
			chart.Parameter, chart.SubgroupSize, MinSubgroupSize, MaxSubgroupSize)
	}

	r := CapabilityResult{
		Parameter:  chart.Parameter,
		Mode:       ModeWithin,
		Limits:     limits,
		Mean:       chart.GrandMean,
		Sigma:      chart.WithinSigma(),
		SampleSize: chart.SampleSize(),
	}
	r.fill()
	return r, nil
}

// OverallCapability computes Pp and Ppk from all observations of the series,
// ignoring any subgroup partition. Fewer than two observations yield undefined indices.
func OverallCapability(series ParameterSeries, limits SpecLimits) (CapabilityResult, error) {
	if err := limits.Validate(series.name); err != nil {
		return CapabilityResult{}, err
	}

	r := CapabilityResult{
		Parameter:  series.name,
		Mode:       ModeOverall,
		Limits:     limits,
		SampleSize: len(series.observations),
	}
	if r.SampleSize < 2 {
		r.Mean = mean(series.observations)
		r.setAll(UndefinedIndex(ReasonInsufficientData))
		return r, nil
	}

	r.Mean = mean(series.observations)
	r.Sigma = sampleStdDev(series.observations, r.Mean)
	r.fill()
	return r, nil
}

func (r *CapabilityResult) setAll(idx CapabilityIndex) {
	r.Potential, r.Performance, r.UpperIndex, r.LowerIndex = idx, idx, idx, idx
}

func (r *CapabilityResult) fill() {
	// Constant data would otherwise divide by zero.
	if r.Sigma == 0 || !isFinite(r.Sigma) {
		r.setAll(UndefinedIndex(ReasonZeroVariation))
		return
	}

	l := r.Limits
	r.UpperIndex = UndefinedIndex(ReasonOneSided)
	r.LowerIndex = UndefinedIndex(ReasonOneSided)
	if l.HasUpper {
		r.UpperIndex = DefinedIndex((l.Upper - r.Mean) / (3 * r.Sigma))
	}
	if l.HasLower {
		r.LowerIndex = DefinedIndex((r.Mean - l.Lower) / (3 * r.Sigma))
	}

	switch {
	case l.IsTwoSided():
		r.Potential = DefinedIndex((l.Upper - l.Lower) / (6 * r.Sigma))
		r.Performance = DefinedIndex(math.Min(r.UpperIndex.value, r.LowerIndex.value))
	case l.HasUpper:
		r.Potential = UndefinedIndex(ReasonOneSided)
		r.Performance = r.UpperIndex
	default:
		r.Potential = UndefinedIndex(ReasonOneSided)
		r.Performance = r.LowerIndex
	}
}
