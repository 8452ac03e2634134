package quality

import (
	"fmt"
	"time"

	apperrors "wqcli/internal/errors"
)

// DateLayout is the DD-MM-YYYY layout used to label time points
const DateLayout = "02-01-2006"

// Sample is the set of parameter values observed at one time point
type Sample struct {
	Date   time.Time          `json:"date"`
	Label  string             `json:"label,omitempty"` // source label; defaults to the formatted date
	Values map[string]float64 `json:"values"`
}

// Point returns the label used to identify the time point in errors and output
func (s Sample) Point() string {
	if s.Label != "" {
		return s.Label
	}
	if s.Date.IsZero() {
		return ""
	}
	return s.Date.Format(DateLayout)
}

// WQIClass is the categorical water-quality class of an index value
type WQIClass string

const (
	ClassExcellent  WQIClass = "Excellent"
	ClassGood       WQIClass = "Good"
	ClassPoor       WQIClass = "Poor"
	ClassUnsuitable WQIClass = "Unsuitable"
)

// WQIClasses lists the classes from best to worst
var WQIClasses = []WQIClass{ClassExcellent, ClassGood, ClassPoor, ClassUnsuitable}

// Classify maps an index value to its class
func Classify(index float64) WQIClass {
	switch {
	case index < 50:
		return ClassExcellent
	case index < 100:
		return ClassGood
	case index < 200:
		return ClassPoor
	default:
		return ClassUnsuitable
	}
}

// WQIResult is the index and its per-parameter breakdown at one time point
type WQIResult struct {
	Date                time.Time          `json:"date"`
	Label               string             `json:"label"`
	Index               float64            `json:"index"`
	Class               WQIClass           `json:"class"`
	Ratings             map[string]float64 `json:"ratings"`
	Contributions       map[string]float64 `json:"contributions"`
	ContributionPercent map[string]float64 `json:"contribution_percent"`
}

// WQIEngine computes the Water Quality Index for a fixed set of standards
type WQIEngine struct {
	standards   []Standard
	weights     map[string]float64
	weightSum   float64
	classRaters map[RatingClass]Rater
	paramRaters map[string]Rater
}

// WQIOption configures a WQIEngine
type WQIOption func(*WQIEngine)

// WithClassRater registers or replaces the rater for a rating class
func WithClassRater(class RatingClass, r Rater) WQIOption {
	return func(e *WQIEngine) {
		e.classRaters[class] = r
	}
}

// WithParameterRater overrides the rater of a single parameter
func WithParameterRater(parameter string, r Rater) WQIOption {
	return func(e *WQIEngine) {
		e.paramRaters[parameter] = r
	}
}

// NewWQIEngine validates the standards and resolves a rater for every parameter.
// Parameter order follows the order of standards.
func NewWQIEngine(standards []Standard, opts ...WQIOption) (*WQIEngine, error) {
	if len(standards) == 0 {
		return nil, apperrors.NewAppValidationError("at least one standard is required")
	}

	e := &WQIEngine{
		classRaters: defaultRaters(),
		paramRaters: make(map[string]Rater),
	}
	for _, opt := range opts {
		opt(e)
	}

	seen := make(map[string]bool, len(standards))
	for _, s := range standards {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Parameter] {
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("duplicate standard for parameter %q", s.Parameter)).
				WithContext("parameter", s.Parameter)
		}
		seen[s.Parameter] = true
		if _, err := e.raterFor(s); err != nil {
			return nil, err
		}
	}

	e.standards = make([]Standard, len(standards))
	copy(e.standards, standards)
	e.weights = DeriveWeights(e.standards)
	for _, s := range e.standards {
		e.weightSum += e.weights[s.Parameter]
	}
	return e, nil
}

// Select returns an engine restricted to the named parameters, in the given order.
// Each name must have a registered standard.
func (e *WQIEngine) Select(parameters []string) (*WQIEngine, error) {
	byName := make(map[string]Standard, len(e.standards))
	for _, s := range e.standards {
		byName[s.Parameter] = s
	}

	selected := make([]Standard, 0, len(parameters))
	for _, p := range parameters {
		s, ok := byName[p]
		if !ok {
			return nil, apperrors.NewUnknownStandardError(p, "")
		}
		selected = append(selected, s)
	}

	opts := make([]WQIOption, 0, len(e.classRaters)+len(e.paramRaters))
	for c, r := range e.classRaters {
		opts = append(opts, WithClassRater(c, r))
	}
	for p, r := range e.paramRaters {
		opts = append(opts, WithParameterRater(p, r))
	}
	return NewWQIEngine(selected, opts...)
}

// Parameters returns the configured parameter names in order
func (e *WQIEngine) Parameters() []string {
	out := make([]string, len(e.standards))
	for i, s := range e.standards {
		out[i] = s.Parameter
	}
	return out
}

// Standards returns a copy of the configured standards
func (e *WQIEngine) Standards() []Standard {
	out := make([]Standard, len(e.standards))
	copy(out, e.standards)
	return out
}

// Weights returns a copy of the effective weights
func (e *WQIEngine) Weights() map[string]float64 {
	out := make(map[string]float64, len(e.weights))
	for k, v := range e.weights {
		out[k] = v
	}
	return out
}

func (e *WQIEngine) raterFor(s Standard) (Rater, error) {
	if r, ok := e.paramRaters[s.Parameter]; ok && r != nil {
		return r, nil
	}
	if r, ok := e.classRaters[s.EffectiveClass()]; ok && r != nil {
		return r, nil
	}
	return nil, apperrors.NewUnknownStandardError(s.Parameter,
		fmt.Sprintf("no rater registered for class %q", s.EffectiveClass()))
}

// ComputeAt computes the index of a single sample
func (e *WQIEngine) ComputeAt(sample Sample) (WQIResult, error) {
	point := sample.Point()
	for _, s := range e.standards {
		v, ok := sample.Values[s.Parameter]
		if !ok || !isFinite(v) {
			return WQIResult{}, apperrors.NewMissingParameterError(s.Parameter, point)
		}
	}

	res := WQIResult{
		Date:                sample.Date,
		Label:               point,
		Ratings:             make(map[string]float64, len(e.standards)),
		Contributions:       make(map[string]float64, len(e.standards)),
		ContributionPercent: make(map[string]float64, len(e.standards)),
	}

	// The index is the sum of contributions so the two always agree exactly.
	for _, s := range e.standards {
		r, _ := e.raterFor(s)
		q := r.Rate(sample.Values[s.Parameter], s)
		c := e.weights[s.Parameter] * q / e.weightSum
		res.Ratings[s.Parameter] = q
		res.Contributions[s.Parameter] = c
		res.Index += c
	}

	for _, s := range e.standards {
		pct := 0.0
		if res.Index != 0 {
			pct = res.Contributions[s.Parameter] / res.Index * 100
		}
		res.ContributionPercent[s.Parameter] = pct
	}
	res.Class = Classify(res.Index)
	return res, nil
}

// Compute computes the index for every sample, preserving input order.
// All samples are checked before any result is produced.
func (e *WQIEngine) Compute(samples []Sample) ([]WQIResult, error) {
	for _, sample := range samples {
		for _, s := range e.standards {
			if v, ok := sample.Values[s.Parameter]; !ok || !isFinite(v) {
				return nil, apperrors.NewMissingParameterError(s.Parameter, sample.Point())
			}
		}
	}

	results := make([]WQIResult, 0, len(samples))
	for _, sample := range samples {
		r, err := e.ComputeAt(sample)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
