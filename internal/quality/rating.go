package quality

import (
	"fmt"
	"math"

	apperrors "wqcli/internal/errors"
)

// RatingClass selects how a parameter's observed value maps to a quality rating
type RatingClass string

const (
	// ClassProportional rates lower-is-better parameters: q = v / S * 100
	ClassProportional RatingClass = "proportional"
	// ClassIdeal rates deviation from an ideal value: q = |v - Vi| / |S - Vi| * 100
	ClassIdeal RatingClass = "ideal"
	// ClassRange rates deviation from the midpoint of an optimal band: q = |v - mid| / (high - mid) * 100
	ClassRange RatingClass = "range"
)

// Standard is the reference for one WQI parameter
type Standard struct {
	Parameter   string      `json:"parameter"`
	Permissible float64     `json:"permissible"` // S, the permissible value
	Class       RatingClass `json:"class"`
	Ideal       float64     `json:"ideal,omitempty"`  // used by ClassIdeal
	Low         float64     `json:"low,omitempty"`    // used by ClassRange
	High        float64     `json:"high,omitempty"`   // used by ClassRange
	Weight      float64     `json:"weight,omitempty"` // explicit weight; 0 derives K/S
}

// EffectiveClass returns the class, defaulting to proportional
func (s Standard) EffectiveClass() RatingClass {
	if s.Class == "" {
		return ClassProportional
	}
	return s.Class
}

// Validate checks the standard for internal consistency
func (s Standard) Validate() error {
	if s.Parameter == "" {
		return apperrors.NewAppValidationError("standard requires a parameter name")
	}
	invalid := func(msg string) error {
		return apperrors.NewAppValidationError(fmt.Sprintf("standard %q: %s", s.Parameter, msg)).
			WithContext("parameter", s.Parameter)
	}
	if !isFinite(s.Permissible) || s.Permissible <= 0 {
		return invalid("permissible value must be positive")
	}
	if s.Weight < 0 || !isFinite(s.Weight) {
		return invalid("weight must not be negative")
	}
	switch s.EffectiveClass() {
	case ClassIdeal:
		if s.Permissible == s.Ideal {
			return invalid("permissible value must differ from the ideal value")
		}
	case ClassRange:
		if s.High <= s.Low {
			return invalid("range high must be greater than low")
		}
	}
	return nil
}

// Rater turns an observed value into a quality rating against a standard
type Rater interface {
	Rate(value float64, std Standard) float64
}

// RaterFunc adapts a function to the Rater interface
type RaterFunc func(value float64, std Standard) float64

// Rate calls f(value, std)
func (f RaterFunc) Rate(value float64, std Standard) float64 {
	return f(value, std)
}

// ProportionalRater rates v / S * 100
var ProportionalRater Rater = RaterFunc(func(v float64, s Standard) float64 {
	return v / s.Permissible * 100
})

// IdealRater rates |v - Vi| / |S - Vi| * 100
var IdealRater Rater = RaterFunc(func(v float64, s Standard) float64 {
	return math.Abs(v-s.Ideal) / math.Abs(s.Permissible-s.Ideal) * 100
})

// RangeRater rates |v - mid| / (high - mid) * 100
var RangeRater Rater = RaterFunc(func(v float64, s Standard) float64 {
	mid := (s.Low + s.High) / 2
	return math.Abs(v-mid) / (s.High - mid) * 100
})

func defaultRaters() map[RatingClass]Rater {
	return map[RatingClass]Rater{
		ClassProportional: ProportionalRater,
		ClassIdeal:        IdealRater,
		ClassRange:        RangeRater,
	}
}

// DeriveWeights computes w_p = K / S_p with K = 1 / Σ 1/S_p for standards
// without an explicit weight. Explicit weights are kept as given.
func DeriveWeights(standards []Standard) map[string]float64 {
	weights := make(map[string]float64, len(standards))
	invSum := 0.0
	for _, s := range standards {
		if s.Weight == 0 {
			invSum += 1 / s.Permissible
		}
	}
	k := 0.0
	if invSum > 0 {
		k = 1 / invSum
	}
	for _, s := range standards {
		if s.Weight > 0 {
			weights[s.Parameter] = s.Weight
			continue
		}
		weights[s.Parameter] = k / s.Permissible
	}
	return weights
}
