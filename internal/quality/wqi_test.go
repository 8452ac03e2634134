package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "wqcli/internal/errors"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func equalWeightEngine(t *testing.T) *WQIEngine {
	t.Helper()
	e, err := NewWQIEngine([]Standard{
		{Parameter: "A", Permissible: 10, Weight: 1},
		{Parameter: "B", Permissible: 20, Weight: 1},
	})
	require.NoError(t, err)
	return e
}

func TestWQIEngine_TwoParameterExample(t *testing.T) {
	e := equalWeightEngine(t)

	res, err := e.ComputeAt(Sample{Date: day(5), Values: map[string]float64{"A": 10, "B": 10}})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, res.Ratings["A"], 1e-12)
	assert.InDelta(t, 50.0, res.Ratings["B"], 1e-12)
	assert.InDelta(t, 50.0, res.Contributions["A"], 1e-12)
	assert.InDelta(t, 25.0, res.Contributions["B"], 1e-12)
	assert.InDelta(t, 75.0, res.Index, 1e-12)
	assert.Equal(t, ClassGood, res.Class)
	assert.Equal(t, "05-03-2024", res.Label)

	assert.InDelta(t, 200.0/3, res.ContributionPercent["A"], 1e-9)
	assert.InDelta(t, 100.0/3, res.ContributionPercent["B"], 1e-9)
}

func TestWQIEngine_ContributionsSumToIndex(t *testing.T) {
	e, err := NewWQIEngine([]Standard{
		{Parameter: "DBO5", Permissible: 7},
		{Parameter: "MES", Permissible: 35},
		{Parameter: "pH", Permissible: 8.5, Class: ClassIdeal, Ideal: 7},
		{Parameter: "T", Permissible: 30, Class: ClassRange, Low: 10, High: 25},
	})
	require.NoError(t, err)

	samples := []Sample{
		{Date: day(1), Values: map[string]float64{"DBO5": 3.1, "MES": 40.2, "pH": 7.9, "T": 19}},
		{Date: day(2), Values: map[string]float64{"DBO5": 12.7, "MES": 3, "pH": 6.4, "T": 27.5}},
	}
	results, err := e.Compute(samples)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		sum := 0.0
		for _, c := range r.Contributions {
			sum += c
		}
		assert.InDelta(t, r.Index, sum, 1e-9)
	}
}

func TestDeriveWeights(t *testing.T) {
	w := DeriveWeights([]Standard{
		{Parameter: "A", Permissible: 10},
		{Parameter: "B", Permissible: 20},
	})
	assert.InDelta(t, 2.0/3, w["A"], 1e-12)
	assert.InDelta(t, 1.0/3, w["B"], 1e-12)
	assert.InDelta(t, 1.0, w["A"]+w["B"], 1e-12)

	mixed := DeriveWeights([]Standard{
		{Parameter: "A", Permissible: 10},
		{Parameter: "B", Permissible: 20, Weight: 0.5},
	})
	assert.InDelta(t, 1.0, mixed["A"], 1e-12)
	assert.InDelta(t, 0.5, mixed["B"], 1e-12)
}

func TestRaters(t *testing.T) {
	tests := []struct {
		name  string
		rater Rater
		std   Standard
		value float64
		want  float64
	}{
		{"proportional", ProportionalRater, Standard{Permissible: 20}, 10, 50},
		{"ideal above", IdealRater, Standard{Permissible: 8.5, Ideal: 7}, 8, 100.0 / 1.5},
		{"ideal below", IdealRater, Standard{Permissible: 8.5, Ideal: 7}, 6, 100.0 / 1.5},
		{"ideal dissolved oxygen", IdealRater, Standard{Permissible: 5, Ideal: 14.6}, 14.6, 0},
		{"range midpoint", RangeRater, Standard{Low: 6.5, High: 8.5}, 7.5, 0},
		{"range inside", RangeRater, Standard{Low: 6.5, High: 8.5}, 8, 50},
		{"range edge", RangeRater, Standard{Low: 6.5, High: 8.5}, 6.5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.rater.Rate(tt.value, tt.std), 1e-9)
		})
	}
}

func TestWQIEngine_MissingParameter(t *testing.T) {
	e := equalWeightEngine(t)

	samples := []Sample{
		{Date: day(1), Values: map[string]float64{"A": 1, "B": 2}},
		{Date: day(2), Values: map[string]float64{"A": 1}},
	}
	results, err := e.Compute(samples)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, apperrors.ErrMissingParameter)
	assert.Contains(t, err.Error(), "02-03-2024")
	assert.Contains(t, err.Error(), `"B"`)
}

func TestWQIEngine_UnknownStandard(t *testing.T) {
	std := []Standard{{Parameter: "Coli", Permissible: 100, Class: "log"}}

	_, err := NewWQIEngine(std)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownStandard)

	logRater := RaterFunc(func(v float64, s Standard) float64 { return v / s.Permissible * 10 })
	e, err := NewWQIEngine(std, WithClassRater("log", logRater))
	require.NoError(t, err)

	res, err := e.ComputeAt(Sample{Label: "w1", Values: map[string]float64{"Coli": 50}})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.Index, 1e-12)
}

func TestWQIEngine_Select(t *testing.T) {
	e := equalWeightEngine(t)

	sub, err := e.Select([]string{"B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, sub.Parameters())

	_, err = e.Select([]string{"B", "Zn"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownStandard)
	assert.Contains(t, err.Error(), `"Zn"`)
}

func TestWQIEngine_ParameterRaterOverride(t *testing.T) {
	fixed := RaterFunc(func(float64, Standard) float64 { return 40 })
	e, err := NewWQIEngine([]Standard{
		{Parameter: "A", Permissible: 10, Weight: 1},
		{Parameter: "B", Permissible: 20, Weight: 1},
	}, WithParameterRater("B", fixed))
	require.NoError(t, err)

	res, err := e.ComputeAt(Sample{Label: "t1", Values: map[string]float64{"A": 10, "B": 999}})
	require.NoError(t, err)
	assert.InDelta(t, 40.0, res.Ratings["B"], 1e-12)
	assert.InDelta(t, 70.0, res.Index, 1e-12)
}

func TestNewWQIEngine_InvalidStandards(t *testing.T) {
	tests := []struct {
		name      string
		standards []Standard
	}{
		{"empty", nil},
		{"zero permissible", []Standard{{Parameter: "A"}}},
		{"duplicate", []Standard{{Parameter: "A", Permissible: 1}, {Parameter: "A", Permissible: 2}}},
		{"ideal equals permissible", []Standard{{Parameter: "pH", Permissible: 7, Ideal: 7, Class: ClassIdeal}}},
		{"inverted range", []Standard{{Parameter: "T", Permissible: 30, Low: 25, High: 10, Class: ClassRange}}},
		{"negative weight", []Standard{{Parameter: "A", Permissible: 1, Weight: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWQIEngine(tt.standards)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestWQIEngine_Idempotent(t *testing.T) {
	e := equalWeightEngine(t)
	samples := []Sample{
		{Date: day(1), Values: map[string]float64{"A": 3, "B": 17}},
		{Date: day(2), Values: map[string]float64{"A": 8.2, "B": 1.4}},
	}

	first, err := e.Compute(samples)
	require.NoError(t, err)
	second, err := e.Compute(samples)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		index float64
		want  WQIClass
	}{
		{0, ClassExcellent},
		{49.99, ClassExcellent},
		{50, ClassGood},
		{99.99, ClassGood},
		{100, ClassPoor},
		{199.99, ClassPoor},
		{200, ClassUnsuitable},
		{1500, ClassUnsuitable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.index), "index %v", tt.index)
	}
}

func TestWQIResult_ZeroIndexPercent(t *testing.T) {
	e := equalWeightEngine(t)
	res, err := e.ComputeAt(Sample{Label: "clean", Values: map[string]float64{"A": 0, "B": 0}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Index)
	assert.Equal(t, 0.0, res.ContributionPercent["A"])
}
