package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	e := equalWeightEngine(t)
	results, err := e.Compute([]Sample{
		{Date: day(5), Values: map[string]float64{"A": 10, "B": 10}},
		{Date: day(12), Values: map[string]float64{"A": 2, "B": 4}},
	})
	require.NoError(t, err)

	s := Summarize(results, e.Parameters())

	assert.Equal(t, "March_2024", s.Period)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 47.5, s.MeanIndex, 1e-9)
	assert.Equal(t, ClassExcellent, s.MeanClass())
	assert.InDelta(t, (200.0/3+50)/2, s.MeanContributionPercent["A"], 1e-9)
	assert.InDelta(t, (100.0/3+50)/2, s.MeanContributionPercent["B"], 1e-9)
	assert.Equal(t, map[WQIClass]int{
		ClassExcellent:  1,
		ClassGood:       1,
		ClassPoor:       0,
		ClassUnsuitable: 0,
	}, s.ClassCounts)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, []string{"A"})
	assert.Equal(t, "undated", s.Period)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.MeanIndex)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "January_2023", PeriodLabel(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)))
}
