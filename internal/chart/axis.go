package chart

import (
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// maxTicks bounds the number of labelled x ticks
const maxTicks = 12

// positions returns 1..n as float x values
func positions(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}

// indexAxis labels x positions 1..n with labels, thinning ticks on long series.
// The range is padded by half a step so a single point still has a usable axis.
func indexAxis(name string, labels []string, n int) gochart.XAxis {
	step := 1
	if n > maxTicks {
		step = int(math.Ceil(float64(n) / maxTicks))
	}
	ticks := make([]gochart.Tick, 0, n/step+1)
	for i := 0; i < n; i += step {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		if label == "" {
			label = strconv.Itoa(i + 1)
		}
		ticks = append(ticks, gochart.Tick{Value: float64(i + 1), Label: label})
	}
	return gochart.XAxis{
		Name:  name,
		Range: &gochart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5},
		Ticks: ticks,
	}
}

// valueRange spans all values with a 10% margin. Constant data gets a unit margin.
func valueRange(values ...[]float64) *gochart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// horizontal returns a two-point line at y across n positions
func horizontal(name string, y float64, n int, style gochart.Style) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		Name:    name,
		XValues: []float64{0.5, float64(n) + 0.5},
		YValues: []float64{y, y},
		Style:   style,
	}
}
