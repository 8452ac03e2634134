package quality

import (
	"math"

	apperrors "wqcli/internal/errors"
)

// ControlLimits holds the center line and control limits of one chart.
// Lower <= Center <= Upper always holds.
type ControlLimits struct {
	Center float64 `json:"center"`
	Upper  float64 `json:"upper"`
	Lower  float64 `json:"lower"`
}

// Contains reports whether v lies within the limits, inclusive
func (l ControlLimits) Contains(v float64) bool {
	return v >= l.Lower && v <= l.Upper
}

// ControlChart is the X-bar/R chart of one parameter
type ControlChart struct {
	Parameter    string         `json:"parameter"`
	SubgroupSize int            `json:"subgroup_size"`
	Constants    ChartConstants `json:"constants"`
	GrandMean    float64        `json:"grand_mean"`
	AverageRange float64        `json:"average_range"`
	XBar         ControlLimits  `json:"xbar"`
	R            ControlLimits  `json:"r"`
	Subgroups    []SubgroupStat `json:"subgroups"`
}

// ComputeControlLimits derives X-bar and R chart limits from subgroup statistics
// of size n. Subgroup sizes outside the constants table fail, including n = 1.
func ComputeControlLimits(parameter string, stats []SubgroupStat, n int) (ControlChart, error) {
	c, ok := ConstantsFor(n)
	if !ok {
		return ControlChart{}, apperrors.NewUnsupportedSubgroupSizeError(parameter, n, MinSubgroupSize, MaxSubgroupSize)
	}
	if err := validateSubgroupStats(parameter, stats); err != nil {
		return ControlChart{}, err
	}

	grandMean := mean(Means(stats))
	rBar := mean(Ranges(stats))

	subgroups := make([]SubgroupStat, len(stats))
	copy(subgroups, stats)

	return ControlChart{
		Parameter:    parameter,
		SubgroupSize: n,
		Constants:    c,
		GrandMean:    grandMean,
		AverageRange: rBar,
		XBar: ControlLimits{
			Center: grandMean,
			Upper:  grandMean + c.A2*rBar,
			Lower:  grandMean - c.A2*rBar,
		},
		R: ControlLimits{
			Center: rBar,
			Upper:  c.D4 * rBar,
			Lower:  math.Max(0, c.D3*rBar),
		},
		Subgroups: subgroups,
	}, nil
}

// WithinSigma estimates the within-subgroup standard deviation as R̄/d2(n)
func (c ControlChart) WithinSigma() float64 {
	return c.AverageRange / c.Constants.D2
}

// SampleSize returns the total number of observations behind the chart
func (c ControlChart) SampleSize() int {
	return len(c.Subgroups) * c.SubgroupSize
}
