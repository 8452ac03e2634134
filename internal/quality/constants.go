package quality

// Supported subgroup sizes for the control-chart constants table
const (
	MinSubgroupSize = 2
	MaxSubgroupSize = 10
)

// ChartConstants holds the X-bar/R chart factors for one subgroup size
type ChartConstants struct {
	A2 float64 `json:"a2"`
	D3 float64 `json:"d3"`
	D4 float64 `json:"d4"`
	D2 float64 `json:"d2"`
}

// indexed by n - MinSubgroupSize
var chartConstants = [...]ChartConstants{
	{A2: 1.880, D3: 0, D4: 3.267, D2: 1.128},
	{A2: 1.023, D3: 0, D4: 2.574, D2: 1.693},
	{A2: 0.729, D3: 0, D4: 2.282, D2: 2.059},
	{A2: 0.577, D3: 0, D4: 2.114, D2: 2.326},
	{A2: 0.483, D3: 0, D4: 2.004, D2: 2.534},
	{A2: 0.419, D3: 0.076, D4: 1.924, D2: 2.704},
	{A2: 0.373, D3: 0.136, D4: 1.864, D2: 2.847},
	{A2: 0.337, D3: 0.184, D4: 1.816, D2: 2.970},
	{A2: 0.308, D3: 0.223, D4: 1.777, D2: 3.078},
}

// ConstantsFor returns the tabulated constants for subgroup size n.
// Sizes outside the table are not extrapolated.
func ConstantsFor(n int) (ChartConstants, bool) {
	if n < MinSubgroupSize || n > MaxSubgroupSize {
		return ChartConstants{}, false
	}
	return chartConstants[n-MinSubgroupSize], true
}
