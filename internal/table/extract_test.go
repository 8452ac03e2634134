package table

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "wqcli/internal/errors"
)

func TestSamples(t *testing.T) {
	tbl, err := ReadCSV("in.csv", strings.NewReader(datedCSV))
	require.NoError(t, err)

	samples, err := tbl.Samples("")
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), samples[1].Date)
	assert.Equal(t, "15-03-2024", samples[1].Label)
	assert.Equal(t, map[string]float64{"DBO5": 5.1, "MES": 22.5, "pH": 7.9}, samples[1].Values)
}

func TestSamples_EmptyCellIsOmitted(t *testing.T) {
	tbl, err := ReadCSV("in.csv", strings.NewReader("Date,A,B\n01-01-2024,1,\n"))
	require.NoError(t, err)

	samples, err := tbl.Samples("")
	require.NoError(t, err)
	_, ok := samples[0].Values["B"]
	assert.False(t, ok)
}

func TestSamples_BadDate(t *testing.T) {
	tbl, err := ReadCSV("in.csv", strings.NewReader("Date,A\n2024-01-31,1\n"))
	require.NoError(t, err)

	_, err = tbl.Samples("")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParsing)
	assert.Contains(t, err.Error(), "2024-01-31")

	samples, err := tbl.Samples("2006-01-02")
	require.NoError(t, err)
	assert.Equal(t, 31, samples[0].Date.Day())
}

const subgroupCSV = `Subgroup,DCO,MES
S1,10,4
S1,12,5
S1,11,6
S2,9,4
S2,10,4
S2,14,5
`

func TestSubgroupedSeries(t *testing.T) {
	tbl, err := ReadCSV("sg.csv", strings.NewReader(subgroupCSV))
	require.NoError(t, err)

	s, err := tbl.SubgroupedSeries("DCO")
	require.NoError(t, err)
	assert.Equal(t, 3, s.SubgroupSize())
	assert.Equal(t, []float64{10, 12, 11, 9, 10, 14}, s.Observations())
	assert.Equal(t, []string{"S1", "S2"}, tbl.SubgroupLabels())
}

func TestSubgroupedSeries_UnequalSizes(t *testing.T) {
	tbl, err := ReadCSV("sg.csv", strings.NewReader("Subgroup,DCO\nS1,1\nS1,2\nS2,3\n"))
	require.NoError(t, err)

	_, err = tbl.SubgroupedSeries("DCO")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSubgroup)
	assert.Contains(t, err.Error(), `subgroup "S2" has 1 observations, expected 2`)
}

func TestSeries_KeyColumnIsAParameter(t *testing.T) {
	tbl, err := ReadCSV("pp.csv", strings.NewReader("Temp,Cond\n20.5,410\n21,395\n19.8,402\n"))
	require.NoError(t, err)

	s, err := tbl.Series("Temp")
	require.NoError(t, err)
	assert.Equal(t, []float64{20.5, 21, 19.8}, s.Observations())
	assert.False(t, s.IsGrouped())
}

func TestSubgroupedSeries_KeyReappears(t *testing.T) {
	tbl, err := ReadCSV("sg.csv", strings.NewReader("Subgroup,DCO\nS1,1\nS1,2\nS2,3\nS2,4\nS1,5\nS1,6\n"))
	require.NoError(t, err)

	_, err = tbl.SubgroupedSeries("DCO")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSubgroup)
	assert.Contains(t, err.Error(), `subgroup "S1" reappears after subgroup "S2"`)
}

func TestSeries_RaggedColumns(t *testing.T) {
	tbl, err := ReadCSV("pp.csv", strings.NewReader("MES,DCO\n10,50\n12,52\n11,\n13,\n"))
	require.NoError(t, err)

	tests := []struct {
		column string
		want   []float64
	}{
		{"MES", []float64{10, 12, 11, 13}},
		{"DCO", []float64{50, 52}},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			s, err := tbl.Series(tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Observations())
			assert.Equal(t, len(tt.want), s.Len())
		})
	}
}
