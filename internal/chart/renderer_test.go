package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wqcli/internal/config"
	apperrors "wqcli/internal/errors"
	"wqcli/internal/quality"
)

func testRenderer(t *testing.T) (*Renderer, *config.Paths) {
	t.Helper()
	dir := t.TempDir()
	paths := &config.Paths{OutputDir: dir, ChartsDir: filepath.Join(dir, "charts"), LogsDir: dir}
	return NewRenderer(paths, 640, 320, nil), paths
}

func testControlChart(t *testing.T, stats []quality.SubgroupStat) quality.ControlChart {
	t.Helper()
	c, err := quality.ComputeControlLimits("DCO", stats, 5)
	require.NoError(t, err)
	return c
}

func testWQIResults() ([]quality.WQIResult, quality.WQISummary) {
	results := []quality.WQIResult{
		{
			Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Label: "01-03-2024",
			Index: 45, Class: quality.ClassExcellent,
			Contributions:       map[string]float64{"DCO": 30, "pH": 15},
			ContributionPercent: map[string]float64{"DCO": 66.7, "pH": 33.3},
		},
		{
			Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Label: "02-03-2024",
			Index: 120, Class: quality.ClassUnsuitable,
			Contributions:       map[string]float64{"DCO": 100, "pH": 20},
			ContributionPercent: map[string]float64{"DCO": 83.3, "pH": 16.7},
		},
	}
	return results, quality.Summarize(results, []string{"DCO", "pH"})
}

func TestRenderer_ControlChartStacksPanels(t *testing.T) {
	r, _ := testRenderer(t)
	c := testControlChart(t, []quality.SubgroupStat{
		{Index: 1, Mean: 10, Range: 2},
		{Index: 2, Mean: 11, Range: 1},
		{Index: 3, Mean: 10.2, Range: 3},
	})

	var buf bytes.Buffer
	require.NoError(t, r.ControlChart(&buf, c, []string{"Jan", "Feb", "Mar"}))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 640, cfg.Height)
}

func TestRenderer_ControlChartEdgeCases(t *testing.T) {
	r, _ := testRenderer(t)

	tests := []struct {
		name  string
		stats []quality.SubgroupStat
	}{
		{"single subgroup", []quality.SubgroupStat{{Index: 1, Mean: 5, Range: 1}}},
		{"constant data", []quality.SubgroupStat{{Index: 1, Mean: 7}, {Index: 2, Mean: 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.ControlChart(&buf, testControlChart(t, tt.stats), nil))
			assert.NotZero(t, buf.Len())
		})
	}
}

func TestRenderer_RejectsEmptyInput(t *testing.T) {
	r, _ := testRenderer(t)
	var buf bytes.Buffer

	err := r.ControlChart(&buf, quality.ControlChart{Parameter: "DCO"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = r.WQITrend(&buf, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = r.Contributions(&buf, nil, quality.WQISummary{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRenderer_WQICharts(t *testing.T) {
	r, _ := testRenderer(t)
	results, summary := testWQIResults()

	var trend, stacked bytes.Buffer
	require.NoError(t, r.WQITrend(&trend, results))
	require.NoError(t, r.Contributions(&stacked, results, summary))

	for _, buf := range []*bytes.Buffer{&trend, &stacked} {
		cfg, err := png.DecodeConfig(buf)
		require.NoError(t, err)
		assert.Equal(t, 640, cfg.Width)
		assert.Equal(t, 320, cfg.Height)
	}
}

func TestRenderer_SaveNamesFiles(t *testing.T) {
	r, paths := testRenderer(t)
	results, summary := testWQIResults()
	c := testControlChart(t, []quality.SubgroupStat{
		{Index: 1, Mean: 10, Range: 2},
		{Index: 2, Mean: 11, Range: 1},
	})

	path, err := r.SaveControlChart("plant", c, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.ChartsDir, "plant_xbar_r_DCO.png"), path)

	path, err = r.SaveWQITrend("", summary.Period, results)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.ChartsDir, "WQI_fig_March_2024.png"), path)

	path, err = r.SaveContributions("site", results, summary)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.ChartsDir, "site_WQI_param_contrib_stacked_March_2024.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestNewRenderer_DefaultSize(t *testing.T) {
	r := NewRenderer(nil, 0, -1, nil)
	assert.Equal(t, config.DefaultChartWidth, r.width)
	assert.Equal(t, config.DefaultChartHeight, r.height)
}

func TestIndexAxisThinsTicks(t *testing.T) {
	axis := indexAxis("Subgroup", nil, 30)
	assert.LessOrEqual(t, len(axis.Ticks), maxTicks)
	assert.Equal(t, "1", axis.Ticks[0].Label)
	assert.InDelta(t, 0.5, axis.Range.GetMin(), 1e-9)
	assert.InDelta(t, 30.5, axis.Range.GetMax(), 1e-9)
}

func TestValueRange(t *testing.T) {
	r := valueRange([]float64{10, 20})
	assert.InDelta(t, 9, r.Min, 1e-9)
	assert.InDelta(t, 21, r.Max, 1e-9)

	flat := valueRange([]float64{0, 0})
	assert.Less(t, flat.Min, flat.Max)
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "WQI_fig_March_2024", joinName("", "WQI_fig", "March_2024"))
	assert.Equal(t, "plant_xbar_r_pH", joinName("plant", "xbar_r", "pH"))
}
