package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"wqcli/internal/config"
	apperrors "wqcli/internal/errors"
	"wqcli/internal/quality"
)

// Renderer draws PNG charts of a fixed size
type Renderer struct {
	paths  *config.Paths
	width  int
	height int
	logger *slog.Logger
}

// NewRenderer creates a renderer. Non-positive sizes fall back to the defaults.
func NewRenderer(paths *config.Paths, width, height int, logger *slog.Logger) *Renderer {
	if width <= 0 {
		width = config.DefaultChartWidth
	}
	if height <= 0 {
		height = config.DefaultChartHeight
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{paths: paths, width: width, height: height, logger: logger}
}

// ControlChart draws the X-bar chart above the R chart of one parameter.
// labels name the subgroups on the x axis; missing labels fall back to the subgroup index.
func (r *Renderer) ControlChart(w io.Writer, c quality.ControlChart, labels []string) error {
	n := len(c.Subgroups)
	if n == 0 {
		return apperrors.NewAppValidationError(fmt.Sprintf("parameter %q: no subgroups to chart", c.Parameter))
	}
	xs := positions(n)
	means := quality.Means(c.Subgroups)
	ranges := quality.Ranges(c.Subgroups)
	axis := indexAxis("Subgroup", labels, n)

	top := gochart.Chart{
		Title:      fmt.Sprintf("X-bar Chart: %s", c.Parameter),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      axis,
		YAxis: gochart.YAxis{
			Name:  c.Parameter,
			Range: valueRange(means, []float64{c.XBar.Upper, c.XBar.Lower}),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: "X-bar", XValues: xs, YValues: means, Style: markedLineStyle(colorData)},
			horizontal(fmt.Sprintf("UCL = %.3f", c.XBar.Upper), c.XBar.Upper, n, lineStyle(colorLimit, true)),
			horizontal(fmt.Sprintf("CL = %.3f", c.XBar.Center), c.XBar.Center, n, lineStyle(colorCenter, false)),
			horizontal(fmt.Sprintf("LCL = %.3f", c.XBar.Lower), c.XBar.Lower, n, lineStyle(colorLimit, true)),
		},
	}
	top.Elements = []gochart.Renderable{gochart.Legend(&top)}

	bottom := gochart.Chart{
		Title:      fmt.Sprintf("R Chart: %s", c.Parameter),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      axis,
		YAxis: gochart.YAxis{
			Name:  "Range",
			Range: valueRange(ranges, []float64{c.R.Upper, c.R.Lower}),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: "R", XValues: xs, YValues: ranges, Style: markedLineStyle(colorData)},
			horizontal(fmt.Sprintf("UCL = %.3f", c.R.Upper), c.R.Upper, n, lineStyle(colorLimit, true)),
			horizontal(fmt.Sprintf("CL = %.3f", c.R.Center), c.R.Center, n, lineStyle(colorCenter, false)),
			horizontal(fmt.Sprintf("LCL = %.3f", c.R.Lower), c.R.Lower, n, lineStyle(colorLimit, true)),
		},
	}
	bottom.Elements = []gochart.Renderable{gochart.Legend(&bottom)}

	return stack(w, top, bottom)
}

// WQITrend draws the index of every time point colored by class, with the
// Good/Poor threshold at 100 and the mean index as reference lines.
func (r *Renderer) WQITrend(w io.Writer, results []quality.WQIResult) error {
	n := len(results)
	if n == 0 {
		return apperrors.NewAppValidationError("no WQI results to chart")
	}

	labels := make([]string, n)
	indices := make([]float64, n)
	sum := 0.0
	for i, res := range results {
		labels[i] = res.Label
		indices[i] = res.Index
		sum += res.Index
	}
	avg := sum / float64(n)

	series := make([]gochart.Series, 0, len(quality.WQIClasses)+2)
	for _, class := range quality.WQIClasses {
		var xs, ys []float64
		for i, res := range results {
			if res.Class == class {
				xs = append(xs, float64(i+1))
				ys = append(ys, res.Index)
			}
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Name: string(class), XValues: xs, YValues: ys, Style: pointStyle(classColors[class]),
		})
	}
	series = append(series,
		horizontal("Good/Poor threshold (100)", 100, n, lineStyle(colorThreshold, true)),
		horizontal(fmt.Sprintf("Average WQI = %.2f", avg), avg, n, lineStyle(colorAverage, true)),
	)

	yr := valueRange(indices, []float64{0, 100})
	yr.Min = 0

	ch := gochart.Chart{
		Title:      "Water Quality Index",
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      indexAxis("Date", labels, n),
		YAxis:      gochart.YAxis{Name: "WQI", Range: yr},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.PNG, w)
}

// Contributions draws the per-parameter contributions stacked up to the index
// of every time point. Legend entries carry the mean contribution percentage.
func (r *Renderer) Contributions(w io.Writer, results []quality.WQIResult, summary quality.WQISummary) error {
	n := len(results)
	if n == 0 || len(summary.Parameters) == 0 {
		return apperrors.NewAppValidationError("no WQI contributions to chart")
	}

	labels := make([]string, n)
	cumulative := make([][]float64, len(summary.Parameters))
	running := make([]float64, n)
	for i, res := range results {
		labels[i] = res.Label
	}
	for p, name := range summary.Parameters {
		ys := make([]float64, n)
		for i, res := range results {
			running[i] += res.Contributions[name]
			ys[i] = running[i]
		}
		cumulative[p] = ys
	}

	// Areas fill down to the axis, so the tallest band is drawn first.
	xs := positions(n)
	series := make([]gochart.Series, 0, len(summary.Parameters))
	for p := len(summary.Parameters) - 1; p >= 0; p-- {
		name := summary.Parameters[p]
		col := paletteColor(p)
		series = append(series, gochart.ContinuousSeries{
			Name:    fmt.Sprintf("%s (avg %.1f%%)", name, summary.MeanContributionPercent[name]),
			XValues: xs,
			YValues: cumulative[p],
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 1,
				FillColor:   col.WithAlpha(200),
			},
		})
	}

	yr := valueRange(running)
	yr.Min = 0

	ch := gochart.Chart{
		Title:      "WQI Contribution by Parameter",
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      indexAxis("Date", labels, n),
		YAxis:      gochart.YAxis{Name: "Contribution to WQI", Range: yr},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.PNG, w)
}

// SaveControlChart writes [<prefix>_]xbar_r_<parameter>.png and returns its path
func (r *Renderer) SaveControlChart(prefix string, c quality.ControlChart, labels []string) (string, error) {
	name := joinName(prefix, config.XBarRPrefix, c.Parameter) + ".png"
	return r.save(name, func(w io.Writer) error { return r.ControlChart(w, c, labels) })
}

// SaveWQITrend writes [<prefix>_]WQI_fig_<period>.png and returns its path
func (r *Renderer) SaveWQITrend(prefix, period string, results []quality.WQIResult) (string, error) {
	name := joinName(prefix, config.WQITrendPrefix, period) + ".png"
	return r.save(name, func(w io.Writer) error { return r.WQITrend(w, results) })
}

// SaveContributions writes [<prefix>_]WQI_param_contrib_stacked_<period>.png and returns its path
func (r *Renderer) SaveContributions(prefix string, results []quality.WQIResult, summary quality.WQISummary) (string, error) {
	name := joinName(prefix, config.WQIStackedPrefix, summary.Period) + ".png"
	return r.save(name, func(w io.Writer) error { return r.Contributions(w, results, summary) })
}

func (r *Renderer) save(name string, render func(io.Writer) error) (string, error) {
	path := name
	if r.paths != nil {
		path = r.paths.GetChartPath(name)
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", apperrors.NewStorageError("create charts directory", err).WithContext("file", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", apperrors.NewStorageError("write chart", err).WithContext("file", path)
	}

	r.logger.Debug("chart written", slog.String("path", path), slog.Int("bytes", buf.Len()))
	return path, nil
}

// joinName joins the non-empty parts with underscores
func joinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}

// stack renders charts and places them one above another in a single PNG
func stack(w io.Writer, charts ...gochart.Chart) error {
	panels := make([]image.Image, 0, len(charts))
	width, height := 0, 0
	for _, ch := range charts {
		var buf bytes.Buffer
		if err := ch.Render(gochart.PNG, &buf); err != nil {
			return err
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return err
		}
		b := img.Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
		panels = append(panels, img)
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, img := range panels {
		b := img.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}
	return png.Encode(w, out)
}
