package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"wqcli/internal/quality"
)

var (
	colorData      = drawing.ColorFromHex("1f77b4")
	colorLimit     = drawing.ColorFromHex("d62728")
	colorCenter    = drawing.ColorFromHex("2ca02c")
	colorThreshold = drawing.ColorFromHex("d62728")
	colorAverage   = drawing.ColorFromHex("7f7f7f")
)

// classColors follows the usual green-to-red reading of the WQI classes
var classColors = map[quality.WQIClass]drawing.Color{
	quality.ClassExcellent:  drawing.ColorFromHex("2ca02c"),
	quality.ClassGood:       drawing.ColorFromHex("1f77b4"),
	quality.ClassPoor:       drawing.ColorFromHex("ff7f0e"),
	quality.ClassUnsuitable: drawing.ColorFromHex("d62728"),
}

// palette colors stacked contribution areas in parameter order
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// pointStyle renders points only, without a connecting line
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, dashed bool) gochart.Style {
	s := gochart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
	}
	if dashed {
		s.StrokeDashArray = []float64{5, 3}
	}
	return s
}

func markedLineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
		DotColor:    col,
		DotWidth:    3,
	}
}

func paletteColor(i int) drawing.Color {
	return palette[i%len(palette)]
}
