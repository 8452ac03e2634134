// Package chart renders analysis results as PNG images with go-chart.
//
// A Renderer draws the X-bar/R chart pair of a parameter, the WQI trend with its
// classification threshold, and the stacked per-parameter WQI contributions.
// Each drawing function writes to an io.Writer; the Save* methods place the image
// in the configured charts directory.
package chart
