package chart

import (
	"fmt"
)

// Layout and palette constants.
const (
	Padding = 40.0

	DefaultColor    = "#667eea"
	AxisColor       = "#ddd"
	GridColor       = "#f0f0f0"
	LabelColor      = "#666"
	LegendTextColor = "#333"
	LabelFont       = "12px Arial"

	GridLines    = 5
	MarkerRadius = 4.0
	SeriesWidth  = 2.0

	legendWidth  = 150.0
	legendTop    = 20.0
	legendStep   = 20.0
	legendSwatch = 15.0
)

// Dataset is one plotted series. Data is positionally aligned with Model.Labels.
type Dataset struct {
	Label           string
	Data            []float64
	BorderColor     string
	BackgroundColor string
}

// Model is the chart's input: x labels plus one or more aligned datasets.
type Model struct {
	Labels   []string
	Datasets []Dataset
}

// Options toggles optional chart elements.
type Options struct {
	Legend bool
}

// Size is the drawing surface size in surface units.
type Size struct {
	Width  float64
	Height float64
}

// PlotWidth is the width inside the padding.
func (s Size) PlotWidth() float64 { return s.Width - 2*Padding }

// PlotHeight is the height inside the padding.
func (s Size) PlotHeight() float64 { return s.Height - 2*Padding }

// X returns the x coordinate of label i out of n. n must be at least 2.
func X(i, n int, size Size) float64 {
	return Padding + float64(i)*(size.PlotWidth()/float64(n-1))
}

// Y returns the y coordinate of value v. Values outside 0-100 land outside the plot.
func Y(v float64, size Size) float64 {
	return size.PlotHeight()*(1-v/100) + Padding
}

// Validate reports datasets whose length does not match the labels.
// Empty datasets are not reported; they are simply not drawn.
func Validate(m *Model) []error {
	if m == nil {
		return nil
	}
	var errs []error
	for i, ds := range m.Datasets {
		if len(ds.Data) == 0 || len(ds.Data) == len(m.Labels) {
			continue
		}
		errs = append(errs, fmt.Errorf("dataset %d %q has %d points for %d labels, skipping",
			i, datasetLabel(ds, i), len(ds.Data), len(m.Labels)))
	}
	return errs
}

func datasetLabel(ds Dataset, i int) string {
	if ds.Label != "" {
		return ds.Label
	}
	return fmt.Sprintf("Dataset %d", i+1)
}

func strokeColor(ds Dataset) string {
	if ds.BorderColor != "" {
		return ds.BorderColor
	}
	return DefaultColor
}

func fillColor(ds Dataset) string {
	if ds.BackgroundColor != "" {
		return ds.BackgroundColor
	}
	return DefaultColor
}
