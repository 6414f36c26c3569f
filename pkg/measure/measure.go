// Package measure provides the off-surface measurement probe for word boxes.
//
// A [Measurer] hands out short-lived [Probe]s. The renderer acquires one
// probe per render, measures every word's natural (unscaled) box with it and
// closes it afterwards, whether or not the render completed:
//
//	probe := m.Probe()
//	defer probe.Close()
//	w, h := probe.Measure("hello", measure.Style{Family: fonts.Sans, Weight: 400, Size: 24})
//
// [Fonts] measures with real glyph advances and line metrics; [Estimate] is a
// dependency-free heuristic used when no font data is wanted.
package measure

import (
	"unicode/utf8"

	"github.com/matzehuels/typescatter/pkg/fonts"
)

// Style is the typographic style a word is measured at.
type Style struct {
	Family fonts.Family
	Weight int
	Size   float64 // pixels
}

// Measurer creates measurement probes.
type Measurer interface {
	Probe() Probe
}

// Probe measures rendered text boxes. A probe is used by one goroutine and
// must be closed after use.
type Probe interface {
	// Measure returns the natural width and height of text at style st.
	Measure(text string, st Style) (width, height float64)
	// Close releases resources held by the probe.
	Close() error
}

// fallbackLineHeight is the line-height factor used when no metrics exist.
const fallbackLineHeight = 1.1

// Estimate measures with per-family average character widths.
type Estimate struct{}

// Probe returns a stateless estimating probe.
func (Estimate) Probe() Probe { return estimateProbe{} }

type estimateProbe struct{}

func (estimateProbe) Measure(text string, st Style) (float64, float64) {
	return EstimateWidth(text, st), st.Size * fallbackLineHeight
}

func (estimateProbe) Close() error { return nil }

// EstimateWidth approximates the advance width of text at style st.
func EstimateWidth(text string, st Style) float64 {
	ratio := 0.55
	switch st.Family {
	case fonts.Mono:
		ratio = 0.6
	case fonts.Serif:
		ratio = 0.5
	}
	if fonts.Bold(st.Weight) {
		ratio *= 1.06
	}
	return float64(utf8.RuneCountInString(text)) * st.Size * ratio
}
