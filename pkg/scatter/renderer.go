package scatter

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/typescatter/pkg/fonts"
	"github.com/matzehuels/typescatter/pkg/measure"
	"github.com/matzehuels/typescatter/pkg/observability"
	"github.com/matzehuels/typescatter/pkg/shapes"
)

// Layout constants in pixels unless noted.
const (
	startCursor    = 6.0
	measureMargin  = 12.0 // measured width is capped at width - 12
	leftMargin     = 8.0  // maxLeft = width - wordWidth - 8
	rightMargin    = 6.0  // containment: left + visualWidth <= width - 6
	cursorGap      = 6.0
	heightPadding  = 8.0
	minBlockHeight = 48.0
	blockMarginTop = -8.0

	backgroundChance = 0.6
	foregroundChance = 0.45
	backgroundZ      = 1
	foregroundZ      = 50
)

// LibrarySource supplies the decorative templates for a render.
// *shapes.Registry satisfies it.
type LibrarySource interface {
	Library() *shapes.Library
}

// Renderer lays out text. The zero value is not usable; call [New].
type Renderer struct {
	measurer measure.Measurer
	shapes   LibrarySource
	source   Source
	newID    func() string
	logger   *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMeasurer sets the measurement backend (default [measure.Estimate]).
func WithMeasurer(m measure.Measurer) Option { return func(r *Renderer) { r.measurer = m } }

// WithShapes sets where decorative templates come from (default: none).
func WithShapes(s LibrarySource) Option { return func(r *Renderer) { r.shapes = s } }

// WithSource sets the randomness source.
func WithSource(s Source) Option { return func(r *Renderer) { r.source = s } }

// WithSeed makes layouts reproducible. The seeded renderer must not be
// shared between goroutines.
func WithSeed(seed uint64) Option {
	return func(r *Renderer) { r.source = NewSeededSource(seed) }
}

// WithIDFunc overrides composition ID generation (default: random UUID).
func WithIDFunc(fn func() string) Option { return func(r *Renderer) { r.newID = fn } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		measurer: measure.Estimate{},
		source:   globalSource{},
		newID:    uuid.NewString,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render replaces the surface content with a fresh composition of text and
// returns it. Blank text clears the surface and returns nil.
func (r *Renderer) Render(ctx context.Context, s Surface, text string) *Composition {
	s.Clear()

	hooks := observability.Render()
	tokens := len(strings.Fields(text))
	if tokens == 0 {
		hooks.OnRenderCleared(ctx)
		return nil
	}
	hooks.OnRenderStart(ctx, tokens)

	start := time.Now()
	comp := r.Layout(text, s.Width())
	s.Mount(comp)

	elapsed := time.Since(start)
	hooks.OnRenderComplete(ctx, len(comp.Words), comp.MinHeight, elapsed)
	r.logger.Debug("rendered composition",
		"id", comp.ID,
		"words", len(comp.Words),
		"width", comp.Width,
		"height", comp.MinHeight,
		"duration", elapsed)
	return comp
}

// Layout computes the composition for text at the given container width
// without touching any surface. It returns nil for blank text.
func (r *Renderer) Layout(text string, width float64) *Composition {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	d := draw{src: r.source}
	lib := r.library()

	comp := &Composition{
		ID:        r.newID(),
		Width:     width,
		Words:     make([]Word, 0, len(words)),
		MarginTop: blockMarginTop,
	}

	if lib.Len() > 0 && d.chance(backgroundChance) {
		comp.Background = placeBackground(d, lib)
	}

	probe := r.measurer.Probe()
	defer probe.Close()

	cursor := startCursor
	for _, text := range words {
		var w Word
		w, cursor = placeWord(d, probe, text, width, cursor)
		comp.Words = append(comp.Words, w)
	}

	if lib.Len() > 0 && d.chance(foregroundChance) {
		comp.Foreground = placeForeground(d, lib, cursor)
	}

	comp.Cursor = cursor
	comp.MinHeight = max(math.Ceil(cursor+heightPadding), minBlockHeight)
	return comp
}

func (r *Renderer) library() *shapes.Library {
	if r.shapes == nil {
		return shapes.Empty
	}
	if lib := r.shapes.Library(); lib != nil {
		return lib
	}
	return shapes.Empty
}

// placeWord positions one word and returns it with the advanced cursor.
func placeWord(d draw, probe measure.Probe, text string, width, cursor float64) (Word, float64) {
	st := measure.Style{
		Family: fonts.Families[d.index(len(fonts.Families))],
		Weight: fonts.Weights[d.index(len(fonts.Weights))],
		Size:   math.Round(d.between(14, 44)),
	}

	mw, h := probe.Measure(text, st)
	if h <= 0 {
		h = st.Size * 1.1
	}
	w := max(0, min(mw, width-measureMargin))

	maxLeft := max(0, width-w-leftMargin)
	left := math.Round(d.between(0, maxLeft))
	left = min(max(0, left+float64(d.intRange(-10, 10))), maxLeft)

	overlapLimit := math.Floor(h * 0.6)
	overlap := math.Round(d.between(-min(overlapLimit, 18), overlapLimit))
	top := cursor + overlap

	scale := round2(d.between(0.86, 1.6))
	tx := float64(d.intRange(-6, 6))
	ty := float64(d.intRange(-8, 10))

	// Flooring keeps the clamped right edge at or below width - 6.
	visualW := min(w*scale, width-leftMargin)
	if left+visualW > width-rightMargin {
		left = max(0, math.Floor(width-visualW-rightMargin))
	}

	z := d.intRange(2, 30)
	opacity := round2(0.8 + d.unit()*0.18)

	word := Word{
		Text:        text,
		Family:      st.Family,
		Weight:      st.Weight,
		FontSize:    st.Size,
		Width:       w,
		Height:      h,
		Left:        left,
		Top:         top,
		Baseline:    cursor,
		Scale:       scale,
		TranslateX:  tx,
		TranslateY:  ty,
		VisualWidth: visualW,
		Z:           z,
		Opacity:     opacity,
	}

	next := max(cursor+math.Round(h*d.between(0.3, 1.0))+cursorGap, top+h+cursorGap)
	return word, next
}

func placeBackground(d draw, lib *shapes.Library) *ShapePlacement {
	t := lib.At(d.intRange(0, lib.Len()-1))
	top := float64(-12 + d.intRange(0, 36))
	frac := d.between(0.18, 0.82)
	return &ShapePlacement{
		Layer:    Background,
		Template: t,
		ViewBox:  lib.ViewBox,
		Top:      top,
		WidthPct: math.Round(frac * 100),
		LeftPct:  math.Round(d.between(0, 100-frac*100)),
		Opacity:  round3(0.03 + d.unit()*0.12),
		Z:        backgroundZ,
	}
}

func placeForeground(d draw, lib *shapes.Library, cursor float64) *ShapePlacement {
	t := lib.At(d.intRange(0, lib.Len()-1))
	frac := d.between(0.28, 0.78)
	left := math.Round(d.between(0, 100-frac*100))
	top := math.Round(d.between(-28, min(60, cursor-20)))
	return &ShapePlacement{
		Layer:    Foreground,
		Template: t,
		ViewBox:  lib.ViewBox,
		Top:      top,
		WidthPct: math.Round(frac * 100),
		LeftPct:  left,
		Opacity:  round3(0.02 + d.unit()*0.12),
		Z:        foregroundZ,
	}
}
