package scatter

import (
	"github.com/matzehuels/typescatter/pkg/fonts"
	"github.com/matzehuels/typescatter/pkg/shapes"
)

// Word is one positioned word box. Coordinates are block-local pixels.
type Word struct {
	Text     string
	Family   fonts.Family
	Weight   int
	FontSize float64

	Width  float64 // natural width, clamped to the container
	Height float64 // natural height

	Left     float64
	Top      float64
	Baseline float64 // cursor value the word was placed from

	Scale      float64
	TranslateX float64
	TranslateY float64

	// VisualWidth is Width*Scale, capped at container width - 8.
	VisualWidth float64

	Z       int
	Opacity float64
}

// Right returns the right edge used by the containment invariant.
func (w Word) Right() float64 { return w.Left + w.VisualWidth }

// Layer says whether a shape is drawn behind or in front of the words.
type Layer int

const (
	Background Layer = iota
	Foreground
)

func (l Layer) String() string {
	if l == Foreground {
		return "foreground"
	}
	return "background"
}

// ShapePlacement positions a decorative template inside the block.
// Horizontal values are percentages of the block width.
type ShapePlacement struct {
	Layer    Layer
	Template shapes.Template
	ViewBox  string
	Top      float64
	WidthPct float64
	LeftPct  float64
	Opacity  float64
	Z        int
}

// Composition is the result of one render.
type Composition struct {
	ID    string
	Width float64
	Words []Word

	Background *ShapePlacement
	Foreground *ShapePlacement

	Cursor    float64 // final running cursor
	MinHeight float64
	MarginTop float64
}

// Shapes returns the placed shapes, background first.
func (c *Composition) Shapes() []ShapePlacement {
	var out []ShapePlacement
	if c.Background != nil {
		out = append(out, *c.Background)
	}
	if c.Foreground != nil {
		out = append(out, *c.Foreground)
	}
	return out
}

// Children returns the number of elements the block holds.
func (c *Composition) Children() int {
	if c == nil {
		return 0
	}
	return len(c.Words) + len(c.Shapes())
}
