package sink

import (
	"encoding/json"

	"github.com/matzehuels/typescatter/pkg/scatter"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed      uint64
	markup    bool
	indent    bool
	templates *bool
}

// WithJSONSeed records the seed the composition was drawn with, so the same
// layout can be reproduced with scatter.WithSeed.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONMarkup embeds the block's HTML markup (see [RenderHTML]).
func WithJSONMarkup() JSONOption { return func(r *jsonRenderer) { r.markup = true } }

// WithJSONTemplates records whether the layout drew from a non-empty shape
// library, so a later request can repeat the same random draws.
func WithJSONTemplates(present bool) JSONOption {
	return func(r *jsonRenderer) { r.templates = &present }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// Output is the JSON document produced by [RenderJSON].
type Output struct {
	ID        string      `json:"id"`
	Width     float64     `json:"width"`
	MinHeight float64     `json:"min_height"`
	MarginTop float64     `json:"margin_top"`
	Seed      uint64      `json:"seed,omitempty"`
	Words     []JSONWord  `json:"words"`
	Shapes    []JSONShape `json:"shapes,omitempty"`
	Templates *bool       `json:"templates,omitempty"`
	HTML      string      `json:"html,omitempty"`
}

type JSONWord struct {
	Text       string  `json:"text"`
	Family     string  `json:"family"`
	Weight     int     `json:"weight"`
	FontSize   float64 `json:"font_size"`
	Left       float64 `json:"left"`
	Top        float64 `json:"top"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Z          int     `json:"z"`
	Opacity    float64 `json:"opacity"`
}

type JSONShape struct {
	Layer    string  `json:"layer"`
	Template string  `json:"template"`
	Top      float64 `json:"top"`
	LeftPct  float64 `json:"left_pct"`
	WidthPct float64 `json:"width_pct"`
	Opacity  float64 `json:"opacity"`
	Z        int     `json:"z"`
}

// RenderJSON exports c. A nil composition exports an empty word list.
func RenderJSON(c *scatter.Composition, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := Output{Seed: r.seed, Templates: r.templates, Words: []JSONWord{}}
	if c != nil {
		out.ID = c.ID
		out.Width = c.Width
		out.MinHeight = c.MinHeight
		out.MarginTop = c.MarginTop
		for _, w := range c.Words {
			out.Words = append(out.Words, JSONWord{
				Text:       w.Text,
				Family:     string(w.Family),
				Weight:     w.Weight,
				FontSize:   w.FontSize,
				Left:       w.Left,
				Top:        w.Top,
				Width:      w.Width,
				Height:     w.Height,
				Scale:      w.Scale,
				TranslateX: w.TranslateX,
				TranslateY: w.TranslateY,
				Z:          w.Z,
				Opacity:    w.Opacity,
			})
		}
		for _, s := range c.Shapes() {
			out.Shapes = append(out.Shapes, JSONShape{
				Layer:    s.Layer.String(),
				Template: s.Template.Name,
				Top:      s.Top,
				LeftPct:  s.LeftPct,
				WidthPct: s.WidthPct,
				Opacity:  s.Opacity,
				Z:        s.Z,
			})
		}
		if r.markup {
			out.HTML = string(RenderHTML(c))
		}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
