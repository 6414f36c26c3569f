package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/fonts"
	"github.com/matzehuels/typescatter/pkg/scatter"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	fonts      *fonts.Set
	background color.Color
	rsvg       bool
	svgOpts    []SVGOption
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithFonts sets the font set used to draw words (default [fonts.Default]).
// Use the set the composition was measured with.
func WithFonts(set *fonts.Set) PNGOption {
	return func(r *pngRenderer) { r.fonts = set }
}

// WithPNGBackground sets the fill color; nil leaves the image transparent.
// The default is white.
func WithPNGBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithRSVG renders through SVG and rsvg-convert instead of drawing natively,
// which includes the decorative shapes. The native renderer draws words only.
func WithRSVG(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.rsvg = true; r.svgOpts = opts }
}

// RenderPNG rasterizes c.
func RenderPNG(c *scatter.Composition, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, fonts: fonts.Default, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}
	if r.rsvg {
		return ToPNG(RenderSVG(c, r.svgOpts...), r.scale)
	}

	w := int(math.Ceil(c.Width * r.scale))
	h := int(math.Ceil(c.MinHeight * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidWidth, "empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	if r.background != nil {
		dc.SetColor(r.background)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)

	faces := newFaceCache(r.fonts)
	defer faces.close()

	for _, it := range paintOrder(c) {
		if it.word == nil {
			continue
		}
		wd := *it.word
		face, err := faces.get(wd)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font %s/%d", wd.Family, wd.Weight)
		}
		dc.Push()
		dc.Translate(wd.Left+wd.TranslateX, wd.Top+wd.TranslateY)
		dc.Scale(wd.Scale, wd.Scale)
		dc.SetFontFace(face)
		dc.SetRGBA(0, 0, 0, wd.Opacity)
		dc.DrawString(wd.Text, 0, ascent(wd))
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type fontKey struct {
	family fonts.Family
	weight int
}

type faceKey struct {
	fontKey
	size float64
}

// faceCache parses each font file once and keeps one face per size.
type faceCache struct {
	set   *fonts.Set
	fonts map[fontKey]*truetype.Font
	faces map[faceKey]font.Face
}

func newFaceCache(set *fonts.Set) *faceCache {
	return &faceCache{
		set:   set,
		fonts: make(map[fontKey]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

func (c *faceCache) get(w scatter.Word) (font.Face, error) {
	key := faceKey{fontKey{w.Family, w.Weight}, w.FontSize}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	ft, err := c.font(w.Family, w.Weight)
	if err != nil {
		return nil, err
	}
	f := truetype.NewFace(ft, &truetype.Options{Size: w.FontSize, Hinting: font.HintingNone})
	c.faces[key] = f
	return f, nil
}

func (c *faceCache) font(family fonts.Family, weight int) (*truetype.Font, error) {
	k := fontKey{family, weight}
	if ft, ok := c.fonts[k]; ok {
		return ft, nil
	}
	ft, err := truetype.Parse(c.set.Data(family, weight))
	if err != nil {
		// CFF-flavoured OpenType overrides cannot be rasterized by freetype.
		ft, err = truetype.Parse(fonts.Default.Data(family, weight))
		if err != nil {
			return nil, err
		}
	}
	c.fonts[k] = ft
	return ft, nil
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		f.Close()
	}
}
