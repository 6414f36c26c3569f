package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/typescatter/pkg/scatter"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	padding    float64
}

// WithBackground fills the viewport with color (any SVG paint value).
// The default is transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPadding adds a margin in pixels around the block.
func WithPadding(px float64) SVGOption {
	return func(r *svgRenderer) { r.padding = max(0, px) }
}

// RenderSVG renders c as a standalone SVG document sized to the block.
// Children are painted in stacking order. A nil composition yields an
// empty 0x0 document.
func RenderSVG(c *scatter.Composition, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if c == nil {
		buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="0" height="0"></svg>` + "\n")
		return buf.Bytes()
	}

	width := c.Width + 2*r.padding
	height := c.MinHeight + 2*r.padding
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(width), num(height), num(width), num(height))
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}
	if r.padding > 0 {
		fmt.Fprintf(&buf, `  <g transform="translate(%s %s)">`+"\n", num(r.padding), num(r.padding))
	}

	for _, it := range paintOrder(c) {
		if it.word != nil {
			writeSVGWord(&buf, *it.word)
		} else {
			writeSVGShape(&buf, c, it.shape)
		}
	}

	if r.padding > 0 {
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeSVGWord(buf *bytes.Buffer, w scatter.Word) {
	fmt.Fprintf(buf, `  <g transform="translate(%s %s) scale(%s)" opacity="%s">`,
		num(w.Left+w.TranslateX), num(w.Top+w.TranslateY), num(w.Scale), num(w.Opacity))
	fmt.Fprintf(buf, `<text x="0" y="%s" font-family="%s" font-weight="%d" font-size="%s">%s</text></g>`+"\n",
		num(ascent(w)), escapeXML(w.Family.CSS()), w.Weight, num(w.FontSize), escapeXML(w.Text))
}

func writeSVGShape(buf *bytes.Buffer, c *scatter.Composition, s *scatter.ShapePlacement) {
	x := c.Width * s.LeftPct / 100
	w := c.Width * s.WidthPct / 100
	h := w * viewBoxAspect(s.ViewBox)
	fmt.Fprintf(buf, `  <svg class="shape %s" x="%s" y="%s" width="%s" height="%s" viewBox="%s" opacity="%s" overflow="visible">%s</svg>`+"\n",
		s.Layer, num(x), num(s.Top), num(w), num(h), escapeXML(s.ViewBox), num(s.Opacity), s.Template.Markup)
}
