// Package sink provides output formats for scatter compositions.
//
// # Overview
//
// A "sink" turns a computed [scatter.Composition] into bytes. This package
// provides renderers for:
//
//   - HTML: the block markup a browser host mounts (and prints)
//   - SVG: a standalone vector image of the block
//   - JSON: the placement data for external tools
//   - PNG: a raster image drawn natively with fogleman/gg
//   - PDF: print-ready output (requires rsvg-convert)
//
// # HTML Output
//
// [RenderHTML] produces one relatively positioned block element. Words are
// absolutely positioned children carrying their font, offset, transform,
// stacking order and opacity as inline styles; decorative shapes are wrapped
// in percentage-sized containers holding an inline SVG with the asset's
// viewBox. Transforms originate at the word's top-left corner, so a word's
// visual right edge is Left + Width*Scale.
//
//	html := sink.RenderHTML(c)
//
// # SVG, PNG and PDF Output
//
// [RenderSVG] draws the same block into a width x min-height viewport,
// painting children in stacking order. [RenderPNG] rasterizes the words with
// the font set used for measurement; shapes are SVG fragments and only
// appear when the PNG is produced through rsvg-convert ([WithRSVG]).
// [RenderPDF] always converts the SVG through rsvg-convert:
//
//	pdf, err := sink.RenderPDF(c)
//	png, err := sink.RenderPNG(c, sink.WithScale(2))
//
// rsvg-convert comes with librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [scatter.Composition]: github.com/matzehuels/typescatter/pkg/scatter.Composition
package sink
