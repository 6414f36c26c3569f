// Package scatter lays out free-form text as a scattered typographic block.
//
// # Overview
//
// Every whitespace-delimited word becomes a [Word] box with a randomly chosen
// font family, weight and pixel size. Words are stacked top to bottom along
// a running cursor, shifted horizontally at random, allowed to overlap their
// predecessor, scaled (never rotated) and clamped so that no word crosses
// the right edge of the container. Up to two decorative shapes from a
// [shapes.Library] are placed behind and in front of the text.
//
// The result is a [Composition]: a plain value describing the block, ready
// for one of the sinks in [sink] (HTML, SVG, JSON, PNG, PDF).
//
// # Rendering
//
// [Renderer.Render] drives a [Surface]: it clears the surface, reads its
// current width, lays out the text and mounts the new composition. Blank
// input leaves the surface empty. Nothing is kept between renders; each call
// starts from scratch with fresh randomness.
//
//	r := scatter.New(
//	    scatter.WithMeasurer(measure.NewFonts(nil)),
//	    scatter.WithShapes(shapes.Default()),
//	)
//	surface := scatter.NewMemorySurface(800)
//	r.Render(ctx, surface, "hello world")
//
// # Randomness
//
// All random choices are drawn from a [Source]. The default is the shared,
// unseeded generator of math/rand/v2. [WithSeed] gives reproducible output,
// and tests inject fixed sequences.
//
// # Invariants
//
//   - word count equals the number of non-empty whitespace tokens
//   - Left + VisualWidth <= width - 6 for every word
//   - MinHeight >= 48 and MinHeight >= Cursor + 8
//   - the cursor never decreases from one word to the next
//
// [sink]: github.com/matzehuels/typescatter/pkg/scatter/sink
package scatter
