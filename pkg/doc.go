// Package pkg holds the typescatter libraries.
//
// # Overview
//
// Typescatter sets free-form text as a scattered typographic composition.
// Every word is drawn with its own family, weight, size, offset, scale, stack
// order and opacity, and lines overlap vertically. Faint decorative shapes may
// sit behind and in front of the words.
//
// The data flow for one render:
//
//	text + container width
//	         ↓
//	    [scatter] (tokenize, measure with [measure], place words and shapes)
//	         ↓
//	    scatter.Composition
//	         ↓
//	    [scatter/sink] (HTML, SVG, JSON, PNG, PDF)
//	         ↓
//	    [printer] (standalone print document, window, delayed print)
//
// # Quick Start
//
//	r := scatter.New(scatter.WithSeed(42))
//	comp := r.Layout("hello scattered world", 800)
//	svg := sink.RenderSVG(comp, sink.WithBackground("#fff"))
//
// # Main Packages
//
// [scatter] - The layout renderer. Randomness and measurement are injected
// so tests can pin exact layouts.
//
// [scatter/sink] - Output formats for a composition.
//
// [shapes] - Decorative templates parsed from an SVG document, loaded once
// into a process-wide registry.
//
// [measure] and [fonts] - Natural word box sizes from real font metrics.
//
// [host] - Binds input changes, initial load, debounced resize and print
// requests to a renderer and surface.
//
// [printer] - Print export with popup-blocked handling.
//
// # Infrastructure
//
// [config] - TOML configuration. [cache] - file, Redis or no-op byte cache for
// fetched assets. [httputil] - retrying, cached fetches. [debounce] -
// single-slot timers. [errors] - coded errors. [observability] - optional
// hooks.
//
// [scatter]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/scatter
// [scatter/sink]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/scatter/sink
// [shapes]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/shapes
// [measure]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/measure
// [fonts]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/fonts
// [host]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/host
// [printer]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/printer
// [config]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/httputil
// [debounce]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/debounce
// [errors]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/typescatter/pkg/observability
package pkg
