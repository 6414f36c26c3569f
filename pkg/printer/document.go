// Package printer exports a composition block for printing.
//
// [Document] wraps block markup in a minimal standalone HTML page.
// [Printer] opens a print window through an [Opener], writes the document
// and, after a short delay that lets the page lay out, focuses the window and
// requests printing. When the window cannot be created the user gets exactly
// one alert through a [Notifier] and nothing is written.
package printer

import (
	"bytes"
	"fmt"
	"time"
)

const (
	docHead = `<!doctype html><html><head><meta charset="utf-8">` +
		`<meta name="viewport" content="width=device-width,initial-scale=1">` +
		`<title>Print</title>` +
		`<style>body{margin:0;font-family:Helvetica,Arial,sans-serif;color:#000} .print-canvas{padding:8mm}</style>` +
		`</head><body><div class="print-canvas">`
)

// DocOption configures [Document].
type DocOption func(*docOptions)

type docOptions struct {
	autoPrint bool
	delay     time.Duration
}

// WithAutoPrint embeds a script that focuses the page and opens the print
// dialog delay after it has loaded. Use it when the document is handed to a
// browser that the process cannot drive directly.
func WithAutoPrint(delay time.Duration) DocOption {
	return func(o *docOptions) {
		o.autoPrint = true
		o.delay = max(0, delay)
	}
}

// Document returns a standalone print document containing markup verbatim.
func Document(markup []byte, opts ...DocOption) []byte {
	o := docOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	var buf bytes.Buffer
	buf.Grow(len(docHead) + len(markup) + 160)
	buf.WriteString(docHead)
	buf.Write(markup)
	buf.WriteString(`</div>`)
	if o.autoPrint {
		fmt.Fprintf(&buf,
			`<script>window.addEventListener('load',function(){setTimeout(function(){window.focus();window.print()},%d)})</script>`,
			o.delay.Milliseconds())
	}
	buf.WriteString(`</body></html>`)
	return buf.Bytes()
}
