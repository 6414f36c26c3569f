// Package host binds user events to the scatter renderer.
//
// A [Host] owns the current input value and a [scatter.Surface]. It renders
//
//   - immediately when the input changes ([Host.SetInput]),
//   - once on startup when the input is pre-filled ([Host.Load]),
//   - after resize events have settled ([Host.Resize]), using the input
//     value current at settle time.
//
// Renders are serialized; each one replaces the surface content.
package host

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typescatter/pkg/debounce"
	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/printer"
	"github.com/matzehuels/typescatter/pkg/scatter"
	"github.com/matzehuels/typescatter/pkg/scatter/sink"
)

// Host wires input, resize and print triggers to a renderer and surface.
type Host struct {
	renderer *scatter.Renderer
	surface  scatter.Surface
	printer  *printer.Printer
	logger   *log.Logger
	ctx      context.Context
	onRender func(*scatter.Composition)

	resizeDelay time.Duration
	debounceOpt []debounce.Option
	resize      *debounce.Debouncer

	mu    sync.Mutex
	input string
	last  *scatter.Composition
}

// Option configures a Host.
type Option func(*Host)

// WithPrinter enables [Host.Print].
func WithPrinter(p *printer.Printer) Option { return func(h *Host) { h.printer = p } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(h *Host) { h.logger = l } }

// WithContext sets the context used for renders started by resize timers.
func WithContext(ctx context.Context) Option { return func(h *Host) { h.ctx = ctx } }

// WithResizeDelay overrides the resize settle time (default 180ms).
func WithResizeDelay(d time.Duration, opts ...debounce.Option) Option {
	return func(h *Host) {
		h.resizeDelay = d
		h.debounceOpt = opts
	}
}

// OnRender registers fn to be called after every render with the new
// composition (nil when the surface was cleared).
func OnRender(fn func(*scatter.Composition)) Option {
	return func(h *Host) { h.onRender = fn }
}

// New returns a Host rendering with r into s.
func New(r *scatter.Renderer, s scatter.Surface, opts ...Option) *Host {
	h := &Host{
		renderer:    r,
		surface:     s,
		logger:      log.New(io.Discard),
		ctx:         context.Background(),
		resizeDelay: debounce.DefaultDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.resize = debounce.New(h.resizeDelay, h.settle, h.debounceOpt...)
	return h
}

// Load sets the initial input value and renders only when it is non-blank.
func (h *Host) Load(ctx context.Context, initial string) {
	h.mu.Lock()
	h.input = initial
	if strings.TrimSpace(initial) == "" {
		h.mu.Unlock()
		return
	}
	c := h.renderLocked(ctx)
	h.mu.Unlock()
	h.notify(c)
}

// SetInput stores the new input value and re-renders immediately.
func (h *Host) SetInput(ctx context.Context, text string) {
	h.mu.Lock()
	h.input = text
	c := h.renderLocked(ctx)
	h.mu.Unlock()
	h.notify(c)
}

// Resize schedules a re-render once resize events stop arriving.
func (h *Host) Resize() {
	h.resize.Trigger()
}

func (h *Host) settle() {
	h.mu.Lock()
	h.logger.Debug("resize settled", "width", h.surface.Width())
	c := h.renderLocked(h.ctx)
	h.mu.Unlock()
	h.notify(c)
}

func (h *Host) renderLocked(ctx context.Context) *scatter.Composition {
	h.last = h.renderer.Render(ctx, h.surface, h.input)
	return h.last
}

func (h *Host) notify(c *scatter.Composition) {
	if h.onRender != nil {
		h.onRender(c)
	}
}

// Input returns the current input value.
func (h *Host) Input() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.input
}

// Composition returns the most recent composition, nil when cleared.
func (h *Host) Composition() *scatter.Composition {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Print exports the current block through the configured printer.
func (h *Host) Print(ctx context.Context) error {
	if h.printer == nil {
		return errors.New(errors.ErrCodeUnsupported, "printing is not configured")
	}
	markup := sink.RenderHTML(h.Composition())
	return h.printer.Print(ctx, markup)
}

// Close cancels a pending resize render.
func (h *Host) Close() {
	h.resize.Stop()
}
