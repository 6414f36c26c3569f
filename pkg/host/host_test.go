package host

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typescatter/pkg/debounce"
	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/printer"
	"github.com/matzehuels/typescatter/pkg/scatter"
)

type stubTimer struct {
	fn      func()
	stopped bool
}

func (t *stubTimer) Stop() bool { t.stopped = true; return true }

type stubClock struct {
	mu     sync.Mutex
	timers []*stubTimer
}

func (c *stubClock) afterFunc(_ time.Duration, fn func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &stubTimer{fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *stubClock) settle() {
	for _, t := range c.timers {
		if !t.stopped {
			t.fn()
		}
	}
}

type recorder struct {
	renders []*scatter.Composition
}

func (r *recorder) record(c *scatter.Composition) { r.renders = append(r.renders, c) }

func newHost(t *testing.T, clock *stubClock, rec *recorder, opts ...Option) (*Host, *scatter.MemorySurface) {
	t.Helper()
	s := scatter.NewMemorySurface(800)
	r := scatter.New(scatter.WithSeed(1), scatter.WithLogger(log.New(io.Discard)))
	opts = append([]Option{
		WithResizeDelay(debounce.DefaultDelay, debounce.WithAfterFunc(clock.afterFunc)),
		OnRender(rec.record),
	}, opts...)
	h := New(r, s, opts...)
	t.Cleanup(h.Close)
	return h, s
}

func TestLoadPrefilled(t *testing.T) {
	rec := &recorder{}
	h, s := newHost(t, &stubClock{}, rec)

	h.Load(context.Background(), "already typed")
	if len(rec.renders) != 1 || s.Children() != 2 {
		t.Errorf("renders=%d children=%d, want 1/2", len(rec.renders), s.Children())
	}
}

func TestLoadBlankSkipsRender(t *testing.T) {
	rec := &recorder{}
	h, _ := newHost(t, &stubClock{}, rec)

	h.Load(context.Background(), "   ")
	if len(rec.renders) != 0 {
		t.Errorf("renders = %d, want 0", len(rec.renders))
	}
	if h.Input() != "   " {
		t.Errorf("Input() = %q", h.Input())
	}
}

func TestSetInputRendersImmediately(t *testing.T) {
	rec := &recorder{}
	h, s := newHost(t, &stubClock{}, rec)

	h.SetInput(context.Background(), "one")
	h.SetInput(context.Background(), "one two")
	h.SetInput(context.Background(), "")

	if len(rec.renders) != 3 {
		t.Fatalf("renders = %d, want 3", len(rec.renders))
	}
	if rec.renders[2] != nil || s.Children() != 0 {
		t.Errorf("blank input left %d children", s.Children())
	}
	if h.Composition() != nil {
		t.Error("Composition() non-nil after clearing")
	}
}

func TestResizeDebounced(t *testing.T) {
	clock := &stubClock{}
	rec := &recorder{}
	h, s := newHost(t, clock, rec)

	h.Load(context.Background(), "alpha")
	for i := 0; i < 5; i++ {
		s.SetWidth(float64(300 + i*10))
		h.Resize()
	}
	// Typing during the burst renders immediately; the settled render then
	// uses the value current at settle time.
	h.SetInput(context.Background(), "beta gamma")
	before := len(rec.renders)

	clock.settle()

	if got := len(rec.renders) - before; got != 1 {
		t.Fatalf("resize renders = %d, want 1", got)
	}
	last := rec.renders[len(rec.renders)-1]
	if len(last.Words) != 2 || last.Words[0].Text != "beta" {
		t.Errorf("settled render used %+v, want input at settle time", last.Words)
	}
	if last.Width != 340 {
		t.Errorf("settled render width = %v, want 340", last.Width)
	}
}

func TestPrintWithoutPrinter(t *testing.T) {
	h, _ := newHost(t, &stubClock{}, &recorder{})
	if err := h.Print(context.Background()); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Print() error = %v, want UNSUPPORTED", err)
	}
}

type blockedOpener struct{}

func (blockedOpener) Open(context.Context) (printer.Window, error) { return nil, printer.ErrPopupBlocked }

func TestPrintBlocked(t *testing.T) {
	var alerts int
	p := printer.New(blockedOpener{}, printer.NotifierFunc(func(string) { alerts++ }))
	h, _ := newHost(t, &stubClock{}, &recorder{}, WithPrinter(p))

	h.SetInput(context.Background(), "print this")
	if err := h.Print(context.Background()); !errors.Is(err, errors.ErrCodePopupBlocked) {
		t.Errorf("Print() error = %v, want POPUP_BLOCKED", err)
	}
	if alerts != 1 {
		t.Errorf("alerts = %d, want 1", alerts)
	}
}
