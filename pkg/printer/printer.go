package printer

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typescatter/pkg/errors"
)

// DefaultDelay is the wait between writing the document and printing.
const DefaultDelay = 350 * time.Millisecond

// BlockedMessage is shown when the print window could not be opened.
const BlockedMessage = "Popup blocked: please allow popups or print the page manually."

// ErrPopupBlocked is returned by an [Opener] that is not allowed to create a
// window. Check with errors.Is(err, errors.ErrCodePopupBlocked).
var ErrPopupBlocked = errors.New(errors.ErrCodePopupBlocked, "print window could not be opened")

// Window is an open print window. A window that also implements io.Closer is
// closed when the flow stops before printing.
type Window interface {
	// Write replaces the window's content with doc.
	Write(doc []byte) error
	Focus() error
	Print() error
}

// Opener creates print windows.
type Opener interface {
	Open(ctx context.Context) (Window, error)
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(msg string)

func (f NotifierFunc) Alert(msg string) { f(msg) }

// Printer drives the print flow.
type Printer struct {
	opener   Opener
	notifier Notifier
	delay    time.Duration
	docOpts  []DocOption
	after    func(time.Duration) <-chan time.Time
	logger   *log.Logger
}

// Option configures a Printer.
type Option func(*Printer)

// WithDelay overrides [DefaultDelay].
func WithDelay(d time.Duration) Option { return func(p *Printer) { p.delay = max(0, d) } }

// WithDocOptions passes options to [Document].
func WithDocOptions(opts ...DocOption) Option {
	return func(p *Printer) { p.docOpts = opts }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(p *Printer) { p.logger = l } }

// WithClock replaces time.After, mainly for tests.
func WithClock(after func(time.Duration) <-chan time.Time) Option {
	return func(p *Printer) { p.after = after }
}

// New returns a Printer that opens windows with o and alerts through n.
func New(o Opener, n Notifier, opts ...Option) *Printer {
	p := &Printer{
		opener:   o,
		notifier: n,
		delay:    DefaultDelay,
		after:    time.After,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print opens a window, writes the print document for markup and, after the
// configured delay, focuses the window and requests printing. It blocks
// until printing was requested or ctx is done.
//
// If the window is blocked the notifier is alerted once and the returned
// error carries ErrCodePopupBlocked.
func (p *Printer) Print(ctx context.Context, markup []byte) error {
	w, err := p.opener.Open(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrCodePopupBlocked) {
			p.logger.Warn("print window blocked")
			p.notifier.Alert(BlockedMessage)
			return err
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "open print window")
	}
	if w == nil {
		p.notifier.Alert(BlockedMessage)
		return ErrPopupBlocked
	}

	doc := Document(markup, p.docOpts...)
	if err := w.Write(doc); err != nil {
		p.discard(w)
		return errors.Wrap(errors.ErrCodeInternal, err, "write print document")
	}
	p.logger.Debug("print document written", "bytes", len(doc), "delay", p.delay)

	select {
	case <-ctx.Done():
		p.discard(w)
		return ctx.Err()
	case <-p.after(p.delay):
	}

	if err := w.Focus(); err != nil {
		p.logger.Debug("focus print window", "err", err)
	}
	if err := w.Print(); err != nil {
		p.discard(w)
		return errors.Wrap(errors.ErrCodeInternal, err, "print")
	}
	return nil
}

// discard closes a window that will never be printed. Windows that hold
// resources implement io.Closer.
func (p *Printer) discard(w Window) {
	c, ok := w.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		p.logger.Debug("close print window", "err", err)
	}
}
