package printer

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	"github.com/matzehuels/typescatter/pkg/errors"
)

// BrowserOpener opens print windows in the system browser. The document is
// written to a temporary HTML file which is handed to the platform launcher
// when printing is requested; pair it with [WithAutoPrint] so the browser
// opens its print dialog on load.
type BrowserOpener struct {
	// Dir holds the temporary documents (default os.TempDir()).
	Dir string
	// Launcher overrides the command used to open files.
	Launcher []string
}

// Open returns ErrPopupBlocked when no launcher is available.
func (b BrowserOpener) Open(ctx context.Context) (Window, error) {
	launcher := b.Launcher
	if len(launcher) == 0 {
		launcher = defaultLauncher()
	}
	if len(launcher) == 0 {
		return nil, ErrPopupBlocked
	}
	if _, err := exec.LookPath(launcher[0]); err != nil {
		return nil, ErrPopupBlocked
	}
	f, err := os.CreateTemp(b.Dir, "typescatter-print-*.html")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create print document")
	}
	return &fileWindow{ctx: ctx, f: f, launcher: launcher}, nil
}

func defaultLauncher() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

type fileWindow struct {
	ctx      context.Context
	f        *os.File
	launcher []string
	closed   bool
}

// Path returns the document location.
func (w *fileWindow) Path() string { return w.f.Name() }

func (w *fileWindow) Write(doc []byte) error {
	if err := w.f.Truncate(0); err != nil {
		return err
	}
	if _, err := w.f.WriteAt(doc, 0); err != nil {
		return err
	}
	return w.f.Sync()
}

func (w *fileWindow) Focus() error { return nil }

func (w *fileWindow) Print() error {
	w.closed = true
	if err := w.f.Close(); err != nil {
		return err
	}
	args := append(append([]string{}, w.launcher[1:]...), w.f.Name())
	return exec.CommandContext(w.ctx, w.launcher[0], args...).Run()
}

// Close discards the document. The browser reads the file after Print
// returns, so a successfully printed window is never closed.
func (w *fileWindow) Close() error {
	if !w.closed {
		w.closed = true
		w.f.Close()
	}
	if err := os.Remove(w.f.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
