package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/typescatter/pkg/debounce"
	"github.com/matzehuels/typescatter/pkg/host"
	"github.com/matzehuels/typescatter/pkg/scatter"
)

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

// newLiveTestModel returns a model whose resize timer never fires on its own.
func newLiveTestModel(t *testing.T, initial string) (LiveModel, *scatter.MemorySurface, *func()) {
	t.Helper()
	var fire func()
	surface := scatter.NewMemorySurface(400)
	h := host.New(scatter.New(scatter.WithSeed(3)), surface,
		host.WithResizeDelay(time.Second, debounce.WithAfterFunc(func(_ time.Duration, f func()) debounce.Timer {
			fire = f
			return heldTimer{}
		})),
	)
	t.Cleanup(h.Close)
	return NewLiveModel(context.Background(), h, surface, initial), surface, &fire
}

func update(m LiveModel, msg tea.Msg) (LiveModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(LiveModel), cmd
}

func TestLiveModelInitLoadsPrefilled(t *testing.T) {
	m, _, _ := newLiveTestModel(t, "already typed")
	m, _ = update(m, m.Init()())
	if m.comp == nil || len(m.comp.Words) != 2 {
		t.Fatalf("comp = %+v, want 2 words", m.comp)
	}
}

func TestLiveModelInitBlank(t *testing.T) {
	m, _, _ := newLiveTestModel(t, "")
	m, _ = update(m, m.Init()())
	if m.comp != nil {
		t.Errorf("blank initial input rendered %d words", len(m.comp.Words))
	}
}

func TestLiveModelTyping(t *testing.T) {
	m, _, _ := newLiveTestModel(t, "")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("there")})
	if got := string(m.input); got != "hi there" {
		t.Fatalf("input = %q", got)
	}
	if m.comp == nil || len(m.comp.Words) != 2 {
		t.Fatalf("comp = %+v, want 2 words", m.comp)
	}

	for range len("there") + 1 {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	if m.comp == nil || len(m.comp.Words) != 1 {
		t.Errorf("after backspace comp = %+v, want 1 word", m.comp)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.comp != nil {
		t.Error("clearing the input should clear the preview")
	}
}

func TestLiveModelResizeIsDebounced(t *testing.T) {
	m, surface, fire := newLiveTestModel(t, "")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wide")})
	before := m.comp

	m, _ = update(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m, _ = update(m, tea.WindowSizeMsg{Width: 90, Height: 20})
	if surface.Width() != 90*cellWidth {
		t.Errorf("surface width = %v, want %v", surface.Width(), 90*cellWidth)
	}
	if m.host.Composition() != before {
		t.Fatal("resize rendered before settling")
	}

	(*fire)()
	m, _ = update(m, renderedMsg{})
	if m.comp == before || m.comp.Width != 90*cellWidth {
		t.Errorf("settled render width = %v, want %v", m.comp.Width, 90*cellWidth)
	}
}

func TestLiveModelPrintWithoutPrinter(t *testing.T) {
	m, _, _ := newLiveTestModel(t, "")
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if cmd == nil {
		t.Fatal("ctrl+p returned no command")
	}
	m, _ = update(m, cmd())
	if !strings.HasPrefix(m.status, "Print failed") {
		t.Errorf("status = %q", m.status)
	}
}

func TestLiveModelAlertShownUntilNextKey(t *testing.T) {
	m, _, _ := newLiveTestModel(t, "")
	m, _ = update(m, alertMsg{text: "Popup blocked"})
	if !strings.Contains(m.View(), "Popup blocked") {
		t.Error("alert not shown")
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if strings.Contains(m.View(), "Popup blocked") {
		t.Error("alert not dismissed by typing")
	}
}

func TestLiveModelQuit(t *testing.T) {
	m, _, _ := newLiveTestModel(t, "")
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
}

func TestRenderPreview(t *testing.T) {
	if got := renderPreview(nil, 80, 10); !strings.Contains(got, "type to compose") {
		t.Errorf("empty preview = %q", got)
	}

	comp := &scatter.Composition{
		Width:     640,
		MinHeight: 64,
		Words: []scatter.Word{
			{Text: "preview", Height: 20, Weight: 700, Opacity: 0.95, Z: 1},
			{Text: "grid", Left: 320, Top: 30, Height: 20, Weight: 300, Opacity: 0.85, Z: 1},
		},
	}
	got := renderPreview(comp, 80, 10)
	for _, word := range []string{"preview", "grid"} {
		if !strings.Contains(got, word) {
			t.Errorf("preview missing %q:\n%s", word, got)
		}
	}
	for _, line := range strings.Split(got, "\n") {
		if n := len([]rune(line)); n > 80 {
			t.Errorf("line wider than terminal: %d", n)
		}
	}
}
