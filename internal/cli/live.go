package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/host"
	"github.com/matzehuels/typescatter/pkg/printer"
	"github.com/matzehuels/typescatter/pkg/scatter"
)

// Terminal cells are mapped to layout pixels with a fixed cell size.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// Preview styles
var (
	previewStyle      = lipgloss.NewStyle().Foreground(colorWhite)
	previewBoldStyle  = previewStyle.Bold(true)
	previewFaintStyle = lipgloss.NewStyle().Foreground(colorGray)
	inputStyle        = lipgloss.NewStyle().Foreground(colorCyan)
	liveHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Messages
// =============================================================================

// renderedMsg reports that the host re-rendered. The model reads the latest
// composition from the host so out-of-order delivery is harmless.
type renderedMsg struct{}

type printedMsg struct{ err error }

type alertMsg struct{ text string }

// =============================================================================
// LiveModel - Interactive composition preview
// =============================================================================

// LiveModel is the bubbletea model behind the live command.
type LiveModel struct {
	host    *host.Host
	surface *scatter.MemorySurface
	ctx     context.Context

	input  []rune
	comp   *scatter.Composition
	cols   int
	rows   int
	status string
	alert  string
}

// NewLiveModel returns a model editing initial and rendering through h.
func NewLiveModel(ctx context.Context, h *host.Host, s *scatter.MemorySurface, initial string) LiveModel {
	return LiveModel{
		host:    h,
		surface: s,
		ctx:     ctx,
		input:   []rune(initial),
		cols:    int(s.Width() / cellWidth),
		rows:    24,
	}
}

// Init loads the initial input; a blank value leaves the preview empty.
func (m LiveModel) Init() tea.Cmd {
	text := string(m.input)
	return func() tea.Msg {
		m.host.Load(m.ctx, text)
		return renderedMsg{}
	}
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.surface.SetWidth(float64(m.cols) * cellWidth)
		m.host.Resize()
	case renderedMsg:
		m.comp = m.host.Composition()
	case printedMsg:
		switch {
		case msg.err == nil:
			m.status = "Sent to printer"
		case errors.Is(msg.err, errors.ErrCodePopupBlocked):
			m.status = ""
		default:
			m.status = "Print failed: " + errors.UserMessage(msg.err)
		}
	case alertMsg:
		m.alert = msg.text
	}
	return m, nil
}

func (m LiveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.alert = ""
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlP:
		m.status = "Printing…"
		h, ctx := m.host, m.ctx
		return m, func() tea.Msg { return printedMsg{err: h.Print(ctx)} }
	case tea.KeyBackspace:
		if len(m.input) == 0 {
			return m, nil
		}
		m.input = m.input[:len(m.input)-1]
	case tea.KeyCtrlU:
		m.input = m.input[:0]
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	default:
		return m, nil
	}
	m.host.SetInput(m.ctx, string(m.input))
	m.comp = m.host.Composition()
	return m, nil
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Typescatter"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render("› " + string(m.input) + "▏"))
	b.WriteString("\n\n")

	b.WriteString(renderPreview(m.comp, m.cols, max(m.rows-7, 3)))
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(styleAlert.Render(m.alert))
		b.WriteString("\n")
	}
	b.WriteString(liveHelpStyle.Render(m.statusLine()))
	return b.String()
}

func (m LiveModel) statusLine() string {
	parts := []string{"ctrl+p print", "ctrl+u clear", "esc quit"}
	if m.comp != nil {
		parts = append(parts, fmt.Sprintf("%d words · %d shapes", len(m.comp.Words), len(m.comp.Shapes())))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// Preview Grid
// =============================================================================

type cell struct {
	r     rune
	style *lipgloss.Style
}

// renderPreview rasterizes word boxes onto a character grid. Words are drawn
// in z order so later words cover earlier ones, as in the browser.
func renderPreview(c *scatter.Composition, cols, maxRows int) string {
	if c == nil || cols <= 0 {
		return StyleDim.Render("(type to compose)")
	}
	rows := min(int(c.MinHeight/cellHeight)+1, maxRows)
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}

	words := append([]scatter.Word(nil), c.Words...)
	sort.SliceStable(words, func(i, j int) bool { return words[i].Z < words[j].Z })

	for _, w := range words {
		row := int((w.Top + w.TranslateY + w.Height/2) / cellHeight)
		col := int((w.Left + w.TranslateX) / cellWidth)
		if row < 0 || row >= rows {
			continue
		}
		style := wordStyle(w)
		for _, r := range w.Text {
			if col >= cols {
				break
			}
			if col >= 0 {
				grid[row][col] = cell{r: r, style: style}
			}
			col++
		}
	}

	var b strings.Builder
	for i, line := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, line)
	}
	return b.String()
}

func wordStyle(w scatter.Word) *lipgloss.Style {
	switch {
	case w.Weight >= 600:
		return &previewBoldStyle
	case w.Opacity < 0.88:
		return &previewFaintStyle
	default:
		return &previewStyle
	}
}

// writeRow renders runs of equally styled cells together.
func writeRow(b *strings.Builder, line []cell) {
	var run strings.Builder
	var cur *lipgloss.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == nil {
			b.WriteString(run.String())
		} else {
			b.WriteString(cur.Render(run.String()))
		}
		run.Reset()
	}
	for _, c := range line {
		if c.style != cur {
			flush()
			cur = c.style
		}
		if c.r == 0 || !utf8.ValidRune(c.r) {
			run.WriteByte(' ')
		} else {
			run.WriteRune(c.r)
		}
	}
	flush()
}

// =============================================================================
// Command
// =============================================================================

func (c *CLI) liveCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "live [text...]",
		Short: "Compose interactively in the terminal",
		Long: `Open an interactive preview. Every keystroke re-lays out the text; resizing
the terminal re-lays it out once resizing has settled. Press ctrl+p to print
the current composition.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolve(cmd, &opts); err != nil {
				return err
			}
			if opts.input == "-" {
				return errors.New(errors.ErrCodeInvalidInput, "live reads keys from the terminal; pass a file to --input")
			}
			text, err := readText(cmd.InOrStdin(), args, opts.input)
			if err != nil {
				return err
			}
			return c.runLive(cmd.Context(), text, &opts)
		},
	}

	c.bindRenderFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runLive(ctx context.Context, initial string, opts *renderOpts) error {
	e, err := c.newEnv(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer e.Close()
	e.loadShapesAsync(ctx, opts.shapes)

	var program *tea.Program
	send := func(msg tea.Msg) {
		if program != nil {
			go program.Send(msg)
		}
	}

	p := printer.New(
		printer.BrowserOpener{},
		printer.NotifierFunc(func(msg string) { send(alertMsg{text: msg}) }),
		printer.WithDelay(c.cfg.Print.Delay.Duration),
		printer.WithDocOptions(printer.WithAutoPrint(c.cfg.Print.Delay.Duration)),
		printer.WithLogger(c.Logger),
	)
	surface := scatter.NewMemorySurface(opts.width)
	h := host.New(e.newRenderer(opts.seed), surface,
		host.WithPrinter(p),
		host.WithLogger(c.Logger),
		host.WithContext(ctx),
		host.WithResizeDelay(c.cfg.Live.Debounce.Duration),
		host.OnRender(func(*scatter.Composition) { send(renderedMsg{}) }),
	)
	defer h.Close()

	program = tea.NewProgram(NewLiveModel(ctx, h, surface, initial),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "live preview")
	}
	return nil
}
