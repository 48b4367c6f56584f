package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/newsflow/internal/engine"
	"github.com/san-kum/newsflow/internal/flow"
	"go.uber.org/zap"
)

const (
	PanelWidth = 44
	DefaultFPS = 30
	// DefaultScale is the number of surface units per braille dot.
	DefaultScale    = 6.0
	historyCapacity = 120
)

type TickMsg time.Time

// RecordsMsg replaces the headlines being drawn, as after a dataset reload.
type RecordsMsg []flow.Record

type Options struct {
	FPS    int
	Scale  float64
	Theme  string
	Title  string
	Logger *zap.Logger
}

// Model drives one engine frame per tick and shows it on a braille canvas
// next to a status panel.
type Model struct {
	eng      *engine.Engine
	canvas   *Canvas
	fps      int
	theme    Theme
	styles   styles
	title    string
	running  bool
	showHelp bool
	help     help.Model
	last     engine.FrameStats
	segments []float64
	log      *zap.Logger
}

func NewModel(eng *engine.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Title == "" {
		opts.Title = "newsflow"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	theme := GetTheme(opts.Theme)

	w, h := eng.Size()
	cols := int(math.Ceil(w / opts.Scale / 2))
	rows := int(math.Ceil(h / opts.Scale / 4))

	return Model{
		eng:      eng,
		canvas:   NewCanvas(cols, rows, opts.Scale),
		fps:      opts.FPS,
		theme:    theme,
		styles:   newStyles(theme),
		help:     newHelp(theme),
		title:    opts.Title,
		running:  true,
		segments: make([]float64, 0, historyCapacity),
		log:      opts.Logger,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			m.running = !m.running
		case key.Matches(msg, keys.Restart):
			m.eng.Restart()
			m.segments = m.segments[:0]
		case key.Matches(msg, keys.Theme):
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
			m.help = newHelp(m.theme)
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case RecordsMsg:
		w, h := m.canvas.Extent()
		if err := m.eng.Resize(w, h, []flow.Record(msg)); err != nil {
			m.log.Warn("reload rejected", zap.Error(err))
			break
		}
		m.segments = m.segments[:0]
		m.log.Info("headlines reloaded", zap.Int("records", len(msg)))
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.last = m.eng.Frame(m.canvas)
	m.segments = append(m.segments, float64(m.last.Segments))
	if len(m.segments) > historyCapacity {
		m.segments = m.segments[1:]
	}
}

// resize fits the canvas to the terminal minus the panel and reseeds the
// engine for the new extent.
func (m *Model) resize(termW, termH int) {
	cols := termW - PanelWidth - 2
	rows := termH - 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == m.canvas.Width && rows == m.canvas.Height {
		return
	}
	m.canvas.Resize(cols, rows, m.canvas.Scale)
	w, h := m.canvas.Extent()
	if err := m.eng.Resize(w, h, m.eng.Records()); err != nil {
		m.log.Warn("resize rejected", zap.Error(err), zap.Int("cols", cols), zap.Int("rows", rows))
		return
	}
	m.segments = m.segments[:0]
}

func (m Model) Running() bool             { return m.running }
func (m Model) Stats() engine.FrameStats  { return m.last }
func (m Model) Canvas() *Canvas           { return m.canvas }
func (m Model) Theme() Theme              { return m.theme }
func (m Model) SegmentHistory() []float64 { return m.segments }

func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.canvas.Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(m.panel()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	switch {
	case m.eng.Empty():
		return m.styles.warn.Render("NO DATA")
	case !m.running:
		return m.styles.paused.Render("PAUSED")
	case m.eng.Complete():
		return m.styles.value.Render("COMPLETE")
	default:
		return m.styles.value.Render("UNFURLING")
	}
}

func (m Model) panel() string {
	var s strings.Builder
	s.WriteString(m.styles.header.Render(GradientText(strings.ToUpper(m.title), m.theme.Title, m.theme.Accent)) + "\n")
	s.WriteString(m.status() + "\n")
	s.WriteString(m.styles.ProgressBar(m.eng.Scheduler().Fraction(), 30) + "\n\n")

	g := m.eng.Grid()
	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.eng.FrameCount()))
	row("Progress", fmt.Sprintf("%.1f / %d", m.eng.Progress(), m.eng.Scheduler().MaxSteps()))
	row("Segments", fmt.Sprintf("%d", m.last.Segments))
	row("Time", fmt.Sprintf("%.3f", m.eng.TimeOffset()))
	row("Curves", fmt.Sprintf("%d", m.last.Curves))
	row("Off grid", fmt.Sprintf("%d", m.last.Truncated))
	row("Grid", fmt.Sprintf("%d×%d", g.Cols(), g.Rows()))

	if len(m.segments) > 1 {
		chart := asciigraph.Plot(m.segments, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("visible segments"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString("\n")
	p := m.eng.Palette()
	for _, name := range p.Categories() {
		c, _ := p.Color(name)
		s.WriteString(Swatch(c.Hex(), name) + "\n")
	}
	s.WriteString(Swatch(p.Fallback().Hex(), "other") + "\n")

	s.WriteString(m.styles.help.Render(m.help.View(keys)))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart unfurling        ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// NewProgram wraps m in a full-screen program. Callers may Send RecordsMsg
// to it while it runs.
func NewProgram(m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Run starts the full-screen program and blocks until the user quits.
func Run(m Model) error {
	_, err := NewProgram(m).Run()
	return err
}
