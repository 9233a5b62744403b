package viz

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/zplane/internal/analysis"
	"github.com/san-kum/zplane/internal/config"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/explorer"
	"github.com/san-kum/zplane/internal/plane"
	"github.com/san-kum/zplane/internal/render"
)

const (
	headerLines = 1
	// status, probe and sparkline lines; help is added on top.
	footerLines = 3
	panelWidth  = 28
)

// Model is the bubbletea model of the terminal explorer. Each terminal
// cell shows two vertically stacked pixels.
type Model struct {
	x        *explorer.Explorer
	surface  *render.MemorySurface
	ctx      context.Context
	zoomStep float64

	input  textinput.Model
	help   help.Model
	keys   keyMap
	styles styles

	editing   bool
	showOrbit bool
	status    string
	statusErr bool

	width, height int
	cursorCol     int
	cursorRow     int
	hasCursor     bool
	picture       []string
}

func NewModel(ctx context.Context, cfg *config.Config) (Model, error) {
	params, err := cfg.Params()
	if err != nil {
		return Model{}, err
	}
	surface := render.NewMemorySurface()
	x := explorer.New(surface,
		explorer.WithViewport(cfg.Viewport()),
		explorer.WithNiter(cfg.Niter),
		explorer.WithKernelOptions(cfg.KernelOptions()),
		explorer.WithParams(params),
	)

	in := textinput.New()
	in.Prompt = "f(z, c) = "
	in.CharLimit = 256

	m := Model{
		x:        x,
		surface:  surface,
		ctx:      ctx,
		zoomStep: cfg.ZoomStep,
		input:    in,
		help:     help.New(),
		keys:     newKeyMap(),
		styles:   newStyles(Themes[0]),
		width:    80,
		height:   24,
	}
	if err := x.SetFunction(cfg.Formula); err != nil {
		m.setStatus(err.Error(), true)
	}
	m.layout()
	return m, nil
}

// Run starts the terminal explorer and blocks until it quits.
func Run(ctx context.Context, cfg *config.Config) error {
	m, err := NewModel(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.x.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// Explorer exposes the underlying explorer.
func (m Model) Explorer() *explorer.Explorer { return m.x }

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m Model) helpHeight() int {
	return lipgloss.Height(m.help.View(m.keys))
}

// pictureSize is the picture area in cells.
func (m Model) pictureSize() (cols, rows int) {
	cols = m.width
	if m.showOrbit {
		cols -= panelWidth
	}
	rows = m.height - headerLines - footerLines - m.helpHeight()
	return max(cols, 1), max(rows, 1)
}

// layout resizes the explorer to the picture area and redraws.
func (m *Model) layout() {
	cols, rows := m.pictureSize()
	m.x.FitResolution(cols, rows*2)
	m.redraw()
}

func (m *Model) redraw() {
	if err := m.x.Draw(m.ctx); err != nil {
		m.setStatus(err.Error(), true)
	}
	w, h := m.surface.Size()
	m.picture = HalfBlocks(m.surface.Pixels(), w, h)
}

// cursorPixel returns the pixel under the mouse, or the picture centre.
func (m Model) cursorPixel() (x, y float64) {
	if m.hasCursor {
		return cellToPixel(m.cursorCol, m.cursorRow)
	}
	vp := m.x.Viewport()
	return float64(vp.Width) / 2, float64(vp.Height) / 2
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	cols, rows := m.pictureSize()
	col, row := msg.X, msg.Y-headerLines
	if col < 0 || row < 0 || col >= cols || row >= rows {
		if msg.Action == tea.MouseActionRelease && m.x.DragState() == plane.Dragging {
			x, y := cellToPixel(min(max(col, 0), cols-1), min(max(row, 0), rows-1))
			m.x.OnPointerUp(x, y)
			m.redraw()
		}
		return m
	}
	m.cursorCol, m.cursorRow, m.hasCursor = col, row, true
	x, y := cellToPixel(col, row)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.x.OnPointerMove(x, y)
		m.x.Zoom(m.zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.x.OnPointerMove(x, y)
		m.x.Zoom(1 / m.zoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.x.OnPointerDown(x, y)
	case msg.Action == tea.MouseActionRelease:
		m.x.OnPointerUp(x, y)
	default:
		m.x.OnPointerMove(x, y)
	}
	m.redraw()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols, rows := m.pictureSize()
	panX, panY := float64(cols)/8, float64(rows*2)/8

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.input.SetValue(m.x.Formula())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.ZoomIn):
		m.x.Zoom(m.zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.x.Zoom(1 / m.zoomStep)
	case key.Matches(msg, m.keys.Left):
		m.x.Pan(panX, 0)
	case key.Matches(msg, m.keys.Right):
		m.x.Pan(-panX, 0)
	case key.Matches(msg, m.keys.Up):
		m.x.Pan(0, panY)
	case key.Matches(msg, m.keys.Down):
		m.x.Pan(0, -panY)
	case key.Matches(msg, m.keys.NiterUp):
		m.x.SetNiter(m.x.Niter() * 2)
		m.setStatus(fmt.Sprintf("niter %d", m.x.Niter()), false)
	case key.Matches(msg, m.keys.NiterDown):
		m.x.SetNiter(m.x.Niter() / 2)
		m.setStatus(fmt.Sprintf("niter %d", m.x.Niter()), false)
	case key.Matches(msg, m.keys.Mode):
		m.x.SetMode(m.x.Params().Mode.Next())
		m.setStatus("mode "+m.x.Params().Mode.String(), false)
	case key.Matches(msg, m.keys.Julia):
		px, py := m.cursorPixel()
		m.x.SetParameterC(m.x.Viewport().ScreenToPlane(px, py))
		m.x.SetMode(dynamo.ModeJulia)
		m.setStatus("julia c = "+m.x.DisplayValueAt(px, py), false)
	case key.Matches(msg, m.keys.Subsample):
		n := m.x.Params().Samples()%dynamo.MaxSubsample + 1
		m.x.SetSubsample(n)
		m.setStatus(fmt.Sprintf("subsample %dx%d", n, n), false)
	case key.Matches(msg, m.keys.Orbit):
		m.showOrbit = !m.showOrbit
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.styles = newStyles(nextTheme(m.styles.theme))
		m.setStatus("theme "+m.styles.theme.Name, false)
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.x.Reset()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	default:
		return m, nil
	}
	m.redraw()
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		src := strings.TrimSpace(m.input.Value())
		if err := m.x.SetFunction(src); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.setStatus("f(z, c) = "+src, false)
		m.redraw()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	st := m.styles
	var b strings.Builder

	p := m.x.Params()
	title := GradientText("zplane", st.theme.Primary, st.theme.Secondary)
	info := fmt.Sprintf(" %s · niter %d · %s", p.Mode, m.x.Niter(), m.x.Formula())
	b.WriteString(title + st.muted.Render(info) + "\n")

	picture := strings.Join(m.picture, "\n")
	if m.showOrbit {
		picture = lipgloss.JoinHorizontal(lipgloss.Top, picture, m.orbitPanel())
	}
	b.WriteString(picture + "\n")

	switch {
	case m.editing:
		b.WriteString(m.input.View())
	case m.statusErr:
		b.WriteString(st.err.Render(m.status))
	default:
		b.WriteString(st.text.Render(m.status))
	}
	b.WriteString("\n")

	px, py := m.cursorPixel()
	probe := fmt.Sprintf("z %s   f %s", m.x.DisplayValueAt(px, py), m.x.DisplayImageAt(px, py))
	report := m.x.Inspect(px, py)
	if report != nil {
		probe += "   " + report.Classification()
	}
	b.WriteString(st.accent.Render(probe) + "\n")

	var moduli []float64
	if report != nil {
		moduli = analysis.Moduli(analysis.Finite(report.Orbit))
	}
	pl := m.x.Pipeline()
	b.WriteString(st.muted.Render(fmt.Sprintf("|z| %s  %s  %s",
		Sparkline(moduli, 32), ProgressBar(pl.InteriorFraction(), 10), pl.Summary())) + "\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) orbitPanel() string {
	_, rows := m.pictureSize()
	inner := panelWidth - 2
	canvas := NewCanvas(inner, max(rows-2, 1))
	px, py := m.cursorPixel()
	if r := m.x.Inspect(px, py); r != nil {
		canvas.PlotOrbit(append([]complex128{r.Point}, r.Orbit...))
	}
	return m.styles.panel.Render(canvas.String())
}
