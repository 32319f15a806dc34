package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Rrrinav/webgl-fluid-sim/internal/config"
	"github.com/Rrrinav/webgl-fluid-sim/internal/solver"
)

const (
	fieldCols       = 64
	fieldRows       = 30
	historyCapacity = 600
)

type TickMsg time.Time

// Model holds the solver, the visualization buffers, and UI state.
type Model struct {
	solver        *solver.Solver
	cfg           *config.Config
	fps           int
	t             float64
	frame         int
	running       bool
	energyHistory []float64
	params        map[string]float64
	paramKeys     []string
	selected      int
	showHelp      bool
}

// NewModel initializes the live view around a seeded solver.
func NewModel(s *solver.Solver, cfg *config.Config, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	params := s.GetParams()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		solver:        s,
		cfg:           cfg,
		fps:           fps,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		params:        params,
		paramKeys:     keys,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.solver.StepFrame()
	p := m.solver.Config()
	m.t += p.Dt * float64(p.Iterations)
	m.frame++

	m.energyHistory = append(m.energyHistory, m.solver.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.frame = 0
	m.energyHistory = m.energyHistory[:0]
	m.solver.Reset()
	center := float64(m.solver.Size()) / 2
	m.solver.Splat(center, center, m.cfg.Splat.Radius, m.cfg.Splat.Strength,
		m.cfg.Splat.DirX, m.cfg.Splat.DirY)
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if err := m.solver.SetParam(key, newVal); err != nil {
		return
	}
	m.params[key] = newVal
}

func (m Model) View() string {
	theme := CurrentTheme
	headerStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).MarginBottom(1)
	canvasStyle := lipgloss.NewStyle().Foreground(theme.Primary).Padding(1, 2)
	statsStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Muted).Padding(1, 2).Width(42)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	activeParamStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(theme.Muted).MarginTop(2)

	velX, velY := m.solver.Velocity()
	canvasView := canvasStyle.Render(RenderMagnitude(velX, velY, fieldCols, fieldRows))

	var s strings.Builder
	s.WriteString(headerStyle.Render("FLUID") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Energy"),
		)
		s.WriteString(chart + "\n\n")
	}

	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d", m.solver.Size(), m.solver.Size())) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.frame)) + "\n")
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.5f", energy)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-16s %.3g", k, m.params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme Tab:Select ↑↓:Tune ?:Help"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset and reseed splat   ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
