// Package viz provides the interactive terminal view for time-domain runs.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/tirelab/tiresim/internal/profile"
	"github.com/tirelab/tiresim/internal/tire"
)

const historyCapacity = 600

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps a time-domain run at the tick rate and renders the current
// sample next to a rolling power history.
type Model struct {
	params  tire.Params
	fz      float64
	v       float64
	prof    profile.Profile
	t, dt   float64
	kappa   float64
	fx      float64
	pdiss   float64
	ediss   float64
	history []float64
	running bool

	paramKeys []string
	selected  int
	showHelp  bool
}

func NewModel(p tire.Params, fz, v, dt float64, prof profile.Profile) Model {
	return Model{
		params:    p,
		fz:        fz,
		v:         v,
		prof:      prof,
		dt:        dt,
		history:   make([]float64, 0, historyCapacity),
		running:   true,
		paramKeys: []string{"mu", "ck", "fz", "v"},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

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
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.t += m.dt
	m.kappa = m.prof.Kappa(m.t)
	m.fx = tire.ComputeFx(m.kappa, m.fz, m.params)
	m.pdiss = tire.ComputePdiss(m.fx, m.kappa, m.v)
	m.ediss += m.pdiss * m.dt

	m.history = append(m.history, m.pdiss)
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.kappa = 0
	m.fx = 0
	m.pdiss = 0
	m.ediss = 0
	m.history = m.history[:0]
}

func (m *Model) adjustParam(factor float64) {
	switch m.paramKeys[m.selected] {
	case "mu":
		m.params.Mu *= factor
	case "ck":
		m.params.Ck *= factor
	case "fz":
		m.fz *= factor
	case "v":
		m.v *= factor
	}
}

func (m Model) View() string {
	var graph string
	if len(m.history) >= 2 {
		width := 70
		data := m.history
		if len(data) > width {
			data = data[len(data)-width:]
		}
		graph = asciigraph.Plot(data,
			asciigraph.Height(12),
			asciigraph.Width(width),
			asciigraph.Caption("Pdiss history (W)"),
		)
	} else {
		graph = "collecting samples..."
	}

	stats := m.renderStats()

	body := lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(graph), stats)

	header := headerStyle.Render(fmt.Sprintf("tiresim live — %s profile", m.prof.Name()))

	help := helpStyle.Render("space pause · r reset · tab select param · ↑/↓ adjust · ? help · q quit")
	if m.showHelp {
		help = helpStyle.Render(strings.Join([]string{
			"space  pause/resume the run",
			"r      reset time and energy",
			"tab    cycle the adjustable parameter",
			"↑/↓    scale the selected parameter by 5%",
			"q      quit",
		}, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m Model) renderStats() string {
	paused := ""
	if !m.running {
		paused = "  [paused]"
	}

	rows := []string{
		labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%8.2f s%s", m.t, paused)),
		labelStyle.Render("kappa") + valueStyle.Render(fmt.Sprintf("%8.4f", m.kappa)),
		labelStyle.Render("Fx") + valueStyle.Render(fmt.Sprintf("%8.1f N", m.fx)),
		labelStyle.Render("Pdiss") + valueStyle.Render(fmt.Sprintf("%8.1f W", m.pdiss)),
		labelStyle.Render("Ediss") + valueStyle.Render(fmt.Sprintf("%8.1f J", m.ediss)),
		"",
	}

	values := map[string]float64{
		"mu": m.params.Mu,
		"ck": m.params.Ck,
		"fz": m.fz,
		"v":  m.v,
	}
	for i, key := range m.paramKeys {
		line := labelStyle.Render(key) + valueStyle.Render(fmt.Sprintf("%10.2f", values[key]))
		if i == m.selected {
			line = activeParamStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	return statsStyle.Render(strings.Join(rows, "\n"))
}
