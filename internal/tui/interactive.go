// Package tui is an interactive terminal explorer for the reactor model.
// Every parameter change re-integrates the model and redraws the chart.
package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bioreactor/internal/chart"
	"github.com/san-kum/bioreactor/internal/metrics"
	"github.com/san-kum/bioreactor/internal/reactor"
	"go.uber.org/zap"
)

type view int

const (
	viewTime view = iota
	viewPhase
)

var paramLabels = map[string]string{
	"mu_max":         "μmax (1/h)",
	"ks":             "Ks (g/L)",
	"yield":          "y (g/g)",
	"volume":         "V (L)",
	"feed":           "F (L/h)",
	"feed_substrate": "Sr (g/L)",
}

// stepFactor scales the selected parameter per key press.
const stepFactor = 1.1

type model struct {
	initial reactor.Params
	params  reactor.Params
	init    reactor.Point
	h       float64
	steps   int

	names  []string
	cursor int
	view   view

	traj    reactor.Trajectory
	metrics map[string]float64
	err     error

	log *zap.Logger

	width  int
	height int
}

func newModel(p reactor.Params, init reactor.Point, h float64, steps int, log *zap.Logger) model {
	if log == nil {
		log = zap.NewNop()
	}
	m := model{
		initial: p,
		params:  p,
		init:    init,
		h:       h,
		steps:   steps,
		names:   reactor.ParamNames(),
		log:     log,
		width:   80,
		height:  24,
	}
	m.recompute()
	return m
}

// Run starts the explorer on the alternate screen and blocks until quit.
func Run(p reactor.Params, init reactor.Point, h float64, steps int, log *zap.Logger) error {
	_, err := tea.NewProgram(newModel(p, init, h, steps, log), tea.WithAltScreen()).Run()
	return err
}

func (m *model) recompute() {
	traj, err := reactor.Run(m.params, m.init, m.h, m.steps)
	m.traj, m.err = traj, err
	if err != nil {
		m.metrics = nil
		m.log.Debug("integration failed", zap.Error(err))
		return
	}
	m.metrics = metrics.Evaluate(traj, metrics.Defaults(m.params)...)
	m.log.Debug("integrated",
		zap.Float64("dilution", m.params.Dilution()),
		zap.Float64("x_final", traj.Last().X),
		zap.Float64("s_final", traj.Last().S))
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "right", "l", "+":
		m.scale(stepFactor)
	case "left", "h", "-":
		m.scale(1 / stepFactor)
	case "tab", "v":
		if m.view == viewTime {
			m.view = viewPhase
		} else {
			m.view = viewTime
		}
	case "r":
		m.params = m.initial
		m.recompute()
	}
	return m, nil
}

func (m *model) scale(factor float64) {
	name := m.names[m.cursor]
	v := m.params.GetParams()[name] * factor
	// keep a tiny positive floor so a parameter can grow back from near zero
	if math.Abs(v) < 1e-9 {
		v = 1e-3
	}
	if err := m.params.SetParam(name, v); err != nil {
		m.err = err
		return
	}
	m.recompute()
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(title.Render("bioreactor explorer"))
	sb.WriteString(dim.Render("  continuous stirred-tank, Monod kinetics, RK4"))
	sb.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left, m.paramPanel(), m.metricPanel())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.chartPanel()))
	sb.WriteString("\n")
	sb.WriteString(dim.Render("↑/↓ select  ←/→ adjust  tab chart  r reset  q quit"))
	return sb.String()
}

func (m model) paramPanel() string {
	values := m.params.GetParams()
	var lines []string
	for i, name := range m.names {
		label := fmt.Sprintf("%-12s %10.4g", paramLabels[name], values[name])
		if i == m.cursor {
			lines = append(lines, magenta.Render("▸ "+label))
		} else {
			lines = append(lines, white.Render("  "+label))
		}
	}
	lines = append(lines, "", dim.Render(fmt.Sprintf("h=%g  steps=%d", m.h, m.steps)))
	return panel.Render(strings.Join(lines, "\n"))
}

func (m model) metricPanel() string {
	var lines []string

	d := 0.0
	if m.params.Volume != 0 {
		d = m.params.Dilution()
	}
	lines = append(lines, cyan.Render(fmt.Sprintf("D      %.4f 1/h", d)))
	lines = append(lines, cyan.Render(fmt.Sprintf("D crit %.4f 1/h", m.params.CriticalDilution())))
	if xs, ss, ok := m.params.SteadyState(); ok {
		lines = append(lines, green.Render(fmt.Sprintf("X* %.4f  S* %.4f", xs, ss)))
	} else {
		lines = append(lines, red.Render("washout"))
	}

	if m.err != nil {
		lines = append(lines, red.Render(m.err.Error()))
		return panel.Render(strings.Join(lines, "\n"))
	}

	last := m.traj.Last()
	lines = append(lines, yellow.Render(fmt.Sprintf("t=%.2f  X=%.4f  S=%.4f", last.T, last.X, last.S)))
	names := make([]string, 0, len(m.metrics))
	for name := range m.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, dim.Render(fmt.Sprintf("%-13s %.4f", name, m.metrics[name])))
	}
	return panel.Render(strings.Join(lines, "\n"))
}

func (m model) chartPanel() string {
	if m.err != nil || len(m.traj) == 0 {
		return panel.Render(dim.Render("no trajectory"))
	}

	w := m.width - 48
	if w < 20 {
		w = 20
	}
	h := m.height - 10
	if h < 5 {
		h = 5
	}

	var out string
	var err error
	if m.view == viewPhase {
		out, err = chart.TerminalPhase(m.traj, w, h)
	} else {
		out, err = chart.TerminalTimeSeries(m.traj, w, h)
	}
	if err != nil {
		return panel.Render(red.Render(err.Error()))
	}
	return panel.Render(out)
}
