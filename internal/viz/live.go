package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eahenle/spudsim/internal/cannon"
	"github.com/eahenle/spudsim/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
)

// adjustStep is the per-keypress relative change applied to the selected
// parameter.
const adjustStep = 0.05

type param struct {
	name string
	unit string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"mass", "g",
		func(c *config.Config) float64 { return c.MassGrams },
		func(c *config.Config, v float64) { c.MassGrams = v }},
	{"bore diameter", "mm",
		func(c *config.Config) float64 { return c.BoreDiameterMM },
		func(c *config.Config, v float64) { c.BoreDiameterMM = v }},
	{"barrel length", "cm",
		func(c *config.Config) float64 { return c.BarrelLengthCM },
		func(c *config.Config, v float64) { c.BarrelLengthCM = v }},
	{"tank volume", "L",
		func(c *config.Config) float64 { return c.TankLiters },
		func(c *config.Config, v float64) { c.TankLiters = v }},
	{"tank pressure", "atm",
		func(c *config.Config) float64 { return c.TankAtm },
		func(c *config.Config, v float64) { c.TankAtm = v }},
	{"ambient pressure", "atm",
		func(c *config.Config) float64 { return c.AmbientAtm },
		func(c *config.Config, v float64) { c.AmbientAtm = v }},
}

// plotPage selects which series pair the explorer shows.
type plotPage int

const (
	pageKinematics plotPage = iota
	pageThermo
	numPages
)

// Model is the interactive explorer: adjust a parameter, the run re-executes
// immediately and the curves redraw.
type Model struct {
	cfg    *config.Config
	base   config.Config
	cursor int
	page   plotPage
	res    *cannon.Result
	err    error
}

func NewModel(cfg *config.Config) Model {
	m := Model{cfg: cfg, base: *cfg}
	m.rerun()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) rerun() {
	res, err := cannon.Simulate(context.Background(), m.cfg.ToPhysical(), m.cfg.ToOptions())
	m.res, m.err = res, err
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(params)
	case "left", "h":
		p := params[m.cursor]
		p.set(m.cfg, p.get(m.cfg)*(1-adjustStep))
		m.rerun()
	case "right", "l":
		p := params[m.cursor]
		p.set(m.cfg, p.get(m.cfg)*(1+adjustStep))
		m.rerun()
	case "i":
		m.cfg.InfiniteBarrel = !m.cfg.InfiniteBarrel
		m.rerun()
	case "p":
		m.page = (m.page + 1) % numPages
	case "r":
		*m.cfg = m.base
		m.rerun()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("SPUDSIM") + "  " +
		subStyle.Render("pneumatic cannon explorer") + "\n\n")

	for i, p := range params {
		val := fmt.Sprintf("%9.3f %s", p.get(m.cfg), p.unit)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				cursorStyle.Render("▸"),
				nameStyle.Render(fmt.Sprintf("%-17s", p.name)),
				valueStyle.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				dimStyle.Render(fmt.Sprintf("%-17s", p.name)),
				dimStyle.Render(val)))
		}
	}

	barrel := "finite"
	if m.cfg.InfiniteBarrel {
		barrel = "infinite"
	}
	b.WriteString("\n  " + subStyle.Render("barrel: "+barrel) + "\n\n")

	if m.err != nil {
		b.WriteString("  " + errStyle.Render("run failed: "+m.err.Error()) + "\n")
		return b.String()
	}

	s := m.res.Summary
	b.WriteString(fmt.Sprintf("  muzzle velocity %s   exit time %s   energy %s\n",
		valueStyle.Render(fmt.Sprintf("%.2f m/s", s.MuzzleVelocity)),
		valueStyle.Render(fmt.Sprintf("%.4f s", s.ExitTime)),
		valueStyle.Render(fmt.Sprintf("%.1f J", s.MuzzleEnergy))))
	if s.PressureWarning {
		b.WriteString("  " + warnStyle.Render("warning: final pressure below ambient, projectile may stall") + "\n")
	}
	if !s.Exited && !m.cfg.InfiniteBarrel {
		b.WriteString("  " + warnStyle.Render("projectile did not reach the muzzle in the window") + "\n")
	}
	b.WriteString("\n")

	switch m.page {
	case pageKinematics:
		b.WriteString(indent(PlotSeries(m.res.Trajectory.Positions(), "position (m)")))
		b.WriteString("\n\n")
		b.WriteString(indent(PlotSeries(m.res.Trajectory.Velocities(), "velocity (m/s)")))
	case pageThermo:
		b.WriteString(indent(PlotSeries(m.res.Energy, "kinetic energy (J)")))
		b.WriteString("\n\n")
		b.WriteString(indent(PlotSeries(m.res.Entropy, "entropy change (J/K)")))
	}

	b.WriteString("\n\n  " +
		keyStyle.Render("j/k") + dimStyle.Render(" select  ") +
		keyStyle.Render("h/l") + dimStyle.Render(" adjust ±5%  ") +
		keyStyle.Render("i") + dimStyle.Render(" barrel  ") +
		keyStyle.Render("p") + dimStyle.Render(" plots  ") +
		keyStyle.Render("r") + dimStyle.Render(" reset  ") +
		keyStyle.Render("q") + dimStyle.Render(" quit") + "\n")

	return b.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// RunInteractive starts the explorer in the alternate screen.
func RunInteractive(cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run()
	return err
}
