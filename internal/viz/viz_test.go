package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eahenle/spudsim/internal/cannon"
	"github.com/eahenle/spudsim/internal/config"
)

func TestPlotSeries_TooShort(t *testing.T) {
	out := PlotSeries([]float64{1}, "lonely")
	if !strings.Contains(out, "lonely") {
		t.Errorf("expected caption in placeholder, got %q", out)
	}
}

func TestPlotRun(t *testing.T) {
	res := &cannon.Result{
		Trajectory: cannon.Trajectory{
			{T: 0, X: 0, V: 0},
			{T: 0.01, X: 0.3, V: 25},
			{T: 0.02, X: 0.8, V: 40},
		},
		Energy:  []float64{0, 31, 80},
		Entropy: []float64{0, 1, 2},
	}

	out := PlotRun(res)
	for _, caption := range []string{"position (m)", "velocity (m/s)", "kinetic energy (J)", "entropy change (J/K)"} {
		if !strings.Contains(out, caption) {
			t.Errorf("missing caption %q", caption)
		}
	}
}

func TestModel_AdjustRerenders(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(cfg)
	if m.err != nil {
		t.Fatalf("initial run failed: %v", m.err)
	}
	v0 := m.res.Summary.MuzzleVelocity

	// Move to tank pressure and bump it up twice.
	for i := 0; i < 4; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	for i := 0; i < 2; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(Model)
	}

	if m.err != nil {
		t.Fatalf("run after adjust failed: %v", m.err)
	}
	if m.res.Summary.MuzzleVelocity <= v0 {
		t.Errorf("raising tank pressure should raise muzzle velocity: %v <= %v",
			m.res.Summary.MuzzleVelocity, v0)
	}

	view := m.View()
	if !strings.Contains(view, "muzzle velocity") {
		t.Error("view missing summary line")
	}
}

func TestModel_Reset(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(cfg)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	if cfg.MassGrams == 100 {
		t.Fatal("adjust should have changed the selected parameter")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if cfg.MassGrams != 100 {
		t.Errorf("reset should restore defaults, mass = %v", cfg.MassGrams)
	}
}
