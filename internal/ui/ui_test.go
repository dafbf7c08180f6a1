package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	pkgtypes "github.com/vietdv277/irsstat/pkg/types"
)

func press(m ScenarioModel, msgs ...tea.Msg) ScenarioModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ScenarioModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScenarioModelPickOrder(t *testing.T) {
	m := NewScenarioModel([]string{"LOS", "IRS", "IRSConstructive", "MultiIRS"})

	// pick MultiIRS, then LOS, then IRS; unpick and re-pick LOS to move it last
	m = press(m, keyDown, keyDown, keyDown, keySpace, keyUp, keyUp, keyUp, keySpace, keyDown, keySpace)
	if got := strings.Join(m.Chosen(), ","); got != "MultiIRS,LOS,IRS" {
		t.Fatalf("chosen = %s", got)
	}

	m = press(m, keyUp, keySpace, keySpace, keyEnter)
	if got := strings.Join(m.Chosen(), ","); got != "MultiIRS,IRS,LOS" {
		t.Errorf("chosen = %s", got)
	}
	if m.Cancelled() {
		t.Error("model should not be cancelled")
	}
}

func TestScenarioModelEnterWithoutPicks(t *testing.T) {
	m := NewScenarioModel([]string{"LOS", "IRS", "MultiIRS"})
	m = press(m, runes("irs"), keyEnter)

	if got := strings.Join(m.Chosen(), ","); got != "IRS,MultiIRS" {
		t.Errorf("chosen = %s", got)
	}
}

func TestScenarioModelFilterAndCancel(t *testing.T) {
	m := NewScenarioModel([]string{"LOS", "IRS", "MultiIRS"})
	m = press(m, keyDown, keyDown, runes("lo"))
	if len(m.filtered) != 1 || m.cursor != 0 {
		t.Fatalf("filtered = %v cursor = %d", m.filtered, m.cursor)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.filtered) != 3 {
		t.Errorf("filtered = %v after clearing search", m.filtered)
	}

	if !strings.Contains(m.View(), "MultiIRS") {
		t.Error("view should list scenarios")
	}

	m = press(m, keyEsc)
	if !m.Cancelled() {
		t.Error("Esc should cancel")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestPrintSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	PrintSummaryTable(&buf, []pkgtypes.Summary{
		{Scenario: "LOS", Count: 100, Throughput: 93.126, SNR: 31.2, DataRate: 135, SuccessRate: 99.5},
		{Scenario: "IRSDestructive", Count: 100, Throughput: 12.5, SNR: 2.25, DataRate: 13, SuccessRate: 40},
	})

	out := buf.String()
	for _, want := range []string{"Scenario", "LOS", "IRSDestructive", "93.13", "31.20", "99.50%", "40.00%", "2 scenarios, 200 measurements", "best throughput"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
