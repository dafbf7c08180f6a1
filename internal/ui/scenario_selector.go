package ui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scenarioListHeight = 8
	scenarioMinWidth   = 50
	scenarioMaxWidth   = 80
)

// ScenarioModel is the bubbletea model for choosing the columns of an
// export and their order
type ScenarioModel struct {
	scenarios    []string
	filtered     []string
	chosen       []string // in pick order
	cursor       int
	offset       int
	search       string
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
}

// NewScenarioModel creates a picker over the given scenarios
func NewScenarioModel(scenarios []string) ScenarioModel {
	m := ScenarioModel{
		scenarios: scenarios,
		filtered:  scenarios,
		termWidth: 80,
	}
	m.calculateWidth()
	return m
}

func (m *ScenarioModel) calculateWidth() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < scenarioMinWidth {
		m.contentWidth = scenarioMinWidth
	}
	if m.contentWidth > scenarioMaxWidth {
		m.contentWidth = scenarioMaxWidth
	}
}

// Init implements tea.Model
func (m ScenarioModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m ScenarioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidth()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			// nothing picked means every visible scenario, as listed
			if len(m.chosen) == 0 {
				m.chosen = slices.Clone(m.filtered)
			}
			m.quitting = true
			return m, tea.Quit

		case tea.KeySpace:
			m.toggle()

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+scenarioListHeight {
					m.offset = m.cursor - scenarioListHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filter()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filter()
		}
	}

	return m, nil
}

// toggle adds the scenario under the cursor to the end of the order, or
// removes it if already picked
func (m *ScenarioModel) toggle() {
	if len(m.filtered) == 0 {
		return
	}
	name := m.filtered[m.cursor]
	if i := slices.Index(m.chosen, name); i >= 0 {
		m.chosen = slices.Delete(m.chosen, i, i+1)
		return
	}
	m.chosen = append(m.chosen, name)
}

func (m *ScenarioModel) filter() {
	if m.search == "" {
		m.filtered = m.scenarios
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, s := range m.scenarios {
			if strings.Contains(strings.ToLower(s), query) {
				m.filtered = append(m.filtered, s)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
	m.offset = 0
}

// Chosen returns the picked scenarios in order
func (m ScenarioModel) Chosen() []string {
	return slices.Clone(m.chosen)
}

// Cancelled reports whether the picker was aborted
func (m ScenarioModel) Cancelled() bool {
	return m.cancelled
}

// View implements tea.Model
func (m ScenarioModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(TopLeft + strings.Repeat(Horizontal, w) + TopRight))
	sb.WriteString("\n")

	sb.WriteString(m.line(ScenarioStyle.Render(padRight(" > "+m.search, w))))
	sb.WriteString(m.line(strings.Repeat(" ", w)))

	end := min(m.offset+scenarioListHeight, len(m.filtered))
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.line(m.renderRow(i)))
	}
	for i := end - m.offset; i < scenarioListHeight; i++ {
		sb.WriteString(m.line(strings.Repeat(" ", w)))
	}

	sb.WriteString(BorderStyle.Render(LeftT + strings.Repeat(Horizontal, w) + RightT))
	sb.WriteString("\n")

	order := "(all, in log order)"
	if len(m.chosen) > 0 {
		order = strings.Join(m.chosen, " ")
	}
	sb.WriteString(m.line(MutedStyle.Render(" Columns: ") + ValueStyle.Render(padRight(order, w-10))))

	sb.WriteString(BorderStyle.Render(BottomLeft + strings.Repeat(Horizontal, w) + BottomRight))
	sb.WriteString("\n")

	count := fmt.Sprintf("  %d/%d scenarios, %d picked", len(m.filtered), len(m.scenarios), len(m.chosen))
	sb.WriteString(count + "  " + HintStyle.Render("[Space:pick] [Enter:confirm] [Esc:cancel]"))
	sb.WriteString("\n")

	return sb.String()
}

func (m ScenarioModel) line(content string) string {
	return BorderStyle.Render(Vertical) + content + BorderStyle.Render(Vertical) + "\n"
}

func (m ScenarioModel) renderRow(idx int) string {
	name := m.filtered[idx]

	cursor := "   "
	if idx == m.cursor {
		cursor = " > "
	}

	mark := "[ ]"
	style := ScenarioStyle
	if pos := slices.Index(m.chosen, name); pos >= 0 {
		mark = fmt.Sprintf("[%d]", pos+1)
		style = GoodStyle
	}

	prefix := cursor + padRight(mark, 5)
	return prefix + style.Render(padRight(name, m.contentWidth-len(prefix)))
}

// SelectScenarioOrder displays an interactive picker and returns the
// scenarios in the order they were picked
func SelectScenarioOrder(scenarios []string) ([]string, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios available")
	}

	p := tea.NewProgram(NewScenarioModel(scenarios))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(ScenarioModel)
	if result.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	return result.chosen, nil
}
