package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder   = "240"
	ColorHeader   = "252"
	ColorScenario = "81"
	ColorValue    = "252"
	ColorCount    = "214"
	ColorGood     = "82"
	ColorWarn     = "214"
	ColorBad      = "196"
	ColorMuted    = "240"
	ColorHint     = "245"
)

// Shared styles
var (
	BorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	ScenarioStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorScenario))
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorValue))
	CountStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCount))
	GoodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGood))
	WarnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarn))
	BadStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBad))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

// padLeft right-aligns a string within the specified display width
func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return strings.Repeat(" ", width-sw) + s
}

// border renders a horizontal table border for the given column widths
func border(widths []int, left, mid, right string) string {
	var sb strings.Builder
	sb.WriteString(BorderStyle.Render(left))
	for i, w := range widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(widths)-1 {
			sb.WriteString(BorderStyle.Render(mid))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
	return sb.String()
}
