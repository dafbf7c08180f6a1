package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	pkgtypes "github.com/vietdv277/irsstat/pkg/types"
)

// Summary table column widths
var summaryColumnWidths = []int{18, 6, 12, 10, 9, 11, 9}

// PrintSummaryTable prints per-scenario means in a styled box table
func PrintSummaryTable(w io.Writer, sums []pkgtypes.Summary) {
	headers := []string{"Scenario", "Runs", "Thr (Mbps)", "± Thr", "SNR (dB)", "Rate (Mbps)", "Success"}

	var sb strings.Builder

	// Top border
	sb.WriteString(border(summaryColumnWidths, TopLeft, TopT, TopRight))

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		cell := " " + padRight(h, summaryColumnWidths[i]) + " "
		sb.WriteString(HeaderStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	sb.WriteString(border(summaryColumnWidths, LeftT, Cross, RightT))

	// Data rows
	for _, s := range sums {
		sb.WriteString(BorderStyle.Render(Vertical))

		cells := []struct {
			text  string
			style lipgloss.Style
			left  bool
		}{
			{s.Scenario, ScenarioStyle, true},
			{fmt.Sprintf("%d", s.Count), CountStyle, false},
			{fmt.Sprintf("%.2f", s.Throughput), ValueStyle, false},
			{fmt.Sprintf("%.2f", s.ThroughputStdD), MutedStyle, false},
			{fmt.Sprintf("%.2f", s.SNR), ValueStyle, false},
			{fmt.Sprintf("%.2f", s.DataRate), ValueStyle, false},
			{fmt.Sprintf("%.2f%%", s.SuccessRate), successStyle(s.SuccessRate), false},
		}
		for i, c := range cells {
			text := padLeft(c.text, summaryColumnWidths[i])
			if c.left {
				text = padRight(c.text, summaryColumnWidths[i])
			}
			sb.WriteString(c.style.Render(" " + text + " "))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(border(summaryColumnWidths, BottomLeft, BottomT, BottomRight))

	fmt.Fprint(w, sb.String())
	fmt.Fprintln(w, summaryFooter(sums))
}

func successStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 95:
		return GoodStyle
	case rate >= 80:
		return WarnStyle
	default:
		return BadStyle
	}
}

func summaryFooter(sums []pkgtypes.Summary) string {
	total := 0
	best := ""
	bestTp := 0.0
	for _, s := range sums {
		total += s.Count
		if best == "" || s.Throughput > bestTp {
			best, bestTp = s.Scenario, s.Throughput
		}
	}

	footer := fmt.Sprintf("  %d scenarios, %d measurements", len(sums), total)
	if best != "" {
		footer += " (best throughput: " + ScenarioStyle.Render(best) + ")"
	}
	return footer
}
