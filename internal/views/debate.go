package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trade-copilot/internal/models"
	"trade-copilot/pkg/utils"
)

// ConvictionBarWidth converts a conviction score to a percentage width,
// rounded and clamped to [0, 100].
func ConvictionBarWidth(conviction float64) int {
	w := int(math.Round(conviction * 100))
	if w < 0 {
		return 0
	}
	if w > 100 {
		return 100
	}
	return w
}

// RenderDebate renders the bull and bear panels side by side. Both panels
// are highlighted while the Debate step is selected.
func RenderDebate(d *models.Debate, selected int, width int) string {
	if d == nil {
		return ""
	}

	panelW := width/2 - 2
	highlight := selected == models.StepDebate

	bull := renderThesis("▲ Bull", bullStyle, d.Bull, panelW, highlight)
	bear := renderThesis("▼ Bear", bearStyle, d.Bear, panelW, highlight)

	return lipgloss.JoinHorizontal(lipgloss.Top, bull, " ", bear)
}

func renderThesis(label string, labelStyle lipgloss.Style, t models.DebateThesis, width int, highlight bool) string {
	var b strings.Builder

	chip := chipStyle.Render(utils.FormatConviction(t.Conviction))
	b.WriteString(labelStyle.Render(label) + " " + chip)
	b.WriteString("\n")
	b.WriteString(convictionBar(t.Conviction, width-4))
	b.WriteString("\n")

	if len(t.Points) == 0 {
		b.WriteString(mutedStyle.Render("No thesis extracted."))
	}
	for _, p := range t.Points {
		b.WriteString("• " + p + "\n")
	}

	panel := panelStyle
	if highlight {
		panel = highlightPanelStyle
	}
	return panel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func convictionBar(conviction float64, width int) string {
	if width < 10 {
		width = 10
	}
	filled := ConvictionBarWidth(conviction) * width / 100
	return completeStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}
