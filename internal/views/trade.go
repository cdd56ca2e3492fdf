package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trade-copilot/internal/models"
	"trade-copilot/pkg/utils"
)

// RenderTrade renders the decision card. Absent numeric fields show an
// em-dash; a killed trade gets the flagged treatment with its reason and
// risk details, and never shows entry levels as if actionable.
func RenderTrade(t *models.TradeData, width int) string {
	if t == nil || t.Empty() {
		return panelStyle.Width(width).Render(
			mutedStyle.Render("No decision yet."))
	}

	var b strings.Builder

	action := string(t.Action)
	if action == "" {
		action = utils.EmDash
	}
	actionStyle := mutedStyle
	switch t.Action {
	case models.ActionBuy:
		actionStyle = bullStyle
	case models.ActionSell:
		actionStyle = bearStyle
	}

	title := fmt.Sprintf("%s  %s", t.Ticker, actionStyle.Render(action))
	if t.Killed {
		title += "  " + flaggedStyle.Render("REJECTED")
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	rows := []struct {
		label string
		value string
	}{
		{"Entry", utils.FormatOptionalPrice(t.Entry)},
		{"Stop", utils.FormatOptionalPrice(t.Stop)},
		{"Target", utils.FormatOptionalPrice(t.Target)},
		{"R:R", utils.FormatRiskReward(t.RiskReward)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-8s %s\n", r.label, r.value))
	}
	if t.Conviction != nil {
		b.WriteString(fmt.Sprintf("%-8s %s\n", "Conv", utils.FormatConviction(*t.Conviction)))
	}
	if t.Regime != "" {
		b.WriteString(fmt.Sprintf("%-8s %s\n", "Regime", string(t.Regime)))
	}

	if t.Killed {
		b.WriteString("\n")
		reason := t.KillReason
		if reason == "" {
			reason = "Trade rejected by risk engine"
		}
		b.WriteString(flaggedStyle.Render("✗ " + reason))
		b.WriteString("\n")
		b.WriteString(renderRiskDetails(t.RiskDetails))
	}

	panel := panelStyle
	if t.Killed {
		panel = panel.BorderForeground(lipgloss.Color("#EF4444"))
	}
	return panel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func renderRiskDetails(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		if k == "full_reason" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s: %s", k, details[k])))
		b.WriteString("\n")
	}
	return b.String()
}
