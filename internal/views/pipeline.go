package views

import (
	"fmt"
	"strings"

	"trade-copilot/internal/models"
	"trade-copilot/internal/workspace"
)

// StatusIcon maps a step status to its row icon.
func StatusIcon(s models.StepStatus) string {
	switch s {
	case models.StepRunning:
		return "◐"
	case models.StepComplete:
		return "●"
	case models.StepFlagged:
		return "⚠"
	default:
		return "○"
	}
}

func statusStyleFor(s models.StepStatus) func(string) string {
	switch s {
	case models.StepRunning:
		return func(s string) string { return runningStyle.Render(s) }
	case models.StepComplete:
		return func(s string) string { return completeStyle.Render(s) }
	case models.StepFlagged:
		return func(s string) string { return flaggedStyle.Render(s) }
	default:
		return func(s string) string { return pendingStyle.Render(s) }
	}
}

// RenderPipeline renders the seven-step list. The selected step's raw
// output is expanded below its row; only steps with output are expandable.
func RenderPipeline(steps []models.PipelineStep, selected int, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Pipeline  %d/7", models.CompletedCount(steps))))
	b.WriteString("\n")

	if len(steps) == 0 {
		b.WriteString(mutedStyle.Render("No run yet. Use analyze to start the pipeline."))
		return panelStyle.Width(width).Render(b.String())
	}

	for i, step := range steps {
		style := statusStyleFor(step.Status)
		row := fmt.Sprintf("%s %s", StatusIcon(step.Status), step.Name)
		if step.Summary != "" {
			row += mutedStyle.Render("  " + step.Summary)
		}
		if step.Duration != "" {
			row += mutedStyle.Render("  (" + step.Duration + ")")
		}
		b.WriteString(style(row))
		b.WriteString("\n")

		if i == selected && step.Output != "" {
			b.WriteString(outputStyle.Width(width - 6).Render(strings.TrimSpace(step.Output)))
			b.WriteString("\n")
		}
	}

	return panelStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// Expandable reports whether step i can be selected for output display.
func Expandable(steps []models.PipelineStep, i int) bool {
	return i >= 0 && i < len(steps) && steps[i].Output != ""
}

// RenderRunning renders the in-flight banner row used while the pipeline
// is loading and no typed steps have arrived yet.
func RenderRunning(st workspace.AnalysisState) string {
	if !st.Loading {
		return ""
	}
	return runningStyle.Render("◐ Running AI pipeline…")
}
