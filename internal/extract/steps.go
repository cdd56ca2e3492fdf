package extract

import (
	"regexp"
	"strings"

	"trade-copilot/internal/api"
	"trade-copilot/internal/models"
)

// Evidence patterns per step index. A pending step is promoted to complete
// when its pattern matches the corpus.
var stepEvidence = [models.StepCount]*regexp.Regexp{
	models.StepRegime:     regexp.MustCompile(`(?i)regime\s*:\s*\**\s*(BULL|BEAR|SIDEWAYS)|market regime|regime_suitability`),
	models.StepScanner:    regexp.MustCompile(`(?i)scan_watchlist|breakout|oversold|stocks_scanned|signal_counts|rsi\s*:\s*\d|above_50dma|support_zone`),
	models.StepDividend:   regexp.MustCompile(`(?i)dividend|yield|ex-?date`),
	models.StepDebate:     regexp.MustCompile(`(?i)bull case|bear case|bull_thesis|bear_thesis|cio_decision|debate|bull advocate|bear advocate`),
	models.StepExecutor:   regexp.MustCompile(`(?i)entry[^\n:]*:\s*\**\s*[₹\d]|stop(?:\s*loss)?\s*:\s*\**\s*[₹\d]|target\s*:\s*\**\s*[₹\d]|risk ?reward|trade plan|check_risk|paper trade`),
	models.StepPortfolio:  regexp.MustCompile(`(?i)portfolio|holdings|cash (balance|available)|unrealized|positions`),
	models.StepAutonomous: regexp.MustCompile(`(?i)autonomous|trading loop|scan execute|auto trade`),
}

var (
	killEvidence    = regexp.MustCompile(`REJECTED|SKIPPED|killed`)
	regimeWord      = regexp.MustCompile(`(?i)regime\s*:?\s*\**\s*(BULL|BEAR|SIDEWAYS)`)
	decisionWord    = regexp.MustCompile(`(?i)(?:decision|action|verdict|signal)\s*\**\s*:\s*\**\s*(BUY|SELL|HOLD)`)
	verdictWord     = regexp.MustCompile(`(?i)(?:verdict|decision)\s*\**\s*:\s*\**\s*(BUY|SELL|HOLD)`)
	rejectionReason = regexp.MustCompile(`(?i)(?:kill\s*)?reason\s*\**\s*:[ \t]*([^\n]+)`)
)

// Steps reconstructs the seven pipeline steps. Typed steps are adopted when
// the server sent at least seven; otherwise all start pending. The upgrade
// pass then promotes pending steps on textual evidence and applies the
// rejection rule for the Trade Executor. Statuses only ever move up.
func Steps(raw []api.RawStep, corpus string) []models.PipelineStep {
	steps := models.NewPendingSteps()

	if len(raw) >= models.StepCount {
		for i := 0; i < models.StepCount; i++ {
			steps[i].Status = parseStatus(raw[i].Status)
			steps[i].Summary = stripMD(raw[i].Summary)
			steps[i].Output = raw[i].Output
			steps[i].Duration = raw[i].Duration
		}
	}

	for i := range steps {
		if steps[i].Status != models.StepPending {
			continue
		}
		if !stepEvidence[i].MatchString(corpus) {
			continue
		}
		steps[i].Status = models.StepComplete
		steps[i].Summary = synthSummary(i, corpus)
	}

	// A rejected or skipped trade flags the executor no matter what the
	// typed status or other evidence said.
	if killEvidence.MatchString(corpus) {
		steps[models.StepExecutor].Status = models.StepFlagged
		steps[models.StepExecutor].Summary = rejectionSummary(corpus)
	}

	return steps
}

func parseStatus(s string) models.StepStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running":
		return models.StepRunning
	case "complete", "completed", "done":
		return models.StepComplete
	case "flagged":
		return models.StepFlagged
	default:
		// Unknown and "error" statuses stay pending so the upgrade pass
		// can still promote them on evidence.
		return models.StepPending
	}
}

func synthSummary(index int, corpus string) string {
	switch index {
	case models.StepRegime:
		if m := regimeWord.FindStringSubmatch(corpus); m != nil {
			return "Market regime: " + strings.ToUpper(m[1])
		}
		return "Regime analyzed"
	case models.StepDebate:
		if m := verdictWord.FindStringSubmatch(corpus); m != nil {
			return "Verdict: " + strings.ToUpper(m[1])
		}
		return "Debate complete"
	case models.StepExecutor:
		if m := decisionWord.FindStringSubmatch(corpus); m != nil {
			return "Decision: " + strings.ToUpper(m[1])
		}
		return "Trade evaluated"
	default:
		return "Complete"
	}
}

// rejectionSummary builds the flagged executor summary from the first
// Reason or Kill Reason value, truncated for the step row.
func rejectionSummary(corpus string) string {
	m := rejectionReason.FindStringSubmatch(corpus)
	if m == nil {
		return "Trade rejected"
	}
	reason := stripMD(m[1])
	if reason == "" {
		return "Trade rejected"
	}
	if len(reason) > 60 {
		reason = reason[:57] + "..."
	}
	return reason
}
