package extract

import (
	"fmt"
	"strings"

	"trade-copilot/internal/api"
	"trade-copilot/internal/models"
)

// Trade reconstructs the trade decision. A typed trade with either action
// or entry set is adopted wholesale; otherwise every field is extracted
// from the corpus independently. Missing fields stay absent rather than
// defaulted.
func Trade(raw *api.RawTrade, corpus, fallbackTicker string) *models.TradeData {
	if raw != nil && (raw.Action != "" || raw.Entry != nil) {
		return adoptTypedTrade(raw, fallbackTicker)
	}
	return tradeFromText(corpus, fallbackTicker)
}

func adoptTypedTrade(raw *api.RawTrade, fallbackTicker string) *models.TradeData {
	ticker := raw.Ticker
	if ticker == "" {
		ticker = fallbackTicker
	}

	trade := &models.TradeData{
		Ticker:       ticker,
		Action:       models.Action(strings.ToUpper(raw.Action)),
		Entry:        raw.Entry,
		Stop:         raw.Stop,
		Target:       raw.Target,
		RiskReward:   raw.RiskReward,
		Conviction:   raw.Conviction,
		Regime:       models.Regime(strings.ToUpper(raw.Regime)),
		Killed:       raw.Killed,
		KillReason:   raw.KillReason,
		PositionSize: raw.PositionSize,
	}

	if len(raw.RiskDetails) > 0 {
		details := make(map[string]string, len(raw.RiskDetails))
		for k, v := range raw.RiskDetails {
			details[normaliseKey(k)] = fmt.Sprint(v)
		}
		trade.RiskDetails = details
	}

	return trade
}

func tradeFromText(corpus, fallbackTicker string) *models.TradeData {
	trade := &models.TradeData{Ticker: fallbackTicker}

	if t := fieldValue(corpus, `ticker`); t != "" {
		trade.Ticker = t
	}
	trade.Action = extractAction(corpus)
	trade.Entry = numberAfter(corpus, `entry(?:\s*price)?`)
	trade.Stop = numberAfter(corpus, `stop(?:\s*loss)?`)
	trade.Target = numberAfter(corpus, `target`)

	if rr := fieldValue(corpus, `risk\s*reward(?:\s*ratio)?`); rr != "" {
		trade.RiskReward = parseRiskReward(rr)
	}
	if reg := extractRegime(corpus); reg != "" {
		trade.Regime = reg
	}
	if conv := numberAfter(corpus, `conviction`); conv != nil {
		clamped := clampConviction(*conv)
		trade.Conviction = &clamped
	}

	trade.Killed = extractKilled(corpus)
	trade.KillReason = extractKillReason(corpus)
	if trade.Killed {
		trade.RiskDetails = extractRiskDetails(corpus, trade)
	}

	return trade
}

// extractAction takes the first of Verdict, Action, or Signal, uppercased.
// A stray sentence around the word ("Final Verdict: **BUY** with caution")
// collapses to the decision token when one is present.
func extractAction(corpus string) models.Action {
	for _, label := range []string{`verdict`, `action`, `signal`} {
		val := strings.ToUpper(fieldValue(corpus, label))
		if val == "" {
			continue
		}
		for _, a := range []models.Action{models.ActionBuy, models.ActionSell, models.ActionHold} {
			if strings.Contains(val, string(a)) {
				return a
			}
		}
		return models.Action(val)
	}
	return ""
}

func extractRegime(corpus string) models.Regime {
	val := strings.ToUpper(fieldValue(corpus, `regime`))
	for _, r := range []models.Regime{models.RegimeBull, models.RegimeBear, models.RegimeSideways, models.RegimeNeutral} {
		if strings.Contains(val, string(r)) {
			return r
		}
	}
	return ""
}

// extractKilled reports whether a Status or Killed field marks the trade as
// rejected by the risk engine.
func extractKilled(corpus string) bool {
	val := fieldValue(corpus, `status|killed`)
	if val == "" {
		return false
	}
	upper := strings.ToUpper(val)
	return strings.Contains(upper, "REJECTED") || strings.EqualFold(val, "true")
}

// extractKillReason prefers a same-line Reason value and falls back to the
// flattened block following a bare "Reason:" line.
func extractKillReason(corpus string) string {
	if v := fieldValue(corpus, `kill\s*reason|reason`); v != "" {
		return v
	}
	return blockAfter(corpus, `reason`)
}

// riskDetailLabels are the fields the risk engine emits with a rejection.
var riskDetailLabels = []string{
	"Position Size",
	"Risk Per Share",
	"Total Risk",
	"Risk Reward",
	"Risk Reward Ratio",
	"Conviction",
}

func extractRiskDetails(corpus string, trade *models.TradeData) map[string]string {
	details := make(map[string]string)

	for _, label := range riskDetailLabels {
		pattern := strings.ReplaceAll(label, " ", `\s*`)
		if v := fieldValue(corpus, pattern); v != "" {
			details[normaliseKey(label)] = v
		}
	}

	if trade.Regime != "" {
		details["regime"] = string(trade.Regime)
	}
	if trade.Action != "" {
		details["action"] = string(trade.Action)
	}
	if lines := blockLines(corpus, `reason`); len(lines) > 0 {
		details["full_reason"] = strings.Join(lines, "\n")
	} else if trade.KillReason != "" {
		details["full_reason"] = trade.KillReason
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
