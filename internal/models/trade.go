package models

import "fmt"

// TradeData represents the reconstructed trade decision for one pipeline run.
// Numeric pointers are nil when neither the typed payload nor the reply text
// carried the field; the UI renders dashes for them.
type TradeData struct {
	Ticker       string            `json:"ticker"`
	Action       Action            `json:"action,omitempty"`
	Entry        *float64          `json:"entry,omitempty"`
	Stop         *float64          `json:"stop,omitempty"`
	Target       *float64          `json:"target,omitempty"`
	RiskReward   *float64          `json:"riskReward,omitempty"`
	Conviction   *float64          `json:"conviction,omitempty"`
	Regime       Regime            `json:"regime,omitempty"`
	Killed       bool              `json:"killed"`
	KillReason   string            `json:"killReason,omitempty"`
	PositionSize *float64          `json:"positionSize,omitempty"`
	RiskDetails  map[string]string `json:"riskDetails,omitempty"`
}

// Empty reports whether the trade carries no decision at all.
func (t *TradeData) Empty() bool {
	return t == nil || (t.Action == "" && t.Entry == nil)
}

// Validate checks the live-trade invariant: a BUY that survived the risk
// engine must have stop < entry < target and riskReward >= minRR. Killed
// trades and HOLD/SELL decisions are not constrained here.
func (t *TradeData) Validate(minRR float64) error {
	if t == nil || t.Killed || t.Action != ActionBuy {
		return nil
	}
	if t.Entry == nil || t.Stop == nil || t.Target == nil {
		return nil
	}
	if !(*t.Stop < *t.Entry && *t.Entry < *t.Target) {
		return fmt.Errorf("trade levels out of order: stop %.2f entry %.2f target %.2f",
			*t.Stop, *t.Entry, *t.Target)
	}
	if t.RiskReward != nil && *t.RiskReward < minRR {
		return fmt.Errorf("risk reward %.2f below minimum %.2f", *t.RiskReward, minRR)
	}
	return nil
}
