package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-copilot/internal/api"
	"trade-copilot/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestTypedTradeWinsOverReplyText(t *testing.T) {
	raw := &api.RawTrade{
		Ticker:     "RELIANCE",
		Action:     "BUY",
		Entry:      fptr(2800),
		Stop:       fptr(2755),
		Target:     fptr(3050),
		RiskReward: fptr(5.55),
		Killed:     false,
	}
	corpus := "REJECTED — risk_reward_ratio below min"

	trade := Trade(raw, corpus, "RELIANCE")
	require.NotNil(t, trade)

	assert.Equal(t, "RELIANCE", trade.Ticker)
	assert.Equal(t, models.ActionBuy, trade.Action)
	assert.Equal(t, 2800.0, *trade.Entry)
	assert.Equal(t, 2755.0, *trade.Stop)
	assert.Equal(t, 3050.0, *trade.Target)
	assert.Equal(t, 5.55, *trade.RiskReward)
	assert.False(t, trade.Killed, "typed killed=false must not be overridden by reply text")
}

func TestTypedTradeTickerFallback(t *testing.T) {
	raw := &api.RawTrade{Action: "HOLD"}
	trade := Trade(raw, "", "INFY")
	require.NotNil(t, trade)
	assert.Equal(t, "INFY", trade.Ticker)
	assert.Equal(t, models.ActionHold, trade.Action)
}

func TestFreeTextTradeExtraction(t *testing.T) {
	reply := "Ticker: TCS\n" +
		"Verdict: SELL\n" +
		"Entry Price: 3500\n" +
		"Stop: 3620\n" +
		"Target: 3260\n" +
		"Risk Reward: 1 : 2\n" +
		"Status: REJECTED\n" +
		"Reason: risk_reward_ratio 1.0 below min_risk_reward 1.5"

	trade := Trade(nil, reply, "TCS")
	require.NotNil(t, trade)

	assert.Equal(t, "TCS", trade.Ticker)
	assert.Equal(t, models.ActionSell, trade.Action)
	require.NotNil(t, trade.Entry)
	assert.Equal(t, 3500.0, *trade.Entry)
	require.NotNil(t, trade.Stop)
	assert.Equal(t, 3620.0, *trade.Stop)
	require.NotNil(t, trade.Target)
	assert.Equal(t, 3260.0, *trade.Target)
	require.NotNil(t, trade.RiskReward)
	assert.Equal(t, 2.0, *trade.RiskReward)
	assert.True(t, trade.Killed)
	assert.Contains(t, trade.KillReason, "risk_reward_ratio")

	steps := Steps(nil, reply)
	assert.Equal(t, models.StepFlagged, steps[models.StepExecutor].Status)
	assert.Contains(t, steps[models.StepExecutor].Summary, "risk_reward_ratio")
}

func TestMarkdownBoldLabelsAreStripped(t *testing.T) {
	reply := "**Ticker**: HDFCBANK\n**Action**: **BUY**\n**Entry**: ₹1,650.50"

	trade := Trade(nil, reply, "")
	require.NotNil(t, trade)
	assert.Equal(t, "HDFCBANK", trade.Ticker)
	assert.Equal(t, models.ActionBuy, trade.Action)
	require.NotNil(t, trade.Entry)
	assert.Equal(t, 1650.50, *trade.Entry)
}

func TestActionPrecedenceVerdictOverAction(t *testing.T) {
	reply := "Action: HOLD\nVerdict: BUY with conviction"
	trade := Trade(nil, reply, "X")
	require.NotNil(t, trade)
	assert.Equal(t, models.ActionBuy, trade.Action)
}

func TestRiskRewardParsing(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1 : 2.5", 2.5},
		{"1:3", 3},
		{"2.50", 2.5},
		{"₹ 2.50", 2.5},
		{"**1 : 5.55**", 5.55},
	}
	for _, tc := range cases {
		got := parseRiskReward(tc.in)
		require.NotNil(t, got, "input %q", tc.in)
		assert.Equal(t, tc.want, *got, "input %q", tc.in)
	}
}

func TestBuildCorpusIncludesStepOutputs(t *testing.T) {
	corpus := BuildCorpus("top reply", []api.RawStep{
		{Output: "regime: BULL"},
		{Output: "   "},
		{Output: "portfolio holdings"},
	})
	assert.Contains(t, corpus, "top reply")
	assert.Contains(t, corpus, "regime: BULL")
	assert.Contains(t, corpus, "portfolio holdings")

	steps := Steps(nil, corpus)
	assert.Equal(t, models.StepComplete, steps[models.StepRegime].Status)
	assert.Equal(t, "Market regime: BULL", steps[models.StepRegime].Summary)
	assert.Equal(t, models.StepComplete, steps[models.StepPortfolio].Status)
	assert.Equal(t, models.StepPending, steps[models.StepAutonomous].Status)
}

func TestTypedStepsAdoptedWhenSevenPresent(t *testing.T) {
	raw := make([]api.RawStep, models.StepCount)
	for i := range raw {
		raw[i] = api.RawStep{Status: "complete", Summary: "done", Duration: "1.2s"}
	}
	raw[2].Status = "running"
	raw[5].Status = "error"

	steps := Steps(raw, "")
	assert.Equal(t, models.StepComplete, steps[0].Status)
	assert.Equal(t, models.StepRunning, steps[2].Status)
	assert.Equal(t, models.StepPending, steps[5].Status, "unknown statuses stay pending")
	assert.Equal(t, "Regime Analyst", steps[0].Name)
	assert.Equal(t, "1.2s", steps[0].Duration)
}

func TestShortTypedStepsIgnored(t *testing.T) {
	raw := []api.RawStep{{Status: "complete"}, {Status: "complete"}}
	steps := Steps(raw, "")
	for _, s := range steps {
		assert.Equal(t, models.StepPending, s.Status)
	}
}

func TestDebateParsedFromStepOutput(t *testing.T) {
	steps := models.NewPendingSteps()
	steps[models.StepDebate].Output = "BULL_THESIS:\n" +
		"- Breakout confirmed on 20d high\n" +
		"- Volume ratio 1.8x vs average\n" +
		"Conviction: 0.72\n" +
		"BEAR_THESIS:\n" +
		"- RSI 78 overbought territory\n" +
		"- Weak sector sentiment ahead\n" +
		"Conviction: 65\n" +
		"CIO_DECISION: BUY"

	debate := DebateResult(nil, "", steps)

	require.Len(t, debate.Bull.Points, 2)
	assert.Equal(t, "Breakout confirmed on 20d high", debate.Bull.Points[0])
	assert.Equal(t, 0.72, debate.Bull.Conviction)
	require.Len(t, debate.Bear.Points, 2)
	assert.Equal(t, 0.65, debate.Bear.Conviction, "percentage convictions divide by 100")
}

func TestDebateTypedAdoption(t *testing.T) {
	raw := &api.RawDebate{
		Bull: &api.RawThesis{Points: []string{"strong earnings"}, Conviction: fptr(0.8)},
		Bear: &api.RawThesis{},
	}
	debate := DebateResult(raw, "ignored reply", nil)
	assert.Equal(t, []string{"strong earnings"}, debate.Bull.Points)
	assert.Equal(t, 0.8, debate.Bull.Conviction)
	assert.Empty(t, debate.Bear.Points)
	assert.Equal(t, 0.5, debate.Bear.Conviction, "missing conviction defaults to 0.5")
}

func TestDebateFallsBackToReply(t *testing.T) {
	reply := "Bull Summary: Momentum and volume both point higher this week\n" +
		"Bear Summary: Valuation stretched relative to sector peers"

	debate := DebateResult(nil, reply, models.NewPendingSteps())
	require.NotEmpty(t, debate.Bull.Points)
	assert.Contains(t, debate.Bull.Points[0], "Momentum")
	require.NotEmpty(t, debate.Bear.Points)
	assert.Contains(t, debate.Bear.Points[0], "Valuation")
}

func TestDebateWholeOutputFallback(t *testing.T) {
	steps := models.NewPendingSteps()
	steps[models.StepDebate].Output = "Momentum strong but valuation stretched near resistance"

	debate := DebateResult(nil, "", steps)
	assert.Equal(t, debate.Bull.Points, debate.Bear.Points,
		"unlabelled debate output feeds both sides")
	require.NotEmpty(t, debate.Bull.Points)
}

func TestKilledTradeCollectsRiskDetails(t *testing.T) {
	reply := "Signal: BUY\n" +
		"Regime: BEAR\n" +
		"Status: REJECTED\n" +
		"Position Size: 0\n" +
		"Risk Per Share: 45.00\n" +
		"Risk Reward Ratio: 1 : 1.2\n" +
		"Reason: regime_suitability failed for BUY in BEAR regime"

	trade := Trade(nil, reply, "SBIN")
	require.NotNil(t, trade)
	assert.True(t, trade.Killed)
	require.NotNil(t, trade.RiskDetails)
	assert.Equal(t, "0", trade.RiskDetails["position_size"])
	assert.Equal(t, "45.00", trade.RiskDetails["risk_per_share"])
	assert.Equal(t, "BEAR", trade.RiskDetails["regime"])
	assert.Equal(t, "BUY", trade.RiskDetails["action"])
}

func TestNotKilledTradeHasNoRiskDetails(t *testing.T) {
	trade := Trade(nil, "Action: BUY\nEntry: 100\nStop: 95\nTarget: 115", "ABC")
	require.NotNil(t, trade)
	assert.False(t, trade.Killed)
	assert.Nil(t, trade.RiskDetails)
}
