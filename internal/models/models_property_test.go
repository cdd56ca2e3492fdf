package models

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: a candle built as low <= body <= high always validates, and
// swapping low above the body always fails.
func TestProperty_CandleValidation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("well-formed candles validate", prop.ForAll(
		func(base, bodySpan, wickSpan float64) bool {
			c := Candle{
				Open:   base,
				Close:  base + bodySpan,
				High:   base + bodySpan + wickSpan,
				Low:    base - wickSpan,
				Volume: 100,
			}
			return c.Valid()
		},
		gen.Float64Range(300, 10000),
		gen.Float64Range(0, 500),
		gen.Float64Range(0, 200),
	))

	properties.Property("low above body invalidates", prop.ForAll(
		func(base float64) bool {
			c := Candle{Open: base, Close: base, High: base + 10, Low: base + 5, Volume: 1}
			return !c.Valid()
		},
		gen.Float64Range(10, 10000),
	))

	properties.TestingRun(t)
}

// Property: PeriodByIndex is total and always lands in the table.
func TestProperty_PeriodByIndexTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("clamps into the table", prop.ForAll(
		func(i int) bool {
			p := PeriodByIndex(i)
			return PeriodIndexByLabel(p.Label) >= 0 && p.Limit == 260
		},
		gen.IntRange(-100, 100),
	))

	properties.TestingRun(t)
}

func TestStatusRankOrdering(t *testing.T) {
	order := []StepStatus{StepPending, StepRunning, StepComplete, StepFlagged}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("rank(%s) should exceed rank(%s)", order[i], order[i-1])
		}
	}
	if StepStatus("garbage").Rank() != StepPending.Rank() {
		t.Error("unknown statuses rank as pending")
	}
}

func TestNewPendingSteps(t *testing.T) {
	steps := NewPendingSteps()
	if len(steps) != StepCount {
		t.Fatalf("got %d steps", len(steps))
	}
	if steps[StepDebate].Name != "Debate (Bull vs Bear)" {
		t.Errorf("unexpected debate step name %q", steps[StepDebate].Name)
	}
	if CompletedCount(steps) != 0 {
		t.Error("fresh steps must count zero complete")
	}
}

func TestTradeValidateBuyInvariant(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	good := &TradeData{Action: ActionBuy, Entry: f(100), Stop: f(95), Target: f(115), RiskReward: f(3)}
	if err := good.Validate(1.5); err != nil {
		t.Errorf("valid BUY rejected: %v", err)
	}

	inverted := &TradeData{Action: ActionBuy, Entry: f(100), Stop: f(105), Target: f(115)}
	if err := inverted.Validate(1.5); err == nil {
		t.Error("stop above entry must fail validation")
	}

	thin := &TradeData{Action: ActionBuy, Entry: f(100), Stop: f(95), Target: f(115), RiskReward: f(1.0)}
	if err := thin.Validate(1.5); err == nil {
		t.Error("risk reward below minimum must fail validation")
	}

	killed := &TradeData{Action: ActionBuy, Entry: f(100), Stop: f(105), Target: f(90), Killed: true}
	if err := killed.Validate(1.5); err != nil {
		t.Errorf("killed trades are not constrained: %v", err)
	}
}

func TestPeriodTable(t *testing.T) {
	if len(Periods) != 5 {
		t.Fatalf("period table must have 5 entries, got %d", len(Periods))
	}
	if Periods[DefaultPeriodIndex].Label != "1M" {
		t.Errorf("default period must be 1M, got %s", Periods[DefaultPeriodIndex].Label)
	}
	if p := Periods[0]; p.Period != "5d" || p.Interval != "15m" {
		t.Errorf("1D row mismatch: %+v", p)
	}
}
