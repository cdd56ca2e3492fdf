// Package models provides domain models for the analysis workspace.
package models

// Regime represents a discrete market classification.
type Regime string

const (
	RegimeBull     Regime = "BULL"
	RegimeBear     Regime = "BEAR"
	RegimeSideways Regime = "SIDEWAYS"
	RegimeNeutral  Regime = "NEUTRAL"
)

// Action represents a trade decision direction.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// ChartView selects how the price panel is drawn.
type ChartView string

const (
	ViewCandlestick ChartView = "candlestick"
	ViewLine        ChartView = "line"
)

// Candle represents one OHLCV bar with optional server-computed overlays.
// Overlay pointers are nil when the server had too little history for them.
type Candle struct {
	Date   string   `json:"date"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume int64    `json:"volume"`
	SMA20  *float64 `json:"sma20,omitempty"`
	SMA50  *float64 `json:"sma50,omitempty"`
	SMA200 *float64 `json:"sma200,omitempty"`
	RSI    *float64 `json:"rsi,omitempty"`
}

// Valid reports whether the bar satisfies low <= min(open,close) <=
// max(open,close) <= high with non-negative prices and volume.
func (c Candle) Valid() bool {
	if c.Low < 0 || c.Volume < 0 {
		return false
	}
	lo, hi := c.Open, c.Close
	if lo > hi {
		lo, hi = hi, lo
	}
	return c.Low <= lo && hi <= c.High
}

// Bullish reports whether the bar closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}

// Period is one entry of the fixed chart period selector.
type Period struct {
	Label    string
	Period   string
	Interval string
	Limit    int
}

// Periods is the ordered period selector table. The index into this table is
// the workspace's periodIndex.
var Periods = []Period{
	{Label: "1D", Period: "5d", Interval: "15m", Limit: 260},
	{Label: "1W", Period: "1mo", Interval: "1h", Limit: 260},
	{Label: "1M", Period: "6mo", Interval: "1d", Limit: 260},
	{Label: "3M", Period: "1y", Interval: "1d", Limit: 260},
	{Label: "1Y", Period: "2y", Interval: "1d", Limit: 260},
}

// DefaultPeriodIndex is the 1M selection.
const DefaultPeriodIndex = 2

// PeriodByIndex returns the period tuple for i, clamped into range.
func PeriodByIndex(i int) Period {
	if i < 0 {
		i = 0
	}
	if i >= len(Periods) {
		i = len(Periods) - 1
	}
	return Periods[i]
}

// PeriodIndexByLabel returns the index for a selector label, or -1.
func PeriodIndexByLabel(label string) int {
	for i, p := range Periods {
		if p.Label == label {
			return i
		}
	}
	return -1
}
