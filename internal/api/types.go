package api

import "trade-copilot/internal/models"

// MarketResponse is the wire shape of GET /api/market.
type MarketResponse struct {
	Status       string          `json:"status"`
	Ticker       string          `json:"ticker"`
	Period       string          `json:"period"`
	Interval     string          `json:"interval"`
	Candles      []models.Candle `json:"candles"`
	ErrorMessage string          `json:"error_message"`
}

// AnalyzeResponse is the wire shape of POST /api/analyze. Structured fields
// are optional; the reply text alone may carry the whole result.
type AnalyzeResponse struct {
	Reply  string     `json:"reply"`
	Steps  []RawStep  `json:"steps"`
	Trade  *RawTrade  `json:"trade"`
	Debate *RawDebate `json:"debate"`
}

// RawStep is one typed pipeline step as sent by the server.
type RawStep struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Summary  string `json:"summary"`
	Output   string `json:"output"`
	Duration string `json:"duration"`
}

// RawTrade is the typed trade object as sent by the server.
type RawTrade struct {
	Ticker       string                 `json:"ticker"`
	Action       string                 `json:"action"`
	Entry        *float64               `json:"entry"`
	Stop         *float64               `json:"stop"`
	Target       *float64               `json:"target"`
	RiskReward   *float64               `json:"riskReward"`
	Regime       string                 `json:"regime"`
	Conviction   *float64               `json:"conviction"`
	Killed       bool                   `json:"killed"`
	KillReason   string                 `json:"killReason"`
	PositionSize *float64               `json:"positionSize"`
	RiskDetails  map[string]interface{} `json:"riskDetails"`
}

// RawDebate is the typed debate object as sent by the server.
type RawDebate struct {
	Bull *RawThesis `json:"bull"`
	Bear *RawThesis `json:"bear"`
}

// RawThesis is one typed debate side.
type RawThesis struct {
	Points     []string `json:"points"`
	Conviction *float64 `json:"conviction"`
}

// Populated reports whether the thesis carries any usable content.
func (t *RawThesis) Populated() bool {
	return t != nil && (len(t.Points) > 0 || t.Conviction != nil)
}

// ChatResponse is the wire shape of POST /api/chat.
type ChatResponse struct {
	Reply string    `json:"reply"`
	Steps []RawStep `json:"steps"`
}

// errorBody is the shape probed on non-2xx responses, in precedence order.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}
