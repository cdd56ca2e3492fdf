// Package workspace implements the analysis workspace controller: a single
// writer over the chart and pipeline state with generation-guarded fetches
// on two independent channels.
package workspace

import (
	"trade-copilot/internal/models"
)

// NoSelection marks selectedStepIndex as absent.
const NoSelection = -1

// ChartState is the chart panel's slice of the workspace state.
type ChartState struct {
	Candles []models.Candle
	Loading bool
	Error   string
}

// AnalysisState is the pipeline panel's slice of the workspace state.
// Steps is nil when no run has happened or the last run failed.
type AnalysisState struct {
	Loading bool
	Trade   *models.TradeData
	Steps   []models.PipelineStep
	Debate  *models.Debate
	Error   string
}

// State is a point-in-time snapshot of the workspace. Subscribers receive
// copies; only the controller mutates the live value.
type State struct {
	Ticker            string
	PeriodIndex       int
	ChartView         models.ChartView
	Chart             ChartState
	Analysis          AnalysisState
	SelectedStepIndex int
}

// clone deep-copies the slices so a snapshot stays stable after publication.
func (s State) clone() State {
	out := s
	if s.Chart.Candles != nil {
		out.Chart.Candles = make([]models.Candle, len(s.Chart.Candles))
		copy(out.Chart.Candles, s.Chart.Candles)
	}
	if s.Analysis.Steps != nil {
		out.Analysis.Steps = make([]models.PipelineStep, len(s.Analysis.Steps))
		copy(out.Analysis.Steps, s.Analysis.Steps)
	}
	return out
}

// Period resolves the current period table entry.
func (s State) Period() models.Period {
	return models.PeriodByIndex(s.PeriodIndex)
}
