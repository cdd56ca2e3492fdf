package workspace

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"trade-copilot/internal/api"
	apperrors "trade-copilot/internal/errors"
	"trade-copilot/internal/extract"
	"trade-copilot/internal/logging"
	"trade-copilot/internal/models"
)

// API is the slice of the dashboard client the controller needs.
type API interface {
	GetMarket(ctx context.Context, ticker string, period models.Period) ([]models.Candle, error)
	Analyze(ctx context.Context, ticker string) (*api.AnalyzeResponse, error)
}

// Config holds controller tuning knobs.
type Config struct {
	// AnalyzeTimeout caps a pipeline run. Zero means the 5-minute default.
	AnalyzeTimeout time.Duration
	// ErrorDismissAfter is how long a pipeline error banner stays up.
	// Zero means the 6.5-second default.
	ErrorDismissAfter time.Duration
	// SubscriberBuffer is each subscriber channel's capacity.
	SubscriberBuffer int
}

// DefaultConfig returns the standard controller configuration.
func DefaultConfig() Config {
	return Config{
		AnalyzeTimeout:    5 * time.Minute,
		ErrorDismissAfter: 6500 * time.Millisecond,
		SubscriberBuffer:  16,
	}
}

// runningStepTitle replaces the first step's name while a run is in flight.
const runningStepTitle = "Running AI pipeline…"

// Controller owns the workspace state. It is the single writer; renderers
// observe through Subscribe. Chart and pipeline fetches run on independent
// channels, each guarded by a generation token so only the latest request
// may commit, and each holding a cancel func so superseded requests are
// aborted at the transport level, not just ignored.
type Controller struct {
	api    API
	cfg    Config
	logger zerolog.Logger

	mu    sync.Mutex
	state State

	chartGen    uint64
	chartCancel context.CancelFunc
	pipeGen     uint64
	pipeCancel  context.CancelFunc
	errGen      uint64

	subscribers []chan State
	inflight    sync.WaitGroup
	closed      bool
}

// NewController creates a controller with an idle state.
func NewController(client API, cfg Config, logger zerolog.Logger) *Controller {
	def := DefaultConfig()
	if cfg.AnalyzeTimeout <= 0 {
		cfg.AnalyzeTimeout = def.AnalyzeTimeout
	}
	if cfg.ErrorDismissAfter <= 0 {
		cfg.ErrorDismissAfter = def.ErrorDismissAfter
	}
	if cfg.SubscriberBuffer <= 0 {
		cfg.SubscriberBuffer = def.SubscriberBuffer
	}

	return &Controller{
		api:    client,
		cfg:    cfg,
		logger: logger.With().Str("component", "workspace").Logger(),
		state: State{
			PeriodIndex:       models.DefaultPeriodIndex,
			ChartView:         models.ViewCandlestick,
			SelectedStepIndex: NoSelection,
		},
	}
}

// Subscribe registers a snapshot channel. Sends are non-blocking; a slow
// subscriber misses intermediate snapshots, never blocks the controller.
func (c *Controller) Subscribe() <-chan State {
	ch := make(chan State, c.cfg.SubscriberBuffer)
	c.mu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// publish fans the current state out to all subscribers. Caller holds mu.
func (c *Controller) publish() {
	snap := c.state.clone()
	for _, ch := range c.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// SetTicker writes the ticker and triggers a chart fetch when the value
// actually changed. It never triggers a pipeline run.
func (c *Controller) SetTicker(ticker string) {
	ticker = strings.TrimSpace(ticker)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || ticker == c.state.Ticker {
		return
	}
	c.state.Ticker = ticker
	c.startChartFetchLocked()
}

// SetPeriodIndex writes the period selection and triggers a chart fetch
// when it changed. Out-of-range indices clamp to the table bounds.
func (c *Controller) SetPeriodIndex(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(models.Periods) {
		i = len(models.Periods) - 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || i == c.state.PeriodIndex {
		return
	}
	c.state.PeriodIndex = i
	c.startChartFetchLocked()
}

// SetView switches between candlestick and line rendering. No fetch.
func (c *Controller) SetView(v models.ChartView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v != models.ViewCandlestick && v != models.ViewLine {
		return
	}
	c.state.ChartView = v
	c.publish()
}

// SelectStep expands step i's output. Selecting the same index again
// clears the selection, as does passing NoSelection.
func (c *Controller) SelectStep(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < NoSelection || i >= models.StepCount {
		return
	}
	if i == c.state.SelectedStepIndex {
		i = NoSelection
	}
	c.state.SelectedStepIndex = i
	c.publish()
}

// DismissError clears the pipeline error banner immediately.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errGen++
	c.state.Analysis.Error = ""
	c.publish()
}

// startChartFetchLocked begins a new chart fetch, aborting any in-flight
// one. Caller holds mu.
func (c *Controller) startChartFetchLocked() {
	if c.chartCancel != nil {
		c.chartCancel()
	}

	c.chartGen++
	gen := c.chartGen
	ticker := c.state.Ticker
	period := c.state.Period()

	// Clear candles up front so a previous ticker's data never lingers
	// while the new fetch is in flight.
	c.state.Chart = ChartState{Loading: true}
	c.publish()

	ctx, cancel := context.WithCancel(context.Background())
	c.chartCancel = cancel
	logging.LogFetch(c.logger, "chart", ticker, gen)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer cancel()

		candles, err := c.api.GetMarket(ctx, ticker, period)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.chartGen {
			logging.LogStale(c.logger, "chart", gen, c.chartGen)
			return
		}
		c.chartCancel = nil
		if err != nil {
			c.state.Chart = ChartState{Error: apperrors.Surface(err)}
		} else {
			c.state.Chart = ChartState{Candles: candles}
		}
		c.publish()
	}()
}

// RunAnalysis starts a pipeline run for the current ticker. A run already
// in flight is not superseded; the caller gets ErrRunInFlight and the UI
// keeps its run control disabled.
func (c *Controller) RunAnalysis() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return apperrors.ErrRunInFlight
	}
	if c.state.Analysis.Loading {
		return apperrors.ErrRunInFlight
	}
	ticker := c.state.Ticker
	if ticker == "" {
		return apperrors.NewValidationError("ticker", ticker, "ticker is required")
	}

	c.pipeGen++
	gen := c.pipeGen
	c.errGen++

	steps := models.NewPendingSteps()
	steps[0].Name = runningStepTitle
	steps[0].Status = models.StepRunning

	c.state.Analysis = AnalysisState{Loading: true, Steps: steps}
	c.state.SelectedStepIndex = NoSelection
	c.publish()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.AnalyzeTimeout)
	c.pipeCancel = cancel
	logging.LogFetch(c.logger, "pipeline", ticker, gen)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer cancel()

		resp, err := c.api.Analyze(ctx, ticker)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.pipeGen {
			logging.LogStale(c.logger, "pipeline", gen, c.pipeGen)
			return
		}
		c.pipeCancel = nil

		if err != nil {
			if apperrors.Is(err, context.DeadlineExceeded) {
				err = apperrors.ErrAnalysisTimeout
			}
			// A failed run must not leave a stale "Running…" grid behind.
			c.state.Analysis = AnalysisState{}
			c.setAnalysisErrorLocked(apperrors.Surface(err))
			c.publish()
			return
		}

		c.commitAnalysisLocked(ticker, resp)
		c.publish()
	}()

	return nil
}

// commitAnalysisLocked runs the extraction cascade and writes the result.
// Caller holds mu.
func (c *Controller) commitAnalysisLocked(ticker string, resp *api.AnalyzeResponse) {
	corpus := extract.BuildCorpus(resp.Reply, resp.Steps)
	steps := extract.Steps(resp.Steps, corpus)
	trade := extract.Trade(resp.Trade, corpus, ticker)
	debate := extract.DebateResult(resp.Debate, resp.Reply, steps)

	c.state.Analysis = AnalysisState{
		Trade:  trade,
		Steps:  steps,
		Debate: &debate,
	}

	if trade != nil {
		conviction := 0.0
		if trade.Conviction != nil {
			conviction = *trade.Conviction
		}
		logging.LogDecision(c.logger, trade.Ticker, string(trade.Action), trade.Killed, conviction)
	}
}

// setAnalysisErrorLocked installs an error banner that auto-dismisses
// unless a newer error or an explicit dismissal got there first. Caller
// holds mu.
func (c *Controller) setAnalysisErrorLocked(msg string) {
	c.errGen++
	gen := c.errGen
	c.state.Analysis.Error = msg

	time.AfterFunc(c.cfg.ErrorDismissAfter, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.errGen {
			return
		}
		c.state.Analysis.Error = ""
		c.publish()
	})
}

// WaitIdle blocks until no fetch goroutine is running.
func (c *Controller) WaitIdle() {
	c.inflight.Wait()
}

// Close aborts in-flight fetches and closes all subscriber channels.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.chartCancel != nil {
		c.chartCancel()
	}
	if c.pipeCancel != nil {
		c.pipeCancel()
	}
	// Bump both generations so late results are dropped, not committed.
	c.chartGen++
	c.pipeGen++
	subs := c.subscribers
	c.subscribers = nil
	c.mu.Unlock()

	c.inflight.Wait()
	for _, ch := range subs {
		close(ch)
	}
}
