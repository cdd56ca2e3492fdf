// Package api provides the HTTP client for the Trade Copilot dashboard API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	apperrors "trade-copilot/internal/errors"
	"trade-copilot/internal/logging"
	"trade-copilot/internal/models"
	"trade-copilot/pkg/utils"
)

// ClientConfig holds API client configuration.
type ClientConfig struct {
	BaseURL       string
	RetryAttempts int
}

// Client talks to the same-origin dashboard API. All calls take a context;
// cancelling it aborts the request at the transport level.
type Client struct {
	http   *resty.Client
	retry  utils.RetryConfig
	logger zerolog.Logger
}

// NewClient creates a new API client.
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	hc := resty.New()
	hc.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	hc.SetHeader("Accept", "application/json")
	// No client-level timeout: deadlines come from the caller's context so
	// the 5-minute pipeline run is not capped by a transport default.

	retry := utils.DefaultRetryConfig()
	if cfg.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.RetryAttempts
	}

	return &Client{
		http:   hc,
		retry:  retry,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// GetMarket fetches OHLCV candles for a ticker and period selection.
// The ticker is trimmed and uppercased; the ".NS" suffix is the server's
// responsibility.
func (c *Client) GetMarket(ctx context.Context, ticker string, period models.Period) ([]models.Candle, error) {
	ticker = utils.NormalizeTicker(ticker)
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ticker":   ticker,
			"period":   period.Period,
			"interval": period.Interval,
			"limit":    strconv.Itoa(period.Limit),
		}).
		Get("/api/market")
	logging.LogAPICall(c.logger, "GET", "/api/market", time.Since(start), err)

	if err != nil {
		return nil, apperrors.NewAPIError(apperrors.KindTransport, "/api/market", 0, err.Error(), err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, httpError("/api/market", resp)
	}

	var body MarketResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, apperrors.NewAPIError(apperrors.KindApplication, "/api/market",
			resp.StatusCode(), "malformed market payload", err)
	}
	if body.Status != "success" {
		msg := body.ErrorMessage
		if msg == "" {
			msg = fmt.Sprintf("market request failed for %s", ticker)
		}
		return nil, apperrors.NewAPIError(apperrors.KindApplication, "/api/market",
			resp.StatusCode(), msg, nil)
	}
	return body.Candles, nil
}

// Analyze runs the full seven-step pipeline for a ticker. The caller owns
// the deadline; context.DeadlineExceeded surfaces through the error chain so
// the workspace can map it to its timeout banner.
func (c *Client) Analyze(ctx context.Context, ticker string) (*AnalyzeResponse, error) {
	ticker = utils.NormalizeTicker(ticker)
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"ticker": ticker}).
		Post("/api/analyze")
	logging.LogAPICall(c.logger, "POST", "/api/analyze", time.Since(start), err)

	if err != nil {
		return nil, apperrors.NewAPIError(apperrors.KindTransport, "/api/analyze", 0, err.Error(), err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, httpError("/api/analyze", resp)
	}

	var body AnalyzeResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, apperrors.NewAPIError(apperrors.KindApplication, "/api/analyze",
			resp.StatusCode(), "malformed analyze payload", err)
	}
	return &body, nil
}

// Chat sends a free-form message to the assistant. This is the top-bar chat
// path; the analysis workspace uses Analyze instead.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"message": message}).
		Post("/api/chat")
	logging.LogAPICall(c.logger, "POST", "/api/chat", time.Since(start), err)

	if err != nil {
		return nil, apperrors.NewAPIError(apperrors.KindTransport, "/api/chat", 0, err.Error(), err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, httpError("/api/chat", resp)
	}

	var body ChatResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, apperrors.NewAPIError(apperrors.KindApplication, "/api/chat",
			resp.StatusCode(), "malformed chat payload", err)
	}
	return &body, nil
}

// GetDocument fetches a dashboard widget document and decodes it verbatim.
// Transient failures are retried; the widgets tolerate eventual consistency.
func (c *Client) GetDocument(ctx context.Context, path string, params map[string]string) (map[string]interface{}, error) {
	return utils.RetryWithResult(ctx, c.retry, func() (map[string]interface{}, error) {
		start := time.Now()
		req := c.http.R().SetContext(ctx)
		if len(params) > 0 {
			req.SetQueryParams(params)
		}
		resp, err := req.Get(path)
		logging.LogAPICall(c.logger, "GET", path, time.Since(start), err)

		if err != nil {
			return nil, apperrors.NewAPIError(apperrors.KindTransport, path, 0, err.Error(), err)
		}
		if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
			return nil, httpError(path, resp)
		}

		var doc map[string]interface{}
		if err := json.Unmarshal(resp.Body(), &doc); err != nil {
			return nil, apperrors.NewAPIError(apperrors.KindApplication, path,
				resp.StatusCode(), "malformed widget payload", err)
		}
		return doc, nil
	})
}

// GetRegime fetches the current market regime widget document.
func (c *Client) GetRegime(ctx context.Context) (map[string]interface{}, error) {
	return c.GetDocument(ctx, "/api/regime", nil)
}

// GetPortfolio fetches the paper-portfolio summary document.
func (c *Client) GetPortfolio(ctx context.Context) (map[string]interface{}, error) {
	return c.GetDocument(ctx, "/api/portfolio", nil)
}

// GetTopDividends fetches the top dividend opportunities document.
func (c *Client) GetTopDividends(ctx context.Context) (map[string]interface{}, error) {
	return c.GetDocument(ctx, "/api/dividend/top", nil)
}

// GetNifty50Signals fetches the Nifty 50 signal board.
func (c *Client) GetNifty50Signals(ctx context.Context, limit int) (map[string]interface{}, error) {
	return c.GetDocument(ctx, "/api/signals/nifty50", map[string]string{
		"limit": strconv.Itoa(limit),
	})
}

// GetOversoldSummary fetches the oversold-bounce backtest summary.
func (c *Client) GetOversoldSummary(ctx context.Context, maxStocks int) (map[string]interface{}, error) {
	return c.GetDocument(ctx, "/api/backtest/oversold-summary", map[string]string{
		"max_stocks": strconv.Itoa(maxStocks),
	})
}

// GetOversoldBest fetches the best oversold-bounce candidates.
func (c *Client) GetOversoldBest(ctx context.Context, topN int) (map[string]interface{}, error) {
	return c.GetDocument(ctx, "/api/backtest/oversold-best", map[string]string{
		"top_n": strconv.Itoa(topN),
	})
}

// httpError builds the surfaced error for a non-2xx response: body detail,
// then message, then raw text, then the bare status code.
func httpError(endpoint string, resp *resty.Response) error {
	code := resp.StatusCode()
	msg := ""

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Detail != "" {
			msg = body.Detail
		} else if body.Message != "" {
			msg = body.Message
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(resp.Body()))
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", code)
	}

	return apperrors.NewAPIError(apperrors.KindHTTP, endpoint, code, msg, nil)
}
