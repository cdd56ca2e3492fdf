package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trade-copilot/internal/errors"
	"trade-copilot/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{BaseURL: srv.URL}, zerolog.Nop()), srv
}

func TestGetMarketSuccess(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"ticker":   r.URL.Query().Get("ticker"),
			"period":   r.URL.Query().Get("period"),
			"interval": r.URL.Query().Get("interval"),
			"limit":    r.URL.Query().Get("limit"),
		}
		json.NewEncoder(w).Encode(MarketResponse{
			Status: "success",
			Ticker: "TCS",
			Candles: []models.Candle{
				{Date: "2026-08-27", Open: 3500, High: 3550, Low: 3480, Close: 3520, Volume: 100000},
			},
		})
	}))

	candles, err := client.GetMarket(context.Background(), "  tcs ", models.PeriodByIndex(2))
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, 3520.0, candles[0].Close)

	assert.Equal(t, "TCS", gotQuery["ticker"], "ticker is trimmed and uppercased, no .NS suffix")
	assert.Equal(t, "6mo", gotQuery["period"])
	assert.Equal(t, "1d", gotQuery["interval"])
	assert.Equal(t, "260", gotQuery["limit"])
}

func TestGetMarketApplicationError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(MarketResponse{
			Status:       "error",
			ErrorMessage: "No data found for ticker BOGUS",
		})
	}))

	_, err := client.GetMarket(context.Background(), "BOGUS", models.PeriodByIndex(0))
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apperrors.KindApplication, apiErr.Kind)
	assert.Equal(t, "No data found for ticker BOGUS", apperrors.Surface(err))
}

func TestHTTPErrorBodyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"detail wins", `{"detail":"ticker required","message":"other"}`, "ticker required"},
		{"message next", `{"message":"rate limited"}`, "rate limited"},
		{"raw text", `upstream exploded`, "upstream exploded"},
		{"status code last", ``, "HTTP 502"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tc.body))
			}))

			_, err := client.GetMarket(context.Background(), "TCS", models.PeriodByIndex(0))
			require.Error(t, err)

			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, apperrors.KindHTTP, apiErr.Kind)
			assert.Equal(t, 502, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestTransportErrorKind(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"}, zerolog.Nop())

	_, err := client.GetMarket(context.Background(), "TCS", models.PeriodByIndex(0))
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apperrors.KindTransport, apiErr.Kind)
}

func TestContextCancellationAbortsRequest(t *testing.T) {
	serverSawCancel := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		close(serverSawCancel)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	_, err := client.GetMarket(ctx, "RELIANCE", models.PeriodByIndex(0))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, context.Canceled))

	select {
	case <-serverSawCancel:
		// The abort reached the server, not just the local goroutine.
	case <-time.After(time.Second):
		t.Fatal("server never observed the cancellation")
	}
}

func TestAnalyzeDeadlinePropagates(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches for client disconnect;
		// otherwise r.Context() is never cancelled and Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := client.Analyze(ctx, "TCS")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, context.DeadlineExceeded),
		"deadline must surface through the error chain for the timeout banner")
}

func TestAnalyzePostsTicker(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(AnalyzeResponse{Reply: "Verdict: HOLD"})
	}))

	resp, err := client.Analyze(context.Background(), "infy")
	require.NoError(t, err)
	assert.Equal(t, "Verdict: HOLD", resp.Reply)
	assert.Equal(t, map[string]string{"ticker": "INFY"}, gotBody)
}

func TestGetDocumentDecodesWidget(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/regime", r.URL.Path)
		w.Write([]byte(`{"regime":"BULL","confidence":0.8}`))
	}))

	doc, err := client.GetRegime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BULL", doc["regime"])
}
