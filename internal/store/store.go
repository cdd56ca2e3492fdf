// Package store provides data persistence implementations.
package store

import (
	"context"
	"time"
)

// Preference keys the shell persists. The workspace core itself holds no
// client-side storage; these belong to the app shell.
const (
	PrefTheme   = "theme"
	PrefAPIBase = "api_base"
)

// RunRecord is one journaled analyze run.
type RunRecord struct {
	ID         int64
	Ticker     string
	Action     string
	Killed     bool
	KillReason string
	Conviction float64
	RiskReward *float64
	CreatedAt  time.Time
}

// DataStore persists shell preferences and the analyze-run journal.
type DataStore interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error

	SaveRun(ctx context.Context, run RunRecord) (int64, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	Close() error
}
