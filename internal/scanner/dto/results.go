package dto

import (
	"time"

	"golang-congress-scanner/internal/entity"
)

// ScanResult is the signal-scan artifact persisted per run.
type ScanResult struct {
	Signals       []entity.Signal      `json:"signals"`
	AllTrades     []entity.Transaction `json:"all_trades"`
	ScanTimestamp time.Time            `json:"scan_timestamp"`
}

// CongressBuysResult is the broad all-purchases strategy artifact.
type CongressBuysResult struct {
	Strategy    string                    `json:"strategy"`
	Description string                    `json:"description"`
	Portfolio   entity.AggregatePortfolio `json:"portfolio"`
	Signals     []entity.RebalanceSignal  `json:"signals"`
	LastUpdated time.Time                 `json:"last_updated"`
}

// BlendResult is the strategy-analysis artifact: the overlap between the two
// strategy portfolios and their blended merge.
type BlendResult struct {
	Strategy    string                   `json:"strategy"`
	Description string                   `json:"description"`
	Overlap     []entity.OverlapPosition `json:"overlap"`
	Portfolio   entity.BlendedPortfolio  `json:"portfolio"`
	LastUpdated time.Time                `json:"last_updated"`
}

// MirrorResult is the single-politician mirror strategy artifact.
type MirrorResult struct {
	Strategy         string                 `json:"strategy"`
	Politician       string                 `json:"politician"`
	Description      string                 `json:"description"`
	CurrentPortfolio entity.MirrorPortfolio `json:"current_portfolio"`
	MirrorSignals    []entity.MirrorSignal  `json:"mirror_signals"`
	RecentActivity   []entity.Transaction   `json:"recent_activity"`
	AllTrades        []entity.Transaction   `json:"all_trades"`
	LastUpdated      time.Time              `json:"last_updated"`
}
