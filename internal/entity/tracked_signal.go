package entity

import "time"

// TrackingStatus is the lifecycle state of a tracked signal. The transition
// is one-way: tracking -> closed.
type TrackingStatus string

const (
	TrackingActive TrackingStatus = "tracking"
	TrackingClosed TrackingStatus = "closed"
)

// TrackedSignal is one signal selected for performance tracking. ReturnPct is
// a pointer so records that never saw a price update are distinguishable from
// flat ones; only records with a computed return feed the aggregate stats.
type TrackedSignal struct {
	SignalID     string         `json:"signal_id"`
	Ticker       string         `json:"ticker"`
	SignalType   SignalType     `json:"signal_type"`
	Politician   string         `json:"politician"`
	EntryDate    time.Time      `json:"entry_date"`
	EntryPrice   float64        `json:"entry_price"`
	CurrentPrice float64        `json:"current_price,omitempty"`
	ReturnPct    *float64       `json:"return_pct,omitempty"`
	Amount       int64          `json:"amount"`
	Status       TrackingStatus `json:"status"`
	DaysTracked  int            `json:"days_tracked"`
	ExitDate     *time.Time     `json:"exit_date,omitempty"`
	ExitPrice    float64        `json:"exit_price,omitempty"`
}

// PerformanceStats aggregates returns for one partition key.
type PerformanceStats struct {
	AvgReturn    float64 `json:"avg_return"`
	WinRate      float64 `json:"win_rate"`
	TotalSignals int     `json:"total_signals"`
	BestReturn   float64 `json:"best_return"`
	WorstReturn  float64 `json:"worst_return"`
}

// TickerStats is the reduced stat set kept per ticker.
type TickerStats struct {
	AvgReturn     float64 `json:"avg_return"`
	TimesSignaled int     `json:"times_signaled"`
}

// SignalHistory is the full tracking state persisted between runs. It is
// loaded wholesale at startup and rewritten wholesale at the end of a run;
// concurrent runs are not coordinated and the last writer wins.
type SignalHistory struct {
	TrackedSignals        []*TrackedSignal            `json:"tracked_signals"`
	PoliticianPerformance map[string]PerformanceStats `json:"politician_performance"`
	SignalTypePerformance map[string]PerformanceStats `json:"signal_type_performance"`
	TickerPerformance     map[string]TickerStats      `json:"ticker_performance"`
}

// NewSignalHistory returns an empty history for a first run.
func NewSignalHistory() *SignalHistory {
	return &SignalHistory{
		TrackedSignals:        []*TrackedSignal{},
		PoliticianPerformance: map[string]PerformanceStats{},
		SignalTypePerformance: map[string]PerformanceStats{},
		TickerPerformance:     map[string]TickerStats{},
	}
}
