package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/internal/scanner/repository"
	"golang-congress-scanner/pkg/logger"
	"golang-congress-scanner/pkg/utils"
)

const (
	// A tracked signal closes after this many days regardless of return.
	closeAfterDays = 30
	// A tracked signal closes early once its return exceeds this percentage.
	closeReturnPct = 20.0
)

// PerformanceTracker maintains the rolling history of tracked signals and
// their aggregate statistics. The lifecycle per signal is one-way:
// tracking -> closed.
type PerformanceTracker struct {
	log     *logger.Logger
	prices  repository.YahooFinanceRepository
	history *entity.SignalHistory
	now     func() time.Time
}

// NewPerformanceTracker creates a tracker operating on the given history.
func NewPerformanceTracker(log *logger.Logger, prices repository.YahooFinanceRepository, history *entity.SignalHistory) *PerformanceTracker {
	return &PerformanceTracker{log: log, prices: prices, history: history, now: time.Now}
}

// History returns the tracker's backing history for persistence.
func (t *PerformanceTracker) History() *entity.SignalHistory {
	return t.history
}

// IsTracked reports whether a signal with the given ID already exists.
func (t *PerformanceTracker) IsTracked(signalID string) bool {
	for _, s := range t.history.TrackedSignals {
		if s.SignalID == signalID {
			return true
		}
	}
	return false
}

// SignalID derives the tracking key for a signal entered on the given day.
// Cluster signals, which have no single filer, key on "cluster".
func SignalID(signal entity.Signal, entryDate time.Time) string {
	politician := signal.Politician
	if politician == "" {
		politician = "cluster"
	}
	return fmt.Sprintf("%s_%s_%s", signal.Ticker, politician, entryDate.Format("20060102"))
}

// Track registers a signal with its entry price captured at selection time.
func (t *PerformanceTracker) Track(signal entity.Signal, entryPrice float64) *entity.TrackedSignal {
	politician := signal.Politician
	if politician == "" {
		if len(signal.Politicians) > 0 {
			politician = signal.Politicians[0]
		} else {
			politician = "Unknown"
		}
	}

	now := t.now()
	tracked := &entity.TrackedSignal{
		SignalID:   SignalID(signal, now),
		Ticker:     signal.Ticker,
		SignalType: signal.Type,
		Politician: politician,
		EntryDate:  now,
		EntryPrice: entryPrice,
		Amount:     signal.Amount,
		Status:     entity.TrackingActive,
	}
	t.history.TrackedSignals = append(t.history.TrackedSignals, tracked)

	t.log.Info("Now tracking signal",
		logger.StringField("signal_id", tracked.SignalID),
		logger.StringField("ticker", tracked.Ticker),
		logger.Float64Field("entry_price", entryPrice),
	)
	return tracked
}

// Update refreshes every active signal against a current price snapshot,
// closes the ones that crossed a closure condition, and recomputes aggregate
// statistics. A ticker with no available price is skipped this cycle and
// retried on the next one. Returns the number of signals refreshed.
func (t *PerformanceTracker) Update(ctx context.Context) int {
	now := t.now()
	updated := 0

	for _, signal := range t.history.TrackedSignals {
		if signal.Status != entity.TrackingActive || signal.EntryPrice == 0 {
			continue
		}

		price, err := t.prices.GetPrice(ctx, signal.Ticker)
		if err != nil {
			t.log.Warn("Price unavailable, retrying next cycle",
				logger.StringField("ticker", signal.Ticker), logger.ErrorField(err))
			continue
		}

		returnPct := (price - signal.EntryPrice) / signal.EntryPrice * 100
		signal.CurrentPrice = price
		signal.ReturnPct = utils.ToPointer(utils.Round2(returnPct))
		signal.DaysTracked = utils.DaysSince(signal.EntryDate, now)
		updated++

		if signal.DaysTracked >= closeAfterDays || returnPct > closeReturnPct {
			signal.Status = entity.TrackingClosed
			signal.ExitDate = utils.ToPointer(now)
			signal.ExitPrice = price
		}
	}

	t.log.Info("Tracked signals updated", logger.IntField("updated", updated))
	t.recomputeStats()
	return updated
}

// recomputeStats rebuilds the three stat partitions from scratch over every
// signal carrying a computed return.
func (t *PerformanceTracker) recomputeStats() {
	politicianReturns := map[string][]float64{}
	signalTypeReturns := map[string][]float64{}
	tickerReturns := map[string][]float64{}

	for _, signal := range t.history.TrackedSignals {
		if signal.ReturnPct == nil {
			continue
		}
		r := *signal.ReturnPct
		politicianReturns[signal.Politician] = append(politicianReturns[signal.Politician], r)
		signalTypeReturns[string(signal.SignalType)] = append(signalTypeReturns[string(signal.SignalType)], r)
		tickerReturns[signal.Ticker] = append(tickerReturns[signal.Ticker], r)
	}

	t.history.PoliticianPerformance = map[string]entity.PerformanceStats{}
	for politician, returns := range politicianReturns {
		t.history.PoliticianPerformance[politician] = buildStats(returns)
	}

	t.history.SignalTypePerformance = map[string]entity.PerformanceStats{}
	for signalType, returns := range signalTypeReturns {
		t.history.SignalTypePerformance[signalType] = buildStats(returns)
	}

	t.history.TickerPerformance = map[string]entity.TickerStats{}
	for ticker, returns := range tickerReturns {
		t.history.TickerPerformance[ticker] = entity.TickerStats{
			AvgReturn:     utils.Round2(mean(returns)),
			TimesSignaled: len(returns),
		}
	}
}

func buildStats(returns []float64) entity.PerformanceStats {
	wins := 0
	best, worst := returns[0], returns[0]
	for _, r := range returns {
		if r > 0 {
			wins++
		}
		if r > best {
			best = r
		}
		if r < worst {
			worst = r
		}
	}
	return entity.PerformanceStats{
		AvgReturn:    utils.Round2(mean(returns)),
		WinRate:      utils.Round1(float64(wins) / float64(len(returns)) * 100),
		TotalSignals: len(returns),
		BestReturn:   utils.Round2(best),
		WorstReturn:  utils.Round2(worst),
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Report renders a human-readable performance summary.
func (t *PerformanceTracker) Report() string {
	var b strings.Builder
	line := strings.Repeat("=", 60)

	b.WriteString("\n" + line + "\n")
	b.WriteString("PERFORMANCE TRACKING REPORT\n")
	b.WriteString(line + "\n")

	var active, closed []*entity.TrackedSignal
	for _, s := range t.history.TrackedSignals {
		switch s.Status {
		case entity.TrackingActive:
			active = append(active, s)
		case entity.TrackingClosed:
			closed = append(closed, s)
		}
	}

	fmt.Fprintf(&b, "\nActive Signals: %d\n", len(active))
	fmt.Fprintf(&b, "Closed Signals: %d\n", len(closed))
	fmt.Fprintf(&b, "Total Tracked: %d\n", len(t.history.TrackedSignals))

	if len(t.history.PoliticianPerformance) > 0 {
		b.WriteString("\nTop Performing Politicians:\n")
		for i, kv := range topStats(t.history.PoliticianPerformance, 5) {
			fmt.Fprintf(&b, "%d. %s\n   Avg Return: %+.2f%%  Win Rate: %.1f%%  Signals: %d\n",
				i+1, kv.key, kv.stats.AvgReturn, kv.stats.WinRate, kv.stats.TotalSignals)
		}
	}

	if len(t.history.SignalTypePerformance) > 0 {
		b.WriteString("\nSignal Type Performance:\n")
		for _, kv := range topStats(t.history.SignalTypePerformance, 0) {
			fmt.Fprintf(&b, "%s: avg %+.2f%%, win rate %.1f%%, total %d\n",
				kv.key, kv.stats.AvgReturn, kv.stats.WinRate, kv.stats.TotalSignals)
		}
	}

	if len(active) > 0 {
		sort.SliceStable(active, func(i, j int) bool {
			return returnOrZero(active[i]) > returnOrZero(active[j])
		})
		fmt.Fprintf(&b, "\nCurrently Tracking (%d signals):\n", len(active))
		for _, s := range active[:min(5, len(active))] {
			fmt.Fprintf(&b, "- %s - %s", s.Ticker, s.Politician)
			if s.ReturnPct != nil {
				fmt.Fprintf(&b, ": %+.2f%% over %d days (entry $%.2f, now $%.2f)",
					*s.ReturnPct, s.DaysTracked, s.EntryPrice, s.CurrentPrice)
			}
			b.WriteString("\n")
		}
	}

	if len(closed) > 0 {
		sort.SliceStable(closed, func(i, j int) bool {
			return returnOrZero(closed[i]) > returnOrZero(closed[j])
		})
		b.WriteString("\nBest Closed Trades:\n")
		for _, s := range closed[:min(3, len(closed))] {
			fmt.Fprintf(&b, "- %s - %s: %+.2f%% (entry $%.2f -> exit $%.2f, %d days)\n",
				s.Ticker, s.Politician, returnOrZero(s), s.EntryPrice, s.ExitPrice, s.DaysTracked)
		}
	}

	b.WriteString("\n" + line + "\n")
	return b.String()
}

type statsEntry struct {
	key   string
	stats entity.PerformanceStats
}

// topStats sorts a stats partition by average return descending. A limit of 0
// keeps everything.
func topStats(m map[string]entity.PerformanceStats, limit int) []statsEntry {
	entries := make([]statsEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, statsEntry{k, v})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].stats.AvgReturn != entries[j].stats.AvgReturn {
			return entries[i].stats.AvgReturn > entries[j].stats.AvgReturn
		}
		return entries[i].key < entries[j].key
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func returnOrZero(s *entity.TrackedSignal) float64 {
	if s.ReturnPct == nil {
		return 0
	}
	return *s.ReturnPct
}
