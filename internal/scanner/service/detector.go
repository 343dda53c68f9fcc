package service

import (
	"sort"
	"strings"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/pkg/logger"
	"golang-congress-scanner/pkg/utils"
)

// DetectorConfig holds the thresholds and watch lists for signal detection.
type DetectorConfig struct {
	ClusterThreshold    int
	LargeTradeMin       int64
	TopPerformers       []string
	CommitteeAlignments map[string][]string
}

// Detector runs the five signal detection passes over a normalized,
// deduplicated transaction set. All passes are pure; nothing is mutated.
type Detector struct {
	cfg        DetectorConfig
	log        *logger.Logger
	committees []string                       // sorted for deterministic emission
	aligned    map[string]map[string]struct{} // committee -> ticker set
}

// NewDetector creates a detector from the given configuration.
func NewDetector(cfg DetectorConfig, log *logger.Logger) *Detector {
	committees := make([]string, 0, len(cfg.CommitteeAlignments))
	aligned := make(map[string]map[string]struct{}, len(cfg.CommitteeAlignments))
	for committee, tickers := range cfg.CommitteeAlignments {
		committees = append(committees, committee)
		set := make(map[string]struct{}, len(tickers))
		for _, t := range tickers {
			set[t] = struct{}{}
		}
		aligned[committee] = set
	}
	sort.Strings(committees)

	return &Detector{cfg: cfg, log: log, committees: committees, aligned: aligned}
}

// Detect runs every detector and returns the merged signal list, stable-sorted
// by priority. Ties keep detector emission order, so the overall ordering is
// reproducible run to run.
func (d *Detector) Detect(txs []entity.Transaction) []entity.Signal {
	clusters := d.DetectClusters(txs)
	largeTrades := d.DetectLargeTrades(txs)
	topPerformers := d.DetectTopPerformers(txs)
	committeeAligned := d.DetectCommitteeAligned(txs)
	unusual := d.DetectUnusualActivity(txs)

	signals := make([]entity.Signal, 0,
		len(clusters)+len(largeTrades)+len(topPerformers)+len(committeeAligned)+len(unusual))
	signals = append(signals, clusters...)
	signals = append(signals, largeTrades...)
	signals = append(signals, topPerformers...)
	signals = append(signals, committeeAligned...)
	signals = append(signals, unusual...)

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Priority() < signals[j].Priority()
	})

	d.log.Info("Signal detection complete",
		logger.IntField("transactions", len(txs)),
		logger.IntField("cluster", len(clusters)),
		logger.IntField("large_trade", len(largeTrades)),
		logger.IntField("top_performer", len(topPerformers)),
		logger.IntField("committee_aligned", len(committeeAligned)),
		logger.IntField("options_trade", len(unusual)),
	)

	return signals
}

// DetectClusters emits one CLUSTER signal per ticker bought by at least the
// configured number of politicians. Tickers are visited in first-seen order.
func (d *Detector) DetectClusters(txs []entity.Transaction) []entity.Signal {
	byTicker := make(map[string][]entity.Transaction)
	var order []string
	for _, tx := range txs {
		if tx.Type != entity.TransactionPurchase {
			continue
		}
		if _, ok := byTicker[tx.Ticker]; !ok {
			order = append(order, tx.Ticker)
		}
		byTicker[tx.Ticker] = append(byTicker[tx.Ticker], tx)
	}

	var signals []entity.Signal
	for _, ticker := range order {
		group := byTicker[ticker]
		if len(group) < d.cfg.ClusterThreshold {
			continue
		}

		politicians := make([]string, 0, len(group))
		dates := make([]string, 0, len(group))
		var total int64
		for _, tx := range group {
			politicians = append(politicians, tx.Politician)
			dates = append(dates, tx.Date.Format(utils.DateLayout))
			total += tx.Amount
		}

		signals = append(signals, entity.Signal{
			Type:        entity.SignalCluster,
			Ticker:      ticker,
			Count:       len(group),
			Politicians: politicians,
			TotalAmount: total,
			AvgAmount:   total / int64(len(group)),
			Dates:       dates,
			Trades:      group,
		})
	}
	return signals
}

// DetectLargeTrades emits one LARGE_TRADE signal per transaction at or above
// the configured floor. Trades are judged individually, never aggregated.
func (d *Detector) DetectLargeTrades(txs []entity.Transaction) []entity.Signal {
	var signals []entity.Signal
	for _, tx := range txs {
		if tx.Amount < d.cfg.LargeTradeMin {
			continue
		}
		signals = append(signals, entity.Signal{
			Type:            entity.SignalLargeTrade,
			Ticker:          tx.Ticker,
			Politician:      tx.Politician,
			Amount:          tx.Amount,
			TransactionType: tx.Type,
			Date:            tx.Date,
			Trades:          []entity.Transaction{tx},
		})
	}
	return signals
}

// DetectTopPerformers emits one TOP_PERFORMER signal per transaction whose
// filer matches the watch list. The first matching watch-list entry wins; a
// transaction never produces two signals even if the name matches twice.
func (d *Detector) DetectTopPerformers(txs []entity.Transaction) []entity.Signal {
	var signals []entity.Signal
	for _, tx := range txs {
		politician := strings.ToLower(tx.Politician)
		for _, performer := range d.cfg.TopPerformers {
			if !strings.Contains(politician, strings.ToLower(performer)) {
				continue
			}
			signals = append(signals, entity.Signal{
				Type:            entity.SignalTopPerformer,
				Ticker:          tx.Ticker,
				Politician:      tx.Politician,
				Amount:          tx.Amount,
				TransactionType: tx.Type,
				Date:            tx.Date,
				PerformerName:   performer,
				Trades:          []entity.Transaction{tx},
			})
			break
		}
	}
	return signals
}

// DetectCommitteeAligned emits one COMMITTEE_ALIGNED signal per (transaction,
// matching committee) pair. A ticker aligned with several committees fans out
// into several signals; alignment is evaluated per committee.
func (d *Detector) DetectCommitteeAligned(txs []entity.Transaction) []entity.Signal {
	var signals []entity.Signal
	for _, tx := range txs {
		for _, committee := range d.committees {
			if _, ok := d.aligned[committee][tx.Ticker]; !ok {
				continue
			}
			signals = append(signals, entity.Signal{
				Type:            entity.SignalCommitteeAligned,
				Ticker:          tx.Ticker,
				Politician:      tx.Politician,
				Committee:       committee,
				Amount:          tx.Amount,
				TransactionType: tx.Type,
				Date:            tx.Date,
				Trades:          []entity.Transaction{tx},
			})
		}
	}
	return signals
}

// DetectUnusualActivity emits an OPTIONS_TRADE signal when the asset
// description mentions options activity.
func (d *Detector) DetectUnusualActivity(txs []entity.Transaction) []entity.Signal {
	var signals []entity.Signal
	for _, tx := range txs {
		desc := strings.ToLower(tx.AssetDescription)
		if !strings.Contains(desc, "option") &&
			!strings.Contains(desc, "call") &&
			!strings.Contains(desc, "put") {
			continue
		}
		signals = append(signals, entity.Signal{
			Type:            entity.SignalOptionsTrade,
			Ticker:          tx.Ticker,
			Politician:      tx.Politician,
			Amount:          tx.Amount,
			TransactionType: tx.Type,
			Date:            tx.Date,
			Reason:          "Options trade detected",
			Trades:          []entity.Transaction{tx},
		})
	}
	return signals
}
