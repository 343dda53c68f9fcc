package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/pkg/logger"
	"golang-congress-scanner/pkg/utils"
)

// Classified drop reasons. Dropped records are counted, never raised.
var (
	ErrInvalidDate      = errors.New("invalid transaction date")
	ErrRecordTooOld     = errors.New("record older than lookback window")
	ErrFilerMissing     = errors.New("filer name missing")
	ErrFilerFiltered    = errors.New("filer does not match target politician")
	ErrTickerUnresolved = errors.New("ticker could not be resolved")
	ErrTypeFiltered     = errors.New("transaction type filtered out")
	ErrBelowMinimum     = errors.New("amount below configured floor")
)

// tickerPattern recovers a ticker from free-text asset descriptions like
// "NVIDIA Corporation (NVDA)".
var tickerPattern = regexp.MustCompile(`\(([A-Z]{1,5})\)`)

// filerFields is the per-source adapter table: each provider names its filer
// field differently.
var filerFields = map[entity.TradeSource]string{
	entity.SourceHouseStockWatcher:  "representative",
	entity.SourceSenateStockWatcher: "senator",
}

// NormalizeFilter narrows which records survive normalization. The zero value
// of every field except LookbackDays disables that filter.
type NormalizeFilter struct {
	LookbackDays  int
	MinAmount     int64
	PurchasesOnly bool
	Politician    string // case-insensitive substring match on the filer name
}

// DropCounts tallies discarded records per drop class for end-of-run
// diagnostics.
type DropCounts struct {
	InvalidDate   int
	Stale         int
	MissingFiler  int
	FilerFiltered int
	NoTicker      int
	TypeFiltered  int
	BelowMinimum  int
}

// Total returns the number of dropped records across all classes.
func (c DropCounts) Total() int {
	return c.InvalidDate + c.Stale + c.MissingFiler + c.FilerFiltered +
		c.NoTicker + c.TypeFiltered + c.BelowMinimum
}

// Normalizer maps heterogeneous raw provider records into the canonical
// transaction shape.
type Normalizer struct {
	log    *logger.Logger
	filter NormalizeFilter
	now    func() time.Time
}

// NewNormalizer creates a normalizer with the given filter.
func NewNormalizer(log *logger.Logger, filter NormalizeFilter) *Normalizer {
	return &Normalizer{log: log, filter: filter, now: time.Now}
}

// ClassifyTransactionType maps a provider type string onto the canonical
// purchase/sale/unknown set by case-insensitive substring match.
func ClassifyTransactionType(raw string) entity.TransactionType {
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "purchase"), strings.Contains(t, "buy"):
		return entity.TransactionPurchase
	case strings.Contains(t, "sale"), strings.Contains(t, "sell"):
		return entity.TransactionSale
	default:
		return entity.TransactionUnknown
	}
}

// Normalize maps one raw record to a canonical transaction. The error, when
// non-nil, is one of the classified drop sentinels.
func (n *Normalizer) Normalize(rec dto.RawTransaction, source entity.TradeSource) (entity.Transaction, error) {
	filer := strings.TrimSpace(rec.Fields[filerFields[source]])
	if filer == "" {
		return entity.Transaction{}, ErrFilerMissing
	}
	if n.filter.Politician != "" &&
		!strings.Contains(strings.ToLower(filer), strings.ToLower(n.filter.Politician)) {
		return entity.Transaction{}, ErrFilerFiltered
	}

	date, err := time.Parse(utils.DateLayout, rec.TransactionDate)
	if err != nil {
		return entity.Transaction{}, ErrInvalidDate
	}
	if n.filter.LookbackDays > 0 {
		cutoff := n.now().AddDate(0, 0, -n.filter.LookbackDays)
		if date.Before(cutoff) {
			return entity.Transaction{}, ErrRecordTooOld
		}
	}

	ticker := strings.TrimSpace(rec.Ticker)
	if ticker == "" {
		if m := tickerPattern.FindStringSubmatch(rec.AssetDescription); m != nil {
			ticker = m[1]
		}
	}
	if ticker == "" {
		return entity.Transaction{}, ErrTickerUnresolved
	}

	transactionType := ClassifyTransactionType(rec.Type)
	if n.filter.PurchasesOnly && transactionType != entity.TransactionPurchase {
		return entity.Transaction{}, ErrTypeFiltered
	}

	amount := ParseAmount(rec.Amount)
	if n.filter.MinAmount > 0 && amount < n.filter.MinAmount {
		return entity.Transaction{}, ErrBelowMinimum
	}

	return entity.Transaction{
		Ticker:           ticker,
		Date:             date,
		Politician:       filer,
		Type:             transactionType,
		Amount:           amount,
		Party:            rec.Party,
		AssetDescription: rec.AssetDescription,
		Source:           source,
	}, nil
}

// NormalizeAll normalizes a provider batch, tallying drops per class and
// logging a survivor summary.
func (n *Normalizer) NormalizeAll(recs []dto.RawTransaction, source entity.TradeSource) ([]entity.Transaction, DropCounts) {
	var counts DropCounts
	out := make([]entity.Transaction, 0, len(recs))

	for _, rec := range recs {
		tx, err := n.Normalize(rec, source)
		switch {
		case err == nil:
			out = append(out, tx)
		case errors.Is(err, ErrInvalidDate):
			counts.InvalidDate++
		case errors.Is(err, ErrRecordTooOld):
			counts.Stale++
		case errors.Is(err, ErrFilerMissing):
			counts.MissingFiler++
		case errors.Is(err, ErrFilerFiltered):
			counts.FilerFiltered++
		case errors.Is(err, ErrTickerUnresolved):
			counts.NoTicker++
		case errors.Is(err, ErrTypeFiltered):
			counts.TypeFiltered++
		case errors.Is(err, ErrBelowMinimum):
			counts.BelowMinimum++
		}
	}

	n.log.Info("Normalized provider batch",
		logger.StringField("source", string(source)),
		logger.IntField("input", len(recs)),
		logger.IntField("usable", len(out)),
		logger.IntField("dropped", counts.Total()),
		logger.IntField("dropped_stale", counts.Stale),
		logger.IntField("dropped_no_ticker", counts.NoTicker),
		logger.IntField("dropped_missing_filer", counts.MissingFiler),
		logger.IntField("dropped_invalid_date", counts.InvalidDate),
	)

	return out, counts
}

// Deduplicate removes records sharing the same (ticker, politician, date)
// triple, keeping the first occurrence. Multiple providers routinely report
// the same disclosure.
func Deduplicate(txs []entity.Transaction) []entity.Transaction {
	type key struct {
		ticker     string
		politician string
		date       string
	}
	seen := make(map[key]struct{}, len(txs))
	out := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		k := key{tx.Ticker, tx.Politician, tx.Date.Format(utils.DateLayout)}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, tx)
	}
	return out
}
