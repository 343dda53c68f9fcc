package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/pkg/logger"
)

func newTestNormalizer(filter NormalizeFilter, now time.Time) *Normalizer {
	n := NewNormalizer(logger.NewNop(), filter)
	n.now = func() time.Time { return now }
	return n
}

func houseRecord(representative string) dto.RawTransaction {
	return dto.RawTransaction{
		TransactionDate:  "2026-08-20",
		Type:             "purchase",
		Amount:           "$1,001 - $15,000",
		Ticker:           "NVDA",
		AssetDescription: "NVIDIA Corporation",
		Party:            "Democrat",
		Fields:           map[string]string{"representative": representative},
	}
}

func TestClassifyTransactionType(t *testing.T) {
	assert.Equal(t, entity.TransactionPurchase, ClassifyTransactionType("Purchase"))
	assert.Equal(t, entity.TransactionPurchase, ClassifyTransactionType("buy"))
	assert.Equal(t, entity.TransactionSale, ClassifyTransactionType("Sale (Full)"))
	assert.Equal(t, entity.TransactionSale, ClassifyTransactionType("sale_partial"))
	assert.Equal(t, entity.TransactionSale, ClassifyTransactionType("Sell"))
	assert.Equal(t, entity.TransactionUnknown, ClassifyTransactionType("Exchange"))
	assert.Equal(t, entity.TransactionUnknown, ClassifyTransactionType(""))
}

func TestNormalize(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("maps house record to canonical transaction", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

		tx, err := n.Normalize(houseRecord("Nancy Pelosi"), entity.SourceHouseStockWatcher)
		require.NoError(t, err)
		assert.Equal(t, "NVDA", tx.Ticker)
		assert.Equal(t, "Nancy Pelosi", tx.Politician)
		assert.Equal(t, entity.TransactionPurchase, tx.Type)
		assert.Equal(t, int64(8000), tx.Amount)
		assert.Equal(t, entity.SourceHouseStockWatcher, tx.Source)
	})

	t.Run("senate records use the senator field", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

		rec := houseRecord("")
		rec.Fields = map[string]string{"senator": "Tommy Tuberville"}
		tx, err := n.Normalize(rec, entity.SourceSenateStockWatcher)
		require.NoError(t, err)
		assert.Equal(t, "Tommy Tuberville", tx.Politician)
	})

	t.Run("recovers ticker from asset description", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

		rec := houseRecord("Nancy Pelosi")
		rec.Ticker = ""
		rec.AssetDescription = "NVIDIA Corporation (NVDA)"
		tx, err := n.Normalize(rec, entity.SourceHouseStockWatcher)
		require.NoError(t, err)
		assert.Equal(t, "NVDA", tx.Ticker)
	})

	t.Run("drops record with no resolvable ticker", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

		rec := houseRecord("Nancy Pelosi")
		rec.Ticker = ""
		rec.AssetDescription = "US Treasury Notes"
		_, err := n.Normalize(rec, entity.SourceHouseStockWatcher)
		assert.ErrorIs(t, err, ErrTickerUnresolved)
	})

	t.Run("drops record outside lookback window", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

		rec := houseRecord("Nancy Pelosi")
		rec.TransactionDate = "2026-01-15"
		_, err := n.Normalize(rec, entity.SourceHouseStockWatcher)
		assert.ErrorIs(t, err, ErrRecordTooOld)
	})

	t.Run("drops record with malformed date", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

		rec := houseRecord("Nancy Pelosi")
		rec.TransactionDate = "08/20/2026"
		_, err := n.Normalize(rec, entity.SourceHouseStockWatcher)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("drops record with missing filer", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

		_, err := n.Normalize(houseRecord("  "), entity.SourceHouseStockWatcher)
		assert.ErrorIs(t, err, ErrFilerMissing)
	})

	t.Run("purchases-only filter drops sales", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30, PurchasesOnly: true}, now)

		rec := houseRecord("Nancy Pelosi")
		rec.Type = "sale_full"
		_, err := n.Normalize(rec, entity.SourceHouseStockWatcher)
		assert.ErrorIs(t, err, ErrTypeFiltered)
	})

	t.Run("minimum amount filter drops small trades", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30, MinAmount: 50000}, now)

		_, err := n.Normalize(houseRecord("Nancy Pelosi"), entity.SourceHouseStockWatcher)
		assert.ErrorIs(t, err, ErrBelowMinimum)
	})

	t.Run("politician filter matches case-insensitive substring", func(t *testing.T) {
		n := newTestNormalizer(NormalizeFilter{LookbackDays: 30, Politician: "pelosi"}, now)

		_, err := n.Normalize(houseRecord("Nancy Pelosi"), entity.SourceHouseStockWatcher)
		assert.NoError(t, err)

		_, err = n.Normalize(houseRecord("Josh Gottheimer"), entity.SourceHouseStockWatcher)
		assert.ErrorIs(t, err, ErrFilerFiltered)
	})
}

func TestNormalizeAll(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	n := newTestNormalizer(NormalizeFilter{LookbackDays: 30}, now)

	stale := houseRecord("Nancy Pelosi")
	stale.TransactionDate = "2026-01-15"
	noFiler := houseRecord("")

	out, counts := n.NormalizeAll([]dto.RawTransaction{
		houseRecord("Nancy Pelosi"),
		stale,
		noFiler,
	}, entity.SourceHouseStockWatcher)

	assert.Len(t, out, 1)
	assert.Equal(t, 1, counts.Stale)
	assert.Equal(t, 1, counts.MissingFiler)
	assert.Equal(t, 2, counts.Total())
}

func TestDeduplicate(t *testing.T) {
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	txs := []entity.Transaction{
		{Ticker: "NVDA", Politician: "Nancy Pelosi", Date: date, Source: entity.SourceHouseStockWatcher},
		{Ticker: "NVDA", Politician: "Nancy Pelosi", Date: date, Source: entity.SourceSenateStockWatcher},
		{Ticker: "NVDA", Politician: "Tommy Tuberville", Date: date},
		{Ticker: "MSFT", Politician: "Nancy Pelosi", Date: date},
	}

	out := Deduplicate(txs)
	require.Len(t, out, 3)

	// First occurrence wins, input order is preserved.
	assert.Equal(t, entity.SourceHouseStockWatcher, out[0].Source)
	assert.Equal(t, "Tommy Tuberville", out[1].Politician)
	assert.Equal(t, "MSFT", out[2].Ticker)
}
