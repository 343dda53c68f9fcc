package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-congress-scanner/internal/entity"
)

func TestBuildAggregatePortfolio(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	txs := []entity.Transaction{
		purchase("AAPL", "Nancy Pelosi", 100, 10),
		purchase("MSFT", "Tommy Tuberville", 300, 11),
		purchase("NVDA", "Josh Gottheimer", 600, 12),
	}

	portfolio := BuildAggregatePortfolio(txs, now)

	require.Equal(t, 3, portfolio.NumPositions)
	assert.Equal(t, int64(1000), portfolio.TotalValue)

	// Sorted by weight descending.
	assert.Equal(t, "NVDA", portfolio.Positions[0].Ticker)
	assert.Equal(t, 60.0, portfolio.Positions[0].Weight)
	assert.Equal(t, "MSFT", portfolio.Positions[1].Ticker)
	assert.Equal(t, 30.0, portfolio.Positions[1].Weight)
	assert.Equal(t, "AAPL", portfolio.Positions[2].Ticker)
	assert.Equal(t, 10.0, portfolio.Positions[2].Weight)
}

func TestBuildAggregatePortfolioCountsDistinctPoliticians(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	txs := []entity.Transaction{
		purchase("NVDA", "Nancy Pelosi", 100, 10),
		purchase("NVDA", "Nancy Pelosi", 200, 11),
		purchase("NVDA", "Tommy Tuberville", 300, 12),
	}

	portfolio := BuildAggregatePortfolio(txs, now)
	require.Equal(t, 1, portfolio.NumPositions)

	pos := portfolio.Positions[0]
	assert.Equal(t, 3, pos.PurchaseCount)
	assert.Equal(t, 2, pos.NumPoliticians)
	assert.Equal(t, []string{"Nancy Pelosi", "Tommy Tuberville"}, pos.Politicians)
}

func TestBuildAggregatePortfolioSkipsSales(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	sale := purchase("NVDA", "Nancy Pelosi", 100, 10)
	sale.Type = entity.TransactionSale

	portfolio := BuildAggregatePortfolio([]entity.Transaction{sale}, now)
	assert.Equal(t, 0, portfolio.NumPositions)
	assert.Equal(t, int64(0), portfolio.TotalValue)
}

func TestGenerateRebalanceSignals(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	txs := []entity.Transaction{
		purchase("NVDA", "Nancy Pelosi", 100, 10),
		purchase("NVDA", "Tommy Tuberville", 100, 11),
		purchase("NVDA", "Josh Gottheimer", 100, 12),
		purchase("MSFT", "Nancy Pelosi", 400, 10),
		purchase("MSFT", "Mark Green", 100, 11),
		purchase("AAPL", "Nancy Pelosi", 200, 10),
	}

	portfolio := BuildAggregatePortfolio(txs, now)
	signals := GenerateRebalanceSignals(portfolio, 100000)
	require.Len(t, signals, 3)

	// High conviction first regardless of weight.
	assert.Equal(t, "NVDA", signals[0].Ticker)
	assert.Equal(t, entity.ConvictionHigh, signals[0].Conviction)
	assert.Equal(t, "MSFT", signals[1].Ticker)
	assert.Equal(t, entity.ConvictionMedium, signals[1].Conviction)
	assert.Equal(t, "AAPL", signals[2].Ticker)
	assert.Equal(t, entity.ConvictionLow, signals[2].Conviction)

	for _, s := range signals {
		assert.Equal(t, "BUY", s.Action)
		assert.InDelta(t, s.Weight/100*100000, s.TargetValue, 0.01)
	}
}

func TestBuildMirrorPortfolio(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	nvdaSell := purchase("NVDA", "Nancy Pelosi", 20000, 15)
	nvdaSell.Type = entity.TransactionSale
	aaplSell := purchase("AAPL", "Nancy Pelosi", 10000, 16)
	aaplSell.Type = entity.TransactionSale

	txs := []entity.Transaction{
		purchase("NVDA", "Nancy Pelosi", 50000, 10),
		nvdaSell,
		purchase("AAPL", "Nancy Pelosi", 10000, 11),
		aaplSell, // fully exited, excluded
	}

	portfolio := BuildMirrorPortfolio(txs, now)
	require.Equal(t, 1, portfolio.NumPositions)

	pos := portfolio.Positions[0]
	assert.Equal(t, "NVDA", pos.Ticker)
	assert.Equal(t, int64(30000), pos.EstimatedPosition)
	assert.Equal(t, int64(50000), pos.TotalBuys)
	assert.Equal(t, int64(20000), pos.TotalSells)
	assert.Equal(t, entity.StatusHolding, pos.Status)
	assert.Equal(t, 100.0, pos.Weight)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), pos.LastTradeDate)
	assert.Equal(t, int64(30000), portfolio.TotalValue)
}

func TestGenerateMirrorSignalsWeightTiers(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	txs := []entity.Transaction{
		purchase("NVDA", "Nancy Pelosi", 850, 10),
		purchase("MSFT", "Nancy Pelosi", 80, 11),
		purchase("AAPL", "Nancy Pelosi", 70, 12),
	}

	portfolio := BuildMirrorPortfolio(txs, now)
	signals := GenerateMirrorSignals(portfolio, 100000)
	require.Len(t, signals, 3)

	assert.Equal(t, entity.ConvictionHigh, signals[0].Priority)   // 85%
	assert.Equal(t, entity.ConvictionMedium, signals[1].Priority) // 8%
	assert.Equal(t, entity.ConvictionLow, signals[2].Priority)    // 7%
}

func TestRecentActivity(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	txs := []entity.Transaction{
		purchase("AAPL", "Nancy Pelosi", 100, 1),
		purchase("NVDA", "Nancy Pelosi", 100, 20),
		purchase("MSFT", "Nancy Pelosi", 100, 25),
	}

	recent := RecentActivity(txs, 10, now)
	require.Len(t, recent, 2)

	// Newest first.
	assert.Equal(t, "MSFT", recent[0].Ticker)
	assert.Equal(t, "NVDA", recent[1].Ticker)
}
