package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-congress-scanner/internal/entity"
)

func TestFindOverlap(t *testing.T) {
	aggregate := entity.AggregatePortfolio{Positions: []entity.AggregatePosition{
		{Ticker: "NVDA", Weight: 40, NumPoliticians: 3},
		{Ticker: "MSFT", Weight: 35, NumPoliticians: 2},
		{Ticker: "AAPL", Weight: 25, NumPoliticians: 1},
	}}
	mirror := entity.MirrorPortfolio{Positions: []entity.MirrorPosition{
		{Ticker: "MSFT", Weight: 70},
		{Ticker: "NVDA", Weight: 20},
		{Ticker: "LMT", Weight: 10},
	}}

	overlap := FindOverlap(aggregate, mirror)
	require.Len(t, overlap, 2)

	// Sorted by combined weight descending: MSFT 105 over NVDA 60.
	assert.Equal(t, "MSFT", overlap[0].Ticker)
	assert.Equal(t, 35.0, overlap[0].AggregateWeight)
	assert.Equal(t, 70.0, overlap[0].MirrorWeight)
	assert.Equal(t, 2, overlap[0].NumCongressBuyers)
	assert.Equal(t, "NVDA", overlap[1].Ticker)
}

func TestFindOverlapDisjointPortfolios(t *testing.T) {
	aggregate := entity.AggregatePortfolio{Positions: []entity.AggregatePosition{
		{Ticker: "NVDA", Weight: 100},
	}}
	mirror := entity.MirrorPortfolio{Positions: []entity.MirrorPosition{
		{Ticker: "LMT", Weight: 100},
	}}

	assert.Empty(t, FindOverlap(aggregate, mirror))
}

func TestBlendPortfolios(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	aggregate := entity.AggregatePortfolio{Positions: []entity.AggregatePosition{
		{Ticker: "NVDA", Weight: 50},
		{Ticker: "AAPL", Weight: 50},
	}}
	mirror := entity.MirrorPortfolio{Positions: []entity.MirrorPosition{
		{Ticker: "NVDA", Weight: 100},
	}}

	blended := BlendPortfolios(aggregate, mirror, 10000, 0.6, now)

	require.Equal(t, 2, blended.NumPositions)
	assert.Equal(t, 10000.0, blended.TotalValue)
	assert.Equal(t, 0.6, blended.AggregateAllocation)
	assert.Equal(t, 0.4, blended.MirrorAllocation)

	// NVDA gets 50% of the 6000 aggregate sleeve plus all of the 4000 mirror
	// sleeve; AAPL gets the remaining 3000.
	assert.Equal(t, "NVDA", blended.Positions[0].Ticker)
	assert.Equal(t, 7000.0, blended.Positions[0].Value)
	assert.Equal(t, 70.0, blended.Positions[0].Weight)
	assert.Equal(t, "AAPL", blended.Positions[1].Ticker)
	assert.Equal(t, 3000.0, blended.Positions[1].Value)
	assert.Equal(t, 30.0, blended.Positions[1].Weight)
}

func TestBlendPortfoliosOneSideEmpty(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	aggregate := entity.AggregatePortfolio{Positions: []entity.AggregatePosition{
		{Ticker: "NVDA", Weight: 100},
	}}

	blended := BlendPortfolios(aggregate, entity.MirrorPortfolio{}, 10000, 0.6, now)

	// The mirror sleeve stays uninvested; NVDA carries only the aggregate
	// side's 6000.
	require.Equal(t, 1, blended.NumPositions)
	assert.Equal(t, 6000.0, blended.Positions[0].Value)
	assert.Equal(t, 60.0, blended.Positions[0].Weight)
}

func TestBlendPortfoliosValueTieBreaksOnTicker(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	aggregate := entity.AggregatePortfolio{Positions: []entity.AggregatePosition{
		{Ticker: "MSFT", Weight: 50},
		{Ticker: "AAPL", Weight: 50},
	}}

	blended := BlendPortfolios(aggregate, entity.MirrorPortfolio{}, 10000, 0.6, now)
	require.Equal(t, 2, blended.NumPositions)
	assert.Equal(t, "AAPL", blended.Positions[0].Ticker)
	assert.Equal(t, "MSFT", blended.Positions[1].Ticker)
}
