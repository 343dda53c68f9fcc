package service

import (
	"sort"
	"time"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/pkg/utils"
)

// FindOverlap returns the tickers held by both the aggregate and mirror
// portfolios, sorted by combined weight descending, ticker ascending on ties.
func FindOverlap(aggregate entity.AggregatePortfolio, mirror entity.MirrorPortfolio) []entity.OverlapPosition {
	mirrorByTicker := make(map[string]entity.MirrorPosition, len(mirror.Positions))
	for _, pos := range mirror.Positions {
		mirrorByTicker[pos.Ticker] = pos
	}

	var overlap []entity.OverlapPosition
	for _, pos := range aggregate.Positions {
		m, ok := mirrorByTicker[pos.Ticker]
		if !ok {
			continue
		}
		overlap = append(overlap, entity.OverlapPosition{
			Ticker:            pos.Ticker,
			AggregateWeight:   pos.Weight,
			MirrorWeight:      m.Weight,
			NumCongressBuyers: pos.NumPoliticians,
		})
	}

	sort.SliceStable(overlap, func(i, j int) bool {
		ci := overlap[i].AggregateWeight + overlap[i].MirrorWeight
		cj := overlap[j].AggregateWeight + overlap[j].MirrorWeight
		if ci != cj {
			return ci > cj
		}
		return overlap[i].Ticker < overlap[j].Ticker
	})
	return overlap
}

// BlendPortfolios merges the two strategy portfolios at the given capital
// amount, allocating aggregateAllocation (0..1) of it to the aggregate
// portfolio and the remainder to the mirror. A ticker held by both sides
// accumulates value from each. Positions are sorted by value descending,
// ticker ascending on ties.
func BlendPortfolios(aggregate entity.AggregatePortfolio, mirror entity.MirrorPortfolio, portfolioValue, aggregateAllocation float64, now time.Time) entity.BlendedPortfolio {
	aggregateValue := portfolioValue * aggregateAllocation
	mirrorValue := portfolioValue * (1 - aggregateAllocation)

	values := make(map[string]float64)
	var order []string
	add := func(ticker string, v float64) {
		if _, ok := values[ticker]; !ok {
			order = append(order, ticker)
		}
		values[ticker] += v
	}

	for _, pos := range aggregate.Positions {
		add(pos.Ticker, pos.Weight/100*aggregateValue)
	}
	for _, pos := range mirror.Positions {
		add(pos.Ticker, pos.Weight/100*mirrorValue)
	}

	positions := make([]entity.BlendedPosition, 0, len(order))
	for _, ticker := range order {
		v := values[ticker]
		var weight float64
		if portfolioValue > 0 {
			weight = utils.Round2(v / portfolioValue * 100)
		}
		positions = append(positions, entity.BlendedPosition{
			Ticker: ticker,
			Value:  utils.Round2(v),
			Weight: weight,
		})
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].Value != positions[j].Value {
			return positions[i].Value > positions[j].Value
		}
		return positions[i].Ticker < positions[j].Ticker
	})

	return entity.BlendedPortfolio{
		Positions:           positions,
		TotalValue:          portfolioValue,
		AggregateAllocation: aggregateAllocation,
		MirrorAllocation:    utils.Round2(1 - aggregateAllocation),
		NumPositions:        len(positions),
		GeneratedAt:         now,
	}
}
