package service

import (
	"sort"
	"time"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/pkg/utils"
)

// BuildAggregatePortfolio groups purchases by ticker and weights each ticker
// by its share of total purchased dollars. Positions are sorted by weight
// descending, ticker ascending on ties.
func BuildAggregatePortfolio(txs []entity.Transaction, now time.Time) entity.AggregatePortfolio {
	type bucket struct {
		total       int64
		count       int
		politicians []string
		seen        map[string]struct{}
	}

	byTicker := make(map[string]*bucket)
	var order []string
	var totalValue int64

	for _, tx := range txs {
		if tx.Type != entity.TransactionPurchase {
			continue
		}
		b, ok := byTicker[tx.Ticker]
		if !ok {
			b = &bucket{seen: make(map[string]struct{})}
			byTicker[tx.Ticker] = b
			order = append(order, tx.Ticker)
		}
		b.total += tx.Amount
		b.count++
		if _, dup := b.seen[tx.Politician]; !dup {
			b.seen[tx.Politician] = struct{}{}
			b.politicians = append(b.politicians, tx.Politician)
		}
		totalValue += tx.Amount
	}

	positions := make([]entity.AggregatePosition, 0, len(order))
	for _, ticker := range order {
		b := byTicker[ticker]
		var weight float64
		if totalValue > 0 {
			weight = utils.Round2(100 * float64(b.total) / float64(totalValue))
		}
		positions = append(positions, entity.AggregatePosition{
			Ticker:         ticker,
			Weight:         weight,
			TotalAmount:    b.total,
			PurchaseCount:  b.count,
			Politicians:    b.politicians,
			NumPoliticians: len(b.politicians),
		})
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].Weight != positions[j].Weight {
			return positions[i].Weight > positions[j].Weight
		}
		return positions[i].Ticker < positions[j].Ticker
	})

	return entity.AggregatePortfolio{
		Positions:    positions,
		TotalValue:   totalValue,
		NumPositions: len(positions),
		GeneratedAt:  now,
	}
}

// GenerateRebalanceSignals derives per-ticker buy targets for a hypothetical
// capital amount. Conviction tiers on how many distinct politicians bought.
func GenerateRebalanceSignals(portfolio entity.AggregatePortfolio, portfolioValue float64) []entity.RebalanceSignal {
	signals := make([]entity.RebalanceSignal, 0, len(portfolio.Positions))
	for _, pos := range portfolio.Positions {
		conviction := entity.ConvictionLow
		switch {
		case pos.NumPoliticians >= 3:
			conviction = entity.ConvictionHigh
		case pos.NumPoliticians == 2:
			conviction = entity.ConvictionMedium
		}
		signals = append(signals, entity.RebalanceSignal{
			Ticker:              pos.Ticker,
			Action:              "BUY",
			Weight:              pos.Weight,
			TargetValue:         utils.Round2(pos.Weight / 100 * portfolioValue),
			NumCongressBuyers:   pos.NumPoliticians,
			TotalCongressAmount: pos.TotalAmount,
			Conviction:          conviction,
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Conviction.Rank() != signals[j].Conviction.Rank() {
			return signals[i].Conviction.Rank() < signals[j].Conviction.Rank()
		}
		return signals[i].Weight > signals[j].Weight
	})
	return signals
}

// BuildMirrorPortfolio accumulates a signed net amount per ticker (+purchase,
// -sale) and keeps only tickers still held, i.e. net strictly greater than
// zero. A ticker bought and fully sold nets to zero and is excluded.
func BuildMirrorPortfolio(txs []entity.Transaction, now time.Time) entity.MirrorPortfolio {
	type account struct {
		buys  int64
		sells int64
		last  time.Time
	}

	byTicker := make(map[string]*account)
	var order []string

	for _, tx := range txs {
		a, ok := byTicker[tx.Ticker]
		if !ok {
			a = &account{}
			byTicker[tx.Ticker] = a
			order = append(order, tx.Ticker)
		}
		switch tx.Type {
		case entity.TransactionPurchase:
			a.buys += tx.Amount
		case entity.TransactionSale:
			a.sells += tx.Amount
		}
		if tx.Date.After(a.last) {
			a.last = tx.Date
		}
	}

	var totalValue int64
	positions := make([]entity.MirrorPosition, 0, len(order))
	for _, ticker := range order {
		a := byTicker[ticker]
		net := a.buys - a.sells
		if net <= 0 {
			continue
		}
		positions = append(positions, entity.MirrorPosition{
			Ticker:            ticker,
			EstimatedPosition: net,
			TotalBuys:         a.buys,
			TotalSells:        a.sells,
			LastTradeDate:     a.last,
			Status:            entity.StatusHolding,
		})
		totalValue += net
	}

	for i := range positions {
		if totalValue > 0 {
			positions[i].Weight = utils.Round2(100 * float64(positions[i].EstimatedPosition) / float64(totalValue))
		}
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].Weight != positions[j].Weight {
			return positions[i].Weight > positions[j].Weight
		}
		return positions[i].Ticker < positions[j].Ticker
	})

	return entity.MirrorPortfolio{
		Positions:    positions,
		TotalValue:   totalValue,
		NumPositions: len(positions),
		GeneratedAt:  now,
	}
}

// GenerateMirrorSignals derives per-ticker buy targets to mirror the
// politician's portfolio at a given capital amount. Priority tiers on weight.
func GenerateMirrorSignals(portfolio entity.MirrorPortfolio, portfolioValue float64) []entity.MirrorSignal {
	signals := make([]entity.MirrorSignal, 0, len(portfolio.Positions))
	for _, pos := range portfolio.Positions {
		priority := entity.ConvictionLow
		switch {
		case pos.Weight >= 10:
			priority = entity.ConvictionHigh
		case pos.Weight >= 5:
			priority = entity.ConvictionMedium
		}
		signals = append(signals, entity.MirrorSignal{
			Ticker:       pos.Ticker,
			Action:       "BUY",
			Weight:       pos.Weight,
			TargetValue:  utils.Round2(pos.Weight / 100 * portfolioValue),
			PositionSize: pos.EstimatedPosition,
			LastTrade:    pos.LastTradeDate,
			Priority:     priority,
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Priority.Rank() != signals[j].Priority.Rank() {
			return signals[i].Priority.Rank() < signals[j].Priority.Rank()
		}
		return signals[i].Weight > signals[j].Weight
	})
	return signals
}

// RecentActivity returns trades inside the window, newest first.
func RecentActivity(txs []entity.Transaction, days int, now time.Time) []entity.Transaction {
	cutoff := now.AddDate(0, 0, -days)
	var recent []entity.Transaction
	for _, tx := range txs {
		if !tx.Date.Before(cutoff) {
			recent = append(recent, tx)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	return recent
}
