package entity

import "time"

// TransactionType classifies a disclosed trade.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionSale     TransactionType = "sale"
	TransactionUnknown  TransactionType = "unknown"
)

// TradeSource identifies the upstream provider a record came from.
// It is provenance only and never feeds business logic.
type TradeSource string

const (
	SourceHouseStockWatcher  TradeSource = "house_stock_watcher"
	SourceSenateStockWatcher TradeSource = "senate_stock_watcher"
)

// Transaction is the canonical post-normalization trade record.
type Transaction struct {
	Ticker           string          `json:"ticker"`
	Date             time.Time       `json:"date"`
	Politician       string          `json:"politician"`
	Type             TransactionType `json:"transaction_type"`
	Amount           int64           `json:"amount"`
	Party            string          `json:"party,omitempty"`
	AssetDescription string          `json:"asset_description,omitempty"`
	Source           TradeSource     `json:"source"`
}
