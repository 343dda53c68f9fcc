package entity

import "time"

// Conviction tiers an aggregate position by how many distinct politicians
// bought into it.
type Conviction string

const (
	ConvictionHigh   Conviction = "HIGH"
	ConvictionMedium Conviction = "MEDIUM"
	ConvictionLow    Conviction = "LOW"
)

// Rank returns the sort rank of the conviction tier; lower sorts first.
func (c Conviction) Rank() int {
	switch c {
	case ConvictionHigh:
		return 0
	case ConvictionMedium:
		return 1
	default:
		return 2
	}
}

// PositionStatus marks whether a mirror position is still held.
type PositionStatus string

const StatusHolding PositionStatus = "HOLDING"

// AggregatePosition is one ticker's share of the broad congress-buys
// portfolio.
type AggregatePosition struct {
	Ticker         string   `json:"ticker"`
	Weight         float64  `json:"weight"`
	TotalAmount    int64    `json:"total_amount"`
	PurchaseCount  int      `json:"purchase_count"`
	Politicians    []string `json:"politicians"`
	NumPoliticians int      `json:"num_politicians"`
}

// AggregatePortfolio is the full weighted congress-buys portfolio.
type AggregatePortfolio struct {
	Positions    []AggregatePosition `json:"portfolio"`
	TotalValue   int64               `json:"total_value"`
	NumPositions int                 `json:"num_positions"`
	GeneratedAt  time.Time           `json:"generated_date"`
}

// RebalanceSignal tells the follower what to buy to match the aggregate
// portfolio at a given capital amount.
type RebalanceSignal struct {
	Ticker              string     `json:"ticker"`
	Action              string     `json:"action"`
	Weight              float64    `json:"weight"`
	TargetValue         float64    `json:"target_value"`
	NumCongressBuyers   int        `json:"num_congress_buyers"`
	TotalCongressAmount int64      `json:"total_congress_amount"`
	Conviction          Conviction `json:"conviction"`
}

// MirrorPosition is a single politician's estimated open position.
type MirrorPosition struct {
	Ticker            string         `json:"ticker"`
	EstimatedPosition int64          `json:"estimated_position"`
	TotalBuys         int64          `json:"total_buys"`
	TotalSells        int64          `json:"total_sells"`
	LastTradeDate     time.Time      `json:"last_trade_date"`
	Weight            float64        `json:"weight"`
	Status            PositionStatus `json:"status"`
}

// MirrorPortfolio is the reconstructed portfolio of the mirrored politician.
type MirrorPortfolio struct {
	Positions    []MirrorPosition `json:"portfolio"`
	TotalValue   int64            `json:"total_value"`
	NumPositions int              `json:"num_positions"`
	GeneratedAt  time.Time        `json:"last_updated"`
}

// OverlapPosition is a ticker held by both the aggregate and mirror
// portfolios. Overlap marks double conviction: the crowd and the mirrored
// politician agree.
type OverlapPosition struct {
	Ticker            string  `json:"ticker"`
	AggregateWeight   float64 `json:"congress_weight"`
	MirrorWeight      float64 `json:"mirror_weight"`
	NumCongressBuyers int     `json:"congress_buyers"`
}

// BlendedPosition is one ticker's slice of the blended portfolio.
type BlendedPosition struct {
	Ticker string  `json:"ticker"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// BlendedPortfolio merges the aggregate and mirror portfolios at a fixed
// capital split.
type BlendedPortfolio struct {
	Positions           []BlendedPosition `json:"positions"`
	TotalValue          float64           `json:"total_value"`
	AggregateAllocation float64           `json:"congress_allocation"`
	MirrorAllocation    float64           `json:"mirror_allocation"`
	NumPositions        int               `json:"num_positions"`
	GeneratedAt         time.Time         `json:"generated"`
}

// MirrorSignal tells the follower what to buy to mirror the politician's
// portfolio at a given capital amount. Priority tiers on weight rather than
// buyer count.
type MirrorSignal struct {
	Ticker       string     `json:"ticker"`
	Action       string     `json:"action"`
	Weight       float64    `json:"weight"`
	TargetValue  float64    `json:"target_value"`
	PositionSize int64      `json:"position_size"`
	LastTrade    time.Time  `json:"last_trade"`
	Priority     Conviction `json:"priority"`
}
