package entity

import "time"

// SignalType is the kind of trading signal a detector emits.
// Each kind carries an intrinsic priority; lower sorts first.
type SignalType string

const (
	SignalCluster          SignalType = "CLUSTER"
	SignalOptionsTrade     SignalType = "OPTIONS_TRADE"
	SignalTopPerformer     SignalType = "TOP_PERFORMER"
	SignalLargeTrade       SignalType = "LARGE_TRADE"
	SignalCommitteeAligned SignalType = "COMMITTEE_ALIGNED"
)

// Priority returns the fixed rank of the signal kind. Unknown kinds sort last.
func (t SignalType) Priority() int {
	switch t {
	case SignalCluster:
		return 1
	case SignalOptionsTrade:
		return 2
	case SignalTopPerformer:
		return 3
	case SignalLargeTrade:
		return 4
	case SignalCommitteeAligned:
		return 5
	default:
		return 99
	}
}

// Signal is a detector finding. Fields beyond Type and Ticker are
// kind-specific; unused ones stay at their zero value and are omitted
// from JSON.
type Signal struct {
	Type            SignalType      `json:"signal_type"`
	Ticker          string          `json:"ticker"`
	Politician      string          `json:"politician,omitempty"`
	TransactionType TransactionType `json:"transaction_type,omitempty"`
	Amount          int64           `json:"amount,omitempty"`
	Date            time.Time       `json:"date,omitempty"`

	// Cluster payload.
	Count       int      `json:"count,omitempty"`
	Politicians []string `json:"politicians,omitempty"`
	TotalAmount int64    `json:"total_amount,omitempty"`
	AvgAmount   int64    `json:"avg_amount,omitempty"`
	Dates       []string `json:"dates,omitempty"`

	// Top performer payload.
	PerformerName string `json:"performer_name,omitempty"`

	// Committee alignment payload.
	Committee string `json:"committee,omitempty"`

	// Unusual activity payload.
	Reason string `json:"reason,omitempty"`

	// Contributing transactions.
	Trades []Transaction `json:"trades,omitempty"`
}

// Priority returns the intrinsic rank of the signal's kind.
func (s Signal) Priority() int {
	return s.Type.Priority()
}
