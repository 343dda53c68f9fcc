package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SignalRecord is the archived form of an emitted signal. The full payload is
// kept as JSONB so the schema survives new signal kinds without migrations.
type SignalRecord struct {
	ID         int64          `json:"id"`
	Ticker     string         `json:"ticker"`
	SignalType string         `json:"signal_type"`
	Politician string         `json:"politician"`
	Amount     int64          `json:"amount"`
	Priority   int            `json:"priority"`
	Data       datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (SignalRecord) TableName() string {
	return "signal_records"
}
