package repository

import (
	"context"
	"encoding/json"

	"golang-congress-scanner/internal/entity"

	"gorm.io/gorm"
)

// SignalArchiveRepository persists emitted signals to the database for
// long-term querying. The JSON artifact remains the source of truth for a
// single run; the archive accumulates across runs.
type SignalArchiveRepository interface {
	Create(ctx context.Context, signals []entity.Signal) error
	FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.SignalRecord, error)
}

type signalArchiveRepository struct {
	db *gorm.DB
}

// NewSignalArchiveRepository creates a gorm-backed signal archive.
func NewSignalArchiveRepository(db *gorm.DB) SignalArchiveRepository {
	return &signalArchiveRepository{db: db}
}

func (r *signalArchiveRepository) Create(ctx context.Context, signals []entity.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	records := make([]entity.SignalRecord, 0, len(signals))
	for _, s := range signals {
		payload, err := json.Marshal(s)
		if err != nil {
			return err
		}
		records = append(records, entity.SignalRecord{
			Ticker:     s.Ticker,
			SignalType: string(s.Type),
			Politician: s.Politician,
			Amount:     s.Amount,
			Priority:   s.Priority(),
			Data:       payload,
		})
	}

	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *signalArchiveRepository) FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.SignalRecord, error) {
	var records []entity.SignalRecord
	q := r.db.WithContext(ctx).Where("ticker = ?", ticker).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
