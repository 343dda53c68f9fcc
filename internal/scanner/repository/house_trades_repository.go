package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/pkg/logger"

	"golang.org/x/time/rate"
)

// HouseTradesRepository fetches House disclosure records.
type HouseTradesRepository interface {
	GetTransactions(ctx context.Context) ([]dto.RawTransaction, error)
}

type houseTradesRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewHouseTradesRepository creates a House Stock Watcher client.
func NewHouseTradesRepository(cfg *config.Config, log *logger.Logger) HouseTradesRepository {
	return &houseTradesRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: newRequestLimiter(cfg.Providers.House.MaxRequestPerMinute),
	}
}

func (r *houseTradesRepository) GetTransactions(ctx context.Context) ([]dto.RawTransaction, error) {
	url := r.cfg.Providers.House.BaseURL + "/api/all_transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	body, err := fetch(req, r.httpClient, r.requestLimiter)
	if err != nil {
		r.log.ErrorContext(ctx, "House Stock Watcher unavailable", logger.ErrorField(err))
		return nil, err
	}

	var records []dto.HouseTransaction
	if err := json.Unmarshal(body, &records); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode House Stock Watcher response", logger.ErrorField(err))
		return nil, err
	}

	raw := make([]dto.RawTransaction, 0, len(records))
	for _, rec := range records {
		raw = append(raw, dto.RawTransaction{
			TransactionDate:  rec.TransactionDate,
			Type:             rec.Type,
			Amount:           rec.Amount,
			Ticker:           rec.Ticker,
			AssetDescription: rec.AssetDescription,
			Party:            rec.Party,
			Fields:           map[string]string{"representative": rec.Representative},
		})
	}

	r.log.DebugContext(ctx, "Fetched House transactions", logger.IntField("count", len(raw)))
	return raw, nil
}
