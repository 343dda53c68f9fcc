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

// SenateTradesRepository fetches Senate disclosure records.
type SenateTradesRepository interface {
	GetTransactions(ctx context.Context) ([]dto.RawTransaction, error)
}

type senateTradesRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewSenateTradesRepository creates a Senate Stock Watcher client.
func NewSenateTradesRepository(cfg *config.Config, log *logger.Logger) SenateTradesRepository {
	return &senateTradesRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: newRequestLimiter(cfg.Providers.Senate.MaxRequestPerMinute),
	}
}

func (r *senateTradesRepository) GetTransactions(ctx context.Context) ([]dto.RawTransaction, error) {
	url := r.cfg.Providers.Senate.BaseURL + "/api/all_transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	body, err := fetch(req, r.httpClient, r.requestLimiter)
	if err != nil {
		r.log.ErrorContext(ctx, "Senate Stock Watcher unavailable", logger.ErrorField(err))
		return nil, err
	}

	var records []dto.SenateTransaction
	if err := json.Unmarshal(body, &records); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode Senate Stock Watcher response", logger.ErrorField(err))
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
			Fields:           map[string]string{"senator": rec.Senator},
		})
	}

	r.log.DebugContext(ctx, "Fetched Senate transactions", logger.IntField("count", len(raw)))
	return raw, nil
}
