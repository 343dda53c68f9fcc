package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ErrPriceUnavailable signals that no price could be obtained for a ticker.
// Callers skip the ticker and retry on a later cycle.
var ErrPriceUnavailable = errors.New("price unavailable")

// YahooFinanceRepository supplies a single point-in-time price per ticker.
type YahooFinanceRepository interface {
	GetPrice(ctx context.Context, ticker string) (float64, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	priceCache     *cache.Cache
}

// NewYahooFinanceRepository creates a Yahoo Finance chart API client with a
// short-lived in-memory price cache, so one ticker costs one request per
// tracking cycle.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: newRequestLimiter(cfg.YahooFinance.MaxRequestPerMinute),
		priceCache:     cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *yahooFinanceRepository) GetPrice(ctx context.Context, ticker string) (float64, error) {
	if cached, ok := r.priceCache.Get(ticker); ok {
		return cached.(float64), nil
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", r.cfg.YahooFinance.BaseURL, ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	body, err := fetch(req, r.httpClient, r.requestLimiter)
	if err != nil {
		r.log.DebugContext(ctx, "Price fetch failed",
			logger.StringField("ticker", ticker), logger.ErrorField(err))
		return 0, fmt.Errorf("%w: %s", ErrPriceUnavailable, ticker)
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrPriceUnavailable, ticker)
	}
	if len(response.Chart.Result) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrPriceUnavailable, ticker)
	}

	price := response.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrPriceUnavailable, ticker)
	}

	r.priceCache.Set(ticker, price, cache.DefaultExpiration)
	return price, nil
}
