package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/pkg/logger"
)

func newYahooTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, YahooFinanceRepository) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.YahooFinance.BaseURL = server.URL
	cfg.YahooFinance.MaxRequestPerMinute = 6000

	return server, NewYahooFinanceRepository(cfg, logger.NewNop())
}

func TestGetPrice(t *testing.T) {
	requests := 0
	_, repo := newYahooTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/v8/finance/chart/NVDA", r.URL.Path)
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":181.25,"currency":"USD","symbol":"NVDA"}}]}}`)
	})

	price, err := repo.GetPrice(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, 181.25, price)

	// Second lookup is served from the cache.
	price, err = repo.GetPrice(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, 181.25, price)
	assert.Equal(t, 1, requests)
}

func TestGetPriceUnavailable(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "not json")
			},
		},
		{
			name: "empty result set",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[]}}`)
			},
		},
		{
			name: "non-positive price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":0}}]}}`)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, repo := newYahooTestServer(t, tc.handler)
			_, err := repo.GetPrice(context.Background(), "NVDA")
			assert.ErrorIs(t, err, ErrPriceUnavailable)
		})
	}
}
