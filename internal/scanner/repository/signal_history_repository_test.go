package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/pkg/logger"
)

func TestSignalHistoryRepositoryFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	repo := NewSignalHistoryRepository(path, logger.NewNop())

	history, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, history.TrackedSignals)
	assert.NotNil(t, history.PoliticianPerformance)
	assert.NotNil(t, history.SignalTypePerformance)
	assert.NotNil(t, history.TickerPerformance)
}

func TestSignalHistoryRepositoryRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	repo := NewSignalHistoryRepository(path, logger.NewNop())

	history := entity.NewSignalHistory()
	ret := 12.5
	history.TrackedSignals = append(history.TrackedSignals, &entity.TrackedSignal{
		SignalID:   "NVDA_Nancy Pelosi_20260820",
		Ticker:     "NVDA",
		SignalType: entity.SignalLargeTrade,
		Politician: "Nancy Pelosi",
		EntryDate:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		EntryPrice: 100,
		ReturnPct:  &ret,
		Status:     entity.TrackingActive,
	})
	history.TickerPerformance["NVDA"] = entity.TickerStats{AvgReturn: 12.5, TimesSignaled: 1}

	require.NoError(t, repo.Save(history))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded.TrackedSignals, 1)
	assert.Equal(t, history.TrackedSignals[0].SignalID, loaded.TrackedSignals[0].SignalID)
	require.NotNil(t, loaded.TrackedSignals[0].ReturnPct)
	assert.Equal(t, 12.5, *loaded.TrackedSignals[0].ReturnPct)
	assert.Equal(t, 1, loaded.TickerPerformance["NVDA"].TimesSignaled)
}

func TestSignalHistoryRepositoryBackfillsMissingMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tracked_signals": []}`), 0o644))

	repo := NewSignalHistoryRepository(path, logger.NewNop())
	history, err := repo.Load()
	require.NoError(t, err)
	assert.NotNil(t, history.PoliticianPerformance)
	assert.NotNil(t, history.SignalTypePerformance)
	assert.NotNil(t, history.TickerPerformance)
}

func TestSignalHistoryRepositoryRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	repo := NewSignalHistoryRepository(path, logger.NewNop())
	_, err := repo.Load()
	assert.Error(t, err)
}

func TestSignalHistoryRepositorySaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	repo := NewSignalHistoryRepository(path, logger.NewNop())

	require.NoError(t, repo.Save(entity.NewSignalHistory()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "history.json", entries[0].Name())
}
