package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/pkg/logger"
)

func TestArtifactRepositoryRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "congress_buys.json")
	repo := NewArtifactRepository(logger.NewNop())

	saved := dto.CongressBuysResult{
		Strategy: "congress_buys",
		Portfolio: entity.AggregatePortfolio{
			Positions: []entity.AggregatePosition{
				{Ticker: "NVDA", Weight: 60, TotalAmount: 600, NumPoliticians: 3},
			},
			TotalValue:   600,
			NumPositions: 1,
			GeneratedAt:  time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		},
		LastUpdated: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(path, saved))

	var loaded dto.CongressBuysResult
	require.NoError(t, repo.Load(path, &loaded))
	assert.Equal(t, saved.Strategy, loaded.Strategy)
	require.Len(t, loaded.Portfolio.Positions, 1)
	assert.Equal(t, "NVDA", loaded.Portfolio.Positions[0].Ticker)
	assert.Equal(t, 60.0, loaded.Portfolio.Positions[0].Weight)
}

func TestArtifactRepositoryLoadMissingFile(t *testing.T) {
	repo := NewArtifactRepository(logger.NewNop())

	var doc dto.CongressBuysResult
	err := repo.Load(filepath.Join(t.TempDir(), "missing.json"), &doc)
	assert.Error(t, err)
}
