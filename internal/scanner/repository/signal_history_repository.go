package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/pkg/logger"
)

// SignalHistoryRepository persists the tracker state between runs. The store
// is a single JSON document loaded wholesale at startup and rewritten
// wholesale at the end of a run. Concurrent runs are not coordinated: the
// last writer wins, which is a known limitation of the store.
type SignalHistoryRepository interface {
	Load() (*entity.SignalHistory, error)
	Save(history *entity.SignalHistory) error
}

type signalHistoryRepository struct {
	path string
	log  *logger.Logger
}

// NewSignalHistoryRepository creates a file-backed history store.
func NewSignalHistoryRepository(path string, log *logger.Logger) SignalHistoryRepository {
	return &signalHistoryRepository{path: path, log: log}
}

// Load reads the full history. A missing file is a first run, not an error.
func (r *signalHistoryRepository) Load() (*entity.SignalHistory, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.log.Info("No signal history found, starting fresh", logger.StringField("path", r.path))
			return entity.NewSignalHistory(), nil
		}
		return nil, fmt.Errorf("failed to read signal history: %w", err)
	}

	var history entity.SignalHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to decode signal history: %w", err)
	}

	// Older documents may predate the stats maps.
	if history.PoliticianPerformance == nil {
		history.PoliticianPerformance = map[string]entity.PerformanceStats{}
	}
	if history.SignalTypePerformance == nil {
		history.SignalTypePerformance = map[string]entity.PerformanceStats{}
	}
	if history.TickerPerformance == nil {
		history.TickerPerformance = map[string]entity.TickerStats{}
	}
	return &history, nil
}

// Save rewrites the history atomically via a temp file and rename, so a
// crashed run never leaves a truncated document behind.
func (r *signalHistoryRepository) Save(history *entity.SignalHistory) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode signal history: %w", err)
	}
	return writeFileAtomic(r.path, data)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over the destination.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
