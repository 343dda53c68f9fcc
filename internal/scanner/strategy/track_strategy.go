package strategy

import (
	"context"
	"fmt"

	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/internal/scanner/repository"
	"golang-congress-scanner/internal/scanner/service"
	"golang-congress-scanner/pkg/logger"
)

// TrackStrategy refreshes every tracked signal against current prices without
// running a new scan, then prints the performance report.
type TrackStrategy struct {
	cfg         *config.Config
	log         *logger.Logger
	yahooRepo   repository.YahooFinanceRepository
	historyRepo repository.SignalHistoryRepository
}

// NewTrackStrategy creates the tracker refresh strategy.
func NewTrackStrategy(
	cfg *config.Config,
	log *logger.Logger,
	yahooRepo repository.YahooFinanceRepository,
	historyRepo repository.SignalHistoryRepository,
) *TrackStrategy {
	return &TrackStrategy{cfg: cfg, log: log, yahooRepo: yahooRepo, historyRepo: historyRepo}
}

// Name returns the strategy name.
func (s *TrackStrategy) Name() string {
	return "track"
}

// Execute refreshes tracked signals and persists the updated history.
func (s *TrackStrategy) Execute(ctx context.Context) error {
	history, err := s.historyRepo.Load()
	if err != nil {
		return err
	}

	tracker := service.NewPerformanceTracker(s.log, s.yahooRepo, history)
	updated := tracker.Update(ctx)

	if err := s.historyRepo.Save(history); err != nil {
		return err
	}

	fmt.Println(tracker.Report())

	s.log.Info("Tracker refresh complete", logger.IntField("updated", updated))
	return nil
}
