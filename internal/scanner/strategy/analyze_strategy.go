package strategy

import (
	"context"
	"fmt"
	"time"

	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/internal/scanner/repository"
	"golang-congress-scanner/internal/scanner/service"
	"golang-congress-scanner/pkg/logger"
)

// AnalyzeStrategy compares the congress-buys and mirror artifacts: it reports
// the tickers both portfolios hold and writes a blended portfolio merging the
// two at a fixed capital split. It reads the artifacts the other strategies
// wrote, so they must run first.
type AnalyzeStrategy struct {
	cfg          *config.Config
	log          *logger.Logger
	artifactRepo repository.ArtifactRepository
}

// NewAnalyzeStrategy creates the strategy comparison step.
func NewAnalyzeStrategy(cfg *config.Config, log *logger.Logger, artifactRepo repository.ArtifactRepository) *AnalyzeStrategy {
	return &AnalyzeStrategy{cfg: cfg, log: log, artifactRepo: artifactRepo}
}

// Name returns the strategy name.
func (s *AnalyzeStrategy) Name() string {
	return "analyze"
}

// Execute rebuilds the overlap report and the blended portfolio artifact.
func (s *AnalyzeStrategy) Execute(ctx context.Context) error {
	var buys dto.CongressBuysResult
	if err := s.artifactRepo.Load(s.cfg.CongressBuys.OutputFile, &buys); err != nil {
		return fmt.Errorf("congress-buys artifact not available, run that strategy first: %w", err)
	}
	var mirror dto.MirrorResult
	if err := s.artifactRepo.Load(s.cfg.Mirror.OutputFile, &mirror); err != nil {
		return fmt.Errorf("mirror artifact not available, run that strategy first: %w", err)
	}

	allocation := s.cfg.Analyzer.CongressAllocation
	if allocation <= 0 || allocation >= 1 {
		allocation = 0.6
	}

	now := time.Now()
	overlap := service.FindOverlap(buys.Portfolio, mirror.CurrentPortfolio)
	blended := service.BlendPortfolios(buys.Portfolio, mirror.CurrentPortfolio,
		s.cfg.Analyzer.PortfolioValue, allocation, now)

	result := dto.BlendResult{
		Strategy: "blended",
		Description: fmt.Sprintf("%.0f%% congress buys, %.0f%% %s mirror",
			allocation*100, (1-allocation)*100, mirror.Politician),
		Overlap:     overlap,
		Portfolio:   blended,
		LastUpdated: now,
	}
	if err := s.artifactRepo.Save(s.cfg.Analyzer.OutputFile, result); err != nil {
		return err
	}

	s.log.Info("Blended portfolio built",
		logger.IntField("positions", blended.NumPositions),
		logger.IntField("overlap", len(overlap)))
	return nil
}
