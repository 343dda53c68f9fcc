package strategy

import (
	"context"
	"fmt"
	"time"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/internal/scanner/repository"
	"golang-congress-scanner/internal/scanner/service"
	"golang-congress-scanner/pkg/discord"
	"golang-congress-scanner/pkg/logger"
)

// MirrorStrategy reconstructs one politician's portfolio from their
// disclosures and derives targets for mirroring it.
type MirrorStrategy struct {
	cfg             *config.Config
	log             *logger.Logger
	houseRepo       repository.HouseTradesRepository
	senateRepo      repository.SenateTradesRepository
	artifactRepo    repository.ArtifactRepository
	discordNotifier discord.Notifier
}

// NewMirrorStrategy creates the single-politician mirror strategy.
func NewMirrorStrategy(
	cfg *config.Config,
	log *logger.Logger,
	houseRepo repository.HouseTradesRepository,
	senateRepo repository.SenateTradesRepository,
	artifactRepo repository.ArtifactRepository,
	discordNotifier discord.Notifier,
) *MirrorStrategy {
	return &MirrorStrategy{
		cfg:             cfg,
		log:             log,
		houseRepo:       houseRepo,
		senateRepo:      senateRepo,
		artifactRepo:    artifactRepo,
		discordNotifier: discordNotifier,
	}
}

// Name returns the strategy name.
func (s *MirrorStrategy) Name() string {
	return "mirror"
}

// Execute rebuilds the mirrored portfolio and its buy targets.
func (s *MirrorStrategy) Execute(ctx context.Context) error {
	politician := s.cfg.Mirror.Politician
	if politician == "" {
		return fmt.Errorf("mirror strategy requires a politician to follow")
	}

	s.log.Info("Building mirror portfolio",
		logger.StringField("politician", politician),
		logger.IntField("lookback_days", s.cfg.Mirror.LookbackDays))

	normalizer := service.NewNormalizer(s.log, service.NormalizeFilter{
		LookbackDays: s.cfg.Mirror.LookbackDays,
		Politician:   politician,
	})

	var trades []entity.Transaction
	if house, err := s.houseRepo.GetTransactions(ctx); err == nil {
		normalized, _ := normalizer.NormalizeAll(house, entity.SourceHouseStockWatcher)
		trades = append(trades, normalized...)
	}
	if senate, err := s.senateRepo.GetTransactions(ctx); err == nil {
		normalized, _ := normalizer.NormalizeAll(senate, entity.SourceSenateStockWatcher)
		trades = append(trades, normalized...)
	}
	trades = service.Deduplicate(trades)

	now := time.Now()
	portfolio := service.BuildMirrorPortfolio(trades, now)
	signals := service.GenerateMirrorSignals(portfolio, s.cfg.Mirror.PortfolioValue)
	recent := service.RecentActivity(trades, s.cfg.Mirror.RecentActivityDays, now)

	result := dto.MirrorResult{
		Strategy:         "mirror",
		Politician:       politician,
		Description:      fmt.Sprintf("Mirror %s's portfolio from disclosed trades", politician),
		CurrentPortfolio: portfolio,
		MirrorSignals:    signals,
		RecentActivity:   recent,
		AllTrades:        trades,
		LastUpdated:      now,
	}
	if err := s.artifactRepo.Save(s.cfg.Mirror.OutputFile, result); err != nil {
		return err
	}

	if s.discordNotifier != nil {
		if err := s.discordNotifier.SendMirrorUpdate(ctx, result); err != nil {
			s.log.Error("Failed to send mirror update", logger.ErrorField(err))
		}
	}

	s.log.Info("Mirror portfolio built",
		logger.StringField("politician", politician),
		logger.IntField("positions", portfolio.NumPositions),
		logger.IntField("recent_trades", len(recent)))
	return nil
}
