package strategy

import (
	"context"
	"time"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/internal/scanner/repository"
	"golang-congress-scanner/internal/scanner/service"
	"golang-congress-scanner/pkg/discord"
	"golang-congress-scanner/pkg/logger"
)

// CongressBuysStrategy builds the broad follow-the-buys portfolio: every
// purchase above the floor, weighted by total congressional dollars.
type CongressBuysStrategy struct {
	cfg             *config.Config
	log             *logger.Logger
	houseRepo       repository.HouseTradesRepository
	senateRepo      repository.SenateTradesRepository
	artifactRepo    repository.ArtifactRepository
	discordNotifier discord.Notifier
}

// NewCongressBuysStrategy creates the broad congress-buys strategy.
func NewCongressBuysStrategy(
	cfg *config.Config,
	log *logger.Logger,
	houseRepo repository.HouseTradesRepository,
	senateRepo repository.SenateTradesRepository,
	artifactRepo repository.ArtifactRepository,
	discordNotifier discord.Notifier,
) *CongressBuysStrategy {
	return &CongressBuysStrategy{
		cfg:             cfg,
		log:             log,
		houseRepo:       houseRepo,
		senateRepo:      senateRepo,
		artifactRepo:    artifactRepo,
		discordNotifier: discordNotifier,
	}
}

// Name returns the strategy name.
func (s *CongressBuysStrategy) Name() string {
	return "congress-buys"
}

// Execute rebuilds the aggregate portfolio and its rebalance signals.
func (s *CongressBuysStrategy) Execute(ctx context.Context) error {
	s.log.Info("Building congress-buys portfolio",
		logger.IntField("lookback_days", s.cfg.CongressBuys.LookbackDays),
		logger.Int64Field("min_position_size", s.cfg.CongressBuys.MinPositionSize))

	normalizer := service.NewNormalizer(s.log, service.NormalizeFilter{
		LookbackDays:  s.cfg.CongressBuys.LookbackDays,
		MinAmount:     s.cfg.CongressBuys.MinPositionSize,
		PurchasesOnly: true,
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
	portfolio := service.BuildAggregatePortfolio(trades, now)
	signals := service.GenerateRebalanceSignals(portfolio, s.cfg.CongressBuys.PortfolioValue)

	result := dto.CongressBuysResult{
		Strategy:    "congress_buys",
		Description: "Copy all congressional purchases, weighted by amount",
		Portfolio:   portfolio,
		Signals:     signals,
		LastUpdated: now,
	}
	if err := s.artifactRepo.Save(s.cfg.CongressBuys.OutputFile, result); err != nil {
		return err
	}

	if s.discordNotifier != nil {
		if err := s.discordNotifier.SendCongressBuysUpdate(ctx, result); err != nil {
			s.log.Error("Failed to send congress-buys update", logger.ErrorField(err))
		}
	}

	s.log.Info("Congress-buys portfolio built",
		logger.IntField("positions", portfolio.NumPositions),
		logger.Int64Field("total_value", portfolio.TotalValue))
	return nil
}
