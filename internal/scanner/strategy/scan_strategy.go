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
	"golang-congress-scanner/pkg/telegram"
)

// ScanStrategy runs the core signal scan: fetch disclosures from every
// provider, normalize and deduplicate them, detect signals, persist the run
// artifact, and feed the performance tracker and alert sinks.
type ScanStrategy struct {
	cfg              *config.Config
	log              *logger.Logger
	houseRepo        repository.HouseTradesRepository
	senateRepo       repository.SenateTradesRepository
	yahooRepo        repository.YahooFinanceRepository
	historyRepo      repository.SignalHistoryRepository
	artifactRepo     repository.ArtifactRepository
	archiveRepo      repository.SignalArchiveRepository
	discordNotifier  discord.Notifier
	telegramNotifier telegram.Notifier
}

// NewScanStrategy creates the signal-scan strategy. The archive and telegram
// collaborators are optional; nil disables them.
func NewScanStrategy(
	cfg *config.Config,
	log *logger.Logger,
	houseRepo repository.HouseTradesRepository,
	senateRepo repository.SenateTradesRepository,
	yahooRepo repository.YahooFinanceRepository,
	historyRepo repository.SignalHistoryRepository,
	artifactRepo repository.ArtifactRepository,
	archiveRepo repository.SignalArchiveRepository,
	discordNotifier discord.Notifier,
	telegramNotifier telegram.Notifier,
) *ScanStrategy {
	return &ScanStrategy{
		cfg:              cfg,
		log:              log,
		houseRepo:        houseRepo,
		senateRepo:       senateRepo,
		yahooRepo:        yahooRepo,
		historyRepo:      historyRepo,
		artifactRepo:     artifactRepo,
		archiveRepo:      archiveRepo,
		discordNotifier:  discordNotifier,
		telegramNotifier: telegramNotifier,
	}
}

// Name returns the strategy name.
func (s *ScanStrategy) Name() string {
	return "scan"
}

// Execute runs one full scan cycle.
func (s *ScanStrategy) Execute(ctx context.Context) error {
	s.log.Info("Starting congressional trade scan",
		logger.IntField("lookback_days", s.cfg.Scanner.LookbackDays))

	trades := s.collectTrades(ctx)
	if len(trades) == 0 {
		s.log.Warn("No recent trades found from any provider")
	}

	detector := service.NewDetector(service.DetectorConfig{
		ClusterThreshold:    s.cfg.Scanner.ClusterThreshold,
		LargeTradeMin:       s.cfg.Scanner.MinTradeSize,
		TopPerformers:       s.cfg.Scanner.TopPerformers,
		CommitteeAlignments: s.cfg.Scanner.CommitteeAlignments,
	}, s.log)
	signals := detector.Detect(trades)

	result := dto.ScanResult{
		Signals:       signals,
		AllTrades:     trades,
		ScanTimestamp: time.Now(),
	}
	if err := s.artifactRepo.Save(s.cfg.Scanner.OutputFile, result); err != nil {
		s.log.Error("Failed to save scan artifact", logger.ErrorField(err))
	}

	if s.archiveRepo != nil {
		if err := s.archiveRepo.Create(ctx, signals); err != nil {
			s.log.Error("Failed to archive signals", logger.ErrorField(err))
		}
	}

	s.trackPerformance(ctx, signals)
	s.sendAlerts(ctx, signals)

	s.log.Info("Scan complete",
		logger.IntField("trades", len(trades)),
		logger.IntField("signals", len(signals)))
	return nil
}

// collectTrades fetches, normalizes, and deduplicates across both chambers.
// A failed provider contributes nothing rather than aborting the run.
func (s *ScanStrategy) collectTrades(ctx context.Context) []entity.Transaction {
	normalizer := service.NewNormalizer(s.log, service.NormalizeFilter{
		LookbackDays: s.cfg.Scanner.LookbackDays,
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

	return service.Deduplicate(trades)
}

// trackPerformance enrolls the top new signals into the tracker, refreshes
// every active one, and persists the history. Tracking failures never fail
// the scan.
func (s *ScanStrategy) trackPerformance(ctx context.Context, signals []entity.Signal) {
	history, err := s.historyRepo.Load()
	if err != nil {
		s.log.Error("Failed to load signal history", logger.ErrorField(err))
		return
	}

	tracker := service.NewPerformanceTracker(s.log, s.yahooRepo, history)

	maxTracked := s.cfg.Tracker.MaxTracked
	if maxTracked <= 0 {
		maxTracked = 5
	}

	now := time.Now()
	enrolled := 0
	for _, signal := range signals {
		if enrolled >= maxTracked {
			break
		}
		if tracker.IsTracked(service.SignalID(signal, now)) {
			continue
		}
		price, err := s.yahooRepo.GetPrice(ctx, signal.Ticker)
		if err != nil {
			s.log.Warn("Skipping tracking, entry price unavailable",
				logger.StringField("ticker", signal.Ticker), logger.ErrorField(err))
			continue
		}
		tracker.Track(signal, price)
		enrolled++
	}

	tracker.Update(ctx)

	if err := s.historyRepo.Save(history); err != nil {
		s.log.Error("Failed to save signal history", logger.ErrorField(err))
	}

	report := tracker.Report()
	if s.discordNotifier != nil {
		if err := s.discordNotifier.SendReport(ctx, report); err != nil {
			s.log.Error("Failed to send performance report", logger.ErrorField(err))
		}
	}
	if s.telegramNotifier != nil {
		for _, msg := range telegram.FormatReportForTelegram(report) {
			if err := s.telegramNotifier.SendMessage(msg); err != nil {
				s.log.Error("Failed to send performance report to Telegram", logger.ErrorField(err))
			}
		}
	}
}

func (s *ScanStrategy) sendAlerts(ctx context.Context, signals []entity.Signal) {
	if len(signals) == 0 {
		return
	}

	if s.discordNotifier != nil {
		if err := s.discordNotifier.SendSignals(ctx, signals); err != nil {
			s.log.Error("Failed to send Discord alerts", logger.ErrorField(err))
		}
	}

	if s.telegramNotifier != nil {
		for _, msg := range telegram.FormatSignalsForTelegram(signals) {
			if err := s.telegramNotifier.SendMessage(msg); err != nil {
				s.log.Error("Failed to send Telegram alert", logger.ErrorField(err))
			}
		}
	}
}
