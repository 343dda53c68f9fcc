package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang-congress-scanner/internal/scanner/config"
	"golang-congress-scanner/internal/scanner/repository"
	"golang-congress-scanner/internal/scanner/strategy"
	"golang-congress-scanner/pkg/discord"
	"golang-congress-scanner/pkg/logger"
	"golang-congress-scanner/pkg/postgres"
	"golang-congress-scanner/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var configPath string

// app bundles the wired collaborators shared by every command.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	scan      *strategy.ScanStrategy
	buys      *strategy.CongressBuysStrategy
	mirror    *strategy.MirrorStrategy
	analyze   *strategy.AnalyzeStrategy
	track     *strategy.TrackStrategy
	archive   repository.SignalArchiveRepository
	closeFunc func()
}

// buildApp loads configuration and wires every repository and strategy.
func buildApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	closeFunc := func() { _ = appLogger.Sync() }

	houseRepo := repository.NewHouseTradesRepository(cfg, appLogger)
	senateRepo := repository.NewSenateTradesRepository(cfg, appLogger)
	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	historyRepo := repository.NewSignalHistoryRepository(cfg.Tracker.HistoryFile, appLogger)
	artifactRepo := repository.NewArtifactRepository(appLogger)

	// The signal archive is optional. No database host means no archive.
	var archiveRepo repository.SignalArchiveRepository
	if cfg.Database.Host != "" {
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		archiveRepo = repository.NewSignalArchiveRepository(db.DB)

		prevClose := closeFunc
		closeFunc = func() {
			if sqlDB, err := db.DB.DB(); err == nil {
				sqlDB.Close()
			}
			prevClose()
		}
	}

	discordNotifier := discord.NewClient(cfg.Discord.WebhookURL, cfg.Discord.MaxSignals, cfg.Discord.MessageDelay, appLogger)

	var telegramNotifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram notifier", logger.ErrorField(err))
			telegramNotifier = nil
		}
	}

	return &app{
		cfg: cfg,
		log: appLogger,
		scan: strategy.NewScanStrategy(cfg, appLogger, houseRepo, senateRepo, yahooRepo,
			historyRepo, artifactRepo, archiveRepo, discordNotifier, telegramNotifier),
		buys:      strategy.NewCongressBuysStrategy(cfg, appLogger, houseRepo, senateRepo, artifactRepo, discordNotifier),
		mirror:    strategy.NewMirrorStrategy(cfg, appLogger, houseRepo, senateRepo, artifactRepo, discordNotifier),
		analyze:   strategy.NewAnalyzeStrategy(cfg, appLogger, artifactRepo),
		track:     strategy.NewTrackStrategy(cfg, appLogger, yahooRepo, historyRepo),
		archive:   archiveRepo,
		closeFunc: closeFunc,
	}, nil
}

func runStrategies(ctx context.Context, a *app, strategies ...strategy.Strategy) {
	for _, s := range strategies {
		if err := s.Execute(ctx); err != nil {
			a.log.Error("Strategy failed",
				logger.StringField("strategy", s.Name()), logger.ErrorField(err))
		}
	}
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one congressional trade scan",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.closeFunc()

		runStrategies(ctx, a, a.scan)
	},
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "Rebuild the congress-buys, mirror, and blended portfolios",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.closeFunc()

		runStrategies(ctx, a, a.buys, a.mirror, a.analyze)
	},
}

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Refresh tracked signal performance without scanning",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.closeFunc()

		runStrategies(ctx, a, a.track)
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive [ticker]",
	Short: "List archived signals for a ticker",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.closeFunc()

		if a.archive == nil {
			log.Fatalf("The signal archive requires a configured database")
		}

		ticker := strings.ToUpper(args[0])
		records, err := a.archive.FindByTicker(ctx, ticker, 20)
		if err != nil {
			log.Fatalf("Failed to query signal archive: %v", err)
		}
		if len(records) == 0 {
			fmt.Printf("No archived signals for %s\n", ticker)
			return
		}
		for _, rec := range records {
			fmt.Printf("%s  %-18s %-25s $%d\n",
				rec.CreatedAt.Format("2006-01-02"), rec.SignalType, rec.Politician, rec.Amount)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scanner on a schedule",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.closeFunc()

		a.log.Info("Starting Congress Scanner", logger.Field("name", a.cfg.App.Name))

		c := cron.New()
		if _, err := c.AddFunc(a.cfg.Scheduler.ScanCron, func() {
			runStrategies(ctx, a, a.scan)
		}); err != nil {
			a.log.Fatal("Invalid scan cron expression", logger.ErrorField(err))
		}
		if _, err := c.AddFunc(a.cfg.Scheduler.StrategiesCron, func() {
			runStrategies(ctx, a, a.buys, a.mirror, a.analyze)
		}); err != nil {
			a.log.Fatal("Invalid strategies cron expression", logger.ErrorField(err))
		}
		c.Start()

		<-ctx.Done()

		a.log.Info("Shutting down scanner...")
		<-c.Stop().Done()
		a.log.Info("Scanner exiting")
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "scanner"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")

	rootCmd.AddCommand(scanCmd, strategiesCmd, trackCmd, archiveCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scanner CLI: %s\n", err)
		os.Exit(1)
	}
}
