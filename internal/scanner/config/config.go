package config

import (
	"golang-congress-scanner/pkg/config"
	"time"
)

// Scanner holds the signal-scan pipeline configuration.
type Scanner struct {
	LookbackDays     int      `mapstructure:"lookback_days"`
	MinTradeSize     int64    `mapstructure:"min_trade_size"`
	ClusterThreshold int      `mapstructure:"cluster_threshold"`
	TopPerformers    []string `mapstructure:"top_performers"`
	OutputFile       string   `mapstructure:"output_file"`

	// committee name -> aligned tickers
	CommitteeAlignments map[string][]string `mapstructure:"committee_alignments"`
}

// CongressBuys holds the broad all-purchases strategy configuration.
type CongressBuys struct {
	LookbackDays    int     `mapstructure:"lookback_days"`
	MinPositionSize int64   `mapstructure:"min_position_size"`
	PortfolioValue  float64 `mapstructure:"portfolio_value"`
	OutputFile      string  `mapstructure:"output_file"`
}

// Mirror holds the single-politician mirror strategy configuration.
type Mirror struct {
	Politician         string  `mapstructure:"politician"`
	LookbackDays       int     `mapstructure:"lookback_days"`
	RecentActivityDays int     `mapstructure:"recent_activity_days"`
	PortfolioValue     float64 `mapstructure:"portfolio_value"`
	OutputFile         string  `mapstructure:"output_file"`
}

// Analyzer holds the strategy comparison and blending configuration.
// CongressAllocation is the fraction of capital put on the aggregate
// portfolio; the mirror gets the rest.
type Analyzer struct {
	PortfolioValue     float64 `mapstructure:"portfolio_value"`
	CongressAllocation float64 `mapstructure:"congress_allocation"`
	OutputFile         string  `mapstructure:"output_file"`
}

// Tracker holds the performance tracker configuration.
type Tracker struct {
	HistoryFile string `mapstructure:"history_file"`
	MaxTracked  int    `mapstructure:"max_tracked"`
}

// Provider holds one disclosure data source's HTTP settings.
type Provider struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Providers groups the disclosure data sources.
type Providers struct {
	House  Provider `mapstructure:"house"`
	Senate Provider `mapstructure:"senate"`
}

// YahooFinance holds the price provider configuration.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Discord holds the webhook alert sink configuration.
type Discord struct {
	WebhookURL   string        `mapstructure:"webhook_url"`
	MaxSignals   int           `mapstructure:"max_signals"`
	MessageDelay time.Duration `mapstructure:"message_delay"`
}

// Telegram holds the Telegram alert sink configuration.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Scheduler holds the cron expressions for the serve command.
type Scheduler struct {
	ScanCron       string `mapstructure:"scan_cron"`
	StrategiesCron string `mapstructure:"strategies_cron"`
}

// Config holds the full configuration for the scanner service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Scanner      Scanner         `mapstructure:"scanner"`
	CongressBuys CongressBuys    `mapstructure:"congress_buys"`
	Mirror       Mirror          `mapstructure:"mirror"`
	Analyzer     Analyzer        `mapstructure:"analyzer"`
	Tracker      Tracker         `mapstructure:"tracker"`
	Providers    Providers       `mapstructure:"providers"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Discord      Discord         `mapstructure:"discord"`
	Telegram     Telegram        `mapstructure:"telegram"`
	Scheduler    Scheduler       `mapstructure:"scheduler"`
}

// Load loads the scanner configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
