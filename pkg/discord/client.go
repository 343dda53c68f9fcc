package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang-congress-scanner/internal/entity"
	"golang-congress-scanner/internal/scanner/dto"
	"golang-congress-scanner/pkg/logger"
)

// Notifier defines the interface for the Discord alert sink. Every method
// degrades to a logged no-op when no webhook is configured, and a failed
// delivery never aborts the remaining ones.
type Notifier interface {
	SendSignals(ctx context.Context, signals []entity.Signal) error
	SendReport(ctx context.Context, report string) error
	SendCongressBuysUpdate(ctx context.Context, result dto.CongressBuysResult) error
	SendMirrorUpdate(ctx context.Context, result dto.MirrorResult) error
}

type client struct {
	webhookURL   string
	maxSignals   int
	messageDelay time.Duration
	httpClient   *http.Client
	log          *logger.Logger
}

// NewClient creates a Discord webhook notifier. An empty webhook URL disables
// delivery. The message delay keeps the outbound rate under Discord's
// published webhook limit.
func NewClient(webhookURL string, maxSignals int, messageDelay time.Duration, log *logger.Logger) Notifier {
	if maxSignals <= 0 {
		maxSignals = 10
	}
	if messageDelay <= 0 {
		messageDelay = 500 * time.Millisecond
	}
	return &client{
		webhookURL:   webhookURL,
		maxSignals:   maxSignals,
		messageDelay: messageDelay,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

// signalColors maps each signal kind to its embed color code.
var signalColors = map[entity.SignalType]int{
	entity.SignalCluster:          0xFF6B6B,
	entity.SignalOptionsTrade:     0x9B59B6,
	entity.SignalTopPerformer:     0x3498DB,
	entity.SignalLargeTrade:       0xF39C12,
	entity.SignalCommitteeAligned: 0x2ECC71,
}

const defaultColor = 0x95A5A6

// SendSignals posts a summary message followed by one rich embed per signal,
// up to the configured maximum.
func (c *client) SendSignals(ctx context.Context, signals []entity.Signal) error {
	if c.webhookURL == "" {
		c.log.Info("Discord alerts disabled, no webhook URL configured")
		return nil
	}
	if len(signals) == 0 {
		return nil
	}

	batch := signals
	if len(batch) > c.maxSignals {
		batch = batch[:c.maxSignals]
	}

	summary := webhookPayload{
		Content: fmt.Sprintf("🚨 **Congressional Trading Alert**\n\nFound **%d** high-priority signals\nScan time: %s",
			len(signals), time.Now().Format("2006-01-02 15:04:05")),
	}
	if err := c.post(ctx, summary); err != nil {
		c.log.Error("Failed to send Discord summary", logger.ErrorField(err))
	}

	sent := 0
	for _, signal := range batch {
		if err := c.post(ctx, webhookPayload{Embeds: []embed{c.signalEmbed(signal)}}); err != nil {
			c.log.Error("Failed to send Discord signal",
				logger.StringField("ticker", signal.Ticker), logger.ErrorField(err))
		} else {
			sent++
		}
		time.Sleep(c.messageDelay)
	}

	c.log.Info("Discord signal alerts sent",
		logger.IntField("sent", sent), logger.IntField("attempted", len(batch)))
	return nil
}

// SendReport posts a text report, chunked to fit Discord's message limit.
func (c *client) SendReport(ctx context.Context, report string) error {
	if c.webhookURL == "" || report == "" {
		return nil
	}

	const chunkSize = 1900
	for start := 0; start < len(report); start += chunkSize {
		end := start + chunkSize
		if end > len(report) {
			end = len(report)
		}
		payload := webhookPayload{Content: fmt.Sprintf("```\n%s\n```", report[start:end])}
		if err := c.post(ctx, payload); err != nil {
			c.log.Error("Failed to send report chunk", logger.ErrorField(err))
		}
		time.Sleep(c.messageDelay)
	}
	return nil
}

// SendCongressBuysUpdate posts the broad-strategy digest: a summary line and
// the top five positions.
func (c *client) SendCongressBuysUpdate(ctx context.Context, result dto.CongressBuysResult) error {
	if c.webhookURL == "" {
		return nil
	}

	summary := webhookPayload{
		Content: fmt.Sprintf("📊 **Congress Buys Strategy Update**\n\n✅ Portfolio: %d positions\n💰 Total Congressional Investment: $%d",
			result.Portfolio.NumPositions, result.Portfolio.TotalValue),
	}
	if err := c.post(ctx, summary); err != nil {
		c.log.Error("Failed to send Congress Buys summary", logger.ErrorField(err))
		return err
	}
	time.Sleep(c.messageDelay)

	var fields []embedField
	for i, pos := range result.Portfolio.Positions {
		if i >= 5 {
			break
		}
		fields = append(fields, embedField{
			Name:  fmt.Sprintf("%d. %s (%.2f%%)", i+1, pos.Ticker, pos.Weight),
			Value: fmt.Sprintf("$%d from %d members", pos.TotalAmount, pos.NumPoliticians),
		})
	}

	return c.post(ctx, webhookPayload{Embeds: []embed{{
		Title:       "🏆 Top Congressional Picks",
		Description: "Highest conviction stocks (most congressional buyers)",
		Color:       0x2ECC71,
		Fields:      fields,
		Footer:      &embedFooter{Text: "Last updated: " + result.Portfolio.GeneratedAt.Format("2006-01-02 15:04:05")},
	}}})
}

// SendMirrorUpdate posts the mirror-strategy digest: summary, recent
// activity, and top holdings.
func (c *client) SendMirrorUpdate(ctx context.Context, result dto.MirrorResult) error {
	if c.webhookURL == "" {
		return nil
	}

	summary := webhookPayload{
		Content: fmt.Sprintf("🏆 **%s Portfolio Update**\n\n💼 Current Portfolio: %d positions\n💰 Estimated Value: $%d",
			result.Politician, result.CurrentPortfolio.NumPositions, result.CurrentPortfolio.TotalValue),
	}
	if err := c.post(ctx, summary); err != nil {
		c.log.Error("Failed to send mirror summary", logger.ErrorField(err))
		return err
	}
	time.Sleep(c.messageDelay)

	if len(result.RecentActivity) > 0 {
		var lines []string
		for i, trade := range result.RecentActivity {
			if i >= 3 {
				break
			}
			icon := "🔴"
			if trade.Type == entity.TransactionPurchase {
				icon = "🟢"
			}
			lines = append(lines, fmt.Sprintf("%s %s: **%s** $%d of **%s**",
				icon, trade.Date.Format("2006-01-02"), trade.Type, trade.Amount, trade.Ticker))
		}
		if err := c.post(ctx, webhookPayload{Embeds: []embed{{
			Title:       "🔥 Recent Activity",
			Description: strings.Join(lines, "\n"),
			Color:       0x3498DB,
		}}}); err != nil {
			c.log.Error("Failed to send recent activity", logger.ErrorField(err))
		}
		time.Sleep(c.messageDelay)
	}

	var fields []embedField
	for i, pos := range result.CurrentPortfolio.Positions {
		if i >= 5 {
			break
		}
		fields = append(fields, embedField{
			Name:  fmt.Sprintf("%d. %s (%.2f%%)", i+1, pos.Ticker, pos.Weight),
			Value: fmt.Sprintf("Estimated position $%d, last trade %s", pos.EstimatedPosition, pos.LastTradeDate.Format("2006-01-02")),
		})
	}

	return c.post(ctx, webhookPayload{Embeds: []embed{{
		Title:  "💼 Top Holdings",
		Color:  0xF39C12,
		Fields: fields,
	}}})
}

// signalEmbed renders one signal as a rich embed with kind-specific fields.
func (c *client) signalEmbed(signal entity.Signal) embed {
	color, ok := signalColors[signal.Type]
	if !ok {
		color = defaultColor
	}

	e := embed{
		Color:     color,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    &embedFooter{Text: "Congressional Trading Scanner"},
	}

	switch signal.Type {
	case entity.SignalCluster:
		e.Title = fmt.Sprintf("🚨 Cluster Signal: %d politicians bought %s", signal.Count, signal.Ticker)
		e.Description = "**Multiple congressional purchases detected**"
		politicians := signal.Politicians
		extra := ""
		if len(politicians) > 5 {
			extra = fmt.Sprintf("\n... and %d more", len(politicians)-5)
			politicians = politicians[:5]
		}
		list := ""
		for _, p := range politicians {
			list += "• " + p + "\n"
		}
		e.Fields = []embedField{
			{Name: "Ticker", Value: fmt.Sprintf("`%s`", signal.Ticker), Inline: true},
			{Name: "Count", Value: fmt.Sprintf("%d politicians", signal.Count), Inline: true},
			{Name: "Total Amount", Value: fmt.Sprintf("$%d", signal.TotalAmount), Inline: true},
			{Name: "Politicians", Value: list + extra},
		}
	case entity.SignalLargeTrade:
		e.Title = "💰 Large Trade: " + signal.Politician
		e.Description = fmt.Sprintf("**%s of %s**", signal.TransactionType, signal.Ticker)
		e.Fields = []embedField{
			{Name: "Ticker", Value: fmt.Sprintf("`%s`", signal.Ticker), Inline: true},
			{Name: "Amount", Value: fmt.Sprintf("$%d", signal.Amount), Inline: true},
			{Name: "Date", Value: signal.Date.Format("2006-01-02"), Inline: true},
		}
	case entity.SignalTopPerformer:
		e.Title = "⭐ Top Performer Trade: " + signal.Politician
		e.Description = fmt.Sprintf("**%s of %s**", signal.TransactionType, signal.Ticker)
		e.Fields = []embedField{
			{Name: "Ticker", Value: fmt.Sprintf("`%s`", signal.Ticker), Inline: true},
			{Name: "Amount", Value: fmt.Sprintf("$%d", signal.Amount), Inline: true},
			{Name: "Tracker", Value: signal.PerformerName, Inline: true},
		}
	case entity.SignalOptionsTrade:
		e.Title = "📊 Options Trade: " + signal.Politician
		e.Description = fmt.Sprintf("**Options activity on %s**", signal.Ticker)
		e.Fields = []embedField{
			{Name: "Ticker", Value: fmt.Sprintf("`%s`", signal.Ticker), Inline: true},
			{Name: "Amount", Value: fmt.Sprintf("$%d", signal.Amount), Inline: true},
			{Name: "Reason", Value: signal.Reason},
		}
	case entity.SignalCommitteeAligned:
		e.Title = "🏛️ Committee-Aligned Trade: " + signal.Politician
		e.Description = fmt.Sprintf("**%s related to %s**", signal.Ticker, signal.Committee)
		e.Fields = []embedField{
			{Name: "Ticker", Value: fmt.Sprintf("`%s`", signal.Ticker), Inline: true},
			{Name: "Committee", Value: signal.Committee, Inline: true},
			{Name: "Amount", Value: fmt.Sprintf("$%d", signal.Amount), Inline: true},
		}
	default:
		e.Title = fmt.Sprintf("📌 %s: %s", signal.Type, signal.Ticker)
	}
	return e
}

func (c *client) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
