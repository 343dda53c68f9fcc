package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-congress-scanner/internal/entity"
)

func TestFormatSignalsForTelegram(t *testing.T) {
	signals := []entity.Signal{
		{
			Type:        entity.SignalCluster,
			Ticker:      "NVDA",
			Count:       3,
			Politicians: []string{"Nancy Pelosi", "Tommy Tuberville", "Josh Gottheimer"},
			TotalAmount: 150000,
			AvgAmount:   50000,
		},
		{
			Type:       entity.SignalLargeTrade,
			Ticker:     "MSFT",
			Politician: "Nancy Pelosi",
			Amount:     100000,
		},
	}

	messages := FormatSignalsForTelegram(signals)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "Congressional Trading Signals")
	assert.Contains(t, messages[0], "NVDA")
	assert.Contains(t, messages[0], "3 politicians bought")
	assert.Contains(t, messages[0], "MSFT")
}

func TestFormatSignalsForTelegramEmpty(t *testing.T) {
	messages := FormatSignalsForTelegram(nil)
	require.Len(t, messages, 1)
	assert.NotEmpty(t, messages[0])
}

func TestFormatSignalsForTelegramSplitsLongDigests(t *testing.T) {
	var signals []entity.Signal
	for i := 0; i < 200; i++ {
		signals = append(signals, entity.Signal{
			Type:       entity.SignalLargeTrade,
			Ticker:     "NVDA",
			Politician: "Nancy Pelosi",
			Amount:     100000,
		})
	}

	messages := FormatSignalsForTelegram(signals)
	require.Greater(t, len(messages), 1)
	for _, msg := range messages {
		assert.LessOrEqual(t, len(msg), 4096)
	}
	assert.Contains(t, messages[1], "Part 2")
}

func TestFormatReportForTelegram(t *testing.T) {
	report := "PERFORMANCE TRACKING REPORT\nActive Signals: 1\n"

	messages := FormatReportForTelegram(report)
	require.Len(t, messages, 1)
	assert.True(t, strings.HasPrefix(messages[0], "```\n"))
	assert.True(t, strings.HasSuffix(messages[0], "\n```"))
	assert.Contains(t, messages[0], "Active Signals: 1")
}

func TestFormatReportForTelegramChunksLongReports(t *testing.T) {
	report := strings.Repeat("x", 9000)

	messages := FormatReportForTelegram(report)
	require.Len(t, messages, 3)
	for _, msg := range messages {
		assert.LessOrEqual(t, len(msg), 4096)
	}
}
