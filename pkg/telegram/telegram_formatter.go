package telegram

import (
	"fmt"
	"strings"

	"golang-congress-scanner/internal/entity"
)

// FormatSignalsForTelegram formats detected signals into multiple Markdown
// strings for Telegram, ensuring each message does not exceed the specified
// maximum length.
func FormatSignalsForTelegram(signals []entity.Signal) []string {
	if len(signals) == 0 {
		return []string{"Tidak ada sinyal trading kongres untuk hari ini."}
	}

	const maxLen = 4090
	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		var header string
		if part == 1 {
			header = "🚨 *Congressional Trading Signals* 🚨\n\n"
		} else {
			header = fmt.Sprintf("---*Congressional Trading Signals Part %d*---\n\n", part)
		}
		currentMessage.WriteString(header)
	}

	startNewPart()

	for _, s := range signals {
		entryString := formatSignalEntry(s)

		// Assume a single entry never exceeds the limit on its own.
		if currentMessage.Len()+len(entryString) > maxLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}

		currentMessage.WriteString(entryString)
	}

	messages = append(messages, currentMessage.String())
	return messages
}

func formatSignalEntry(s entity.Signal) string {
	var b strings.Builder

	icon := signalIcon(s.Type)
	b.WriteString(fmt.Sprintf("%s *- - - - - %s - - - - -*\n", icon, s.Ticker))

	switch s.Type {
	case entity.SignalCluster:
		b.WriteString(fmt.Sprintf("👥 *Cluster:* %d politicians bought\n", s.Count))
		b.WriteString(fmt.Sprintf("💰 *Total:* $%d (avg $%d)\n", s.TotalAmount, s.AvgAmount))
		names := s.Politicians
		if len(names) > 3 {
			names = names[:3]
		}
		b.WriteString(fmt.Sprintf("🧑‍⚖️ *Who:* %s\n", strings.Join(names, ", ")))
	case entity.SignalLargeTrade:
		b.WriteString(fmt.Sprintf("💰 *Large %s:* $%d\n", s.TransactionType, s.Amount))
		b.WriteString(fmt.Sprintf("🧑‍⚖️ *Who:* %s\n", s.Politician))
	case entity.SignalTopPerformer:
		b.WriteString(fmt.Sprintf("⭐ *Top performer %s:* $%d\n", s.TransactionType, s.Amount))
		b.WriteString(fmt.Sprintf("🧑‍⚖️ *Who:* %s\n", s.Politician))
	case entity.SignalOptionsTrade:
		b.WriteString(fmt.Sprintf("📊 *Options activity:* $%d\n", s.Amount))
		b.WriteString(fmt.Sprintf("🧑‍⚖️ *Who:* %s\n", s.Politician))
		b.WriteString(fmt.Sprintf("💬 *Detail:* %s\n", s.Reason))
	case entity.SignalCommitteeAligned:
		b.WriteString(fmt.Sprintf("🏛️ *Committee:* %s\n", s.Committee))
		b.WriteString(fmt.Sprintf("🧑‍⚖️ *Who:* %s ($%d)\n", s.Politician, s.Amount))
	}

	if !s.Date.IsZero() {
		b.WriteString(fmt.Sprintf("📅 *Date:* %s\n", s.Date.Format("2006-01-02")))
	}
	b.WriteString("\n")
	return b.String()
}

func signalIcon(t entity.SignalType) string {
	switch t {
	case entity.SignalCluster:
		return "🚨"
	case entity.SignalOptionsTrade:
		return "📊"
	case entity.SignalTopPerformer:
		return "⭐"
	case entity.SignalLargeTrade:
		return "💰"
	case entity.SignalCommitteeAligned:
		return "🏛️"
	default:
		return "📌"
	}
}

// FormatReportForTelegram wraps a plain-text report in a code block, split
// into chunks that fit a single Telegram message.
func FormatReportForTelegram(report string) []string {
	const chunkSize = 4000
	var messages []string
	for start := 0; start < len(report); start += chunkSize {
		end := start + chunkSize
		if end > len(report) {
			end = len(report)
		}
		messages = append(messages, fmt.Sprintf("```\n%s\n```", report[start:end]))
	}
	return messages
}
