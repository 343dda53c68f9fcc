package service

import (
	"strconv"
	"strings"
)

// ParseAmount converts the heterogeneous amount strings found in disclosure
// filings into a single estimated dollar value. Bracketed ranges collapse to
// their midpoint, K/M suffixes scale the numeric prefix, and anything
// unparseable is worth 0. It never fails.
func ParseAmount(raw string) int64 {
	s := strings.ReplaceAll(raw, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Ranges like "1001 - 15000" report the bracket midpoint.
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) >= 2 {
			low, errLow := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			high, errHigh := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errLow == nil && errHigh == nil {
				return clampNonNegative(int64((low + high) / 2))
			}
		}
	}

	upper := strings.ToUpper(s)
	if strings.Contains(upper, "K") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(upper, "K", "")), 64); err == nil {
			return clampNonNegative(int64(v * 1_000))
		}
	}
	if strings.Contains(upper, "M") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(upper, "M", "")), 64); err == nil {
			return clampNonNegative(int64(v * 1_000_000))
		}
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return clampNonNegative(int64(v))
	}
	return 0
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
