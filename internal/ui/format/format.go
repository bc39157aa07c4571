// Package format provides UI formatting helpers.
package format

import (
	"fmt"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
)

// Number formats a number with K/M suffixes for readability.
func Number(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// ShortNumber formats a number into a compact 4-char max string (e.g., 999, 9.9K, 120K).
func ShortNumber(n int64) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 10_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	case n < 1_000_000:
		return fmt.Sprintf("%dK", n/1_000)
	case n < 10_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n < 1_000_000_000:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n < 10_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	default:
		return fmt.Sprintf("%dB", n/1_000_000_000)
	}
}

// Bytes formats bytes as "168 MB", "1.2 GB", etc.
func Bytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Percent formats a percentage with no fractional digits ("42%").
func Percent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// Value formats a metric value according to its unit: counts get K/M
// suffixes, data volumes get binary byte units.
func Value(v float64, vt stats.ValueType) string {
	if vt == stats.ValueFilesize {
		return Bytes(int64(v))
	}
	return Number(int64(v))
}

// Rate formats a period-over-period growth rate with an explicit sign.
// Undefined rates (division by a zero base) render as a dash.
func Rate(rate float64, defined bool) string {
	if !defined {
		return "-"
	}
	return fmt.Sprintf("%+.1f%%", rate)
}

// RangeLabel describes a date range for titles ("2023-01-01 – 2023-06-30").
// Unbounded ends render as "...".
func RangeLabel(r stats.DateRange) string {
	start, end := "...", "..."
	if !r.Start.IsZero() {
		start = r.Start.Format("2006-01-02")
	}
	if !r.End.IsZero() {
		end = r.End.Format("2006-01-02")
	}
	if start == "..." && end == "..." {
		return "all time"
	}
	return start + " – " + end
}
