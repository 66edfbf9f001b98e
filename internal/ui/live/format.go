package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"qfrbench/internal/evaluation"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// statusLabel maps row statuses to display labels.
func statusLabel(status string) string {
	switch evaluation.OutcomeKind(status) {
	case evaluation.OutcomeOK:
		return "ok"
	case evaluation.OutcomeConstructionFailed:
		return "construction failed"
	case evaluation.OutcomeGenerationFailed:
		return "skipped"
	}
	return status
}

func formatStatus(row AttemptRow, noColor bool) string {
	return stylize(statusLabel(row.Status), noColor, statusColor(row.Status))
}

func statusColor(status string) lipgloss.Color {
	switch evaluation.OutcomeKind(status) {
	case evaluation.OutcomeOK:
		return lipgloss.Color("42")
	case evaluation.OutcomeConstructionFailed:
		return lipgloss.Color("196")
	case evaluation.OutcomeGenerationFailed:
		return lipgloss.Color("214")
	}
	return lipgloss.Color("39")
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row AttemptRow, now time.Time) string {
	if row.Duration > 0 {
		return formatDuration(row.Duration)
	}
	if row.Status == statusRunning && !row.StartedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}

// truncate shortens text to limit runes.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 3 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}
