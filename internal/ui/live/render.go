package live

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Run " + state.RunID
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the outcome counts line.
func renderSummary(state State, noColor bool) string {
	c := state.Counts
	line := fmt.Sprintf("Done: %d/%d OK: %d Failed: %d Skipped: %d GenFail: %d Mismatch: %d",
		c.Completed(), state.Total, c.Succeeded, c.ConstructionFailures, c.Skipped, c.GenerationFailures, c.Mismatches)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderCurrent renders the attempt in flight.
func renderCurrent(state State, noColor bool) string {
	if state.Current.Index == 0 || state.Finished {
		return ""
	}
	return stylize(state.Current.String(), noColor, lipgloss.Color("240"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
