package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth gives the error column whatever the fixed columns leave.
func columnsForWidth(width int) []table.Column {
	fixed := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Benchmark", Width: 18},
		{Title: "Qubits", Width: 6},
		{Title: "Label", Width: 12},
		{Title: "Status", Width: 20},
		{Title: "Time", Width: 9},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2
	}
	return append(fixed, table.Column{Title: "Error", Width: max(width-used, 10)})
}

// rowsForState converts UI state into table rows, most recent first.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for i := len(state.Rows) - 1; i >= 0; i-- {
		row := state.Rows[i]
		rows = append(rows, table.Row{
			fmtInt(row.Index),
			truncate(row.Benchmark, 18),
			fmtInt(row.Qubits),
			truncate(row.Label, 12),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
			truncate(row.Error, 80),
		})
	}
	return rows
}
