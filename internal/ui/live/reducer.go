package live

import (
	"fmt"
	"strings"
	"time"

	"qfrbench/internal/evaluation"
)

// Reduce applies a sweep event to the UI state. now stamps attempt starts.
func Reduce(state State, event Event, now time.Time) State {
	switch event.Kind {
	case EventRunStart:
		state = State{RunID: event.RunID, Total: event.Total, StartedAt: now}
		state.LastEvent = fmt.Sprintf("run started with %d attempts", event.Total)
	case EventAttempt:
		state.Current = event.Progress
		state.Rows = upsertRow(state.Rows, AttemptRow{
			Index:     event.Progress.Index,
			Benchmark: event.Progress.Benchmark,
			Qubits:    event.Progress.Qubits,
			Label:     event.Progress.Label,
			Status:    statusRunning,
			StartedAt: now,
		})
	case EventOutcome:
		o := event.Outcome
		state.Rows = upsertRow(state.Rows, AttemptRow{
			Index:     o.Index,
			Benchmark: o.Benchmark,
			Qubits:    o.Qubits,
			Label:     o.Label,
			Status:    string(o.Kind),
			Duration:  o.Duration,
			Error:     o.Error,
		})
		state.Counts = recount(state.Rows, state.Counts)
	case EventGenerationFailure:
		state.Counts.GenerationFailures++
		state.LastEvent = fmt.Sprintf("generation failed for %s (%d qubits): %s", event.Failure.Benchmark, event.Failure.Qubits, event.Failure.Error)
	case EventMismatch:
		state.Counts.Mismatches++
		state.LastEvent = fmt.Sprintf("!not equal! %s (%d qubits): %s", event.Mismatch.Benchmark, event.Mismatch.Qubits, strings.Join(event.Mismatch.Labels, ", "))
	case EventRunEnd:
		state.Finished = true
		s := event.Summary
		state.LastEvent = fmt.Sprintf("finished: %d/%d succeeded", s.Succeeded, s.Planned)
	}
	return state
}

// upsertRow replaces the row with the same index, keeping its start time, or
// appends a new one.
func upsertRow(rows []AttemptRow, row AttemptRow) []AttemptRow {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Index == row.Index {
			if row.StartedAt.IsZero() {
				row.StartedAt = rows[i].StartedAt
			}
			rows[i] = row
			return rows
		}
	}
	return append(rows, row)
}

func recount(rows []AttemptRow, prev StatusCounts) StatusCounts {
	counts := StatusCounts{GenerationFailures: prev.GenerationFailures, Mismatches: prev.Mismatches}
	for _, row := range rows {
		switch evaluation.OutcomeKind(row.Status) {
		case evaluation.OutcomeOK:
			counts.Succeeded++
		case evaluation.OutcomeConstructionFailed:
			counts.ConstructionFailures++
		case evaluation.OutcomeGenerationFailed:
			counts.Skipped++
		}
	}
	return counts
}
