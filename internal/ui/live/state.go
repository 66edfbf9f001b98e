package live

import (
	"time"

	"qfrbench/internal/evaluation"
)

// Row statuses beyond the evaluation outcome kinds.
const statusRunning = "running"

// AttemptRow holds UI state for a single planned attempt.
type AttemptRow struct {
	Index     int
	Benchmark string
	Qubits    int
	Label     string
	Status    string
	StartedAt time.Time
	Duration  time.Duration
	Error     string
}

// StatusCounts aggregates attempts by outcome.
type StatusCounts struct {
	Succeeded            int
	ConstructionFailures int
	Skipped              int
	GenerationFailures   int
	Mismatches           int
}

// Completed returns the number of planned attempts that have an outcome.
func (c StatusCounts) Completed() int {
	return c.Succeeded + c.ConstructionFailures + c.Skipped
}

// State captures the live UI state for a sweep.
type State struct {
	RunID     string
	Total     int
	Current   evaluation.Progress
	StartedAt time.Time
	Finished  bool
	LastEvent string
	Rows      []AttemptRow
	Counts    StatusCounts
}

// Fraction returns the completed share of planned attempts in [0, 1].
func (s State) Fraction() float64 {
	if s.Total <= 0 {
		if s.Finished {
			return 1
		}
		return 0
	}
	return min(1, float64(s.Counts.Completed())/float64(s.Total))
}
