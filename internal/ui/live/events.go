package live

import "qfrbench/internal/evaluation"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventAttempt signals that a construction attempt started.
	EventAttempt
	// EventOutcome delivers the result of a planned attempt.
	EventOutcome
	// EventGenerationFailure signals a circuit that could not be generated.
	EventGenerationFailure
	// EventMismatch signals diverging functional matrices.
	EventMismatch
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind     EventKind
	RunID    string
	Total    int
	Progress evaluation.Progress
	Outcome  evaluation.Outcome
	Failure  evaluation.GenerationFailure
	Mismatch evaluation.EqualityMismatch
	Summary  evaluation.Summary
}
