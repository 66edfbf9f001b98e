package evaluation

import (
	"fmt"
	"time"
)

// OutcomeKind classifies the result of one construction attempt.
type OutcomeKind string

const (
	// OutcomeOK marks a successful construction.
	OutcomeOK OutcomeKind = "ok"
	// OutcomeGenerationFailed marks an attempt skipped because its circuit could not be generated.
	OutcomeGenerationFailed OutcomeKind = "generation_failed"
	// OutcomeConstructionFailed marks a failed construction.
	OutcomeConstructionFailed OutcomeKind = "construction_failed"
)

// Progress identifies an attempt within the sweep.
type Progress struct {
	Index     int    `json:"seq"`
	Total     int    `json:"total"`
	Benchmark string `json:"benchmark"`
	Qubits    int    `json:"n_qubits"`
	Label     string `json:"label"`
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d name: %s, size: %d, label: %s", p.Index, p.Total, p.Benchmark, p.Qubits, p.Label)
}

// Outcome is the result of one planned attempt.
type Outcome struct {
	Progress
	Kind     OutcomeKind   `json:"kind"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Err      error         `json:"-"`
}

// GenerationFailure records a benchmark/width pair whose circuit could not be generated.
type GenerationFailure struct {
	Benchmark string `json:"benchmark"`
	Qubits    int    `json:"n_qubits"`
	Error     string `json:"error"`
	Err       error  `json:"-"`
}

// EqualityMismatch records a pair whose parameter sets produced more than one
// distinct functional matrix.
type EqualityMismatch struct {
	Benchmark string `json:"benchmark"`
	Qubits    int    `json:"n_qubits"`
	Distinct  int    `json:"distinct"`
	// Labels holds the first label that produced each distinct matrix.
	Labels []string `json:"labels"`
}

// Summary counts outcomes across a run.
type Summary struct {
	Planned              int `json:"planned"`
	Attempts             int `json:"attempts"`
	Succeeded            int `json:"succeeded"`
	GenerationFailures   int `json:"generation_failures"`
	ConstructionFailures int `json:"construction_failures"`
	Skipped              int `json:"skipped"`
	EqualityMismatches   int `json:"equality_mismatches"`
}

// Partial reports whether any planned attempt did not produce a result.
func (s Summary) Partial() bool {
	return s.GenerationFailures > 0 || s.ConstructionFailures > 0 || s.Succeeded < s.Planned
}

// Report describes a completed run.
type Report struct {
	RunID              string              `json:"run_id"`
	Config             Config              `json:"config"`
	CheckEquality      bool                `json:"check_equality"`
	StartedAt          time.Time           `json:"started_at"`
	FinishedAt         time.Time           `json:"finished_at"`
	Outcomes           []Outcome           `json:"outcomes"`
	GenerationFailures []GenerationFailure `json:"generation_failures"`
	Mismatches         []EqualityMismatch  `json:"equality_mismatches"`
	Summary            Summary             `json:"summary"`
	Cancelled          bool                `json:"cancelled"`
}

// Partial reports whether the run was cancelled or left attempts without results.
func (r Report) Partial() bool {
	return r.Cancelled || r.Summary.Partial()
}

func summarize(planned int, outcomes []Outcome, generationFailures []GenerationFailure, mismatches []EqualityMismatch) Summary {
	summary := Summary{
		Planned:            planned,
		GenerationFailures: len(generationFailures),
		EqualityMismatches: len(mismatches),
	}
	for _, outcome := range outcomes {
		switch outcome.Kind {
		case OutcomeOK:
			summary.Attempts++
			summary.Succeeded++
		case OutcomeConstructionFailed:
			summary.Attempts++
			summary.ConstructionFailures++
		case OutcomeGenerationFailed:
			summary.Skipped++
		}
	}
	return summary
}
