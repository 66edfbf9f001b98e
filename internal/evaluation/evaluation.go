package evaluation

import (
	"context"
	"os"
	"time"

	"qfrbench/internal/construct"
	"qfrbench/internal/export"
	"qfrbench/internal/generator"
	"qfrbench/internal/record"
)

// Dependencies are the collaborators of an Evaluation. Nil fields fall back to
// the builtin generator and constructor, the wall clock and stdout/stderr.
type Dependencies struct {
	Generator   generator.Generator
	Constructor construct.Constructor
	Observer    Observer
	Log         LogOptions
	Now         func() time.Time
	RunID       func() (string, error)
	// Tolerance is the element-wise tolerance of the equality check.
	Tolerance float64
}

// Evaluation sweeps benchmarks × qubit counts × parameter sets and
// accumulates the results per label.
type Evaluation struct {
	cfg      Config
	deps     Dependencies
	observer Observer
	results  *record.Results
}

// New validates the qubit range and returns an Evaluation. The config is copied.
func New(cfg Config, deps Dependencies) (*Evaluation, error) {
	if err := cfg.Qubits.Check(); err != nil {
		return nil, err
	}
	cfg = cfg.clone()
	if cfg.Level == "" {
		cfg.Level = generator.DefaultLevel
	}
	if deps.Generator == nil {
		deps.Generator = &generator.Builtin{}
	}
	if deps.Constructor == nil {
		deps.Constructor = construct.NewBuiltin()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.RunID == nil {
		deps.RunID = NewRunID
	}
	if deps.Tolerance <= 0 {
		deps.Tolerance = construct.DefaultTolerance
	}
	log := deps.Log
	log.Verbose = log.Verbose || cfg.Verbose
	if log.Out == nil {
		log.Out = os.Stdout
	}
	if log.Warn == nil {
		log.Warn = os.Stderr
	}
	return &Evaluation{
		cfg:      cfg,
		deps:     deps,
		observer: Observers(NewConsoleLogger(log), deps.Observer),
		results:  record.NewResults(),
	}, nil
}

// Config returns a copy of the sweep configuration.
func (e *Evaluation) Config() Config {
	return e.cfg.clone()
}

// Results returns the accumulated results.
func (e *Evaluation) Results() *record.Results {
	return e.results
}

// matrixClass is a distinct functional matrix and the first label producing it.
type matrixClass struct {
	matrix construct.Matrix
	label  string
}

// Run performs the sweep. Generation and construction failures are recorded in
// the report and never abort the sweep. Cancelling ctx stops the sweep between
// attempts.
func (e *Evaluation) Run(ctx context.Context, checkEquality bool) Report {
	runID, err := e.deps.RunID()
	if err != nil || runID == "" {
		runID = FormatRunID(e.deps.Now(), "local")
	}
	report := Report{
		RunID:         runID,
		Config:        e.Config(),
		CheckEquality: checkEquality,
		StartedAt:     e.deps.Now(),
	}
	total := e.cfg.Total()
	e.observer.OnRunStart(runID, total)

	i := 1
sweep:
	for _, qubits := range e.cfg.Qubits.Values() {
		for _, benchmark := range e.cfg.Benchmarks {
			if ctx.Err() != nil {
				report.Cancelled = true
				break sweep
			}
			circ, err := e.deps.Generator.Generate(ctx, benchmark, e.cfg.Level, qubits)
			if err == nil && circ == nil {
				err = generator.ErrUnknownBenchmark
			}
			if err != nil {
				failure := GenerationFailure{Benchmark: benchmark, Qubits: qubits, Error: err.Error(), Err: err}
				report.GenerationFailures = append(report.GenerationFailures, failure)
				e.observer.OnGenerationFailure(failure)
				for _, params := range e.cfg.Params {
					outcome := Outcome{
						Progress: Progress{Index: i, Total: total, Benchmark: benchmark, Qubits: qubits, Label: params.Label},
						Kind:     OutcomeGenerationFailed,
						Error:    err.Error(),
						Err:      err,
					}
					report.Outcomes = append(report.Outcomes, outcome)
					e.observer.OnOutcome(outcome)
					i++
				}
				continue
			}
			circ.RemoveFinalMeasurements()

			var classes []matrixClass
			for _, params := range e.cfg.Params {
				if ctx.Err() != nil {
					report.Cancelled = true
					break sweep
				}
				progress := Progress{Index: i, Total: total, Benchmark: benchmark, Qubits: qubits, Label: params.Label}
				e.observer.OnAttempt(progress)
				i++

				started := e.deps.Now()
				result, err := e.deps.Constructor.Construct(ctx, circ, params.Options())
				outcome := Outcome{Progress: progress, Kind: OutcomeOK, Duration: e.deps.Now().Sub(started)}
				if err != nil {
					outcome.Kind = OutcomeConstructionFailed
					outcome.Error = err.Error()
					outcome.Err = err
					report.Outcomes = append(report.Outcomes, outcome)
					e.observer.OnOutcome(outcome)
					continue
				}

				if checkEquality {
					classes = e.classify(classes, result.Matrix(), params.Label)
				}
				row := record.Of("label", params.Label)
				row.Merge(result.Circuit)
				row.Merge(result.Statistics)
				e.results.Append(params.Label, row)

				report.Outcomes = append(report.Outcomes, outcome)
				e.observer.OnOutcome(outcome)
			}

			if checkEquality && len(classes) > 1 {
				mismatch := EqualityMismatch{Benchmark: benchmark, Qubits: qubits, Distinct: len(classes)}
				for _, class := range classes {
					mismatch.Labels = append(mismatch.Labels, class.label)
				}
				report.Mismatches = append(report.Mismatches, mismatch)
				e.observer.OnMismatch(mismatch)
			}
		}
	}

	report.FinishedAt = e.deps.Now()
	report.Summary = summarize(total, report.Outcomes, report.GenerationFailures, report.Mismatches)
	e.observer.OnRunEnd(report)
	return report
}

// classify adds matrix to classes unless an equal matrix is already present.
// Runs without a stored matrix contribute nothing.
func (e *Evaluation) classify(classes []matrixClass, matrix construct.Matrix, label string) []matrixClass {
	if matrix == nil {
		return classes
	}
	for _, class := range classes {
		if class.matrix.Equal(matrix, e.deps.Tolerance) {
			return classes
		}
	}
	return append(classes, matrixClass{matrix: matrix, label: label})
}

// ExportExcel writes the accumulated results to a timestamped workbook in dir.
// It returns an empty path and writes nothing when there are no results.
func (e *Evaluation) ExportExcel(dir string) (string, error) {
	path, _, err := export.WriteExcel(e.results, dir, e.deps.Now())
	return path, err
}
