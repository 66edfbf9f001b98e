package evaluation

// Observer receives sweep lifecycle events for logging, metrics or UI.
type Observer interface {
	// OnRunStart signals the start of a run with the planned attempt count.
	OnRunStart(runID string, total int)
	// OnAttempt fires before each construction attempt.
	OnAttempt(progress Progress)
	// OnGenerationFailure fires once per benchmark/width pair whose circuit could not be generated.
	OnGenerationFailure(failure GenerationFailure)
	// OnOutcome fires for every planned attempt, including ones skipped by a generation failure.
	OnOutcome(outcome Outcome)
	// OnMismatch fires when the equality check finds diverging matrices.
	OnMismatch(mismatch EqualityMismatch)
	// OnRunEnd signals run completion.
	OnRunEnd(report Report)
}

// NopObserver ignores all events. Embed it to implement a subset of Observer.
type NopObserver struct{}

func (NopObserver) OnRunStart(string, int)                {}
func (NopObserver) OnAttempt(Progress)                    {}
func (NopObserver) OnGenerationFailure(GenerationFailure) {}
func (NopObserver) OnOutcome(Outcome)                     {}
func (NopObserver) OnMismatch(EqualityMismatch)           {}
func (NopObserver) OnRunEnd(Report)                       {}

type multiObserver []Observer

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multiObserver) OnRunStart(runID string, total int) {
	for _, o := range m {
		o.OnRunStart(runID, total)
	}
}

func (m multiObserver) OnAttempt(progress Progress) {
	for _, o := range m {
		o.OnAttempt(progress)
	}
}

func (m multiObserver) OnGenerationFailure(failure GenerationFailure) {
	for _, o := range m {
		o.OnGenerationFailure(failure)
	}
}

func (m multiObserver) OnOutcome(outcome Outcome) {
	for _, o := range m {
		o.OnOutcome(outcome)
	}
}

func (m multiObserver) OnMismatch(mismatch EqualityMismatch) {
	for _, o := range m {
		o.OnMismatch(mismatch)
	}
}

func (m multiObserver) OnRunEnd(report Report) {
	for _, o := range m {
		o.OnRunEnd(report)
	}
}
