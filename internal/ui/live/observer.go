package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"qfrbench/internal/evaluation"
)

// Controller runs the live UI and implements evaluation.Observer.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	mu        sync.RWMutex
	closed    bool
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

func (c *Controller) OnRunStart(runID string, total int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Total: total})
}

func (c *Controller) OnAttempt(progress evaluation.Progress) {
	c.send(Event{Kind: EventAttempt, Progress: progress})
}

func (c *Controller) OnGenerationFailure(failure evaluation.GenerationFailure) {
	c.send(Event{Kind: EventGenerationFailure, Failure: failure})
}

func (c *Controller) OnOutcome(outcome evaluation.Outcome) {
	c.send(Event{Kind: EventOutcome, Outcome: outcome})
}

func (c *Controller) OnMismatch(mismatch evaluation.EqualityMismatch) {
	c.send(Event{Kind: EventMismatch, Mismatch: mismatch})
}

// OnRunEnd forwards run completion to the UI and closes it.
func (c *Controller) OnRunEnd(report evaluation.Report) {
	c.send(Event{Kind: EventRunEnd, Summary: report.Summary})
	c.Close()
}

// send enqueues an event without blocking the caller. Events are dropped
// when the UI falls behind.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
