package live

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model renders a live console UI using Bubble Tea.
type Model struct {
	state        State
	table        table.Model
	bar          progress.Model
	events       <-chan Event
	tickInterval time.Duration
	clock        func() time.Time
	now          time.Time
	noColor      bool
	interrupt    func()
}

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
	Now          func() time.Time
	// Interrupt is called on ctrl+c. The terminal is in raw mode while the UI
	// runs, so SIGINT never reaches the process.
	Interrupt func()
}

// NewModel constructs a live UI model for an event stream.
func NewModel(events <-chan Event, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 200 * time.Millisecond
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	barOpts := []progress.Option{progress.WithDefaultGradient()}
	if opts.NoColor {
		barOpts = []progress.Option{progress.WithSolidFill("7")}
	}
	return Model{
		state:        State{},
		table:        t,
		bar:          progress.New(barOpts...),
		events:       events,
		tickInterval: tickInterval,
		clock:        clock,
		now:          clock(),
		noColor:      opts.NoColor,
		interrupt:    opts.Interrupt,
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init starts ticking and waits for the first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tick(m.tickInterval))
}

// Update consumes UI events and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-6, 1))
		m.table.SetColumns(columnsForWidth(typed.Width))
		m.bar.Width = max(typed.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			if m.interrupt != nil {
				m.interrupt()
				m.state.LastEvent = "interrupt requested, stopping after the current attempt"
				return m, nil
			}
			return m, tea.Quit
		}
		return m, nil
	case EventMsg:
		m = applyEvent(m, typed.Event)
		return m, waitForEvent(m.events)
	case tickMsg:
		m.now = time.Time(typed)
		m.table.SetRows(rowsForState(m.state, m.now, m.noColor))
		return m, tick(m.tickInterval)
	}
	return m, nil
}

// View renders the live UI.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.now, m.noColor),
		m.bar.ViewAs(m.state.Fraction()),
		renderSummary(m.state, m.noColor),
		renderCurrent(m.state, m.noColor),
		m.table.View(),
		renderFooter(m.state, m.noColor),
	)
}

// EventMsg wraps a UI event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// tickMsg carries a clock tick for updates.
type tickMsg time.Time

// waitForEvent blocks until a UI event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// applyEvent mutates model state based on a UI event.
func applyEvent(model Model, event Event) Model {
	now := model.clock()
	model.now = now
	model.state = Reduce(model.state, event, now)
	model.table.SetRows(rowsForState(model.state, model.now, model.noColor))
	return model
}
