package evaluation

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	verbosePrefix = "[verbose]"
	warnPrefix    = "[warn]"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiGray   = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiBlue   = "\x1b[34m"
	ansiYellow = "\x1b[33m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleProgress
	styleMetrics
	styleError
	styleWarning
)

// LogOptions configures the console logger.
type LogOptions struct {
	Verbose bool
	// Out receives progress lines when Verbose is set.
	Out io.Writer
	// Warn receives generation, construction and equality warnings.
	Warn    io.Writer
	NoColor bool
}

// consoleLogger prints progress and warnings. It is always attached to a run.
type consoleLogger struct {
	NopObserver
	opts LogOptions
}

// NewConsoleLogger returns an Observer that prints progress and warnings.
func NewConsoleLogger(opts LogOptions) Observer {
	return &consoleLogger{opts: opts}
}

func (l *consoleLogger) OnRunStart(runID string, total int) {
	logVerbose(l.opts.Verbose, l.opts.Out, l.opts.NoColor, styleDefault, "run %s: %d attempts planned", runID, total)
}

func (l *consoleLogger) OnAttempt(progress Progress) {
	logVerbose(l.opts.Verbose, l.opts.Out, l.opts.NoColor, styleProgress, "----------------%s----------------", progress)
}

func (l *consoleLogger) OnGenerationFailure(failure GenerationFailure) {
	logWarn(l.opts.Warn, l.opts.NoColor, styleError, "generation failed for %s (%d qubits): %s", failure.Benchmark, failure.Qubits, failure.Error)
}

func (l *consoleLogger) OnOutcome(outcome Outcome) {
	switch outcome.Kind {
	case OutcomeConstructionFailed:
		logWarn(l.opts.Warn, l.opts.NoColor, styleError, "construction failed for %s (%d qubits, label %s): %s", outcome.Benchmark, outcome.Qubits, outcome.Label, outcome.Error)
	case OutcomeOK:
		logVerbose(l.opts.Verbose, l.opts.Out, l.opts.NoColor, styleMetrics, "done in %s", outcome.Duration)
	}
}

func (l *consoleLogger) OnMismatch(mismatch EqualityMismatch) {
	logWarn(l.opts.Warn, l.opts.NoColor, styleWarning, "!not equal! %s (%d qubits): %d distinct matrices across labels %s", mismatch.Benchmark, mismatch.Qubits, mismatch.Distinct, strings.Join(mismatch.Labels, ", "))
}

func (l *consoleLogger) OnRunEnd(report Report) {
	s := report.Summary
	logVerbose(l.opts.Verbose, l.opts.Out, l.opts.NoColor, styleMetrics,
		"run %s finished: succeeded=%d construction_failures=%d generation_failures=%d skipped=%d mismatches=%d",
		report.RunID, s.Succeeded, s.ConstructionFailures, s.GenerationFailures, s.Skipped, s.EqualityMismatches)
}

func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

func logWarn(writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(warnPrefix), palette.apply(style, line))
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleProgress:
		return ansiBold + ansiBlue + text + ansiReset
	case styleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	case styleWarning:
		return ansiBold + ansiYellow + text + ansiReset
	default:
		return text
	}
}
