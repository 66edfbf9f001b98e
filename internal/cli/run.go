package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"qfrbench/internal/config"
	"qfrbench/internal/evaluation"
	"qfrbench/internal/export"
	"qfrbench/internal/metrics"
	"qfrbench/internal/report"
	"qfrbench/internal/spec"
	"qfrbench/internal/store"
	"qfrbench/internal/ui/live"
)

// liveUI is the part of the live controller the run command drives.
type liveUI interface {
	evaluation.Observer
	Close()
	Wait()
}

// startLiveUI allows tests to replace the terminal UI.
var startLiveUI = func(stdout io.Writer, opts live.Options) liveUI {
	return live.Start(stdout, opts)
}

type runFlags struct {
	configPath    string
	outputDir     string
	database      string
	uiMode        string
	checkEquality bool
	verbose       bool
	noColor       bool
	failOnPartial bool
	set           map[string]bool
}

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var opts runFlags
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		fs.StringVar(&opts.configPath, "config", "", "Path to config file (default: search for .qfrbench/config.yml)")
		fs.StringVar(&opts.outputDir, "output-dir", "", "Override output directory")
		fs.StringVar(&opts.database, "database", "", "Override result store DSN (duckdb://path or sqlite://path)")
		fs.StringVar(&opts.uiMode, "ui", "auto", "UI mode: auto|live|plain")
		fs.BoolVar(&opts.checkEquality, "check-equality", false, "Compare functional matrices across params")
		fs.BoolVar(&opts.verbose, "verbose", false, "Print progress and per-attempt timings")
		fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
		fs.BoolVar(&opts.failOnPartial, "fail-on-partial", false, "Exit 1 when any attempt produced no result")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		opts.set = map[string]bool{}
		fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

		resolved, err := resolveConfigPath(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		root := config.RepoRootFromConfigPath(resolved)
		applyRunOverrides(&cfg, opts)

		decision, err := resolveUIMode(opts.uiMode, cfg.Verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		return executeRun(ctx, cancel, cfg, root, opts, decision.useLive, stdout, stderr)
	}
}

// applyRunOverrides lets explicitly set flags win over the config file.
func applyRunOverrides(cfg *spec.Config, opts runFlags) {
	if opts.set["check-equality"] {
		cfg.CheckEquality = opts.checkEquality
	}
	if opts.set["verbose"] {
		cfg.Verbose = opts.verbose
	}
	if opts.set["database"] {
		cfg.Output.Database = opts.database
	}
}

func executeRun(ctx context.Context, cancel context.CancelFunc, cfg spec.Config, root string, opts runFlags, useLive bool, stdout, stderr io.Writer) int {
	outputDir := config.ResolvePath(root, cfg.Output.Dir)
	if opts.outputDir != "" {
		outputDir = opts.outputDir
	}
	gen, err := newGenerator(cfg.Generator, root)
	if err != nil {
		fmt.Fprintf(stderr, "Run failed: %v\n", err)
		return ExitError
	}
	constructor, err := newConstructor(cfg.Constructor, root)
	if err != nil {
		fmt.Fprintf(stderr, "Run failed: %v\n", err)
		return ExitError
	}

	recorder := metrics.NewRecorder()
	observers := []evaluation.Observer{recorder}
	warn := stderr
	var ui liveUI
	if useLive {
		ui = startLiveUI(stdout, live.Options{NoColor: opts.noColor, Interrupt: cancel})
		observers = append(observers, ui)
		// Warnings are shown in the live table instead.
		warn = io.Discard
	}

	eval, err := evaluation.New(config.Sweep(cfg), evaluation.Dependencies{
		Generator:   gen,
		Constructor: constructor,
		Observer:    evaluation.Observers(observers...),
		Log: evaluation.LogOptions{
			Verbose: cfg.Verbose,
			Out:     stdout,
			Warn:    warn,
			NoColor: opts.noColor,
		},
	})
	if err != nil {
		if ui != nil {
			ui.Close()
			ui.Wait()
		}
		fmt.Fprintf(stderr, "Run failed: %v\n", err)
		return ExitError
	}

	result := eval.Run(ctx, cfg.CheckEquality)
	if ui != nil {
		ui.Close()
		ui.Wait()
	}

	written, err := writeRunOutputs(context.Background(), eval, result, cfg.Output, outputDir, root, recorder)
	for _, line := range written {
		fmt.Fprintln(stdout, line)
	}
	printRunSummary(stdout, result)
	if err != nil {
		fmt.Fprintf(stderr, "Run failed: %v\n", err)
		return ExitError
	}
	if result.Cancelled {
		fmt.Fprintln(stderr, "Run cancelled.")
		return ExitError
	}
	if opts.failOnPartial && result.Partial() {
		fmt.Fprintln(stderr, "Run is partial.")
		return ExitError
	}
	return ExitOK
}

// writeRunOutputs writes the workbook and the optional artifacts next to it.
// Every file shares the workbook's timestamp stem.
func writeRunOutputs(ctx context.Context, eval *evaluation.Evaluation, result evaluation.Report, out spec.OutputConfig, outputDir, root string, recorder *metrics.Recorder) ([]string, error) {
	var written []string
	workbook, err := eval.ExportExcel(outputDir)
	if err != nil {
		return written, fmt.Errorf("export workbook: %w", err)
	}
	var paths export.OutputPaths
	if workbook != "" {
		written = append(written, "Workbook: "+workbook)
		paths = export.OutputPaths{Dir: filepath.Dir(workbook), Stem: strings.TrimSuffix(filepath.Base(workbook), filepath.Ext(workbook))}
	} else {
		written = append(written, "Workbook: skipped (no results)")
		paths, err = export.NewOutputPaths(outputDir, time.Now())
		if err != nil {
			return written, err
		}
	}

	doc := report.Document{Report: result, Results: eval.Results()}
	if out.WriteJSON() {
		if err := export.WriteJSON(paths.ResultsPath(), doc); err != nil {
			return written, fmt.Errorf("write results: %w", err)
		}
		written = append(written, "Results: "+paths.ResultsPath())
	}
	if out.ReportHTML {
		if err := report.WriteHTML(ctx, paths.ReportPath(), doc); err != nil {
			return written, fmt.Errorf("write report: %w", err)
		}
		written = append(written, "Report: "+paths.ReportPath())
	}
	if out.MetricsFile {
		if err := recorder.WriteTextfile(paths.MetricsPath()); err != nil {
			return written, fmt.Errorf("write metrics: %w", err)
		}
		written = append(written, "Metrics: "+paths.MetricsPath())
	}
	if strings.TrimSpace(out.Database) != "" {
		dsn, err := resolveDSN(root, out.Database)
		if err != nil {
			return written, err
		}
		db, err := store.Open(ctx, dsn)
		if err != nil {
			return written, fmt.Errorf("open result store: %w", err)
		}
		defer db.Close()
		if err := db.SaveRun(ctx, result, eval.Results()); err != nil {
			return written, fmt.Errorf("save run: %w", err)
		}
		written = append(written, "Stored: "+dsn)
	}
	return written, nil
}

func printRunSummary(w io.Writer, result evaluation.Report) {
	s := result.Summary
	fmt.Fprintf(w, "Run %s completed\n", result.RunID)
	fmt.Fprintf(w, "Attempts: %d/%d succeeded\n", s.Succeeded, s.Planned)
	fmt.Fprintf(w, "Generation failures: %d (skipped %d)\n", s.GenerationFailures, s.Skipped)
	fmt.Fprintf(w, "Construction failures: %d\n", s.ConstructionFailures)
	if result.CheckEquality {
		fmt.Fprintf(w, "Equality mismatches: %d\n", s.EqualityMismatches)
	}
}
