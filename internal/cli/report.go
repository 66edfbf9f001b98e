package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"qfrbench/internal/report"
)

// runReport renders the HTML report for an existing results JSON file.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		resultsPath := fs.String("results", "", "Path to a results JSON file written by run")
		outPath := fs.String("out", "", "Output HTML path (default: results path with .html)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*resultsPath) == "" {
			fmt.Fprintln(stderr, "--results is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		doc, err := report.LoadDocument(*resultsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load results: %v\n", err)
			return ExitError
		}
		out := *outPath
		if out == "" {
			out = strings.TrimSuffix(*resultsPath, ".json") + ".html"
		}
		if err := report.WriteHTML(context.Background(), out, doc); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report: %s\n", out)
		return ExitOK
	}
}
