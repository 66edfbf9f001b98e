package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"qfrbench/internal/config"
	"qfrbench/internal/store"
)

// runRuns lists the runs saved in the configured result store.
func runRuns(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .qfrbench/config.yml)")
		database := fs.String("database", "", "Result store DSN (default: output.database from the config)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		dsn := strings.TrimSpace(*database)
		root := ""
		if dsn == "" {
			resolved, err := resolveConfigPath(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
				return ExitError
			}
			cfg, err := config.Load(resolved)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
				return ExitError
			}
			if strings.TrimSpace(cfg.Output.Database) == "" {
				fmt.Fprintln(stderr, "No result store configured (set output.database or pass --database).")
				return ExitError
			}
			dsn = cfg.Output.Database
			root = config.RepoRootFromConfigPath(resolved)
		}
		if root != "" {
			resolvedDSN, err := resolveDSN(root, dsn)
			if err != nil {
				fmt.Fprintf(stderr, "Invalid database: %v\n", err)
				return ExitError
			}
			dsn = resolvedDSN
		}

		ctx := context.Background()
		db, err := store.Open(ctx, dsn)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open result store: %v\n", err)
			return ExitError
		}
		defer db.Close()
		runs, err := db.Runs(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list runs: %v\n", err)
			return ExitError
		}
		if len(runs) == 0 {
			fmt.Fprintln(stdout, "No runs stored.")
			return ExitOK
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tSTARTED\tSUCCEEDED\tPLANNED\tMISMATCHES\tCANCELLED")
		for _, run := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%t\n",
				run.RunID, run.StartedAt.Format("2006-01-02 15:04:05"),
				run.Summary.Succeeded, run.Summary.Planned, run.Summary.EqualityMismatches, run.Cancelled)
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(stderr, "Failed to print runs: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
