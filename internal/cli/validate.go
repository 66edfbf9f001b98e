package cli

import (
	"flag"
	"fmt"
	"io"

	"qfrbench/internal/config"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .qfrbench/config.yml)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		sweep := config.Sweep(cfg)
		fmt.Fprintln(stdout, "Config OK")
		fmt.Fprintf(stdout, "%d benchmarks x %d qubit counts x %d params = %d attempts\n",
			len(sweep.Benchmarks), sweep.Qubits.Len(), len(sweep.Params), sweep.Total())
		return ExitOK
	}
}
