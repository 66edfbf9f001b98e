package cli

import (
	"flag"
	"fmt"
	"io"

	"qfrbench/internal/generator"
)

// runList prints the benchmarks the builtin generator provides, or every
// scalable benchmark family with --scalable.
func runList(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		scalable := fs.Bool("scalable", false, "List all scalable benchmark families")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		if *scalable {
			builtin := map[string]bool{}
			for _, name := range (&generator.Builtin{}).Names() {
				builtin[name] = true
			}
			for _, name := range generator.ScalableBenchmarks {
				marker := ""
				if builtin[name] {
					marker = " (builtin)"
				}
				fmt.Fprintf(stdout, "%s%s\n", name, marker)
			}
			return ExitOK
		}
		for _, name := range (&generator.Builtin{}).Names() {
			fmt.Fprintln(stdout, name)
		}
		return ExitOK
	}
}
