package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"qfrbench/internal/config"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// initPlan is where init writes the config and which git root, if any, gets
// the .gitignore entry.
type initPlan struct {
	configPath string
	configDir  string
	gitRoot    string
}

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: .qfrbench/config.yml in the git root or working directory)")
		outputDir := flags.String("output-dir", "", "Results folder (skips the prompt)")
		assumeYes := flags.Bool("yes", false, "Accept every default without prompting")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		plan, err := planInit(*configPath)
		if err == nil {
			err = plan.check()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		answers, err := askInit(plan, *outputDir, *assumeYes, stdout)
		if errors.Is(err, errInitCancelled) {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		if err := config.Scaffold(plan.configPath, answers.outputDir); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", plan.configPath)
		if answers.gitignore {
			updated, err := addGitignoreEntry(plan.gitRoot, answers.outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(plan.gitRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// planInit picks the config location. Without a path it goes under the git
// root, or the working directory outside a repository.
func planInit(configPath string) (initPlan, error) {
	if path := strings.TrimSpace(configPath); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return initPlan{}, err
		}
		return initPlan{
			configPath: abs,
			configDir:  filepath.Dir(abs),
			gitRoot:    discoverGitRoot(config.RepoRootFromConfigPath(abs)),
		}, nil
	}
	gitRoot := discoverGitRoot("")
	base := gitRoot
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return initPlan{}, err
		}
		base = wd
	}
	return initPlan{
		configPath: config.ConfigPath(base),
		configDir:  config.ConfigDir(base),
		gitRoot:    gitRoot,
	}, nil
}

// check fails before any prompt when the config cannot be written.
func (p initPlan) check() error {
	if info, err := os.Stat(p.configDir); err == nil && !info.IsDir() {
		return fmt.Errorf("config directory %q is not a directory", p.configDir)
	}
	info, err := os.Stat(p.configPath)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("spec path %q is a directory", p.configPath)
	case err == nil:
		return fmt.Errorf("spec file already exists at %q", p.configPath)
	case !os.IsNotExist(err):
		return fmt.Errorf("stat spec file: %w", err)
	}
	return nil
}

var errInitCancelled = errors.New("init cancelled")

type initAnswers struct {
	outputDir string
	gitignore bool
}

// askInit confirms the plan and asks for the results folder. With assumeYes
// every default is taken and nothing is read.
func askInit(plan initPlan, outputDir string, assumeYes bool, stdout io.Writer) (initAnswers, error) {
	answers := initAnswers{outputDir: strings.TrimSpace(outputDir)}
	if assumeYes {
		if answers.outputDir == "" {
			answers.outputDir = config.DefaultOutputDir
		}
		answers.gitignore = plan.gitRoot != ""
		return answers, nil
	}

	in := initInput
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)
	confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize qfrbench config in %s?", plan.configDir), true)
	if err != nil {
		return answers, err
	}
	if !confirm {
		return answers, errInitCancelled
	}
	if answers.outputDir == "" {
		answers.outputDir, err = promptString(reader, stdout, "Results folder", config.DefaultOutputDir)
		if err != nil {
			return answers, err
		}
	}
	if plan.gitRoot != "" {
		answers.gitignore, err = promptYesNo(reader, stdout, "Add results folder to .gitignore?", true)
		if err != nil {
			return answers, err
		}
	}
	return answers, nil
}

// discoverGitRoot walks up from startDir to the directory holding .git.
// It returns empty when there is none.
func discoverGitRoot(startDir string) string {
	dir := startDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
