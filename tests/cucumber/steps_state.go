package cucumber

import (
	"bytes"
	"context"
	"os"

	"github.com/cucumber/godog"
)

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	projectDir string
	configPath string
	previousWD string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
	benchmarks []string
	qubits     [2]int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a project with a valid qfrbench configuration$`, state.aProjectWithValidConfig)
	ctx.Step(`^the sweep covers benchmarks "([^"]*)"$`, state.theSweepCoversBenchmarks)
	ctx.Step(`^the qubit range is (\d+) to (\d+)$`, state.theQubitRangeIs)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]*)"$`, state.theOutputContains)
	ctx.Step(`^the error output contains "([^"]*)"$`, state.theErrorOutputContains)
	ctx.Step(`^the error message points to the invalid field$`, state.theErrorMessagePointsToInvalidField)
	ctx.Step(`^a workbook with (\d+) label tables? is written$`, state.aWorkbookIsWritten)
	ctx.Step(`^no workbook is written$`, state.noWorkbookIsWritten)
}

// reset clears buffers and resets state before each scenario.
func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.projectDir = ""
	s.configPath = ""
	s.previousWD = ""
	s.benchmarks = []string{"ghz", "qft"}
	s.qubits = [2]int{2, 4}
}

// cleanup restores the working directory and removes temporary files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.projectDir != "" {
		_ = os.RemoveAll(s.projectDir)
	}
}
