package shell

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/mozc-build/update-deps/internal/utils/logger"
)

// Command is an external command invocation: an executable name, its
// arguments, and the working directory to run it in (empty means the
// process's current directory).
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command the way it would be typed in a shell. Used in
// logs and error messages.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// Executor runs external commands. Tests swap Default for a MockExecutor.
type Executor interface {
	Run(cmd Command) (string, error)
}

// Default is the executor used by the package-level Run.
var Default Executor = &HostExecutor{}

// Run executes cmd via the Default executor and returns its combined output.
func Run(cmd Command) (string, error) {
	return Default.Run(cmd)
}

// HostExecutor runs commands on the host with os/exec.
type HostExecutor struct{}

// Run executes the command, waits for completion, and returns combined
// stdout/stderr. A non-zero exit is returned as an error naming the command.
func (HostExecutor) Run(cmd Command) (string, error) {
	log := logger.Logger()
	log.Debugf("Exec: [%s]", cmd.String())

	c := exec.Command(cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}

	output, err := c.CombinedOutput()
	outputStr := string(output)

	if err != nil {
		if outputStr != "" {
			log.Infof(outputStr)
		}
		return outputStr, fmt.Errorf("failed to execute %s: %w", cmd.String(), err)
	}
	if outputStr != "" {
		log.Debugf(outputStr)
	}
	return outputStr, nil
}

// MockCommand pairs a substring pattern with the output and error the mock
// should return for commands matching it.
type MockCommand struct {
	Pattern string
	Output  string
	Error   error
}

// MockExecutor is an Executor for tests. It records every invocation and
// answers from a fixed table instead of running anything.
type MockExecutor struct {
	Commands []MockCommand
	Calls    []Command
}

// NewMockExecutor returns a MockExecutor answering from the given table.
func NewMockExecutor(commands []MockCommand) *MockExecutor {
	return &MockExecutor{Commands: commands}
}

// Run records the invocation and returns the first table entry whose pattern
// is a substring of the rendered command. Unmatched commands succeed with
// empty output.
func (m *MockExecutor) Run(cmd Command) (string, error) {
	m.Calls = append(m.Calls, cmd)
	rendered := cmd.String()
	for _, mock := range m.Commands {
		if strings.Contains(rendered, mock.Pattern) {
			return mock.Output, mock.Error
		}
	}
	return "", nil
}
