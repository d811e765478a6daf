package executil

import (
	"context"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Cmd         string
	Args        []string
	Interactive bool
}

// RecordingExecutor captures commands for testing.
// Configure Outputs and Errors maps to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps command names to their output.
	Outputs map[string][]byte

	// Errors maps command names to their error.
	Errors map[string]error

	// OnRun is called for every command before the configured error is
	// returned. Tests use it to simulate side effects such as an editor
	// writing a file.
	OnRun func(cmd string, args []string) error
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record(false, cmd, args...)
}

// RunInteractive records the command and returns the configured error.
func (e *RecordingExecutor) RunInteractive(ctx context.Context, cmd string, args ...string) error {
	_, err := e.record(true, cmd, args...)
	return err
}

func (e *RecordingExecutor) record(interactive bool, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Cmd:         cmd,
		Args:        args,
		Interactive: interactive,
	})

	if e.OnRun != nil {
		if err := e.OnRun(cmd, args); err != nil {
			return nil, err
		}
	}

	var out []byte
	var err error

	if e.Outputs != nil {
		out = e.Outputs[cmd]
	}
	if e.Errors != nil {
		err = e.Errors[cmd]
	}

	return out, err
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
