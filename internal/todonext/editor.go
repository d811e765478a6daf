package todonext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/colonyops/todonext/pkg/executil"
)

// Editor runs the configured text editor.
type Editor struct {
	command string
	exec    executil.Executor
}

// NewEditor creates an Editor for command, which may carry arguments.
func NewEditor(command string, exec executil.Executor) *Editor {
	return &Editor{command: command, exec: exec}
}

// Open edits the file at path in place.
func (e *Editor) Open(ctx context.Context, path string) error {
	cmd, args := executil.SplitCommand(e.command)
	if cmd == "" {
		return fmt.Errorf("no editor configured")
	}
	if err := e.exec.RunInteractive(ctx, cmd, append(args, path)...); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// Edit lets the user change initial in the editor and returns the result
// collapsed onto a single line.
func (e *Editor) Edit(ctx context.Context, initial string) (string, error) {
	f, err := os.CreateTemp("", "todonext-*.txt")
	if err != nil {
		return "", err
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.WriteString(initial + "\n"); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	if err := e.Open(ctx, path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(string(data)), " "), nil
}

// OpenTarget hands target, a URL, file or mailto address, to the system
// opener.
func (a *App) OpenTarget(ctx context.Context, target string) error {
	if _, err := a.exec.Run(ctx, executil.OpenCommand(), target); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}
