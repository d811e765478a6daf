// Package executil provides process execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const maxOutputLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs external programs.
type Executor interface {
	// Run executes a command and returns its output. On failure the error
	// carries the first bytes of the output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunInteractive executes a command attached to the terminal, as needed
	// for editors.
	RunInteractive(ctx context.Context, cmd string, args ...string) error
}

// RealExecutor runs actual processes.
type RealExecutor struct{}

// Run executes a command and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	var out, capped bytes.Buffer
	lw := &limitedWriter{buf: &capped, max: maxOutputLen}
	c.Stdout = &out
	c.Stderr = lw
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(capped.String()); msg != "" {
			return out.Bytes(), fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return out.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out.Bytes(), nil
}

// RunInteractive executes a command with the process's stdin, stdout and stderr.
func (e *RealExecutor) RunInteractive(ctx context.Context, cmd string, args ...string) error {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("exec %s: %w", cmd, err)
	}
	return nil
}

// SplitCommand splits a configured command such as "code --wait" into the
// program and its leading arguments.
func SplitCommand(command string) (string, []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// OpenCommand returns the program that opens files and URLs with their
// default application on this platform.
func OpenCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}
