package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Runner executes external commands in a working directory.
type Runner interface {
	// Output runs the command and returns its trimmed standard output.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
	// Run runs the command with its output streamed to the user.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewExecRunner returns a runner streaming to the process's stdout/stderr.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr, Logger: logger}
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmdline := commandLine(name, args)
	r.debug("running command", "cmd", cmdline, "dir", dir)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w\n%s", cmdline, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmdline := commandLine(name, args)
	r.debug("running command", "cmd", cmdline, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmdline, err)
	}
	return nil
}

func (r *ExecRunner) debug(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, args...)
	}
}

// commandLine renders a command the way a user would type it.
func commandLine(name string, args []string) string {
	return shellquote.Join(append([]string{name}, args...)...)
}

// splitScript parses a configured script such as "npm run test -- --ci".
func splitScript(script string) ([]string, error) {
	words, err := shellquote.Split(script)
	if err != nil {
		return nil, fmt.Errorf("parsing script %q: %w", script, err)
	}
	return words, nil
}
