package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

var (
	ErrNoCommand = errors.New("no command given")
)

// ExecError is the single error type produced by this package.
// Launch failures, IO errors, and abnormal exits from captured commands all normalize to it, so callers only need one check regardless of the underlying OS failure.
type ExecError struct {
	Command []string // Command is the argument vector that failed.
	Stderr  string   // Stderr holds captured error output when the command was run with [Runner.Output].
	cause   error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("exec %s: %v", strings.Join(e.Command, " "), e.cause)
}

func (e *ExecError) Unwrap() error {
	return e.cause
}

func execErr(command []string, stderr string, cause error) error {
	return &ExecError{Command: command, Stderr: stderr, cause: cause}
}

// Split breaks a shell-style command line into fields, honoring quoting and environment variable references.
// It's intended for the common case of holding a whole command in one string.
func Split(commandline string) ([]string, error) {
	fields, err := shell.Fields(commandline, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("splitting command line: %w", err)
	}
	return fields, nil
}

// Runner executes external commands on behalf of a script.
// The zero value runs commands with the caller's standard streams. DryRun and Log adjust behavior, and the stream fields exist to support testing.
type Runner struct {
	// DryRun logs the command at debug level instead of executing it.
	DryRun bool
	// Log receives dry-run output. Defaults to the standard logger.
	Log *log.Logger

	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

func (r *Runner) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.Default()
}

// Run executes args as an interactive command with the script's stdin, stdout, and stderr attached, and waits for it to finish.
// The command's exit code is returned. A command that couldn't be launched at all returns an [ExecError].
func (r *Runner) Run(ctx context.Context, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, execErr(args, "", ErrNoCommand)
	}
	if r.DryRun {
		r.logger().Debug("would execute", "command", strings.Join(args, " "))
		return 0, nil
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = r.stdin()
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return exit.ExitCode(), nil
		}
		return 1, execErr(args, "", err)
	}
	return 0, nil
}

// RunLine is [Runner.Run] for a whole command line held in one string, split with [Split].
func (r *Runner) RunLine(ctx context.Context, commandline string) (int, error) {
	args, err := Split(commandline)
	if err != nil {
		return 1, err
	}
	return r.Run(ctx, args...)
}

// Output executes args and captures its standard output.
// Unlike [Runner.Run], a non-zero exit is an [ExecError] here, with the command's error output attached for diagnostics.
func (r *Runner) Output(ctx context.Context, args ...string) ([]byte, error) {
	if len(args) == 0 {
		return nil, execErr(args, "", ErrNoCommand)
	}
	if r.DryRun {
		r.logger().Debug("would execute", "command", strings.Join(args, " "))
		return nil, nil
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = r.stdin()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, execErr(args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

func (r *Runner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
