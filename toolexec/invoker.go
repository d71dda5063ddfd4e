// Package toolexec runs the external tools of the compilation pipeline.
package toolexec

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/execabs"
)

// Invocation describes a single run of an external tool.
type Invocation struct {
	// Stage is the name of the pipeline stage the tool is run for.
	Stage string

	// Command is the tool to run: an absolute path or a name looked up in the
	// PATH.
	Command string

	// Args are the arguments passed to the tool (not including the command).
	Args []string

	// Stdin, if non-nil, is connected to the tool's standard input.
	Stdin io.Reader

	// Stdout, if non-nil, receives the tool's standard output.
	Stdout io.Writer
}

// Invoker runs external tools.  Invoke blocks until the tool exits and returns
// its exit code.  The error is non-nil only if the tool could not be run at
// all, in which case the exit code is -1.
type Invoker interface {
	Invoke(ctx context.Context, inv *Invocation) (int, error)
}

// ExecInvoker runs tools as child processes of the driver.
type ExecInvoker struct {
	// log traces every invocation.
	log *log.Logger

	// DefaultStdout receives the standard output of tools whose output is not
	// redirected.  Standard output of the driver itself is reserved for emitted
	// artifacts.
	DefaultStdout io.Writer

	// Stderr receives the standard error of every tool.
	Stderr io.Writer
}

// NewExecInvoker creates a new invoker that traces invocations to logger.
func NewExecInvoker(logger *log.Logger) *ExecInvoker {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &ExecInvoker{
		log:           logger,
		DefaultStdout: os.Stderr,
		Stderr:        os.Stderr,
	}
}

// Invoke implements Invoker.
func (ei *ExecInvoker) Invoke(ctx context.Context, inv *Invocation) (int, error) {
	// execabs refuses to run a bare tool name resolved relative to the working
	// directory: `opt` must come from the PATH, never `./opt`.
	cmd := execabs.CommandContext(ctx, inv.Command, inv.Args...)
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = ei.DefaultStdout
	}
	cmd.Stderr = ei.Stderr

	ei.log.Debug("running tool", "stage", inv.Stage, "cmd", inv.Command, "args", inv.Args)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		ei.log.Debug("tool failed", "stage", inv.Stage, "status", exitErr.ExitCode())
		return exitErr.ExitCode(), nil
	}

	if ctx.Err() != nil {
		err = ctx.Err()
	}

	ei.log.Error("unable to run tool", "stage", inv.Stage, "cmd", inv.Command, "err", err)
	return -1, err
}
