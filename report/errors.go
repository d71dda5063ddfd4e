package report

import (
	"fmt"
)

// UsageError is an error in the command-line arguments given to the driver:
// missing or malformed arguments.  No tool is ever invoked once one occurs.
type UsageError struct {
	Message string
}

func (ue *UsageError) Error() string {
	return ue.Message
}

// Usage creates a new usage error.
func Usage(msg string, args ...interface{}) *UsageError {
	return &UsageError{Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// FilesystemError is an error creating, removing, opening or reading one of the
// files or directories managed by the driver.
type FilesystemError struct {
	// The operation that failed: eg. "create workspace".
	Op string

	// The path the operation was applied to.
	Path string

	// The underlying error.
	Err error
}

func (fe *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s `%s`: %s", fe.Op, fe.Path, fe.Err)
}

func (fe *FilesystemError) Unwrap() error {
	return fe.Err
}

// -----------------------------------------------------------------------------

// ToolError is an error running one of the external tools of the pipeline.
// Either the tool could not be started, in which case Err is set, or it exited
// with a nonzero exit code.
type ToolError struct {
	// The name of the pipeline stage the tool was run for.
	Stage string

	// The command that was run.
	Command string

	// The exit code of the tool.  This is -1 if the tool never started.
	ExitCode int

	// The reason the tool could not be started.
	Err error
}

func (te *ToolError) Error() string {
	if te.Err != nil {
		return fmt.Sprintf("%s: failed to run `%s`: %s", te.Stage, te.Command, te.Err)
	}

	return fmt.Sprintf("%s: `%s` exited with status %d", te.Stage, te.Command, te.ExitCode)
}

func (te *ToolError) Unwrap() error {
	return te.Err
}

// -----------------------------------------------------------------------------

// ConfigError is an error in the configuration of the Alan installation: a bad
// ALAN_PATH or an invalid configuration file.
type ConfigError struct {
	Message string
}

func (ce *ConfigError) Error() string {
	return ce.Message
}

// Config creates a new configuration error.
func Config(msg string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(msg, args...)}
}
