package build

import (
	"errors"

	"alanc/report"
)

// Exit codes of the driver other than those propagated from tools.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitStatus maps the result of a run to the driver's exit code.  A tool that
// exited nonzero has its exit code propagated.
func ExitStatus(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ue *report.UsageError
	if errors.As(err, &ue) {
		return ExitUsage
	}

	var te *report.ToolError
	if errors.As(err, &te) && te.Err == nil && te.ExitCode > 0 {
		return te.ExitCode
	}

	return ExitFailure
}
