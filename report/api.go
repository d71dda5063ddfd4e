package report

import (
	"errors"
)

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportError reports an error encountered by the driver.  The error's kind
// determines the tag it is displayed under.
func ReportError(err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		DisplayErrorMessage(errorTag(err), err)
	}
}

// errorTag returns the tag an error should be displayed with.
func errorTag(err error) string {
	var (
		ue *UsageError
		fe *FilesystemError
		te *ToolError
		ce *ConfigError
	)

	switch {
	case errors.As(err, &ue):
		return "Argument Error"
	case errors.As(err, &fe):
		return "Filesystem Error"
	case errors.As(err, &te):
		return "Tool Error"
	case errors.As(err, &ce):
		return "Config Error"
	default:
		return "Error"
	}
}

// ReportWarning reports a warning under the given tag.
func ReportWarning(tag, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warningCount++

	if rep.logLevel >= LogLevelWarn {
		DisplayWarningMessage(tag, msg)
	}
}

// ReportInfo reports an informational message.
func ReportInfo(tag, msg string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		DisplayInfoMessage(tag, msg)
	}
}

// ReportDebug dumps a labelled value for debugging the driver configuration.
func ReportDebug(label string, v interface{}) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayDebugValue(label, v)
	}
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is verbose.

// ReportBeginPhase reports the start of a pipeline phase.  Any phase that is
// still running is ended successfully first.
func ReportBeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(true)
		displayBeginPhase(phase)
	}
}

// ReportEndPhase reports the end of the current pipeline phase.
func ReportEndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(success)
	}
}

// ReportCompilationFinished reports the concluding message of a run.  A run
// that reported any error is shown as failed and never shows an output path.
func ReportCompilationFinished(outputPath string) {
	if rep.logLevel == LogLevelVerbose {
		success := !AnyErrors()

		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(success)
		displayCompilationFinished(success, outputPath, rep.errorCount, rep.warningCount)
	}
}
