package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func withOutput(t *testing.T, level int) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	prev := out
	SetOutput(buf)
	InitReporter(level)
	t.Cleanup(func() {
		out = prev
		InitReporter(LogLevelVerbose)
	})

	return buf
}

func TestErrorTag(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"usage", Usage("missing input file"), "Argument Error"},
		{"filesystem", &FilesystemError{Op: "create", Path: "tmp", Err: errors.New("denied")}, "Filesystem Error"},
		{"wrapped tool", fmt.Errorf("link: %w", &ToolError{Stage: "link", Command: "clang", ExitCode: 1}), "Tool Error"},
		{"config", Config("bad"), "Config Error"},
		{"other", errors.New("boom"), "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorTag(tt.err); got != tt.want {
				t.Errorf("errorTag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportErrorRespectsLogLevel(t *testing.T) {
	buf := withOutput(t, LogLevelSilent)

	ReportError(Usage("nope"))
	if buf.Len() != 0 {
		t.Errorf("silent reporter wrote %q", buf.String())
	}
	if !AnyErrors() {
		t.Error("AnyErrors() = false after ReportError")
	}

	buf = withOutput(t, LogLevelError)
	ReportError(&ToolError{Stage: "translate", Command: "ALAN", ExitCode: 3})
	if !strings.Contains(buf.String(), "exited with status 3") {
		t.Errorf("error output %q does not contain the tool status", buf.String())
	}
}

func TestReportWarningNeedsWarnLevel(t *testing.T) {
	buf := withOutput(t, LogLevelError)
	ReportWarning("Tool Warning", "opt exited with status 1")
	if buf.Len() != 0 {
		t.Errorf("error-level reporter displayed a warning: %q", buf.String())
	}

	buf = withOutput(t, LogLevelWarn)
	ReportWarning("Tool Warning", "opt exited with status 1")
	if !strings.Contains(buf.String(), "opt exited with status 1") {
		t.Errorf("warning output = %q", buf.String())
	}
}

func TestReportCompilationFinished(t *testing.T) {
	buf := withOutput(t, LogLevelVerbose)
	ReportCompilationFinished("/alan/execs/hello")
	if got := buf.String(); !strings.Contains(got, "All done!") || !strings.Contains(got, "/alan/execs/hello") {
		t.Errorf("successful run output = %q", got)
	}

	buf = withOutput(t, LogLevelVerbose)
	ReportError(Usage("no input file"))
	buf.Reset()
	ReportCompilationFinished("/alan/execs/hello")
	got := buf.String()
	if !strings.Contains(got, "Oh no!") {
		t.Errorf("failed run output = %q, want a failure summary", got)
	}
	if strings.Contains(got, "/alan/execs/hello") {
		t.Errorf("failed run output %q shows an output path", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	for name, want := range map[string]int{
		"silent":  LogLevelSilent,
		"error":   LogLevelError,
		"warn":    LogLevelWarn,
		"verbose": LogLevelVerbose,
	} {
		got, ok := ParseLogLevel(name)
		if !ok || got != want {
			t.Errorf("ParseLogLevel(%q) = %d, %v; want %d, true", name, got, ok, want)
		}
	}

	if _, ok := ParseLogLevel("loud"); ok {
		t.Error("ParseLogLevel accepted an unknown level")
	}
}

func TestToolErrorMessages(t *testing.T) {
	notFound := &ToolError{Stage: "optimize", Command: "opt", ExitCode: -1, Err: errors.New("executable file not found in $PATH")}
	if !strings.Contains(notFound.Error(), "failed to run `opt`") {
		t.Errorf("unexpected message %q", notFound.Error())
	}

	var te *ToolError
	if !errors.As(fmt.Errorf("wrapped: %w", notFound), &te) || te.ExitCode != -1 {
		t.Error("ToolError not recoverable with errors.As")
	}
}
