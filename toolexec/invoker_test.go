package toolexec

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecInvokerExitCodes(t *testing.T) {
	skipWithoutShell(t)

	ei := NewExecInvoker(nil)
	tests := []struct {
		name   string
		script string
		want   int
	}{
		{"success", "exit 0", 0},
		{"failure", "exit 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ei.Invoke(context.Background(), &Invocation{
				Stage:   "test",
				Command: "sh",
				Args:    []string{"-c", tt.script},
			})
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if code != tt.want {
				t.Errorf("Invoke() = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestExecInvokerRedirectsStdio(t *testing.T) {
	skipWithoutShell(t)

	out := &bytes.Buffer{}
	code, err := NewExecInvoker(nil).Invoke(context.Background(), &Invocation{
		Stage:   "translate",
		Command: "cat",
		Stdin:   strings.NewReader("proc main () : proc { }"),
		Stdout:  out,
	})
	if err != nil || code != 0 {
		t.Fatalf("Invoke() = %d, %v", code, err)
	}
	if got := out.String(); got != "proc main () : proc { }" {
		t.Errorf("stdout = %q", got)
	}
}

func TestExecInvokerMissingTool(t *testing.T) {
	code, err := NewExecInvoker(nil).Invoke(context.Background(), &Invocation{
		Stage:   "link",
		Command: "alanc-no-such-linker",
	})
	if err == nil {
		t.Fatal("Invoke() of a missing tool returned no error")
	}
	if code != -1 {
		t.Errorf("Invoke() = %d, want -1", code)
	}
}

func TestExecInvokerCancelled(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, err := NewExecInvoker(nil).Invoke(ctx, &Invocation{Stage: "optimize", Command: "sh", Args: []string{"-c", "sleep 5"}})
	if err == nil || code != -1 {
		t.Errorf("Invoke() with a cancelled context = %d, %v", code, err)
	}
}
