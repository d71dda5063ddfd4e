// Package tooltest provides a scriptable toolexec.Invoker for testing code that
// runs the compilation pipeline without a real LLVM toolchain.
package tooltest

import (
	"context"
	"io"
	"io/ioutil"
	"sync"

	"alanc/toolexec"
)

// Call is a recorded tool invocation.
type Call struct {
	Stage   string
	Command string
	Args    []string

	// Stdin is everything the tool read from its standard input.
	Stdin string

	// RedirectedStdout indicates whether the tool's output was captured.
	RedirectedStdout bool
}

// FakeInvoker records invocations and plays back scripted results.  Tools
// "produce" their output by writing Output[stage] (or a default line) to the
// redirected standard output and to the path following `-o`, if any.
type FakeInvoker struct {
	// ExitCodes maps stage names to the exit code the tool returns.
	ExitCodes map[string]int

	// Errors maps stage names to an error starting the tool.
	Errors map[string]error

	// Output maps stage names to the content the tool produces.
	Output map[string]string

	// Calls are the recorded invocations, in order.
	Calls []Call

	m sync.Mutex
}

// NewFakeInvoker creates a fake invoker where every tool succeeds.
func NewFakeInvoker() *FakeInvoker {
	return &FakeInvoker{
		ExitCodes: make(map[string]int),
		Errors:    make(map[string]error),
		Output:    make(map[string]string),
	}
}

// Invoke implements toolexec.Invoker.
func (fi *FakeInvoker) Invoke(ctx context.Context, inv *toolexec.Invocation) (int, error) {
	fi.m.Lock()
	defer fi.m.Unlock()

	call := Call{
		Stage:            inv.Stage,
		Command:          inv.Command,
		Args:             append([]string(nil), inv.Args...),
		RedirectedStdout: inv.Stdout != nil,
	}

	if inv.Stdin != nil {
		if buff, err := ioutil.ReadAll(inv.Stdin); err == nil {
			call.Stdin = string(buff)
		}
	}

	fi.Calls = append(fi.Calls, call)

	if err, ok := fi.Errors[inv.Stage]; ok {
		return -1, err
	}

	if err := ctx.Err(); err != nil {
		return -1, err
	}

	content, ok := fi.Output[inv.Stage]
	if !ok {
		content = "; " + inv.Stage + " output\n"
	}

	if inv.Stdout != nil {
		if _, err := io.WriteString(inv.Stdout, content); err != nil {
			return -1, err
		}
	}

	for i, arg := range inv.Args {
		if arg == "-o" && i+1 < len(inv.Args) {
			if err := ioutil.WriteFile(inv.Args[i+1], []byte(content), 0644); err != nil {
				return -1, err
			}
		}
	}

	return fi.ExitCodes[inv.Stage], nil
}

// Stages returns the stages of the recorded invocations, in order.
func (fi *FakeInvoker) Stages() []string {
	fi.m.Lock()
	defer fi.m.Unlock()

	stages := make([]string, len(fi.Calls))
	for i, call := range fi.Calls {
		stages[i] = call.Stage
	}

	return stages
}

// CallFor returns the recorded invocation for a stage.
func (fi *FakeInvoker) CallFor(stage string) (Call, bool) {
	fi.m.Lock()
	defer fi.m.Unlock()

	for _, call := range fi.Calls {
		if call.Stage == stage {
			return call, true
		}
	}

	return Call{}, false
}
