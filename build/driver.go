// Package build is the pipeline driver: it runs the front-end translator,
// optimizer, code generator and linker for a compile request, stopping early
// when only the IR or the assembly was requested.
package build

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"alanc/common"
	"alanc/config"
	"alanc/report"
	"alanc/toolexec"
	"alanc/workspace"
)

// Driver is the data structure responsible for running the pipeline of a
// single compile request.
type Driver struct {
	// cfg is the configuration of the Alan installation.
	cfg *config.Config

	// req is the request being compiled.
	req *CompileRequest

	// invoker runs the external tools.
	invoker toolexec.Invoker

	// stdout receives the emitted IR or assembly.
	stdout io.Writer

	// ws is the workspace of the current run.
	ws *workspace.Workspace

	// outputPath is the path of the linked executable once linking succeeded.
	outputPath string
}

// NewDriver creates a new driver for a request.
func NewDriver(cfg *config.Config, req *CompileRequest, invoker toolexec.Invoker, stdout io.Writer) *Driver {
	return &Driver{
		cfg:     cfg,
		req:     req,
		invoker: invoker,
		stdout:  stdout,
	}
}

// OutputPath returns the path of the linked executable.  It is empty unless an
// executable was produced.
func (d *Driver) OutputPath() string {
	return d.outputPath
}

// Run runs the pipeline.  The workspace is released on every path out of Run:
// success, early stop, and failure.  If both a stage and the cleanup fail, the
// stage error is returned and the cleanup error is reported as a warning.
func (d *Driver) Run(ctx context.Context) (err error) {
	// open the input first so that a bad input path never touches the
	// workspace or runs a tool
	input, err := os.Open(d.req.InputPath)
	if err != nil {
		return &report.FilesystemError{Op: "open input file", Path: d.req.InputPath, Err: err}
	}
	defer input.Close()

	d.ws, err = workspace.Acquire(d.cfg.WorkspaceDir)
	if err != nil {
		return err
	}

	defer func() {
		if rerr := d.ws.Release(); rerr != nil {
			if err == nil {
				err = rerr
			} else {
				report.ReportWarning("Cleanup Warning", rerr.Error())
			}
		}
	}()

	base := filepath.Base(d.req.OutputName)

	irPath := d.ws.Path(base + common.IRFileExt)
	if err := d.translate(ctx, input, irPath); err != nil {
		return err
	}

	if err := d.optimize(ctx, irPath); err != nil {
		return err
	}

	if d.req.Emit == EmitIR {
		return d.emit(irPath)
	}

	asmPath := d.ws.Path(base + common.ASMFileExt)
	if err := d.assemble(ctx, irPath, asmPath); err != nil {
		return err
	}

	if d.req.Emit == EmitAssembly {
		return d.emit(asmPath)
	}

	return d.link(ctx, asmPath)
}

// -----------------------------------------------------------------------------

// translate runs the front-end translator.  The source file is passed both as
// an argument and as standard input, and the IR is read from standard output.
func (d *Driver) translate(ctx context.Context, input io.Reader, irPath string) error {
	irFile, err := os.Create(irPath)
	if err != nil {
		return &report.FilesystemError{Op: "create IR file", Path: irPath, Err: err}
	}
	defer irFile.Close()

	if err := d.runStage(ctx, StageTranslate, &toolexec.Invocation{
		Command: d.cfg.Translator,
		Args:    []string{d.req.InputPath},
		Stdin:   input,
		Stdout:  irFile,
	}); err != nil {
		return err
	}

	if err := irFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return &report.FilesystemError{Op: "write IR file", Path: irPath, Err: err}
	}

	return nil
}

// optimize runs the optimizer over the IR file in place.  Passthrough
// arguments follow the optimization level.
func (d *Driver) optimize(ctx context.Context, irPath string) error {
	args := []string{"-S", string(d.req.OptLevel)}
	args = append(args, d.req.Passthrough...)
	args = append(args, irPath, "-o", irPath)

	return d.runStage(ctx, StageOptimize, &toolexec.Invocation{
		Command: d.cfg.Optimizer,
		Args:    args,
	})
}

// assemble runs the code generator to lower the IR file to assembly.
func (d *Driver) assemble(ctx context.Context, irPath, asmPath string) error {
	return d.runStage(ctx, StageAssemble, &toolexec.Invocation{
		Command: d.cfg.CodeGen,
		Args:    []string{irPath, "-o", asmPath},
	})
}

// link links the assembly and the runtime library into the final executable.
// The output directory is only created here so that emitting IR or assembly
// never leaves anything behind.
func (d *Driver) link(ctx context.Context, asmPath string) error {
	outputPath := d.req.OutputName
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(d.cfg.OutputDir, outputPath)
	}

	for _, dir := range []string{d.cfg.OutputDir, filepath.Dir(outputPath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &report.FilesystemError{Op: "create output directory", Path: dir, Err: err}
		}
	}

	if err := d.runStage(ctx, StageLink, &toolexec.Invocation{
		Command: d.cfg.Linker,
		Args:    []string{asmPath, d.cfg.RuntimeLib, "-o", outputPath},
	}); err != nil {
		return err
	}

	report.ReportEndPhase(true)
	d.outputPath = outputPath
	return nil
}

// emit prints an intermediate file to standard output.
func (d *Driver) emit(path string) error {
	report.ReportEndPhase(true)

	content, err := ioutil.ReadFile(path)
	if err != nil {
		return &report.FilesystemError{Op: "read", Path: path, Err: err}
	}

	if _, err := d.stdout.Write(content); err != nil {
		return &report.FilesystemError{Op: "write", Path: "<stdout>", Err: err}
	}

	return nil
}

// runStage runs the tool of a pipeline stage and checks its exit code.
func (d *Driver) runStage(ctx context.Context, stage PipelineStage, inv *toolexec.Invocation) error {
	report.ReportBeginPhase(stage.Phase())

	inv.Stage = stage.String()
	code, err := d.invoker.Invoke(ctx, inv)
	if err != nil {
		return &report.ToolError{Stage: inv.Stage, Command: inv.Command, ExitCode: -1, Err: err}
	}

	if code != 0 {
		terr := &report.ToolError{Stage: inv.Stage, Command: inv.Command, ExitCode: code}
		if d.cfg.LenientTools && !stage.gatesCorrectness() {
			report.ReportWarning("Tool Warning", terr.Error())
			return nil
		}

		return terr
	}

	return nil
}
