// Package cmd is the top-level entry point of the Alan driver: it resolves the
// command line and the installation configuration and then runs the pipeline.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"alanc/build"
	"alanc/common"
	"alanc/config"
	"alanc/report"
	"alanc/toolexec"
)

// Execute is the main entry point for the `alanc` CLI utility.  It returns the
// process exit code.
func Execute() int {
	// an interrupt kills the running tool; the workspace is still released
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
}

// run executes the driver for the given arguments.  A nil invoker runs the
// real tools.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, invoker toolexec.Invoker) int {
	if flag, ok := infoFlag(args); ok {
		if flag == "--help" {
			fmt.Fprint(stdout, usage)
		} else {
			fmt.Fprintln(stdout, common.AlanCompilerID)
		}

		return build.ExitSuccess
	}

	// ALAN_LOGLEVEL applies before the installation is found so that errors
	// locating it respect the level too
	if level, ok, err := config.LogLevelFromEnv(); ok && err == nil {
		report.InitReporter(level)
	}

	// a request that cannot be resolved under any policy fails before the
	// installation is looked at
	req, err := ResolveArgs(args, PolicyLastWins)
	if err != nil {
		return usageFailure(err, stderr)
	}

	cfg, err := loadConfig()
	if err != nil {
		report.ReportError(err)
		return build.ExitStatus(err)
	}

	if cfg.StrictArgs {
		if req, err = ResolveArgs(args, PolicyStrict); err != nil {
			return usageFailure(err, stderr)
		}
	}

	// standard output carries the artifact when emitting IR or assembly, so
	// progress output is turned off
	if req.Emit.ToStdout() && cfg.LogLevel == report.LogLevelVerbose {
		report.InitReporter(report.LogLevelWarn)
	}

	if cfg.Debug {
		report.ReportDebug("configuration", cfg)
		report.ReportDebug("compile request", req)
	}

	if invoker == nil {
		invoker = toolexec.NewExecInvoker(report.ToolLogger())
	}

	report.ReportInfo("alanc", fmt.Sprintf("v%s -- input: %s, emit: %s, %s", common.AlanVersion, req.InputPath, req.Emit, req.OptLevel))

	d := build.NewDriver(cfg, req, invoker, stdout)
	if err := d.Run(ctx); err != nil {
		report.ReportError(err)
		report.ReportCompilationFinished("")
		return build.ExitStatus(err)
	}

	report.ReportCompilationFinished(d.OutputPath())
	return build.ExitSuccess
}

// usageFailure reports a usage error followed by the usage text.
func usageFailure(err error, stderr io.Writer) int {
	report.ReportError(err)
	if report.CurrentLogLevel() > report.LogLevelSilent {
		fmt.Fprint(stderr, "\n", usage)
	}

	return build.ExitStatus(err)
}

// loadConfig locates the Alan installation, loads its configuration, and
// initializes the reporter with the configured log level.
func loadConfig() (*config.Config, error) {
	root, err := config.FindRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	report.InitReporter(cfg.LogLevel)
	for _, warning := range cfg.Warnings {
		report.ReportWarning("Config Warning", warning)
	}

	return cfg, nil
}
