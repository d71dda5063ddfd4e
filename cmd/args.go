package cmd

import (
	"path/filepath"
	"strings"

	"alanc/build"
	"alanc/common"
	"alanc/report"
)

const usage = `Usage: alanc [options] <file.alan> [optimizer flags...]

Flags:
------
--help          Displays usage information (ie. this text).
--version       Displays the current compiler version.
-L              Prints the optimized LLVM IR to standard output and stops.
-S              Prints the generated assembly to standard output and stops.
-O0             Disables all optimizations (default).
-O1             Enables some optimizations.
-O2             Enables more optimizations.
-O3             Enables all optimizations.

Options:
--------
-o <name>       Sets the name of the executable.  Relative names are placed in
                the installation's output directory.  Defaults to a.out.

Any other argument is passed unchanged to the optimizer.
`

// ArgPolicy decides what happens when an argument group is given more than
// once: eg. two input files or both -L and -S.
type ArgPolicy int

// Enumeration of argument policies.
const (
	// PolicyLastWins lets the last argument of each group override the earlier
	// ones (default).
	PolicyLastWins ArgPolicy = iota

	// PolicyStrict rejects conflicting arguments within a group.  Repeating an
	// identical argument is still accepted.
	PolicyStrict
)

// Argument groups: at most one value of each group ends up in the request.
const (
	groupInput  = "input file"
	groupOutput = "-o"
	groupOpt    = "optimization level"
	groupEmit   = "output stage"
)

// optLevels is the set of optimization level flags.
var optLevels = map[string]build.OptLevel{
	"-O0": build.O0,
	"-O1": build.O1,
	"-O2": build.O2,
	"-O3": build.O3,
}

// emitFlags maps the stage flags to the stage they stop at.
var emitFlags = map[string]build.EmitStage{
	"-L": build.EmitIR,
	"-S": build.EmitAssembly,
}

// infoFlag returns the first `--help` or `--version` flag in args.  These flags
// take priority over any other argument, valid or not.
func infoFlag(args []string) (string, bool) {
	for _, arg := range args {
		if arg == "--help" || arg == "--version" {
			return arg, true
		}
	}

	return "", false
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int

	// The policy for repeated argument groups.
	policy ArgPolicy

	// The value each argument group was first given.
	seen map[string]string

	// The request being built.
	req *build.CompileRequest
}

// ResolveArgs resolves the driver's command-line arguments (without the program
// name) into a compile request.
func ResolveArgs(args []string, policy ArgPolicy) (*build.CompileRequest, error) {
	ap := &argParser{
		args:   args,
		policy: policy,
		seen:   make(map[string]string),
		req: &build.CompileRequest{
			OutputName: common.DefaultOutputName,
			Emit:       build.EmitExecutable,
			OptLevel:   build.O0,
		},
	}

	for ap.ndx < len(ap.args) {
		if err := ap.useArg(ap.nextArg()); err != nil {
			return nil, err
		}
	}

	if ap.req.InputPath == "" {
		return nil, report.Usage("no input file: expected a %s source file", common.AlanFileExt)
	}

	return ap.req, nil
}

// nextArg returns the next argument and advances the parser.
func (ap *argParser) nextArg() string {
	arg := ap.args[ap.ndx]
	ap.ndx++
	return arg
}

// useArg applies a single command-line argument to the request.
func (ap *argParser) useArg(arg string) error {
	if arg == "-o" {
		if ap.ndx >= len(ap.args) {
			return report.Usage("option -o requires an argument")
		}

		value := ap.nextArg()
		if value == "" {
			return report.Usage("option -o requires a non-empty name")
		}

		if !isFileName(value) {
			return report.Usage("option -o requires a file name, not a directory: `%s`", value)
		}

		if err := ap.claim(groupOutput, value); err != nil {
			return err
		}
		ap.req.OutputName = value
		return nil
	}

	if level, ok := optLevels[arg]; ok {
		if err := ap.claim(groupOpt, arg); err != nil {
			return err
		}
		ap.req.OptLevel = level
		return nil
	}

	if stage, ok := emitFlags[arg]; ok {
		if err := ap.claim(groupEmit, arg); err != nil {
			return err
		}
		ap.req.Emit = stage
		return nil
	}

	if strings.HasSuffix(arg, common.AlanFileExt) {
		if err := ap.claim(groupInput, arg); err != nil {
			return err
		}
		ap.req.InputPath = arg
		return nil
	}

	// everything else belongs to the optimizer
	ap.req.Passthrough = append(ap.req.Passthrough, arg)
	return nil
}

// isFileName returns whether an output name ends in a file name rather than a
// directory such as `.`, `..` or `dir/`.
func isFileName(name string) bool {
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator)) {
		return false
	}

	switch filepath.Base(name) {
	case ".", "..", string(filepath.Separator):
		return false
	}

	return true
}

// claim records a value for an argument group.  Under the strict policy, a
// group that already holds a different value is a usage error.
func (ap *argParser) claim(group, value string) error {
	if prev, ok := ap.seen[group]; ok {
		if ap.policy == PolicyStrict && prev != value {
			return report.Usage("%s given more than once: `%s` conflicts with `%s`", group, value, prev)
		}

		return nil
	}

	ap.seen[group] = value
	return nil
}
