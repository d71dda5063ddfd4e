package build

// EmitStage is the kind of artifact a run produces.  This must be one of the
// enumerated emit stages.
type EmitStage int

// Enumeration of emit stages.
const (
	EmitExecutable EmitStage = iota // Link an executable (default).
	EmitIR                          // Print the optimized LLVM IR and stop.
	EmitAssembly                    // Print the generated assembly and stop.
)

func (es EmitStage) String() string {
	switch es {
	case EmitIR:
		return "llvm"
	case EmitAssembly:
		return "asm"
	default:
		return "exe"
	}
}

// ToStdout indicates whether the artifact is printed to standard output.
func (es EmitStage) ToStdout() bool {
	return es != EmitExecutable
}

// OptLevel is an optimization level passed to the optimizer.
type OptLevel string

// Enumeration of optimization levels.
const (
	O0 OptLevel = "-O0" // No optimization (default).
	O1 OptLevel = "-O1"
	O2 OptLevel = "-O2"
	O3 OptLevel = "-O3"
)

// CompileRequest is a fully resolved request to compile one Alan source file.
// It is never modified once resolved.
type CompileRequest struct {
	// InputPath is the path to the `.alan` source file.
	InputPath string

	// OutputName is the base name of the final artifact.
	OutputName string

	// Emit is the artifact to produce.
	Emit EmitStage

	// OptLevel is the optimization level passed to the optimizer.
	OptLevel OptLevel

	// Passthrough are the arguments the driver does not understand.  They are
	// forwarded verbatim, in order, to the optimizer.
	Passthrough []string
}
