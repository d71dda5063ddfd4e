package common

// AlanVersion is the current version of the driver as a string.
const AlanVersion string = "0.0.2"

// AlanCompilerID is the string printed by `--version`.
const AlanCompilerID string = "Alan Compiler v" + AlanVersion

// AlanFileExt is the file extension for an Alan source file.
const AlanFileExt string = ".alan"

// IRFileExt and ASMFileExt are the extensions of the intermediate files
// produced inside the workspace.
const (
	IRFileExt  string = ".ll"
	ASMFileExt string = ".s"
)

// DefaultOutputName is the output base name used when `-o` is not given.
const DefaultOutputName string = "a.out"

// ConfigFileName is the name of the optional configuration file at the root of
// an Alan installation.
const ConfigFileName string = "alanc.toml"

// AlanPathEnv names the environment variable pointing at the install root.
const AlanPathEnv string = "ALAN_PATH"

// LogLevelEnv names the environment variable overriding the log level.
const LogLevelEnv string = "ALAN_LOGLEVEL"

// Default install layout, relative to the install root.
const (
	DefaultTranslatorPath = "bin/ALAN"
	DefaultRuntimeLibPath = "libs/libalanstd.a"
	DefaultWorkspaceDir   = "tmp"
	DefaultOutputDir      = "execs"
)

// Default external LLVM tool names.  These are looked up in the PATH.
const (
	DefaultOptimizer = "opt"
	DefaultCodeGen   = "llc"
	DefaultLinker    = "clang"
)
