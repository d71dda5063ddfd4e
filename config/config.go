// Package config resolves the layout of an Alan installation: where the
// front-end translator, the runtime library, the scratch workspace and the
// output directory live, and which LLVM tools are used to build programs.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"alanc/common"
	"alanc/report"
)

// Config is the driver configuration.  It is constructed once at startup and
// passed by pointer to the components that need it.
type Config struct {
	// Root is the absolute path to the Alan installation.
	Root string

	// Translator is the path to the Alan front-end translator.
	Translator string

	// Optimizer, CodeGen and Linker are the commands used for the optimize,
	// assemble and link stages.  These are either bare names looked up in the
	// PATH or absolute paths.
	Optimizer, CodeGen, Linker string

	// RuntimeLib is the path to the prebuilt runtime library archive.
	RuntimeLib string

	// WorkspaceDir is the scratch directory recreated for every run.
	WorkspaceDir string

	// OutputDir is the directory executables are linked into.
	OutputDir string

	// LogLevel is the reporter log level.  This must be one of the enumerated
	// log levels in package report.
	LogLevel int

	// StrictArgs selects the strict argument policy: conflicting or repeated
	// arguments are rejected instead of the last one winning.
	StrictArgs bool

	// LenientTools makes nonzero exits of the optimizer and code generator
	// warnings instead of errors.
	LenientTools bool

	// Debug makes the driver dump its resolved configuration and request.
	Debug bool

	// Warnings are problems found while loading the configuration that do not
	// prevent the driver from running.
	Warnings []string
}

// Default returns the configuration of an installation at root which has no
// configuration file.
func Default(root string) *Config {
	return &Config{
		Root:         root,
		Translator:   filepath.Join(root, filepath.FromSlash(common.DefaultTranslatorPath)),
		Optimizer:    common.DefaultOptimizer,
		CodeGen:      common.DefaultCodeGen,
		Linker:       common.DefaultLinker,
		RuntimeLib:   filepath.Join(root, filepath.FromSlash(common.DefaultRuntimeLibPath)),
		WorkspaceDir: filepath.Join(root, common.DefaultWorkspaceDir),
		OutputDir:    filepath.Join(root, common.DefaultOutputDir),
		LogLevel:     report.LogLevelVerbose,
	}
}

// FindRoot locates the Alan installation.  ALAN_PATH takes priority and must
// point to a directory.  Otherwise, the installation is the parent of the
// directory containing the running executable (ie. `<root>/bin/alanc`).
func FindRoot() (string, error) {
	if alanPath, ok := os.LookupEnv(common.AlanPathEnv); ok {
		finfo, err := os.Stat(alanPath)
		if err != nil {
			return "", report.Config("error loading %s: %s", common.AlanPathEnv, err)
		}

		if !finfo.IsDir() {
			return "", report.Config("error loading %s: must point to a directory", common.AlanPathEnv)
		}

		return filepath.Abs(alanPath)
	}

	exePath, err := os.Executable()
	if err != nil {
		return "", report.Config("unable to locate the Alan installation: %s", err)
	}

	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}

	return filepath.Dir(filepath.Dir(exePath)), nil
}

// resolveInstallPath resolves a path from the configuration file against the
// install root.  Empty paths resolve to the given default.
func resolveInstallPath(root, path, def string) string {
	if path == "" {
		path = def
	}

	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

// resolveToolCommand resolves a tool command from the configuration file.  Bare
// names are kept so they are looked up in the PATH; anything containing a path
// separator is resolved against the install root.
func resolveToolCommand(root, cmd, def string) string {
	if cmd == "" {
		return def
	}

	if strings.ContainsRune(filepath.ToSlash(cmd), '/') {
		return resolveInstallPath(root, cmd, def)
	}

	return cmd
}
