package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"alanc/common"
	"alanc/report"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"
)

// tomlConfigFile represents the configuration file as it is encoded in TOML.
type tomlConfigFile struct {
	Version      string     `toml:"alanc-version"`
	LogLevel     string     `toml:"log-level"`
	StrictArgs   bool       `toml:"strict-args"`
	LenientTools bool       `toml:"lenient-tools"`
	Debug        bool       `toml:"debug"`
	Tools        *tomlTools `toml:"tools"`
	Paths        *tomlPaths `toml:"paths"`
}

// tomlTools represents the `[tools]` table.
type tomlTools struct {
	Translator string `toml:"translator"`
	Optimizer  string `toml:"optimizer"`
	CodeGen    string `toml:"codegen"`
	Linker     string `toml:"linker"`
}

// tomlPaths represents the `[paths]` table.
type tomlPaths struct {
	RuntimeLib string `toml:"runtime-lib"`
	Workspace  string `toml:"workspace"`
	Output     string `toml:"output"`
}

// Load loads the configuration of the installation at root.  The configuration
// file is optional: an installation without one uses the default layout.  The
// ALAN_LOGLEVEL environment variable overrides the configured log level.
func Load(root string) (*Config, error) {
	cfg := Default(root)

	cfgPath := filepath.Join(root, common.ConfigFileName)
	buff, err := ioutil.ReadFile(cfgPath)
	if err == nil {
		tcf := &tomlConfigFile{}
		if err := toml.Unmarshal(buff, tcf); err != nil {
			return nil, report.Config("error parsing %s: %s", cfgPath, err)
		}

		if err := applyConfigFile(cfg, tcf); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, report.Config("error reading %s: %s", cfgPath, err)
	}

	if level, ok, err := LogLevelFromEnv(); err != nil {
		return nil, err
	} else if ok {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// LogLevelFromEnv returns the log level set by ALAN_LOGLEVEL, if any.  It does
// not need an installation so the driver can apply it before locating one.
func LogLevelFromEnv() (int, bool, error) {
	levelName, ok := os.LookupEnv(common.LogLevelEnv)
	if !ok {
		return 0, false, nil
	}

	level, ok := report.ParseLogLevel(levelName)
	if !ok {
		return 0, false, report.Config("invalid %s: `%s`", common.LogLevelEnv, levelName)
	}

	return level, true, nil
}

// applyConfigFile validates a configuration file and moves its settings onto
// the configuration.
func applyConfigFile(cfg *Config, tcf *tomlConfigFile) error {
	if tcf.Version != "" {
		if err := checkVersion(cfg, tcf.Version); err != nil {
			return err
		}
	}

	if tcf.LogLevel != "" {
		level, ok := report.ParseLogLevel(tcf.LogLevel)
		if !ok {
			return report.Config("invalid log level: `%s`", tcf.LogLevel)
		}

		cfg.LogLevel = level
	}

	cfg.StrictArgs = tcf.StrictArgs
	cfg.LenientTools = tcf.LenientTools
	cfg.Debug = tcf.Debug

	if tcf.Tools != nil {
		cfg.Translator = resolveInstallPath(cfg.Root, tcf.Tools.Translator, common.DefaultTranslatorPath)
		cfg.Optimizer = resolveToolCommand(cfg.Root, tcf.Tools.Optimizer, common.DefaultOptimizer)
		cfg.CodeGen = resolveToolCommand(cfg.Root, tcf.Tools.CodeGen, common.DefaultCodeGen)
		cfg.Linker = resolveToolCommand(cfg.Root, tcf.Tools.Linker, common.DefaultLinker)
	}

	if tcf.Paths != nil {
		cfg.RuntimeLib = resolveInstallPath(cfg.Root, tcf.Paths.RuntimeLib, common.DefaultRuntimeLibPath)
		cfg.WorkspaceDir = resolveInstallPath(cfg.Root, tcf.Paths.Workspace, common.DefaultWorkspaceDir)
		cfg.OutputDir = resolveInstallPath(cfg.Root, tcf.Paths.Output, common.DefaultOutputDir)
	}

	return checkWorkspace(cfg)
}

// checkWorkspace makes sure the workspace is a dedicated directory below the
// install root.  The workspace is deleted at the start and end of every run, so
// it must not hold the installation itself or anything the driver reads or
// writes outside of it.
func checkWorkspace(cfg *Config) error {
	ws := cfg.WorkspaceDir

	if ws == cfg.Root || !isWithin(cfg.Root, ws) {
		return report.Config("the workspace must be a directory inside the installation: `%s`", ws)
	}

	protected := []string{
		cfg.OutputDir,
		cfg.Translator,
		cfg.RuntimeLib,
		filepath.Join(cfg.Root, common.ConfigFileName),
	}

	// tool commands given by path live somewhere on disk too
	for _, cmd := range []string{cfg.Optimizer, cfg.CodeGen, cfg.Linker} {
		if filepath.IsAbs(cmd) {
			protected = append(protected, cmd)
		}
	}

	for _, path := range protected {
		if isWithin(ws, path) {
			return report.Config("the workspace `%s` would delete `%s`", ws, path)
		}
	}

	return nil
}

// isWithin returns whether path is dir or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// checkVersion checks the version the configuration file was written for.  A
// malformed version is an error; a different version is only a warning.
func checkVersion(cfg *Config, version string) error {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) {
		return report.Config("invalid alanc-version: `%s`", version)
	}

	if semver.Compare(v, "v"+common.AlanVersion) != 0 {
		cfg.Warnings = append(
			cfg.Warnings,
			fmt.Sprintf("configuration was written for alanc %s but this is alanc v%s", v, common.AlanVersion),
		)
	}

	return nil
}
