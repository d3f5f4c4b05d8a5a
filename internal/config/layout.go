// Package config resolves the directory layout linkfarm operates on.
//
// There is no config file and no state directory: a run is fully described
// by two directories, resolved from command-line flags with environment
// variable fallbacks. Everything else is derived from the live filesystem
// on every invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvPackageDir overrides the default package directory.
	EnvPackageDir = "LINKFARM_DIR"

	// EnvTargetRoot overrides the default target root.
	EnvTargetRoot = "LINKFARM_TARGET"
)

// Layout is the pair of directories a run operates on.
type Layout struct {
	// PackageDir is the directory whose subdirectories are the packages
	PackageDir string

	// TargetRoot is the directory the symlink farm is built in
	TargetRoot string
}

// ResolveLayout computes the layout from explicit flag values.
//
// An empty flag falls back to its environment variable and then to the
// default: the package directory defaults to the current directory, the
// target root to the package directory's parent. The parent default matches
// the conventional dotfiles setup, where packages under ~/dotfiles are
// farmed into ~. Both paths are made absolute so link targets and ownership
// comparisons never depend on where the process was started.
func ResolveLayout(dirFlag, targetFlag string) (*Layout, error) {
	dir := dirFlag
	if dir == "" {
		dir = os.Getenv(EnvPackageDir)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package directory: %w", err)
	}

	target := targetFlag
	if target == "" {
		target = os.Getenv(EnvTargetRoot)
	}
	if target == "" {
		target = filepath.Dir(absDir)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target root: %w", err)
	}

	return &Layout{PackageDir: absDir, TargetRoot: absTarget}, nil
}
