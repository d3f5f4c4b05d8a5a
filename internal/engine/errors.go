package engine

import (
	"errors"

	"github.com/danieljhkim/linkfarm/internal/ignore"
	"github.com/danieljhkim/linkfarm/internal/manifest"
	"github.com/danieljhkim/linkfarm/internal/packages"
)

var (
	// ErrNoPackages indicates a request that names no packages.
	ErrNoPackages = errors.New("no packages requested")

	// ErrConflict indicates planning detected at least one conflict.
	ErrConflict = errors.New("conflict detected")

	// ErrTargetNotFound indicates the target root does not exist.
	ErrTargetNotFound = errors.New("target root not found")

	// ErrExecution indicates at least one path failed to execute.
	ErrExecution = errors.New("execution failed")

	// ErrPackageNotFound indicates a requested package does not exist.
	ErrPackageNotFound = packages.ErrNotFound

	// ErrPermissionDenied indicates an unreadable subtree aborted a scan.
	ErrPermissionDenied = manifest.ErrPermissionDenied

	// ErrIgnorePattern indicates a malformed ignore pattern.
	ErrIgnorePattern = ignore.ErrBadPattern
)
