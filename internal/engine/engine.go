// Package engine provides the core business logic for linkfarm operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It resolves requested packages, scans them into
// manifests, merges the manifests into a plan against the live target tree,
// and hands the plan to the executor.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Apply/Remove: Builds and executes farm plans in both directions
//   - Status: Classifies every farmed path without mutating anything
//
// Requests carry package names and options; the directory layout is fixed
// when the engine is constructed. Results embed the plan, the per-path
// outcomes, and every scan failure, so partial success is fully reportable.
package engine

import (
	"github.com/danieljhkim/linkfarm/internal/clock"
	"github.com/danieljhkim/linkfarm/internal/config"
	"github.com/danieljhkim/linkfarm/internal/executor"
	"github.com/danieljhkim/linkfarm/internal/fsops"
	"github.com/danieljhkim/linkfarm/internal/hash"
	"github.com/danieljhkim/linkfarm/internal/manifest"
	"github.com/danieljhkim/linkfarm/internal/packages"
)

// Engine orchestrates all linkfarm operations.
// It is the main API surface called by the CLI.
type Engine struct {
	pkgRepo packages.Repo
	fs      fsops.FS
	hasher  hash.Hasher
	clock   clock.Clock
	layout  config.Layout
	scanner *manifest.Scanner
	exec    *executor.Executor
}

// New creates a new Engine with the given dependencies.
func New(
	pkgRepo packages.Repo,
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	layout config.Layout,
) *Engine {
	return &Engine{
		pkgRepo: pkgRepo,
		fs:      fs,
		hasher:  hasher,
		clock:   clk,
		layout:  layout,
		scanner: manifest.NewScanner(fs),
		exec:    executor.New(fs),
	}
}

// Layout returns the directory layout the engine operates on.
func (e *Engine) Layout() config.Layout {
	return e.layout
}
