package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/linkfarm/internal/clock"
	"github.com/danieljhkim/linkfarm/internal/config"
	"github.com/danieljhkim/linkfarm/internal/engine"
	"github.com/danieljhkim/linkfarm/internal/fsops"
	"github.com/danieljhkim/linkfarm/internal/hash"
	"github.com/danieljhkim/linkfarm/internal/packages"
)

// farm is a real-filesystem fixture: a package directory and a target root
// under one temp dir, with an engine wired over them.
type farm struct {
	t      *testing.T
	eng    *engine.Engine
	pkgDir string
	target string
}

func newFarm(t *testing.T) *farm {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "linkfarm-integration-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	pkgDir := filepath.Join(tmpDir, "dotfiles")
	target := filepath.Join(tmpDir, "home")
	for _, d := range []string{pkgDir, target} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", d, err)
		}
	}

	fs := fsops.NewRealFS()
	eng := engine.New(
		packages.NewDirRepo(fs, pkgDir),
		fs,
		hash.NewSHA256Hasher(),
		clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
		config.Layout{PackageDir: pkgDir, TargetRoot: target},
	)

	return &farm{t: t, eng: eng, pkgDir: pkgDir, target: target}
}

// addFile creates a file inside a package, parents included.
func (f *farm) addFile(pkg, rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.pkgDir, pkg, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		f.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		f.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// addDir creates an empty directory inside a package.
func (f *farm) addDir(pkg, rel string) {
	f.t.Helper()
	path := filepath.Join(f.pkgDir, pkg, filepath.FromSlash(rel))
	if err := os.MkdirAll(path, 0755); err != nil {
		f.t.Fatalf("Failed to create %s: %v", path, err)
	}
}

// writeTarget places a file directly in the target tree, bypassing the farm.
func (f *farm) writeTarget(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.target, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		f.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		f.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// source returns the absolute package source path for a relative path.
func (f *farm) source(pkg, rel string) string {
	return filepath.Join(f.pkgDir, pkg, filepath.FromSlash(rel))
}

// apply runs an apply and fails the test on any error.
func (f *farm) apply(pkgs ...string) *engine.ApplyResult {
	f.t.Helper()
	result, err := f.eng.Apply(context.Background(), &engine.ApplyRequest{Packages: pkgs})
	if err != nil {
		f.t.Fatalf("Apply(%v) error = %v", pkgs, err)
	}
	return result
}

// remove runs a removal and fails the test on any error.
func (f *farm) remove(pkgs ...string) *engine.RemoveResult {
	f.t.Helper()
	result, err := f.eng.Remove(context.Background(), &engine.RemoveRequest{Packages: pkgs})
	if err != nil {
		f.t.Fatalf("Remove(%v) error = %v", pkgs, err)
	}
	return result
}

// status runs a status inspection and fails the test on any error.
func (f *farm) status(pkgs ...string) *engine.StatusResult {
	f.t.Helper()
	result, err := f.eng.Status(context.Background(), &engine.StatusRequest{Packages: pkgs})
	if err != nil {
		f.t.Fatalf("Status(%v) error = %v", pkgs, err)
	}
	return result
}

// snapshot walks the target tree and renders every entry as a string, so
// two tree states can be compared directly.
func (f *farm) snapshot() map[string]string {
	f.t.Helper()
	snap := make(map[string]string)

	err := filepath.Walk(f.target, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == f.target {
			return nil
		}
		rel, err := filepath.Rel(f.target, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			dest, err := os.Readlink(path)
			if err != nil {
				return err
			}
			snap[rel] = "link:" + dest
		case info.IsDir():
			snap[rel] = "dir"
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			snap[rel] = "file:" + string(data)
		}
		return nil
	})
	if err != nil {
		f.t.Fatalf("Failed to snapshot target: %v", err)
	}
	return snap
}

// assertSnapshot compares the live target tree against a previous snapshot.
func (f *farm) assertSnapshot(want map[string]string) {
	f.t.Helper()
	got := f.snapshot()
	if len(got) != len(want) {
		f.t.Errorf("target has %d entries, want %d\n got: %s\nwant: %s",
			len(got), len(want), renderSnapshot(got), renderSnapshot(want))
		return
	}
	for rel, w := range want {
		if g, ok := got[rel]; !ok || g != w {
			f.t.Errorf("target entry %s = %q, want %q", rel, g, w)
		}
	}
}

func renderSnapshot(snap map[string]string) string {
	parts := make([]string, 0, len(snap))
	for rel, desc := range snap {
		parts = append(parts, fmt.Sprintf("%s=%s", rel, desc))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// assertLink fails unless target/<rel> is a symlink into the package.
func (f *farm) assertLink(rel, pkg string) {
	f.t.Helper()
	path := filepath.Join(f.target, filepath.FromSlash(rel))
	dest, err := os.Readlink(path)
	if err != nil {
		f.t.Fatalf("Expected symlink at %s: %v", rel, err)
	}
	if want := f.source(pkg, rel); dest != want {
		f.t.Errorf("Link %s points at %s, want %s", rel, dest, want)
	}
}

// assertRealDir fails unless target/<rel> is a real directory.
func (f *farm) assertRealDir(rel string) {
	f.t.Helper()
	info, err := os.Lstat(filepath.Join(f.target, filepath.FromSlash(rel)))
	if err != nil {
		f.t.Fatalf("Expected directory at %s: %v", rel, err)
	}
	if info.Mode()&os.ModeSymlink != 0 || !info.IsDir() {
		f.t.Errorf("%s is not a real directory (mode %v)", rel, info.Mode())
	}
}

// assertAbsent fails if anything exists at target/<rel>.
func (f *farm) assertAbsent(rel string) {
	f.t.Helper()
	_, err := os.Lstat(filepath.Join(f.target, filepath.FromSlash(rel)))
	if !os.IsNotExist(err) {
		f.t.Errorf("Expected nothing at %s, Lstat error = %v", rel, err)
	}
}

// assertTargetFile fails unless target/<rel> is a regular file with content.
func (f *farm) assertTargetFile(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.target, filepath.FromSlash(rel))
	info, err := os.Lstat(path)
	if err != nil {
		f.t.Fatalf("Expected file at %s: %v", rel, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		f.t.Fatalf("%s is a symlink, want regular file", rel)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		f.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	if string(data) != content {
		f.t.Errorf("%s content = %q, want %q", rel, data, content)
	}
}
