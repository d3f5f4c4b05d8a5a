package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	oldDir := os.Getenv(EnvPackageDir)
	oldTarget := os.Getenv(EnvTargetRoot)
	t.Cleanup(func() {
		os.Setenv(EnvPackageDir, oldDir)
		os.Setenv(EnvTargetRoot, oldTarget)
	})
	os.Unsetenv(EnvPackageDir)
	os.Unsetenv(EnvTargetRoot)
}

func TestResolveLayout(t *testing.T) {
	t.Run("flags take highest priority", func(t *testing.T) {
		clearEnv(t)
		os.Setenv(EnvPackageDir, "/env/dotfiles")
		os.Setenv(EnvTargetRoot, "/env/home")

		layout, err := ResolveLayout("/flag/dotfiles", "/flag/home")
		if err != nil {
			t.Fatalf("ResolveLayout failed: %v", err)
		}

		if layout.PackageDir != "/flag/dotfiles" {
			t.Errorf("Expected flag package dir, got %s", layout.PackageDir)
		}
		if layout.TargetRoot != "/flag/home" {
			t.Errorf("Expected flag target root, got %s", layout.TargetRoot)
		}
	})

	t.Run("environment variables fill empty flags", func(t *testing.T) {
		clearEnv(t)
		os.Setenv(EnvPackageDir, "/env/dotfiles")
		os.Setenv(EnvTargetRoot, "/env/home")

		layout, err := ResolveLayout("", "")
		if err != nil {
			t.Fatalf("ResolveLayout failed: %v", err)
		}

		if layout.PackageDir != "/env/dotfiles" {
			t.Errorf("Expected env package dir, got %s", layout.PackageDir)
		}
		if layout.TargetRoot != "/env/home" {
			t.Errorf("Expected env target root, got %s", layout.TargetRoot)
		}
	})

	t.Run("defaults to cwd and its parent", func(t *testing.T) {
		clearEnv(t)

		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get cwd: %v", err)
		}

		layout, err := ResolveLayout("", "")
		if err != nil {
			t.Fatalf("ResolveLayout failed: %v", err)
		}

		if layout.PackageDir != wd {
			t.Errorf("Expected package dir %s, got %s", wd, layout.PackageDir)
		}
		if layout.TargetRoot != filepath.Dir(wd) {
			t.Errorf("Expected target root %s, got %s", filepath.Dir(wd), layout.TargetRoot)
		}
	})

	t.Run("target defaults to parent of explicit package dir", func(t *testing.T) {
		clearEnv(t)

		layout, err := ResolveLayout("/home/user/dotfiles", "")
		if err != nil {
			t.Fatalf("ResolveLayout failed: %v", err)
		}

		if layout.TargetRoot != "/home/user" {
			t.Errorf("Expected target root /home/user, got %s", layout.TargetRoot)
		}
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		clearEnv(t)

		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get cwd: %v", err)
		}

		layout, err := ResolveLayout("dotfiles", "home")
		if err != nil {
			t.Fatalf("ResolveLayout failed: %v", err)
		}

		if layout.PackageDir != filepath.Join(wd, "dotfiles") {
			t.Errorf("Expected absolute package dir, got %s", layout.PackageDir)
		}
		if layout.TargetRoot != filepath.Join(wd, "home") {
			t.Errorf("Expected absolute target root, got %s", layout.TargetRoot)
		}
	})
}
