package planner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/linkfarm/internal/manifest"
)

func TestBuildRemovePlan_RemovesOwnedLinks(t *testing.T) {
	fs := newMockFS()
	m := testManifest("zsh",
		fileEntry("zsh", ".zshrc"),
		dirEntry("zsh", "bin", false),
		fileEntry("zsh", "bin/zup"),
	)
	fs.setSymlink(targetPath(".zshrc"), filepath.Join("/dotfiles", "zsh", ".zshrc"))
	fs.setDir(targetPath("bin"))
	fs.setSymlink(targetPath("bin/zup"), filepath.Join("/dotfiles", "zsh", "bin/zup"))

	plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{m})

	if len(plan.Packages) != 1 || plan.Packages[0] != "zsh" {
		t.Errorf("expected zsh in plan, got %v", plan.Packages)
	}
	if len(plan.Operations) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(plan.Operations))
	}

	// Deepest first, so the directory comes up for pruning after its
	// contents are gone.
	want := []struct {
		relPath string
		action  string
	}{
		{"bin/zup", ActionRemoveLink},
		{"bin", ActionPruneDir},
		{".zshrc", ActionRemoveLink},
	}
	for i, w := range want {
		op := plan.Operations[i]
		if op.RelPath != w.relPath || op.Action != w.action {
			t.Errorf("operation %d = %s %s, want %s %s", i, op.Action, op.RelPath, w.action, w.relPath)
		}
	}

	if src := plan.Operations[0].Source; src != filepath.Join("/dotfiles", "zsh", "bin/zup") {
		t.Errorf("remove_link Source = %q", src)
	}
	if src := plan.Operations[1].Source; src != "" {
		t.Errorf("prune_dir Source = %q, want empty", src)
	}
}

func TestBuildRemovePlan_SkipsAbsentPaths(t *testing.T) {
	fs := newMockFS()
	m := testManifest("zsh", fileEntry("zsh", ".zshrc"))

	plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{m})

	if len(plan.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(plan.Operations))
	}
	op := plan.Operations[0]
	if op.Action != ActionSkip || op.Reason != "already absent" {
		t.Errorf("operation = %s %q", op.Action, op.Reason)
	}
}

func TestBuildRemovePlan_LeavesForeignLinks(t *testing.T) {
	fs := newMockFS()
	m := testManifest("zsh", fileEntry("zsh", ".zshrc"))
	fs.setSymlink(targetPath(".zshrc"), "/elsewhere/.zshrc")

	plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{m})

	op := plan.Operations[0]
	if op.Action != ActionSkip || !strings.Contains(op.Reason, "foreign symlink left in place") {
		t.Errorf("operation = %s %q", op.Action, op.Reason)
	}
}

func TestBuildRemovePlan_AnyContributorOwnsLink(t *testing.T) {
	fs := newMockFS()
	zsh := testManifest("zsh", fileEntry("zsh", "bin/tool"))
	scripts := testManifest("scripts", fileEntry("scripts", "bin/tool"))

	// The link belongs to the second contributor.
	fs.setSymlink(targetPath("bin/tool"), filepath.Join("/dotfiles", "scripts", "bin/tool"))

	plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{zsh, scripts})

	if len(plan.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(plan.Operations))
	}
	op := plan.Operations[0]
	if op.Action != ActionRemoveLink {
		t.Errorf("action = %q, want remove_link", op.Action)
	}
	if op.Source != filepath.Join("/dotfiles", "scripts", "bin/tool") {
		t.Errorf("Source = %q, want the owning contributor's source", op.Source)
	}
	if len(op.Packages) != 2 {
		t.Errorf("Packages = %v, want both contributors", op.Packages)
	}
}

func TestBuildRemovePlan_LeavesRegularFiles(t *testing.T) {
	fs := newMockFS()
	m := testManifest("zsh", fileEntry("zsh", ".zshrc"))
	fs.setFile(targetPath(".zshrc"))

	plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{m})

	op := plan.Operations[0]
	if op.Action != ActionSkip || op.Reason != "not a symlink, left in place" {
		t.Errorf("operation = %s %q", op.Action, op.Reason)
	}
}

func TestBuildRemovePlan_RealDirectoryNeedsDirEntry(t *testing.T) {
	t.Run("contributed directory becomes prune candidate", func(t *testing.T) {
		fs := newMockFS()
		m := testManifest("zsh", dirEntry("zsh", "bin", false))
		fs.setDir(targetPath("bin"), "leftover")

		plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{m})

		// Emptiness is checked at execution time, not planning time.
		if op := plan.Operations[0]; op.Action != ActionPruneDir {
			t.Errorf("action = %q, want prune_dir", op.Action)
		}
	})

	t.Run("directory where a file was wanted is left alone", func(t *testing.T) {
		fs := newMockFS()
		m := testManifest("zsh", fileEntry("zsh", ".zshrc"))
		fs.setDir(targetPath(".zshrc"))

		plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{m})

		op := plan.Operations[0]
		if op.Action != ActionSkip || op.Reason != "real directory left in place" {
			t.Errorf("operation = %s %q", op.Action, op.Reason)
		}
	})
}

func TestBuildRemovePlan_InspectErrorSkips(t *testing.T) {
	fs := newMockFS()
	m := testManifest("zsh", fileEntry("zsh", ".zshrc"))
	fs.lstatErr[targetPath(".zshrc")] = os.ErrPermission

	plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{m})

	op := plan.Operations[0]
	if op.Action != ActionSkip || !strings.Contains(op.Reason, "cannot inspect target") {
		t.Errorf("operation = %s %q", op.Action, op.Reason)
	}
}

func TestBuildRemovePlan_DeepestFirstAcrossPackages(t *testing.T) {
	fs := newMockFS()
	nvim := testManifest("nvim",
		dirEntry("nvim", ".config", false),
		dirEntry("nvim", ".config/nvim", false),
		fileEntry("nvim", ".config/nvim/init.lua"),
	)
	kitty := testManifest("kitty",
		dirEntry("kitty", ".config", false),
		dirEntry("kitty", ".config/kitty", false),
		fileEntry("kitty", ".config/kitty/kitty.conf"),
	)

	plan := BuildRemovePlan(fs, testTargetRoot, []*manifest.Manifest{nvim, kitty})

	if len(plan.Operations) != 5 {
		t.Fatalf("expected 5 operations, got %d", len(plan.Operations))
	}
	for i, op := range plan.Operations[:len(plan.Operations)-1] {
		next := plan.Operations[i+1]
		if pathDepth(op.RelPath) < pathDepth(next.RelPath) {
			t.Errorf("operation %d (%s) shallower than %d (%s)", i, op.RelPath, i+1, next.RelPath)
		}
	}

	// The shared parent is merged into one operation with both packages.
	last := plan.Operations[len(plan.Operations)-1]
	if last.RelPath != ".config" {
		t.Errorf("last operation = %q, want .config", last.RelPath)
	}
	if len(last.Packages) != 2 {
		t.Errorf(".config Packages = %v, want both contributors", last.Packages)
	}
}
