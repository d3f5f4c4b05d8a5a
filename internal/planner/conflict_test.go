package planner

import (
	"strings"
	"testing"

	"github.com/danieljhkim/linkfarm/internal/hash"
	"github.com/danieljhkim/linkfarm/internal/manifest"
)

func TestResolver_Resolve_Actions(t *testing.T) {
	tests := []struct {
		name       string
		entry      manifest.Entry
		state      *TargetState
		wantAction string
	}{
		{
			name:       "absent target with file entry",
			entry:      manifest.Entry{RelPath: ".zshrc", Kind: manifest.KindFile, Source: "/pkg/zsh/.zshrc"},
			state:      &TargetState{Kind: StateAbsent},
			wantAction: ActionCreateLink,
		},
		{
			name:       "absent target with directory entry",
			entry:      manifest.Entry{RelPath: "bin", Kind: manifest.KindDir, Source: "/pkg/scripts/bin"},
			state:      &TargetState{Kind: StateAbsent},
			wantAction: ActionCreateDir,
		},
		{
			name:       "absent target with leaf directory entry",
			entry:      manifest.Entry{RelPath: "empty", Kind: manifest.KindDir, Source: "/pkg/zsh/empty", Leaf: true},
			state:      &TargetState{Kind: StateAbsent},
			wantAction: ActionCreateLink,
		},
		{
			name:       "owned link is idempotent",
			entry:      manifest.Entry{RelPath: ".zshrc", Kind: manifest.KindFile, Source: "/pkg/zsh/.zshrc"},
			state:      &TargetState{Kind: StateOwnedLink, LinkDest: "/pkg/zsh/.zshrc"},
			wantAction: ActionSkip,
		},
		{
			name:       "owned link satisfies leaf directory entry",
			entry:      manifest.Entry{RelPath: "empty", Kind: manifest.KindDir, Source: "/pkg/zsh/empty", Leaf: true},
			state:      &TargetState{Kind: StateOwnedLink, LinkDest: "/pkg/zsh/empty"},
			wantAction: ActionSkip,
		},
		{
			name:       "owned link at directory path conflicts",
			entry:      manifest.Entry{RelPath: "bin", Kind: manifest.KindDir, Source: "/pkg/scripts/bin"},
			state:      &TargetState{Kind: StateOwnedLink, LinkDest: "/pkg/scripts/bin"},
			wantAction: ActionConflict,
		},
		{
			name:       "foreign link conflicts",
			entry:      manifest.Entry{RelPath: ".zshrc", Kind: manifest.KindFile, Source: "/pkg/zsh/.zshrc"},
			state:      &TargetState{Kind: StateForeignLink, LinkDest: "/other/.zshrc"},
			wantAction: ActionConflict,
		},
		{
			name:       "foreign link at directory path conflicts",
			entry:      manifest.Entry{RelPath: "bin", Kind: manifest.KindDir, Source: "/pkg/scripts/bin"},
			state:      &TargetState{Kind: StateForeignLink, LinkDest: "/other/bin"},
			wantAction: ActionConflict,
		},
		{
			name:       "real directory satisfies directory entry",
			entry:      manifest.Entry{RelPath: "bin", Kind: manifest.KindDir, Source: "/pkg/scripts/bin"},
			state:      &TargetState{Kind: StateExisting, IsDir: true},
			wantAction: ActionSkip,
		},
		{
			name:       "real directory satisfies leaf directory entry",
			entry:      manifest.Entry{RelPath: "empty", Kind: manifest.KindDir, Source: "/pkg/zsh/empty", Leaf: true},
			state:      &TargetState{Kind: StateExisting, IsDir: true, Empty: true},
			wantAction: ActionSkip,
		},
		{
			name:       "directory collides with file entry",
			entry:      manifest.Entry{RelPath: ".config", Kind: manifest.KindFile, Source: "/pkg/misc/.config"},
			state:      &TargetState{Kind: StateExisting, IsDir: true},
			wantAction: ActionConflict,
		},
		{
			name:       "regular file collides with file entry",
			entry:      manifest.Entry{RelPath: ".zshrc", Kind: manifest.KindFile, Source: "/pkg/zsh/.zshrc"},
			state:      &TargetState{Kind: StateExisting},
			wantAction: ActionConflict,
		},
		{
			name:       "regular file collides with directory entry",
			entry:      manifest.Entry{RelPath: "bin", Kind: manifest.KindDir, Source: "/pkg/scripts/bin"},
			state:      &TargetState{Kind: StateExisting},
			wantAction: ActionConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(hash.NewFakeHasher())

			res := resolver.Resolve("pkg", tt.entry, "/home/"+tt.entry.RelPath, tt.state)

			if res.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", res.Action, tt.wantAction)
			}
			if tt.wantAction == ActionConflict && res.Conflict == nil {
				t.Error("conflict action should carry a Conflict diagnostic")
			}
			if tt.wantAction != ActionConflict && res.Conflict != nil {
				t.Errorf("unexpected conflict: %+v", res.Conflict)
			}
		})
	}
}

func TestResolver_Resolve_ConflictReasons(t *testing.T) {
	t.Run("foreign link names the destination", func(t *testing.T) {
		resolver := NewResolver(hash.NewFakeHasher())
		entry := manifest.Entry{RelPath: ".zshrc", Kind: manifest.KindFile, Source: "/pkg/zsh/.zshrc"}

		res := resolver.Resolve("zsh", entry, "/home/.zshrc", &TargetState{Kind: StateForeignLink, LinkDest: "/other/.zshrc"})

		if !strings.Contains(res.Reason, "/other/.zshrc") {
			t.Errorf("reason %q should name the foreign destination", res.Reason)
		}
		if res.Conflict.Existing != "symlink -> /other/.zshrc" {
			t.Errorf("Existing = %q", res.Conflict.Existing)
		}
	})

	t.Run("identical file content is called out", func(t *testing.T) {
		hasher := hash.NewFakeHasher()
		hasher.SetHash("/pkg/zsh/.zshrc", "same")
		hasher.SetHash("/home/.zshrc", "same")
		resolver := NewResolver(hasher)
		entry := manifest.Entry{RelPath: ".zshrc", Kind: manifest.KindFile, Source: "/pkg/zsh/.zshrc"}

		res := resolver.Resolve("zsh", entry, "/home/.zshrc", &TargetState{Kind: StateExisting})

		if !strings.Contains(res.Reason, "identical") {
			t.Errorf("reason %q should report identical content", res.Reason)
		}
	})

	t.Run("differing file content is called out", func(t *testing.T) {
		hasher := hash.NewFakeHasher()
		hasher.SetHash("/pkg/zsh/.zshrc", "a")
		hasher.SetHash("/home/.zshrc", "b")
		resolver := NewResolver(hasher)
		entry := manifest.Entry{RelPath: ".zshrc", Kind: manifest.KindFile, Source: "/pkg/zsh/.zshrc"}

		res := resolver.Resolve("zsh", entry, "/home/.zshrc", &TargetState{Kind: StateExisting})

		if !strings.Contains(res.Reason, "differs") {
			t.Errorf("reason %q should report differing content", res.Reason)
		}
	})

	t.Run("symlink at directory path names the destination", func(t *testing.T) {
		resolver := NewResolver(hash.NewFakeHasher())
		entry := manifest.Entry{RelPath: "bin", Kind: manifest.KindDir, Source: "/pkg/scripts/bin"}

		res := resolver.Resolve("scripts", entry, "/home/bin", &TargetState{Kind: StateOwnedLink, LinkDest: "/pkg/scripts/bin"})

		if !strings.Contains(res.Reason, "/pkg/scripts/bin") {
			t.Errorf("reason %q should name the link destination", res.Reason)
		}
		if res.Conflict.Existing != "symlink -> /pkg/scripts/bin" {
			t.Errorf("Existing = %q", res.Conflict.Existing)
		}
	})

	t.Run("conflict carries package and path", func(t *testing.T) {
		resolver := NewResolver(hash.NewFakeHasher())
		entry := manifest.Entry{RelPath: "bin", Kind: manifest.KindDir, Source: "/pkg/scripts/bin"}

		res := resolver.Resolve("scripts", entry, "/home/bin", &TargetState{Kind: StateExisting})

		if res.Conflict.Package != "scripts" {
			t.Errorf("Package = %q, want scripts", res.Conflict.Package)
		}
		if res.Conflict.RelPath != "bin" {
			t.Errorf("RelPath = %q, want bin", res.Conflict.RelPath)
		}
		if res.Conflict.Incoming != "directory" {
			t.Errorf("Incoming = %q, want directory", res.Conflict.Incoming)
		}
	})
}
