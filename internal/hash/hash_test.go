package hash

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func testDir(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "hash-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return tmpDir
}

func TestSHA256Hasher_HashFile(t *testing.T) {
	tmpDir := testDir(t)
	hasher := NewSHA256Hasher()

	t.Run("hashing is stable across calls", func(t *testing.T) {
		path := writeFile(t, tmpDir, "zshrc", "export EDITOR=vim\n")

		hash1, err := hasher.HashFile(path)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}
		if hash1 == "" {
			t.Error("HashFile returned empty hash")
		}

		hash2, err := hasher.HashFile(path)
		if err != nil {
			t.Fatalf("HashFile failed on second call: %v", err)
		}
		if hash1 != hash2 {
			t.Errorf("HashFile inconsistent: got %s and %s", hash1, hash2)
		}
	})

	t.Run("non-existent file returns error", func(t *testing.T) {
		_, err := hasher.HashFile(filepath.Join(tmpDir, "does-not-exist"))
		if err == nil {
			t.Error("Expected error for non-existent file, got nil")
		}
	})

	t.Run("empty file can be hashed", func(t *testing.T) {
		path := writeFile(t, tmpDir, "empty", "")

		hash, err := hasher.HashFile(path)
		if err != nil {
			t.Fatalf("HashFile failed for empty file: %v", err)
		}

		// SHA-256 of the empty string is a known value
		expectedEmptyHash := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		if hash != expectedEmptyHash {
			t.Errorf("Empty file hash incorrect: got %s, want %s", hash, expectedEmptyHash)
		}
	})
}

func TestSameContent(t *testing.T) {
	tmpDir := testDir(t)
	hasher := NewSHA256Hasher()

	t.Run("faithful copy of the package source compares equal", func(t *testing.T) {
		// Conflict diagnosis compares an occupying target file against the
		// package source it blocks. A byte-for-byte copy compares equal, so
		// the user knows deleting the occupant loses nothing.
		source := writeFile(t, tmpDir, "pkg-zshrc", "export EDITOR=vim\nalias g=git\n")
		occupant := writeFile(t, tmpDir, "target-zshrc", "export EDITOR=vim\nalias g=git\n")

		same, err := SameContent(hasher, occupant, source)
		if err != nil {
			t.Fatalf("SameContent failed: %v", err)
		}
		if !same {
			t.Error("Expected identical files to compare equal")
		}
	})

	t.Run("edited occupant compares different", func(t *testing.T) {
		source := writeFile(t, tmpDir, "pkg-vimrc", "set number\n")
		occupant := writeFile(t, tmpDir, "target-vimrc", "set number\nset ruler\n")

		same, err := SameContent(hasher, occupant, source)
		if err != nil {
			t.Fatalf("SameContent failed: %v", err)
		}
		if same {
			t.Error("Expected edited file to compare different")
		}
	})

	t.Run("unreadable file fails the comparison", func(t *testing.T) {
		source := writeFile(t, tmpDir, "pkg-gitconfig", "[user]\n\tname = dan\n")

		if _, err := SameContent(hasher, filepath.Join(tmpDir, "gone"), source); err == nil {
			t.Error("Expected error when one side cannot be read")
		}
	})

	t.Run("scripted digests drive the verdict", func(t *testing.T) {
		fake := NewFakeHasher()
		fake.SetHash("/home/user/.zshrc", "aaa")
		fake.SetHash("/dotfiles/zsh/.zshrc", "bbb")

		same, err := SameContent(fake, "/home/user/.zshrc", "/dotfiles/zsh/.zshrc")
		if err != nil {
			t.Fatalf("SameContent failed: %v", err)
		}
		if same {
			t.Error("Expected scripted digests aaa and bbb to compare different")
		}
	})
}

func TestFakeHasher(t *testing.T) {
	hasher := NewFakeHasher()

	t.Run("returns default hash for unknown path", func(t *testing.T) {
		hash, err := hasher.HashFile("/dotfiles/zsh/.zshrc")
		if err != nil {
			t.Errorf("FakeHasher should not return error, got: %v", err)
		}
		if hash != "fakehash" {
			t.Errorf("Expected default hash 'fakehash', got: %s", hash)
		}
	})

	t.Run("returns configured hash for known path", func(t *testing.T) {
		hasher.SetHash("/dotfiles/zsh/.zshrc", "custom-hash-123")

		hash, err := hasher.HashFile("/dotfiles/zsh/.zshrc")
		if err != nil {
			t.Errorf("FakeHasher should not return error, got: %v", err)
		}
		if hash != "custom-hash-123" {
			t.Errorf("Expected hash custom-hash-123, got: %s", hash)
		}
	})

	t.Run("distinct paths keep distinct hashes", func(t *testing.T) {
		hasher.SetHash("/dotfiles/zsh/.zshrc", "hash-source")
		hasher.SetHash("/home/user/.zshrc", "hash-occupant")

		source, _ := hasher.HashFile("/dotfiles/zsh/.zshrc")
		occupant, _ := hasher.HashFile("/home/user/.zshrc")

		if source != "hash-source" {
			t.Errorf("source: expected hash-source, got %s", source)
		}
		if occupant != "hash-occupant" {
			t.Errorf("occupant: expected hash-occupant, got %s", occupant)
		}
	})
}
