// Package hash compares file content by digest.
//
// When a regular file occupies a path the plan wants to link, the farm
// refuses to touch it; whether that refusal costs the user anything depends
// on whether the file already matches the package source. SHA-256 digests
// answer that without loading either file into memory. SHA256Hasher is the
// real implementation, FakeHasher a scriptable stand-in for planner tests.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher computes content digests for files.
type Hasher interface {
	// HashFile returns the hex digest of the file at the given path.
	HashFile(path string) (string, error)
}

// SameContent reports whether the files at a and b hold identical content,
// judged by digest. The first unreadable file fails the comparison.
func SameContent(h Hasher, a, b string) (bool, error) {
	digestA, err := h.HashFile(a)
	if err != nil {
		return false, err
	}
	digestB, err := h.HashFile(b)
	if err != nil {
		return false, err
	}
	return digestA == digestB, nil
}

// SHA256Hasher implements Hasher with streaming SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile returns the hex SHA-256 digest of the file at path. The file
// streams through the hash, so digesting a large package source costs no
// memory.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FakeHasher implements Hasher with scripted digests, so planner tests can
// make two paths agree or disagree without a real filesystem.
type FakeHasher struct {
	hashes map[string]string
}

// NewFakeHasher creates a new FakeHasher. Paths without a scripted digest
// share a fixed default, so unscripted files compare as identical.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash scripts the digest returned for a path.
func (h *FakeHasher) SetHash(path, hash string) {
	h.hashes[path] = hash
}

// HashFile returns the scripted digest for the path.
func (h *FakeHasher) HashFile(path string) (string, error) {
	if hash, ok := h.hashes[path]; ok {
		return hash, nil
	}
	return "fakehash", nil
}
