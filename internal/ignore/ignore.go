// Package ignore decides which package entries are excluded from scanning.
//
// Patterns come in two classes, told apart by the presence of a slash:
// segment patterns (no slash) are glob-matched against every path segment,
// so ".git" excludes a .git directory at any depth; path patterns (with a
// slash) are matched against the whole package-relative path and support
// doublestar syntax, so "vim/**/*.swp" works as expected.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// ErrBadPattern indicates an ignore pattern that failed to compile.
var ErrBadPattern = errors.New("invalid ignore pattern")

// FileName is the per-package ignore file, read from the package root.
const FileName = ".lfignore"

// defaultPatterns are always active: VCS metadata, macOS litter, and the
// ignore file itself.
var defaultPatterns = []string{
	".git",
	".svn",
	".hg",
	"_darcs",
	"CVS",
	".DS_Store",
	FileName,
}

// Matcher reports whether a package-relative path should be ignored.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	segments []glob.Glob
	paths    []string
	raw      []string
}

// NewMatcher compiles the built-in defaults plus the given patterns.
// Malformed patterns are a configuration error: the first one encountered
// is returned wrapped in ErrBadPattern and no Matcher is built.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}

	all := make([]string, 0, len(defaultPatterns)+len(patterns))
	all = append(all, defaultPatterns...)
	all = append(all, patterns...)

	for _, p := range all {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "./")
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			continue
		}

		if strings.Contains(p, "/") {
			if !doublestar.ValidatePattern(p) {
				return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
			}
			m.paths = append(m.paths, p)
		} else {
			g, err := glob.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, p, err)
			}
			m.segments = append(m.segments, g)
		}
		m.raw = append(m.raw, p)
	}

	return m, nil
}

// Match reports whether relPath is ignored. relPath is slash-separated and
// relative to the package root. Matching a directory excludes its whole
// subtree; callers walking a tree should prune rather than descend.
func (m *Matcher) Match(relPath string) bool {
	for _, p := range m.paths {
		// Patterns were validated at construction; Match cannot fail here.
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}

	if len(m.segments) == 0 {
		return false
	}
	for _, seg := range strings.Split(relPath, "/") {
		for _, g := range m.segments {
			if g.Match(seg) {
				return true
			}
		}
	}
	return false
}

// Patterns returns the normalized pattern strings the Matcher was built
// from, defaults included.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.raw))
	copy(out, m.raw)
	return out
}

// ReadFile loads patterns from an ignore file: one pattern per line, blank
// lines and #-comments skipped. A missing file yields no patterns and no
// error.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}
	return patterns, nil
}
