// Package glob compiles the rule patterns that decide which changed paths
// trigger a restart.
//
// Compilation is fallible and happens once while the configuration is
// loaded. Matching is infallible, has no side effects and may be called
// concurrently from any number of rule loops.
package glob

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/grovetools/reload/errors"
)

// Matcher is a compiled glob pattern.
type Matcher struct {
	pattern string
	// basename is set for patterns without a separator, which also match
	// against the last path element.
	basename bool
}

// Compile validates pattern and returns a Matcher. Patterns use doublestar
// syntax: "*" stays inside one path element and "**" crosses directories.
func Compile(pattern string) (*Matcher, error) {
	if pattern == "" {
		return nil, errors.InvalidPattern(pattern, fmt.Errorf("pattern is empty"))
	}
	normalized := filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(normalized) {
		return nil, errors.InvalidPattern(pattern, doublestar.ErrBadPattern)
	}
	return &Matcher{
		pattern:  normalized,
		basename: !strings.Contains(normalized, "/"),
	}, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// String implements fmt.Stringer.
func (m *Matcher) String() string {
	return m.pattern
}

// Matches reports whether p matches the pattern. Paths that are not valid
// UTF-8 never match.
func (m *Matcher) Matches(p string) bool {
	if !utf8.ValidString(p) {
		return false
	}
	normalized := filepath.ToSlash(p)
	// The pattern was validated in Compile, so Match cannot fail.
	if ok, _ := doublestar.Match(m.pattern, normalized); ok {
		return true
	}
	if m.basename {
		ok, _ := doublestar.Match(m.pattern, path.Base(normalized))
		return ok
	}
	return false
}

// MatchesUnder reports whether p matches the pattern either as given or
// relative to root. Paths outside root are only tried as given.
func (m *Matcher) MatchesUnder(root, p string) bool {
	if m.Matches(p) {
		return true
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return m.Matches(rel)
}

// MatchesAny reports whether any of paths matches and returns the first one
// that does.
func (m *Matcher) MatchesAny(paths []string) (string, bool) {
	for _, p := range paths {
		if m.Matches(p) {
			return p, true
		}
	}
	return "", false
}
