package glob

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/reload/errors"
)

// IgnoreMatcher excludes paths under a root using .dockerignore syntax,
// including "!" exceptions. A nil *IgnoreMatcher ignores nothing.
type IgnoreMatcher struct {
	root string
	pm   *patternmatcher.PatternMatcher
}

// CompileIgnore builds an IgnoreMatcher for paths below root. A relative
// root is taken from the working directory. An empty pattern list yields a
// nil matcher.
func CompileIgnore(root string, patterns []string) (*IgnoreMatcher, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidPattern, "invalid ignore patterns").
			WithDetail("patterns", patterns)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "cannot resolve ignore root").
			WithDetail("path", root)
	}
	return &IgnoreMatcher{root: abs, pm: pm}, nil
}

// Ignored reports whether p is excluded. A relative p is taken from the
// working directory, the same way the watcher reports it. Paths outside the
// root are never ignored.
func (im *IgnoreMatcher) Ignored(p string) bool {
	if im == nil || !utf8.ValidString(p) {
		return false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(im.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	ok, err := im.pm.MatchesOrParentMatches(rel)
	return err == nil && ok
}
