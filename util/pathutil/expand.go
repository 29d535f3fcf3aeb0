// Package pathutil expands and anchors the paths written in configuration
// files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Expand expands the home directory (~) and environment variables in a
// path. The result is cleaned but not made absolute.
func Expand(path string) (string, error) {
	// 1. Expand home directory character '~'.
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	// 2. Expand environment variables.
	path = os.ExpandEnv(path)

	if path == "" {
		return "", fmt.Errorf("path is empty after expansion")
	}
	return filepath.Clean(path), nil
}

// ResolveFrom expands path and anchors a relative result at base. Paths
// under the current working directory come back relative to it, so the
// names reported by the watcher stay as short as the user wrote them.
// Anything else is returned absolute. An empty base leaves relative paths
// relative to the working directory.
func ResolveFrom(base, path string) (string, error) {
	expanded, err := Expand(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) || base == "" {
		return expanded, nil
	}

	abs := filepath.Join(base, expanded)
	cwd, err := os.Getwd()
	if err != nil {
		return abs, nil
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs, nil
	}
	return rel, nil
}
