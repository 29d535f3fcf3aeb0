// Package testutil provides helpers shared by reload's tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TempTree creates a temporary directory holding files, keyed by slash
// separated relative path, and returns its root.
func TempTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		WriteFile(t, root, filepath.FromSlash(name), content)
	}
	return root
}

// WriteConfig writes a configuration file with the given name into a fresh
// temporary directory and returns its path.
func WriteConfig(t *testing.T, name, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), name, content)
}

// CountLines returns the number of newline-terminated lines in path, or 0
// if it cannot be read yet.
func CountLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return strings.Count(string(data), "\n")
}

// WaitForLines fails the test unless path reaches want lines within timeout.
func WaitForLines(t *testing.T, path string, want int, timeout time.Duration) {
	t.Helper()

	require.Eventually(t, func() bool {
		return CountLines(path) == want
	}, timeout, 20*time.Millisecond, "waiting for %d lines in %s (have %d)", want, path, CountLines(path))
}
