//go:build unix

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/reload/cli"
	"github.com/grovetools/reload/testutil"
)

func TestRunRestartsOnMatchingChange(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns processes")
	}

	watched := t.TempDir()
	logDir := t.TempDir()
	starts := filepath.Join(logDir, "starts.log")

	path := testutil.WriteConfig(t, "reload.yml", fmt.Sprintf(`version: "0"
paths:
  - path: %s
    pattern: "*.txt"
    command: ["sh", "-c", "echo started >> %s; exec sleep 30"]
    kill_timeout: 1s
    debounce: 50ms
`, watched, starts))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runReload(ctx, cli.CommandOptions{ConfigFile: path}, nil) }()

	testutil.WaitForLines(t, starts, 1, 5*time.Second)

	// A non-matching change never restarts.
	require.NoError(t, os.WriteFile(filepath.Join(watched, "notes.md"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, testutil.CountLines(starts))

	require.NoError(t, os.WriteFile(filepath.Join(watched, "a.txt"), []byte("x"), 0o644))
	testutil.WaitForLines(t, starts, 2, 5*time.Second)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}
