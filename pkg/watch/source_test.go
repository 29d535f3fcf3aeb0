package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/reload/errors"
	"github.com/grovetools/reload/testutil"
)

// waitForPath drains events until want shows up.
func waitForPath(t *testing.T, events <-chan string, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got, ok := <-events:
			require.True(t, ok, "event stream ended before %s", want)
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("no event for %s", want)
		}
	}
}

func TestFSSourceReportsFileChanges(t *testing.T) {
	dir := t.TempDir()
	src, err := NewFSSource(dir)
	require.NoError(t, err)
	defer src.Close()

	target := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(target, []byte("one"), 0o644))

	waitForPath(t, src.Events(), target)
}

func TestFSSourceWatchesExistingAndNewSubdirectories(t *testing.T) {
	dir := testutil.TempTree(t, map[string]string{"existing/keep.txt": ""})
	existing := filepath.Join(dir, "existing")

	src, err := NewFSSource(dir)
	require.NoError(t, err)
	defer src.Close()

	nested := filepath.Join(existing, "lib.rs")
	require.NoError(t, os.WriteFile(nested, []byte("fn main() {}"), 0o644))
	waitForPath(t, src.Events(), nested)

	fresh := filepath.Join(dir, "fresh")
	require.NoError(t, os.Mkdir(fresh, 0o755))
	waitForPath(t, src.Events(), fresh)

	// The new directory is registered while its create event is handled,
	// so a write afterwards is reported.
	inFresh := filepath.Join(fresh, "mod.rs")
	require.Eventually(t, func() bool {
		if err := os.WriteFile(inFresh, []byte("x"), 0o644); err != nil {
			return false
		}
		select {
		case got := <-src.Events():
			return got == inFresh
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFSSourceWatchesSingleFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1"), 0o644))

	src, err := NewFSSource(target)
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, os.WriteFile(target, []byte("a: 2"), 0o644))
	waitForPath(t, src.Events(), target)
}

func TestFSSourceMissingPath(t *testing.T) {
	_, err := NewFSSource(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeSubscriptionFailed))
}

func TestFSSourceCloseEndsStreamCleanly(t *testing.T) {
	src, err := NewFSSource(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
	assert.NoError(t, src.Err())
}
