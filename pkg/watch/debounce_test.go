package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveBatch(t *testing.T, batches <-chan Batch, within time.Duration) Batch {
	t.Helper()
	select {
	case b, ok := <-batches:
		require.True(t, ok, "batch channel closed")
		return b
	case <-time.After(within):
		t.Fatalf("no batch within %v", within)
	}
	return Batch{}
}

func assertNoBatch(t *testing.T, batches <-chan Batch, within time.Duration) {
	t.Helper()
	select {
	case b, ok := <-batches:
		if ok {
			t.Fatalf("unexpected batch: %v", b.Paths)
		}
	case <-time.After(within):
	}
}

func TestDebounceCoalescesEventsWithinWindow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	batches := Debounce(ctx, in, 200*time.Millisecond)

	start := time.Now()
	in <- "/src/a.rs"
	time.Sleep(100 * time.Millisecond)
	in <- "/src/b.rs"

	b := receiveBatch(t, batches, time.Second)
	assert.Equal(t, []string{"/src/a.rs", "/src/b.rs"}, b.Paths)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)

	assertNoBatch(t, batches, 400*time.Millisecond)
}

func TestDebounceSeparatesDistantEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	batches := Debounce(ctx, in, 50*time.Millisecond)

	in <- "/a"
	first := receiveBatch(t, batches, time.Second)
	in <- "/b"
	second := receiveBatch(t, batches, time.Second)

	assert.Equal(t, []string{"/a"}, first.Paths)
	assert.Equal(t, []string{"/b"}, second.Paths)
}

func TestDebounceDeduplicatesPaths(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	batches := Debounce(ctx, in, 50*time.Millisecond)

	for _, p := range []string{"/x", "/y", "/x", "/x", "/z", "/y"} {
		in <- p
	}

	b := receiveBatch(t, batches, time.Second)
	assert.Equal(t, []string{"/x", "/y", "/z"}, b.Paths)
}

func TestDebounceMergesBatchesForSlowConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	batches := Debounce(ctx, in, 20*time.Millisecond)

	in <- "/first"
	time.Sleep(60 * time.Millisecond)
	in <- "/second"
	time.Sleep(60 * time.Millisecond)

	b := receiveBatch(t, batches, time.Second)
	assert.Equal(t, []string{"/first", "/second"}, b.Paths)
	assertNoBatch(t, batches, 100*time.Millisecond)
}

func TestDebounceFlushesWhenInputCloses(t *testing.T) {
	in := make(chan string)
	batches := Debounce(context.Background(), in, time.Hour)

	in <- "/pending"
	close(in)

	b := receiveBatch(t, batches, time.Second)
	assert.Equal(t, []string{"/pending"}, b.Paths)

	_, ok := <-batches
	assert.False(t, ok)
}

func TestDebounceStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan string)
	batches := Debounce(ctx, in, time.Hour)

	cancel()

	select {
	case _, ok := <-batches:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("batch channel not closed after cancel")
	}
}
