package watch

import (
	"context"
	"time"
)

// Batch is the set of paths that changed within one debounce window, in
// first-seen order and without duplicates.
type Batch struct {
	Paths []string
}

// Debounce coalesces raw paths from in. A window opens with the first path
// and closes once no new path has arrived for window; the collected paths
// are then delivered as one Batch. Batches that the consumer has not taken
// yet are merged, so a slow consumer sees one combined batch rather than a
// backlog. When in is closed, pending paths are flushed and the returned
// channel is closed. Cancelling ctx closes it without flushing.
func Debounce(ctx context.Context, in <-chan string, window time.Duration) <-chan Batch {
	out := make(chan Batch)
	go debounce(ctx, in, out, window)
	return out
}

func debounce(ctx context.Context, in <-chan string, out chan<- Batch, window time.Duration) {
	defer close(out)

	var (
		pending = newPathSet()
		ready   = newPathSet()
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var (
			send chan<- Batch
			next Batch
		)
		if ready.len() > 0 {
			send = out
			next = Batch{Paths: ready.paths()}
		}

		select {
		case <-ctx.Done():
			return

		case p, ok := <-in:
			if !ok {
				ready.merge(pending)
				if ready.len() > 0 {
					select {
					case out <- Batch{Paths: ready.paths()}:
					case <-ctx.Done():
					}
				}
				return
			}
			pending.add(p)
			if timer == nil {
				timer = time.NewTimer(window)
			} else {
				timer.Reset(window)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			ready.merge(pending)
			pending = newPathSet()

		case send <- next:
			ready = newPathSet()
		}
	}
}

type pathSet struct {
	order []string
	seen  map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

func (s *pathSet) add(p string) {
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.order = append(s.order, p)
}

func (s *pathSet) merge(other *pathSet) {
	for _, p := range other.order {
		s.add(p)
	}
}

func (s *pathSet) len() int {
	return len(s.order)
}

func (s *pathSet) paths() []string {
	return append([]string(nil), s.order...)
}
