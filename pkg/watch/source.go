// Package watch turns filesystem notifications into debounced batches and
// drives a rule's supervisor from them.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/reload/errors"
	"github.com/grovetools/reload/logging"
)

// Source produces raw changed paths. Events is closed when the source stops;
// Err then reports why (nil after Close).
type Source interface {
	Events() <-chan string
	Err() error
	Close() error
}

// FSSource watches a file or a directory tree with fsnotify. Directories
// created after startup are added as they appear.
type FSSource struct {
	root    string
	fsw     *fsnotify.Watcher
	events  chan string
	logger  *logrus.Entry
	mu      sync.Mutex
	err     error
	closing chan struct{}
	once    sync.Once
}

// NewFSSource subscribes to changes under root. A root that does not exist
// or cannot be watched is a SUBSCRIPTION_FAILED error.
func NewFSSource(root string) (*FSSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.SubscriptionFailed(root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.SubscriptionFailed(root, err)
	}

	s := &FSSource{
		root:    root,
		fsw:     fsw,
		events:  make(chan string),
		logger:  logging.NewLogger("watch").WithField("path", root),
		closing: make(chan struct{}),
	}

	if info.IsDir() {
		err = s.addTree(root)
	} else {
		err = fsw.Add(root)
	}
	if err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, errors.SubscriptionFailed(root, err)
	}

	go s.run()
	return s, nil
}

// Events implements Source.
func (s *FSSource) Events() <-chan string {
	return s.events
}

// Err implements Source.
func (s *FSSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops watching. It is safe to call more than once.
func (s *FSSource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.closing)
		err = s.fsw.Close()
	})
	return err
}

func (s *FSSource) run() {
	defer close(s.events)

	for {
		select {
		case evt, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			s.logger.Debugf("fsnotify event: %s op=%v", evt.Name, evt.Op)

			if evt.Has(fsnotify.Create) {
				s.maybeAddTree(evt.Name)
			}

			select {
			case s.events <- evt.Name:
			case <-s.closing:
				return
			}

		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			if isFatalFsnotifyError(err) {
				s.mu.Lock()
				s.err = errors.Wrap(err, errors.ErrCodeWatchFailed, "fatal fsnotify error").
					WithDetail("path", s.root)
				s.mu.Unlock()
				s.fsw.Close() //nolint:errcheck // the stream is over either way
				return
			}
			s.logger.WithError(err).Warn("Watcher error")

		case <-s.closing:
			return
		}
	}
}

// addTree registers dir and every directory below it.
func (s *FSSource) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			// Skip what we cannot read rather than failing the whole rule.
			s.logger.WithError(err).Warnf("Skipping inaccessible path %s", path)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return s.fsw.Add(path)
	})
}

func (s *FSSource) maybeAddTree(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := s.addTree(path); err != nil {
		s.logger.WithError(err).Warnf("Failed to watch new directory %s", path)
	}
}
