package watch

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/reload/logging"
	"github.com/grovetools/reload/pkg/process"
	"github.com/grovetools/reload/pkg/rule"
)

// Restarter is the part of process.Supervisor a Loop drives.
type Restarter interface {
	EnsureRestarted() error
	Stop() error
}

// Loop connects one rule's change source to its supervisor. Batches are
// handled one at a time; a restart finishes before the next batch is read.
type Loop struct {
	rule       *rule.Rule
	supervisor Restarter
	source     Source
	pretty     *logging.PrettyLogger
	logger     *logrus.Entry
}

// NewLoop wires r to an already subscribed source and a supervisor.
func NewLoop(r *rule.Rule, supervisor Restarter, source Source) *Loop {
	return &Loop{
		rule:       r,
		supervisor: supervisor,
		source:     source,
		pretty:     logging.NewPrettyLogger(),
		logger:     logging.NewLogger("watch").WithField("rule", r.Name()),
	}
}

// Open subscribes to r's path and builds a loop around a real supervisor.
// A subscription failure is returned before anything is spawned.
func Open(r *rule.Rule) (*Loop, error) {
	source, err := NewFSSource(r.Path())
	if err != nil {
		return nil, err
	}
	supervisor := process.NewSupervisor(
		r.ProcessSpec(),
		process.WithKillTimeout(r.KillTimeout()),
		process.WithLogger(logging.NewLogger("supervisor").WithField("rule", r.Name())),
	)
	return NewLoop(r, supervisor, source), nil
}

// WithPrettyLogger replaces the diagnostic printer.
func (l *Loop) WithPrettyLogger(p *logging.PrettyLogger) *Loop {
	l.pretty = p
	return l
}

// Rule returns the rule the loop serves.
func (l *Loop) Rule() *rule.Rule {
	return l.rule
}

// Run starts the managed process, then restarts it for every batch that
// contains a triggering path. It returns when the source ends (with the
// source's error), when a restart fails (with that error) or when ctx is
// cancelled (nil). The child process is stopped on every return path.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if closeErr := l.source.Close(); closeErr != nil {
			l.logger.WithError(closeErr).Debug("Failed to close watcher")
		}
		if stopErr := l.supervisor.Stop(); stopErr != nil {
			l.logger.WithError(stopErr).Error("Failed to stop process")
			if err == nil {
				err = stopErr
			}
		}
	}()

	argv := l.rule.ProcessSpec().Argv()

	l.logger.WithField("pattern", l.rule.Pattern()).Info("Watching")
	l.pretty.Command(argv)
	if err := l.supervisor.EnsureRestarted(); err != nil {
		return err
	}

	batches := Debounce(ctx, l.source.Events(), l.rule.Debounce())
	for {
		select {
		case <-ctx.Done():
			return nil

		case batch, ok := <-batches:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return l.source.Err()
			}

			trigger, matched := l.rule.FirstTrigger(batch.Paths)
			if !matched {
				l.logger.WithField("paths", len(batch.Paths)).Debug("No matching paths in batch")
				continue
			}

			l.logger.WithField("trigger", trigger).Info("Change detected, restarting")
			l.pretty.Reloading(trigger)
			l.pretty.Command(argv)
			if err := l.supervisor.EnsureRestarted(); err != nil {
				return err
			}
		}
	}
}
