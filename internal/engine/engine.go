// Package engine runs one watch loop per rule and decides when the whole
// program stops.
package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/grovetools/reload/errors"
	"github.com/grovetools/reload/pkg/rule"
	"github.com/grovetools/reload/pkg/watch"
)

// Runner is a started rule loop.
type Runner interface {
	Run(ctx context.Context) error
}

// OpenFunc subscribes to a rule's path and returns its loop.
type OpenFunc func(r *rule.Rule) (Runner, error)

// Engine manages and runs all rule loops.
type Engine struct {
	rules  rule.RuleSet
	open   OpenFunc
	logger *logrus.Entry
}

// New creates a new Engine instance backed by real watchers and processes.
func New(rules rule.RuleSet, logger *logrus.Entry) *Engine {
	return &Engine{
		rules: rules,
		open: func(r *rule.Rule) (Runner, error) {
			loop, err := watch.Open(r)
			if err != nil {
				return nil, err
			}
			return loop, nil
		},
		logger: logger,
	}
}

// WithOpener replaces how loops are created.
func (e *Engine) WithOpener(open OpenFunc) *Engine {
	e.open = open
	return e
}

// Run starts every loop concurrently and blocks until all of them have
// returned. The first loop to fail cancels the others, which stop their
// processes; Run then returns that failure annotated with the rule name.
// Cancelling ctx stops every loop and Run returns nil.
func (e *Engine) Run(ctx context.Context) error {
	if len(e.rules) == 0 {
		e.logger.Info("No rules configured, nothing to do")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range e.rules {
		r := r
		g.Go(func() error {
			log := e.logger.WithField("rule", r.Name())

			runner, err := e.open(r)
			if err != nil {
				log.WithError(err).Error("Failed to start watching")
				return ruleFailed(r, err)
			}

			log.Info("Starting rule")
			if err := runner.Run(gctx); err != nil {
				log.WithError(err).Error("Rule failed")
				return ruleFailed(r, err)
			}
			log.Info("Rule stopped")
			return nil
		})
	}

	return g.Wait()
}

// ruleFailed keeps the cause's code so callers can still classify it.
func ruleFailed(r *rule.Rule, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(err, code, fmt.Sprintf("rule %q failed", r.Name())).
		WithDetail("rule", r.Name()).
		WithDetail("path", r.Path())
}
