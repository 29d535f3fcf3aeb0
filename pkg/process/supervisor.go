package process

import (
	goerrors "errors"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/reload/errors"
	"github.com/grovetools/reload/logging"
)

// DefaultKillTimeout is how long a child gets to exit after SIGTERM before
// it is killed.
const DefaultKillTimeout = 5 * time.Second

// Supervisor keeps at most one instance of a Spec running.
type Supervisor struct {
	mu          sync.Mutex
	spec        Spec
	spawner     Spawner
	killTimeout time.Duration
	current     Process
	logger      *logrus.Entry
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithSpawner replaces the default ExecSpawner.
func WithSpawner(sp Spawner) Option {
	return func(s *Supervisor) {
		s.spawner = sp
	}
}

// WithKillTimeout sets the grace period between terminate and kill. Zero
// kills immediately.
func WithKillTimeout(d time.Duration) Option {
	return func(s *Supervisor) {
		if d >= 0 {
			s.killTimeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Supervisor) {
		s.logger = l
	}
}

// NewSupervisor returns an Idle supervisor for spec.
func NewSupervisor(spec Spec, opts ...Option) *Supervisor {
	s := &Supervisor{
		spec:        spec,
		spawner:     &ExecSpawner{},
		killTimeout: DefaultKillTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewLogger("supervisor")
	}
	s.logger = s.logger.WithField("command", spec.String())
	return s
}

// Spec returns what the supervisor runs.
func (s *Supervisor) Spec() Spec {
	return s.spec
}

// Running reports whether a child is attributed to the supervisor.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Pid returns the pid of the current child, or 0 when Idle.
func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.Pid()
}

// EnsureRestarted makes sure a fresh instance is running. A live child is
// terminated and reaped first; only then is the replacement spawned.
//
// A TERMINATION_FAILED error from signalling leaves the old handle in place
// so the next call tries again. A child that exited but could not be reaped
// cleanly is dropped, so the next call spawns. A SPAWN_FAILED error leaves
// the supervisor Idle.
func (s *Supervisor) EnsureRestarted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if err := s.stopLocked(); err != nil {
			return err
		}
	}

	p, err := s.spawner.Spawn(s.spec)
	if err != nil {
		s.logger.WithError(err).Error("Failed to start process")
		return errors.SpawnFailed(s.spec.Argv(), err).WithDetail("dir", s.spec.Dir)
	}
	s.current = p
	s.logger.WithField("pid", p.Pid()).Info("Process started")
	return nil
}

// Stop terminates the current child, if any, and returns to Idle.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	return s.stopLocked()
}

func (s *Supervisor) stopLocked() error {
	p := s.current
	log := s.logger.WithField("pid", p.Pid())

	if err := s.terminate(p, log); err != nil {
		log.WithError(err).Error("Failed to terminate process")
		return errors.TerminationFailed(p.Pid(), err)
	}
	if err := p.Wait(); err != nil {
		// Done is closed once Wait returns; there is nothing left to retry.
		s.current = nil
		log.WithError(err).Error("Failed to reap process")
		return errors.TerminationFailed(p.Pid(), err)
	}

	s.current = nil
	log.Debug("Process exited")
	return nil
}

// terminate signals p and blocks until it has exited. It never gives up
// waiting after the kill signal.
func (s *Supervisor) terminate(p Process, log *logrus.Entry) error {
	select {
	case <-p.Done():
		log.Debug("Process had already exited")
		// Children it left behind in its group still have to go.
		if err := p.Kill(); err != nil && !goerrors.Is(err, os.ErrProcessDone) {
			log.WithError(err).Warn("Failed to signal leftover process group")
		}
		return nil
	default:
	}

	if s.killTimeout > 0 {
		if err := p.Terminate(); err != nil && !goerrors.Is(err, os.ErrProcessDone) {
			return err
		}
		timer := time.NewTimer(s.killTimeout)
		defer timer.Stop()
		select {
		case <-p.Done():
			return nil
		case <-timer.C:
			log.WithField("timeout", s.killTimeout).Warn("Process did not exit, killing")
		}
	}

	if err := p.Kill(); err != nil && !goerrors.Is(err, os.ErrProcessDone) {
		return err
	}
	<-p.Done()
	return nil
}
