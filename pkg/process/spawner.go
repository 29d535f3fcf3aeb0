package process

import (
	"io"
	"os"
	"os/exec"
	"strings"
)

// Spec describes how to start a managed process.
type Spec struct {
	Command string
	Args    []string
	// Dir is the working directory. Empty inherits the supervisor's own.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
}

// Argv returns the command followed by its arguments.
func (s Spec) Argv() []string {
	return append([]string{s.Command}, s.Args...)
}

// String renders the command line for diagnostics.
func (s Spec) String() string {
	return strings.Join(s.Argv(), " ")
}

// Process is a live child started by a Spawner.
type Process interface {
	// Pid returns the OS process id.
	Pid() int
	// Terminate asks the process (and its group, where supported) to exit.
	// It returns os.ErrProcessDone if nothing was left to signal.
	Terminate() error
	// Kill forcibly stops the process (and its group, where supported). The
	// group is signalled even after the process itself has exited. It returns
	// os.ErrProcessDone if nothing was left to signal.
	Kill() error
	// Done is closed once the process has exited and been reaped.
	Done() <-chan struct{}
	// Wait blocks until Done and reports a failure to reap the process.
	// A non-zero exit status is not an error.
	Wait() error
}

// Spawner starts processes. It is the narrow seam between the supervisor
// and the operating system.
type Spawner interface {
	Spawn(spec Spec) (Process, error)
}

// ExecSpawner starts real OS processes with os/exec. Standard output and
// error are inherited unless overridden; standard input is not connected.
type ExecSpawner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Spawn implements Spawner.
func (e *ExecSpawner) Spawn(spec Spec) (Process, error) {
	cmd := exec.Command(spec.Command, spec.Args...) //nolint:gosec // running the configured command is the point
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	cmd.Stdin = nil
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	configureCommand(cmd)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

type execProcess struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Done() <-chan struct{} {
	return p.done
}

func (p *execProcess) Terminate() error {
	return terminate(p.cmd.Process)
}

func (p *execProcess) Kill() error {
	return kill(p.cmd.Process)
}

func (p *execProcess) Wait() error {
	<-p.done
	if _, ok := p.waitErr.(*exec.ExitError); ok {
		return nil
	}
	return p.waitErr
}
