//go:build !windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

// configureCommand puts the child in its own process group so a restart
// takes down everything it started (e.g. a shell and its server).
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminate(p *os.Process) error {
	return signalGroup(p, syscall.SIGTERM)
}

func kill(p *os.Process) error {
	return signalGroup(p, syscall.SIGKILL)
}

func signalGroup(p *os.Process, sig syscall.Signal) error {
	err := syscall.Kill(-p.Pid, sig)
	if err == syscall.ESRCH {
		// The group is empty; the process itself reports os.ErrProcessDone
		// once it has been reaped.
		return p.Signal(sig)
	}
	return err
}
