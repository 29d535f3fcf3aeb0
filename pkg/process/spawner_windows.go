//go:build windows

package process

import (
	"os"
	"os/exec"
)

func configureCommand(cmd *exec.Cmd) {}

// terminate has no graceful equivalent on Windows.
func terminate(p *os.Process) error {
	return p.Kill()
}

func kill(p *os.Process) error {
	return p.Kill()
}
