package errors

import (
	"fmt"
	"os/exec"
	"strings"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ReloadError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ReloadError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// UnsupportedVersion creates an error for a configuration version this build cannot read.
func UnsupportedVersion(got, want string) *ReloadError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("unsupported configuration version %q (expected %q)", got, want)).
		WithDetail("version", got).
		WithDetail("expected", want)
}

// InvalidPattern creates an error for a glob that cannot be compiled.
func InvalidPattern(pattern string, err error) *ReloadError {
	return Wrap(err, ErrCodeInvalidPattern, fmt.Sprintf("invalid glob pattern %q", pattern)).
		WithDetail("pattern", pattern)
}

// SubscriptionFailed creates an error for a filesystem watch that could not be established.
func SubscriptionFailed(path string, err error) *ReloadError {
	return Wrap(err, ErrCodeSubscriptionFailed, fmt.Sprintf("failed to watch %s", path)).
		WithDetail("path", path)
}

// SpawnFailed creates a process start failure error
func SpawnFailed(argv []string, err error) *ReloadError {
	cmd := strings.Join(argv, " ")
	reloadErr := Wrap(err, ErrCodeSpawnFailed, fmt.Sprintf("failed to start: %s", cmd)).
		WithDetail("command", cmd)

	if execErr, ok := err.(*exec.Error); ok {
		reloadErr = reloadErr.WithDetail("executable", execErr.Name)
	}

	return reloadErr
}

// TerminationFailed creates an error for a process that could not be killed or reaped.
func TerminationFailed(pid int, err error) *ReloadError {
	return Wrap(err, ErrCodeTerminationFailed, fmt.Sprintf("failed to terminate process %d", pid)).
		WithDetail("pid", pid)
}
