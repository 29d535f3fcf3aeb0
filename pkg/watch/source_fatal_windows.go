//go:build windows

package watch

import (
	goerrors "errors"
	"syscall"
)

// ERROR_TOO_MANY_OPEN_FILES and ERROR_NOT_ENOUGH_MEMORY leave
// ReadDirectoryChangesW unable to continue.
const (
	errorTooManyOpenFiles syscall.Errno = 4
	errorNotEnoughMemory  syscall.Errno = 8
)

func isFatalFsnotifyError(err error) bool {
	return goerrors.Is(err, errorTooManyOpenFiles) ||
		goerrors.Is(err, errorNotEnoughMemory)
}
