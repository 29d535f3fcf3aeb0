//go:build !windows

package watch

import (
	goerrors "errors"
	"syscall"
)

// isFatalFsnotifyError classifies fsnotify errors that mean the watcher
// cannot recover. On Linux these are inotify resource exhaustion errors:
//   - ENOSPC: fs.inotify.max_user_watches exceeded
//   - EMFILE: per-process file descriptor limit exceeded
//   - ENFILE: system-wide file descriptor limit exceeded
func isFatalFsnotifyError(err error) bool {
	return goerrors.Is(err, syscall.ENOSPC) ||
		goerrors.Is(err, syscall.EMFILE) ||
		goerrors.Is(err, syscall.ENFILE)
}
