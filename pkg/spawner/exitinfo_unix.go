//go:build unix

package spawner

import (
	"errors"
	"os/exec"
	"syscall"
)

// exitInfo extracts an exit code and signal name from the error
// returned by (*exec.Cmd).Wait: 0 success, 1 generic error, >1 unknown
// error, non-nil signal name means the process was killed.
func exitInfo(err error) (code int, signal string) {
	if err == nil {
		return 0, ""
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if ws.Signaled() {
				return -1, ws.Signal().String()
			}
			return ws.ExitStatus(), ""
		}
		return exitErr.ExitCode(), ""
	}
	// Wait returned a non-ExitError (e.g. I/O error reaping the
	// process): treat as an unknown failure, code > 1.
	return 2, ""
}
