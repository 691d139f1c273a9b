//go:build !unix

package spawner

import (
	"errors"
	"os/exec"
)

// exitInfo is the non-unix fallback: exec.ExitError.ExitCode already
// reports -1 for signal termination, so we just surface that as an
// opaque "killed" signal name without trying to decode which signal.
func exitInfo(err error) (code int, signal string) {
	if err == nil {
		return 0, ""
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ec := exitErr.ExitCode()
		if ec < 0 {
			return -1, "killed"
		}
		return ec, ""
	}
	return 2, ""
}
