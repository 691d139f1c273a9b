//go:build !unix

package spawner

import "os/exec"

// applyProcessGroup is a no-op on non-unix platforms; process-tree
// termination there is out of scope for this module.
func applyProcessGroup(cmd *exec.Cmd) {}
