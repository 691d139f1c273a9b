//go:build unix

package spawner

import (
	"os/exec"
	"syscall"
)

// applyProcessGroup isolates the child into its own process group so
// processtree.Kill can later signal the whole descendant tree with a
// single syscall.Kill(-pid, ...) — grounded on the pack's zmux-server
// processmgr reference (SysProcAttr{Setpgid: true}).
func applyProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
