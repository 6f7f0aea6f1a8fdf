//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// setProcessGroup puts the child in its own process group so signals
// aimed at the launcher never reach the game directly.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
