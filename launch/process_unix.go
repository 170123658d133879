//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// detachSysProcAttr puts the child in its own session so it survives the
// launcher's terminal going away.
func detachSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
