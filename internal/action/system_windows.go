//go:build windows

package action

import (
	"os/exec"
	"syscall"
)

// detach starts cmd in a new process group so a Ctrl+C aimed at shortkey
// does not reach the browser.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
