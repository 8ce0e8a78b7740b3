//go:build unix

package engine

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts the engine in its own process group and makes
// cancellation kill the whole group, so helpers the engine spawned die too.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
