//go:build !windows

package ffmpeg

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts ffmpeg in its own process group so the whole
// group can be signalled on cancellation.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(pid int) error {
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		return err
	}
	return syscall.Kill(-pgid, syscall.SIGKILL)
}
