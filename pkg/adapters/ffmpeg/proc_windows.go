//go:build windows

package ffmpeg

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}

// Windows has no process groups here; killTree handles descendants.
func killProcessGroup(pid int) error {
	return nil
}
