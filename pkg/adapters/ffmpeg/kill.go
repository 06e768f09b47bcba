package ffmpeg

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"
)

// killTree kills pid and every descendant, deepest first. It must not use
// the job context, which is already done when a tree needs killing.
func killTree(pid int) error {
	ctx := context.Background()
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return ignoreGone(err)
	}
	return errors.Join(
		killDescendants(ctx, p),
		ignoreGone(killProcessGroup(pid)),
		ignoreGone(p.KillWithContext(ctx)),
	)
}

func killDescendants(ctx context.Context, p *process.Process) error {
	children, err := p.ChildrenWithContext(ctx)
	if err != nil {
		// Leaf processes report ErrorNoChildren.
		return nil
	}
	var errs []error
	for _, c := range children {
		errs = append(errs, killDescendants(ctx, c), ignoreGone(c.KillWithContext(ctx)))
	}
	return errors.Join(errs...)
}

// ignoreGone drops errors for processes that exited before the signal.
func ignoreGone(err error) error {
	switch {
	case err == nil,
		errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, os.ErrProcessDone),
		errors.Is(err, syscall.ESRCH):
		return nil
	}
	return err
}
