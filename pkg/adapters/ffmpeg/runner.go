package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/cropaway/pkg/adapters/logger"
	"github.com/user/cropaway/pkg/ports"
)

// DefaultProbeTimeout bounds a single encoder probe.
const DefaultProbeTimeout = 15 * time.Second

// Options configures a Runner.
type Options struct {
	// Path to the ffmpeg binary. Empty means FindFFmpeg's search order.
	Path string
	// Timeout bounds each transcode or concat. Zero means no bound.
	Timeout time.Duration
	// ProbeTimeout bounds each encoder probe.
	ProbeTimeout time.Duration
	Logger       ports.Logger
}

// Runner implements ports.Transcoder with an ffmpeg subprocess per job.
type Runner struct {
	path         string
	timeout      time.Duration
	probeTimeout time.Duration
	logger       ports.Logger
}

// New locates ffmpeg and returns a Runner. It returns an error wrapping
// ErrFFmpegNotFound when no binary is available.
func New(opts Options) (*Runner, error) {
	path, err := FindFFmpeg(opts.Path)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	probeTimeout := opts.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	return &Runner{
		path:         path,
		timeout:      opts.Timeout,
		probeTimeout: probeTimeout,
		logger:       log.WithComponent("ffmpeg"),
	}, nil
}

// Path returns the ffmpeg binary in use.
func (r *Runner) Path() string {
	return r.path
}

// Transcode runs one transcode job.
func (r *Runner) Transcode(ctx context.Context, job ports.TranscodeJob, progress ports.ProgressFunc) error {
	onElapsed := func(elapsed time.Duration) {
		if progress != nil && job.TotalDuration > 0 {
			progress(fraction(elapsed, job.TotalDuration))
		}
	}
	if err := r.run(ctx, transcodeArgs(job), r.timeout, onElapsed); err != nil {
		return err
	}
	if progress != nil {
		progress(1)
	}
	return nil
}

// Concat joins the manifest's files with stream copy.
func (r *Runner) Concat(ctx context.Context, manifestPath, output string) error {
	return r.run(ctx, concatArgs(manifestPath, output), r.timeout, nil)
}

// ProbeEncoder encodes 0.1 s of synthetic video with encoder and discards it.
func (r *Runner) ProbeEncoder(ctx context.Context, encoder string) error {
	return r.run(ctx, probeArgs(encoder), r.probeTimeout, nil)
}

func (r *Runner) run(ctx context.Context, args []string, timeout time.Duration, onElapsed func(time.Duration)) error {
	parent := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.logger.Debug("Running %s %s", r.path, strings.Join(args, " "))

	cmd := exec.Command(r.path, args...)
	setProcessGroup(cmd)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg: stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg: start: %w", err)
	}

	exited := make(chan struct{})
	killed := make(chan bool, 1)
	go func() {
		select {
		case <-ctx.Done():
			if err := killTree(cmd.Process.Pid); err != nil {
				r.logger.Warn("Failed to kill ffmpeg process tree: %v", err)
			}
			killed <- true
		case <-exited:
			killed <- false
		}
	}()

	// Both pipes are drained to EOF before Wait so neither can fill and block ffmpeg.
	tail := newTailBuffer(StderrTailSize)
	var g errgroup.Group
	g.Go(func() error { return parseProgress(stdout, onElapsed) })
	g.Go(func() error {
		_, err := io.Copy(tail, stderr)
		return err
	})
	drainErr := g.Wait()
	waitErr := cmd.Wait()
	close(exited)

	if <-killed {
		if parent.Err() != nil {
			return parent.Err()
		}
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Stderr: tail.String()}
		}
		return fmt.Errorf("ffmpeg: wait: %w", waitErr)
	}
	if drainErr != nil {
		return fmt.Errorf("ffmpeg: read output: %w", drainErr)
	}
	return nil
}

var _ ports.Transcoder = (*Runner)(nil)
