package ffmpeg

import (
	"errors"
	"fmt"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpeg: ffmpeg not found")

	// ErrTimeout is returned when a process exceeds its wall-clock bound.
	// The process tree has been killed by the time it is returned.
	ErrTimeout = errors.New("ffmpeg: process timed out")
)

// ExitError reports a non-zero ffmpeg exit with the tail of its stderr.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("ffmpeg: exited with code %d", e.Code)
	}
	return fmt.Sprintf("ffmpeg: exited with code %d: %s", e.Code, e.Stderr)
}
