package ffmpeg

import (
	"strconv"

	"github.com/user/cropaway/pkg/ports"
)

// DefaultEncoder is used when a job does not name an encoder.
const DefaultEncoder = "libx264"

// Progress goes to stdout as key=value lines; stderr carries diagnostics only.
var commonArgs = []string{"-hide_banner", "-nostdin", "-y", "-nostats", "-progress", "pipe:1"}

func transcodeArgs(job ports.TranscodeJob) []string {
	args := append([]string{}, commonArgs...)
	if job.Start > 0 {
		args = append(args, "-ss", seconds(job.Start))
	}
	args = append(args, "-i", job.Input)
	if job.MaskPath != "" {
		args = append(args, "-loop", "1", "-i", job.MaskPath)
	}
	if job.Duration > 0 {
		args = append(args, "-t", seconds(job.Duration))
	}

	if job.MaskPath != "" {
		args = append(args, "-filter_complex", job.Filter, "-map", "[out]")
	} else {
		if job.Filter != "" {
			args = append(args, "-vf", job.Filter)
		}
		args = append(args, "-map", "0:v:0")
	}
	args = append(args, "-map", "0:a?")

	enc := job.Encoder
	if enc.Name == "" {
		enc.Name = DefaultEncoder
	}
	args = append(args, "-c:v", enc.Name)
	if enc.PixelFormat != "" {
		args = append(args, "-pix_fmt", enc.PixelFormat)
	}
	args = append(args, enc.Args...)
	return append(args, "-c:a", "copy", "-movflags", "+faststart", job.Output)
}

func concatArgs(manifestPath, output string) []string {
	args := append([]string{}, commonArgs...)
	return append(args,
		"-f", "concat", "-safe", "0", "-i", manifestPath,
		"-map", "0", "-c", "copy", "-movflags", "+faststart",
		output,
	)
}

func probeArgs(encoder string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-nostats", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=c=black:s=256x256:d=0.1",
		"-c:v", encoder, "-f", "null", "-",
	}
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
