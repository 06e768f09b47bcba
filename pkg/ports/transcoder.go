package ports

import "context"

// ProgressFunc receives the completed fraction of a job in [0, 1].
type ProgressFunc func(fraction float64)

// EncoderSettings selects the video encoder for an ffmpeg job.
type EncoderSettings struct {
	Name        string   // ffmpeg encoder name, e.g. "h264_nvenc" or "libx264"
	PixelFormat string   // output pixel format, e.g. "yuv420p"
	Args        []string // extra rate-control arguments
	Hardware    bool
}

// TranscodeJob describes one ffmpeg transcode.
type TranscodeJob struct {
	Input  string
	Output string

	// Start and Duration select a time range of the input in seconds.
	// A zero Duration means "until the end of the input".
	Start    float64
	Duration float64

	// Filter is a -vf filter chain, or a -filter_complex graph labelled
	// [out] when MaskPath is set. The mask is fed as a looped second input.
	Filter   string
	MaskPath string

	Encoder EncoderSettings

	// TotalDuration normalizes progress. Zero disables progress reporting.
	TotalDuration float64
}

// Transcoder abstracts the external video transcoder.
type Transcoder interface {
	// Transcode runs a job, reporting progress until the process exits.
	// Cancelling ctx terminates the process and its children.
	Transcode(ctx context.Context, job TranscodeJob, progress ProgressFunc) error

	// Concat joins the files listed in a concat manifest without re-encoding.
	Concat(ctx context.Context, manifestPath, output string) error

	// ProbeEncoder runs a short synthetic encode to check that an encoder works.
	ProbeEncoder(ctx context.Context, name string) error
}
