// Package static implements the single-crop export stage: one ffmpeg pass
// with a fixed crop state in any mode.
package static

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/expression"
	"github.com/user/cropaway/pkg/pipeline"
	"github.com/user/cropaway/pkg/ports"
	"github.com/user/cropaway/pkg/rle"
)

// ErrUnknownSize is returned when the source dimensions are not known.
var ErrUnknownSize = errors.New("static: source dimensions unknown")

// Stage exports a source range with a fixed crop.
type Stage struct {
	transcoder ports.Transcoder
	renderer   ports.MaskRenderer
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
	tempDir    string
}

// NewStage creates a new static export stage. Mask files are written to tempDir.
func NewStage(transcoder ports.Transcoder, renderer ports.MaskRenderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, tempDir string) *Stage {
	return &Stage{
		transcoder: transcoder,
		renderer:   renderer,
		fs:         fs,
		sink:       sink,
		logger:     logger.WithComponent("static"),
		tempDir:    tempDir,
	}
}

// Execute renders the crop for in.State and transcodes the requested range.
func (s *Stage) Execute(ctx context.Context, in pipeline.StaticInput) (pipeline.StaticResult, error) {
	result := pipeline.StaticResult{Output: in.Output}
	w, h := in.Media.Width, in.Media.Height
	if w <= 0 || h <= 0 {
		return result, fmt.Errorf("%w: %dx%d", ErrUnknownSize, w, h)
	}

	job := ports.TranscodeJob{
		Input:         in.Source,
		Output:        in.Output,
		Start:         in.Start,
		Duration:      in.Duration,
		Encoder:       in.Encoder,
		TotalDuration: in.Duration,
	}
	if job.TotalDuration <= 0 {
		job.TotalDuration = in.Media.Duration - in.Start
	}

	switch shape := in.State.Shape(in.Mode).(type) {
	case crop.RectShape:
		result.Region = crop.ClampRect(shape.Rect)
		job.Filter = expression.StaticCropFilter(result.Region, w, h)

	default:
		mask := in.Mask
		if mask == nil {
			var err error
			if mask, err = s.renderer.Render(shape, w, h); err != nil {
				return result, fmt.Errorf("render mask: %w", err)
			}
		}
		result.Region = in.Region
		if result.Region.IsEmpty() {
			result.Region = rle.FromGray(mask).BoundingBox()
		}

		data, err := s.renderer.EncodePNG(mask)
		if err != nil {
			return result, fmt.Errorf("encode mask: %w", err)
		}
		result.MaskPath = s.fs.TempPath(s.tempDir, "mask", ".png")
		in.Temp.Add(result.MaskPath)
		if err := s.fs.WriteFile(result.MaskPath, data); err != nil {
			return result, fmt.Errorf("write mask: %w", err)
		}
		if s.sink.Enabled() {
			if err := s.sink.SaveMask(in.Index, mask); err != nil {
				s.logger.Warn("Failed to save debug mask: %v", err)
			}
		}

		job.MaskPath = result.MaskPath
		job.Filter = MaskFilter(result.Region, w, h, in.Encoder.PixelFormat)
	}
	result.Filter = job.Filter

	s.logger.Debug("Exporting %s %.3fs+%.3fs with %s", in.Mode, in.Start, in.Duration, job.Filter)
	if err := s.transcoder.Transcode(ctx, job, in.Progress); err != nil {
		return result, fmt.Errorf("transcode: %w", err)
	}
	return result, nil
}

// MaskFilter builds a filter graph that blacks out hidden pixels using the
// looped mask input [1:v] and crops to region. The output is labelled [out].
// The looped mask never ends, so both merges stop with the source video.
func MaskFilter(region crop.Rect, width, height int, pixelFormat string) string {
	if pixelFormat == "" {
		pixelFormat = "yuv420p"
	}
	x, y, cw, ch := expression.PixelRect(region, width, height)
	return fmt.Sprintf(
		"[1:v]format=gray,scale=%d:%d[mask];"+
			"[0:v]split[base][fg];"+
			"[base]drawbox=c=black:t=fill[bg];"+
			"[fg]format=yuva420p[fga];"+
			"[fga][mask]alphamerge=shortest=1[cut];"+
			"[bg][cut]overlay=format=auto:shortest=1,crop=%d:%d:%d:%d,format=%s[out]",
		width, height, cw, ch, x, y, pixelFormat,
	)
}
