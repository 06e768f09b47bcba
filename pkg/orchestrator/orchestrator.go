// Package orchestrator coordinates the stages of a crop export.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/expression"
	"github.com/user/cropaway/pkg/pipeline"
	"github.com/user/cropaway/pkg/ports"
	"github.com/user/cropaway/pkg/rle"
)

// State is the phase of an export.
type State string

const (
	StateIdle            State = "idle"
	StateSinglePass      State = "single-pass"
	StateExpression      State = "expression"
	StateSegmentedMasked State = "segmented-masked"
	StateConcatenating   State = "concatenating"
	StateDone            State = "done"
	StateCancelled       State = "cancelled"
	StateFailed          State = "failed"
)

// maxRunningProgress caps reported progress until the export has succeeded.
const maxRunningProgress = 0.99

// EncoderSelector picks the encoder for a source bitrate.
type EncoderSelector interface {
	Select(ctx context.Context, sourceBitrate int64) ports.EncoderSettings
}

// Request describes one export.
type Request struct {
	Source string
	Output string
	Config *crop.Configuration

	// Media describes the source. When Duration or size is missing the
	// source is probed.
	Media ports.MediaInfo
}

// Result describes a finished export.
type Result struct {
	Output   string
	Strategy State
	Mode     crop.Mode
	Media    ports.MediaInfo
	Encoder  ports.EncoderSettings
	Filter   string    `json:",omitempty"`
	Region   crop.Rect // normalized crop of the output
	Segments []Segment `json:",omitempty"`
}

// Orchestrator runs exports. An Orchestrator may be reused but runs one
// export at a time.
type Orchestrator struct {
	staticStage pipeline.Stage[pipeline.StaticInput, pipeline.StaticResult]
	concatStage pipeline.Stage[pipeline.ConcatInput, pipeline.ConcatResult]
	transcoder  ports.Transcoder
	renderer    ports.MaskRenderer
	prober      ports.MediaProber
	encoders    EncoderSelector
	fs          ports.FileSystem
	sink        ports.DebugSink
	logger      ports.Logger
	tempDir     string

	run   sync.Mutex
	mu    sync.Mutex
	state State
	// OnState is called after every state change.
	OnState func(State)
}

// New creates a new Orchestrator.
func New(
	staticStage pipeline.Stage[pipeline.StaticInput, pipeline.StaticResult],
	concatStage pipeline.Stage[pipeline.ConcatInput, pipeline.ConcatResult],
	transcoder ports.Transcoder,
	renderer ports.MaskRenderer,
	prober ports.MediaProber,
	encoders EncoderSelector,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
	tempDir string,
) *Orchestrator {
	return &Orchestrator{
		staticStage: staticStage,
		concatStage: concatStage,
		transcoder:  transcoder,
		renderer:    renderer,
		prober:      prober,
		encoders:    encoders,
		fs:          fs,
		sink:        sink,
		logger:      logger.WithComponent("export"),
		tempDir:     tempDir,
		state:       StateIdle,
	}
}

// State returns the current phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	if o.OnState != nil {
		o.OnState(s)
	}
}

// Run executes an export. progress receives values in [0, 1]; 1 is only
// reported after the output has been written. The export is written next to
// Output and renamed into place on success, so a failed export leaves an
// existing file at Output untouched. Temporary files are removed on every
// exit path.
func (o *Orchestrator) Run(ctx context.Context, req Request, progress ports.ProgressFunc) (result Result, err error) {
	o.run.Lock()
	defer o.run.Unlock()

	o.setState(StateIdle)
	if req.Source == "" || req.Output == "" {
		o.setState(StateFailed)
		return Result{}, ErrNoSource
	}
	if o.fs.SameFile(req.Source, req.Output) {
		o.setState(StateFailed)
		return Result{}, fmt.Errorf("%w: %s", ErrOutputIsSource, req.Output)
	}
	if req.Config == nil {
		req.Config = crop.NewConfiguration(crop.ModeRectangle, crop.DefaultState())
	}

	temp := &pipeline.TempFiles{}
	defer func() {
		if cerr := temp.Cleanup(o.fs); cerr != nil {
			o.logger.Warn("Failed to remove temporary files: %v", cerr)
		}
		if err == nil {
			o.setState(StateDone)
			return
		}
		if ctx.Err() != nil {
			o.setState(StateCancelled)
			err = fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
			return
		}
		o.setState(StateFailed)
	}()

	media, err := o.media(req)
	if err != nil {
		return Result{}, err
	}

	final := req.Output
	req.Output = o.fs.TempPath(filepath.Dir(final), ".cropaway", filepath.Ext(final))
	temp.Add(req.Output)

	report := clampedProgress(progress)
	cfg := req.Config.Clamp()
	encoder := o.encoders.Select(ctx, media.Bitrate)
	result = Result{
		Output:  final,
		Mode:    cfg.Mode,
		Media:   media,
		Encoder: encoder,
	}

	o.logger.Info("Exporting %s (%dx%d, %.2fs) in %s mode", req.Source, media.Width, media.Height, media.Duration, cfg.Mode)

	switch {
	case !cfg.HasActiveKeyframes():
		err = o.runSinglePass(ctx, req, cfg, media, encoder, temp, report, &result)
	case cfg.Mode == crop.ModeRectangle:
		err = o.runExpression(ctx, req, cfg, media, encoder, report, &result)
	default:
		err = o.runSegmented(ctx, req, cfg, media, encoder, temp, report, &result)
	}
	if err != nil {
		o.logger.Error("Export failed: %v", err)
		return result, err
	}
	if err = o.fs.Rename(req.Output, final); err != nil {
		o.logger.Error("Export failed: %v", err)
		return result, fmt.Errorf("move output into place: %w", err)
	}

	if progress != nil {
		progress(1)
	}
	o.logger.Info("Output saved to %s", final)
	return result, nil
}

func (o *Orchestrator) media(req Request) (ports.MediaInfo, error) {
	media := req.Media
	if media.Duration > 0 && media.Width > 0 && media.Height > 0 {
		return media, nil
	}
	probed, err := o.prober.Probe(req.Source)
	if err != nil {
		return media, fmt.Errorf("probe: %w", err)
	}
	if media.Duration <= 0 {
		media.Duration = probed.Duration
	}
	if media.Width <= 0 || media.Height <= 0 {
		media.Width, media.Height = probed.Width, probed.Height
	}
	if media.Bitrate <= 0 {
		media.Bitrate = probed.Bitrate
	}
	if media.Codec == "" {
		media.Codec = probed.Codec
	}
	return media, nil
}

func (o *Orchestrator) runSinglePass(ctx context.Context, req Request, cfg *crop.Configuration, media ports.MediaInfo, encoder ports.EncoderSettings, temp *pipeline.TempFiles, report ports.ProgressFunc, result *Result) error {
	o.setState(StateSinglePass)
	result.Strategy = StateSinglePass
	o.savePlan(result)

	res, err := o.staticStage.Execute(ctx, pipeline.StaticInput{
		Source:   req.Source,
		Output:   req.Output,
		Mode:     cfg.Mode,
		State:    cfg.Static,
		Media:    media,
		Encoder:  encoder,
		Temp:     temp,
		Progress: report,
	})
	if err != nil {
		return fmt.Errorf("static stage: %w", err)
	}
	result.Filter = res.Filter
	result.Region = res.Region
	return nil
}

func (o *Orchestrator) runExpression(ctx context.Context, req Request, cfg *crop.Configuration, media ports.MediaInfo, encoder ports.EncoderSettings, report ports.ProgressFunc, result *Result) error {
	o.setState(StateExpression)
	result.Strategy = StateExpression
	result.Filter = expression.CropFilter(cfg.Keyframes(), media.Width, media.Height)
	o.savePlan(result)

	o.logger.Debug("Crop filter: %s", result.Filter)
	err := o.transcoder.Transcode(ctx, ports.TranscodeJob{
		Input:         req.Source,
		Output:        req.Output,
		Filter:        result.Filter,
		Encoder:       encoder,
		TotalDuration: media.Duration,
	}, report)
	if err != nil {
		return fmt.Errorf("transcode: %w", err)
	}
	return nil
}

func (o *Orchestrator) runSegmented(ctx context.Context, req Request, cfg *crop.Configuration, media ports.MediaInfo, encoder ports.EncoderSettings, temp *pipeline.TempFiles, report ports.ProgressFunc, result *Result) error {
	o.setState(StateSegmentedMasked)
	result.Strategy = StateSegmentedMasked

	keyframes := cfg.Keyframes()
	segments := PlanSegments(keyframes, media.Duration)
	if len(segments) == 0 {
		return ErrNoSegmentsProduced
	}
	states := SampleStates(keyframes, segments, cfg.Mode)

	// Every segment is cropped to the same region so the parts can be
	// joined without re-encoding.
	masks := make([]*image.Gray, len(segments))
	var region crop.Rect
	for i, state := range states {
		mask, err := o.renderer.Render(state.Shape(cfg.Mode), media.Width, media.Height)
		if err != nil {
			return fmt.Errorf("render segment %d: %w", i, err)
		}
		masks[i] = mask
		segments[i].Region = rle.FromGray(mask).BoundingBox()
		region = Union(region, segments[i].Region)
	}
	result.Region = region
	result.Segments = segments
	o.savePlan(result)
	o.logger.Info("Exporting %d segments", len(segments))

	total := segments[len(segments)-1].End - segments[0].Start
	done := 0.0
	paths := make([]string, 0, len(segments))
	for i := range segments {
		if err := ctx.Err(); err != nil {
			return err
		}
		seg := &segments[i]
		seg.Path = o.fs.TempPath(o.tempDir, fmt.Sprintf("segment-%03d", i), ".mp4")
		temp.Add(seg.Path)

		base, weight := done/total, seg.Duration()/total
		o.logger.Debug("Segment %d/%d: %.3fs-%.3fs", i+1, len(segments), seg.Start, seg.End)
		res, err := o.staticStage.Execute(ctx, pipeline.StaticInput{
			Source:   req.Source,
			Output:   seg.Path,
			Start:    seg.Start,
			Duration: seg.Duration(),
			Mode:     cfg.Mode,
			State:    states[i],
			Media:    media,
			Encoder:  encoder,
			Region:   region,
			Mask:     masks[i],
			Index:    i,
			Temp:     temp,
			Progress: func(f float64) { report(base + f*weight) },
		})
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		if i == 0 {
			result.Filter = res.Filter
		}
		paths = append(paths, seg.Path)
		done += seg.Duration()
		report(done / total)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	o.setState(StateConcatenating)
	if _, err := o.concatStage.Execute(ctx, pipeline.ConcatInput{
		Segments: paths,
		Output:   req.Output,
		Temp:     temp,
	}); err != nil {
		return fmt.Errorf("concat stage: %w", err)
	}
	return nil
}

func (o *Orchestrator) savePlan(result *Result) {
	if !o.sink.Enabled() {
		return
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err == nil {
		err = o.sink.SavePlanJSON(data)
	}
	if err != nil {
		o.logger.Warn("Failed to save export plan: %v", err)
	}
}

// clampedProgress forwards fractions clamped to [0, 0.99] and never lets
// reported progress move backwards.
func clampedProgress(fn ports.ProgressFunc) ports.ProgressFunc {
	if fn == nil {
		return func(float64) {}
	}
	var mu sync.Mutex
	last := 0.0
	return func(f float64) {
		f = min(max(f, 0), maxRunningProgress)
		mu.Lock()
		if f < last {
			f = last
		}
		last = f
		mu.Unlock()
		fn(f)
	}
}

// IsCancelled reports whether err came from a cancelled export.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}
