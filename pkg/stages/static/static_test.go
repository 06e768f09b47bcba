package static

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/mocks"
	"github.com/user/cropaway/pkg/pipeline"
	"github.com/user/cropaway/pkg/ports"
)

type fixture struct {
	stage      *Stage
	transcoder *mocks.Transcoder
	renderer   *mocks.MaskRenderer
	fs         *mocks.FileSystem
	sink       *mocks.DebugSink
}

func newFixture() fixture {
	fs := mocks.NewFileSystem()
	f := fixture{
		transcoder: &mocks.Transcoder{FS: fs},
		renderer:   &mocks.MaskRenderer{},
		fs:         fs,
		sink:       mocks.NewDebugSink(true),
	}
	f.stage = NewStage(f.transcoder, f.renderer, f.fs, f.sink, mocks.NewLogger(), "/work")
	return f
}

var media = ports.MediaInfo{Width: 1920, Height: 1080, Duration: 12}

func TestStage_Rectangle(t *testing.T) {
	f := newFixture()
	state := crop.DefaultState()
	state.Geometry.Rect = crop.Rect{X: 0.1, Y: 0.1, Width: 0.5, Height: 0.5}

	var progress []float64
	result, err := f.stage.Execute(context.Background(), pipeline.StaticInput{
		Source:   "in.mp4",
		Output:   "out.mp4",
		Mode:     crop.ModeRectangle,
		State:    state,
		Media:    media,
		Encoder:  ports.EncoderSettings{Name: "libx264", PixelFormat: "yuv420p"},
		Progress: func(p float64) { progress = append(progress, p) },
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(f.renderer.Shapes) != 0 {
		t.Error("rectangle crops must not render a mask")
	}
	if len(f.transcoder.TranscodeCalls) != 1 {
		t.Fatalf("expected one transcode, got %d", len(f.transcoder.TranscodeCalls))
	}
	job := f.transcoder.TranscodeCalls[0]
	if job.Filter != "crop=960:540:192:108" {
		t.Errorf("unexpected filter %q", job.Filter)
	}
	if job.MaskPath != "" || result.MaskPath != "" {
		t.Error("rectangle crops must not use a mask input")
	}
	if job.TotalDuration != 12 {
		t.Errorf("progress should be normalized to the source duration, got %v", job.TotalDuration)
	}
	if len(progress) == 0 || progress[len(progress)-1] != 1 {
		t.Errorf("expected progress forwarded to completion, got %v", progress)
	}
	if result.Output != "out.mp4" {
		t.Errorf("unexpected output %q", result.Output)
	}
}

func TestStage_MaskedSegment(t *testing.T) {
	f := newFixture()
	f.renderer.RenderFunc = func(shape crop.Shape, w, h int) (*image.Gray, error) {
		// Left half visible.
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w/2; x++ {
				img.Pix[y*img.Stride+x] = 255
			}
		}
		return img, nil
	}

	temp := &pipeline.TempFiles{}
	result, err := f.stage.Execute(context.Background(), pipeline.StaticInput{
		Source:   "in.mp4",
		Output:   "seg.mp4",
		Start:    2,
		Duration: 3,
		Mode:     crop.ModeCircle,
		State:    crop.DefaultState(),
		Media:    media,
		Index:    4,
		Temp:     temp,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, ok := f.renderer.Shapes[0].(crop.CircleShape); !ok {
		t.Errorf("expected a circle shape, got %T", f.renderer.Shapes[0])
	}
	if result.MaskPath == "" || temp.Paths()[0] != result.MaskPath {
		t.Errorf("mask file must be tracked for cleanup, got %v", temp.Paths())
	}
	if _, ok := f.fs.GetFile(result.MaskPath); !ok {
		t.Error("mask file was not written")
	}
	if f.sink.Masks[4] == nil {
		t.Error("mask was not sent to the debug sink")
	}

	job := f.transcoder.TranscodeCalls[0]
	if job.Start != 2 || job.Duration != 3 || job.TotalDuration != 3 {
		t.Errorf("unexpected range %+v", job)
	}
	if job.MaskPath != result.MaskPath {
		t.Error("mask must be passed to the transcoder")
	}
	if !strings.Contains(job.Filter, "crop=960:1080:0:0") {
		t.Errorf("expected crop to the mask bounding box, got %q", job.Filter)
	}
	if !strings.HasSuffix(job.Filter, "format=yuv420p[out]") {
		t.Errorf("unexpected filter tail %q", job.Filter)
	}
}

func TestStage_FixedRegion(t *testing.T) {
	f := newFixture()
	region := crop.Rect{X: 0.25, Y: 0, Width: 0.5, Height: 1}

	result, err := f.stage.Execute(context.Background(), pipeline.StaticInput{
		Source: "in.mp4", Output: "seg.mp4",
		Mode: crop.ModeAI, State: crop.DefaultState(), Media: media, Region: region,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Region != region {
		t.Errorf("region = %+v, want %+v", result.Region, region)
	}
	if !strings.Contains(result.Filter, "crop=960:1080:480:0") {
		t.Errorf("unexpected filter %q", result.Filter)
	}
}

func TestStage_UnknownSize(t *testing.T) {
	f := newFixture()
	_, err := f.stage.Execute(context.Background(), pipeline.StaticInput{Mode: crop.ModeRectangle, State: crop.DefaultState()})
	if !errors.Is(err, ErrUnknownSize) {
		t.Errorf("expected ErrUnknownSize, got %v", err)
	}
}

func TestStage_TranscodeError(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")
	f.transcoder.TranscodeFunc = func(context.Context, ports.TranscodeJob, ports.ProgressFunc) error { return boom }

	_, err := f.stage.Execute(context.Background(), pipeline.StaticInput{
		Source: "in.mp4", Output: "out.mp4", Mode: crop.ModeRectangle, State: crop.DefaultState(), Media: media,
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped transcode error, got %v", err)
	}
}

func TestMaskFilter(t *testing.T) {
	got := MaskFilter(crop.Rect{X: 0, Y: 0, Width: 1, Height: 1}, 640, 360, "")
	want := "[1:v]format=gray,scale=640:360[mask];" +
		"[0:v]split[base][fg];" +
		"[base]drawbox=c=black:t=fill[bg];" +
		"[fg]format=yuva420p[fga];" +
		"[fga][mask]alphamerge=shortest=1[cut];" +
		"[bg][cut]overlay=format=auto:shortest=1,crop=640:360:0:0,format=yuv420p[out]"
	if got != want {
		t.Errorf("MaskFilter =\n%s\nwant\n%s", got, want)
	}
}

func TestStage_PrerenderedMask(t *testing.T) {
	f := newFixture()
	mask := image.NewGray(image.Rect(0, 0, 1920, 1080))

	_, err := f.stage.Execute(context.Background(), pipeline.StaticInput{
		Source: "in.mp4", Output: "seg.mp4",
		Mode: crop.ModeCircle, State: crop.DefaultState(), Media: media, Mask: mask,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(f.renderer.Shapes) != 0 {
		t.Error("a supplied mask must not be rendered again")
	}
	if f.sink.Masks[0] != mask {
		t.Error("supplied mask was not forwarded to the debug sink")
	}
}

func TestStage_MaskedWholeClipEndsWithSource(t *testing.T) {
	f := newFixture()

	_, err := f.stage.Execute(context.Background(), pipeline.StaticInput{
		Source: "in.mp4", Output: "out.mp4",
		Mode: crop.ModeCircle, State: crop.DefaultState(), Media: media,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	job := f.transcoder.TranscodeCalls[0]
	if job.Duration != 0 {
		t.Fatalf("whole-clip export should not be time-limited, got %v", job.Duration)
	}
	// Without a -t bound the looped mask input must not keep the graph alive.
	for _, merge := range []string{"alphamerge", "overlay"} {
		i := strings.Index(job.Filter, merge)
		if i < 0 {
			t.Fatalf("filter has no %s: %q", merge, job.Filter)
		}
		opts := job.Filter[i:]
		if end := strings.IndexAny(opts, ",["); end >= 0 {
			opts = opts[:end]
		}
		if !strings.Contains(opts, "shortest=1") {
			t.Errorf("%s must end with the source, got %q", merge, opts)
		}
	}
}
