// Package encoderselect picks the video encoder for an export.
//
// Hardware encoders are tried in priority order with a short synthetic
// encode; the first one that works is used. libx264 is the fallback.
// Probe results are cached for the lifetime of the process.
package encoderselect

import (
	"context"
	"strconv"
	"sync"

	"github.com/user/cropaway/pkg/ports"
)

// Software is the encoder used when no hardware encoder works.
const Software = "libx264"

// Defaults for the software encoder.
const (
	DefaultCRF    = 18
	DefaultPreset = "medium"
)

// DefaultBitrate is the hardware target when the source bitrate is unknown.
const DefaultBitrate int64 = 8_000_000

// DefaultPriority lists hardware H.264 encoders, most preferred first.
var DefaultPriority = []string{
	"h264_videotoolbox",
	"h264_nvenc",
	"h264_qsv",
	"h264_amf",
}

// Prober runs a synthetic encode. ports.Transcoder satisfies it.
type Prober interface {
	ProbeEncoder(ctx context.Context, name string) error
}

// Options configures a Selector.
type Options struct {
	// Priority overrides DefaultPriority. An empty list disables hardware.
	Priority []string
	// Hardware enables probing. When false the software encoder is always used.
	Hardware bool

	CRF    int
	Preset string

	// Scope separates cache entries, typically the ffmpeg binary path.
	Scope string

	Logger ports.Logger
}

// Result is the outcome of probing one encoder.
type Result struct {
	Name      string
	Available bool
	Err       error
}

// Selector chooses encoders.
type Selector struct {
	prober Prober
	opts   Options
	logger ports.Logger
}

var (
	cacheMu sync.Mutex
	cache   = map[string]error{}
)

// ResetCache forgets all probe results.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[string]error{}
}

// New creates a Selector.
func New(prober Prober, opts Options) *Selector {
	if opts.Priority == nil {
		opts.Priority = DefaultPriority
	}
	if opts.CRF <= 0 {
		opts.CRF = DefaultCRF
	}
	if opts.Preset == "" {
		opts.Preset = DefaultPreset
	}
	s := &Selector{prober: prober, opts: opts}
	if opts.Logger != nil {
		s.logger = opts.Logger.WithComponent("encoder")
	}
	return s
}

// Select returns the settings for the first working encoder. sourceBitrate
// sets the floor of the hardware constant bitrate.
func (s *Selector) Select(ctx context.Context, sourceBitrate int64) ports.EncoderSettings {
	if s.opts.Hardware {
		for _, name := range s.opts.Priority {
			if ctx.Err() != nil {
				break
			}
			if err := s.probe(ctx, name); err != nil {
				s.debug("Encoder %s unavailable: %v", name, err)
				continue
			}
			s.info("Using hardware encoder %s", name)
			return HardwareSettings(name, sourceBitrate)
		}
	}
	s.info("Using software encoder %s", Software)
	return SoftwareSettings(s.opts.CRF, s.opts.Preset)
}

// Probe checks every encoder in the priority list plus the software encoder.
func (s *Selector) Probe(ctx context.Context) []Result {
	names := append(append([]string(nil), s.opts.Priority...), Software)
	results := make([]Result, 0, len(names))
	for _, name := range names {
		err := s.probe(ctx, name)
		results = append(results, Result{Name: name, Available: err == nil, Err: err})
	}
	return results
}

func (s *Selector) probe(ctx context.Context, name string) error {
	key := s.opts.Scope + "\x00" + name
	cacheMu.Lock()
	err, ok := cache[key]
	cacheMu.Unlock()
	if ok {
		return err
	}

	err = s.prober.ProbeEncoder(ctx, name)
	if ctx.Err() != nil {
		// an interrupted probe says nothing about the encoder
		return ctx.Err()
	}

	cacheMu.Lock()
	cache[key] = err
	cacheMu.Unlock()
	return err
}

func (s *Selector) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Selector) info(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// HardwareSettings returns constant-bitrate settings at or above the source bitrate.
func HardwareSettings(name string, sourceBitrate int64) ports.EncoderSettings {
	rate := sourceBitrate
	if rate <= 0 {
		rate = DefaultBitrate
	}
	r := strconv.FormatInt(rate, 10)
	return ports.EncoderSettings{
		Name:        name,
		PixelFormat: "yuv420p",
		Args:        []string{"-b:v", r, "-minrate", r, "-maxrate", r, "-bufsize", strconv.FormatInt(2*rate, 10)},
		Hardware:    true,
	}
}

// SoftwareSettings returns quality-based libx264 settings.
func SoftwareSettings(crf int, preset string) ports.EncoderSettings {
	return ports.EncoderSettings{
		Name:        Software,
		PixelFormat: "yuv420p",
		Args:        []string{"-crf", strconv.Itoa(crf), "-preset", preset},
	}
}
