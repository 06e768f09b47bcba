package pipeline

import (
	"image"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/ports"
)

// =============================================================================
// Static Stage Types
// =============================================================================

// StaticInput describes one transcode with a fixed crop state. It covers a
// whole clip or one segment of a segmented export.
type StaticInput struct {
	Source string
	Output string

	// Start and Duration select the source range in seconds; zero Duration
	// runs to the end of the source.
	Start    float64
	Duration float64

	Mode  crop.Mode
	State crop.State
	Media ports.MediaInfo

	Encoder ports.EncoderSettings

	// Region fixes the output crop of masked modes so that every segment of
	// an export has the same dimensions. Empty means the mask's bounding box.
	Region crop.Rect

	// Mask is a pre-rendered mask for masked modes. Nil renders one from State.
	Mask *image.Gray

	// Index identifies the segment in debug output.
	Index int

	Temp     *TempFiles
	Progress ports.ProgressFunc
}

// StaticResult contains what the static stage produced.
type StaticResult struct {
	Output   string
	Filter   string
	Region   crop.Rect // normalized crop applied to the output
	MaskPath string    // empty for rectangle crops
}

// =============================================================================
// Concat Stage Types
// =============================================================================

// ConcatInput lists segment files in playback order.
type ConcatInput struct {
	Segments []string
	Output   string
	Temp     *TempFiles
}

// ConcatResult contains the joined output.
type ConcatResult struct {
	Output       string
	ManifestPath string
}
