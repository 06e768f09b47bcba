// Package crop defines the crop configuration model shared by the export pipeline.
package crop

// Point is a normalized (0-1) position in the video frame.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is a normalized (0-1) rectangle in the video frame.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Lerp linearly interpolates between r and o.
func (r Rect) Lerp(o Rect, t float64) Rect {
	return Rect{
		X:      lerp(r.X, o.X, t),
		Y:      lerp(r.Y, o.Y, t),
		Width:  lerp(r.Width, o.Width, t),
		Height: lerp(r.Height, o.Height, t),
	}
}

// Pixels denormalizes the rectangle against a frame size.
func (r Rect) Pixels(width, height int) (x, y, w, h float64) {
	return r.X * float64(width), r.Y * float64(height), r.Width * float64(width), r.Height * float64(height)
}

// EdgeInsets trims each edge of the crop rectangle by a fraction of its size.
type EdgeInsets struct {
	Top    float64 `json:"top" yaml:"top"`
	Left   float64 `json:"left" yaml:"left"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Right  float64 `json:"right" yaml:"right"`
}

// Lerp linearly interpolates between e and o.
func (e EdgeInsets) Lerp(o EdgeInsets, t float64) EdgeInsets {
	return EdgeInsets{
		Top:    lerp(e.Top, o.Top, t),
		Left:   lerp(e.Left, o.Left, t),
		Bottom: lerp(e.Bottom, o.Bottom, t),
		Right:  lerp(e.Right, o.Right, t),
	}
}

// BezierVertex is one vertex of a freehand mask path.
// In and Out are control-handle offsets relative to Position; nil means no handle.
type BezierVertex struct {
	Position Point  `json:"position" yaml:"position"`
	In       *Point `json:"in,omitempty" yaml:"in,omitempty"`
	Out      *Point `json:"out,omitempty" yaml:"out,omitempty"`
}

// PromptPoint is a segmentation prompt recorded with an AI mask.
type PromptPoint struct {
	Point      `yaml:",inline"`
	Foreground bool `json:"foreground" yaml:"foreground"`
}

// InterpolationMode selects the easing applied when leaving a keyframe.
type InterpolationMode string

const (
	InterpolationLinear    InterpolationMode = "linear"
	InterpolationEaseIn    InterpolationMode = "ease-in"
	InterpolationEaseOut   InterpolationMode = "ease-out"
	InterpolationEaseInOut InterpolationMode = "ease-in-out"
	InterpolationHold      InterpolationMode = "hold"
)

// ParseInterpolationMode parses a mode name. Unknown names map to linear.
func ParseInterpolationMode(s string) InterpolationMode {
	switch InterpolationMode(s) {
	case InterpolationEaseIn, InterpolationEaseOut, InterpolationEaseInOut, InterpolationHold:
		return InterpolationMode(s)
	default:
		return InterpolationLinear
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
