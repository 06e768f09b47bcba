package orchestrator

import (
	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/interpolate"
)

// minSegment is the shortest range worth a transcode, in seconds.
const minSegment = crop.KeyframeTolerance

// Segment is one range of a segmented export, exported at a constant crop.
type Segment struct {
	Index  int       `json:"index"`
	Start  float64   `json:"start"`
	End    float64   `json:"end"`
	Sample float64   `json:"sample"`
	Region crop.Rect `json:"region"`
	Path   string    `json:"path,omitempty"`
}

// Duration returns the length of the segment in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// PlanSegments splits [0, duration] at the keyframe timestamps. Each segment
// is sampled at its midpoint. Ranges shorter than a millisecond are dropped.
// A non-positive duration ends the plan at the last keyframe.
func PlanSegments(keyframes []crop.Keyframe, duration float64) []Segment {
	sorted := crop.SortKeyframes(keyframes)
	if len(sorted) == 0 {
		return nil
	}
	end := duration
	if end <= 0 {
		end = sorted[len(sorted)-1].Timestamp
	}

	bounds := []float64{0}
	for _, kf := range sorted {
		if kf.Timestamp > 0 && kf.Timestamp < end {
			bounds = append(bounds, kf.Timestamp)
		}
	}
	bounds = append(bounds, end)

	var segments []Segment
	for i := 1; i < len(bounds); i++ {
		start, stop := bounds[i-1], bounds[i]
		if stop-start < minSegment {
			continue
		}
		segments = append(segments, Segment{
			Index:  len(segments),
			Start:  start,
			End:    stop,
			Sample: (start + stop) / 2,
		})
	}
	return segments
}

// SampleStates returns the interpolated crop state of every segment.
func SampleStates(keyframes []crop.Keyframe, segments []Segment, mode crop.Mode) []crop.State {
	states := make([]crop.State, len(segments))
	for i, seg := range segments {
		states[i] = interpolate.Interpolate(keyframes, seg.Sample, mode)
	}
	return states
}

// Union returns the smallest rect containing a and b. Empty rects are ignored.
func Union(a, b crop.Rect) crop.Rect {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X+a.Width, b.X+b.Width), max(a.Y+a.Height, b.Y+b.Height)
	return crop.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
