package crop

import (
	"math"
	"sort"
)

// KeyframeTolerance is the window, in seconds, within which two keyframes share a timestamp.
const KeyframeTolerance = 0.001

// Keyframe is a snapshot of crop state at one source timestamp.
type Keyframe struct {
	Timestamp      float64           `json:"timestamp" yaml:"timestamp"`
	Geometry       Geometry          `json:"geometry" yaml:"geometry"`
	Payload        Payload           `json:"payload" yaml:"payload"`
	FreehandPoints []Point           `json:"freehand_points,omitempty" yaml:"freehand_points,omitempty"`
	PromptPoints   []PromptPoint     `json:"prompt_points,omitempty" yaml:"prompt_points,omitempty"`
	Interpolation  InterpolationMode `json:"interpolation" yaml:"interpolation"`
}

// SameInstant reports whether two timestamps fall within KeyframeTolerance.
func SameInstant(a, b float64) bool {
	return math.Abs(a-b) < KeyframeTolerance
}

// SortKeyframes returns a copy of keyframes ordered by timestamp. Ties keep their input order.
func SortKeyframes(keyframes []Keyframe) []Keyframe {
	out := make([]Keyframe, len(keyframes))
	copy(out, keyframes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Retime maps every timestamp through fn and returns a new ordered collection.
// Keyframes that land on the same instant collapse to the later one in the input.
func Retime(keyframes []Keyframe, fn func(float64) float64) []Keyframe {
	out := make([]Keyframe, 0, len(keyframes))
	for _, kf := range keyframes {
		kf.Timestamp = fn(kf.Timestamp)
		out = upsert(out, kf)
	}
	return out
}

// upsert returns a new slice with kf inserted in timestamp order,
// replacing any keyframe at the same instant.
func upsert(keyframes []Keyframe, kf Keyframe) []Keyframe {
	out := make([]Keyframe, 0, len(keyframes)+1)
	inserted := false
	for _, existing := range keyframes {
		switch {
		case SameInstant(existing.Timestamp, kf.Timestamp):
			if !inserted {
				out = append(out, kf)
				inserted = true
			}
		case !inserted && kf.Timestamp < existing.Timestamp:
			out = append(out, kf, existing)
			inserted = true
		default:
			out = append(out, existing)
		}
	}
	if !inserted {
		out = append(out, kf)
	}
	return out
}
