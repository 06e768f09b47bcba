// Package interpolate resolves keyframed crop state at arbitrary timestamps.
package interpolate

import "github.com/user/cropaway/pkg/crop"

// Interpolate returns the crop state at source time t.
//
// Keyframes are ordered by timestamp first (stable on ties). Before the first
// and after the last keyframe the boundary keyframe is returned unchanged.
// Between two keyframes the easing of the earlier keyframe applies to
// geometry, while payloads and freehand points switch at the midpoint in time.
func Interpolate(keyframes []crop.Keyframe, t float64, mode crop.Mode) crop.State {
	if len(keyframes) == 0 {
		return crop.DefaultState()
	}

	sorted := crop.SortKeyframes(keyframes)
	first := sorted[0]
	last := sorted[len(sorted)-1]

	if t <= first.Timestamp {
		return Resolve(first, mode)
	}
	if t >= last.Timestamp {
		return Resolve(last, mode)
	}

	prev, next := Bracket(sorted, t)
	span := next.Timestamp - prev.Timestamp
	if span == 0 {
		return Resolve(prev, mode)
	}

	raw := (t - prev.Timestamp) / span
	a, b := Resolve(prev, mode), Resolve(next, mode)
	s := Blend(a, b, Ease(prev.Interpolation, raw))
	// Payloads switch at the time midpoint whatever the easing.
	s.Payload = a.Payload.Hold(b.Payload, raw)
	s.FreehandPoints = holdPoints(a.FreehandPoints, b.FreehandPoints, raw)
	return s
}

// Bracket returns the keyframes around t in a sorted list, such that
// prev.Timestamp < t <= next.Timestamp. t must lie strictly inside the list span.
func Bracket(sorted []crop.Keyframe, t float64) (prev, next crop.Keyframe) {
	for i := 1; i < len(sorted); i++ {
		if t <= sorted[i].Timestamp {
			return sorted[i-1], sorted[i]
		}
	}
	n := len(sorted)
	return sorted[n-2], sorted[n-1]
}

// Resolve converts a keyframe to a state. In AI mode a detected bounding box
// with positive width replaces the rectangle crop.
func Resolve(kf crop.Keyframe, mode crop.Mode) crop.State {
	g := kf.Geometry
	if mode == crop.ModeAI && g.AIBox.Width > 0 {
		g.Rect = g.AIBox
	}
	return crop.State{
		Geometry:       g,
		Payload:        kf.Payload,
		FreehandPoints: kf.FreehandPoints,
	}
}

// Blend mixes two states at ratio t. Geometry is interpolated linearly;
// payloads and point lists switch from a to b at the midpoint.
func Blend(a, b crop.State, t float64) crop.State {
	return crop.State{
		Geometry:       a.Geometry.Lerp(b.Geometry, t),
		Payload:        a.Payload.Hold(b.Payload, t),
		FreehandPoints: holdPoints(a.FreehandPoints, b.FreehandPoints, t),
	}
}

func holdPoints(a, b []crop.Point, t float64) []crop.Point {
	if t < 0.5 {
		return a
	}
	return b
}
