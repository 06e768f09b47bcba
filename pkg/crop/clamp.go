package crop

// ClampGeometry forces geometry into the unit frame.
func ClampGeometry(g Geometry) Geometry {
	return Geometry{
		Rect:         ClampRect(g.Rect),
		Insets:       g.Insets.clamped(),
		CircleCenter: Point{X: clamp01(g.CircleCenter.X), Y: clamp01(g.CircleCenter.Y)},
		CircleRadius: clamp01(g.CircleRadius),
		AIBox:        ClampRect(g.AIBox),
	}
}

// ClampRect keeps the origin inside the frame and the size within the remaining space.
func ClampRect(r Rect) Rect {
	x := clamp01(r.X)
	y := clamp01(r.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  clamp(r.Width, 0, 1-x),
		Height: clamp(r.Height, 0, 1-y),
	}
}

func (e EdgeInsets) clamped() EdgeInsets {
	return EdgeInsets{
		Top:    clamp01(e.Top),
		Left:   clamp01(e.Left),
		Bottom: clamp01(e.Bottom),
		Right:  clamp01(e.Right),
	}
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
