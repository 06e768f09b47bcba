package crop

// Geometry holds the continuous crop fields. Every field is blended linearly.
type Geometry struct {
	Rect         Rect       `json:"rect" yaml:"rect"`
	Insets       EdgeInsets `json:"insets" yaml:"insets"`
	CircleCenter Point      `json:"circle_center" yaml:"circle_center"`
	CircleRadius float64    `json:"circle_radius" yaml:"circle_radius"`
	AIBox        Rect       `json:"ai_box" yaml:"ai_box"`
}

// Lerp blends g towards o. Empty rectangles blend as the zero rectangle.
func (g Geometry) Lerp(o Geometry, t float64) Geometry {
	return Geometry{
		Rect:   orZero(g.Rect).Lerp(orZero(o.Rect), t),
		Insets: g.Insets.Lerp(o.Insets, t),
		CircleCenter: Point{
			X: lerp(g.CircleCenter.X, o.CircleCenter.X, t),
			Y: lerp(g.CircleCenter.Y, o.CircleCenter.Y, t),
		},
		CircleRadius: lerp(g.CircleRadius, o.CircleRadius, t),
		AIBox:        orZero(g.AIBox).Lerp(orZero(o.AIBox), t),
	}
}

// EffectiveRect returns the crop rectangle trimmed by the edge insets.
func (g Geometry) EffectiveRect() Rect {
	in := g.Insets.clamped()
	horizontal := in.Left + in.Right
	if horizontal > 1 {
		horizontal = 1
	}
	vertical := in.Top + in.Bottom
	if vertical > 1 {
		vertical = 1
	}
	return Rect{
		X:      g.Rect.X + g.Rect.Width*in.Left,
		Y:      g.Rect.Y + g.Rect.Height*in.Top,
		Width:  g.Rect.Width * (1 - horizontal),
		Height: g.Rect.Height * (1 - vertical),
	}
}

func orZero(r Rect) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	return r
}

// Payload holds opaque per-keyframe blobs. They are never blended numerically.
type Payload struct {
	PathData []byte `json:"path_data,omitempty" yaml:"path_data,omitempty"`
	MaskRLE  []byte `json:"mask_rle,omitempty" yaml:"mask_rle,omitempty"`
}

// Hold returns p while t < 0.5 and o from the midpoint on.
func (p Payload) Hold(o Payload, t float64) Payload {
	if t < 0.5 {
		return p
	}
	return o
}

// State is a fully resolved crop state valid for one instant.
type State struct {
	Geometry       Geometry
	Payload        Payload
	FreehandPoints []Point
}

// DefaultState is the state used when no keyframes exist: a centered, near full-frame rectangle.
func DefaultState() State {
	return State{
		Geometry: Geometry{
			Rect:         Rect{X: 0.05, Y: 0.05, Width: 0.9, Height: 0.9},
			CircleCenter: Point{X: 0.5, Y: 0.5},
			CircleRadius: 0.4,
		},
	}
}

// Shape projects the state onto the fields relevant to mode.
func (s State) Shape(mode Mode) Shape {
	switch mode {
	case ModeCircle:
		return CircleShape{Center: s.Geometry.CircleCenter, Radius: s.Geometry.CircleRadius}
	case ModeFreehand:
		return FreehandShape{PathData: s.Payload.PathData, Points: s.FreehandPoints}
	case ModeAI:
		return AIShape{MaskRLE: s.Payload.MaskRLE, Box: s.Geometry.AIBox}
	default:
		return RectShape{Rect: s.Geometry.EffectiveRect()}
	}
}
