package crop

import "fmt"

// Mode is the active crop mode of a configuration.
type Mode string

const (
	ModeRectangle Mode = "rectangle"
	ModeCircle    Mode = "circle"
	ModeFreehand  Mode = "freehand"
	ModeAI        Mode = "ai"
)

// ParseMode parses a crop mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRectangle, ModeCircle, ModeFreehand, ModeAI:
		return Mode(s), nil
	case "":
		return ModeRectangle, nil
	default:
		return "", fmt.Errorf("unknown crop mode %q", s)
	}
}

// Shape is the mode-specific payload of a resolved crop state.
// It is a closed set: RectShape, CircleShape, FreehandShape and AIShape.
type Shape interface {
	Mode() Mode
	isShape()
}

// RectShape is a rectangular crop.
type RectShape struct {
	Rect Rect
}

// CircleShape is a circular crop. Radius is relative to min(width, height).
type CircleShape struct {
	Center Point
	Radius float64
}

// FreehandShape is a closed Bézier mask. PathData holds serialized vertices;
// Points is the plain polygon used when PathData is absent or undecodable.
type FreehandShape struct {
	PathData []byte
	Points   []Point
}

// AIShape is a segmentation mask. A nil MaskRLE means fully visible.
type AIShape struct {
	MaskRLE []byte
	Box     Rect
}

func (RectShape) Mode() Mode     { return ModeRectangle }
func (CircleShape) Mode() Mode   { return ModeCircle }
func (FreehandShape) Mode() Mode { return ModeFreehand }
func (AIShape) Mode() Mode       { return ModeAI }

func (RectShape) isShape()     {}
func (CircleShape) isShape()   {}
func (FreehandShape) isShape() {}
func (AIShape) isShape()       {}
