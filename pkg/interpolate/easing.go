package interpolate

import "github.com/user/cropaway/pkg/crop"

// Ease maps a raw ratio in [0, 1] through the easing curve of mode.
func Ease(mode crop.InterpolationMode, t float64) float64 {
	switch mode {
	case crop.InterpolationEaseIn:
		return t * t
	case crop.InterpolationEaseOut:
		return 1 - (1-t)*(1-t)
	case crop.InterpolationEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	case crop.InterpolationHold:
		return 0
	default:
		return t
	}
}
