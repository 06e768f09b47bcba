package expression

import (
	"fmt"
	"math"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/interpolate"
)

// CropChannels holds the four expressions driving an ffmpeg crop filter.
type CropChannels struct {
	X string `json:"x"`
	Y string `json:"y"`
	W string `json:"w"`
	H string `json:"h"`
}

// Channels synthesizes crop channels in pixels for a video of the given size.
// Keyframes are resolved as rectangles with their edge insets applied.
// ffmpeg evaluates the crop w and h expressions once at filter init, so only
// x and y animate per frame.
func Channels(keyframes []crop.Keyframe, width, height int) CropChannels {
	fw, fh := float64(width), float64(height)
	rect := func(kf crop.Keyframe) crop.Rect {
		return interpolate.Resolve(kf, crop.ModeRectangle).Geometry.EffectiveRect()
	}
	return CropChannels{
		X: Synthesize(keyframes, func(kf crop.Keyframe) float64 { return rect(kf).X * fw }, Options{}),
		Y: Synthesize(keyframes, func(kf crop.Keyframe) float64 { return rect(kf).Y * fh }, Options{}),
		W: Synthesize(keyframes, func(kf crop.Keyframe) float64 { return rect(kf).Width * fw }, Options{Even: true}),
		H: Synthesize(keyframes, func(kf crop.Keyframe) float64 { return rect(kf).Height * fh }, Options{Even: true}),
	}
}

// Filter renders the channels as an ffmpeg crop filter.
func (c CropChannels) Filter() string {
	return fmt.Sprintf("crop=w='%s':h='%s':x='%s':y='%s'", c.W, c.H, c.X, c.Y)
}

// CropFilter is shorthand for Channels(...).Filter().
func CropFilter(keyframes []crop.Keyframe, width, height int) string {
	return Channels(keyframes, width, height).Filter()
}

// StaticCropFilter returns a fixed crop filter for rect. Width and height are
// rounded down to even values of at least 2 and the origin is kept in frame.
func StaticCropFilter(rect crop.Rect, width, height int) string {
	x, y, w, h := PixelRect(rect, width, height)
	return fmt.Sprintf("crop=%d:%d:%d:%d", w, h, x, y)
}

// PixelRect denormalizes rect to whole pixels with even dimensions.
func PixelRect(rect crop.Rect, width, height int) (x, y, w, h int) {
	fx, fy, fw, fh := rect.Pixels(width, height)
	w = evenFloor(fw, width)
	h = evenFloor(fh, height)
	x = clampInt(int(math.Round(fx)), 0, width-w)
	y = clampInt(int(math.Round(fy)), 0, height-h)
	return x, y, w, h
}

func evenFloor(v float64, limit int) int {
	n := int(math.Floor(v/2)) * 2
	if top := limit - limit%2; n > top {
		n = top
	}
	if n < 2 {
		n = 2
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
