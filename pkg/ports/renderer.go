package ports

import (
	"image"

	"github.com/user/cropaway/pkg/crop"
)

// MaskRenderer rasterizes crop shapes into single-channel masks.
// Visible pixels are 255 and hidden pixels are 0.
type MaskRenderer interface {
	Render(shape crop.Shape, width, height int) (*image.Gray, error)

	// EncodePNG encodes a mask for use as an ffmpeg input.
	EncodePNG(img image.Image) ([]byte, error)
}
