package mocks

import (
	"image"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/ports"
)

// MaskRenderer is a mock implementation of ports.MaskRenderer.
// By default it returns a mask that is visible everywhere.
type MaskRenderer struct {
	RenderFunc func(shape crop.Shape, width, height int) (*image.Gray, error)

	// Recorded calls for verification
	Shapes []crop.Shape
}

func (m *MaskRenderer) Render(shape crop.Shape, width, height int) (*image.Gray, error) {
	m.Shapes = append(m.Shapes, shape)
	if m.RenderFunc != nil {
		return m.RenderFunc(shape, width, height)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img, nil
}

func (m *MaskRenderer) EncodePNG(img image.Image) ([]byte, error) {
	return []byte("png"), nil
}

var _ ports.MaskRenderer = (*MaskRenderer)(nil)
