package rle

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// SmoothingSigma returns the blur radius used for mask edges at the given size.
func SmoothingSigma(width, height int) float64 {
	return math.Max(0.5, float64(min(width, height))/1500)
}

// Smooth returns an anti-aliased copy of m. It softens edges only; the
// visible region is unchanged apart from partial coverage along its border.
func Smooth(m *Mask) *image.Gray {
	blurred := imaging.Blur(m.Gray(), SmoothingSigma(m.Width, m.Height))
	out := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		src := blurred.Pix[y*blurred.Stride : y*blurred.Stride+4*m.Width]
		dst := out.Pix[y*out.Stride : y*out.Stride+m.Width]
		for x := range dst {
			dst[x] = src[4*x]
		}
	}
	return out
}
