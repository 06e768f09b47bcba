// Package rle decodes and encodes run-length encoded segmentation masks.
//
// Three upstream wire formats are recognised inside a {"size":[h,w],"counts":...}
// envelope: fal.ai row-major (start, length) pairs, COCO compressed strings and
// COCO integer counts. A fourth, legacy format (zlib-compressed binary runs) is
// accepted for payloads that are not JSON.
package rle

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/user/cropaway/pkg/crop"
)

// Mask is a dense single-channel visibility mask. Pix holds Width*Height
// bytes in row-major order; 255 is visible and 0 is suppressed.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask creates an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// Full creates an all-visible mask.
func Full(width, height int) *Mask {
	m := NewMask(width, height)
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

// At returns the value at (x, y).
func (m *Mask) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Foreground returns the number of visible pixels.
func (m *Mask) Foreground() int {
	n := 0
	for _, v := range m.Pix {
		if v >= 128 {
			n++
		}
	}
	return n
}

// Gray returns an image view sharing the mask pixels.
func (m *Mask) Gray() *image.Gray {
	return &image.Gray{
		Pix:    m.Pix,
		Stride: m.Width,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// FromGray copies a grayscale image into a binary mask (threshold 128).
func FromGray(img *image.Gray) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if img.GrayAt(b.Min.X+x, b.Min.Y+y).Y >= 128 {
				m.Pix[y*m.Width+x] = 255
			}
		}
	}
	return m
}

// Resize resamples the mask with nearest-neighbour mapping.
func (m *Mask) Resize(width, height int) *Mask {
	if width == m.Width && height == m.Height {
		return m
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m.Gray(), m.Gray().Bounds(), draw.Src, nil)
	return &Mask{Width: width, Height: height, Pix: dst.Pix}
}

// BoundingBox returns the normalized bounds of the visible pixels.
// An empty mask reports the full frame.
func (m *Mask) BoundingBox() crop.Rect {
	minX, minY := m.Width, m.Height
	maxX, maxY := -1, -1
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			if v < 128 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return crop.Rect{X: 0, Y: 0, Width: 1, Height: 1}
	}
	w, h := float64(m.Width), float64(m.Height)
	return crop.Rect{
		X:      float64(minX) / w,
		Y:      float64(minY) / h,
		Width:  float64(maxX-minX+1) / w,
		Height: float64(maxY-minY+1) / h,
	}
}
