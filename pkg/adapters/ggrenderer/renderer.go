// Package ggrenderer rasterizes crop shapes into visibility masks using the gg library.
package ggrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/ports"
	"github.com/user/cropaway/pkg/rle"
)

// ErrInvalidSize is returned for non-positive output dimensions.
var ErrInvalidSize = errors.New("ggrenderer: invalid mask size")

// Renderer implements ports.MaskRenderer using the gg library.
type Renderer struct {
	logger ports.Logger
}

// New creates a new Renderer.
func New(logger ports.Logger) *Renderer {
	return &Renderer{logger: logger.WithComponent("mask")}
}

// Render draws shape into a width x height mask. Visible pixels are 255.
func (r *Renderer) Render(shape crop.Shape, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	switch s := shape.(type) {
	case crop.RectShape:
		dc := newContext(width, height)
		x, y, w, h := s.Rect.Pixels(width, height)
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
		return alpha(dc), nil

	case crop.CircleShape:
		dc := newContext(width, height)
		radius := s.Radius * float64(min(width, height))
		dc.DrawEllipse(s.Center.X*float64(width), s.Center.Y*float64(height), radius, radius)
		dc.Fill()
		return alpha(dc), nil

	case crop.FreehandShape:
		return r.renderFreehand(s, width, height), nil

	case crop.AIShape:
		return r.renderAI(s, width, height), nil

	default:
		return nil, fmt.Errorf("ggrenderer: unsupported shape %T", shape)
	}
}

// EncodePNG encodes a mask as PNG.
func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderFreehand(s crop.FreehandShape, width, height int) *image.Gray {
	vertices, err := crop.DecodePath(s.PathData)
	if err != nil {
		r.logger.Warn("Freehand path could not be decoded, using point list: %v", err)
		vertices = nil
	}
	if len(vertices) < 3 {
		vertices = vertices[:0]
		for _, p := range s.Points {
			vertices = append(vertices, crop.BezierVertex{Position: p})
		}
	}
	if len(vertices) < 3 {
		return image.NewGray(image.Rect(0, 0, width, height))
	}

	fw, fh := float64(width), float64(height)
	px := func(p crop.Point) (float64, float64) { return p.X * fw, p.Y * fh }

	dc := newContext(width, height)
	dc.MoveTo(px(vertices[0].Position))
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		edgeTo(dc, a, b, px)
	}
	dc.ClosePath()
	dc.Fill()
	return alpha(dc)
}

// edgeTo draws one path edge. Handles on both ends give a cubic curve; a
// handle on one end is treated as a quadratic control point and elevated to
// a cubic (control points at 2/3 towards it); no handles give a line.
func edgeTo(dc *gg.Context, a, b crop.BezierVertex, px func(crop.Point) (float64, float64)) {
	ax, ay := px(a.Position)
	bx, by := px(b.Position)

	switch {
	case a.Out != nil && b.In != nil:
		c1x, c1y := px(add(a.Position, *a.Out))
		c2x, c2y := px(add(b.Position, *b.In))
		dc.CubicTo(c1x, c1y, c2x, c2y, bx, by)

	case a.Out != nil || b.In != nil:
		var q crop.Point
		if a.Out != nil {
			q = add(a.Position, *a.Out)
		} else {
			q = add(b.Position, *b.In)
		}
		qx, qy := px(q)
		dc.CubicTo(
			ax+(qx-ax)*2/3, ay+(qy-ay)*2/3,
			bx+(qx-bx)*2/3, by+(qy-by)*2/3,
			bx, by,
		)

	default:
		dc.LineTo(bx, by)
	}
}

func (r *Renderer) renderAI(s crop.AIShape, width, height int) *image.Gray {
	if len(s.MaskRLE) == 0 {
		return full(width, height)
	}
	m, format, err := rle.Decode(s.MaskRLE)
	if err != nil {
		r.logger.Warn("AI mask could not be decoded, showing full frame: %v", err)
		return full(width, height)
	}
	if m == nil {
		return full(width, height)
	}
	if m.Width != width || m.Height != height {
		r.logger.Debug("Resampling %s mask %dx%d to %dx%d", format, m.Width, m.Height, width, height)
		m = m.Resize(width, height)
	}
	return rle.Smooth(m)
}

func newContext(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	return dc
}

// alpha converts the drawn coverage of dc into a grayscale mask.
func alpha(dc *gg.Context) *image.Gray {
	src, ok := dc.Image().(*image.RGBA)
	b := dc.Image().Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if !ok {
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = row[4*x+3]
		}
	}
	return out
}

func full(width, height int) *image.Gray {
	return rle.Full(width, height).Gray()
}

func add(p, offset crop.Point) crop.Point {
	return crop.Point{X: p.X + offset.X, Y: p.Y + offset.Y}
}

var _ ports.MaskRenderer = (*Renderer)(nil)
