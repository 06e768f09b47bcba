package ggrenderer

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/mocks"
	"github.com/user/cropaway/pkg/ports"
)

func visible(img *image.Gray, x, y int) bool {
	return img.GrayAt(x, y).Y >= 128
}

func TestRenderer_Rectangle(t *testing.T) {
	r := New(mocks.NewLogger())
	img, err := r.Render(crop.RectShape{Rect: crop.Rect{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}}, 100, 100)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("expected 100x100, got %dx%d", b.Dx(), b.Dy())
	}
	if img.GrayAt(50, 50).Y != 255 || img.GrayAt(26, 74).Y != 255 {
		t.Error("expected the inside of the rectangle to be fully visible")
	}
	if img.GrayAt(10, 10).Y != 0 || img.GrayAt(80, 50).Y != 0 {
		t.Error("expected the outside of the rectangle to be hidden")
	}
}

func TestRenderer_CircleUsesShorterSide(t *testing.T) {
	r := New(mocks.NewLogger())
	img, err := r.Render(crop.CircleShape{Center: crop.Point{X: 0.5, Y: 0.5}, Radius: 0.25}, 200, 100)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Radius is 0.25 * min(200, 100) = 25 pixels around (100, 50).
	if !visible(img, 100, 50) || !visible(img, 120, 50) || !visible(img, 100, 70) {
		t.Error("expected points within 25px of the center to be visible")
	}
	if visible(img, 130, 50) || visible(img, 100, 80) || visible(img, 5, 5) {
		t.Error("expected points beyond 25px of the center to be hidden")
	}
}

func TestRenderer_FreehandPolygon(t *testing.T) {
	r := New(mocks.NewLogger())
	shape := crop.FreehandShape{Points: []crop.Point{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.1}, {X: 0.5, Y: 0.9}}}
	img, err := r.Render(shape, 100, 100)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !visible(img, 50, 37) {
		t.Error("expected triangle centroid to be visible")
	}
	if visible(img, 5, 95) || visible(img, 95, 95) {
		t.Error("expected bottom corners to be hidden")
	}
}

func TestRenderer_FreehandPrefersBezierPath(t *testing.T) {
	r := New(mocks.NewLogger())
	path, err := crop.EncodePath([]crop.BezierVertex{
		{Position: crop.Point{X: 0.1, Y: 0.1}},
		{Position: crop.Point{X: 0.9, Y: 0.1}},
		{Position: crop.Point{X: 0.5, Y: 0.9}},
	})
	if err != nil {
		t.Fatal(err)
	}
	shape := crop.FreehandShape{
		PathData: path,
		Points:   []crop.Point{{X: 0, Y: 0}, {X: 0.05, Y: 0}, {X: 0, Y: 0.05}},
	}

	img, err := r.Render(shape, 100, 100)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !visible(img, 50, 37) {
		t.Error("expected the Bezier path to be rendered")
	}
	if visible(img, 1, 1) {
		t.Error("expected the point list to be ignored")
	}
}

func TestRenderer_FreehandOneSidedHandleBulges(t *testing.T) {
	r := New(mocks.NewLogger())
	square := func(out *crop.Point) crop.FreehandShape {
		path, err := crop.EncodePath([]crop.BezierVertex{
			{Position: crop.Point{X: 0.2, Y: 0.2}, Out: out},
			{Position: crop.Point{X: 0.8, Y: 0.2}},
			{Position: crop.Point{X: 0.8, Y: 0.8}},
			{Position: crop.Point{X: 0.2, Y: 0.8}},
		})
		if err != nil {
			t.Fatal(err)
		}
		return crop.FreehandShape{PathData: path}
	}

	flat, err := r.Render(square(nil), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	curved, err := r.Render(square(&crop.Point{X: 0.3, Y: -0.3}), 100, 100)
	if err != nil {
		t.Fatal(err)
	}

	// The top edge peaks at y = 0.05 when curved upwards.
	if visible(flat, 50, 10) {
		t.Error("straight edge should not cover y=10")
	}
	if !visible(curved, 50, 10) {
		t.Error("one-sided handle should bend the top edge outwards")
	}
}

func TestRenderer_FreehandNeedsThreeVertices(t *testing.T) {
	r := New(mocks.NewLogger())
	img, err := r.Render(crop.FreehandShape{Points: []crop.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}, 20, 20)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("expected an empty mask for fewer than three vertices")
		}
	}
}

func TestRenderer_AIWithoutMaskIsFullyVisible(t *testing.T) {
	r := New(mocks.NewLogger())
	img, err := r.Render(crop.AIShape{}, 16, 9)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, v := range img.Pix {
		if v != 255 {
			t.Fatal("expected a fully visible mask")
		}
	}
}

func TestRenderer_AIMalformedFallsBackAndWarns(t *testing.T) {
	log := mocks.NewLogger()
	r := New(log)
	img, err := r.Render(crop.AIShape{MaskRLE: []byte(`{"size":[2,2],"counts":[1,2,3,4,5,6]}`)}, 4, 4)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, v := range img.Pix {
		if v != 255 {
			t.Fatal("expected a fully visible fallback mask")
		}
	}
	if len(log.Messages(ports.LevelWarn)) != 1 {
		t.Errorf("expected one warning, got %v", log.Messages(ports.LevelWarn))
	}
}

func TestRenderer_AIMaskIsResampled(t *testing.T) {
	r := New(mocks.NewLogger())
	img, err := r.Render(crop.AIShape{MaskRLE: []byte(`{"size":[1,20],"counts":"0 4 10 2"}`)}, 40, 2)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 2 {
		t.Fatalf("expected 40x2, got %dx%d", b.Dx(), b.Dy())
	}
	for _, x := range []int{2, 5, 21, 22} {
		if !visible(img, x, 0) || !visible(img, x, 1) {
			t.Errorf("expected x=%d to be visible", x)
		}
	}
	for _, x := range []int{12, 15, 30, 38} {
		if visible(img, x, 0) {
			t.Errorf("expected x=%d to be hidden", x)
		}
	}
}

func TestRenderer_InvalidSize(t *testing.T) {
	r := New(mocks.NewLogger())
	if _, err := r.Render(crop.RectShape{}, 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New(mocks.NewLogger())
	img, err := r.Render(crop.RectShape{Rect: crop.Rect{Width: 1, Height: 0.5}}, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	gray, ok := decoded.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", decoded)
	}
	if gray.GrayAt(3, 1).Y != 255 || gray.GrayAt(3, 6).Y != 0 {
		t.Error("PNG contents do not match the mask")
	}
}
