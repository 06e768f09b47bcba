package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cropaway/pkg/crop"
)

func TestParseCropDocument_YAML(t *testing.T) {
	cfg, err := ParseCropDocument([]byte(`
mode: circle
keyframes_enabled: true
static:
  geometry:
    circle_radius: 0.25
keyframes:
  - timestamp: 3
    geometry: {circle_center: {x: 0.8, y: 0.5}, circle_radius: 0.2}
  - timestamp: 1
    interpolation: ease-in
    geometry: {circle_center: {x: 0.2, y: 0.5}, circle_radius: 0.2}
`))
	require.NoError(t, err)

	assert.Equal(t, crop.ModeCircle, cfg.Mode)
	assert.True(t, cfg.HasActiveKeyframes())
	assert.Equal(t, 0.25, cfg.Static.Geometry.CircleRadius)
	assert.Equal(t, crop.Point{X: 0.5, Y: 0.5}, cfg.Static.Geometry.CircleCenter, "defaults kept for omitted fields")

	kfs := cfg.Keyframes()
	require.Len(t, kfs, 2)
	assert.Equal(t, 1.0, kfs[0].Timestamp)
	assert.Equal(t, crop.InterpolationEaseIn, kfs[0].Interpolation)
	assert.Equal(t, crop.InterpolationLinear, kfs[1].Interpolation)
	assert.Equal(t, 0.8, kfs[1].Geometry.CircleCenter.X)
}

func TestParseCropDocument_JSONWithPayloads(t *testing.T) {
	cfg, err := ParseCropDocument([]byte(`{
  "mode": "ai",
  "keyframes_enabled": true,
  "keyframes": [
    {"timestamp": 0, "mask_rle": {"size": [2, 2], "counts": "0 2"}},
    {"timestamp": 2, "mask_rle": "{\"size\":[2,2],\"counts\":[1,3]}"},
    {"timestamp": 4, "path": [{"position": {"x": 0.1, "y": 0.1}}, {"position": {"x": 0.9, "y": 0.1}, "in": {"x": -0.1, "y": 0}}]}
  ],
  "prompt_points": [{"x": 0.5, "y": 0.4, "foreground": true}]
}`))
	require.NoError(t, err)

	assert.Equal(t, crop.ModeAI, cfg.Mode)
	kfs := cfg.Keyframes()
	require.Len(t, kfs, 3)
	assert.JSONEq(t, `{"size":[2,2],"counts":"0 2"}`, string(kfs[0].Payload.MaskRLE))
	assert.Equal(t, `{"size":[2,2],"counts":[1,3]}`, string(kfs[1].Payload.MaskRLE))

	vertices, err := crop.DecodePath(kfs[2].Payload.PathData)
	require.NoError(t, err)
	require.Len(t, vertices, 2)
	assert.Nil(t, vertices[0].In)
	assert.Equal(t, &crop.Point{X: -0.1, Y: 0}, vertices[1].In)

	require.Len(t, cfg.PromptPoints, 1)
	assert.True(t, cfg.PromptPoints[0].Foreground)
	assert.Equal(t, 0.4, cfg.PromptPoints[0].Y)
}

func TestParseCropDocument_ClampsGeometry(t *testing.T) {
	cfg, err := ParseCropDocument([]byte(`
static:
  geometry:
    rect: {x: -0.5, y: 0.2, width: 3, height: 0.5}
`))
	require.NoError(t, err)
	assert.Equal(t, crop.ModeRectangle, cfg.Mode)
	r := cfg.Static.Geometry.Rect
	assert.Equal(t, 0.0, r.X)
	assert.LessOrEqual(t, r.X+r.Width, 1.0)
}

func TestParseCropDocument_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown mode":       "mode: triangle",
		"negative timestamp": "keyframes: [{timestamp: -1}]",
		"bad mask":           "keyframes: [{timestamp: 1, mask_rle: [1, 2]}]",
		"bad yaml":           "mode: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCropDocument([]byte(doc))
			assert.Error(t, err)
		})
	}
}
