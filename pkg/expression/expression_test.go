package expression

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cropaway/pkg/crop"
)

type point struct {
	ts    float64
	value float64
	mode  crop.InterpolationMode
}

func keyframes(points ...point) []crop.Keyframe {
	out := make([]crop.Keyframe, 0, len(points))
	for _, p := range points {
		mode := p.mode
		if mode == "" {
			mode = crop.InterpolationLinear
		}
		out = append(out, crop.Keyframe{
			Timestamp:     p.ts,
			Geometry:      crop.Geometry{Rect: crop.Rect{X: p.value, Width: 0.5, Height: 0.5}},
			Interpolation: mode,
		})
	}
	return out
}

func rectX(kf crop.Keyframe) float64 { return kf.Geometry.Rect.X }

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name   string
		points []point
		want   string
	}{
		{"empty", nil, "0"},
		{"single", []point{{2, 40, ""}}, "40"},
		{"linear", []point{{0, 0, ""}, {10, 100, ""}}, "if(lt(t,0),0,if(lt(t,10),0+10*(t-0),100))"},
		{"decreasing", []point{{1, 100, ""}, {3, 50, ""}}, "if(lt(t,1),100,if(lt(t,3),100+(-25)*(t-1),50))"},
		{"flat", []point{{0, 100.4, ""}, {10, 100.45, ""}}, "if(lt(t,0),100.4,if(lt(t,10),100,100.45))"},
		{"hold", []point{{0, 10, crop.InterpolationHold}, {4, 90, ""}}, "if(lt(t,0),10,if(lt(t,4),10,90))"},
		{
			"skips coincident pair",
			[]point{{0, 0, ""}, {0.0005, 50, ""}, {10, 100, ""}},
			"if(lt(t,0.0005),0,if(lt(t,10),50+5.00025*(t-0.0005),100))",
		},
		{"unsorted", []point{{10, 100, ""}, {0, 0, ""}}, "if(lt(t,0),0,if(lt(t,10),0+10*(t-0),100))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synthesize(keyframes(tt.points...), rectX, Options{}))
		})
	}
}

func TestSynthesize_EvaluatesPiecewiseLinear(t *testing.T) {
	expr := Synthesize(keyframes(point{0, 0, ""}, point{10, 100, ""}, point{20, 40, ""}), rectX, Options{})

	cases := map[float64]float64{-3: 0, 0: 0, 5: 50, 10: 100, 15: 70, 20: 40, 99: 40}
	for ts, want := range cases {
		got, err := Evaluate(expr, ts)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9, "t=%v", ts)
	}
}

func TestSynthesize_EvenDimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		var points []point
		ts := rng.Float64() * 3
		n := 2 + rng.Intn(5)
		for i := 0; i < n; i++ {
			points = append(points, point{ts, rng.Float64() * 1920, ""})
			ts += rng.Float64() * 4
		}
		kfs := keyframes(points...)
		expr := Synthesize(kfs, rectX, Options{Even: true})
		require.True(t, strings.HasPrefix(expr, "floor(("))

		span := kfs[len(kfs)-1].Timestamp - kfs[0].Timestamp
		for step := 0; step <= 100; step++ {
			at := kfs[0].Timestamp + span*float64(step)/100
			v, err := Evaluate(expr, at)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Equal(t, v, math.Trunc(v), "integer at t=%v", at)
			assert.Equal(t, 0.0, math.Mod(v, 2), "even at t=%v", at)
		}
	}
}

func TestCropFilter(t *testing.T) {
	kfs := []crop.Keyframe{
		{Timestamp: 0, Geometry: crop.Geometry{Rect: crop.Rect{X: 0, Y: 0, Width: 0.5, Height: 0.5}}, Interpolation: crop.InterpolationLinear},
		{Timestamp: 10, Geometry: crop.Geometry{Rect: crop.Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}}, Interpolation: crop.InterpolationLinear},
	}
	ch := Channels(kfs, 1920, 1080)

	x, err := Evaluate(ch.X, 5)
	require.NoError(t, err)
	assert.InDelta(t, 480, x, 1e-9)
	y, err := Evaluate(ch.Y, 5)
	require.NoError(t, err)
	assert.InDelta(t, 270, y, 1e-9)
	w, err := Evaluate(ch.W, 5)
	require.NoError(t, err)
	assert.Equal(t, 960.0, w)
	h, err := Evaluate(ch.H, 5)
	require.NoError(t, err)
	assert.Equal(t, 540.0, h)

	filter := CropFilter(kfs, 1920, 1080)
	assert.True(t, strings.HasPrefix(filter, "crop=w='floor(("))
	assert.Contains(t, filter, ":x='if(lt(t,0),0,")
}

func TestCropFilter_AppliesInsets(t *testing.T) {
	kfs := []crop.Keyframe{{
		Timestamp: 0,
		Geometry: crop.Geometry{
			Rect:   crop.Rect{X: 0, Y: 0, Width: 1, Height: 1},
			Insets: crop.EdgeInsets{Left: 0.25, Top: 0.5},
		},
	}}
	ch := Channels(kfs, 100, 100)
	assert.Equal(t, "25", ch.X)
	assert.Equal(t, "50", ch.Y)
	assert.Equal(t, "floor((75)/2)*2", ch.W)
}

func TestStaticCropFilter(t *testing.T) {
	tests := []struct {
		name string
		rect crop.Rect
		w, h int
		want string
	}{
		{"centered", crop.Rect{X: 0.1, Y: 0.1, Width: 0.5, Height: 0.5}, 1920, 1080, "crop=960:540:192:108"},
		{"odd size", crop.Rect{X: 0, Y: 0, Width: 0.3335, Height: 1}, 1921, 1081, "crop=640:1080:0:0"},
		{"kept in frame", crop.Rect{X: 0.9, Y: 0, Width: 0.5, Height: 0.5}, 100, 100, "crop=50:50:50:0"},
		{"minimum", crop.Rect{}, 100, 100, "crop=2:2:0:0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StaticCropFilter(tt.rect, tt.w, tt.h))
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1+2*3", 7},
		{"-(2+3)*2", -10},
		{"10/4", 2.5},
		{"floor(7/2)*2", 6},
		{"max(1,min(5,3))", 3},
		{"if(lt(t,2),1,2)", 2},
		{"if(0,1,if(1,4,5))", 4},
		{"3+(-1.5)*(t-1)", 0},
		{" t * 2 ", 6},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.expr, 3)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	for _, expr := range []string{"", "1+", "foo(1)", "if(1,2)", "(1", "1)", "2 $ 3", "1..2"} {
		_, err := Evaluate(expr, 0)
		assert.ErrorIs(t, err, ErrSyntax, expr)
	}
}
