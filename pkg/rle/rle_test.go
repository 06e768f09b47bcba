package rle

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cropaway/pkg/crop"
)

func patternMask(w, h int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x*7+y*3)%5 < 2 || (x > w/3 && x < w/2) {
				m.Pix[y*w+x] = 255
			}
		}
	}
	return m
}

func TestDecode_FalPairsScenario(t *testing.T) {
	m, format, err := Decode([]byte(`{"size":[1,20],"counts":"0 4 10 2"}`))
	require.NoError(t, err)
	assert.Equal(t, FormatFalPairs, format)
	require.Equal(t, 20, m.Width)
	require.Equal(t, 1, m.Height)

	for i, v := range m.Pix {
		want := uint8(0)
		if i <= 3 || i == 10 || i == 11 {
			want = 255
		}
		assert.Equalf(t, want, v, "pixel %d", i)
	}
}

func TestDecode_EmptyPayloadIsFullyVisible(t *testing.T) {
	for _, in := range [][]byte{nil, {}, []byte("  "), []byte("null")} {
		m, format, err := Decode(in)
		require.NoError(t, err)
		assert.Nil(t, m)
		assert.Equal(t, FormatNone, format)
	}
}

func TestDecode_FormatPriority(t *testing.T) {
	// Digit-only pair strings stay fal.ai even though every symbol is also in the COCO alphabet.
	m, format, err := Decode([]byte(`{"size":[2,2],"counts":"1 1"}`))
	require.NoError(t, err)
	assert.Equal(t, FormatFalPairs, format)
	assert.Equal(t, []uint8{0, 255, 0, 0}, m.Pix)

	// A single token is not a pair list and is read as COCO compressed.
	m, format, err = Decode([]byte(`{"size":[2,2],"counts":"13"}`))
	require.NoError(t, err)
	assert.Equal(t, FormatCOCOCompressed, format)
	assert.Equal(t, []uint8{0, 255, 255, 255}, m.Pix)
}

func TestDecode_FalPairsNoiseTolerance(t *testing.T) {
	// Two of four pairs are valid: accepted.
	m, format, err := Decode([]byte(`{"size":[1,10],"counts":"0 2 -1 3 4 0 8 5"}`))
	require.NoError(t, err)
	assert.Equal(t, FormatFalPairs, format)
	assert.Equal(t, []uint8{255, 255, 0, 0, 0, 0, 0, 0, 255, 255}, m.Pix)

	// One of three pairs valid: rejected, and the string is not COCO either.
	_, _, err = Decode([]byte(`{"size":[1,10],"counts":"0 2 -1 3 4 -2"}`))
	assert.ErrorIs(t, err, ErrMalformedMask)
}

func TestDecode_FalPairsResolutionGuess(t *testing.T) {
	m, format, err := Decode([]byte(`{"size":[9,16],"counts":"0 2073600"}`))
	require.NoError(t, err)
	assert.Equal(t, FormatFalPairs, format)
	assert.Equal(t, 16, m.Width)
	assert.Equal(t, 9, m.Height)
	assert.Equal(t, 16*9, m.Foreground())
}

func TestDecode_COCOCountsColumnMajor(t *testing.T) {
	// 2 rows x 3 columns; column-major indices 1 and 2 are foreground.
	m, format, err := Decode([]byte(`{"size":[2,3],"counts":[1,2,3]}`))
	require.NoError(t, err)
	assert.Equal(t, FormatCOCOCounts, format)
	assert.Equal(t, []uint8{
		0, 255, 0,
		255, 0, 0,
	}, m.Pix)
}

func TestDecode_COCOCountsSumCheck(t *testing.T) {
	_, _, err := Decode([]byte(`{"size":[2,3],"counts":[1]}`))
	assert.ErrorIs(t, err, ErrMalformedMask)

	_, _, err = Decode([]byte(`{"size":[2,3],"counts":[1,20]}`))
	assert.ErrorIs(t, err, ErrMalformedMask)
}

func TestDecode_Malformed(t *testing.T) {
	inputs := []string{
		`{"size":[2],"counts":[1,2]}`,
		`{"size":[0,3],"counts":[1,2]}`,
		`{"size":[2,3]}`,
		`{"size":[2,3],"counts":{"a":1}}`,
		`{"size":[2,3],"counts":"~~~"}`,
		`{not json`,
		`plain text payload`,
	}
	for _, in := range inputs {
		_, _, err := Decode([]byte(in))
		assert.ErrorIsf(t, err, ErrMalformedMask, "input %s", in)
	}
}

func TestCompressedString(t *testing.T) {
	counts, err := decodeCompressedString("32")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, counts)

	encoded := encodeCompressedString([]int{0, 10, 5, 3})
	assert.Equal(t, "0:5I", encoded)
	counts, err = decodeCompressedString(encoded)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 5, 3}, counts)

	_, err = decodeCompressedString("3\x7f")
	assert.Error(t, err)

	_, err = decodeCompressedString("P")
	assert.ErrorIs(t, err, errTruncated)
}

func TestRoundTrip(t *testing.T) {
	masks := []*Mask{
		patternMask(37, 23),
		NewMask(8, 4),
		Full(5, 9),
		patternMask(1, 50),
	}
	for _, m := range masks {
		decoded, format, err := Decode(Encode(m))
		require.NoError(t, err)
		assert.Equal(t, FormatCOCOCompressed, format)
		assert.Equal(t, m, decoded)

		decoded, format, err = Decode(EncodeCounts(m))
		require.NoError(t, err)
		assert.Equal(t, FormatCOCOCounts, format)
		assert.Equal(t, m, decoded)

		legacy, err := EncodeLegacy(m)
		require.NoError(t, err)
		decoded, format, err = Decode(legacy)
		require.NoError(t, err)
		assert.Equal(t, FormatLegacy, format)
		assert.Equal(t, m, decoded)
	}
}

func TestEncodeFalPairs(t *testing.T) {
	m := patternMask(30, 10)
	decoded, format, err := Decode(EncodeFalPairs(m))
	require.NoError(t, err)
	assert.Equal(t, FormatFalPairs, format)
	assert.Equal(t, m, decoded)
}

func TestLegacy_LongRuns(t *testing.T) {
	m := Full(300, 300)
	m.Pix[0] = 0
	legacy, err := EncodeLegacy(m)
	require.NoError(t, err)

	decoded, _, err := Decode(legacy)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestLegacy_RejectsOversizedHeader(t *testing.T) {
	header := make([]byte, legacyHeaderSize)
	binary.LittleEndian.PutUint16(header[1:3], 60000)
	binary.LittleEndian.PutUint16(header[3:5], 60000)

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(header)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	payload := base64.StdEncoding.EncodeToString(buf.Bytes())

	m, _, err := Decode([]byte(payload))
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMalformedMask)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestMask_BoundingBox(t *testing.T) {
	m := NewMask(10, 4)
	assert.Equal(t, crop.Rect{Width: 1, Height: 1}, m.BoundingBox())

	m.Pix[1*10+2] = 255
	m.Pix[2*10+6] = 255
	bb := m.BoundingBox()
	assert.InDelta(t, 0.2, bb.X, 1e-9)
	assert.InDelta(t, 0.25, bb.Y, 1e-9)
	assert.InDelta(t, 0.5, bb.Width, 1e-9)
	assert.InDelta(t, 0.5, bb.Height, 1e-9)
}

func TestMask_Resize(t *testing.T) {
	m := NewMask(2, 2)
	m.Pix[0] = 255 // top-left quadrant

	r := m.Resize(4, 4)
	assert.Equal(t, []uint8{
		255, 255, 0, 0,
		255, 255, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, r.Pix)
	assert.Same(t, m, m.Resize(2, 2))
}

func TestSmooth(t *testing.T) {
	m := NewMask(60, 60)
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			m.Pix[y*60+x] = 255
		}
	}
	img := Smooth(m)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Greater(t, img.GrayAt(30, 30).Y, uint8(250))
	assert.Less(t, img.GrayAt(2, 2).Y, uint8(5))

	// The source mask is left untouched.
	assert.Equal(t, uint8(255), m.At(30, 30))
	assert.Equal(t, 0.5, SmoothingSigma(60, 60))
	assert.Equal(t, 1.44, SmoothingSigma(3840, 2160))
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "fal-pairs", FormatFalPairs.String())
	assert.Equal(t, "coco-compressed", FormatCOCOCompressed.String())
	assert.Equal(t, "coco-counts", FormatCOCOCounts.String())
	assert.Equal(t, "legacy", FormatLegacy.String())
	assert.Equal(t, "none", FormatNone.String())
}
