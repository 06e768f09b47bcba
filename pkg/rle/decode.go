package rle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Format identifies the wire encoding a mask was decoded from.
type Format int

const (
	FormatNone Format = iota
	FormatFalPairs
	FormatCOCOCompressed
	FormatCOCOCounts
	FormatLegacy
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatFalPairs:
		return "fal-pairs"
	case FormatCOCOCompressed:
		return "coco-compressed"
	case FormatCOCOCounts:
		return "coco-counts"
	case FormatLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// maxPixels bounds the size of any decoded mask (8K UHD).
const maxPixels = 7680 * 4320

type envelope struct {
	Size   []int           `json:"size"`
	Counts json.RawMessage `json:"counts"`
}

// Decode decodes an RLE payload into a dense mask.
//
// A nil or empty payload is not an error: it returns a nil mask and FormatNone,
// meaning the frame is fully visible. Formats are tried in a fixed order:
// fal.ai pairs, COCO compressed, COCO integer counts, then the legacy binary format.
func Decode(data []byte) (*Mask, Format, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, FormatNone, nil
	}

	if trimmed[0] != '{' {
		m, err := decodeLegacy(trimmed)
		if err != nil {
			return nil, FormatNone, fmt.Errorf("%w: %w", ErrMalformedMask, err)
		}
		return m, FormatLegacy, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, FormatNone, fmt.Errorf("%w: %v", ErrMalformedMask, err)
	}
	h, w, err := env.dimensions()
	if err != nil {
		return nil, FormatNone, err
	}

	counts := bytes.TrimSpace(env.Counts)
	if len(counts) == 0 || bytes.Equal(counts, []byte("null")) {
		return nil, FormatNone, fmt.Errorf("%w: missing counts", ErrMalformedMask)
	}

	switch counts[0] {
	case '"':
		var s string
		if err := json.Unmarshal(counts, &s); err != nil {
			return nil, FormatNone, fmt.Errorf("%w: %v", ErrMalformedMask, err)
		}
		if m, ok := decodeFalPairs(s, h, w); ok {
			return m, FormatFalPairs, nil
		}
		runs, err := decodeCompressedString(s)
		if err != nil {
			return nil, FormatNone, fmt.Errorf("%w: %v", ErrMalformedMask, err)
		}
		m, err := fromColumnMajorCounts(runs, h, w)
		if err != nil {
			return nil, FormatNone, err
		}
		return m, FormatCOCOCompressed, nil

	case '[':
		var runs []int
		if err := json.Unmarshal(counts, &runs); err != nil {
			return nil, FormatNone, fmt.Errorf("%w: %v", ErrMalformedMask, err)
		}
		m, err := fromColumnMajorCounts(runs, h, w)
		if err != nil {
			return nil, FormatNone, err
		}
		return m, FormatCOCOCounts, nil
	}

	return nil, FormatNone, fmt.Errorf("%w: unsupported counts type", ErrMalformedMask)
}

func (e envelope) dimensions() (h, w int, err error) {
	if len(e.Size) != 2 {
		return 0, 0, fmt.Errorf("%w: %w: size must be [h, w]", ErrMalformedMask, ErrInvalidSize)
	}
	h, w = e.Size[0], e.Size[1]
	if h <= 0 || w <= 0 || h*w > maxPixels {
		return 0, 0, fmt.Errorf("%w: %w: %dx%d", ErrMalformedMask, ErrInvalidSize, w, h)
	}
	return h, w, nil
}
