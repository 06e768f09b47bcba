package rle

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Legacy payloads are zlib-compressed, optionally base64-wrapped:
//
//	[start u8][height u16le][width u16le][runs u32le][run u16le ...]
//
// Runs alternate starting with the start value, row-major. Runs longer than
// 65535 are split with zero-length runs of the opposite value.
const (
	legacyHeaderSize = 9
	legacyMaxRun     = 0xFFFF
)

func decodeLegacy(data []byte) (*Mask, error) {
	raw := data
	if decoded, err := base64.StdEncoding.DecodeString(string(data)); err == nil {
		raw = decoded
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("legacy: %w", err)
	}
	defer zr.Close()

	limit := int64(legacyHeaderSize + 4*maxPixels)
	payload, err := io.ReadAll(io.LimitReader(zr, limit))
	if err != nil {
		return nil, fmt.Errorf("legacy: %w", err)
	}
	if len(payload) < legacyHeaderSize {
		return nil, errors.New("legacy: short header")
	}

	start := payload[0]
	h := int(binary.LittleEndian.Uint16(payload[1:3]))
	w := int(binary.LittleEndian.Uint16(payload[3:5]))
	runs := int(binary.LittleEndian.Uint32(payload[5:9]))
	if start > 1 || h == 0 || w == 0 {
		return nil, fmt.Errorf("legacy: bad header start=%d size=%dx%d", start, w, h)
	}
	if h*w > maxPixels {
		return nil, fmt.Errorf("legacy: %w: %dx%d", ErrInvalidSize, w, h)
	}

	m := NewMask(w, h)
	total := h * w
	value := start
	pos := 0
	offset := legacyHeaderSize
	for i := 0; i < runs && offset+2 <= len(payload); i++ {
		rl := int(binary.LittleEndian.Uint16(payload[offset : offset+2]))
		offset += 2
		if pos+rl > total {
			rl = total - pos
		}
		if value == 1 {
			for j := pos; j < pos+rl; j++ {
				m.Pix[j] = 255
			}
		}
		pos += rl
		value = 1 - value
	}
	return m, nil
}

// EncodeLegacy encodes m in the legacy binary format, base64-wrapped.
func EncodeLegacy(m *Mask) ([]byte, error) {
	if m.Width > legacyMaxRun || m.Height > legacyMaxRun {
		return nil, fmt.Errorf("%w: %dx%d exceeds legacy limits", ErrInvalidSize, m.Width, m.Height)
	}

	var start uint8
	if len(m.Pix) > 0 && m.Pix[0] >= 128 {
		start = 1
	}

	var runs []uint16
	appendRun := func(n int) {
		for n > legacyMaxRun {
			runs = append(runs, legacyMaxRun, 0)
			n -= legacyMaxRun
		}
		runs = append(runs, uint16(n))
	}
	current := start == 1
	run := 0
	for _, v := range m.Pix {
		on := v >= 128
		if on != current {
			appendRun(run)
			run = 0
			current = on
		}
		run++
	}
	appendRun(run)

	body := make([]byte, legacyHeaderSize, legacyHeaderSize+2*len(runs))
	body[0] = start
	binary.LittleEndian.PutUint16(body[1:3], uint16(m.Height))
	binary.LittleEndian.PutUint16(body[3:5], uint16(m.Width))
	binary.LittleEndian.PutUint32(body[5:9], uint32(len(runs)))
	for _, r := range runs {
		body = binary.LittleEndian.AppendUint16(body, r)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(buf.Len()))
	base64.StdEncoding.Encode(out, buf.Bytes())
	return out, nil
}
