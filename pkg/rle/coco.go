package rle

import (
	"errors"
	"fmt"
)

// COCO compressed strings pack each count into 6-bit symbols offset from '0':
// 5 data bits plus a continuation bit, little-endian, sign-extended from bit 4.
// Counts after the second are stored as deltas against the count two places back.
const (
	symbolBase  = '0'
	symbolLimit = symbolBase + 63 // 'o'
	maxSymbols  = 12
)

var errTruncated = errors.New("truncated compressed counts")

// decodeCompressedString expands a COCO compressed string into run counts.
func decodeCompressedString(s string) ([]int, error) {
	counts := make([]int, 0, len(s)/2)
	p := 0
	for p < len(s) {
		x, k := 0, 0
		more := true
		for more {
			if p >= len(s) {
				return nil, errTruncated
			}
			ch := s[p]
			if ch < symbolBase || ch > symbolLimit {
				return nil, fmt.Errorf("invalid symbol %q at offset %d", ch, p)
			}
			c := int(ch - symbolBase)
			x |= (c & 0x1f) << (5 * k)
			more = c&0x20 != 0
			p++
			k++
			if !more && c&0x10 != 0 {
				x |= -1 << (5 * k)
			}
			if k > maxSymbols {
				return nil, fmt.Errorf("count too long at offset %d", p)
			}
		}
		if len(counts) > 2 {
			x += counts[len(counts)-2]
		}
		if x < 0 {
			return nil, fmt.Errorf("negative count %d", x)
		}
		counts = append(counts, x)
	}
	return counts, nil
}

// encodeCompressedString is the inverse of decodeCompressedString.
func encodeCompressedString(counts []int) string {
	buf := make([]byte, 0, len(counts)*2)
	for i, c := range counts {
		x := c
		if i > 2 {
			x -= counts[i-2]
		}
		more := true
		for more {
			ch := x & 0x1f
			x >>= 5
			if ch&0x10 != 0 {
				more = x != -1
			} else {
				more = x != 0
			}
			if more {
				ch |= 0x20
			}
			buf = append(buf, byte(ch+symbolBase))
		}
	}
	return string(buf)
}

// fromColumnMajorCounts builds a row-major mask from alternating
// background/foreground runs laid out column by column.
func fromColumnMajorCounts(counts []int, h, w int) (*Mask, error) {
	total := h * w
	sum := 0
	for _, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative run %d", ErrMalformedMask, c)
		}
		sum += c
	}
	if sum > 2*total || 2*sum < total {
		return nil, fmt.Errorf("%w: runs cover %d pixels, mask has %d", ErrMalformedMask, sum, total)
	}

	m := NewMask(w, h)
	idx := 0
	foreground := false
	for _, c := range counts {
		if foreground {
			end := idx + c
			if end > total {
				end = total
			}
			for i := idx; i < end; i++ {
				col := i / h
				row := i % h
				m.Pix[row*w+col] = 255
			}
		}
		idx += c
		if idx >= total {
			break
		}
		foreground = !foreground
	}
	return m, nil
}

// columnMajorCounts returns alternating background/foreground runs of m in
// column-major order, always starting with a (possibly empty) background run.
func columnMajorCounts(m *Mask) []int {
	h, w := m.Height, m.Width
	counts := make([]int, 0, 16)
	run := 0
	foreground := false
	for col := 0; col < w; col++ {
		for row := 0; row < h; row++ {
			on := m.Pix[row*w+col] >= 128
			if on != foreground {
				counts = append(counts, run)
				run = 0
				foreground = on
			}
			run++
		}
	}
	return append(counts, run)
}
