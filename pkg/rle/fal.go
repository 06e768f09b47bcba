package rle

import (
	"math"
	"strconv"
	"strings"
)

// minValidPairRatio is the share of well-formed pairs required to accept a fal.ai payload.
const minValidPairRatio = 0.5

type pair struct {
	start, length int
}

// decodeFalPairs interprets s as row-major (start, length) pairs.
// It reports false when s is not in this format.
func decodeFalPairs(s string, h, w int) (*Mask, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return nil, false
	}
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}

	pairs := make([]pair, 0, len(nums)/2)
	maxEnd := 0
	for i := 0; i+1 < len(nums); i += 2 {
		p := pair{start: nums[i], length: nums[i+1]}
		pairs = append(pairs, p)
		if p.start >= 0 && p.length > 0 && p.start+p.length > maxEnd {
			maxEnd = p.start + p.length
		}
	}

	// Runs reaching far past the declared size were encoded at a larger resolution.
	decodeH, decodeW := h, w
	if maxEnd > 2*h*w {
		if gh, gw, ok := guessResolution(maxEnd, h, w); ok {
			decodeH, decodeW = gh, gw
		}
	}
	total := decodeH * decodeW

	valid := 0
	for _, p := range pairs {
		if p.start >= 0 && p.length > 0 && p.start < total {
			valid++
		}
	}
	if float64(valid) < minValidPairRatio*float64(len(pairs)) {
		return nil, false
	}

	m := NewMask(decodeW, decodeH)
	for _, p := range pairs {
		if p.start < 0 || p.length <= 0 || p.start >= total {
			continue
		}
		end := p.start + p.length
		if end > total {
			end = total
		}
		for i := p.start; i < end; i++ {
			m.Pix[i] = 255
		}
	}

	if decodeH != h || decodeW != w {
		m = m.Resize(w, h)
	}
	return m, true
}

var (
	commonHeights = []int{240, 360, 480, 540, 720, 1080, 1440, 2160, 4320}
	commonAspects = []float64{16.0 / 9.0, 4.0 / 3.0, 1, 9.0 / 16.0, 3.0 / 4.0, 21.0 / 9.0}
)

// guessResolution picks the smallest common resolution able to hold maxEnd pixels,
// preferring the declared aspect ratio. It is a best-effort recovery for producers
// that report a downscaled size while encoding runs at the source resolution.
func guessResolution(maxEnd, h, w int) (int, int, bool) {
	aspects := append([]float64{float64(w) / float64(h)}, commonAspects...)
	for _, ar := range aspects {
		for _, gh := range commonHeights {
			gw := int(math.Round(float64(gh) * ar))
			area := gh * gw
			if area >= maxEnd && area <= maxPixels {
				return gh, gw, true
			}
		}
	}
	return 0, 0, false
}

// EncodeFalPairs encodes the visible runs of m as a fal.ai pairs envelope.
func EncodeFalPairs(m *Mask) []byte {
	var sb strings.Builder
	start := -1
	flush := func(end int) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(start))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(end - start))
		start = -1
	}
	for i, v := range m.Pix {
		on := v >= 128
		if on && start < 0 {
			start = i
		} else if !on && start >= 0 {
			flush(i)
		}
	}
	if start >= 0 {
		flush(len(m.Pix))
	}
	return marshalEnvelope(m, sb.String())
}
