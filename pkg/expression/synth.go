// Package expression builds piecewise-linear ffmpeg expressions from keyframes.
package expression

import (
	"math"
	"strconv"
	"strings"

	"github.com/user/cropaway/pkg/crop"
)

// MinSlope is the per-second change below which a segment is emitted as a constant.
const MinSlope = 0.01

// Selector extracts one scalar channel from a keyframe.
type Selector func(kf crop.Keyframe) float64

// Options controls how a channel expression is emitted.
type Options struct {
	// Even wraps the expression so it always evaluates to an even integer.
	Even bool
}

type segment struct {
	start float64
	body  string
}

// Synthesize returns an expression of t that follows the selected channel
// through the keyframes. Before the first keyframe the first value holds,
// after the last keyframe the last value holds: the chain opens with
// if(lt(t,T0),V0,...) and the final segment is closed by if(lt(t,Tlast),seg,Vlast)
// so the value is clamped at both ends rather than extrapolated.
func Synthesize(keyframes []crop.Keyframe, sel Selector, opts Options) string {
	expr := synthesize(crop.SortKeyframes(keyframes), sel)
	if opts.Even {
		return Even(expr)
	}
	return expr
}

func synthesize(sorted []crop.Keyframe, sel Selector) string {
	if len(sorted) == 0 {
		return "0"
	}

	var segments []segment
	for i := 0; i+1 < len(sorted); i++ {
		a, b := sorted[i], sorted[i+1]
		dt := b.Timestamp - a.Timestamp
		if math.Abs(dt) < crop.KeyframeTolerance {
			continue
		}
		segments = append(segments, segment{
			start: a.Timestamp,
			body:  linear(sel(a), sel(b), a.Timestamp, dt, a.Interpolation),
		})
	}

	first := sel(sorted[0])
	last := sel(sorted[len(sorted)-1])
	if len(segments) == 0 {
		return num(first)
	}

	// Each segment is valid until the next one starts; the last one ends at
	// the final keyframe.
	var b strings.Builder
	b.WriteString("if(lt(t,")
	b.WriteString(num(segments[0].start))
	b.WriteString("),")
	b.WriteString(num(first))
	b.WriteString(",")
	for i, seg := range segments {
		end := sorted[len(sorted)-1].Timestamp
		if i+1 < len(segments) {
			end = segments[i+1].start
		}
		b.WriteString("if(lt(t,")
		b.WriteString(num(end))
		b.WriteString("),")
		b.WriteString(seg.body)
		b.WriteString(",")
	}
	b.WriteString(num(last))
	b.WriteString(strings.Repeat(")", len(segments)+1))
	return b.String()
}

func linear(v0, v1, t0, dt float64, mode crop.InterpolationMode) string {
	slope := (v1 - v0) / dt
	if mode == crop.InterpolationHold || math.Abs(slope) < MinSlope {
		return num(math.Round(v0))
	}
	return num(v0) + "+" + paren(num(slope)) + "*(t-" + paren(num(t0)) + ")"
}

// Even wraps expr so that it evaluates to the even integer at or below its value.
func Even(expr string) string {
	return "floor((" + expr + ")/2)*2"
}

func paren(s string) string {
	if strings.HasPrefix(s, "-") {
		return "(" + s + ")"
	}
	return s
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
