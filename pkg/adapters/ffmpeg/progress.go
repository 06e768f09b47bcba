package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// parseProgress reads ffmpeg -progress output and calls fn with the output
// time reached at each batch marker. It returns when r is exhausted.
func parseProgress(r io.Reader, fn func(elapsed time.Duration)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	elapsed := time.Duration(-1)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// out_time_ms is also reported in microseconds.
			if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
				elapsed = time.Duration(us) * time.Microsecond
			}
		case "out_time":
			if d, ok := parseClock(value); ok {
				elapsed = d
			}
		case "progress":
			if elapsed >= 0 && fn != nil {
				fn(elapsed)
			}
		}
	}
	return scanner.Err()
}

// parseClock parses HH:MM:SS.micros.
func parseClock(s string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || sec < 0 {
		return 0, false
	}
	total := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
	return total + time.Duration(sec*float64(time.Second)), true
}

// fraction normalizes elapsed against total, clamped to [0, 0.99].
// 1.0 is reserved for a successful exit.
func fraction(elapsed time.Duration, total float64) float64 {
	if total <= 0 {
		return 0
	}
	f := elapsed.Seconds() / total
	if f < 0 {
		return 0
	}
	if f > 0.99 {
		return 0.99
	}
	return f
}
