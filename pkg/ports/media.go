package ports

// MediaInfo describes a source video.
type MediaInfo struct {
	Duration float64 // seconds
	Width    int
	Height   int
	Bitrate  int64 // bits per second over the whole file
	Codec    string
}

// MediaProber reads stream information from a video file.
type MediaProber interface {
	Probe(path string) (MediaInfo, error)
}
