// Package mp4probe reads source video properties from MP4 containers.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/cropaway/pkg/ports"
)

// ErrNoVideoTrack is returned for files without a video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.MediaProber for MP4 and MOV files.
type Prober struct{}

// New creates a Prober.
func New() *Prober {
	return &Prober{}
}

// Probe reads duration, dimensions, bitrate and codec of the file at path.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("stat file: %w", err)
	}
	return ProbeReader(f, stat.Size())
}

// ProbeReader probes an MP4 stream of the given total size.
// Media data is not loaded into memory.
func ProbeReader(r io.ReadSeeker, size int64) (ports.MediaInfo, error) {
	file, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := file.Moov
	if moov == nil && file.Init != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	trak, entry := videoTrack(moov)
	if trak == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	info := ports.MediaInfo{
		Duration: duration(file, moov, trak),
		Codec:    codecName(entry.Type()),
	}
	if vse, ok := entry.(*mp4.VisualSampleEntryBox); ok {
		info.Width, info.Height = int(vse.Width), int(vse.Height)
	}
	if info.Width == 0 && trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}
	if info.Duration > 0 {
		info.Bitrate = int64(float64(size*8) / info.Duration)
	}
	return info, nil
}

func videoTrack(moov *mp4.MoovBox) (*mp4.TrakBox, mp4.Box) {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			return trak, child
		}
	}
	return nil, nil
}

// duration prefers the movie header, then the fragment duration, the
// track header and finally the sum of fragment runs.
func duration(file *mp4.File, moov *mp4.MoovBox, trak *mp4.TrakBox) float64 {
	if mvhd := moov.Mvhd; mvhd != nil && mvhd.Timescale > 0 {
		if mvhd.Duration > 0 {
			return float64(mvhd.Duration) / float64(mvhd.Timescale)
		}
		if moov.Mvex != nil && moov.Mvex.Mehd != nil && moov.Mvex.Mehd.FragmentDuration > 0 {
			return float64(moov.Mvex.Mehd.FragmentDuration) / float64(mvhd.Timescale)
		}
	}

	mdhd := trak.Mdia.Mdhd
	if mdhd == nil || mdhd.Timescale == 0 {
		return 0
	}
	if mdhd.Duration > 0 {
		return float64(mdhd.Duration) / float64(mdhd.Timescale)
	}

	var total uint64
	for _, seg := range file.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trak.Tkhd.TrackID {
					continue
				}
				for _, trun := range traf.Truns {
					total += trun.Duration(traf.Tfhd.DefaultSampleDuration)
				}
			}
		}
	}
	return float64(total) / float64(mdhd.Timescale)
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp09":
		return "vp9"
	case "mp4v":
		return "mpeg4"
	default:
		return sampleEntry
	}
}

var _ ports.MediaProber = (*Prober)(nil)
