package mp4probe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Eyevinn/mp4ff/av1"
	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMP4 writes a fragmented AV1 file with one track of the given size.
func buildMP4(t *testing.T, width, height int, seconds uint64) []byte {
	t.Helper()
	const timescale = 1000

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak
	av1C := &mp4.Av1CBox{CodecConfRec: av1.CodecConfRec{
		Version: 1, SeqLevelIdx0: 8, ChromaSubsamplingX: 1, ChromaSubsamplingY: 1,
	}}
	trak.Mdia.Minf.Stbl.Stsd.AddChild(mp4.CreateVisualSampleEntryBox("av01", uint16(width), uint16(height), av1C))
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)
	init.Moov.Mvhd.Timescale = timescale
	init.Moov.Mvhd.Duration = seconds * timescale

	frag, err := mp4.CreateFragment(1, 1)
	require.NoError(t, err)
	data := []byte{0x12, 0x00, 0x0a, 0x0b}
	frag.AddFullSample(mp4.FullSample{
		Sample: mp4.Sample{Flags: mp4.SyncSampleFlags, Size: uint32(len(data)), Dur: timescale},
		Data:   data,
	})

	var buf bytes.Buffer
	require.NoError(t, mp4.NewFtyp("isom", 0x200, []string{"isom", "av01"}).Encode(&buf))
	require.NoError(t, init.Moov.Encode(&buf))
	require.NoError(t, frag.Encode(&buf))
	return buf.Bytes()
}

func TestProbeReader(t *testing.T) {
	data := buildMP4(t, 1280, 720, 4)

	info, err := ProbeReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, 720, info.Height)
	assert.Equal(t, "av1", info.Codec)
	assert.InDelta(t, 4.0, info.Duration, 1e-9)
	assert.Equal(t, int64(len(data)*8/4), info.Bitrate)
}

func TestProber_Probe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, buildMP4(t, 640, 360, 2), 0644))

	info, err := New().Probe(path)
	require.NoError(t, err)
	assert.Equal(t, 640, info.Width)
	assert.InDelta(t, 2.0, info.Duration, 1e-9)

	_, err = New().Probe(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}

func TestProbeReader_NotMP4(t *testing.T) {
	data := []byte("definitely not an mp4 file")
	_, err := ProbeReader(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestCodecName(t *testing.T) {
	assert.Equal(t, "h264", codecName("avc1"))
	assert.Equal(t, "hevc", codecName("hev1"))
	assert.Equal(t, "av1", codecName("av01"))
	assert.Equal(t, "xyz1", codecName("xyz1"))
}
