package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cropaway/pkg/encoderselect"
	"github.com/user/cropaway/pkg/mocks"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Hardware)
	assert.Equal(t, encoderselect.DefaultPriority, cfg.EncoderPriority)
	assert.Equal(t, 18, cfg.CRF)
	assert.Equal(t, "medium", cfg.Preset)
	assert.Equal(t, 15*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, DefaultJobTimeout, cfg.JobTimeout, "ffmpeg runs are bounded by default")
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, "cropaway.yaml", `
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
job_timeout: 10m
hardware: false
encoder_priority: [h264_nvenc]
crf: 22
log_level: debug
log_format: json
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 10*time.Minute, cfg.JobTimeout)
	assert.Equal(t, 15*time.Second, cfg.ProbeTimeout, "unset fields keep defaults")
	assert.False(t, cfg.Hardware)
	assert.Equal(t, []string{"h264_nvenc"}, cfg.EncoderPriority)
	assert.Equal(t, 22, cfg.CRF)
	assert.Equal(t, "medium", cfg.Preset)
	assert.Equal(t, "json", cfg.LogFormat)

	opts := cfg.EncoderOptions(mocks.NewLogger(), cfg.FFmpegPath)
	assert.Equal(t, []string{"h264_nvenc"}, opts.Priority)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", opts.Scope)
	assert.False(t, opts.Hardware)
}

func TestLoadFromFile_JobTimeout(t *testing.T) {
	cfg, err := LoadFromFile(writeFile(t, "c.yaml", "crf: 20"))
	require.NoError(t, err)
	assert.Equal(t, DefaultJobTimeout, cfg.JobTimeout)

	cfg, err = LoadFromFile(writeFile(t, "c.yaml", "job_timeout: 0s"))
	require.NoError(t, err)
	assert.Zero(t, cfg.JobTimeout, "an explicit zero disables the bound")
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log_level: loud"},
		{"bad format", "log_format: xml"},
		{"bad crf", "crf: 99"},
		{"not yaml", "crf: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeFile(t, "c.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
