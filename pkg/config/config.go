// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/cropaway/pkg/encoderselect"
	"github.com/user/cropaway/pkg/ports"
)

// DefaultJobTimeout bounds a single ffmpeg transcode or concat. It is far
// above any realistic export so it only catches hung processes.
const DefaultJobTimeout = 2 * time.Hour

// Config represents the export settings of cropaway.
type Config struct {
	// FFmpeg
	FFmpegPath   string        `yaml:"ffmpeg_path"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	JobTimeout   time.Duration `yaml:"job_timeout"` // an explicit zero disables the per-job timeout

	// Encoding
	Hardware        bool     `yaml:"hardware"`
	EncoderPriority []string `yaml:"encoder_priority"`
	CRF             int      `yaml:"crf"`
	Preset          string   `yaml:"preset"`

	// Files
	TempDir string `yaml:"temp_dir"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // console, hclog or json

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		ProbeTimeout: 15 * time.Second,
		JobTimeout:   DefaultJobTimeout,

		Hardware:        true,
		EncoderPriority: append([]string(nil), encoderselect.DefaultPriority...),
		CRF:             encoderselect.DefaultCRF,
		Preset:          encoderselect.DefaultPreset,

		TempDir: os.TempDir(),

		LogLevel:  "info",
		LogFormat: "console",

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "console", "hclog", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.CRF < 0 || c.CRF > 51 {
		return fmt.Errorf("crf %d out of range 0-51", c.CRF)
	}
	if c.ProbeTimeout < 0 || c.JobTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// EncoderOptions converts the encoding settings for encoderselect.
func (c Config) EncoderOptions(logger ports.Logger, scope string) encoderselect.Options {
	return encoderselect.Options{
		Priority: c.EncoderPriority,
		Hardware: c.Hardware,
		CRF:      c.CRF,
		Preset:   c.Preset,
		Scope:    scope,
		Logger:   logger,
	}
}
