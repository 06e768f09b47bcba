// Package main provides the CLI entry point for cropaway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/cropaway/pkg/adapters/logger"
	"github.com/user/cropaway/pkg/config"
	"github.com/user/cropaway/pkg/ports"
)

var version = "dev"

// Flag categories
var (
	catFFmpeg  = l10n.T("FFmpeg")
	catEncode  = l10n.T("Encoding")
	catDebug   = l10n.T("Debug")
	catLogging = l10n.T("Logging")
)

func main() {
	app := &cli.App{
		Name:    "cropaway",
		Usage:   l10n.T("Export videos with keyframed crops and masks"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file"),
			},
			&cli.StringFlag{
				Name:     "ffmpeg",
				Usage:    l10n.T("Path to the ffmpeg binary (falls back to FFMPEG_PATH, then PATH)"),
				EnvVars:  []string{"FFMPEG_PATH"},
				Category: catFFmpeg,
			},
			&cli.StringFlag{
				Name:     "temp-dir",
				Usage:    l10n.T("Directory for temporary segment and mask files"),
				Category: catFFmpeg,
			},
			&cli.DurationFlag{
				Name:     "timeout",
				Usage:    l10n.T("Maximum duration of a single ffmpeg run (0 = unlimited)"),
				Category: catFFmpeg,
			},
			&cli.BoolFlag{
				Name:     "no-hardware",
				Usage:    l10n.T("Always use the software encoder"),
				Category: catEncode,
			},
			&cli.IntFlag{
				Name:     "crf",
				Usage:    l10n.T("Software encoder CRF (0-51, lower is better)"),
				Category: catEncode,
			},
			&cli.StringFlag{
				Name:     "preset",
				Usage:    l10n.T("Software encoder preset"),
				Category: catEncode,
			},
			&cli.BoolFlag{
				Name:     "debug",
				Aliases:  []string{"d"},
				Usage:    l10n.T("Enable debug output"),
				Category: catDebug,
			},
			&cli.StringFlag{
				Name:     "debug-dir",
				Usage:    l10n.T("Directory for debug output"),
				Category: catDebug,
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: catLogging,
			},
			&cli.StringFlag{
				Name:     "log-format",
				Usage:    l10n.T("Log format (console, hclog, json)"),
				Category: catLogging,
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: catLogging,
			},
		},
		Commands: []*cli.Command{
			exportCommand(),
			maskCommand(),
			exprCommand(),
			encodersCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("cropaway version %s", version))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code, ok := err.(cli.ExitCoder); ok {
			os.Exit(code.ExitCode())
		}
		os.Exit(1)
	}
}

// loadConfig reads the configuration file and applies global flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("temp-dir") {
		cfg.TempDir = c.String("temp-dir")
	}
	if c.IsSet("timeout") {
		cfg.JobTimeout = c.Duration("timeout")
	}
	if c.Bool("no-hardware") {
		cfg.Hardware = false
	}
	if c.IsSet("crf") {
		cfg.CRF = c.Int("crf")
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	return cfg, cfg.Validate()
}

// newLogger creates the logger selected by the configuration.
func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level, _ := ports.ParseLogLevel(cfg.LogLevel)
	switch cfg.LogFormat {
	case "json":
		return logger.NewHCLog(level, os.Stderr, true)
	case "hclog":
		return logger.NewHCLog(level, os.Stderr, false)
	default:
		return logger.NewConsole(level)
	}
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
