package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/cropaway/pkg/adapters/ffmpeg"
	"github.com/user/cropaway/pkg/adapters/ggrenderer"
	"github.com/user/cropaway/pkg/adapters/osfilesystem"
	"github.com/user/cropaway/pkg/config"
	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/encoderselect"
	"github.com/user/cropaway/pkg/expression"
	"github.com/user/cropaway/pkg/rle"
)

func maskCommand() *cli.Command {
	return &cli.Command{
		Name:      "mask",
		Usage:     l10n.T("Decode an RLE mask and write it as PNG"),
		ArgsUsage: "<mask.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output PNG file path (required)"), Required: true},
			&cli.IntFlag{Name: "width", Usage: l10n.T("Resample to this width")},
			&cli.IntFlag{Name: "height", Usage: l10n.T("Resample to this height")},
			&cli.BoolFlag{Name: "smooth", Usage: l10n.T("Soften mask edges")},
		},
		Action: runMask,
	}
}

func runMask(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("Exactly one mask file is required"), 2)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)
	fs := osfilesystem.New(cfg.TempDir)

	data, err := fs.ReadFile(c.Args().First())
	if err != nil {
		return err
	}
	mask, format, err := rle.Decode(data)
	if err != nil {
		return err
	}

	w, h := c.Int("width"), c.Int("height")
	if mask == nil {
		if w <= 0 || h <= 0 {
			return cli.Exit(l10n.T("The mask is empty; --width and --height are required"), 2)
		}
		mask = rle.Full(w, h)
	}
	if w > 0 && h > 0 {
		mask = mask.Resize(w, h)
	}

	img := mask.Gray()
	if c.Bool("smooth") {
		img = rle.Smooth(mask)
	}

	png, err := ggrenderer.New(log).EncodePNG(img)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(c.String("output"), png); err != nil {
		return err
	}

	box := mask.BoundingBox()
	fmt.Fprintln(c.App.Writer, l10n.F("Format: %s, size: %dx%d, visible: %d px", format, mask.Width, mask.Height, mask.Foreground()))
	fmt.Fprintln(c.App.Writer, l10n.F("Bounding box: x=%.4f y=%.4f w=%.4f h=%.4f", box.X, box.Y, box.Width, box.Height))
	return nil
}

func exprCommand() *cli.Command {
	return &cli.Command{
		Name:      "expr",
		Usage:     l10n.T("Print the animated crop filter for a rectangle crop document"),
		ArgsUsage: "<crop.yaml>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: 1920, Usage: l10n.T("Video width in pixels")},
			&cli.IntFlag{Name: "height", Value: 1080, Usage: l10n.T("Video height in pixels")},
			&cli.Float64SliceFlag{Name: "at", Usage: l10n.T("Evaluate the crop at these times (seconds)")},
		},
		Action: runExpr,
	}
}

func runExpr(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("Exactly one crop document is required"), 2)
	}
	cropCfg, err := config.LoadCropDocument(c.Args().First())
	if err != nil {
		return err
	}
	if cropCfg.Mode != crop.ModeRectangle {
		return cli.Exit(l10n.F("Animated crop filters need rectangle mode, got %s", cropCfg.Mode), 2)
	}

	keyframes := []crop.Keyframe{{Geometry: cropCfg.Static.Geometry}}
	if cropCfg.HasActiveKeyframes() {
		keyframes = cropCfg.Keyframes()
	}
	channels := expression.Channels(keyframes, c.Int("width"), c.Int("height"))
	fmt.Fprintln(c.App.Writer, channels.Filter())

	times := c.Float64Slice("at")
	if len(times) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "t\tx\ty\tw\th\t")
	for _, t := range times {
		var vals [4]float64
		for i, e := range []string{channels.X, channels.Y, channels.W, channels.H} {
			if vals[i], err = expression.Evaluate(e, t); err != nil {
				return err
			}
		}
		fmt.Fprintf(tw, "%.3f\t%.1f\t%.1f\t%.0f\t%.0f\t\n", t, vals[0], vals[1], vals[2], vals[3])
	}
	return tw.Flush()
}

func encodersCommand() *cli.Command {
	return &cli.Command{
		Name:  "encoders",
		Usage: l10n.T("Probe the available H.264 encoders"),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			log := newLogger(c, cfg)
			ctx, cancel := signalContext(log)
			defer cancel()

			runner, err := ffmpeg.New(ffmpeg.Options{Path: cfg.FFmpegPath, ProbeTimeout: cfg.ProbeTimeout, Logger: log})
			if errors.Is(err, ffmpeg.ErrFFmpegNotFound) {
				return cli.Exit(l10n.T("ffmpeg was not found; install it or set FFMPEG_PATH"), 1)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, l10n.F("ffmpeg: %s", runner.Path()))
			opts := cfg.EncoderOptions(log, runner.Path())
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			for _, r := range encoderselect.New(runner, opts).Probe(ctx) {
				status := l10n.T("available")
				if !r.Available {
					status = l10n.T("unavailable")
				}
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			selected := encoderselect.New(runner, opts).Select(ctx, 0)
			fmt.Fprintln(c.App.Writer, l10n.F("Selected: %s", selected.Name))
			if selected.Hardware {
				log.Debug("Hardware encoder arguments: %v", selected.Args)
			}
			return nil
		},
	}
}
