package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/user/cropaway/pkg/adapters/ffmpeg"
	"github.com/user/cropaway/pkg/adapters/filesink"
	"github.com/user/cropaway/pkg/adapters/ggrenderer"
	"github.com/user/cropaway/pkg/adapters/mp4probe"
	"github.com/user/cropaway/pkg/adapters/nullsink"
	"github.com/user/cropaway/pkg/adapters/osfilesystem"
	"github.com/user/cropaway/pkg/config"
	"github.com/user/cropaway/pkg/crop"
	"github.com/user/cropaway/pkg/encoderselect"
	"github.com/user/cropaway/pkg/expression"
	"github.com/user/cropaway/pkg/orchestrator"
	"github.com/user/cropaway/pkg/ports"
	"github.com/user/cropaway/pkg/stages/concat"
	"github.com/user/cropaway/pkg/stages/static"
	"github.com/user/cropaway/pkg/summarizer"
)

// progressSteps is the resolution of the progress bar.
const progressSteps = 1000

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Export a video with the crop described by a crop document"),
		ArgsUsage: "<input.mp4>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Output MP4 file path (required)"),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "crop",
				Usage: l10n.T("Crop document (YAML or JSON); omitted means the default crop"),
			},
			&cli.StringFlag{
				Name:  "summary",
				Usage: l10n.T("Output export summary to file (Markdown format)"),
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: l10n.T("Disable the progress bar"),
			},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("Exactly one input video is required"), 2)
	}
	source := c.Args().First()
	output := c.String("output")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	cropCfg := crop.NewConfiguration(crop.ModeRectangle, crop.DefaultState())
	if path := c.String("crop"); path != "" {
		if cropCfg, err = config.LoadCropDocument(path); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	// Create adapters
	fs := osfilesystem.New(cfg.TempDir)
	runner, err := ffmpeg.New(ffmpeg.Options{
		Path:         cfg.FFmpegPath,
		Timeout:      cfg.JobTimeout,
		ProbeTimeout: cfg.ProbeTimeout,
		Logger:       log,
	})
	if err != nil {
		return err
	}
	renderer := ggrenderer.New(log)
	prober := mp4probe.New()
	selector := encoderselect.New(runner, cfg.EncoderOptions(log, runner.Path()))

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	staticStage := static.NewStage(runner, renderer, fs, sink, log, cfg.TempDir)
	concatStage := concat.NewStage(runner, fs, sink, log, cfg.TempDir)

	orch := orchestrator.New(
		staticStage,
		concatStage,
		runner,
		renderer,
		prober,
		selector,
		fs,
		sink,
		log,
		cfg.TempDir,
	)

	var progress ports.ProgressFunc
	if !c.Bool("no-progress") && !c.Bool("quiet") && isatty.IsTerminal(os.Stdout.Fd()) {
		bar := newProgressBar(l10n.T("Exporting"))
		defer bar.Finish()
		progress = func(f float64) { _ = bar.Set(int(f * progressSteps)) }
	}

	started := time.Now()
	result, err := orch.Run(ctx, orchestrator.Request{
		Source: source,
		Output: output,
		Config: cropCfg,
	}, progress)
	if err != nil {
		if orchestrator.IsCancelled(err) {
			return cli.Exit(l10n.T("Export cancelled"), 130)
		}
		return err
	}

	if path := c.String("summary"); path != "" {
		summary := buildSummary(source, cropCfg, result, fs, time.Since(started))
		formatter := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		)
		if err := summarizer.NewWriter(formatter, fs).Write(path, summary); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", path)
		}
	}
	return nil
}

func newProgressBar(desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(progressSteps,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func buildSummary(source string, cropCfg *crop.Configuration, result orchestrator.Result, fs ports.FileSystem, elapsed time.Duration) *summarizer.Summary {
	media := result.Media
	b := summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			Path:     source,
			Duration: media.Duration,
			Width:    media.Width,
			Height:   media.Height,
			Codec:    media.Codec,
			Bitrate:  media.Bitrate,
		}).
		WithExport(summarizer.ExportInfo{
			Mode:      string(result.Mode),
			Strategy:  string(result.Strategy),
			Keyframes: cropCfg.KeyframeCount(),
			Encoder:   result.Encoder.Name,
			Hardware:  result.Encoder.Hardware,
			Filter:    result.Filter,
			Elapsed:   elapsed,
		})

	out := summarizer.OutputInfo{Path: result.Output}
	out.FileSize, _ = fs.Size(result.Output)
	if !result.Region.IsEmpty() {
		_, _, out.Width, out.Height = expression.PixelRect(result.Region, media.Width, media.Height)
	}
	b.WithOutput(out)

	for _, seg := range result.Segments {
		b.AddSegment(seg.Start, seg.End)
	}
	return b.Build()
}
