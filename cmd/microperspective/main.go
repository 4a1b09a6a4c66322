package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/dodogabrie/microperspective-corrector/internal/batch"
	"github.com/dodogabrie/microperspective-corrector/internal/config"
	"github.com/dodogabrie/microperspective-corrector/internal/imgio"
	"github.com/dodogabrie/microperspective-corrector/internal/pipeline"
)

const longHelp = `
Geometrically correct scanned book pages.

microperspective walks the input directory recursively, finds the page
boundary inside each scanned frame, removes microrotation and perspective
skew with a projective warp, trims the black border the warp leaves behind,
and writes the result to the output directory mirroring the input tree.

A failing image is reported and skipped; it never stops the batch.
`

var exampleUsage = strings.TrimSpace(`
  microperspective dataset/original dataset/output
  microperspective --workers 8 --thumb-dir dataset/thumbs --report report.html scans/ corrected/
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := config.Default()
	var cfgPath string
	var verbose bool
	var thresholdMode string

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:     "microperspective <input-dir> <output-dir>",
		Short:   "Correct microrotation and perspective skew in scanned book pages",
		Long:    strings.TrimSpace(longHelp),
		Example: exampleUsage,
		Args:    cobra.ExactArgs(2),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			// Load config file first (default ~/.microperspective/config.toml),
			// then re-apply explicitly set flags so flags win.
			path := cfgPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if path != "" {
				fc, err := config.LoadFileConfig(path)
				switch {
				case err == nil:
					config.Apply(&cfg, fc)
					applyChangedFlags(cmd.Flags(), &cfg)
				case cfgPath != "":
					return fmt.Errorf("loading config %q: %w", cfgPath, err)
				}
			}
			if cmd.Flags().Changed("threshold-mode") || cfg.ThresholdMode == "" {
				cfg.ThresholdMode = config.ThresholdMode(thresholdMode)
			}

			cfg.InputDir = args[0]
			cfg.OutputDir = args[1]
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, log)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to TOML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	flags.IntVar(&cfg.KernelSize, "kernel-size", cfg.KernelSize, "Gaussian kernel size (odd, 0 = derive from image)")
	flags.StringVar(&thresholdMode, "threshold-mode", string(cfg.ThresholdMode), "binarization mode: fixed or adaptive")
	flags.IntVar(&cfg.ThresholdValue, "threshold-value", cfg.ThresholdValue, "fixed binarization threshold (0-255)")
	flags.Float64Var(&cfg.MinAreaFraction, "min-area-fraction", cfg.MinAreaFraction, "minimum contour area as a fraction of the frame")
	flags.IntVar(&cfg.BackgroundThreshold, "background-threshold", cfg.BackgroundThreshold, "brightness at or below which border pixels count as background")
	flags.Float64Var(&cfg.MaxCropFraction, "max-crop-fraction", cfg.MaxCropFraction, "cap on each trimmed margin as a fraction of the dimension")
	flags.IntVarP(&cfg.BorderPixels, "border", "b", cfg.BorderPixels, "white padding in pixels added around the corrected page")
	flags.StringVar(&cfg.ThumbDir, "thumb-dir", cfg.ThumbDir, "directory for before/after thumbnails (empty disables)")
	flags.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "path for the HTML batch report (empty disables)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

// applyChangedFlags re-applies flag values over file config for every flag
// the user set explicitly.
func applyChangedFlags(f *pflag.FlagSet, cfg *config.Config) {
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("kernel-size") {
		cfg.KernelSize, _ = f.GetInt("kernel-size")
	}
	if f.Changed("threshold-value") {
		cfg.ThresholdValue, _ = f.GetInt("threshold-value")
	}
	if f.Changed("min-area-fraction") {
		cfg.MinAreaFraction, _ = f.GetFloat64("min-area-fraction")
	}
	if f.Changed("background-threshold") {
		cfg.BackgroundThreshold, _ = f.GetInt("background-threshold")
	}
	if f.Changed("max-crop-fraction") {
		cfg.MaxCropFraction, _ = f.GetFloat64("max-crop-fraction")
	}
	if f.Changed("border") {
		cfg.BorderPixels, _ = f.GetInt("border")
	}
	if f.Changed("thumb-dir") {
		cfg.ThumbDir, _ = f.GetString("thumb-dir")
	}
	if f.Changed("report") {
		cfg.ReportPath, _ = f.GetString("report")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	paths, err := batch.FindImages(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found under %q", cfg.InputDir)
	}
	log.Info().
		Int("images", len(paths)).
		Str("input", cfg.InputDir).
		Str("output", cfg.OutputDir).
		Int("workers", cfg.Workers).
		Msg("starting batch")

	corrector := pipeline.New(cfg.Core, log)
	runner := &batch.Runner{
		Workers:  cfg.Workers,
		Reporter: &batch.ConsoleProgress{Out: os.Stderr},
		Process: func(ctx context.Context, path string) batch.Result {
			return processOne(cfg, corrector, log, path)
		},
	}
	results := runner.Run(ctx, paths)

	if cfg.ReportPath != "" {
		if err := batch.WriteReport(cfg.ReportPath, results); err != nil {
			log.Error().Err(err).Str("path", cfg.ReportPath).Msg("writing report")
		} else {
			log.Info().Str("path", cfg.ReportPath).Msg("report written")
		}
	}

	for _, r := range results {
		if r.Err != nil {
			log.Warn().Err(r.Err).Str("path", r.Path).Msg("image failed")
		}
	}
	return ctx.Err()
}

// processOne corrects a single image. Pipeline failures copy the source
// through unmodified so the output tree stays complete, with the failure
// recorded in the result.
func processOne(cfg config.Config, corrector *pipeline.Corrector, log zerolog.Logger, path string) batch.Result {
	res := batch.Result{Path: path}

	outPath, err := batch.OutputPath(cfg.InputDir, cfg.OutputDir, path)
	if err != nil {
		res.Err = err
		return res
	}

	img, err := imgio.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	defer img.Close()

	corrected, diag, err := corrector.CorrectPage(img)
	if err != nil {
		corrected.Close()
		res.Err = err
		if pipeline.KindOf(err) != "" {
			if werr := imgio.Save(outPath, img); werr == nil {
				res.OutputPath = outPath
			}
		}
		return res
	}
	defer corrected.Close()
	log.Debug().Str("path", path).
		Float64("contour_area_fraction", diag.ContourAreaFraction).
		Msg("corrected")

	final := corrected
	if imgio.OverCropped(img, corrected) {
		final = img
		res.KeptOriginal = true
	}

	if cfg.BorderPixels > 0 {
		bordered := imgio.AddBorder(final, cfg.BorderPixels)
		defer bordered.Close()
		final = bordered
	}

	if err := imgio.Save(outPath, final); err != nil {
		res.Err = err
		return res
	}
	res.OutputPath = outPath

	if cfg.ThumbDir != "" {
		thumb := imgio.Thumbnail(img, final, 500)
		defer thumb.Close()
		base := filepath.Base(path)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
		thumbPath := filepath.Join(cfg.ThumbDir, name)
		if err := imgio.Save(thumbPath, thumb); err != nil {
			res.Err = err
			return res
		}
		res.ThumbPath = thumbPath
	}
	return res
}
