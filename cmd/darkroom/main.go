// Command darkroom drives the editing core from the command line: it decodes
// input images, applies a pipeline of adjustments and effects, and exports
// the results.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/detect"
	"github.com/ozanyurt/darkroom/internal/document"
	"github.com/ozanyurt/darkroom/internal/export"
	"github.com/ozanyurt/darkroom/internal/ops"
)

// Version is set by ldflags during build.
var Version = "dev"

func main() {
	// A .env in the working directory provides defaults; absence is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "darkroom",
		Short:         "Reversible image editing from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newExportCmd(logger))
	root.AddCommand(newStatsCmd())
	return root
}

// envInt reads an integer environment variable, falling back on parse
// failure or absence.
func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

type exportFlags struct {
	out         string
	format      string
	quality     int
	workers     int
	autoEnhance bool
	portrait    bool
	adjustments map[string]*float64
	effects     []string
}

func newExportCmd(logger *slog.Logger) *cobra.Command {
	flags := exportFlags{adjustments: make(map[string]*float64)}

	cmd := &cobra.Command{
		Use:   "export [files...]",
		Short: "Edit and export a batch of images",
		Long: `Export decodes each input image, applies the requested pipeline
(adjustments in flag order: brightness, contrast, saturation, white balance,
shadows, highlights; then effects; then portrait mode and auto-enhance), and
writes the results into the output directory, one file per input, named by
document id.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, &flags, logger)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "exported", "output directory")
	cmd.Flags().StringVar(&flags.format, "format", "jpg", "output format (jpg or png)")
	cmd.Flags().IntVar(&flags.quality, "quality",
		envInt("DARKROOM_JPEG_QUALITY", 95), "JPEG quality (1-100)")
	cmd.Flags().IntVar(&flags.workers, "workers",
		envInt("DARKROOM_WORKERS", 4), "parallel export workers")
	cmd.Flags().BoolVar(&flags.autoEnhance, "auto-enhance", false,
		"derive and apply a brightness/contrast stretch per image")
	cmd.Flags().BoolVar(&flags.portrait, "portrait", false,
		"apply portrait mode (skipped per image when no face is found)")
	cmd.Flags().StringSliceVar(&flags.effects, "effect", nil,
		"discrete effect to apply, repeatable (e.g. sharpen, vignette)")

	for _, name := range []string{
		"brightness", "contrast", "saturation", "white-balance", "shadows", "highlights",
	} {
		v := new(float64)
		flags.adjustments[name] = v
		cmd.Flags().Float64Var(v, name, 0, name+" adjustment")
	}
	return cmd
}

func runExport(cmd *cobra.Command, args []string, flags *exportFlags, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := document.NewSession(&detect.SkinDetector{}, logger)
	for _, path := range args {
		img, err := imaging.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		doc, err := session.Open(buffer.FromImage(img))
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		if err := applyPipeline(cmd, doc, flags, logger); err != nil {
			return fmt.Errorf("edit %s: %w", path, err)
		}
	}

	enc := &export.FileEncoder{Format: flags.format, JPEGQuality: flags.quality}
	results := export.All(ctx, session.Documents(), flags.out, enc, flags.workers)

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(results))
	}
	logger.Info("batch complete", "count", len(results), "dir", flags.out)
	return nil
}

func applyPipeline(cmd *cobra.Command, doc *document.Document, flags *exportFlags, logger *slog.Logger) error {
	for _, name := range []string{
		"brightness", "contrast", "saturation", "white-balance", "shadows", "highlights",
	} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		kind, err := ops.ParseKind(name)
		if err != nil {
			return err
		}
		if err := doc.ApplyAdjustment(kind, *flags.adjustments[name]); err != nil {
			return err
		}
	}

	for _, name := range flags.effects {
		kind, err := ops.ParseKind(name)
		if err != nil {
			return err
		}
		if err := doc.ApplyEffect(kind); err != nil {
			return err
		}
	}

	if flags.portrait {
		if err := doc.ApplyPortraitMode(); err != nil {
			if !errors.Is(err, detect.ErrNoFaceDetected) {
				return err
			}
			logger.Info("no face found, portrait skipped", "id", doc.ID())
		}
	}
	if flags.autoEnhance {
		if err := doc.ApplyAutoEnhance(); err != nil {
			return err
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print histogram statistics for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imaging.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			doc, err := document.Open(buffer.FromImage(img))
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}

			h := doc.Histogram()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %dx%d, %d pixels\n",
				args[0], doc.Original().Width, doc.Original().Height, h.Total)
			fmt.Fprintf(out, "luminance p1=%d p50=%d p99=%d\n",
				h.LumPercentile(1), h.LumPercentile(50), h.LumPercentile(99))
			return nil
		},
	}
}
