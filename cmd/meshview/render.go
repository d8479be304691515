package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meshview/internal/batch"
	"meshview/internal/config"
	"meshview/internal/output"
)

var (
	renderOutput  string
	renderFormat  string
	renderWorkers int
	renderTheme   string
	renderMode    string
	renderThumb   int
)

var renderCmd = &cobra.Command{
	Use:   "render <files...>",
	Short: "Render many meshes into an output directory",
	Long: "Render each mesh file to an image in the output directory using a worker " +
		"pool, then write manifest.json describing every input.",
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOutput, "output", "o", "", "output directory (default: renders)")
	f.StringVar(&renderFormat, "format", "", "image format: webp or png (default webp)")
	f.IntVarP(&renderWorkers, "workers", "w", 0, "worker goroutines (default: NumCPU)")
	f.StringVar(&renderTheme, "theme", "", "background theme: light or dark")
	f.StringVar(&renderMode, "mode", "", "render mode: color or wireframe")
	f.IntVar(&renderThumb, "thumb", 0, "also write <name>_thumb images at most this many pixels wide")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, files []string) error {
	cfg, log, err := setup(config.Flags{
		OutputDir: renderOutput,
		Format:    renderFormat,
		Workers:   renderWorkers,
		Theme:     renderTheme,
		Mode:      renderMode,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Fprintf(out, "Output: %s\n", cfg.OutputDir)
	fmt.Fprintln(out, "------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(cmd.Context(), batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    format,
		Options:   opts,
		Simplify:  cfg.Simplify,
		Workers:   cfg.Workers,
		Thumb:     renderThumb,
		Progress:  2 * time.Second,
		Log:       log,
	}, files)

	fmt.Fprintln(out, "------------------------------------------------------------")
	fmt.Fprintf(out, "Done in %.1fs\n", time.Since(start).Seconds())

	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	fmt.Fprintf(out, "Rendered: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Fprintf(out, "\nFailed (%d):\n", len(failed))
		limit := 20
		if len(failed) < limit {
			limit = len(failed)
		}
		for _, r := range failed[:limit] {
			fmt.Fprintf(out, "  %s: %s\n", r.Path, r.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warn("manifest write failed", zap.Error(err))
	} else {
		fmt.Fprintf(out, "Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failed), len(results))
	}
	return nil
}
