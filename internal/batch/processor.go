// Package batch renders many mesh files with a worker pool.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"meshview/internal/loader"
	"meshview/internal/logging"
	"meshview/internal/mesh"
	"meshview/internal/output"
	"meshview/internal/postprocess"
	"meshview/internal/render"
	"meshview/internal/simplify"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Format    output.Format
	Options   render.Options
	Simplify  float64
	Workers   int
	// Thumb, when positive, also writes <name>_thumb.<ext> no larger than
	// Thumb pixels on a side.
	Thumb int

	// Progress is how often a progress line is logged; zero disables it.
	Progress time.Duration
	Log      *zap.Logger
	// Load defaults to loader.New(Log).Load.
	Load func(path string) (mesh.Geometry, error)
}

// Result holds the outcome of processing one file.
type Result struct {
	Path     string
	Output   string
	Thumb    string
	Kind     string
	Vertices int
	Faces    int
	Success  bool
	Error    string
}

// Run processes all files using a worker pool. Results are in input order.
// Cancelling ctx stops handing out new files; files already in flight
// finish.
func Run(ctx context.Context, cfg Config, files []string) []Result {
	log := logging.OrNop(cfg.Log)
	if cfg.Load == nil {
		cfg.Load = loader.New(log).Load
	}
	if cfg.Format == "" {
		cfg.Format = output.WebP
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						log.Info("progress",
							zap.Int64("done", p),
							zap.Int("total", total),
							zap.Float64("files_per_sec", rate),
						)
					}
				}
			}
		}()
	}

	names := outputNames(files, cfg.Format)

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processFile(cfg, files[idx], filepath.Join(cfg.OutputDir, names[idx]))
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
send:
	for i := range files {
		select {
		case <-ctx.Done():
			break send
		case jobs <- i:
			sent++
		}
	}
	close(jobs)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Path: files[i], Error: ctx.Err().Error()}
	}

	log.Info("batch finished",
		zap.Int("files", total),
		zap.Int("ok", countSuccess(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results
}

func processFile(cfg Config, path, outPath string) Result {
	res := Result{Path: path}

	geom, err := cfg.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Kind = geom.Kind().String()
	res.Vertices = len(geom.Points())

	geom = simplify.Geometry(geom, cfg.Simplify)
	if sm, ok := geom.(*mesh.SurfaceMesh); ok {
		res.Faces = sm.FaceCount()
	}

	img, err := render.Render(geom, cfg.Options)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if err := output.Save(outPath, img); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Thumb > 0 {
		thumbPath := thumbName(outPath)
		if err := output.Save(thumbPath, postprocess.Thumbnail(img, cfg.Thumb)); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Thumb = thumbPath
	}

	res.Output = outPath
	res.Success = true
	return res
}

// outputNames derives one image name per input from its base name,
// suffixing _2, _3, ... until the name is unused. The matching _thumb name is
// reserved too so a thumbnail never lands on another input's image.
func outputNames(files []string, f output.Format) []string {
	names := make([]string, len(files))
	used := make(map[string]bool, len(files))
	for i, p := range files {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		name := base
		for n := 2; used[name] || used[name+"_thumb"]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true
		used[name+"_thumb"] = true
		names[i] = name + f.Ext()
	}
	return names
}

func thumbName(outPath string) string {
	ext := filepath.Ext(outPath)
	return strings.TrimSuffix(outPath, ext) + "_thumb" + ext
}

func countSuccess(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
