package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meshview/internal/config"
	"meshview/internal/logging"
)

// Global flags
var (
	configFile     string
	logFile        string
	verbose        bool
	size           int
	supersample    int
	simplifyFactor float64
)

var rootCmd = &cobra.Command{
	Use:   "meshview",
	Short: "Load a 3D mesh and render it as an image",
	Long: "meshview loads OBJ, STL, PLY and glTF meshes, turns files without faces " +
		"into point clouds, and renders them in solid gray or wireframe on a light " +
		"or dark background.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to a JSON or YAML config file")
	pf.StringVar(&logFile, "log-file", "", "also write JSON logs to this file (rotated)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&size, "size", 0, "output image edge in pixels (default 512)")
	pf.IntVar(&supersample, "supersample", 0, "supersampling factor (default 2)")
	pf.Float64Var(&simplifyFactor, "simplify", 0, "decimate surfaces to this fraction of faces, 0 < f < 1")
}

// setup loads the config file, applies global and command flags, and builds
// the logger.
func setup(extra config.Flags) (config.Config, *zap.Logger, error) {
	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return cfg, nil, err
		}
	}

	extra.LogFile = logFile
	extra.Verbose = verbose
	extra.Size = size
	extra.Supersample = supersample
	extra.Simplify = simplifyFactor
	if err := cfg.Resolve(extra); err != nil {
		return cfg, nil, err
	}

	log := logging.New(logging.Options{Verbose: cfg.Verbose, File: cfg.LogFile, MaxBackups: 3})
	return cfg, log, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
