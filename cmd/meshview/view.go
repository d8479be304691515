package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"meshview/internal/app"
	"meshview/internal/config"
	"meshview/internal/output"
)

var (
	viewTheme  string
	viewMode   string
	viewOut    string
	viewNoOpen bool
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Render one mesh and open it in the system image viewer",
	Long: "Render one mesh with the chosen theme and mode, save the picture, and " +
		"open it with the desktop's default viewer. Without a file argument a " +
		"native file dialog is shown.",
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	f := viewCmd.Flags()
	f.StringVar(&viewTheme, "theme", "", "background theme: light or dark")
	f.StringVar(&viewMode, "mode", "", "render mode: color or wireframe")
	f.StringVarP(&viewOut, "out", "o", "", "image path, .webp or .png (default: temp file)")
	f.BoolVar(&viewNoOpen, "no-open", false, "save the image without opening a viewer")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(config.Flags{Theme: viewTheme, Mode: viewMode})
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

	s := app.NewSession(app.Deps{Log: log}, opts)
	s.OutPath = viewOut
	s.Format = format
	s.Simplify = cfg.Simplify
	s.NoOpen = viewNoOpen

	ctx := cmd.Context()
	if len(args) == 1 {
		s.SelectPath(args[0])
	} else {
		if err := s.SelectFile(ctx); err != nil {
			return err
		}
		if _, ok := s.Selection().Path(); !ok {
			return errors.New(s.Status())
		}
	}

	out, err := s.Open(ctx)
	if errors.Is(err, app.ErrNoSelection) {
		return errors.New(s.Status())
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
