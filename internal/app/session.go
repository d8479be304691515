// Package app holds the interactive flow: choose a file, pick a theme and a
// render mode, then open the result in the system viewer.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"meshview/internal/loader"
	"meshview/internal/logging"
	"meshview/internal/mesh"
	"meshview/internal/meshio"
	"meshview/internal/output"
	"meshview/internal/picker"
	"meshview/internal/render"
	"meshview/internal/simplify"
	"meshview/internal/viewer"
)

// StatusNoSelection is shown when Open is invoked before any file is chosen.
const StatusNoSelection = "select a file first"

// ErrNoSelection is returned by Open when no file has been chosen.
var ErrNoSelection = errors.New("app: no file selected")

// LoadFunc turns a path into geometry.
type LoadFunc func(path string) (mesh.Geometry, error)

// Deps are the collaborators a Session drives.
type Deps struct {
	Picker picker.Picker
	Viewer viewer.Opener
	Load   LoadFunc
	Log    *zap.Logger
}

// Session is the state behind the file-open form.
type Session struct {
	picker picker.Picker
	viewer viewer.Opener
	load   LoadFunc
	log    *zap.Logger

	selection picker.Selection
	options   render.Options
	status    string

	// OutPath is where Open writes the image. Empty means a fresh file in
	// the OS temp directory.
	OutPath string
	// Format is used for temp files; OutPath's extension wins otherwise.
	Format output.Format
	// Simplify is a decimation factor in (0, 1); other values disable it.
	Simplify float64
	// NoOpen skips the viewer after saving.
	NoOpen bool
}

// NewSession returns a Session with default render options. Missing
// collaborators fall back to the OS dialog, the OS viewer and loader.Load.
func NewSession(d Deps, opts render.Options) *Session {
	log := logging.OrNop(d.Log)
	s := &Session{
		picker:  d.Picker,
		viewer:  d.Viewer,
		load:    d.Load,
		log:     log,
		options: opts,
		Format:  output.WebP,
	}
	if s.picker == nil {
		s.picker = picker.NewDialogPicker("Select a 3D model", meshExtensions())
	}
	if s.viewer == nil {
		s.viewer = viewer.System{}
	}
	if s.load == nil {
		s.load = loader.New(log).Load
	}
	s.status = s.selection.Label()
	return s
}

// Selection returns the current file choice.
func (s *Session) Selection() picker.Selection { return s.selection }

// Status returns the latest user-facing message.
func (s *Session) Status() string { return s.status }

// Theme returns the selected background theme.
func (s *Session) Theme() render.Theme { return s.options.Theme }

// Mode returns the selected render mode.
func (s *Session) Mode() render.Mode { return s.options.Mode }

// Options returns the full render options.
func (s *Session) Options() render.Options { return s.options }

// SetTheme parses and stores a theme name. Unknown names leave the current
// theme in place.
func (s *Session) SetTheme(name string) error {
	t, err := render.ParseTheme(name)
	if err != nil {
		return err
	}
	s.options.Theme = t
	return nil
}

// SetMode parses and stores a render mode name.
func (s *Session) SetMode(name string) error {
	m, err := render.ParseMode(name)
	if err != nil {
		return err
	}
	s.options.Mode = m
	return nil
}

// SelectPath sets the selection directly, as when a path is passed on the
// command line.
func (s *Session) SelectPath(path string) {
	s.selection = picker.Selected(path)
	s.status = s.selection.Label()
}

// SelectFile asks the picker for a file. A cancelled dialog is recorded in
// the selection and is not an error.
func (s *Session) SelectFile(ctx context.Context) error {
	path, err := s.picker.Pick(ctx)
	switch {
	case errors.Is(err, picker.ErrCancelled):
		s.selection = s.selection.Cancelled()
		s.status = s.selection.Label()
		s.log.Info("file selection cancelled")
		return nil
	case err != nil:
		s.status = "file dialog failed: " + err.Error()
		return err
	}
	s.SelectPath(path)
	s.log.Info("file selected", zap.String("path", path))
	return nil
}

// Open loads the selected file, renders it with the current theme and mode,
// writes the image and hands it to the viewer. It returns the image path.
// On failure the status explains why and nothing is opened.
func (s *Session) Open(ctx context.Context) (string, error) {
	path, ok := s.selection.Path()
	if !ok {
		s.status = StatusNoSelection
		return "", ErrNoSelection
	}

	geom, err := s.load(path)
	if err != nil {
		s.status = loadStatus(err)
		return "", err
	}
	geom = simplify.Geometry(geom, s.Simplify)

	img, err := render.Render(geom, s.options)
	if err != nil {
		s.status = "render failed: " + err.Error()
		return "", err
	}

	outPath, err := s.outputPath(path)
	if err != nil {
		s.status = "cannot create output: " + err.Error()
		return "", err
	}
	if err := output.Save(outPath, img); err != nil {
		s.status = "cannot write image: " + err.Error()
		return "", err
	}
	s.log.Info("image written",
		zap.String("model", path),
		zap.String("image", outPath),
		zap.Stringer("theme", s.options.Theme),
		zap.Stringer("mode", s.options.Mode),
	)

	if s.NoOpen {
		s.status = "saved " + outPath
		return outPath, nil
	}
	if err := s.viewer.Open(ctx, outPath); err != nil {
		s.status = "cannot open viewer: " + err.Error()
		return outPath, err
	}
	s.status = "opened " + filepath.Base(path)
	return outPath, nil
}

func (s *Session) outputPath(model string) (string, error) {
	if s.OutPath != "" {
		return s.OutPath, nil
	}
	base := strings.TrimSuffix(filepath.Base(model), filepath.Ext(model))
	f, err := os.CreateTemp("", "meshview-"+base+"-*"+s.Format.Ext())
	if err != nil {
		return "", fmt.Errorf("app: temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("app: temp file: %w", err)
	}
	return name, nil
}

func loadStatus(err error) string {
	switch {
	case loader.IsInvalidModel(err):
		return "not a valid 3D model: " + err.Error()
	case loader.IsLoadFailed(err):
		return "failed to load model: " + err.Error()
	}
	return err.Error()
}

func meshExtensions() []string {
	formats := meshio.Formats()
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
