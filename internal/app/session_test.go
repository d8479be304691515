package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshview/internal/loader"
	"meshview/internal/mathutil"
	"meshview/internal/mesh"
	"meshview/internal/picker"
	"meshview/internal/render"
)

type fakeViewer struct {
	opened []string
	err    error
}

func (f *fakeViewer) Open(_ context.Context, path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func smallOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Size = 32
	opts.Margin = 2
	opts.Supersample = 1
	return opts
}

func triangleLoader(calls *[]string) LoadFunc {
	return func(path string) (mesh.Geometry, error) {
		*calls = append(*calls, path)
		return mesh.NewSurfaceMesh(&mesh.RawMesh{
			Vertices: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Faces:    [][3]int{{0, 1, 2}},
		}), nil
	}
}

func TestOpenWithoutSelection(t *testing.T) {
	var loads []string
	v := &fakeViewer{}
	s := NewSession(Deps{Picker: picker.Static(""), Viewer: v, Load: triangleLoader(&loads)}, smallOptions())

	_, err := s.Open(context.Background())
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, StatusNoSelection, s.Status())
	assert.Empty(t, loads)
	assert.Empty(t, v.opened)
}

func TestSelectAndOpen(t *testing.T) {
	var loads []string
	v := &fakeViewer{}
	s := NewSession(Deps{Picker: picker.Static("/models/cube.obj"), Viewer: v, Load: triangleLoader(&loads)}, smallOptions())
	s.OutPath = filepath.Join(t.TempDir(), "cube.png")

	require.NoError(t, s.SelectFile(context.Background()))
	assert.Equal(t, "selected file: cube.obj", s.Status())

	require.NoError(t, s.SetTheme("dark"))
	require.NoError(t, s.SetMode("wireframe"))
	opts := s.Options()
	assert.Equal(t, render.Dark, opts.Theme)
	assert.Equal(t, render.Wireframe, opts.Mode)
	assert.Equal(t, 32, opts.Size)

	out, err := s.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s.OutPath, out)
	assert.FileExists(t, out)
	assert.Equal(t, []string{"/models/cube.obj"}, loads)
	assert.Equal(t, []string{out}, v.opened)
	assert.Equal(t, "opened cube.obj", s.Status())
}

func TestCancelKeepsPreviousSelection(t *testing.T) {
	var loads []string
	s := NewSession(Deps{Picker: picker.Static(""), Viewer: &fakeViewer{}, Load: triangleLoader(&loads)}, smallOptions())
	s.SelectPath("/models/a.obj")

	require.NoError(t, s.SelectFile(context.Background()))
	assert.Equal(t, "selection cancelled", s.Status())
	p, ok := s.Selection().Path()
	assert.True(t, ok)
	assert.Equal(t, "/models/a.obj", p)
}

func TestOpenLoadFailureOpensNothing(t *testing.T) {
	v := &fakeViewer{}
	failing := func(path string) (mesh.Geometry, error) {
		return nil, &loader.LoadError{Kind: loader.InvalidModel, Path: path, Err: errors.New("no vertices")}
	}
	s := NewSession(Deps{Picker: picker.Static(""), Viewer: v, Load: failing}, smallOptions())
	s.SelectPath("/models/empty.obj")
	require.NoError(t, s.SetTheme("dark"))

	_, err := s.Open(context.Background())
	require.Error(t, err)
	assert.True(t, loader.IsInvalidModel(err))
	assert.Contains(t, s.Status(), "not a valid 3D model")
	assert.Empty(t, v.opened)

	// state survives the failure
	assert.Equal(t, render.Dark, s.Theme())
	p, _ := s.Selection().Path()
	assert.Equal(t, "/models/empty.obj", p)
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	s := NewSession(Deps{Picker: picker.Static(""), Viewer: &fakeViewer{}}, smallOptions())
	assert.Error(t, s.SetTheme("blue"))
	assert.Equal(t, render.Light, s.Theme())
	assert.Error(t, s.SetMode("solid"))
	assert.Equal(t, render.Color, s.Mode())
}

func TestOpenNoOpenWritesTempFile(t *testing.T) {
	var loads []string
	v := &fakeViewer{}
	s := NewSession(Deps{Picker: picker.Static(""), Viewer: v, Load: triangleLoader(&loads)}, smallOptions())
	s.SelectPath("/models/tri.obj")
	s.NoOpen = true

	out, err := s.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(out) })
	assert.FileExists(t, out)
	assert.Equal(t, ".webp", filepath.Ext(out))
	assert.Empty(t, v.opened)
}

func TestOpenRealLoaderWithFile(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(model, []byte("v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"), 0644))

	v := &fakeViewer{}
	s := NewSession(Deps{Picker: picker.Static(model), Viewer: v}, smallOptions())
	s.OutPath = filepath.Join(dir, "quad.png")
	require.NoError(t, s.SelectFile(context.Background()))

	_, err := s.Open(context.Background())
	require.NoError(t, err)
	assert.Len(t, v.opened, 1)
}
