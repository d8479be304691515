package batch

import (
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"meshview/internal/output"
	"meshview/internal/render"
)

func smallOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Size = 32
	opts.Margin = 2
	opts.Supersample = 1
	return opts
}

func writeModels(t *testing.T, dir string) []string {
	t.Helper()
	files := map[string]string{
		"tri.obj":    "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"points.obj": "v 0 0 0\nv 1 1 1\n",
		"empty.obj":  "# nothing\n",
	}
	var paths []string
	for _, name := range []string{"tri.obj", "points.obj", "empty.obj"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(files[name]), 0644))
		paths = append(paths, p)
	}
	return paths
}

func TestRun(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	paths := writeModels(t, in)

	core, logs := observer.New(zap.InfoLevel)
	results := Run(context.Background(), Config{
		OutputDir: out,
		Format:    output.PNG,
		Options:   smallOptions(),
		Workers:   2,
		Log:       zap.New(core),
	}, paths)

	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.Equal(t, "surface_mesh", results[0].Kind)
	assert.Equal(t, 3, results[0].Vertices)
	assert.Equal(t, 1, results[0].Faces)
	assert.Equal(t, filepath.Join(out, "tri.png"), results[0].Output)
	assert.FileExists(t, results[0].Output)

	assert.True(t, results[1].Success)
	assert.Equal(t, "point_cloud", results[1].Kind)
	assert.Zero(t, results[1].Faces)

	assert.False(t, results[2].Success)
	assert.NotEmpty(t, results[2].Error)
	assert.NoFileExists(t, filepath.Join(out, "empty.png"))

	assert.Equal(t, 1, logs.FilterMessage("batch finished").Len())
}

func TestRunCancelled(t *testing.T) {
	paths := writeModels(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, Config{OutputDir: t.TempDir(), Options: smallOptions(), Workers: 1}, paths)
	require.Len(t, results, 3)
	for _, r := range results {
		// a file may slip through before cancellation is observed
		if !r.Success {
			assert.NotEmpty(t, r.Error)
		}
	}
}

func TestOutputNamesDisambiguate(t *testing.T) {
	cases := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "same base in two dirs",
			files: []string{"a/cube.obj", "b/cube.stl", "c/ball.ply"},
			want:  []string{"cube.webp", "cube_2.webp", "ball.webp"},
		},
		{
			name:  "generated suffix already taken by an input",
			files: []string{"a.obj", "a_2.obj", "x/a.obj"},
			want:  []string{"a.webp", "a_2.webp", "a_3.webp"},
		},
		{
			name:  "input named like another input's thumbnail",
			files: []string{"a.obj", "a_thumb.obj"},
			want:  []string{"a.webp", "a_thumb_2.webp"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, outputNames(tc.files, output.WebP))
		})
	}
}

func TestRunWritesThumbnails(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	paths := writeModels(t, in)[:1]

	results := Run(context.Background(), Config{
		OutputDir: out,
		Format:    output.PNG,
		Options:   smallOptions(),
		Workers:   1,
		Thumb:     8,
	}, paths)

	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, filepath.Join(out, "tri_thumb.png"), results[0].Thumb)

	f, err := os.Open(results[0].Thumb)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 8, cfg.Height)

	manifest := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Equal(t, "tri_thumb.png", entries[0].Thumb)
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	results := []Result{
		{Path: "m/a.obj", Output: filepath.Join(dir, "a.webp"), Kind: "surface_mesh", Vertices: 3, Faces: 1, Success: true},
		{Path: "m/b.obj", Error: "loader: invalid model: m/b.obj: no vertices"},
	}
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "a.webp", entries[0].Image)
	assert.Equal(t, 1, entries[0].Faces)
	assert.Empty(t, entries[1].Image)
	assert.Contains(t, entries[1].Error, "no vertices")
}
