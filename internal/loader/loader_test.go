package loader

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

func writeOBJ(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestLoadSingleTriangle(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	geom, err := Load(path)
	require.NoError(t, err)
	sm, ok := geom.(*mesh.SurfaceMesh)
	require.True(t, ok, "expected surface mesh, got %T", geom)
	assert.Len(t, sm.Vertices, 3)
	assert.Equal(t, []int{3, 0, 1, 2}, sm.Faces)
}

func TestLoadPreservesOrderAndBufferLength(t *testing.T) {
	path := writeOBJ(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0.5 0.5 1
f 1 2 3
f 3 4 1
f 1 2 5
`)
	geom, err := Load(path)
	require.NoError(t, err)
	sm := geom.(*mesh.SurfaceMesh)
	assert.Equal(t, []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0.5, 0.5, 1}}, sm.Vertices)
	assert.Len(t, sm.Faces, 4*3)
	assert.Equal(t, []int{3, 0, 1, 2, 3, 2, 3, 0, 3, 0, 1, 4}, sm.Faces)
}

func TestLoadPointCloud(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\n")

	geom, err := Load(path)
	require.NoError(t, err)
	pc, ok := geom.(*mesh.PointCloud)
	require.True(t, ok, "expected point cloud, got %T", geom)
	assert.Equal(t, []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, pc.Vertices)
}

func TestLoadIdempotent(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 1\nf 1 2 3 4\n")
	a, err := Load(path)
	require.NoError(t, err)
	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/file.obj")
	require.Error(t, err)
	assert.True(t, IsLoadFailed(err))
	assert.Contains(t, err.Error(), "/no/such/file.obj")

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, LoadFailed, le.Kind)
}

func TestLoadGarbageText(t *testing.T) {
	path := writeOBJ(t, "this is not a mesh\njust some words\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, IsInvalidModel(err) || IsLoadFailed(err))
}

func TestLoadMalformedOBJ(t *testing.T) {
	path := writeOBJ(t, "v 0 0 zero\n")
	_, err := Load(path)
	assert.True(t, IsLoadFailed(err))
}

func TestLoadOutOfRangeIndex(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n")
	_, err := Load(path)
	assert.True(t, IsInvalidModel(err))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0644))
	_, err := Load(path)
	assert.True(t, IsLoadFailed(err))
}

func TestLoaderRecoversParserPanic(t *testing.T) {
	l := NewWithParser(nil, func(string) (*mesh.RawMesh, error) {
		panic("boom")
	})
	geom, err := l.Load("x.obj")
	assert.Nil(t, geom)
	assert.True(t, IsLoadFailed(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestLoaderInvalidResults(t *testing.T) {
	cases := map[string]*mesh.RawMesh{
		"nil":       nil,
		"empty":     {},
		"nan":       {Vertices: []mathutil.Vec3{{math.NaN(), 0, 0}}},
		"neg index": {Vertices: []mathutil.Vec3{{0, 0, 0}}, Faces: [][3]int{{0, -1, 0}}},
	}
	for name, raw := range cases {
		raw := raw
		l := NewWithParser(nil, func(string) (*mesh.RawMesh, error) { return raw, nil })
		_, err := l.Load("x.obj")
		assert.True(t, IsInvalidModel(err), name)
	}
}

func TestLoaderWrapsParseError(t *testing.T) {
	cause := errors.New("disk on fire")
	l := NewWithParser(nil, func(string) (*mesh.RawMesh, error) { return nil, cause })
	_, err := l.Load("x.obj")
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsLoadFailed(err))
}

func TestLoaderLogsCounts(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	_, err := l.Load(path)
	require.NoError(t, err)

	loaded := logs.FilterMessage("mesh loaded").All()
	require.Len(t, loaded, 1)
	fields := loaded[0].ContextMap()
	assert.EqualValues(t, 3, fields["vertices"])
	assert.EqualValues(t, 1, fields["faces"])
	assert.Equal(t, 1, logs.FilterMessage("first faces").Len())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "invalid model", InvalidModel.String())
	assert.Equal(t, "load failed", LoadFailed.String())
}

func TestLoadPLYOversizedCounts(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "vertex count far beyond body",
			src: "ply\nformat ascii 1.0\nelement vertex 3000000000\n" +
				"property float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n",
		},
		{
			name: "face list length far beyond body",
			src: "ply\nformat ascii 1.0\nelement vertex 3\n" +
				"property float x\nproperty float y\nproperty float z\n" +
				"element face 1\nproperty list uint int vertex_indices\nend_header\n" +
				"0 0 0\n1 0 0\n0 1 0\n4000000000 0 1 2\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "huge.ply")
			require.NoError(t, os.WriteFile(path, []byte(tc.src), 0644))

			geom, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, geom)
			assert.True(t, IsLoadFailed(err), "got %v", err)
		})
	}
}
