package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

func grid(n int) *mesh.SurfaceMesh {
	raw := &mesh.RawMesh{}
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			raw.Vertices = append(raw.Vertices, mathutil.Vec3{float64(x), float64(y), 0})
		}
	}
	id := func(x, y int) int { return y*(n+1) + x }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			raw.Faces = append(raw.Faces,
				[3]int{id(x, y), id(x+1, y), id(x+1, y+1)},
				[3]int{id(x, y), id(x+1, y+1), id(x, y+1)},
			)
		}
	}
	return mesh.NewSurfaceMesh(raw)
}

func TestSimplifyReducesFaces(t *testing.T) {
	in := grid(16)
	require.Equal(t, 512, in.FaceCount())

	out := Simplify(in, 0.5)
	require.NotNil(t, out)
	assert.Less(t, out.FaceCount(), in.FaceCount())
	assert.Greater(t, out.FaceCount(), 0)
	assert.Len(t, out.Faces, out.FaceCount()*mesh.FaceStride)

	for i := 0; i < out.FaceCount(); i++ {
		for _, v := range out.Face(i) {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, len(out.Vertices))
		}
	}
}

func TestSimplifyFactorOutOfRange(t *testing.T) {
	in := grid(4)
	for _, f := range []float64{0, -1, 1, 1.5} {
		assert.Same(t, in, Simplify(in, f), "factor %v", f)
	}
}

func TestGeometryPassesPointClouds(t *testing.T) {
	pc := &mesh.PointCloud{Vertices: []mathutil.Vec3{{0, 0, 0}}}
	assert.Same(t, pc, Geometry(pc, 0.5).(*mesh.PointCloud))
}

func TestFromSoupWeldsSharedCorners(t *testing.T) {
	in := grid(1)
	tris := Simplify(in, 0.5)
	require.NotNil(t, tris)

	seen := map[mathutil.Vec3]bool{}
	for _, v := range tris.Vertices {
		assert.False(t, seen[v], "duplicate vertex %v", v)
		seen[v] = true
	}
}
