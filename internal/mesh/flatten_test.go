package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshview/internal/mathutil"
)

func TestFlatten(t *testing.T) {
	got := Flatten([][3]int{{0, 1, 2}, {2, 3, 0}})
	assert.Equal(t, []int{3, 0, 1, 2, 3, 2, 3, 0}, got)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}

func TestSurfaceMeshRoundTrip(t *testing.T) {
	raw := &RawMesh{
		Vertices: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Faces:    [][3]int{{0, 1, 2}, {2, 3, 0}},
	}
	sm := NewSurfaceMesh(raw)
	require.Len(t, sm.Faces, 4*len(raw.Faces))
	assert.Equal(t, 2, sm.FaceCount())
	assert.Equal(t, [3]int{2, 3, 0}, sm.Face(1))
	assert.Equal(t, raw.Faces, sm.Triangles())
	assert.Equal(t, KindSurface, sm.Kind())
	assert.Equal(t, raw.Vertices, sm.Points())
}

func TestPointCloud(t *testing.T) {
	raw := &RawMesh{Vertices: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	var g Geometry = NewPointCloud(raw)
	assert.Equal(t, KindPointCloud, g.Kind())
	assert.Equal(t, raw.Vertices, g.Points())
	assert.Equal(t, "point_cloud", g.Kind().String())
}
