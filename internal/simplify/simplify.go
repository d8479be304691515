// Package simplify decimates triangle meshes with quadric error metrics.
package simplify

import (
	fsimplify "github.com/fogleman/simplify"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

// Simplify reduces sm to roughly factor times its triangle count. Factors
// outside (0, 1) and empty meshes return sm itself.
func Simplify(sm *mesh.SurfaceMesh, factor float64) *mesh.SurfaceMesh {
	if sm == nil || factor <= 0 || factor >= 1 || sm.FaceCount() == 0 {
		return sm
	}

	tris := make([]*fsimplify.Triangle, 0, sm.FaceCount())
	for _, f := range sm.Triangles() {
		tris = append(tris, fsimplify.NewTriangle(
			toVector(sm.Vertices[f[0]]),
			toVector(sm.Vertices[f[1]]),
			toVector(sm.Vertices[f[2]]),
		))
	}
	out := fsimplify.NewMesh(tris).Simplify(factor)
	return fromSoup(out.Triangles)
}

// Geometry simplifies surface meshes and passes point clouds through.
func Geometry(g mesh.Geometry, factor float64) mesh.Geometry {
	if sm, ok := g.(*mesh.SurfaceMesh); ok {
		return Simplify(sm, factor)
	}
	return g
}

// fromSoup welds identical corner positions back into an indexed mesh,
// numbering vertices in order of first use.
func fromSoup(tris []*fsimplify.Triangle) *mesh.SurfaceMesh {
	index := make(map[fsimplify.Vector]int, len(tris))
	raw := &mesh.RawMesh{Faces: make([][3]int, 0, len(tris))}

	vertexID := func(v fsimplify.Vector) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(raw.Vertices)
		index[v] = i
		raw.Vertices = append(raw.Vertices, mathutil.Vec3{v.X, v.Y, v.Z})
		return i
	}

	for _, t := range tris {
		raw.Faces = append(raw.Faces, [3]int{vertexID(t.V1), vertexID(t.V2), vertexID(t.V3)})
	}
	return mesh.NewSurfaceMesh(raw)
}

func toVector(v mathutil.Vec3) fsimplify.Vector {
	return fsimplify.Vector{X: v[0], Y: v[1], Z: v[2]}
}
