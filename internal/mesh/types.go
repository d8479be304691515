package mesh

import "meshview/internal/mathutil"

// RawMesh is the parser output: vertex positions and triangle faces whose
// entries index into Vertices.
type RawMesh struct {
	Vertices []mathutil.Vec3
	Faces    [][3]int
}

// Kind names the two Geometry variants.
type Kind int

const (
	KindPointCloud Kind = iota + 1
	KindSurface
)

func (k Kind) String() string {
	switch k {
	case KindPointCloud:
		return "point_cloud"
	case KindSurface:
		return "surface_mesh"
	}
	return "unknown"
}

// Geometry is a renderable value: either *PointCloud or *SurfaceMesh.
type Geometry interface {
	Kind() Kind
	Points() []mathutil.Vec3
	geometry()
}

// PointCloud is a set of positions with no connectivity.
type PointCloud struct {
	Vertices []mathutil.Vec3
}

func (*PointCloud) Kind() Kind                { return KindPointCloud }
func (p *PointCloud) Points() []mathutil.Vec3 { return p.Vertices }
func (*PointCloud) geometry()                 {}

// SurfaceMesh holds vertices plus a flattened face buffer: each triangle is
// stored as 3 followed by its three vertex indices.
type SurfaceMesh struct {
	Vertices []mathutil.Vec3
	Faces    []int
}

func (*SurfaceMesh) Kind() Kind                { return KindSurface }
func (s *SurfaceMesh) Points() []mathutil.Vec3 { return s.Vertices }
func (*SurfaceMesh) geometry()                 {}

// FaceCount returns the number of triangles in the buffer.
func (s *SurfaceMesh) FaceCount() int {
	return len(s.Faces) / FaceStride
}

// Face returns the vertex indices of triangle i.
func (s *SurfaceMesh) Face(i int) [3]int {
	o := i*FaceStride + 1
	return [3]int{s.Faces[o], s.Faces[o+1], s.Faces[o+2]}
}

// Triangles unpacks the face buffer back into index triples.
func (s *SurfaceMesh) Triangles() [][3]int {
	n := s.FaceCount()
	out := make([][3]int, n)
	for i := 0; i < n; i++ {
		out[i] = s.Face(i)
	}
	return out
}
