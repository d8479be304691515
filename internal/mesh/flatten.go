package mesh

// FaceStride is the number of buffer entries per triangle: the count plus three indices.
const FaceStride = 4

// Flatten encodes triangles as [3, a, b, c, 3, d, e, f, ...], preserving
// face order and index order.
func Flatten(faces [][3]int) []int {
	buf := make([]int, 0, len(faces)*FaceStride)
	for _, f := range faces {
		buf = append(buf, 3, f[0], f[1], f[2])
	}
	return buf
}

// NewSurfaceMesh builds a SurfaceMesh from a raw mesh, flattening its faces.
func NewSurfaceMesh(raw *RawMesh) *SurfaceMesh {
	return &SurfaceMesh{Vertices: raw.Vertices, Faces: Flatten(raw.Faces)}
}

// NewPointCloud keeps only the vertices of a raw mesh.
func NewPointCloud(raw *RawMesh) *PointCloud {
	return &PointCloud{Vertices: raw.Vertices}
}
