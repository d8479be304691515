package meshio

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

// parseGLTFFile opens a .gltf or .glb file; external buffers resolve
// relative to the file.
func parseGLTFFile(path string) (*mesh.RawMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %s: %w", path, err)
	}
	raw, err := flattenScene(doc)
	if err != nil {
		return nil, fmt.Errorf("meshio: %s: %w", path, err)
	}
	return raw, nil
}

func readGLTF(r io.Reader) (*mesh.RawMesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf: decode: %w", err)
	}
	return flattenScene(doc)
}

type sceneBuilder struct {
	doc     *gltf.Document
	raw     *mesh.RawMesh
	visited map[*gltf.Node]bool
}

// flattenScene merges every mesh reachable from the default scene into one
// RawMesh, baking node transforms into the vertex positions. Documents
// without scenes contribute their meshes untransformed.
func flattenScene(doc *gltf.Document) (*mesh.RawMesh, error) {
	b := &sceneBuilder{doc: doc, raw: &mesh.RawMesh{}, visited: make(map[*gltf.Node]bool)}

	roots := sceneRoots(doc)
	if len(roots) == 0 {
		for _, m := range doc.Meshes {
			if err := b.addMesh(m, mgl64.Ident4()); err != nil {
				return nil, err
			}
		}
		return b.raw, nil
	}

	for _, n := range roots {
		if err := b.visit(n, mgl64.Ident4()); err != nil {
			return nil, err
		}
	}
	return b.raw, nil
}

func sceneRoots(doc *gltf.Document) []*gltf.Node {
	if len(doc.Scenes) == 0 {
		return nil
	}
	scene := doc.Scenes[0]
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		scene = doc.Scenes[*doc.Scene]
	}
	var roots []*gltf.Node
	for _, i := range scene.Nodes {
		if int(i) < len(doc.Nodes) {
			roots = append(roots, doc.Nodes[i])
		}
	}
	return roots
}

func (b *sceneBuilder) visit(n *gltf.Node, parent mgl64.Mat4) error {
	if b.visited[n] {
		return fmt.Errorf("gltf: node %q is reachable twice", n.Name)
	}
	b.visited[n] = true

	world := parent.Mul4(nodeMatrix(n))
	if n.Mesh != nil && int(*n.Mesh) < len(b.doc.Meshes) {
		if err := b.addMesh(b.doc.Meshes[*n.Mesh], world); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if int(c) >= len(b.doc.Nodes) {
			return fmt.Errorf("gltf: node %q has child %d out of range", n.Name, c)
		}
		if err := b.visit(b.doc.Nodes[c], world); err != nil {
			return err
		}
	}
	return nil
}

// nodeMatrix returns the local transform: the explicit matrix when one is
// set, otherwise T * R * S. Unset rotation and scale decode as zero arrays
// in some documents; those are treated as identity.
func nodeMatrix(n *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(n.Matrix)
	if m != (mgl64.Mat4{}) && m != mgl64.Ident4() {
		return m
	}

	t := mgl64.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])

	r := mgl64.Ident4()
	if q := n.Rotation; q != [4]float64{} {
		r = mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}.Normalize().Mat4()
	}

	s := mgl64.Ident4()
	if sc := n.Scale; sc != [3]float64{} {
		s = mgl64.Scale3D(sc[0], sc[1], sc[2])
	}
	return t.Mul4(r).Mul4(s)
}

func (b *sceneBuilder) addMesh(m *gltf.Mesh, world mgl64.Mat4) error {
	for _, p := range m.Primitives {
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("gltf: mesh %q positions: %w", m.Name, err)
		}

		base := len(b.raw.Vertices)
		for _, pos := range positions {
			w := world.Mul4x1(mgl64.Vec3{float64(pos[0]), float64(pos[1]), float64(pos[2])}.Vec4(1))
			b.raw.Vertices = append(b.raw.Vertices, mathutil.Vec3{w[0], w[1], w[2]})
		}

		// Points and lines have no surface; their positions still count
		// toward a point cloud.
		switch p.Mode {
		case gltf.PrimitiveTriangles, gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
		default:
			continue
		}

		var indices []uint32
		if p.Indices != nil {
			indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*p.Indices], nil)
			if err != nil {
				return fmt.Errorf("gltf: mesh %q indices: %w", m.Name, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for k := range indices {
				indices[k] = uint32(k)
			}
		}
		b.raw.Faces = appendPrimitiveFaces(b.raw.Faces, p.Mode, indices, base)
	}
	return nil
}

func appendPrimitiveFaces(faces [][3]int, mode gltf.PrimitiveMode, indices []uint32, base int) [][3]int {
	at := func(i int) int { return base + int(indices[i]) }
	switch mode {
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				faces = append(faces, [3]int{at(i), at(i + 1), at(i + 2)})
			} else {
				faces = append(faces, [3]int{at(i + 1), at(i), at(i + 2)})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			faces = append(faces, [3]int{at(0), at(i), at(i + 1)})
		}
	default:
		for i := 0; i+2 < len(indices); i += 3 {
			faces = append(faces, [3]int{at(i), at(i + 1), at(i + 2)})
		}
	}
	return faces
}
