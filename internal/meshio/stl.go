package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

const (
	stlHeaderSize = 84
	stlRecordSize = 50
)

// readSTL accepts both binary and ASCII STL. STL stores every triangle with
// its own corner copies, so identical positions are merged into one vertex.
func readSTL(r io.Reader) (*mesh.RawMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stl: read: %w", err)
	}
	if isBinarySTL(data) {
		return readBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return readASCIISTL(data)
	}
	return nil, fmt.Errorf("stl: neither binary nor ascii (%d bytes)", len(data))
}

// isBinarySTL checks that the declared triangle count matches the payload
// size. ASCII files start with "solid", but so do some binary headers.
func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize {
		return false
	}
	n := binary.LittleEndian.Uint32(data[80:84])
	return uint64(len(data)) == stlHeaderSize+uint64(n)*stlRecordSize
}

type vertexSet struct {
	index map[mathutil.Vec3]int
	verts []mathutil.Vec3
}

func newVertexSet() *vertexSet {
	return &vertexSet{index: make(map[mathutil.Vec3]int)}
}

func (s *vertexSet) add(v mathutil.Vec3) int {
	if i, ok := s.index[v]; ok {
		return i
	}
	i := len(s.verts)
	s.verts = append(s.verts, v)
	s.index[v] = i
	return i
}

func readBinarySTL(data []byte) (*mesh.RawMesh, error) {
	n := int(binary.LittleEndian.Uint32(data[80:84]))
	set := newVertexSet()
	faces := make([][3]int, 0, n)

	for i := 0; i < n; i++ {
		rec := data[stlHeaderSize+i*stlRecordSize:]
		var tri [3]int
		for v := 0; v < 3; v++ {
			// Skip the 12-byte facet normal.
			off := 12 + v*12
			var p mathutil.Vec3
			for c := 0; c < 3; c++ {
				p[c] = float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off+c*4:])))
			}
			tri[v] = set.add(p)
		}
		faces = append(faces, tri)
	}
	return &mesh.RawMesh{Vertices: set.verts, Faces: faces}, nil
}

func readASCIISTL(data []byte) (*mesh.RawMesh, error) {
	set := newVertexSet()
	var faces [][3]int
	var corners []int

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "outer":
			corners = corners[:0]
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("stl line %d: vertex needs 3 coordinates", lineNo)
			}
			var p mathutil.Vec3
			for c := 0; c < 3; c++ {
				f, err := strconv.ParseFloat(fields[c+1], 64)
				if err != nil {
					return nil, fmt.Errorf("stl line %d: bad coordinate %q", lineNo, fields[c+1])
				}
				p[c] = f
			}
			corners = append(corners, set.add(p))
		case "endloop":
			if len(corners) < 3 {
				return nil, fmt.Errorf("stl line %d: facet with %d vertices", lineNo, len(corners))
			}
			faces = appendFan(faces, corners)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stl: read: %w", err)
	}
	return &mesh.RawMesh{Vertices: set.verts, Faces: faces}, nil
}
