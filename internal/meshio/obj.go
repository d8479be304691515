package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

const maxLineSize = 1 << 20

// readOBJ reads positions and faces. Texture coordinates, normals, materials
// and groups are ignored; every object in the file lands in one mesh.
func readOBJ(r io.Reader) (*mesh.RawMesh, error) {
	raw := &mesh.RawMesh{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates, got %d", lineNo, len(fields)-1)
			}
			var v mathutil.Vec3
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: bad coordinate %q", lineNo, fields[k+1])
				}
				v[k] = f
			}
			raw.Vertices = append(raw.Vertices, v)
		case "f":
			args := fields[1:]
			if len(args) < 3 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices, got %d", lineNo, len(args))
			}
			idx := make([]int, len(args))
			for i, arg := range args {
				vi, err := objIndex(arg, len(raw.Vertices))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				idx[i] = vi
			}
			raw.Faces = appendFan(raw.Faces, idx)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: read: %w", err)
	}
	return raw, nil
}

// objIndex resolves the position part of a face token (v, v/vt, v//vn,
// v/vt/vn) to a 0-based index. Negative values count back from the most
// recently defined vertex.
func objIndex(token string, defined int) (int, error) {
	pos := token
	if i := strings.IndexByte(token, '/'); i >= 0 {
		pos = token[:i]
	}
	n, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", token)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return defined + n, nil
	}
	return 0, fmt.Errorf("face index 0 in %q", token)
}

// appendFan triangulates a convex polygon as a fan around its first vertex.
func appendFan(faces [][3]int, poly []int) [][3]int {
	for i := 1; i < len(poly)-1; i++ {
		faces = append(faces, [3]int{poly[0], poly[i], poly[i+1]})
	}
	return faces
}
