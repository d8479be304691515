// Package meshio reads mesh files in the common interchange formats and
// coerces them into a single triangle mesh. Multi-object OBJ files, glTF
// scenes and polygonal PLY faces are all merged and fan-triangulated.
package meshio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"meshview/internal/mesh"
)

// Format identifies a supported input format.
type Format string

const (
	FormatOBJ  Format = "obj"
	FormatSTL  Format = "stl"
	FormatPLY  Format = "ply"
	FormatGLTF Format = "gltf"
	FormatGLB  Format = "glb"
)

// ErrUnsupportedFormat is returned for extensions no reader handles.
var ErrUnsupportedFormat = errors.New("meshio: unsupported format")

// Formats lists the extensions Parse accepts, without the dot.
func Formats() []Format {
	return []Format{FormatOBJ, FormatSTL, FormatPLY, FormatGLTF, FormatGLB}
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range Formats() {
		if ext == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Parse reads the mesh file at path and returns it as one merged RawMesh.
func Parse(path string) (*mesh.RawMesh, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// glTF may reference sibling buffer files, so it is opened by path.
	if format == FormatGLTF || format == FormatGLB {
		return parseGLTFFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := ParseReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("meshio: %s: %w", path, err)
	}
	return raw, nil
}

// ParseReader decodes a mesh of the given format from r. glTF input must be
// self-contained (GLB or embedded data URIs).
func ParseReader(r io.Reader, format Format) (*mesh.RawMesh, error) {
	switch format {
	case FormatOBJ:
		return readOBJ(r)
	case FormatSTL:
		return readSTL(r)
	case FormatPLY:
		return readPLY(r)
	case FormatGLTF, FormatGLB:
		return readGLTF(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
