// Package loader turns a mesh file into renderable geometry. A file with
// vertices but no faces degrades to a point cloud; everything else becomes a
// surface mesh with a flattened face buffer.
package loader

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"meshview/internal/logging"
	"meshview/internal/mesh"
	"meshview/internal/meshio"
)

const previewFaces = 5

var (
	errEmpty       = errors.New("no vertices")
	errNotAMesh    = errors.New("parser returned no mesh")
	errBadVertices = errors.New("non-finite vertex coordinate")
)

// ParseFunc reads a mesh file into a RawMesh.
type ParseFunc func(path string) (*mesh.RawMesh, error)

// Loader loads mesh files. The zero value is not usable; use New.
type Loader struct {
	log   *zap.Logger
	parse ParseFunc
}

// New returns a Loader backed by meshio.Parse.
func New(log *zap.Logger) *Loader {
	return NewWithParser(log, meshio.Parse)
}

// NewWithParser returns a Loader using a custom parse function.
func NewWithParser(log *zap.Logger, parse ParseFunc) *Loader {
	return &Loader{log: logging.OrNop(log), parse: parse}
}

// Load is shorthand for New(nil).Load(path).
func Load(path string) (mesh.Geometry, error) {
	return New(nil).Load(path)
}

// Load parses path and normalizes the result. Every failure, including a
// panic inside the parser, comes back as *LoadError.
func (l *Loader) Load(path string) (geom mesh.Geometry, err error) {
	defer func() {
		if r := recover(); r != nil {
			geom = nil
			err = &LoadError{Kind: LoadFailed, Path: path, Err: fmt.Errorf("parser fault: %v", r)}
			l.log.Error("mesh load crashed", zap.String("path", path), zap.Any("panic", r))
		}
	}()

	raw, perr := l.parse(path)
	if perr != nil {
		l.log.Warn("mesh load failed", zap.String("path", path), zap.Error(perr))
		return nil, &LoadError{Kind: LoadFailed, Path: path, Err: perr}
	}

	if verr := validate(raw); verr != nil {
		l.log.Warn("not a usable mesh", zap.String("path", path), zap.Error(verr))
		return nil, &LoadError{Kind: InvalidModel, Path: path, Err: verr}
	}

	l.log.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(raw.Vertices)),
		zap.Int("faces", len(raw.Faces)),
	)

	if len(raw.Faces) == 0 {
		l.log.Info("no faces, treating as point cloud", zap.String("path", path))
		return mesh.NewPointCloud(raw), nil
	}

	n := len(raw.Faces)
	if n > previewFaces {
		n = previewFaces
	}
	l.log.Debug("first faces", zap.Any("faces", raw.Faces[:n]))

	return mesh.NewSurfaceMesh(raw), nil
}

// validate rejects results that cannot be rendered: nothing parsed, no
// vertices, non-finite positions, or faces pointing past the vertex list.
func validate(raw *mesh.RawMesh) error {
	if raw == nil {
		return errNotAMesh
	}
	if len(raw.Vertices) == 0 {
		return errEmpty
	}
	for i, v := range raw.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w at vertex %d", errBadVertices, i)
		}
	}
	nv := len(raw.Vertices)
	for i, f := range raw.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= nv {
				return fmt.Errorf("face %d references vertex %d of %d", i, idx, nv)
			}
		}
	}
	return nil
}
