// Package stats summarizes a loaded geometry for display.
package stats

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

// degenerateTol is relative to the bounding-box diagonal.
const degenerateTol = 1e-9

// Stats describes a geometry's size and shape.
type Stats struct {
	Kind            mesh.Kind
	Vertices        int
	Faces           int
	Bounds          r3.Box
	Dimensions      r3.Vec
	Center          r3.Vec
	SurfaceArea     float64
	DegenerateFaces int
}

// Compute walks geom once for bounds and once per face for area.
func Compute(geom mesh.Geometry) Stats {
	pts := geom.Points()
	s := Stats{Kind: geom.Kind(), Vertices: len(pts)}
	if len(pts) == 0 {
		return s
	}

	s.Bounds = bounds(pts)
	s.Dimensions = s.Bounds.Size()
	s.Center = s.Bounds.Center()

	sm, ok := geom.(*mesh.SurfaceMesh)
	if !ok {
		return s
	}
	s.Faces = sm.FaceCount()
	tol := degenerateTol * r3.Norm(s.Dimensions)
	for i := 0; i < s.Faces; i++ {
		f := sm.Face(i)
		tri := r3.Triangle{vec(pts[f[0]]), vec(pts[f[1]]), vec(pts[f[2]])}
		if tri.IsDegenerate(tol) {
			s.DegenerateFaces++
			continue
		}
		s.SurfaceArea += tri.Area()
	}
	return s
}

// Write prints s as aligned key/value lines.
func (s Stats) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"kind:        %s\n"+
			"vertices:    %d\n"+
			"faces:       %d\n"+
			"bounds min:  %s\n"+
			"bounds max:  %s\n"+
			"dimensions:  %s\n"+
			"center:      %s\n"+
			"area:        %.6g\n"+
			"degenerate:  %d\n",
		s.Kind, s.Vertices, s.Faces,
		fmtVec(s.Bounds.Min), fmtVec(s.Bounds.Max),
		fmtVec(s.Dimensions), fmtVec(s.Center),
		s.SurfaceArea, s.DegenerateFaces)
	return err
}

func bounds(pts []mathutil.Vec3) r3.Box {
	inf := math.Inf(1)
	b := r3.Box{Min: r3.Vec{X: inf, Y: inf, Z: inf}, Max: r3.Vec{X: -inf, Y: -inf, Z: -inf}}
	for _, p := range pts {
		b.Min = r3.Vec{X: math.Min(b.Min.X, p[0]), Y: math.Min(b.Min.Y, p[1]), Z: math.Min(b.Min.Z, p[2])}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p[0]), Y: math.Max(b.Max.Y, p[1]), Z: math.Max(b.Max.Z, p[2])}
	}
	return b
}

func vec(p mathutil.Vec3) r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

func fmtVec(v r3.Vec) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z)
}
