package render

import (
	"meshview/internal/mathutil"
)

// Projection maps model vertices to screen pixels.
type Projection struct {
	PX, PY, PZ []float64
}

// Project rotates verts by R, then fits their bounding box into a square
// canvas of renderSize pixels with margin pixels on every side. Depth is
// scaled like X and Y so face normals stay in proportion.
func Project(verts []mathutil.Vec3, R mathutil.Mat3, renderSize, margin int) Projection {
	n := len(verts)
	p := Projection{
		PX: make([]float64, n),
		PY: make([]float64, n),
		PZ: make([]float64, n),
	}

	rotated := make([]mathutil.Vec3, n)
	for i, v := range verts {
		rotated[i] = R.MulVec3(v)
	}
	box := mathutil.BoundsOf(rotated)
	center := box.Center()
	size := box.Size()

	span := size[0]
	if size[1] > span {
		span = size[1]
	}
	if span < 0.001 {
		span = 0.001
	}

	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	for i, t := range rotated {
		p.PX[i] = (t[0]-center[0])*scale + half
		p.PY[i] = -(t[1]-center[1])*scale + half
		p.PZ[i] = (t[2] - center[2]) * scale
	}
	return p
}
