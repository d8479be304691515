// Package render draws a mesh.Geometry into an image: a gray flat-shaded
// surface or an edge-only wireframe, on a light or dark background.
package render

import (
	"errors"
	"image"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
	"meshview/internal/postprocess"
)

var errNoGeometry = errors.New("render: nil geometry")

// Render rasterizes geom with opts and returns an opts.Size square image.
func Render(geom mesh.Geometry, opts Options) (*image.NRGBA, error) {
	if geom == nil {
		return nil, errNoGeometry
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ss := opts.Supersample
	renderSize := opts.Size * ss
	fb := NewFrameBuffer(renderSize, renderSize, opts.Theme.Background())

	R := mathutil.Orbit(opts.Yaw, opts.Pitch)
	p := Project(geom.Points(), R, renderSize, opts.Margin*ss)

	switch g := geom.(type) {
	case *mesh.SurfaceMesh:
		drawSurface(fb, p, g, opts)
	case *mesh.PointCloud:
		drawPoints(fb, p, opts)
	}

	img := fb.Image()
	if ss > 1 {
		img = postprocess.Downsample(img, opts.Size)
	}
	return img, nil
}

func drawSurface(fb *FrameBuffer, p Projection, sm *mesh.SurfaceMesh, opts Options) {
	n := sm.FaceCount()
	if opts.Mode == Wireframe {
		width := opts.LineWidth * opts.Supersample
		c := opts.Theme.LineColor()
		nv := len(p.PX)
		for i := 0; i < n; i++ {
			f := sm.Face(i)
			if !inRange(f, nv) {
				continue
			}
			for k := 0; k < 3; k++ {
				a, b := f[k], f[(k+1)%3]
				DrawLine(fb, p.PX[a], p.PY[a], p.PX[b], p.PY[b], width, c)
			}
		}
		return
	}

	lc := DefaultLightConfig()
	for i := 0; i < n; i++ {
		RasterizeTriangle(fb, p.PX, p.PY, p.PZ, sm.Face(i), SurfaceGray, &lc)
	}
}

func drawPoints(fb *FrameBuffer, p Projection, opts Options) {
	c := SurfaceGray
	if opts.Mode == Wireframe {
		c = opts.Theme.LineColor()
	}
	size := opts.PointSize * opts.Supersample
	for i := range p.PX {
		DrawPoint(fb, p.PX[i], p.PY[i], size, c)
	}
}

func inRange(f [3]int, nv int) bool {
	for _, i := range f {
		if i < 0 || i >= nv {
			return false
		}
	}
	return true
}
