package render

import (
	"image/color"
	"math"
)

// DrawLine draws a segment of the given width with no depth test, so every
// edge of a wireframe stays visible.
func DrawLine(fb *FrameBuffer, x0, y0, x1, y1 float64, width int, c color.NRGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		DrawPoint(fb, x0, y0, width, c)
		return
	}
	sx := dx / float64(steps)
	sy := dy / float64(steps)
	x, y := x0, y0
	for i := 0; i <= steps; i++ {
		DrawPoint(fb, x, y, width, c)
		x += sx
		y += sy
	}
}

// DrawPoint stamps a size×size square centered on (x, y).
func DrawPoint(fb *FrameBuffer, x, y float64, size int, c color.NRGBA) {
	if size < 1 {
		size = 1
	}
	half := float64(size) / 2
	minX := int(math.Floor(x - half + 0.5))
	minY := int(math.Floor(y - half + 0.5))
	for py := minY; py < minY+size; py++ {
		if py < 0 || py >= fb.Height {
			continue
		}
		for px := minX; px < minX+size; px++ {
			if px < 0 || px >= fb.Width {
				continue
			}
			fb.set(px, py, c)
		}
	}
}
