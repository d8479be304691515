// Package postprocess resizes rendered frames.
package postprocess

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled square frame to targetSize×targetSize
// with Catmull-Rom filtering. Frames already at or below targetSize are
// returned as-is.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if targetSize <= 0 || (b.Dx() <= targetSize && b.Dy() <= targetSize) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Thumbnail fits img inside maxEdge×maxEdge, keeping its aspect ratio.
// Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	if maxEdge <= 0 || (b.Dx() <= maxEdge && b.Dy() <= maxEdge) {
		return img
	}
	return resize.Thumbnail(uint(maxEdge), uint(maxEdge), img, resize.Lanczos3)
}
