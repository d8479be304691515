package render

import (
	"math"

	"meshview/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters for flat shading.
type LightConfig struct {
	LightDir mathutil.Vec3
	HalfMain mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64
	Direct   float64
	SpecInt  float64
	SpecPow  float64
}

// DefaultLightConfig is a headlight slightly above and left of the camera.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{-0.3, 0.4, 1}.Normalize()
	viewDir := mathutil.Vec3{0, 0, 1}
	return LightConfig{
		LightDir: lightDir,
		HalfMain: lightDir.Add(viewDir).Normalize(),
		Ambient:  0.35,
		Direct:   0.75,
		SpecInt:  0.15,
		SpecPow:  16,
	}
}

// ComputeShade returns the lighting scalar for a unit face normal.
// Faces are lit from both sides, so winding does not matter.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	ndl := math.Abs(normal.Dot(lc.LightDir))
	ndh := math.Abs(normal.Dot(lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt
	return lc.Ambient + ndl*lc.Direct + spec
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
