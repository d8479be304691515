package mathutil

import "math"

// Bounds is an axis-aligned bounding box. The zero value is not valid;
// start from EmptyBounds and Extend it.
type Bounds struct {
	Min, Max Vec3
}

// EmptyBounds returns an inverted box that any Extend call will replace.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// BoundsOf returns the box enclosing every point in pts.
func BoundsOf(pts []Vec3) Bounds {
	b := EmptyBounds()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

func (b Bounds) Extend(p Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Bounds) Size() Vec3 {
	if b.Empty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}
