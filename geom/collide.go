package geom

import "math"

// Collides1D reports whether the closed intervals [a1,a2] and [b1,b2]
// overlap. Bounds may be given in either order.
func Collides1D(a1, a2, b1, b2 float64) bool {
	aMin, aMax := math.Min(a1, a2), math.Max(a1, a2)
	bMin, bMax := math.Min(b1, b2), math.Max(b1, b2)
	return aMax >= bMin && bMax >= aMin
}

// CollidesRect tests two x, y, w, h boxes on both axes.
func CollidesRect(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return Collides1D(x1, x1+w1, x2, x2+w2) && Collides1D(y1, y1+h1, y2, y2+h2)
}

// Collides tests the scaled bounds of two Regions. Touching edges collide.
func Collides(a, b Region) bool {
	return CollidesRect(
		a.ScaledX(), a.ScaledY(), a.ScaledW(), a.ScaledH(),
		b.ScaledX(), b.ScaledY(), b.ScaledW(), b.ScaledH(),
	)
}
