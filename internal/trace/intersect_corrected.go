//go:build correctedbugs

package trace

import (
	"github.com/chewxy/math32"
	"pathtracer/internal/scene"
)

// intersectSphereCorrected is IntersectSphere with spec.md section 9(a)'s
// swapped root fixed: the far root t2 is returned instead of t1 when the
// near root falls at or below tMinSphere. Built only under the
// correctedbugs tag, for comparison against the preserved default
// behavior.
func intersectSphereCorrected(r Ray, s scene.Sphere) (Hit, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Hit{}, false
	}
	sq := math32.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	var tt float32
	switch {
	case t1 > tMinSphere:
		tt = t1
	case t2 > tMinSphere:
		tt = t2
	default:
		return Hit{}, false
	}

	point := r.Origin.Add(r.Dir.Mul(tt))
	normal := point.Sub(s.Center).Normalize()
	return Hit{
		T:        tt,
		Point:    point,
		Normal:   normal,
		Material: s.Material,
		HasHit:   true,
	}, true
}
