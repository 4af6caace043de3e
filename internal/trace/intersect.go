package trace

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/scene"
)

// tMin is the minimum accepted hit parameter for triangles and the BVH
// slab test; tMinSphere is the analogous bound for spheres. Both are
// load-bearing per spec.md section 9.
const (
	tMin       = 0.001
	tMinSphere = 0.01
	detEpsilon = 0.0001
)

// Hit is a surface intersection: parametric distance, world-space point
// and normal, and the material sampled at the hit.
type Hit struct {
	T        float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Material scene.Material
	HasHit   bool
}

// IntersectTriangle implements Möller–Trumbore with back-face culling:
// dot(normal, ray.Dir) > 0 is a miss. Returns ok=false on parallel rays,
// out-of-range barycentrics, or t <= tMin.
func IntersectTriangle(r Ray, t scene.Triangle) (Hit, bool) {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)

	normal := e1.Cross(e2).Normalize()
	if normal.Dot(r.Dir) > 0 {
		return Hit{}, false
	}

	pvec := r.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if math32.Abs(det) < detEpsilon {
		return Hit{}, false
	}
	invDet := 1 / det

	tvec := r.Origin.Sub(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	qvec := tvec.Cross(e1)
	v := r.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	tt := e2.Dot(qvec) * invDet
	if tt <= tMin {
		return Hit{}, false
	}

	point := r.Origin.Add(r.Dir.Mul(tt))
	return Hit{
		T:        tt,
		Point:    point,
		Normal:   normal,
		Material: t.Material,
		HasHit:   true,
	}, true
}

// IntersectSphere is the quadratic ray-sphere test. Preserves the
// documented bug in spec.md section 9(a): when the near root is at or
// below tMinSphere, the far-root branch reports t1 (the near root)
// instead of t2 in the returned hit's T — do not "fix" this, it is part
// of the behavior under test.
func IntersectSphere(r Ray, s scene.Sphere) (Hit, bool) {
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
		tt = t1 // preserved bug: should be t2
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

// closer returns whichever of a, b has the smaller T, treating a
// non-hit as infinitely far. okA/okB report whether each input is a hit.
func closer(a Hit, okA bool, b Hit, okB bool) (Hit, bool) {
	switch {
	case okA && okB:
		if a.T <= b.T {
			return a, true
		}
		return b, true
	case okA:
		return a, true
	case okB:
		return b, true
	default:
		return Hit{}, false
	}
}
