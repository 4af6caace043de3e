package trace

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/bvh"
	"pathtracer/internal/scene"
	"pathtracer/pkg/mathutil"
)

// LightSample is a point drawn on a sampled emissive triangle.
type LightSample struct {
	TriIndex   int
	Point      mgl32.Vec3
	Normal     mgl32.Vec3
	Area       float32
	Power      float32
	TotalPower float32
}

// SelectLight performs the two-pass scan spec.md section 4.4 describes:
// one pass to total emissive power across triangles, one to select an
// index proportional to it. Returns ok=false if no triangle emits.
func SelectLight(tris []scene.Triangle, r *RNG) (LightSample, bool) {
	var total float32
	for _, t := range tris {
		total += t.EmissivePower()
	}
	if total <= 0 {
		return LightSample{}, false
	}

	threshold := r.Float32() * total
	var running float32
	for i, t := range tris {
		p := t.EmissivePower()
		running += p
		if running >= threshold || i == len(tris)-1 {
			return LightSample{
				TriIndex:   i,
				Area:       t.Area(),
				Power:      p,
				TotalPower: total,
			}, true
		}
	}
	return LightSample{}, false
}

// SamplePointOnTriangle draws a uniform point on t using the barycentric
// mapping (1-sqrt(u), sqrt(u)*(1-v), sqrt(u)*v) from two uniform samples,
// per spec.md section 4.4.
func SamplePointOnTriangle(t scene.Triangle, u, v float32) (point, normal mgl32.Vec3) {
	su := math32.Sqrt(u)
	b0 := 1 - su
	b1 := su * (1 - v)
	b2 := su * v
	point = t.V0.Mul(b0).Add(t.V1.Mul(b1)).Add(t.V2.Mul(b2))
	return point, t.Normal()
}

// DirectLight computes the NEE contribution at a shading point with
// normal shNormal, importance-sampling one emissive triangle and
// weighting it by the MIS power heuristic against the BRDF pdf, per
// spec.md section 4.4 step 2. Returns the zero vector if there is no
// light, the light faces away, or the shadow ray is occluded.
func DirectLight(point, shNormal mgl32.Vec3, flat bvh.Flat, tris []scene.Triangle, spheres []scene.Sphere, r *RNG) mgl32.Vec3 {
	sample, ok := SelectLight(tris, r)
	if !ok {
		return mgl32.Vec3{}
	}
	lit := tris[sample.TriIndex]

	u, v := r.Float32Pair()
	lightPoint, lightNormal := SamplePointOnTriangle(lit, u, v)

	toLight := lightPoint.Sub(point)
	distance := toLight.Len()
	if distance <= 0 {
		return mgl32.Vec3{}
	}
	dir := toLight.Mul(1 / distance)

	cosLight := lightNormal.Dot(dir.Mul(-1))
	if cosLight <= 0 {
		return mgl32.Vec3{}
	}

	cosTheta := shNormal.Dot(dir)
	if cosTheta <= 0 {
		return mgl32.Vec3{}
	}

	shadowOrigin := point.Add(shNormal.Mul(0.01))
	shadowRay := Ray{Origin: shadowOrigin, Dir: dir}
	maxDist := distance - 0.1
	if occluded(shadowRay, maxDist, flat, tris, spheres) {
		return mgl32.Vec3{}
	}

	pdfL := (distance * distance) / (sample.Area * cosLight) * (sample.Power / sample.TotalPower)
	pdfB := mathutil.Clamp(cosTheta, 0, 1) / math32.Pi
	wL := mathutil.PowerHeuristic(pdfL, pdfB)

	scale := (cosTheta / math32.Pi) * wL / pdfL
	return lit.EmissionColor.Mul(lit.EmissionStrength * scale)
}

// occluded reports whether anything blocks the shadow ray before maxDist.
func occluded(r Ray, maxDist float32, flat bvh.Flat, tris []scene.Triangle, spheres []scene.Sphere) bool {
	var stats Stats
	if hit, ok := IntersectBVH(r, flat, tris, &stats); ok && hit.T < maxDist {
		return true
	}
	if hit, ok := IntersectSpheres(r, spheres); ok && hit.T < maxDist {
		return true
	}
	return false
}
