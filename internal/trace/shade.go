package trace

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/bvh"
	"pathtracer/internal/scene"
	"pathtracer/pkg/mathutil"
)

// maxBounceCount caps a single path at six bounces, per spec.md section
// 4.4.
const maxBounceCount = 6

// rrStartBounce is the first bounce index (0-based) at which Russian
// roulette termination is considered.
const rrStartBounce = 3

// pdfLEstimate is the fixed stand-in for the true light-sampling pdf
// used when weighting BRDF-sampled emissive hits. This is the
// documented bug in spec.md section 9(c): it should be the true
// light-sampling pdf, not a constant. Preserved, not corrected.
const pdfLEstimate = 0.001

// sky is the constant miss color.
var sky = mgl32.Vec3{0.4, 0.4, 0.4}

// World bundles the flattened BVH and the geometry it indexes, the
// shape the kernel's buffers carry.
type World struct {
	Flat      bvh.Flat
	Triangles []scene.Triangle
	Spheres   []scene.Sphere
}

// PathRadiance traces one full path from r and returns its unbiased
// radiance estimate, implementing the per-bounce state machine of
// spec.md section 4.4: intersect, direct-light (NEE+MIS), BRDF-sampled
// emissive add, throughput update, early-out, Russian roulette, scatter.
func PathRadiance(r Ray, w World, rng *RNG, stats *Stats) mgl32.Vec3 {
	beta := mgl32.Vec3{1, 1, 1}
	L := mgl32.Vec3{}
	specularBounce := true // the primary ray counts as "arrived via specular"
	pdfB := float32(1)     // no real BRDF pdf generated the primary ray

	for bounce := 0; bounce < maxBounceCount; bounce++ {
		hit, ok := IntersectScene(r, w.Flat, w.Triangles, w.Spheres, stats)
		if !ok {
			L = L.Add(componentMul(beta, sky))
			break
		}

		direct := DirectLight(hit.Point, hit.Normal, w.Flat, w.Triangles, w.Spheres, rng)
		L = L.Add(componentMul(beta, direct))

		if specularBounce {
			weight := mathutil.PowerHeuristic(pdfB, pdfLEstimate)
			emission := hit.Material.EmissionColor.Mul(hit.Material.EmissionStrength * weight)
			L = L.Add(componentMul(beta, emission))
		}

		beta = componentMul(beta, hit.Material.Color)

		if beta.X()+beta.Y()+beta.Z() < 0.01 {
			break
		}

		if bounce >= rrStartBounce {
			p := mathutil.Clamp(mathutil.Luminance(beta.X(), beta.Y(), beta.Z()), 0.05, 0.95)
			if rng.Float32() > p {
				break
			}
			beta = beta.Mul(1 / p)
		}

		rSel := rng.Float32()
		isSpecular := rSel <= hit.Material.SpecularProbability

		u, v := rng.Float32Pair()
		diffuseDir := cosineHemisphere(hit.Normal, u, v)
		specularDir := reflect(r.Dir, hit.Normal)

		mixT := float32(0)
		if isSpecular {
			mixT = hit.Material.Smoothness
		}
		newDir := mgl32.Vec3{
			mathutil.Mix(diffuseDir.X(), specularDir.X(), mixT),
			mathutil.Mix(diffuseDir.Y(), specularDir.Y(), mixT),
			mathutil.Mix(diffuseDir.Z(), specularDir.Z(), mixT),
		}.Normalize()

		origin := hit.Point.Add(hit.Normal.Mul(0.01))
		r = Ray{Origin: origin, Dir: newDir}

		specularBounce = isSpecular
		cosNew := hit.Normal.Dot(newDir)
		pdfB = mathutil.Clamp(cosNew, 0, 1) / math32.Pi
	}

	return L
}

func componentMul(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// reflect mirrors v about normal n: v - 2*dot(v,n)*n.
func reflect(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// cosineHemisphere draws a cosine-weighted direction about normal n from
// two uniform samples u,v using the Malley disk-projection method.
func cosineHemisphere(n mgl32.Vec3, u, v float32) mgl32.Vec3 {
	r := math32.Sqrt(u)
	theta := 2 * math32.Pi * v
	x := r * math32.Cos(theta)
	y := r * math32.Sin(theta)
	z := math32.Sqrt(mathutil.Clamp(1-u, 0, 1))

	t, b := orthonormalBasis(n)
	return t.Mul(x).Add(b.Mul(y)).Add(n.Mul(z)).Normalize()
}

// orthonormalBasis builds an arbitrary tangent/bitangent pair for n,
// using the Duff et al. branchless construction to avoid a degenerate
// cross product near the poles.
func orthonormalBasis(n mgl32.Vec3) (t, b mgl32.Vec3) {
	sign := float32(1)
	if n.Z() < 0 {
		sign = -1
	}
	a := -1 / (sign + n.Z())
	c := n.X() * n.Y() * a
	t = mgl32.Vec3{1 + sign*n.X()*n.X()*a, sign * c, -sign * n.X()}
	b = mgl32.Vec3{c, sign + n.Y()*n.Y()*a, -n.Y()}
	return t, b
}
