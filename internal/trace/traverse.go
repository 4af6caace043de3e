package trace

import (
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/bvh"
	"pathtracer/internal/scene"
)

// stackSize is the fixed software-stack depth for BVH traversal, per
// spec.md section 4.4. A push beyond this depth is silently dropped —
// the corresponding subtree is skipped — and recorded in Stats.
const stackSize = 64

// Stats accumulates per-invocation counters mirroring the kernel's
// atomic performance-counter buffer: triangle tests performed and the
// BVH stack high-water mark observed.
type Stats struct {
	TriangleTests  uint32
	StackHighWater uint32
}

// IntersectAABB is the slab test against an axis-aligned box, with the
// standard near/far clamp. Returns false on a miss or when the box is
// entirely behind the ray origin.
func IntersectAABB(r Ray, min, max mgl32.Vec3) bool {
	tNear := float32(-1e30)
	tFar := float32(1e30)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin[axis]
		d := r.Dir[axis]
		lo := min[axis]
		hi := max[axis]

		if d == 0 {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return false
		}
	}
	return tFar > tMin
}

// IntersectBVH walks flat depth-first, pushing right then left so left
// is processed first, per spec.md section 4.4. It returns the closest
// triangle hit with t > tMin, testing only the triangles referenced by
// visited leaves.
func IntersectBVH(r Ray, flat bvh.Flat, tris []scene.Triangle, stats *Stats) (Hit, bool) {
	if len(flat.Nodes) == 0 {
		return Hit{}, false
	}

	var stack [stackSize]uint32
	sp := 0
	stack[sp] = 0
	sp++

	var best Hit
	haveBest := false

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := flat.Nodes[idx]

		min := mgl32.Vec3{n.Min[0], n.Min[1], n.Min[2]}
		max := mgl32.Vec3{n.Max[0], n.Max[1], n.Max[2]}
		if !IntersectAABB(r, min, max) {
			continue
		}

		if n.IsLeaf {
			start := n.Slot0
			count := n.Slot1
			for i := start; i < start+count; i++ {
				triIdx := flat.TriangleIndices[i]
				stats.TriangleTests++
				hit, ok := IntersectTriangle(r, tris[triIdx])
				if !ok {
					continue
				}
				best, haveBest = closer(best, haveBest, hit, true)
			}
			continue
		}

		if sp+2 > stackSize {
			if uint32(sp) > stats.StackHighWater {
				stats.StackHighWater = uint32(sp)
			}
			continue
		}
		stack[sp] = n.Slot1 // right
		sp++
		stack[sp] = n.Slot0 // left, popped next
		sp++
		if uint32(sp) > stats.StackHighWater {
			stats.StackHighWater = uint32(sp)
		}
	}

	return best, haveBest
}

// IntersectSpheres linearly scans spheres (their count is small by
// design, per spec.md section 4.4) and returns the closest hit.
func IntersectSpheres(r Ray, spheres []scene.Sphere) (Hit, bool) {
	var best Hit
	haveBest := false
	for _, s := range spheres {
		hit, ok := IntersectSphere(r, s)
		if !ok {
			continue
		}
		best, haveBest = closer(best, haveBest, hit, true)
	}
	return best, haveBest
}

// IntersectScene combines BVH triangle traversal and the sphere linear
// scan, keeping whichever hit is closer.
func IntersectScene(r Ray, flat bvh.Flat, tris []scene.Triangle, spheres []scene.Sphere, stats *Stats) (Hit, bool) {
	triHit, triOK := IntersectBVH(r, flat, tris, stats)
	sphHit, sphOK := IntersectSpheres(r, spheres)
	return closer(triHit, triOK, sphHit, sphOK)
}
