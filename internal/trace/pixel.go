package trace

import (
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/scene"
)

// RenderPixel computes the per-frame estimate for pixel (px,py), the
// mean of samplesPerPixel independent paths seeded by the per-pixel RNG
// contract of spec.md section 4.4. All samples draw from the one
// per-pixel RNG state; each sample's jitter is the next pair drawn from
// it, consumed before that sample's ray generation, matching the kernel's
// draw order.
func RenderPixel(cam scene.Camera, w World, width, height, px, py int, frameIndex uint32, samplesPerPixel int, stats *Stats) mgl32.Vec3 {
	rng := Seed(px, py, width, frameIndex)

	sum := mgl32.Vec3{}
	for s := 0; s < samplesPerPixel; s++ {
		jx, jy := rng.Float32Pair()
		jx -= 0.5
		jy -= 0.5

		ray := GenerateRay(cam, width, height, px, py, jx, jy)
		sum = sum.Add(PathRadiance(ray, w, &rng, stats))
	}
	return sum.Mul(1 / float32(samplesPerPixel))
}
