// Package trace is a literal, testable Go transcription of the
// per-pixel kernel algorithm in assets/shaders/pathtrace.comp: ray
// generation, BVH traversal, intersection, next-event estimation with
// MIS, Russian roulette, and scatter. It operates on the same
// gpulayout-shaped data the kernel consumes and exists because none of
// this is checkable by invoking a compute shader from go test.
package trace

import (
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/camera"
	"pathtracer/internal/scene"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Ray is a parametric ray: point(t) = Origin + t*Dir, Dir normalized.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// GenerateRay builds the camera ray for pixel (px,py) out of a width x
// height image, with sub-pixel jitter (jx,jy) each in [-0.5,0.5), per
// spec.md section 4.4.
func GenerateRay(c scene.Camera, width, height, px, py int, jx, jy float32) Ray {
	b := camera.ComputeBasis(c)

	w := float32(width)
	h := float32(height)
	u := (float32(px) + 0.5 + jx) / w
	v := (float32(py) + 0.5 + jy) / h

	aspect := w / h
	nx := (2*u - 1) * aspect
	ny := 1 - 2*v

	f := camera.FocalLength(c.FOV)

	dir := b.Right.Mul(nx).Add(b.Up.Mul(ny)).Add(b.Forward.Mul(f)).Normalize()
	return Ray{Origin: c.Position, Dir: dir}
}
