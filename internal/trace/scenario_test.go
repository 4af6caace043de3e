package trace

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/bvh"
	"pathtracer/internal/scene"
)

func testCamera() scene.Camera {
	return scene.Camera{
		Position:  mgl32.Vec3{0, 0, 3},
		Rotation:  mgl32.Vec3{0, 0, 0},
		FOV:       60,
		NearPlane: 0.1,
		FarPlane:  100,
	}
}

func TestEmptySceneConvergesToSky(t *testing.T) {
	w := World{Flat: bvh.Flat{}, Triangles: nil, Spheres: nil}
	cam := testCamera()
	var stats Stats

	var running [3]float32
	for frame := uint32(0); frame < 4; frame++ {
		c := RenderPixel(cam, w, 64, 64, 32, 32, frame, 1, &stats)
		running = Accumulate(running, [3]float32{c.X(), c.Y(), c.Z()}, frame)
	}

	for i, v := range running {
		if d := v - 0.4; d > 1e-3 || d < -1e-3 {
			t.Fatalf("channel %d = %v, want ~0.4 (sky)", i, v)
		}
	}
}

func TestSingleEmissiveSphereCenterPixel(t *testing.T) {
	sphere := scene.Sphere{
		Center: mgl32.Vec3{0, 0, 0},
		Radius: 1,
		Material: scene.Material{
			EmissionColor:    mgl32.Vec3{1, 1, 1},
			EmissionStrength: 5,
		},
	}
	w := World{Spheres: []scene.Sphere{sphere}}
	cam := testCamera()
	var stats Stats

	c := RenderPixel(cam, w, 64, 64, 32, 32, 0, 1, &stats)
	out := Accumulate([3]float32{}, [3]float32{c.X(), c.Y(), c.Z()}, 0)
	for i, v := range out {
		if v < 0.99 {
			t.Fatalf("channel %d = %v, want ~1 (saturated emissive hit)", i, v)
		}
	}
}

func TestIntersectBVHFindsClosestAcrossLeaves(t *testing.T) {
	tris := []scene.Triangle{
		{V0: mgl32.Vec3{-1, -1, -2}, V1: mgl32.Vec3{1, -1, -2}, V2: mgl32.Vec3{0, 1, -2}},
		{V0: mgl32.Vec3{-1, -1, -10}, V1: mgl32.Vec3{1, -1, -10}, V2: mgl32.Vec3{0, 1, -10}},
	}
	tree := bvh.Build(tris)
	flat := tree.Flatten()

	r := Ray{Origin: mgl32.Vec3{0, 0, 0}, Dir: mgl32.Vec3{0, 0, -1}}
	var stats Stats
	hit, ok := IntersectBVH(r, flat, tris, &stats)
	if !ok {
		t.Fatalf("expected hit")
	}
	if d := hit.T - 2; d > 1e-4 || d < -1e-4 {
		t.Fatalf("t = %v, want 2 (nearer triangle)", hit.T)
	}
}
