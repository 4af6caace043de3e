package gpulayout

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/bvh"
	"pathtracer/internal/scene"
)

func readF32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func readU32(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off:])
}

func TestPackSphereFieldOffsets(t *testing.T) {
	s := scene.Sphere{
		Center: mgl32.Vec3{1, 2, 3},
		Radius: 4,
		Material: scene.Material{
			Color:               mgl32.Vec3{0.1, 0.2, 0.3},
			EmissionColor:       mgl32.Vec3{0.4, 0.5, 0.6},
			EmissionStrength:    7,
			Smoothness:          0.8,
			SpecularProbability: 0.9,
		},
	}
	buf := PackSphere(s)

	if len(buf) != SphereSize {
		t.Fatalf("len(buf) = %d, want %d", len(buf), SphereSize)
	}
	if v := readF32(buf[:], 0); v != 1 {
		t.Fatalf("center.x @0 = %v, want 1", v)
	}
	if v := readF32(buf[:], 12); v != 4 {
		t.Fatalf("radius @12 = %v, want 4", v)
	}
	if v := readF32(buf[:], 16); v != 0.1 {
		t.Fatalf("color.x @16 = %v, want 0.1", v)
	}
	if v := readF32(buf[:], 28); v != 0.8 {
		t.Fatalf("smoothness @28 = %v, want 0.8", v)
	}
	if v := readF32(buf[:], 32); v != 0.4 {
		t.Fatalf("emissionColor.x @32 = %v, want 0.4", v)
	}
	if v := readF32(buf[:], 44); v != 7 {
		t.Fatalf("emissionStrength @44 = %v, want 7", v)
	}
	if v := readF32(buf[:], 48); v != 0.9 {
		t.Fatalf("specularProbability @48 = %v, want 0.9", v)
	}
	for i := 52; i < SphereSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("byte %d = %d, want 0 (padding)", i, buf[i])
		}
	}
}

func TestPackTriangleFieldOffsets(t *testing.T) {
	tr := scene.Triangle{
		V0: mgl32.Vec3{1, 0, 0},
		V1: mgl32.Vec3{0, 1, 0},
		V2: mgl32.Vec3{0, 0, 1},
		Material: scene.Material{
			Color:               mgl32.Vec3{0.1, 0.2, 0.3},
			EmissionColor:       mgl32.Vec3{0.4, 0.5, 0.6},
			EmissionStrength:    2,
			Smoothness:          0.5,
			SpecularProbability: 0.25,
		},
	}
	buf := PackTriangle(tr)

	if len(buf) != TriangleSize {
		t.Fatalf("len(buf) = %d, want %d", len(buf), TriangleSize)
	}
	if v := readF32(buf[:], 0); v != 1 {
		t.Fatalf("v0.x @0 = %v, want 1", v)
	}
	if v := readF32(buf[:], 16); v != 1 {
		t.Fatalf("v1.y @16 = %v, want 1", v)
	}
	if v := readF32(buf[:], 32); v != 1 {
		t.Fatalf("v2.z @32 = %v, want 1", v)
	}
	if v := readF32(buf[:], 48); v != 0.1 {
		t.Fatalf("color.x @48 = %v, want 0.1", v)
	}
	if v := readF32(buf[:], 64); v != 0.4 {
		t.Fatalf("emissionColor.x @64 = %v, want 0.4", v)
	}
	if v := readF32(buf[:], 76); v != 2 {
		t.Fatalf("emissionStrength @76 = %v, want 2", v)
	}
	if v := readF32(buf[:], 80); v != 0.5 {
		t.Fatalf("smoothness @80 = %v, want 0.5", v)
	}
	if v := readF32(buf[:], 84); v != 0.25 {
		t.Fatalf("specularProbability @84 = %v, want 0.25", v)
	}
	for i := 88; i < TriangleSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("byte %d = %d, want 0 (padding)", i, buf[i])
		}
	}
}

func TestPackFlatNodeFieldOffsets(t *testing.T) {
	n := bvh.FlatNode{
		Min:    [3]float32{-1, -2, -3},
		Max:    [3]float32{1, 2, 3},
		Slot0:  11,
		Slot1:  22,
		IsLeaf: true,
	}
	buf := PackFlatNode(n)

	if len(buf) != FlatNodeSize {
		t.Fatalf("len(buf) = %d, want %d", len(buf), FlatNodeSize)
	}
	if v := readF32(buf[:], 0); v != -1 {
		t.Fatalf("min.x @0 = %v, want -1", v)
	}
	if v := readF32(buf[:], 16); v != 1 {
		t.Fatalf("max.x @16 = %v, want 1", v)
	}
	if v := readU32(buf[:], 28); v != 11 {
		t.Fatalf("slot0 @28 = %v, want 11", v)
	}
	if v := readU32(buf[:], 32); v != 22 {
		t.Fatalf("slot1 @32 = %v, want 22", v)
	}
	if v := readU32(buf[:], 36); v != 1 {
		t.Fatalf("isLeaf @36 = %v, want 1", v)
	}

	n.IsLeaf = false
	buf = PackFlatNode(n)
	if v := readU32(buf[:], 36); v != 0 {
		t.Fatalf("isLeaf @36 = %v, want 0", v)
	}
}

func TestUniformsPackFieldOffsets(t *testing.T) {
	u := Uniforms{
		CameraPosition:  mgl32.Vec3{1, 2, 3},
		CameraRotation:  mgl32.Vec3{4, 5, 6},
		FOV:             60,
		Near:            0.1,
		Far:             1000,
		FrameIndex:      9,
		ResolutionW:     1920,
		ResolutionH:     1080,
		SamplesPerPixel: 4,
		DebugEnabled:    true,
	}
	buf := u.Pack()

	if len(buf) != UniformsSize {
		t.Fatalf("len(buf) = %d, want %d", len(buf), UniformsSize)
	}
	if v := readF32(buf[:], 0); v != 1 {
		t.Fatalf("cameraPosition.x @0 = %v, want 1", v)
	}
	if v := readF32(buf[:], 16); v != 4 {
		t.Fatalf("cameraRotation.x @16 = %v, want 4", v)
	}
	if v := readF32(buf[:], 32); v != 60 {
		t.Fatalf("fov @32 = %v, want 60", v)
	}
	if v := readF32(buf[:], 36); v != 0.1 {
		t.Fatalf("near @36 = %v, want 0.1", v)
	}
	if v := readF32(buf[:], 40); v != 1000 {
		t.Fatalf("far @40 = %v, want 1000", v)
	}
	if v := readU32(buf[:], 52); v != 9 {
		t.Fatalf("frameIndex @52 = %v, want 9", v)
	}
	if v := readU32(buf[:], 60); v != 1920 {
		t.Fatalf("resolutionW @60 = %v, want 1920", v)
	}
	if v := readU32(buf[:], 64); v != 1080 {
		t.Fatalf("resolutionH @64 = %v, want 1080", v)
	}
	if v := readU32(buf[:], 68); v != 4 {
		t.Fatalf("samplesPerPixel @68 = %v, want 4", v)
	}
	if v := readU32(buf[:], 72); v != 1 {
		t.Fatalf("debugEnabled @72 = %v, want 1", v)
	}

	u.DebugEnabled = false
	buf = u.Pack()
	if v := readU32(buf[:], 72); v != 0 {
		t.Fatalf("debugEnabled @72 = %v, want 0", v)
	}
}

func TestPackSpheresConcatenatesSlots(t *testing.T) {
	spheres := []scene.Sphere{
		{Center: mgl32.Vec3{0, 0, 0}, Radius: 1},
		{Center: mgl32.Vec3{5, 0, 0}, Radius: 2},
	}
	buf := PackSpheres(spheres)
	if len(buf) != SphereSize*2 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), SphereSize*2)
	}
	if v := readF32(buf, SphereSize+0); v != 5 {
		t.Fatalf("second sphere center.x = %v, want 5", v)
	}
	if v := readF32(buf, SphereSize+12); v != 2 {
		t.Fatalf("second sphere radius = %v, want 2", v)
	}
}

func TestPackTrianglesConcatenatesSlots(t *testing.T) {
	tris := []scene.Triangle{
		{V0: mgl32.Vec3{0, 0, 0}, V1: mgl32.Vec3{1, 0, 0}, V2: mgl32.Vec3{0, 1, 0}},
		{V0: mgl32.Vec3{9, 0, 0}, V1: mgl32.Vec3{0, 0, 0}, V2: mgl32.Vec3{0, 0, 0}},
	}
	buf := PackTriangles(tris)
	if len(buf) != TriangleSize*2 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), TriangleSize*2)
	}
	if v := readF32(buf, TriangleSize+0); v != 9 {
		t.Fatalf("second triangle v0.x = %v, want 9", v)
	}
}

func TestPackFlatNodesConcatenatesSlots(t *testing.T) {
	nodes := []bvh.FlatNode{
		{Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}, Slot0: 1, Slot1: 2},
		{Min: [3]float32{2, 2, 2}, Max: [3]float32{3, 3, 3}, Slot0: 3, Slot1: 4, IsLeaf: true},
	}
	buf := PackFlatNodes(nodes)
	if len(buf) != FlatNodeSize*2 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), FlatNodeSize*2)
	}
	if v := readU32(buf, FlatNodeSize+28); v != 3 {
		t.Fatalf("second node slot0 = %v, want 3", v)
	}
	if v := readU32(buf, FlatNodeSize+36); v != 1 {
		t.Fatalf("second node isLeaf = %v, want 1", v)
	}
}
