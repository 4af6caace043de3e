// Package gpulayout packs scene and BVH data into the byte-exact buffer
// layouts spec.md section 4.3 contracts with the kernel. Every entity is
// padded to 16-byte alignment per vec-slot; the layout is load-bearing —
// the shader reads these buffers assuming these exact offsets.
package gpulayout

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/bvh"
	"pathtracer/internal/scene"
)

const (
	// SphereSize is the packed byte size of one sphere slot.
	SphereSize = 64
	// TriangleSize is the packed byte size of one triangle slot.
	TriangleSize = 96
	// FlatNodeSize is the packed byte size of one BVH node slot.
	FlatNodeSize = 48
	// UniformsSize is the packed byte size of the per-frame uniform block.
	UniformsSize = 80
)

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

func putVec3(buf []byte, off int, v mgl32.Vec3) {
	putF32(buf, off, v.X())
	putF32(buf, off+4, v.Y())
	putF32(buf, off+8, v.Z())
}

func putU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

func putBool32(buf []byte, off int, v bool) {
	if v {
		putU32(buf, off, 1)
	} else {
		putU32(buf, off, 0)
	}
}

// PackSphere writes one 64-byte sphere slot:
// center(12) radius(4) color(12) smoothness(4) emissionColor(12)
// emissionStrength(4) specularProbability(4) padding(12).
func PackSphere(s scene.Sphere) [SphereSize]byte {
	var buf [SphereSize]byte
	putVec3(buf[:], 0, s.Center)
	putF32(buf[:], 12, s.Radius)
	putVec3(buf[:], 16, s.Color)
	putF32(buf[:], 28, s.Smoothness)
	putVec3(buf[:], 32, s.EmissionColor)
	putF32(buf[:], 44, s.EmissionStrength)
	putF32(buf[:], 48, s.SpecularProbability)
	// bytes 52..63 are padding, left zero.
	return buf
}

// PackTriangle writes one 96-byte triangle slot:
// v0(12) pad(4) v1(12) pad(4) v2(12) pad(4) color(12) pad(4)
// emissionColor(12) emissionStrength(4) smoothness(4)
// specularProbability(4) pad(8).
func PackTriangle(t scene.Triangle) [TriangleSize]byte {
	var buf [TriangleSize]byte
	putVec3(buf[:], 0, t.V0)
	putVec3(buf[:], 16, t.V1)
	putVec3(buf[:], 32, t.V2)
	putVec3(buf[:], 48, t.Color)
	putVec3(buf[:], 64, t.EmissionColor)
	putF32(buf[:], 76, t.EmissionStrength)
	putF32(buf[:], 80, t.Smoothness)
	putF32(buf[:], 84, t.SpecularProbability)
	// bytes 88..95 are padding, left zero.
	return buf
}

// PackFlatNode writes one 48-byte BVH node slot:
// minBounds(12) pad(4) maxBounds(12) slot0(4) slot1(4) isLeaf(4) pad(8).
func PackFlatNode(n bvh.FlatNode) [FlatNodeSize]byte {
	var buf [FlatNodeSize]byte
	putVec3(buf[:], 0, mgl32.Vec3{n.Min[0], n.Min[1], n.Min[2]})
	putVec3(buf[:], 16, mgl32.Vec3{n.Max[0], n.Max[1], n.Max[2]})
	putU32(buf[:], 28, n.Slot0)
	putU32(buf[:], 32, n.Slot1)
	putBool32(buf[:], 36, n.IsLeaf)
	// bytes 40..47 are padding, left zero.
	return buf
}

// Uniforms is the host-side mirror of the 80-byte per-frame uniform
// block: camPos(12) pad(4) camRot(12) pad(4) fov(4) near(4) far(4) pad(8)
// frameIndex(4) pad(4) resW(4) resH(4) samples(4) debug(4).
type Uniforms struct {
	CameraPosition  mgl32.Vec3
	CameraRotation  mgl32.Vec3
	FOV             float32
	Near            float32
	Far             float32
	FrameIndex      uint32
	ResolutionW     uint32
	ResolutionH     uint32
	SamplesPerPixel uint32
	DebugEnabled    bool
}

// Pack serializes u into the 80-byte uniform block layout.
func (u Uniforms) Pack() [UniformsSize]byte {
	var buf [UniformsSize]byte
	putVec3(buf[:], 0, u.CameraPosition)
	// bytes 12..15 are padding, left zero.
	putVec3(buf[:], 16, u.CameraRotation)
	// bytes 28..31 are padding, left zero.
	putF32(buf[:], 32, u.FOV)
	putF32(buf[:], 36, u.Near)
	putF32(buf[:], 40, u.Far)
	// bytes 44..51 are padding, left zero.
	putU32(buf[:], 52, u.FrameIndex)
	// bytes 56..59 are padding, left zero.
	putU32(buf[:], 60, u.ResolutionW)
	putU32(buf[:], 64, u.ResolutionH)
	putU32(buf[:], 68, u.SamplesPerPixel)
	putBool32(buf[:], 72, u.DebugEnabled)
	// bytes 76..79 are padding, left zero.
	return buf
}

// PackSpheres packs a whole sphere list into one contiguous buffer.
func PackSpheres(spheres []scene.Sphere) []byte {
	buf := make([]byte, SphereSize*len(spheres))
	for i, s := range spheres {
		packed := PackSphere(s)
		copy(buf[i*SphereSize:], packed[:])
	}
	return buf
}

// PackTriangles packs a whole triangle list into one contiguous buffer.
func PackTriangles(tris []scene.Triangle) []byte {
	buf := make([]byte, TriangleSize*len(tris))
	for i, t := range tris {
		packed := PackTriangle(t)
		copy(buf[i*TriangleSize:], packed[:])
	}
	return buf
}

// PackFlatNodes packs a whole flattened BVH node array into one
// contiguous buffer.
func PackFlatNodes(nodes []bvh.FlatNode) []byte {
	buf := make([]byte, FlatNodeSize*len(nodes))
	for i, n := range nodes {
		packed := PackFlatNode(n)
		copy(buf[i*FlatNodeSize:], packed[:])
	}
	return buf
}
