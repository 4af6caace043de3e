// Package scene defines the in-memory representation of a loaded scene:
// a camera, an ordered list of spheres and an ordered list of world-space
// triangles, each carrying a material. This is the host-side data model
// spec.md section 3 describes; internal/gpulayout packs it into the
// byte-exact buffers the kernel consumes.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/pkg/mathutil"
)

// Material is embedded in Sphere and Triangle.
type Material struct {
	Color               mgl32.Vec3 // in [0,1]^3
	EmissionColor       mgl32.Vec3 // >= 0
	EmissionStrength    float32    // >= 0
	Smoothness          float32    // in [0,1]
	SpecularProbability float32    // in [0,1]
}

// Luminance returns the emission color's scalar brightness, used when
// weighting emissive triangles for next-event estimation.
func (m Material) Luminance() float32 {
	c := m.EmissionColor
	return 0.2126*c.X() + 0.7152*c.Y() + 0.0722*c.Z()
}

// Sphere is a world-space sphere with a positive radius.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
	Material
}

// Triangle is a world-space, counter-clockwise-wound triangle. The
// outward normal is normalize((v1-v0) x (v2-v0)); back-faces are culled
// by the kernel, not by the loader.
type Triangle struct {
	V0, V1, V2 mgl32.Vec3
	Material
}

// Normal returns the (unnormalized-input, normalized-output) face normal.
func (t Triangle) Normal() mgl32.Vec3 {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)
	return e1.Cross(e2).Normalize()
}

// Centroid returns the arithmetic mean of the three vertices, used as the
// BVH build-time sort key.
func (t Triangle) Centroid() mgl32.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Mul(1.0 / 3.0)
}

// Area returns the triangle's surface area, used to weight it as a light
// source during next-event estimation.
func (t Triangle) Area() float32 {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)
	return e1.Cross(e2).Len() * 0.5
}

// EmissivePower is emissionStrength * area * luminance(emissionColor), the
// quantity spec.md section 4.4 uses to weight emitter sampling.
func (t Triangle) EmissivePower() float32 {
	return t.EmissionStrength * t.Area() * t.Luminance()
}

// Camera is the viewpoint used both for ray generation on the device and
// for the debug-overlay view/projection on the host.
type Camera struct {
	Position  mgl32.Vec3
	Rotation  mgl32.Vec3 // degrees; X=pitch, Y=yaw, Z=roll (unused)
	FOV       float32    // vertical, degrees
	NearPlane float32
	FarPlane  float32
}

// Scene is the camera plus the ordered sphere and triangle lists. Order is
// preserved through loading because sampling indices (light selection,
// BVH leaf triangle indices) are part of the deterministic-replay contract.
type Scene struct {
	Camera    Camera
	Spheres   []Sphere
	Triangles []Triangle
}

// BoundingBox is an axis-aligned box with Min <= Max componentwise. A
// degenerate (empty) box has Min = Max = 0.
type BoundingBox struct {
	Min, Max mgl32.Vec3
}

// EmptyBox returns the degenerate all-zero box spec.md section 3 defines
// for an empty triangle set.
func EmptyBox() BoundingBox {
	return BoundingBox{}
}

// Extent returns Max-Min componentwise.
func (b BoundingBox) Extent() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns 2*(w*h+w*d+h*d) over the box's extents.
func (b BoundingBox) SurfaceArea() float32 {
	e := b.Extent()
	return mathutil.SurfaceArea([3]float32{e.X(), e.Y(), e.Z()})
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: componentMin(b.Min, o.Min),
		Max: componentMax(b.Max, o.Max),
	}
}

// ExtendPoint grows the box, if necessary, to contain p.
func (b BoundingBox) ExtendPoint(p mgl32.Vec3) BoundingBox {
	return BoundingBox{
		Min: componentMin(b.Min, p),
		Max: componentMax(b.Max, p),
	}
}

// Contains reports whether p lies within the box, componentwise, with the
// tolerance epsilon applied to absorb float32 rounding at BVH leaf faces.
func (b BoundingBox) Contains(p mgl32.Vec3, epsilon float32) bool {
	return p.X() >= b.Min.X()-epsilon && p.X() <= b.Max.X()+epsilon &&
		p.Y() >= b.Min.Y()-epsilon && p.Y() <= b.Max.Y()+epsilon &&
		p.Z() >= b.Min.Z()-epsilon && p.Z() <= b.Max.Z()+epsilon
}

// TriangleBounds returns the tight bounding box of a triangle's three
// vertices.
func TriangleBounds(t Triangle) BoundingBox {
	box := BoundingBox{Min: t.V0, Max: t.V0}
	box = box.ExtendPoint(t.V1)
	box = box.ExtendPoint(t.V2)
	return box
}

func componentMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min32(a.X(), b.X()), min32(a.Y(), b.Y()), min32(a.Z(), b.Z())}
}

func componentMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max32(a.X(), b.X()), max32(a.Y(), b.Y()), max32(a.Z(), b.Z())}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
