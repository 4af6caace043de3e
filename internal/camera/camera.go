// Package camera computes the forward/right/up basis spec.md sections
// 4.4 and 4.6 both build on: the kernel's ray generation and the debug
// overlay's view/projection matrix share this exact basis so the
// wireframe lines up with the path-traced image underneath it.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/scene"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Basis is the camera's orthonormal forward/right/up frame.
type Basis struct {
	Forward, Right, Up mgl32.Vec3
}

// ComputeBasis derives the basis from camera rotation, interpreted as
// yaw=Y, pitch=X, roll=Z unused, per spec.md section 3. The forward
// vector is Ry(yaw)*Rx(pitch)*(0,0,-1); right is normalize(forward x
// worldUp); up is right x forward.
func ComputeBasis(c scene.Camera) Basis {
	yaw := mgl32.DegToRad(c.Rotation.Y())
	pitch := mgl32.DegToRad(c.Rotation.X())

	ry := mgl32.HomogRotate3DY(yaw)
	rx := mgl32.HomogRotate3DX(pitch)
	m := ry.Mul4(rx)
	fwd4 := m.Mul4x1(mgl32.Vec4{0, 0, -1, 0})
	forward := mgl32.Vec3{fwd4.X(), fwd4.Y(), fwd4.Z()}.Normalize()

	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	return Basis{Forward: forward, Right: right, Up: up}
}

// ViewMatrix builds the view matrix spec.md section 4.6 specifies:
//
//	[[right.x, up.x, -fwd.x, 0],
//	 [right.y, up.y, -fwd.y, 0],
//	 [right.z, up.z, -fwd.z, 0],
//	 [-right.pos, -up.pos, fwd.pos, 1]]
func ViewMatrix(c scene.Camera) mgl32.Mat4 {
	b := ComputeBasis(c)
	pos := c.Position
	return mgl32.Mat4{
		b.Right.X(), b.Up.X(), -b.Forward.X(), 0,
		b.Right.Y(), b.Up.Y(), -b.Forward.Y(), 0,
		b.Right.Z(), b.Up.Z(), -b.Forward.Z(), 0,
		-b.Right.Dot(pos), -b.Up.Dot(pos), b.Forward.Dot(pos), 1,
	}
}

// ProjectionMatrix builds a standard perspective projection from the
// camera's vertical FOV (degrees), near and far planes, and the given
// aspect ratio (width/height).
func ProjectionMatrix(c scene.Camera, aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.NearPlane, c.FarPlane)
}

// FocalLength returns 1/tan(fov/2) in radians, as used by ray generation
// in spec.md section 4.4.
func FocalLength(fovDeg float32) float32 {
	return 1.0 / math32.Tan(mgl32.DegToRad(fovDeg)/2)
}
