package sceneio

import "github.com/go-gl/mathgl/mgl32"

// ModelMatrix builds translate * rotateX * rotateY * rotateZ * scale,
// applied to a column vector, per spec.md section 4.1. Rotation is given
// in degrees.
func ModelMatrix(position, rotationDeg, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(rotationDeg.X()))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(rotationDeg.Y()))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(rotationDeg.Z()))
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(rx).Mul4(ry).Mul4(rz).Mul4(s)
}

// TransformPoint applies m to p as a position (w=1).
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v4 := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
	return mgl32.Vec3{v4.X(), v4.Y(), v4.Z()}
}
