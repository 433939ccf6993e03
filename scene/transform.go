package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a local TRS transform. Rotation holds Euler angles in
// radians applied in XYZ order.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.Position = p
}

func (t *Transform) SetRotation(r mgl32.Vec3) {
	t.Rotation = r
}

func (t *Transform) SetScale(s mgl32.Vec3) {
	t.Scale = s
}

// Quat returns the rotation as a quaternion: Rx * Ry * Rz.
func (t *Transform) Quat() mgl32.Quat {
	qx := mgl32.QuatRotate(t.Rotation.X(), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(t.Rotation.Y(), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(t.Rotation.Z(), mgl32.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz)
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Quat().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

func (t *Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(S) * inv(R) * inv(T)
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())
	invRotate := t.Quat().Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}
