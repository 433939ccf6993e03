package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShaftRadiusScale = 0.01
	HeadRadiusScale  = 0.02
	HeadHeightScale  = 0.1
	// HeadOffsetScale is half of HeadHeightScale: the cone is centred on its
	// position, so this puts its base on the end point.
	HeadOffsetScale = 0.05
)

// HeadRotation returns the Euler Y (yaw) and Z (pitch) angles that turn a
// +Y cone onto d. For d.x == d.z == 0 the yaw comes from atan2(0, 0),
// which is 0 in Go, so vertical and zero vectors stay finite.
func HeadRotation(d mgl32.Vec3) (yaw, pitch float32) {
	x, y, z := float64(d.X()), float64(d.Y()), float64(d.Z())
	yaw = float32(math.Atan2(x, z) - 0.5*math.Pi)
	pitch = float32(math.Atan2(y, math.Sqrt(x*x+z*z)) - 0.5*math.Pi)
	return yaw, pitch
}

// HeadPosition places the head centre along d at |d| + HeadOffsetScale*headHeight.
// A zero d points along +Z, matching HeadRotation of the zero vector.
func HeadPosition(d mgl32.Vec3, headHeight float32) mgl32.Vec3 {
	offset := HeadOffsetScale * headHeight
	l := d.Len()
	if l == 0 {
		return mgl32.Vec3{0, 0, offset}
	}
	return d.Mul((l + offset) / l)
}

// HeadAxis is the direction the head points in after rotation.
func HeadAxis(yaw, pitch float32) mgl32.Vec3 {
	q := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{0, 0, 1}))
	return q.Rotate(mgl32.Vec3{0, 1, 0})
}
