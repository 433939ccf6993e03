package preview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89 * math.Pi / 180

// OrbitCamera circles a target point. Yaw is measured around +Y from +Z,
// pitch from the XZ plane, both in radians.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32

	MinDistance float32
	MaxDistance float32
	// Fov is the vertical field of view in degrees.
	Fov  float32
	Near float32
	Far  float32
}

// NewOrbitCamera places the camera at eye looking at target. A zero
// maxDistance disables the distance clamp.
func NewOrbitCamera(eye, target mgl32.Vec3, fov, minDistance, maxDistance float32) *OrbitCamera {
	c := &OrbitCamera{
		Target:      target,
		MinDistance: minDistance,
		MaxDistance: maxDistance,
		Fov:         fov,
		Near:        0.1,
		Far:         1000,
	}

	offset := eye.Sub(target)
	c.Distance = offset.Len()
	c.Yaw = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	if c.Distance > 0 {
		c.Pitch = float32(math.Asin(float64(offset.Y() / c.Distance)))
	}
	c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
	c.Distance = c.clampDistance(c.Distance)
	return c
}

func (c *OrbitCamera) clampDistance(d float32) float32 {
	if c.MaxDistance > 0 {
		return clamp(d, c.MinDistance, c.MaxDistance)
	}
	return max(d, c.MinDistance)
}

func (c *OrbitCamera) Eye() mgl32.Vec3 {
	cp := math.Cos(float64(c.Pitch))
	offset := mgl32.Vec3{
		float32(cp * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		float32(cp * math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// Orbit rotates the camera around the target. Pitch stops short of the
// poles.
func (c *OrbitCamera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance = c.clampDistance(c.Distance + delta)
}

func (c *OrbitCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCamera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func (c *OrbitCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Project maps a world point to pixel coordinates in a width x height
// image with the origin top left. ok is false for points behind the
// camera.
func (c *OrbitCamera) Project(p mgl32.Vec3, width, height int) (x, y float32, ok bool) {
	return project(c.ViewProjection(float32(width)/float32(height)), p, width, height)
}

func project(vp mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y float32, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x = (ndcX + 1) / 2 * float32(width)
	y = (1 - ndcY) / 2 * float32(height)
	return x, y, true
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
