package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Radians(deg float32) float32 {
	return float32(float64(deg) / 180.0 * math.Pi)
}

func RadiansVec(deg mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{Radians(deg.X()), Radians(deg.Y()), Radians(deg.Z())}
}

// UnrealToRHS converts a transform authored in Unreal's left-handed Z-up
// frame into the right-handed Y-up frame used by the scene.
func UnrealToRHS(t *Transform) {
	p, r, s := t.Position, t.Rotation, t.Scale
	t.Position = mgl32.Vec3{p.X(), p.Z(), p.Y()}
	t.Rotation = mgl32.Vec3{r.X(), -r.Z(), r.Y()}
	t.Scale = mgl32.Vec3{s.X(), s.Z(), s.Y()}
}
