package gizmo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viscos/viscos/scene"
)

func testStyle() ArrowStyle {
	s := DefaultArrowStyle()
	s.Thickness = 2
	s.HeadRadius = 1
	s.HeadHeight = 2
	s.Roundness = 8
	return s
}

func assertVecInDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v vs %v", i, expected, actual)
	}
}

func TestArrow_EndToEnd(t *testing.T) {
	trace := NewTrace(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 5})
	arrow := NewArrow(trace, testStyle())
	group := arrow.Group()

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, group.Transform.Position)
	assertVecInDelta(t, mgl32.Vec3{0, 0, 5.1}, arrow.Head().Transform.Position, 1e-5)

	rot := arrow.Head().Transform.Rotation
	assert.InDelta(t, -math.Pi/2, rot.Y(), 1e-6)
	assert.InDelta(t, -math.Pi/2, rot.Z(), 1e-6)

	trace.SetEnd(mgl32.Vec3{0, 0, 10})
	require.True(t, arrow.Update())

	assert.Same(t, group, arrow.Group())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, group.Transform.Position)
	assertVecInDelta(t, mgl32.Vec3{0, 0, 10.1}, arrow.Head().Transform.Position, 1e-5)
	assert.Equal(t, rot, arrow.Head().Transform.Rotation)
}

func TestArrow_Construction(t *testing.T) {
	trace := NewTrace(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 4, 0})
	arrow := NewArrow(trace, testStyle())

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, arrow.Group().Transform.Position)
	require.Len(t, arrow.Group().Children(), 2)
	assert.Same(t, arrow.Shaft(), arrow.Group().Children()[0])
	assert.Same(t, arrow.Head(), arrow.Group().Children()[1])

	// shaft and head share one material
	assert.Same(t, arrow.Shaft().Mesh.Material, arrow.Head().Mesh.Material)
	assert.False(t, arrow.Stale())

	shaft := arrow.Shaft().Mesh.Geometry
	assert.Equal(t, 2*(8+1), shaft.VertexCount())
	minB, maxB, ok := shaft.BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 0, minB.Y(), 1e-6)
	assert.InDelta(t, 4, maxB.Y(), 1e-6)
	assert.InDelta(t, 2*ShaftRadiusScale, maxB.X(), 1e-6)

	headMin, headMax, ok := arrow.Head().Mesh.Geometry.BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 2*HeadHeightScale, headMax.Y()-headMin.Y(), 1e-6)
	assert.InDelta(t, 1*HeadRadiusScale, headMax.X(), 1e-6)
}

func TestArrow_UpdateIsIdempotent(t *testing.T) {
	trace := NewTrace(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
	arrow := NewArrow(trace, testStyle())
	geom := arrow.Shaft().Mesh.Geometry

	assert.False(t, arrow.Update(), "fresh arrow should be current")
	assert.Equal(t, uint(0), geom.Version)

	trace.SetEnd(mgl32.Vec3{2, 0, 1})
	assert.True(t, arrow.Stale())
	assert.True(t, arrow.Update())
	assert.False(t, arrow.Update())
	assert.Equal(t, uint(1), geom.Version)
	assert.Same(t, geom, arrow.Shaft().Mesh.Geometry)
}

func TestArrow_StartChangeTriggersRebuild(t *testing.T) {
	trace := NewTrace(mgl32.Vec3{}, mgl32.Vec3{3, 0, 0})
	arrow := NewArrow(trace, testStyle())
	headBefore := arrow.Head().Transform.Position

	trace.SetStart(mgl32.Vec3{1, 1, 1})
	require.True(t, arrow.Update())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, arrow.Group().Transform.Position)
	assert.Equal(t, headBefore, arrow.Head().Transform.Position)
	assert.Equal(t, uint(1), arrow.Shaft().Mesh.Geometry.Version)

	// assigning the same values is not a change
	trace.SetStart(mgl32.Vec3{1, 1, 1})
	trace.SetEnd(mgl32.Vec3{3, 0, 0})
	assert.False(t, arrow.Update())
}

func TestArrow_HeadPlacementDistance(t *testing.T) {
	ends := []mgl32.Vec3{
		{1, 0, 0},
		{0, -3, 0},
		{2, 3, -4},
		{-0.5, 0.25, 7},
	}
	for _, end := range ends {
		for _, headHeight := range []float32{0, 1, 2, 10} {
			style := testStyle()
			style.HeadHeight = headHeight
			arrow := NewArrow(NewTrace(mgl32.Vec3{5, 5, 5}, end), style)

			pos := arrow.Head().Transform.Position
			expected := float64(end.Len()) + 0.05*float64(headHeight)
			assert.InDelta(t, expected, pos.Len(), 1e-4, "end %v head height %v", end, headHeight)
			assertVecInDelta(t, end.Normalize(), pos.Normalize(), 1e-5)
		}
	}
}

func TestArrow_OrientationFormula(t *testing.T) {
	ends := []mgl32.Vec3{
		{1, 0, 0},
		{0, 0, -1},
		{1, 2, 3},
		{-4, 1, 0.5},
		{0.1, -9, 0},
	}
	for _, end := range ends {
		arrow := NewArrow(NewTrace(mgl32.Vec3{}, end), testStyle())
		rot := arrow.Head().Transform.Rotation

		x, y, z := float64(end.X()), float64(end.Y()), float64(end.Z())
		assert.Equal(t, float32(math.Atan2(x, z)-math.Pi/2), rot.Y())
		assert.Equal(t, float32(math.Atan2(y, math.Sqrt(x*x+z*z))-math.Pi/2), rot.Z())
		assert.Equal(t, float32(0), rot.X())

		// the cone axis ends up along the trace
		axis := arrow.Head().Transform.Quat().Rotate(mgl32.Vec3{0, 1, 0})
		assertVecInDelta(t, end.Normalize(), axis, 1e-5)
		assertVecInDelta(t, axis, HeadAxis(rot.Y(), rot.Z()), 1e-5)
	}
}

func TestArrow_ZeroLengthTraceStaysFinite(t *testing.T) {
	arrow := NewArrow(NewTrace(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}), testStyle())

	finite := func(v mgl32.Vec3) bool {
		for _, c := range v {
			f := float64(c)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
		return true
	}

	head := arrow.Head().Transform
	assert.True(t, finite(head.Rotation), "rotation %v", head.Rotation)
	assert.True(t, finite(head.Position), "position %v", head.Position)
	for _, p := range arrow.Shaft().Mesh.Geometry.Positions {
		require.True(t, finite(p))
	}
}

func TestArrow_VerticalTrace(t *testing.T) {
	for _, end := range []mgl32.Vec3{{0, 5, 0}, {0, -5, 0}} {
		arrow := NewArrow(NewTrace(mgl32.Vec3{}, end), testStyle())
		rot := arrow.Head().Transform.Rotation
		assertVecInDelta(t, end.Normalize(), HeadAxis(rot.Y(), rot.Z()), 1e-5)
	}
}

func TestArrow_Setters(t *testing.T) {
	trace := NewTrace(mgl32.Vec3{}, mgl32.Vec3{0, 0, 5})
	arrow := NewArrow(trace, testStyle())
	material := arrow.Shaft().Mesh.Material
	headGeom := arrow.Head().Mesh.Geometry

	arrow.SetColor(scene.Blue)
	assert.Equal(t, scene.Blue, material.Color)
	assert.Equal(t, scene.Blue, arrow.Style().Color)

	arrow.SetOpacity(0.5)
	assert.True(t, material.Transparent)
	assert.Equal(t, float32(0.5), arrow.Style().Opacity)

	style := arrow.Style()
	style.HeadHeight = 4
	style.Head = false
	arrow.SetStyle(style)
	assert.False(t, arrow.Head().Visible)
	assert.Equal(t, uint(1), headGeom.Version)
	assertVecInDelta(t, mgl32.Vec3{0, 0, 5.2}, arrow.Head().Transform.Position, 1e-5)

	other := NewTrace(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	arrow.SetTrace(other)
	assert.Same(t, other, arrow.Trace())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, arrow.Group().Transform.Position)
	assert.False(t, arrow.Update())
}

func TestNewLine(t *testing.T) {
	line := NewLine(NewTrace(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}), testStyle())
	assert.False(t, line.Head().Visible)
	assert.False(t, line.Style().Head)
}

func TestArrowStyle_Clamp(t *testing.T) {
	s := ArrowStyle{
		Thickness:  -1,
		HeadRadius: 1000,
		HeadHeight: float32(math.NaN()),
		Roundness:  1,
		Color:      0xff123456,
		Opacity:    3,
	}.Clamp()

	assert.Equal(t, float32(0), s.Thickness)
	assert.Equal(t, float32(MaxHeadRadius), s.HeadRadius)
	assert.Equal(t, float32(0), s.HeadHeight)
	assert.Equal(t, MinRoundness, s.Roundness)
	assert.Equal(t, scene.Color(0x123456), s.Color)
	assert.Equal(t, float32(1), s.Opacity)

	assert.Equal(t, MaxRoundness, ArrowStyle{Roundness: 1000}.Clamp().Roundness)
}
