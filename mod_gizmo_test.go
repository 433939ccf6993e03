package viscos

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viscos/viscos/gizmo"
)

func TestGizmos_AddAndRemove(t *testing.T) {
	g := NewGizmos()
	arrow := g.AddArrow("a", gizmo.NewArrow(gizmo.NewTrace(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}), gizmo.DefaultArrowStyle()))
	basis := g.AddBasis("b", gizmo.NewAxesBasis(1, gizmo.DefaultArrowStyle()))

	assert.Equal(t, []string{"a", "b"}, g.Names())
	assert.Same(t, arrow, g.Arrow("a"))
	assert.Same(t, basis, g.Basis("b"))
	assert.Equal(t, "a", arrow.Group().Name)
	assert.Same(t, g.Root, arrow.Group().Parent())
	assert.Same(t, basis.Group(), g.Root.FindByName("b"))

	assert.Panics(t, func() {
		g.AddBasis("a", gizmo.NewAxesBasis(1, gizmo.DefaultArrowStyle()))
	})

	assert.True(t, g.Remove("a"))
	assert.False(t, g.Remove("a"))
	assert.Nil(t, g.Arrow("a"))
	assert.Nil(t, arrow.Group().Parent())
	assert.Equal(t, []string{"b"}, g.Names())
}

func TestGizmos_UpdateAll(t *testing.T) {
	g := NewGizmos()
	trace := gizmo.NewTrace(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	g.AddArrow("a", gizmo.NewArrow(trace, gizmo.DefaultArrowStyle()))
	basis := g.AddBasis("b", gizmo.NewAxesBasis(1, gizmo.DefaultArrowStyle()))

	assert.Equal(t, 0, g.UpdateAll(), "freshly built gizmos are up to date")

	trace.SetEnd(mgl32.Vec3{0, 2, 0})
	basis.SetOrigin(mgl32.Vec3{1, 1, 1})
	assert.Equal(t, 4, g.UpdateAll())
	assert.Equal(t, 0, g.UpdateAll())
	assert.Equal(t, uint64(4), g.Rebuilds())
}

func TestGizmoModule_UpdatesBeforeRender(t *testing.T) {
	app := NewAppBuilder().
		UseModule(GizmoModule{}).
		Build()
	gizmos := Resource[Gizmos](app)
	require.NotNil(t, gizmos)

	trace := gizmo.NewTrace(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	arrow := gizmos.AddArrow("a", gizmo.NewArrow(trace, gizmo.DefaultArrowStyle()))

	var staleAtRender bool
	app.UseSystem(System(func() {
		trace.SetEnd(mgl32.Vec3{0, 0, 3})
	}).InStage(Update))
	app.UseSystem(System(func() {
		staleAtRender = arrow.Stale()
	}).InStage(Render))

	app.Step()
	assert.False(t, staleAtRender)
	assert.Equal(t, uint64(1), gizmos.Rebuilds())
}
