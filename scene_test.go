package viscos

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viscos/viscos/scene"
)

func TestLoadScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Axes.Enabled = false
	cfg.Arrows = []ArrowConfig{
		{Name: "line", Start: mgl32.Vec3{1, 0, 0}, End: mgl32.Vec3{0, 1, 0}, Style: StyleConfig{Line: true}},
		{Name: "tweened", End: mgl32.Vec3{1, 0, 0}, Tween: &TweenConfig{To: mgl32.Vec3{2, 0, 0}, Duration: 1}},
	}
	gizmos, tweens := NewGizmos(), &Tweens{}

	require.NoError(t, LoadScene(gizmos, tweens, cfg))

	assert.Equal(t, []string{LocalBasisGizmo, "line", "tweened"}, gizmos.Names())
	assert.Nil(t, gizmos.Basis(AxesGizmo))
	assert.Equal(t, 1, tweens.Len())

	line := gizmos.Arrow("line")
	assert.False(t, line.Head().Visible)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, line.Group().Transform.Position)

	local := gizmos.Basis(LocalBasisGizmo)
	assert.Equal(t, scene.Color(0xffaa00), local.Arrow(0).Style().Color)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, local.Arrow(1).Trace().End)
}

func TestSceneModule(t *testing.T) {
	cfg := DefaultConfig()
	app := NewAppBuilder().
		UseModule(GizmoModule{}, AnimationModule{}, SceneModule{Config: cfg}).
		Build()

	gizmos := Resource[Gizmos](app)
	assert.Equal(t, []string{AxesGizmo, LocalBasisGizmo}, gizmos.Names())
	assert.Equal(t, cfg.Axes.Length, gizmoAxesLength(gizmos))

	assert.Panics(t, func() {
		NewAppBuilder().UseModule(SceneModule{Config: cfg}).Build()
	})
}

func gizmoAxesLength(g *Gizmos) float32 {
	return g.Basis(AxesGizmo).Arrow(0).Trace().Length()
}
