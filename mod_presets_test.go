package viscos

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets_SaveAndLoad(t *testing.T) {
	base := DefaultConfig()
	base.Arrows = []ArrowConfig{
		{Name: "wind", Start: mgl32.Vec3{0, 1, 0}, End: mgl32.Vec3{1, 0, 0}, Style: StyleConfig{Color: "#00ff00", Line: true}},
		{Name: "swing", End: mgl32.Vec3{0, 0, 1}, Tween: &TweenConfig{To: mgl32.Vec3{0, 0, 3}, Duration: 2, Easing: "inOutSine"}},
	}
	app := newControlApp(t, base, ControlModule{Pose: base.Pose})
	gizmos := Resource[Gizmos](app)
	controls := Resource[Controls](app)

	gizmos.Arrow("wind").Trace().SetEnd(mgl32.Vec3{0, 0, 2})
	controls.Position = mgl32.Vec3{9, 8, 7}
	app.Step()

	captured := CaptureConfig(base, gizmos, controls)
	require.NoError(t, captured.Validate())
	require.Len(t, captured.Arrows, 2)
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, captured.Arrows[0].End)
	assert.Equal(t, "#00ff00", captured.Arrows[0].Style.Color)
	assert.True(t, captured.Arrows[0].Style.Line)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, captured.Arrows[1].End, "tweened arrows keep their authored end")
	assert.Equal(t, mgl32.Vec3{9, 8, 7}, captured.Pose.Position)

	path := filepath.Join(t.TempDir(), "preset.toml")
	require.NoError(t, SavePreset(captured, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, captured.Pose, loaded.Pose)
	assert.Equal(t, captured.LocalBasis.Colors, loaded.LocalBasis.Colors)
	require.Len(t, loaded.Arrows, 2)
	assert.Equal(t, captured.Arrows[0].End, loaded.Arrows[0].End)
	require.NotNil(t, loaded.Arrows[1].Tween)
	assert.Equal(t, "inOutSine", loaded.Arrows[1].Tween.Easing)

	require.NoError(t, LoadPreset(controls, path))
	app.Step()
	assert.Equal(t, uint64(1), controls.Applied())
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, gizmos.Arrow("wind").Trace().End)
}
