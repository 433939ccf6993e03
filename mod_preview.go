package viscos

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/viscos/viscos/preview"
)

// Preview is the orbit camera and the wireframe snapshots taken through it.
type Preview struct {
	Camera  *preview.OrbitCamera
	Options preview.Options
	// AutoRotate in radians per second.
	AutoRotate float32

	path      string
	every     uint64
	snapshots int
}

// Snapshots is the number of images written so far.
func (p *Preview) Snapshots() int {
	return p.snapshots
}

// snapshotPath expands a single %d verb in the configured path with the
// frame number.
func (p *Preview) snapshotPath(frame uint64) string {
	if strings.Contains(p.path, "%") {
		return fmt.Sprintf(p.path, frame)
	}
	return p.path
}

func (p *Preview) write(gizmos *Gizmos, frame uint64) error {
	img := preview.Render(gizmos.Root, p.Camera, p.Options)
	if err := preview.SavePNG(p.snapshotPath(frame), img); err != nil {
		return err
	}
	p.snapshots++
	return nil
}

// PreviewModule sets up the camera. With an output path it writes a PNG
// every SnapshotEvery frames, and once more on shutdown.
type PreviewModule struct {
	Camera CameraConfig
	Output OutputConfig
}

func (mod PreviewModule) Install(app *App, cmd *Commands) {
	opts := preview.DefaultOptions()
	if mod.Output.SnapshotWidth > 0 {
		opts.Width = mod.Output.SnapshotWidth
	}
	if mod.Output.SnapshotHeight > 0 {
		opts.Height = mod.Output.SnapshotHeight
	}
	opts.Grid = mod.Output.Grid

	cam := preview.NewOrbitCamera(mod.Camera.Eye, mod.Camera.Target, mod.Camera.Fov,
		mod.Camera.MinDistance, mod.Camera.MaxDistance)

	cmd.AddResources(&Preview{
		Camera:     cam,
		Options:    opts,
		AutoRotate: mgl32.DegToRad(mod.Camera.AutoRotate),
		path:       mod.Output.Snapshot,
		every:      mod.Output.SnapshotEvery,
	})

	app.UseSystem(
		System(CameraSystem).
			InStage(Update),
	)
	if mod.Output.Snapshot != "" {
		app.UseSystem(
			System(SnapshotSystem).
				InStage(PostRender),
		)
		app.UseSystem(
			System(finalSnapshotSystem).
				InStage(Shutdown),
		)
	}
}

func CameraSystem(time *Time, p *Preview) {
	if p.AutoRotate != 0 {
		p.Camera.Orbit(p.AutoRotate*time.Seconds(), 0)
	}
}

func SnapshotSystem(cmd *Commands, p *Preview, gizmos *Gizmos) {
	if p.every == 0 || cmd.Frame()%p.every != 0 {
		return
	}
	if err := p.write(gizmos, cmd.Frame()); err != nil {
		cmd.Logger().Errorf("snapshot: %v", err)
		return
	}
	cmd.Logger().Debugf("frame %d: snapshot written", cmd.Frame())
}

func finalSnapshotSystem(cmd *Commands, p *Preview, gizmos *Gizmos) {
	path := p.snapshotPath(cmd.Frame())
	if err := p.write(gizmos, cmd.Frame()); err != nil {
		cmd.Logger().Errorf("snapshot: %v", err)
		return
	}
	cmd.Logger().Infof("snapshot written to %s", path)
}
