package viscos

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/viscos/viscos/scene"
)

// Controls holds the values a user can change while the app runs: the pose
// of the local basis and, through Push, a whole new config.
type Controls struct {
	Position mgl32.Vec3
	// Rotation in degrees.
	Rotation mgl32.Vec3
	// Unreal interprets Position and Rotation in Unreal's left-handed Z-up
	// frame.
	Unreal bool

	mu      sync.Mutex
	pending *Config
	errs    chan error
	applied uint64
}

func NewControls(pose PoseConfig) *Controls {
	return &Controls{
		Position: pose.Position,
		Rotation: pose.Rotation,
		Unreal:   pose.Unreal,
		errs:     make(chan error, 8),
	}
}

// Push queues cfg to be applied at the start of the next frame. Only the
// latest pushed config is kept. Safe to call from any goroutine.
func (c *Controls) Push(cfg *Config) {
	c.mu.Lock()
	c.pending = cfg
	c.mu.Unlock()
}

// take returns and clears the pending config.
func (c *Controls) take() *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg := c.pending
	c.pending = nil
	return cfg
}

func (c *Controls) report(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

// Applied counts the configs applied so far.
func (c *Controls) Applied() uint64 {
	return c.applied
}

// LocalTransform is the transform the local basis gets for the current
// pose.
func (c *Controls) LocalTransform() scene.Transform {
	t := scene.NewTransform()
	t.SetPosition(c.Position)
	t.SetRotation(scene.RadiansVec(c.Rotation))
	if c.Unreal {
		scene.UnrealToRHS(&t)
	}
	return t
}

// ControlModule applies pose and config changes to the gizmos. It needs
// GizmoModule and AnimationModule. With Watch set, edits to Path are
// reloaded and applied live.
type ControlModule struct {
	Path  string
	Pose  PoseConfig
	Watch bool
}

func (mod ControlModule) Install(app *App, cmd *Commands) {
	controls := NewControls(mod.Pose)
	cmd.AddResources(controls)

	if mod.Watch && mod.Path != "" {
		w, err := watchConfig(mod.Path, controls)
		if err != nil {
			app.Logger().Errorf("config watch disabled: %v", err)
		} else {
			app.Logger().Infof("watching %s", mod.Path)
			cmd.AddResources(w)
			app.UseSystem(
				System(stopWatcherSystem).
					InStage(Shutdown),
			)
		}
	}

	app.UseSystem(
		System(ControlSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(PoseSystem).
			InStage(Update),
	)
}

// ControlSystem applies the most recently pushed config, if any.
func ControlSystem(cmd *Commands, controls *Controls, gizmos *Gizmos, tweens *Tweens) {
drain:
	for {
		select {
		case err := <-controls.errs:
			cmd.Logger().Warnf("config reload: %v", err)
		default:
			break drain
		}
	}

	cfg := controls.take()
	if cfg == nil {
		return
	}
	// Pushed configs need not come from ParseConfig.
	if err := cfg.Validate(); err != nil {
		cmd.Logger().Warnf("rejecting config: %v", err)
		return
	}
	if err := applyScene(gizmos, tweens, cfg); err != nil {
		cmd.Logger().Warnf("applying config: %v", err)
		return
	}
	controls.Position = cfg.Pose.Position
	controls.Rotation = cfg.Pose.Rotation
	controls.Unreal = cfg.Pose.Unreal
	controls.applied++
	cmd.Logger().Infof("frame %d: config applied", cmd.Frame())
}

// PoseSystem places the local basis according to the controls.
func PoseSystem(controls *Controls, gizmos *Gizmos) {
	local := gizmos.Basis(LocalBasisGizmo)
	if local == nil {
		return
	}
	local.Group().Transform = controls.LocalTransform()
}

type configWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	controls *Controls
	done     chan struct{}
}

// watchConfig watches the directory holding path so that editors which
// save by renaming a temp file are still seen.
func watchConfig(path string, controls *Controls) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	cw := &configWatcher{
		watcher:  w,
		path:     abs,
		controls: controls,
		done:     make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

func (cw *configWatcher) loop() {
	defer close(cw.done)
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				cw.controls.report(err)
				continue
			}
			cw.controls.Push(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.controls.report(err)
		}
	}
}

func (cw *configWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}

func stopWatcherSystem(cmd *Commands, w *configWatcher) {
	if err := w.Close(); err != nil {
		cmd.Logger().Warnf("closing config watcher: %v", err)
	}
}
