package viscos

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/viscos/viscos/gizmo"
	"github.com/viscos/viscos/scene"
)

// Names of the gizmos LoadScene creates besides the configured arrows.
const (
	AxesGizmo       = "axes"
	LocalBasisGizmo = "local"
)

// SceneModule fills the Gizmos resource from Config. Install it after
// GizmoModule and AnimationModule.
type SceneModule struct {
	Config *Config
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	gizmos := Resource[Gizmos](app)
	if gizmos == nil {
		panic("SceneModule requires GizmoModule")
	}
	if err := LoadScene(gizmos, Resource[Tweens](app), mod.Config); err != nil {
		app.Logger().Errorf("loading scene: %v", err)
		return
	}
	app.Logger().Infof("scene loaded: %d gizmos", len(gizmos.Names()))
}

// LoadScene creates the gizmos described by cfg.
func LoadScene(gizmos *Gizmos, tweens *Tweens, cfg *Config) error {
	if cfg.Axes.Enabled {
		if err := spawnAxes(gizmos, cfg.Axes); err != nil {
			return err
		}
	}

	if cfg.LocalBasis.Enabled {
		if err := spawnLocalBasis(gizmos, cfg.LocalBasis); err != nil {
			return err
		}
	}

	for _, def := range cfg.Arrows {
		if err := spawnArrow(gizmos, tweens, def); err != nil {
			return err
		}
	}
	return nil
}

func spawnAxes(gizmos *Gizmos, def AxesConfig) error {
	style, err := def.Style.ArrowStyle(scene.Red)
	if err != nil {
		return fmt.Errorf("axes: %w", err)
	}
	gizmos.AddBasis(AxesGizmo, gizmo.NewAxesBasis(def.Length, style))
	return nil
}

func spawnLocalBasis(gizmos *Gizmos, def BasisConfig) error {
	style, err := def.Style.ArrowStyle(scene.White)
	if err != nil {
		return fmt.Errorf("local basis: %w", err)
	}
	colors, err := def.ParseColors()
	if err != nil {
		return fmt.Errorf("local basis: %w", err)
	}
	gizmos.AddBasis(LocalBasisGizmo, gizmo.NewBasis(def.Origin, def.X, def.Y, def.Z, colors, style))
	return nil
}

func spawnArrow(gizmos *Gizmos, tweens *Tweens, def ArrowConfig) error {
	if gizmos.Has(def.Name) {
		return fmt.Errorf("arrow %q: name already in use", def.Name)
	}
	style, err := def.Style.ArrowStyle(scene.Red)
	if err != nil {
		return fmt.Errorf("arrow %q: %w", def.Name, err)
	}
	trace := gizmo.NewTrace(def.Start, def.End)
	gizmos.AddArrow(def.Name, gizmo.NewArrow(trace, style))

	if def.Tween != nil && tweens != nil {
		tweens.Add(NewTraceTween(trace, def.Tween.To, def.Tween.Duration, def.Tween.Easing))
	}
	return nil
}

// applyScene pushes a changed config into the existing gizmos through their
// setters. Gizmos missing from the scene are spawned; arrows no longer in
// the config are removed. A tweened arrow gets its tween rebuilt from the
// new config.
func applyScene(gizmos *Gizmos, tweens *Tweens, cfg *Config) error {
	if gizmos.Basis(AxesGizmo) == nil && cfg.Axes.Enabled {
		if err := spawnAxes(gizmos, cfg.Axes); err != nil {
			return err
		}
	}
	if gizmos.Basis(LocalBasisGizmo) == nil && cfg.LocalBasis.Enabled {
		if err := spawnLocalBasis(gizmos, cfg.LocalBasis); err != nil {
			return err
		}
	}

	if axes := gizmos.Basis(AxesGizmo); axes != nil {
		style, err := cfg.Axes.Style.ArrowStyle(scene.Red)
		if err != nil {
			return err
		}
		axes.SetStyle(style)
		l := cfg.Axes.Length
		axes.SetAxis(0, mgl32.Vec3{l, 0, 0})
		axes.SetAxis(1, mgl32.Vec3{0, l, 0})
		axes.SetAxis(2, mgl32.Vec3{0, 0, l})
		axes.Group().Visible = cfg.Axes.Enabled
	}

	if local := gizmos.Basis(LocalBasisGizmo); local != nil {
		style, err := cfg.LocalBasis.Style.ArrowStyle(scene.White)
		if err != nil {
			return err
		}
		colors, err := cfg.LocalBasis.ParseColors()
		if err != nil {
			return err
		}
		local.SetStyle(style)
		local.SetOrigin(cfg.LocalBasis.Origin)
		for i, end := range [3]mgl32.Vec3{cfg.LocalBasis.X, cfg.LocalBasis.Y, cfg.LocalBasis.Z} {
			local.SetAxis(i, end)
			local.Arrow(i).SetColor(colors[i])
		}
		local.Group().Visible = cfg.LocalBasis.Enabled
	}

	wanted := make(map[string]bool)
	for _, def := range cfg.Arrows {
		wanted[def.Name] = true
		arrow := gizmos.Arrow(def.Name)
		if arrow == nil {
			if err := spawnArrow(gizmos, tweens, def); err != nil {
				return err
			}
			continue
		}
		style, err := def.Style.ArrowStyle(scene.Red)
		if err != nil {
			return err
		}
		if tweens != nil {
			tweens.RemoveTrace(arrow.Trace())
		}
		arrow.Trace().SetStart(def.Start)
		arrow.Trace().SetEnd(def.End)
		arrow.SetStyle(style)
		if def.Tween != nil && tweens != nil {
			tweens.Add(NewTraceTween(arrow.Trace(), def.Tween.To, def.Tween.Duration, def.Tween.Easing))
		}
	}

	for _, name := range gizmos.Names() {
		if name == AxesGizmo || name == LocalBasisGizmo || wanted[name] {
			continue
		}
		if arrow := gizmos.Arrow(name); arrow != nil {
			gizmos.Remove(name)
			if tweens != nil {
				tweens.RemoveTrace(arrow.Trace())
			}
		}
	}
	return nil
}
