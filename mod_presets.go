package viscos

import (
	"fmt"
	"os"

	"github.com/viscos/viscos/gizmo"
)

// CaptureConfig returns a copy of base with the gizmo and pose sections
// replaced by the live scene state. Arrow tweens are carried over from base
// by name.
func CaptureConfig(base *Config, gizmos *Gizmos, controls *Controls) *Config {
	cfg := *base

	if controls != nil {
		cfg.Pose = PoseConfig{
			Position: controls.Position,
			Rotation: controls.Rotation,
			Unreal:   controls.Unreal,
		}
	}

	if axes := gizmos.Basis(AxesGizmo); axes != nil {
		cfg.Axes.Enabled = axes.Group().Visible
		cfg.Axes.Length = axes.Arrow(0).Trace().Length()
		cfg.Axes.Style = styleConfig(axes.Arrow(0).Style())
		cfg.Axes.Style.Color = ""
	}

	if local := gizmos.Basis(LocalBasisGizmo); local != nil {
		arrows := local.Arrows()
		cfg.LocalBasis.Enabled = local.Group().Visible
		cfg.LocalBasis.Origin = local.Origin()
		cfg.LocalBasis.X = arrows[0].Trace().End
		cfg.LocalBasis.Y = arrows[1].Trace().End
		cfg.LocalBasis.Z = arrows[2].Trace().End
		for i, a := range arrows {
			cfg.LocalBasis.Colors[i] = a.Style().Color.String()
		}
		cfg.LocalBasis.Style = styleConfig(arrows[0].Style())
		cfg.LocalBasis.Style.Color = ""
	}

	tweens := make(map[string]*TweenConfig)
	for _, a := range base.Arrows {
		tweens[a.Name] = a.Tween
	}

	cfg.Arrows = nil
	for _, name := range gizmos.Names() {
		arrow := gizmos.Arrow(name)
		if arrow == nil {
			continue
		}
		def := ArrowConfig{
			Name:  name,
			Start: arrow.Trace().Start,
			End:   arrow.Trace().End,
			Style: styleConfig(arrow.Style()),
			Tween: tweens[name],
		}
		if def.Tween != nil {
			// The live end point is mid-tween; keep the authored one.
			for _, a := range base.Arrows {
				if a.Name == name {
					def.End = a.End
				}
			}
		}
		cfg.Arrows = append(cfg.Arrows, def)
	}
	return &cfg
}

func styleConfig(s gizmo.ArrowStyle) StyleConfig {
	opacity := s.Opacity
	return StyleConfig{
		Thickness:  s.Thickness,
		HeadRadius: s.HeadRadius,
		HeadHeight: s.HeadHeight,
		Roundness:  s.Roundness,
		Color:      s.Color.String(),
		Opacity:    &opacity,
		Line:       !s.Head,
	}
}

// SavePreset writes cfg as TOML to filename.
func SavePreset(cfg *Config, filename string) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}
	return nil
}

// LoadPreset reads filename and queues it on controls; it is applied at the
// start of the next frame.
func LoadPreset(controls *Controls, filename string) error {
	cfg, err := LoadConfig(filename)
	if err != nil {
		return err
	}
	controls.Push(cfg)
	return nil
}
