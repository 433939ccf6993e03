package viscos

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/viscos/viscos/gizmo"
	"github.com/viscos/viscos/scene"
)

type Config struct {
	App        AppConfig     `toml:"app"`
	Camera     CameraConfig  `toml:"camera"`
	Axes       AxesConfig    `toml:"axes"`
	LocalBasis BasisConfig   `toml:"local_basis"`
	Pose       PoseConfig    `toml:"pose"`
	Arrows     []ArrowConfig `toml:"arrow"`
	Output     OutputConfig  `toml:"output"`
}

type AppConfig struct {
	FPS       int    `toml:"fps"`
	Frames    uint64 `toml:"frames"`
	Debug     bool   `toml:"debug"`
	LogPrefix string `toml:"log_prefix"`
	// FixedStep in seconds; 0 uses the wall clock.
	FixedStep float64 `toml:"fixed_step"`
}

type CameraConfig struct {
	Eye         mgl32.Vec3 `toml:"eye"`
	Target      mgl32.Vec3 `toml:"target"`
	Fov         float32    `toml:"fov"`
	MinDistance float32    `toml:"min_distance"`
	MaxDistance float32    `toml:"max_distance"`
	// AutoRotate in degrees per second around the target.
	AutoRotate float32 `toml:"auto_rotate"`
}

// StyleConfig mirrors gizmo.ArrowStyle. Zero sizes and an empty colour
// fall back to the defaults; a missing opacity means opaque.
type StyleConfig struct {
	Thickness  float32  `toml:"thickness"`
	HeadRadius float32  `toml:"head_radius"`
	HeadHeight float32  `toml:"head_height"`
	Roundness  int      `toml:"roundness"`
	Color      string   `toml:"color"`
	Opacity    *float32 `toml:"opacity,omitempty"`
	Line       bool     `toml:"line"`
}

type AxesConfig struct {
	Enabled bool        `toml:"enabled"`
	Length  float32     `toml:"length"`
	Style   StyleConfig `toml:"style"`
}

type BasisConfig struct {
	Enabled bool        `toml:"enabled"`
	Origin  mgl32.Vec3  `toml:"origin"`
	X       mgl32.Vec3  `toml:"x"`
	Y       mgl32.Vec3  `toml:"y"`
	Z       mgl32.Vec3  `toml:"z"`
	Colors  [3]string   `toml:"colors"`
	Style   StyleConfig `toml:"style"`
}

// PoseConfig places the local basis. Rotation is in degrees.
type PoseConfig struct {
	Position mgl32.Vec3 `toml:"position"`
	Rotation mgl32.Vec3 `toml:"rotation"`
	Unreal   bool       `toml:"unreal"`
}

type ArrowConfig struct {
	Name  string       `toml:"name"`
	Start mgl32.Vec3   `toml:"start"`
	End   mgl32.Vec3   `toml:"end"`
	Style StyleConfig  `toml:"style"`
	Tween *TweenConfig `toml:"tween,omitempty"`
}

// TweenConfig animates an arrow's end point back and forth.
type TweenConfig struct {
	To       mgl32.Vec3 `toml:"to"`
	Duration float32    `toml:"duration"`
	Easing   string     `toml:"easing"`
}

type OutputConfig struct {
	Snapshot       string `toml:"snapshot"`
	SnapshotWidth  int    `toml:"snapshot_width"`
	SnapshotHeight int    `toml:"snapshot_height"`
	SnapshotEvery  uint64 `toml:"snapshot_every"`
	Grid           bool   `toml:"grid"`
	GLTF           string `toml:"gltf"`
}

func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			FPS:       60,
			LogPrefix: "viscos",
		},
		Camera: CameraConfig{
			Eye:         mgl32.Vec3{4, 3, 4},
			Fov:         75,
			MinDistance: 3,
			MaxDistance: 10,
		},
		Axes: AxesConfig{
			Enabled: true,
			Length:  gizmo.AxesLength,
			Style:   StyleConfig{Thickness: 2, HeadRadius: 2, HeadHeight: 2, Roundness: 8},
		},
		LocalBasis: BasisConfig{
			Enabled: true,
			X:       mgl32.Vec3{1, 0, 0},
			Y:       mgl32.Vec3{0, 0, 1},
			Z:       mgl32.Vec3{0, 1, 0},
			Colors:  [3]string{"#ffaa00", "#aaff00", "#00aaff"},
			Style:   StyleConfig{Thickness: 4, HeadRadius: 4, HeadHeight: 4, Roundness: 4},
		},
		Pose: PoseConfig{
			Position: mgl32.Vec3{2, 2, 2},
			Rotation: mgl32.Vec3{35, 30, 335},
			Unreal:   true,
		},
		Output: OutputConfig{
			SnapshotWidth:  512,
			SnapshotHeight: 512,
			Grid:           true,
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over DefaultConfig, rejecting unknown keys.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding toml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.FPS < 0 {
		errs = append(errs, fmt.Errorf("app.fps must not be negative, got %d", c.App.FPS))
	}
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera.min_distance %v exceeds max_distance %v", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if _, err := c.Axes.Style.ArrowStyle(scene.Red); err != nil {
		errs = append(errs, fmt.Errorf("axes.style: %w", err))
	}
	if _, err := c.LocalBasis.Style.ArrowStyle(scene.White); err != nil {
		errs = append(errs, fmt.Errorf("local_basis.style: %w", err))
	}
	if _, err := c.LocalBasis.ParseColors(); err != nil {
		errs = append(errs, fmt.Errorf("local_basis.colors: %w", err))
	}

	seen := make(map[string]bool)
	for i, a := range c.Arrows {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("arrow[%d]: missing name", i))
		} else if a.Name == AxesGizmo || a.Name == LocalBasisGizmo {
			errs = append(errs, fmt.Errorf("arrow[%d]: name %q is reserved", i, a.Name))
		} else if seen[a.Name] {
			errs = append(errs, fmt.Errorf("arrow[%d]: duplicate name %q", i, a.Name))
		}
		seen[a.Name] = true

		if _, err := a.Style.ArrowStyle(scene.Red); err != nil {
			errs = append(errs, fmt.Errorf("arrow %q: %w", a.Name, err))
		}
		if a.Tween != nil {
			if a.Tween.Duration <= 0 {
				errs = append(errs, fmt.Errorf("arrow %q: tween duration must be positive", a.Name))
			}
			if _, ok := easings[a.Tween.Easing]; !ok && a.Tween.Easing != "" {
				errs = append(errs, fmt.Errorf("arrow %q: unknown easing %q", a.Name, a.Tween.Easing))
			}
		}
	}
	return errors.Join(errs...)
}

// ArrowStyle resolves the config into a clamped style. fallback is used
// when no colour is given.
func (s StyleConfig) ArrowStyle(fallback scene.Color) (gizmo.ArrowStyle, error) {
	style := gizmo.DefaultArrowStyle()
	style.Color = fallback

	if s.Thickness != 0 {
		style.Thickness = s.Thickness
	}
	if s.HeadRadius != 0 {
		style.HeadRadius = s.HeadRadius
	}
	if s.HeadHeight != 0 {
		style.HeadHeight = s.HeadHeight
	}
	if s.Roundness != 0 {
		style.Roundness = s.Roundness
	}
	if s.Opacity != nil {
		style.Opacity = *s.Opacity
	}
	style.Head = !s.Line

	if s.Color != "" {
		c, err := scene.ParseColor(s.Color)
		if err != nil {
			return style, err
		}
		style.Color = c
	}
	return style.Clamp(), nil
}

func (b BasisConfig) ParseColors() ([3]scene.Color, error) {
	var colors [3]scene.Color
	for i, s := range b.Colors {
		c, err := scene.ParseColor(s)
		if err != nil {
			return colors, err
		}
		colors[i] = c
	}
	return colors, nil
}
