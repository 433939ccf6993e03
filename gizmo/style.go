package gizmo

import (
	"math"

	"github.com/viscos/viscos/scene"
)

// Valid ranges enforced by ArrowStyle.Clamp. Constructors do not clamp:
// out-of-range styles produce degenerate geometry rather than errors.
const (
	MaxThickness  = 100
	MaxHeadRadius = 100
	MaxHeadHeight = 100
	MinRoundness  = 3
	MaxRoundness  = 128
)

type ArrowStyle struct {
	Thickness  float32
	HeadRadius float32
	HeadHeight float32
	// Roundness is the number of radial segments of the shaft and head.
	Roundness int
	Color     scene.Color
	Opacity   float32
	// Head disables the cone when false, leaving a plain line.
	Head bool
}

func DefaultArrowStyle() ArrowStyle {
	return ArrowStyle{
		Thickness:  1,
		HeadRadius: 1,
		HeadHeight: 1,
		Roundness:  8,
		Color:      scene.Red,
		Opacity:    1,
		Head:       true,
	}
}

func (s ArrowStyle) Clamp() ArrowStyle {
	s.Thickness = clampf(s.Thickness, 0, MaxThickness)
	s.HeadRadius = clampf(s.HeadRadius, 0, MaxHeadRadius)
	s.HeadHeight = clampf(s.HeadHeight, 0, MaxHeadHeight)
	s.Opacity = clampf(s.Opacity, 0, 1)
	s.Roundness = min(max(s.Roundness, MinRoundness), MaxRoundness)
	s.Color &= 0xffffff
	return s
}

func clampf(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) {
		return lo
	}
	return min(max(v, lo), hi)
}
