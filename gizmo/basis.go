package gizmo

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/viscos/viscos/scene"
)

// AxesLength is the length of each axis of the world axes basis.
const AxesLength = 5

// Basis is three arrows sharing one origin.
type Basis struct {
	arrows [3]*Arrow
	group  *scene.Node
}

// NewBasis builds one arrow per axis end point, all starting at origin.
// Every arrow gets style with its own colour.
func NewBasis(origin, x, y, z mgl32.Vec3, colors [3]scene.Color, style ArrowStyle) *Basis {
	b := &Basis{group: scene.NewGroup("basis")}
	for i, end := range [3]mgl32.Vec3{x, y, z} {
		s := style
		s.Color = colors[i]
		b.arrows[i] = NewArrow(NewTrace(origin, end), s)
		b.arrows[i].Group().Name = axisNames[i]
		b.group.Add(b.arrows[i].Group())
	}
	return b
}

var axisNames = [3]string{"x", "y", "z"}

// NewAxesBasis is a world axes indicator: unit X, Y and Z scaled by length,
// coloured red, green and blue.
func NewAxesBasis(length float32, style ArrowStyle) *Basis {
	b := NewBasis(
		mgl32.Vec3{},
		mgl32.Vec3{length, 0, 0},
		mgl32.Vec3{0, length, 0},
		mgl32.Vec3{0, 0, length},
		[3]scene.Color{scene.Red, scene.Green, scene.Blue},
		style,
	)
	b.group.Name = "axes"
	return b
}

func (b *Basis) Group() *scene.Node {
	return b.group
}

func (b *Basis) Arrows() [3]*Arrow {
	return b.arrows
}

func (b *Basis) Arrow(axis int) *Arrow {
	return b.arrows[axis]
}

func (b *Basis) Origin() mgl32.Vec3 {
	return b.arrows[0].Trace().Start
}

// SetOrigin moves the shared start of all three traces. Geometry follows on
// the next Update.
func (b *Basis) SetOrigin(origin mgl32.Vec3) {
	for _, a := range b.arrows {
		a.Trace().SetStart(origin)
	}
}

func (b *Basis) SetAxis(axis int, end mgl32.Vec3) {
	b.arrows[axis].Trace().SetEnd(end)
}

// SetStyle applies style to every arrow, keeping each arrow's colour.
func (b *Basis) SetStyle(style ArrowStyle) {
	for _, a := range b.arrows {
		s := style
		s.Color = a.Style().Color
		a.SetStyle(s)
	}
}

// Update updates each arrow and returns how many were rebuilt.
func (b *Basis) Update() int {
	n := 0
	for _, a := range b.arrows {
		if a.Update() {
			n++
		}
	}
	return n
}
