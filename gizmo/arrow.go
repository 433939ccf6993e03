package gizmo

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/viscos/viscos/scene"
)

// Arrow draws a Trace as a tube shaft with an optional cone head.
// The trace is held by reference: callers mutate it and call Update.
type Arrow struct {
	trace *Trace
	last  Trace
	style ArrowStyle

	material *scene.BasicMaterial
	group    *scene.Node
	shaft    *scene.Node
	head     *scene.Node
}

func NewArrow(trace *Trace, style ArrowStyle) *Arrow {
	a := &Arrow{
		trace:    trace,
		style:    style,
		material: scene.NewBasicMaterial(style.Color, style.Opacity),
	}

	shaftGeom := scene.NewTubeGeometry(mgl32.Vec3{}, trace.End, style.Thickness*ShaftRadiusScale, style.Roundness)
	headGeom := scene.NewConeGeometry(style.HeadRadius*HeadRadiusScale, style.HeadHeight*HeadHeightScale, style.Roundness)

	a.shaft = scene.NewMeshNode("shaft", shaftGeom, a.material)
	a.head = scene.NewMeshNode("head", headGeom, a.material)
	a.head.Visible = style.Head

	a.group = scene.NewGroup("arrow")
	a.group.Add(a.shaft, a.head)
	a.group.Transform.SetPosition(trace.Start)
	a.placeHead()

	a.last = *trace
	return a
}

// NewLine is an Arrow without a head.
func NewLine(trace *Trace, style ArrowStyle) *Arrow {
	style.Head = false
	return NewArrow(trace, style)
}

// Group is the container to insert into a scene. It is the same node for
// the whole lifetime of the arrow.
func (a *Arrow) Group() *scene.Node {
	return a.group
}

func (a *Arrow) Shaft() *scene.Node {
	return a.shaft
}

func (a *Arrow) Head() *scene.Node {
	return a.head
}

func (a *Arrow) Trace() *Trace {
	return a.trace
}

func (a *Arrow) Style() ArrowStyle {
	return a.style
}

// Stale reports whether the trace changed since the last rebuild.
func (a *Arrow) Stale() bool {
	return *a.trace != a.last
}

// Update rebuilds the arrow if its trace changed since the last rebuild.
// Comparison is exact; it reports whether a rebuild happened.
func (a *Arrow) Update() bool {
	if !a.Stale() {
		return false
	}
	a.rebuild()
	return true
}

func (a *Arrow) rebuild() {
	a.shaft.Mesh.Geometry.SetTube(mgl32.Vec3{}, a.trace.End, a.style.Thickness*ShaftRadiusScale, a.style.Roundness)
	a.group.Transform.SetPosition(a.trace.Start)
	a.placeHead()
	a.last = *a.trace
}

func (a *Arrow) placeHead() {
	d := a.trace.End
	yaw, pitch := HeadRotation(d)
	a.head.Transform.SetPosition(HeadPosition(d, a.style.HeadHeight))
	a.head.Transform.SetRotation(mgl32.Vec3{0, yaw, pitch})
}

// SetTrace rebinds the arrow to another trace and rebuilds immediately.
func (a *Arrow) SetTrace(trace *Trace) {
	a.trace = trace
	a.rebuild()
}

// SetStyle replaces the style and regenerates shaft and head in place.
func (a *Arrow) SetStyle(style ArrowStyle) {
	a.style = style
	a.material.Color = style.Color
	a.material.SetOpacity(style.Opacity)
	a.head.Visible = style.Head
	a.head.Mesh.Geometry.SetCone(style.HeadRadius*HeadRadiusScale, style.HeadHeight*HeadHeightScale, style.Roundness)
	a.rebuild()
}

func (a *Arrow) SetColor(color scene.Color) {
	a.style.Color = color
	a.material.Color = color
}

func (a *Arrow) SetOpacity(opacity float32) {
	a.style.Opacity = opacity
	a.material.SetOpacity(opacity)
}
