package gizmo

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Trace is a directed segment. End is expressed relative to Start: the
// arrow container sits at Start and the shaft runs from its origin to End.
type Trace struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
}

func NewTrace(start, end mgl32.Vec3) *Trace {
	return &Trace{Start: start, End: end}
}

func (t *Trace) SetStart(start mgl32.Vec3) {
	t.Start = start
}

func (t *Trace) SetEnd(end mgl32.Vec3) {
	t.End = end
}

func (t *Trace) Length() float32 {
	return t.End.Len()
}
