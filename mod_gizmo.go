package viscos

import (
	"fmt"
	"slices"

	"github.com/viscos/viscos/gizmo"
	"github.com/viscos/viscos/scene"
)

// Gizmos owns the scene root and the arrows and bases drawn in it.
type Gizmos struct {
	Root *scene.Node

	arrows   map[string]*gizmo.Arrow
	bases    map[string]*gizmo.Basis
	order    []string
	rebuilds uint64
}

func NewGizmos() *Gizmos {
	return &Gizmos{
		Root:   scene.NewGroup("scene"),
		arrows: make(map[string]*gizmo.Arrow),
		bases:  make(map[string]*gizmo.Basis),
	}
}

func (g *Gizmos) claim(name string) {
	if g.Has(name) {
		panic(fmt.Sprintf("gizmo %q already registered", name))
	}
	g.order = append(g.order, name)
}

func (g *Gizmos) AddArrow(name string, arrow *gizmo.Arrow) *gizmo.Arrow {
	g.claim(name)
	arrow.Group().Name = name
	g.arrows[name] = arrow
	g.Root.Add(arrow.Group())
	return arrow
}

func (g *Gizmos) AddBasis(name string, basis *gizmo.Basis) *gizmo.Basis {
	g.claim(name)
	basis.Group().Name = name
	g.bases[name] = basis
	g.Root.Add(basis.Group())
	return basis
}

// Has reports whether a gizmo of either kind is registered under name.
func (g *Gizmos) Has(name string) bool {
	return slices.Contains(g.order, name)
}

func (g *Gizmos) Arrow(name string) *gizmo.Arrow {
	return g.arrows[name]
}

func (g *Gizmos) Basis(name string) *gizmo.Basis {
	return g.bases[name]
}

// Names lists registered gizmos in registration order.
func (g *Gizmos) Names() []string {
	return slices.Clone(g.order)
}

// Remove detaches a gizmo from the scene; it is no longer updated.
func (g *Gizmos) Remove(name string) bool {
	idx := slices.Index(g.order, name)
	if idx < 0 {
		return false
	}
	g.order = slices.Delete(g.order, idx, idx+1)

	if a, ok := g.arrows[name]; ok {
		g.Root.Remove(a.Group())
		delete(g.arrows, name)
	}
	if b, ok := g.bases[name]; ok {
		g.Root.Remove(b.Group())
		delete(g.bases, name)
	}
	return true
}

// UpdateAll updates every gizmo and returns the number of arrows rebuilt.
func (g *Gizmos) UpdateAll() int {
	n := 0
	for _, name := range g.order {
		if a, ok := g.arrows[name]; ok && a.Update() {
			n++
		}
		if b, ok := g.bases[name]; ok {
			n += b.Update()
		}
	}
	g.rebuilds += uint64(n)
	return n
}

// Rebuilds is the total number of arrow rebuilds done by UpdateAll.
func (g *Gizmos) Rebuilds() uint64 {
	return g.rebuilds
}

type GizmoModule struct{}

func (GizmoModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewGizmos())
	app.UseSystem(
		System(GizmoUpdateSystem).
			InStage(PreRender),
	)
}

// GizmoUpdateSystem brings every gizmo up to date before rendering.
func GizmoUpdateSystem(cmd *Commands, gizmos *Gizmos) {
	if n := gizmos.UpdateAll(); n > 0 {
		cmd.Logger().Debugf("frame %d: rebuilt %d arrows", cmd.Frame(), n)
	}
}
