package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Mesh pairs a geometry with the material it is drawn with.
type Mesh struct {
	Geometry *Geometry
	Material *BasicMaterial
}

// Node is a transformable container in the scene graph. A node with a
// Mesh is drawable; a node without one only groups its children.
type Node struct {
	ID        string
	Name      string
	Transform Transform
	Visible   bool
	Mesh      *Mesh

	parent   *Node
	children []*Node
}

func NewGroup(name string) *Node {
	return &Node{
		ID:        uuid.NewString(),
		Name:      name,
		Transform: NewTransform(),
		Visible:   true,
	}
}

func NewMeshNode(name string, geometry *Geometry, material *BasicMaterial) *Node {
	n := NewGroup(name)
	n.Mesh = &Mesh{Geometry: geometry, Material: material}
	return n
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches children, detaching them from any previous parent first.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

func (n *Node) Remove(child *Node) bool {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	return true
}

// Traverse visits n and its descendants depth first. Returning false from
// fn skips the subtree below the visited node.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Traverse(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// WorldMatrix composes the local transforms from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.Transform.ObjectToWorld()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.ObjectToWorld().Mul4(m)
	}
	return m
}

// WorldPosition is the node origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// IsVisible reports whether n and all of its ancestors are visible.
func (n *Node) IsVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}
