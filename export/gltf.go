// Package export writes a scene tree as glTF 2.0.
package export

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/unlit"
	"github.com/qmuntal/gltf/modeler"

	"github.com/viscos/viscos/scene"
)

type exporter struct {
	doc       *gltf.Document
	materials map[*scene.BasicMaterial]int
}

// Document converts the visible part of the tree under root into a glTF
// document with a single scene.
func Document(root *scene.Node) *gltf.Document {
	e := &exporter{
		doc:       gltf.NewDocument(),
		materials: make(map[*scene.BasicMaterial]int),
	}
	if root != nil && root.Visible {
		idx := e.node(root)
		e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, idx)
	}
	return e.doc
}

func (e *exporter) node(n *scene.Node) int {
	q := n.Transform.Quat()
	p, s := n.Transform.Position, n.Transform.Scale
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: [3]float64{float64(p.X()), float64(p.Y()), float64(p.Z())},
		Rotation:    [4]float64{float64(q.V.X()), float64(q.V.Y()), float64(q.V.Z()), float64(q.W)},
		Scale:       [3]float64{float64(s.X()), float64(s.Y()), float64(s.Z())},
	}
	if n.Mesh != nil && n.Mesh.Geometry != nil && len(n.Mesh.Geometry.Indices) > 0 {
		gn.Mesh = gltf.Index(e.mesh(n.Name, n.Mesh))
	}

	idx := len(e.doc.Nodes)
	e.doc.Nodes = append(e.doc.Nodes, gn)

	for _, child := range n.Children() {
		if !child.Visible {
			continue
		}
		gn.Children = append(gn.Children, e.node(child))
	}
	return idx
}

func (e *exporter) mesh(name string, m *scene.Mesh) int {
	g := m.Geometry
	positions := make([][3]float32, len(g.Positions))
	for i, p := range g.Positions {
		positions[i] = p
	}

	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(e.doc, positions),
	}
	if len(g.Normals) == len(g.Positions) {
		normals := make([][3]float32, len(g.Normals))
		for i, n := range g.Normals {
			normals[i] = n
		}
		attrs[gltf.NORMAL] = modeler.WriteNormal(e.doc, normals)
	}
	if len(g.UVs) == len(g.Positions) {
		uvs := make([][2]float32, len(g.UVs))
		for i, uv := range g.UVs {
			uvs[i] = uv
		}
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(e.doc, uvs)
	}

	prim := &gltf.Primitive{
		Attributes: attrs,
		Indices:    gltf.Index(modeler.WriteIndices(e.doc, g.Indices)),
	}
	if m.Material != nil {
		prim.Material = gltf.Index(e.material(m.Material))
	}

	e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{
		Name:       name,
		Primitives: []*gltf.Primitive{prim},
	})
	return len(e.doc.Meshes) - 1
}

func (e *exporter) material(m *scene.BasicMaterial) int {
	if idx, ok := e.materials[m]; ok {
		return idx
	}
	rgba := m.RGBA()
	mat := &gltf.Material{
		Name: m.Color.String(),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(rgba[0]), float64(rgba[1]), float64(rgba[2]), float64(rgba[3])},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		DoubleSided: true,
		// Gizmos are flat coloured, lit viewers should not shade them.
		Extensions: gltf.Extensions{unlit.ExtensionName: unlit.Unlit{}},
	}
	if !slices.Contains(e.doc.ExtensionsUsed, unlit.ExtensionName) {
		e.doc.ExtensionsUsed = append(e.doc.ExtensionsUsed, unlit.ExtensionName)
	}
	if m.Transparent {
		mat.AlphaMode = gltf.AlphaBlend
	}

	idx := len(e.doc.Materials)
	e.doc.Materials = append(e.doc.Materials, mat)
	e.materials[m] = idx
	return idx
}

// Save writes the tree to path. A .glb extension selects the binary
// container; anything else writes JSON with an embedded buffer.
func Save(root *scene.Node, path string) error {
	doc := Document(root)
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("writing gltf %s: %w", path, err)
	}
	return nil
}
