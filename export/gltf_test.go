package export

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/unlit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viscos/viscos/scene"
)

func testTree() *scene.Node {
	mat := scene.NewBasicMaterial(scene.Green, 0.5)
	root := scene.NewGroup("root")
	group := scene.NewGroup("arrow")
	group.Transform.SetPosition(mgl32.Vec3{1, 2, 3})

	shaft := scene.NewMeshNode("shaft", scene.NewTubeGeometry(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 0.1, 8), mat)
	head := scene.NewMeshNode("head", scene.NewConeGeometry(0.2, 0.4, 8), mat)
	hidden := scene.NewMeshNode("hidden", scene.NewConeGeometry(0.2, 0.4, 8), mat)
	hidden.Visible = false

	group.Add(shaft, head, hidden)
	root.Add(group)
	return root
}

func TestDocument(t *testing.T) {
	doc := Document(testTree())

	require.Len(t, doc.Nodes, 4, "root, group, shaft, head")
	assert.Equal(t, []int{0}, doc.Scenes[0].Nodes)
	assert.Len(t, doc.Meshes, 2)
	assert.Len(t, doc.Materials, 1, "shared material is written once")

	group := doc.Nodes[1]
	assert.Equal(t, "arrow", group.Name)
	assert.Equal(t, [3]float64{1, 2, 3}, group.Translation)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, group.Rotation)
	assert.Len(t, group.Children, 2)

	mat := doc.Materials[0]
	assert.Equal(t, gltf.AlphaBlend, mat.AlphaMode)
	require.NotNil(t, mat.PBRMetallicRoughness.BaseColorFactor)
	assert.InDelta(t, 0.5, mat.PBRMetallicRoughness.BaseColorFactor[3], 1e-6)
	assert.Contains(t, mat.Extensions, unlit.ExtensionName)
	assert.Equal(t, []string{unlit.ExtensionName}, doc.ExtensionsUsed)
}

func TestDocument_UnlitDeclaredOnce(t *testing.T) {
	root := testTree()
	red := scene.NewBasicMaterial(scene.Red, 1)
	root.Add(scene.NewMeshNode("extra", scene.NewConeGeometry(0.2, 0.4, 8), red))

	doc := Document(root)
	require.Len(t, doc.Materials, 2)
	for _, mat := range doc.Materials {
		assert.Contains(t, mat.Extensions, unlit.ExtensionName)
	}
	assert.Equal(t, []string{unlit.ExtensionName}, doc.ExtensionsUsed)
	assert.Equal(t, gltf.AlphaOpaque, doc.Materials[1].AlphaMode)
}

func TestDocument_HiddenRoot(t *testing.T) {
	root := testTree()
	root.Visible = false

	doc := Document(root)
	assert.Empty(t, doc.Nodes)
}

func TestSave(t *testing.T) {
	for _, name := range []string{"scene.glb", "scene.gltf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(testTree(), path))

			doc, err := gltf.Open(path)
			require.NoError(t, err)
			assert.Len(t, doc.Nodes, 4)
			assert.Len(t, doc.Meshes, 2)
			assert.Contains(t, doc.ExtensionsUsed, unlit.ExtensionName)
			require.Len(t, doc.Materials, 1)
			assert.Contains(t, doc.Materials[0].Extensions, unlit.ExtensionName)
		})
	}
}
