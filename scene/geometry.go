package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Geometry is an indexed triangle list.
// Version is bumped every time the vertex data is regenerated in place.
type Geometry struct {
	ID        string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Version   uint
}

func newGeometry() *Geometry {
	return &Geometry{ID: uuid.NewString()}
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

func (g *Geometry) reset() {
	g.Positions = g.Positions[:0]
	g.Normals = g.Normals[:0]
	g.UVs = g.UVs[:0]
	g.Indices = g.Indices[:0]
}

func (g *Geometry) push(p, n mgl32.Vec3, uv mgl32.Vec2) uint32 {
	g.Positions = append(g.Positions, p)
	g.Normals = append(g.Normals, n)
	g.UVs = append(g.UVs, uv)
	return uint32(len(g.Positions) - 1)
}

// BoundingBox returns min/max corners; ok is false for empty geometry.
func (g *Geometry) BoundingBox() (minB, maxB mgl32.Vec3, ok bool) {
	if len(g.Positions) == 0 {
		return minB, maxB, false
	}
	minB, maxB = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for i := 0; i < 3; i++ {
			minB[i] = min(minB[i], p[i])
			maxB[i] = max(maxB[i], p[i])
		}
	}
	return minB, maxB, true
}

// NewTubeGeometry sweeps a circle of the given radius along the straight
// path from -> to, with open ends.
func NewTubeGeometry(from, to mgl32.Vec3, radius float32, radialSegments int) *Geometry {
	g := newGeometry()
	g.buildTube(from, to, radius, radialSegments)
	return g
}

// SetTube regenerates the tube in place, keeping the geometry identity.
func (g *Geometry) SetTube(from, to mgl32.Vec3, radius float32, radialSegments int) {
	g.reset()
	g.buildTube(from, to, radius, radialSegments)
	g.Version++
}

func (g *Geometry) buildTube(from, to mgl32.Vec3, radius float32, radialSegments int) {
	if radialSegments < 1 {
		return
	}

	_, normal, binormal := lineFrame(to.Sub(from))

	rings := [2]mgl32.Vec3{from, to}
	for i, center := range rings {
		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			sin := float32(math.Sin(v))
			cos := float32(-math.Cos(v))

			n := normal.Mul(cos).Add(binormal.Mul(sin))
			if l := n.Len(); l > 0 {
				n = n.Mul(1 / l)
			}
			p := center.Add(n.Mul(radius))
			g.push(p, n, mgl32.Vec2{float32(i), float32(j) / float32(radialSegments)})
		}
	}

	stride := uint32(radialSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		a := j - 1
		b := stride + j - 1
		c := stride + j
		d := j
		g.Indices = append(g.Indices, a, b, d, b, c, d)
	}
}

// lineFrame picks a stable normal/binormal pair around dir. The seed axis
// is the one along dir's smallest component. Zero-length dir uses +Y.
func lineFrame(dir mgl32.Vec3) (tangent, normal, binormal mgl32.Vec3) {
	tangent = mgl32.Vec3{0, 1, 0}
	if l := dir.Len(); l > 0 {
		tangent = dir.Mul(1 / l)
	}

	ax := float32(math.Abs(float64(tangent.X())))
	ay := float32(math.Abs(float64(tangent.Y())))
	az := float32(math.Abs(float64(tangent.Z())))

	seed := mgl32.Vec3{0, 0, 1}
	smallest := az
	if ax <= smallest {
		smallest = ax
		seed = mgl32.Vec3{1, 0, 0}
	}
	if ay <= smallest {
		seed = mgl32.Vec3{0, 1, 0}
	}

	side := tangent.Cross(seed).Normalize()
	normal = tangent.Cross(side)
	binormal = tangent.Cross(normal)
	return tangent, normal, binormal
}

// NewConeGeometry builds a cone along +Y centred on the origin: the base
// sits at -height/2 and the tip at +height/2. The base is closed.
func NewConeGeometry(radius, height float32, radialSegments int) *Geometry {
	g := newGeometry()
	g.buildCone(radius, height, radialSegments)
	return g
}

// SetCone regenerates the cone in place, keeping the geometry identity.
func (g *Geometry) SetCone(radius, height float32, radialSegments int) {
	g.reset()
	g.buildCone(radius, height, radialSegments)
	g.Version++
}

func (g *Geometry) buildCone(radius, height float32, radialSegments int) {
	if radialSegments < 1 {
		return
	}
	half := height / 2

	slope := float32(0)
	if height != 0 {
		slope = radius / height
	}

	// torso: ring 0 is the tip, ring 1 the base
	var rows [2][]uint32
	for y := 0; y <= 1; y++ {
		r := float32(y) * radius
		rows[y] = make([]uint32, 0, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := float64(u) * 2 * math.Pi
			sin, cos := float32(math.Sin(theta)), float32(math.Cos(theta))

			p := mgl32.Vec3{r * sin, -float32(y)*height + half, r * cos}
			n := mgl32.Vec3{sin, slope, cos}.Normalize()
			rows[y] = append(rows[y], g.push(p, n, mgl32.Vec2{u, 1 - float32(y)}))
		}
	}
	for x := 0; x < radialSegments; x++ {
		b := rows[1][x]
		c := rows[1][x+1]
		d := rows[0][x+1]
		g.Indices = append(g.Indices, b, c, d)
	}

	// base cap
	down := mgl32.Vec3{0, -1, 0}
	centerStart := uint32(len(g.Positions))
	for x := 1; x <= radialSegments; x++ {
		g.push(mgl32.Vec3{0, -half, 0}, down, mgl32.Vec2{0.5, 0.5})
	}
	ringStart := uint32(len(g.Positions))
	for x := 0; x <= radialSegments; x++ {
		u := float32(x) / float32(radialSegments)
		theta := float64(u) * 2 * math.Pi
		sin, cos := float32(math.Sin(theta)), float32(math.Cos(theta))
		g.push(mgl32.Vec3{radius * sin, -half, radius * cos}, down, mgl32.Vec2{cos*0.5 + 0.5, sin*0.5 + 0.5})
	}
	for x := uint32(0); x < uint32(radialSegments); x++ {
		c := centerStart + x
		i := ringStart + x
		g.Indices = append(g.Indices, i+1, i, c)
	}
}
