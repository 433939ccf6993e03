// Package preview draws a wireframe of a scene into an image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/vector"

	"github.com/viscos/viscos/scene"
)

type Options struct {
	Width      int
	Height     int
	Background color.Color
	LineWidth  float32
	// Grid draws a square grid on the XZ plane, GridSize cells per side.
	Grid      bool
	GridSize  int
	GridColor color.Color
}

func DefaultOptions() Options {
	return Options{
		Width:      512,
		Height:     512,
		Background: color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff},
		LineWidth:  1,
		Grid:       true,
		GridSize:   10,
		GridColor:  color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff},
	}
}

type segment struct {
	a, b mgl32.Vec2
}

// Render draws every visible mesh under root as triangle edges seen from
// cam.
func Render(root *scene.Node, cam *OrbitCamera, opts Options) *image.RGBA {
	w, h := max(opts.Width, 1), max(opts.Height, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	vp := cam.ViewProjection(float32(w) / float32(h))
	lw := opts.LineWidth
	if lw <= 0 {
		lw = 1
	}

	if opts.Grid && opts.GridSize > 0 {
		gc := opts.GridColor
		if gc == nil {
			gc = color.Gray{Y: 0x44}
		}
		drawSegments(img, gridSegments(vp, opts.GridSize, w, h), lw, gc)
	}

	if root == nil {
		return img
	}
	root.Traverse(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh == nil || n.Mesh.Geometry == nil || n.Mesh.Material == nil {
			return true
		}
		mvp := vp.Mul4(n.WorldMatrix())
		drawSegments(img, meshSegments(mvp, n.Mesh.Geometry, w, h), lw, materialColor(n.Mesh.Material))
		return true
	})
	return img
}

func materialColor(m *scene.BasicMaterial) color.Color {
	r, g, b := m.Color.RGB()
	a := float32(1)
	if m.Transparent {
		a = max(0, min(m.Opacity, 1))
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

func meshSegments(mvp mgl32.Mat4, geom *scene.Geometry, w, h int) []segment {
	screen := make([]mgl32.Vec2, len(geom.Positions))
	inFront := make([]bool, len(geom.Positions))
	for i, p := range geom.Positions {
		x, y, ok := project(mvp, p, w, h)
		screen[i] = mgl32.Vec2{x, y}
		inFront[i] = ok
	}

	seen := make(map[[2]uint32]bool)
	var segs []segment
	edge := func(i, j uint32) {
		if i > j {
			i, j = j, i
		}
		key := [2]uint32{i, j}
		if seen[key] || !inFront[i] || !inFront[j] {
			return
		}
		seen[key] = true
		if s, ok := clipSegment(screen[i], screen[j], float32(w), float32(h)); ok {
			segs = append(segs, s)
		}
	}
	for t := 0; t+2 < len(geom.Indices); t += 3 {
		i0, i1, i2 := geom.Indices[t], geom.Indices[t+1], geom.Indices[t+2]
		edge(i0, i1)
		edge(i1, i2)
		edge(i2, i0)
	}
	return segs
}

func gridSegments(vp mgl32.Mat4, size, w, h int) []segment {
	half := float32(size) / 2
	var segs []segment
	add := func(a, b mgl32.Vec3) {
		ax, ay, okA := project(vp, a, w, h)
		bx, by, okB := project(vp, b, w, h)
		if !okA || !okB {
			return
		}
		if s, ok := clipSegment(mgl32.Vec2{ax, ay}, mgl32.Vec2{bx, by}, float32(w), float32(h)); ok {
			segs = append(segs, s)
		}
	}
	for i := 0; i <= size; i++ {
		v := -half + float32(i)
		add(mgl32.Vec3{v, 0, -half}, mgl32.Vec3{v, 0, half})
		add(mgl32.Vec3{-half, 0, v}, mgl32.Vec3{half, 0, v})
	}
	return segs
}

// clipSegment clips a to b against [0,w]x[0,h] (Liang-Barsky).
func clipSegment(a, b mgl32.Vec2, w, h float32) (segment, bool) {
	t0, t1 := float32(0), float32(1)
	d := b.Sub(a)
	p := [4]float32{-d.X(), d.X(), -d.Y(), d.Y()}
	q := [4]float32{a.X(), w - a.X(), a.Y(), h - a.Y()}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return segment{}, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return segment{}, false
		}
	}
	return segment{a: a.Add(d.Mul(t0)), b: a.Add(d.Mul(t1))}, true
}

// drawSegments fills one quad per segment. Every quad is wound the same
// way so overlapping coverage saturates instead of cancelling.
func drawSegments(img *image.RGBA, segs []segment, width float32, c color.Color) {
	if len(segs) == 0 {
		return
	}
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	hw := width / 2
	for _, s := range segs {
		d := s.b.Sub(s.a)
		if d.Len() < 1e-6 {
			d = mgl32.Vec2{1, 0}
		}
		d = d.Normalize()
		n := mgl32.Vec2{-d.Y(), d.X()}.Mul(hw)
		// Extend the ends so joints between segments close up.
		a, e := s.a.Sub(d.Mul(hw)), s.b.Add(d.Mul(hw))

		r.MoveTo(a.X()+n.X(), a.Y()+n.Y())
		r.LineTo(e.X()+n.X(), e.Y()+n.Y())
		r.LineTo(e.X()-n.X(), e.Y()-n.Y())
		r.LineTo(a.X()-n.X(), a.Y()-n.Y())
		r.ClosePath()
	}
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
