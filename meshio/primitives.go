package meshio

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
)

// Box returns an axis-aligned cube of edge size centered on the origin, with
// per-face normals and UVs.
func Box(size float32) *Data {
	h := size / 2
	faces := []struct {
		n, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	corners := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	d := &Data{Name: "box"}
	for _, f := range faces {
		base := uint32(len(d.Vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(2*c[0] - 1)).Add(f.v.Mul(2*c[1] - 1)).Mul(h)
			d.Vertices = append(d.Vertices, Vertex{Position: p, Normal: f.n, UV: c, Color: white})
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	ComputeTangents(d)
	return d
}

// Sphere returns a UV sphere.
func Sphere(radius float32, segments, rings int) *Data {
	segments = max(segments, 3)
	rings = max(rings, 2)

	d := &Data{Name: "sphere"}
	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)

			n := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			d.Vertices = append(d.Vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), float32(ring) / float32(rings)},
				Color:    white,
			})
		}
	}
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			cur := uint32(ring*(segments+1) + seg)
			next := cur + uint32(segments+1)
			d.Indices = append(d.Indices, cur, next, cur+1, cur+1, next, next+1)
		}
	}
	ComputeTangents(d)
	return d
}

// Grid returns the debug floor grid as line pairs on the XZ plane, spanning
// size with the given number of cells per axis. The axis lines are tinted.
func Grid(size float32, divisions int) *Data {
	divisions = max(divisions, 1)
	half := size / 2
	step := size / float32(divisions)

	gray := mgl32.Vec4{0.35, 0.35, 0.35, 1}
	red := mgl32.Vec4{0.8, 0.15, 0.15, 1}
	blue := mgl32.Vec4{0.15, 0.35, 0.9, 1}
	up := mgl32.Vec3{0, 1, 0}

	d := &Data{Name: "grid", Primitive: gfx.Lines}
	line := func(a, b mgl32.Vec3, c mgl32.Vec4) {
		base := uint32(len(d.Vertices))
		d.Vertices = append(d.Vertices,
			Vertex{Position: a, Normal: up, Color: c},
			Vertex{Position: b, Normal: up, Color: c},
		)
		d.Indices = append(d.Indices, base, base+1)
	}

	for i := 0; i <= divisions; i++ {
		o := -half + float32(i)*step
		cz, cx := gray, gray
		if 2*i == divisions {
			cz, cx = blue, red
		}
		line(mgl32.Vec3{o, 0, -half}, mgl32.Vec3{o, 0, half}, cz)
		line(mgl32.Vec3{-half, 0, o}, mgl32.Vec3{half, 0, o}, cx)
	}
	return d
}

// Builtin returns a named primitive, or false if name is not one.
func Builtin(name string) (*Data, bool) {
	switch name {
	case "box", "cube":
		return Box(1), true
	case "sphere":
		return Sphere(0.5, 32, 16), true
	case "grid":
		return Grid(100, 100), true
	}
	return nil, false
}
