package meshio

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ComputeTangents fills per-vertex tangents for normal mapping. Triangles
// with a degenerate UV area are skipped; vertices left without a tangent get
// an arbitrary one perpendicular to the normal.
func ComputeTangents(d *Data) {
	for i := range d.Vertices {
		d.Vertices[i].Tangent = mgl32.Vec3{}
	}

	accum := func(i0, i1, i2 uint32) {
		v0, v1, v2 := d.Vertices[i0], d.Vertices[i1], d.Vertices[i2]
		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		du1, dv1 := v1.UV[0]-v0.UV[0], v1.UV[1]-v0.UV[1]
		du2, dv2 := v2.UV[0]-v0.UV[0], v2.UV[1]-v0.UV[1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1 / denom
		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		for _, i := range [3]uint32{i0, i1, i2} {
			d.Vertices[i].Tangent = d.Vertices[i].Tangent.Add(t)
		}
	}

	if len(d.Indices) > 0 {
		for i := 0; i+2 < len(d.Indices); i += 3 {
			accum(d.Indices[i], d.Indices[i+1], d.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(d.Vertices); i += 3 {
			accum(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	// Gram-Schmidt against the normal.
	for i := range d.Vertices {
		n := d.Vertices[i].Normal
		t := d.Vertices[i].Tangent
		t = t.Sub(n.Mul(n.Dot(t)))
		if t.LenSqr() < 1e-8 {
			if math32.Abs(n.X()) < 0.9 {
				t = mgl32.Vec3{1, 0, 0}.Sub(n.Mul(n.X()))
			} else {
				t = mgl32.Vec3{0, 1, 0}.Sub(n.Mul(n.Y()))
			}
		}
		d.Vertices[i].Tangent = t.Normalize()
	}
}
