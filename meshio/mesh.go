// Package meshio produces CPU-side geometry: builtin primitives and meshes
// read from Wavefront OBJ and glTF files. Upload is left to the backend.
package meshio

import (
	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
)

// Vertex is the interleaved vertex layout every shader in the engine reads.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    mgl32.Vec4
	Tangent  mgl32.Vec3
}

// VertexFloats is the number of float32s in one Vertex.
const VertexFloats = 3 + 3 + 2 + 4 + 3

// Data is indexed geometry plus the topology it is meant to be drawn with.
type Data struct {
	Name      string
	Vertices  []Vertex
	Indices   []uint32
	Primitive gfx.Primitive // Triangles unless the builder says otherwise
}

// Append merges o into d, rebasing o's indices.
func (d *Data) Append(o *Data) {
	base := uint32(len(d.Vertices))
	d.Vertices = append(d.Vertices, o.Vertices...)
	for _, i := range o.Indices {
		d.Indices = append(d.Indices, base+i)
	}
}

// Bounds returns the axis-aligned box around d's positions.
func (d *Data) Bounds() (lo, hi mgl32.Vec3) {
	if len(d.Vertices) == 0 {
		return
	}
	lo, hi = d.Vertices[0].Position, d.Vertices[0].Position
	for _, v := range d.Vertices[1:] {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], v.Position[a])
			hi[a] = max(hi[a], v.Position[a])
		}
	}
	return lo, hi
}

// Interleave flattens the vertices into the upload layout.
func (d *Data) Interleave() []float32 {
	out := make([]float32, 0, len(d.Vertices)*VertexFloats)
	for _, v := range d.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.UV[:]...)
		out = append(out, v.Color[:]...)
		out = append(out, v.Tangent[:]...)
	}
	return out
}

// generateNormals writes area-weighted smooth normals into vertices.
func generateNormals(vertices []Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		n := vertices[i1].Position.Sub(v0).Cross(vertices[i2].Position.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}

var white = mgl32.Vec4{1, 1, 1, 1}
