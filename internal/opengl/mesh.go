package opengl

import (
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"shade-engine/gfx"
	"shade-engine/meshio"
)

// Mesh holds the GL buffer objects of uploaded geometry.
type Mesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	Name       string

	primitive gfx.Primitive
}

// Render draws the mesh with the requested topology. Meshes built as line
// or point sets always draw with their own topology.
func (m *Mesh) Render(p gfx.Primitive) {
	if m.primitive != gfx.Triangles {
		p = m.primitive
	}
	mode := uint32(gl.TRIANGLES)
	switch p {
	case gfx.Lines:
		mode = gl.LINES
	case gfx.Points:
		mode = gl.POINTS
	}
	gl.BindVertexArray(m.VAO)
	gl.DrawElements(mode, m.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Upload copies d into new GL buffers. Attribute locations: 0 position,
// 1 normal, 2 uv, 3 color, 4 tangent.
func Upload(d *meshio.Data) *Mesh {
	m := &Mesh{Name: d.Name, IndexCount: int32(len(d.Indices)), primitive: d.Primitive}
	verts := d.Interleave()

	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)
	gl.GenBuffers(1, &m.EBO)
	gl.BindVertexArray(m.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	var v meshio.Vertex
	stride := int32(unsafe.Sizeof(v))
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{4, unsafe.Offsetof(v.Color)},
		{3, unsafe.Offsetof(v.Tangent)},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, stride, a.offset)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*4, gl.Ptr(d.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// Release frees the buffers.
func (m *Mesh) Release() {
	gl.DeleteBuffers(1, &m.VBO)
	gl.DeleteBuffers(1, &m.EBO)
	gl.DeleteVertexArrays(1, &m.VAO)
}

// MeshCache implements gfx.MeshLoader over builtin primitives, OBJ and glTF
// files. Relative paths resolve against Dir.
type MeshCache struct {
	Dir string

	log    *zap.Logger
	meshes map[string]*Mesh
}

// NewMeshCache returns an empty cache rooted at dir.
func NewMeshCache(dir string, log *zap.Logger) *MeshCache {
	return &MeshCache{Dir: dir, log: log, meshes: make(map[string]*Mesh)}
}

// Mesh returns the uploaded mesh for a builtin name or file path.
func (c *MeshCache) Mesh(path string) (gfx.Mesh, error) {
	if m, ok := c.meshes[path]; ok {
		return m, nil
	}
	d, err := c.read(path)
	if err != nil {
		return nil, err
	}
	m := Upload(d)
	c.meshes[path] = m
	c.log.Debug("mesh uploaded", zap.String("path", path),
		zap.Int("vertices", len(d.Vertices)), zap.Int("indices", len(d.Indices)))
	return m, nil
}

func (c *MeshCache) read(path string) (*meshio.Data, error) {
	if d, ok := meshio.Builtin(path); ok {
		return d, nil
	}
	full := path
	if c.Dir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(c.Dir, path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return meshio.LoadOBJ(full)
	case ".gltf", ".glb":
		return meshio.LoadGLTF(full)
	}
	return nil, fmt.Errorf("mesh %q: unsupported format", path)
}

// Destroy releases every cached mesh.
func (c *MeshCache) Destroy() {
	for k, m := range c.meshes {
		m.Release()
		delete(c.meshes, k)
	}
}
