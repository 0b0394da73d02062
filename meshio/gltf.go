package meshio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads the geometry of a .gltf or .glb file into one mesh. Node
// transforms of the default scene are baked into the vertices; materials and
// textures are ignored.
func LoadGLTF(path string) (*Data, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	d, err := FromGLTF(name, doc)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	return d, nil
}

// FromGLTF converts an opened document.
func FromGLTF(name string, doc *gltf.Document) (*Data, error) {
	d := &Data{Name: name}

	var visit func(idx int, parent mgl32.Mat4) error
	visit = func(idx int, parent mgl32.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return nil
		}
		n := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(n))
		if n.Mesh != nil && *n.Mesh < len(doc.Meshes) {
			if err := appendMesh(d, doc, doc.Meshes[*n.Mesh], world); err != nil {
				return err
			}
		}
		for _, c := range n.Children {
			if err := visit(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	roots := sceneRoots(doc)
	if len(roots) == 0 {
		// No node graph: take every mesh as is.
		for _, m := range doc.Meshes {
			if err := appendMesh(d, doc, m, mgl32.Ident4()); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range roots {
		if err := visit(r, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}

	if len(d.Vertices) == 0 {
		return nil, fmt.Errorf("no geometry")
	}
	ComputeTangents(d)
	return d, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	s := n.ScaleOrDefault()

	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func appendMesh(d *Data, doc *gltf.Document, m *gltf.Mesh, world mgl32.Mat4) error {
	normalMat := world.Mat3().Inv().Transpose()
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		part, err := readPrimitive(doc, prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", m.Name, pi, err)
		}
		for i := range part.Vertices {
			v := &part.Vertices[i]
			v.Position = mgl32.TransformCoordinate(v.Position, world)
			v.Normal = normalMat.Mul3x1(v.Normal).Normalize()
		}
		d.Append(part)
	}
	return nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Data, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	part := &Data{Vertices: make([]Vertex, len(positions))}
	for i, p := range positions {
		v := Vertex{Position: p, Normal: mgl32.Vec3{0, 1, 0}, Color: white}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.UV = uvs[i]
		}
		part.Vertices[i] = v
	}

	if prim.Indices != nil {
		part.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		part.Indices = make([]uint32, len(positions))
		for i := range part.Indices {
			part.Indices[i] = uint32(i)
		}
	}
	if len(normals) == 0 {
		generateNormals(part.Vertices, part.Indices)
	}
	return part, nil
}
