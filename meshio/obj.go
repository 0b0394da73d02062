package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type faceVertex struct{ v, vt, vn int }

// LoadOBJ reads a Wavefront .obj file. All objects and groups are merged
// into one mesh; materials are ignored since scenes assign their own.
func LoadOBJ(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	d, err := ReadOBJ(name, f)
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return d, nil
}

// ReadOBJ parses OBJ text from r. Polygons are fan-triangulated and
// identical position/uv/normal triples share one vertex.
func ReadOBJ(name string, r io.Reader) (*Data, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		faces     [][3]faceVertex
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) >= 4 {
				positions = append(positions, parseVec3(fields[1:4]))
			}
		case "vn":
			if len(fields) >= 4 {
				normals = append(normals, parseVec3(fields[1:4]))
			}
		case "vt":
			if len(fields) >= 3 {
				u, _ := strconv.ParseFloat(fields[1], 32)
				v, _ := strconv.ParseFloat(fields[2], 32)
				uvs = append(uvs, mgl32.Vec2{float32(u), float32(v)})
			}
		case "f":
			if len(fields) < 4 {
				continue
			}
			verts := make([]faceVertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				verts = append(verts, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			for i := 1; i+1 < len(verts); i++ {
				faces = append(faces, [3]faceVertex{verts[0], verts[i], verts[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("no geometry")
	}

	d := &Data{Name: name}
	index := make(map[faceVertex]uint32)
	for _, face := range faces {
		for _, fv := range face {
			if i, ok := index[fv]; ok {
				d.Indices = append(d.Indices, i)
				continue
			}
			v := Vertex{Normal: mgl32.Vec3{0, 1, 0}, Color: white}
			if fv.v >= 0 && fv.v < len(positions) {
				v.Position = positions[fv.v]
			}
			if fv.vn >= 0 && fv.vn < len(normals) {
				v.Normal = normals[fv.vn]
			}
			if fv.vt >= 0 && fv.vt < len(uvs) {
				v.UV = uvs[fv.vt]
			}
			i := uint32(len(d.Vertices))
			d.Vertices = append(d.Vertices, v)
			index[fv] = i
			d.Indices = append(d.Indices, i)
		}
	}

	if len(normals) == 0 {
		generateNormals(d.Vertices, d.Indices)
	}
	ComputeTangents(d)
	return d, nil
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn" into 0-based
// indices, -1 where absent. Negative OBJ indices count back from the end.
func parseFaceVertex(tok string, nv, nvt, nvn int) faceVertex {
	idx := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return -1
		case i > 0:
			return i - 1
		case i < 0:
			return n + i
		}
		return -1
	}
	parts := strings.Split(tok, "/")
	fv := faceVertex{v: -1, vt: -1, vn: -1}
	fv.v = idx(parts[0], nv)
	if len(parts) > 1 {
		fv.vt = idx(parts[1], nvt)
	}
	if len(parts) > 2 {
		fv.vn = idx(parts[2], nvn)
	}
	return fv
}

func parseVec3(f []string) mgl32.Vec3 {
	var v mgl32.Vec3
	for i := range v {
		x, _ := strconv.ParseFloat(f[i], 32)
		v[i] = float32(x)
	}
	return v
}
