// Package gfx defines the GPU-facing collaborators the shading core talks to:
// drawable meshes, shader programs, textures, resource loaders and the global
// pipeline state. The OpenGL backend lives in internal/opengl; tests use the
// recording fakes in gfx/gfxtest.
package gfx

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/hdre"
)

// ErrNoShader is returned by loaders when a program cannot be produced.
var ErrNoShader = errors.New("gfx: shader unavailable")

// Primitive selects the topology used when a mesh is drawn.
type Primitive int

const (
	Triangles Primitive = iota // default
	Lines                      // pairs of indices form line segments
	Points
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	}
	return "unknown"
}

// Mesh is an uploaded, drawable vertex set.
type Mesh interface {
	Render(p Primitive)
}

// Texture is an opaque handle to a GPU texture (2D or cube).
type Texture interface {
	// Name is the identifier the texture was loaded from.
	Name() string
}

// Shader is a linked shading program. Uniform setters must only be called
// between Enable and Disable.
type Shader interface {
	Enable()
	Disable()

	SetMat4(name string, m mgl32.Mat4)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetFloat(name string, f float32)
	SetInt(name string, i int32)
	SetBool(name string, b bool)

	// SetTexture binds tex to the given texture unit and points the sampler
	// uniform at that unit.
	SetTexture(name string, tex Texture, unit int)
}

// ShaderLoader resolves vertex/fragment source pairs into programs.
// Implementations deduplicate by path pair.
type ShaderLoader interface {
	Shader(vsPath, fsPath string) (Shader, error)
	ReloadAll() error
}

// MeshLoader resolves a mesh path, or a builtin name such as "box", into an
// uploaded mesh. Implementations cache by path.
type MeshLoader interface {
	Mesh(path string) (Mesh, error)
}

// TextureLoader resolves texture paths and environment sources into handles.
// Every method is cached by its arguments, so repeated calls hand back the
// same handle.
type TextureLoader interface {
	Texture(path string) (Texture, error)
	Environment(path string) (*hdre.Environment, error)
	Cubemap(env *hdre.Environment, level int) (Texture, error)
}
