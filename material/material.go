// Package material binds a shader, its textures and its numeric parameters
// into one renderable unit.
//
// Every material shares the same header (shader, texture, light, color) and
// carries exactly one variant parameter block. SetUniforms and Render
// dispatch on that block, so adding a variant means adding one case to each.
package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
	"shade-engine/light"
)

// Kind names a material variant.
type Kind int

const (
	Standard Kind = iota
	Phong
	PBR
	Volume
	Skybox
	Mirror
	PhongMirror
	Wireframe
)

var kindNames = [...]string{
	Standard:    "standard",
	Phong:       "phong",
	PBR:         "pbr",
	Volume:      "volume",
	Skybox:      "skybox",
	Mirror:      "mirror",
	PhongMirror: "phong_mirror",
	Wireframe:   "wireframe",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds lists every variant in declaration order.
func Kinds() []Kind {
	return []Kind{Standard, Phong, PBR, Volume, Skybox, Mirror, PhongMirror, Wireframe}
}

// ParseKind resolves a name produced by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Camera is what materials read from the viewer's camera.
type Camera interface {
	View() mgl32.Mat4
	Projection() mgl32.Mat4
	ViewProjection() mgl32.Mat4
	Eye() mgl32.Vec3
}

// Context carries the frame-wide collaborators of one render call.
type Context struct {
	Pipeline gfx.Pipeline
	Lights   *light.Registry
	Time     float32 // seconds since start, uploaded as u_time

	// Force runs after the material has derived its own state, so flags it
	// sets hold for the draw whatever the variant.
	Force func(*gfx.State)
}

// Forcing returns a copy of c whose Force also applies fn. A nil c has no
// pipeline to force and stays nil.
func (c *Context) Forcing(fn func(*gfx.State)) *Context {
	if c == nil {
		return nil
	}
	out := *c
	prev := c.Force
	out.Force = func(s *gfx.State) {
		if prev != nil {
			prev(s)
		}
		fn(s)
	}
	return &out
}

// Material is a shader plus the state it is drawn with.
type Material struct {
	Name    string
	Shader  gfx.Shader
	Texture gfx.Texture // optional; skipped when nil
	Light   light.ID    // light.NoLight renders unlit
	Color   mgl32.Vec4

	Params Params
}

// Kind reports the variant selected by Params. A material without params
// behaves as Standard.
func (m *Material) Kind() Kind {
	switch m.Params.(type) {
	case *PhongParams:
		return Phong
	case *PBRParams:
		return PBR
	case *VolumeParams:
		return Volume
	case *SkyboxParams:
		return Skybox
	case *MirrorParams:
		return Mirror
	case *PhongMirrorParams:
		return PhongMirror
	case *WireframeParams:
		return Wireframe
	}
	return Standard
}

// lightFor resolves the material's light in ctx.
func (m *Material) lightFor(ctx *Context) (*light.Light, bool) {
	if ctx == nil {
		return nil, false
	}
	return ctx.Lights.Get(m.Light)
}
