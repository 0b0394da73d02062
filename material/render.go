package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
)

// State returns the pipeline state m draws under, derived from entry. Only
// the flags the variant cares about are changed.
func (m *Material) State(entry gfx.State) gfx.State {
	s := entry
	s.DepthTest = true
	s.CullFace = false
	s.Blend = false
	s.Polygon = gfx.Fill

	switch p := m.Params.(type) {
	case *WireframeParams:
		s.Polygon = gfx.Line
	case *PBRParams:
		s.Blend = p.WithOpacity
	case *VolumeParams:
		s.CullFace = true
		s.Blend = true
	case *SkyboxParams:
		s.DepthTest = false
	}
	return s
}

// Render draws mesh with m. A nil mesh or shader draws nothing and leaves the
// pipeline untouched; otherwise the pipeline is back in its entry state when
// Render returns, panics included.
func (m *Material) Render(ctx *Context, mesh gfx.Mesh, model mgl32.Mat4, cam Camera) {
	if m == nil || mesh == nil || m.Shader == nil {
		return
	}

	if ctx != nil && ctx.Pipeline != nil {
		g := gfx.Acquire(ctx.Pipeline, func(s *gfx.State) {
			*s = m.State(*s)
			if ctx.Force != nil {
				ctx.Force(s)
			}
		})
		defer g.Release()
	}

	m.Shader.Enable()
	defer m.Shader.Disable()

	m.SetUniforms(ctx, cam, model)
	mesh.Render(gfx.Triangles)
}
