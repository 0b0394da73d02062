// Package opengl is the go-gl implementation of the gfx contracts: global
// pipeline state, shader programs, textures and mesh buffers. Every call must
// happen on the goroutine that owns the GL context.
package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"shade-engine/gfx"
)

// Renderer owns the GL context state that materials toggle. It implements
// gfx.Pipeline and only issues GL calls for fields that actually change.
type Renderer struct {
	log   *zap.Logger
	state gfx.State

	viewportW int32
	viewportH int32
}

// NewRenderer initialises OpenGL and forces the default pipeline state.
// Must be called after the GLFW window context is made current.
func NewRenderer(log *zap.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("opengl ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	r := &Renderer{log: log}
	r.force(gfx.DefaultState)
	return r, nil
}

// ── Pipeline state ────────────────────────────────────────────────────────────

// State returns the state last applied.
func (r *Renderer) State() gfx.State {
	return r.state
}

// Apply switches the GL capabilities that differ from the cached state.
func (r *Renderer) Apply(s gfx.State) {
	if s.DepthTest != r.state.DepthTest {
		capability(gl.DEPTH_TEST, s.DepthTest)
	}
	if s.CullFace != r.state.CullFace {
		capability(gl.CULL_FACE, s.CullFace)
	}
	if s.Blend != r.state.Blend {
		capability(gl.BLEND, s.Blend)
	}
	if s.Polygon != r.state.Polygon {
		polygonMode(s.Polygon)
	}
	r.state = s
}

func (r *Renderer) force(s gfx.State) {
	capability(gl.DEPTH_TEST, s.DepthTest)
	capability(gl.CULL_FACE, s.CullFace)
	capability(gl.BLEND, s.Blend)
	polygonMode(s.Polygon)
	r.state = s
}

func capability(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func polygonMode(m gfx.PolygonMode) {
	if m == gfx.Line {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ── Frame ─────────────────────────────────────────────────────────────────────

// SetViewport resizes the GL viewport.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
}

// Clear fills the color and depth buffers. Depth writes are re-enabled first
// so a frame that ended with depth testing off still clears depth.
func (r *Renderer) Clear(color mgl32.Vec4) {
	gl.DepthMask(true)
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
