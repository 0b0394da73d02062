package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
	"shade-engine/material"
)

// Skybox is a node that follows the eye and never takes part in depth
// testing, so it always reads as infinitely far away.
type Skybox struct {
	Node
}

// NewSkybox returns a skybox drawing mesh with mat.
func NewSkybox(name string, mesh gfx.Mesh, mat *material.Material) *Skybox {
	return &Skybox{Node: *NewNode(name, mesh, mat)}
}

func noDepth(st *gfx.State) { st.DepthTest = false }

// Render re-centers the box on the eye and draws it with depth testing off.
// The model is rebuilt from scratch each call, so repeated calls with one
// camera produce the same matrix.
func (s *Skybox) Render(ctx *material.Context, cam material.Camera) {
	s.Model = mgl32.Translate3D(cam.Eye().Elem())
	if s.Hidden || s.Mesh == nil || s.Material == nil {
		return
	}
	s.Material.Render(ctx.Forcing(noDepth), s.Mesh, s.Model, cam)
}
