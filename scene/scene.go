package scene

import (
	"shade-engine/light"
	"shade-engine/material"
)

// Scene is an ordered list of entities and the lights their materials
// reference. Entities draw in insertion order; put the skybox first and
// transparent nodes last.
type Scene struct {
	Entities  []Entity
	Lights    *light.Registry
	Wireframe *material.Material // used by the wireframe debug pass
}

func New() *Scene {
	return &Scene{Lights: light.NewRegistry()}
}

// Add appends e and returns it.
func (s *Scene) Add(e Entity) Entity {
	s.Entities = append(s.Entities, e)
	return e
}

// Remove drops the first entity whose node is named name.
func (s *Scene) Remove(name string) bool {
	for i, e := range s.Entities {
		if e.Base().Name == name {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the first node named name.
func (s *Scene) Find(name string) *Node {
	for _, e := range s.Entities {
		if n := e.Base(); n.Name == name {
			return n
		}
	}
	return nil
}

// Context returns the per-frame context for this scene.
func (s *Scene) Context(ctx material.Context) *material.Context {
	ctx.Lights = s.Lights
	return &ctx
}

// Render draws every entity once. With wireframe set, each entity is
// followed by its wireframe overlay.
func (s *Scene) Render(ctx *material.Context, cam material.Camera, wireframe bool) {
	for _, e := range s.Entities {
		e.Render(ctx, cam)
		if wireframe {
			e.RenderWireframe(ctx, cam, s.Wireframe)
		}
	}
}
