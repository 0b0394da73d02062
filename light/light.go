// Package light holds point lights and the scene-level registry materials
// reference them through.
package light

import "github.com/go-gl/mathgl/mgl32"

// Light is one point light's position and radiance terms.
type Light struct {
	Position mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Ambient  mgl32.Vec3
}

// New returns a light with the engine defaults: up and to the right of the
// origin, grey diffuse, white specular.
func New() *Light {
	return &Light{
		Position: mgl32.Vec3{13, 13, 0},
		Diffuse:  mgl32.Vec3{0.7, 0.7, 0.7},
		Specular: mgl32.Vec3{1, 1, 1},
		Ambient:  mgl32.Vec3{0.4, 0.4, 0.4},
	}
}

// ID identifies a light inside a Registry. The zero value is NoLight.
type ID uint32

// NoLight never resolves to a light.
const NoLight ID = 0

// Registry owns the lights of a scene. Materials hold IDs, so one physical
// light can illuminate any number of materials.
type Registry struct {
	next   ID
	lights map[ID]*Light
	order  []ID
}

func NewRegistry() *Registry {
	return &Registry{lights: make(map[ID]*Light)}
}

// Add registers l and returns its ID. Unlike the lookups, Add needs a
// registry from NewRegistry; a nil one panics.
func (r *Registry) Add(l *Light) ID {
	r.next++
	id := r.next
	r.lights[id] = l
	r.order = append(r.order, id)
	return id
}

// Get resolves id. A nil registry resolves nothing.
func (r *Registry) Get(id ID) (*Light, bool) {
	if r == nil || id == NoLight {
		return nil, false
	}
	l, ok := r.lights[id]
	return l, ok
}

// Remove drops id from the registry. Materials still holding it fall back to
// unlit shading.
func (r *Registry) Remove(id ID) {
	if r == nil {
		return
	}
	if _, ok := r.lights[id]; !ok {
		return
	}
	delete(r.lights, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Each visits lights in insertion order.
func (r *Registry) Each(fn func(ID, *Light)) {
	if r == nil {
		return
	}
	for _, id := range r.order {
		fn(id, r.lights[id])
	}
}
