// Package gfxtest provides recording fakes for the gfx collaborators.
package gfxtest

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
	"shade-engine/hdre"
)

// ── Pipeline ──────────────────────────────────────────────────────────────────

// Pipeline is an in-memory pipeline that counts state changes.
type Pipeline struct {
	Current gfx.State
	Applied []gfx.State
}

// NewPipeline starts in gfx.DefaultState.
func NewPipeline() *Pipeline {
	return &Pipeline{Current: gfx.DefaultState}
}

func (p *Pipeline) State() gfx.State { return p.Current }

func (p *Pipeline) Apply(s gfx.State) {
	p.Applied = append(p.Applied, s)
	p.Current = s
}

// Changes reports how many times Apply was called.
func (p *Pipeline) Changes() int { return len(p.Applied) }

// ── Textures ──────────────────────────────────────────────────────────────────

// Texture is a named texture handle.
type Texture struct {
	ID string
}

func (t *Texture) Name() string { return t.ID }

// ── Shader ────────────────────────────────────────────────────────────────────

// Upload is one recorded uniform upload.
type Upload struct {
	Name  string
	Value any
	Unit  int // -1 for non-texture uniforms
}

// Shader records every upload and tracks enable state.
type Shader struct {
	VS, FS   string
	Enabled  bool
	Enables  int
	Disables int
	Uploads  []Upload

	// Misuse counts uploads made while the shader was not enabled.
	Misuse int
}

func NewShader(vs, fs string) *Shader {
	return &Shader{VS: vs, FS: fs}
}

func (s *Shader) Enable() {
	s.Enabled = true
	s.Enables++
}

func (s *Shader) Disable() {
	s.Enabled = false
	s.Disables++
}

func (s *Shader) record(name string, v any, unit int) {
	if !s.Enabled {
		s.Misuse++
	}
	s.Uploads = append(s.Uploads, Upload{Name: name, Value: v, Unit: unit})
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) { s.record(name, m, -1) }
func (s *Shader) SetVec3(name string, v mgl32.Vec3) { s.record(name, v, -1) }
func (s *Shader) SetVec4(name string, v mgl32.Vec4) { s.record(name, v, -1) }
func (s *Shader) SetFloat(name string, f float32)   { s.record(name, f, -1) }
func (s *Shader) SetInt(name string, i int32)       { s.record(name, i, -1) }
func (s *Shader) SetBool(name string, b bool)       { s.record(name, b, -1) }

func (s *Shader) SetTexture(name string, tex gfx.Texture, unit int) {
	s.record(name, tex, unit)
}

// Reset forgets all recorded uploads.
func (s *Shader) Reset() {
	s.Uploads = nil
	s.Misuse = 0
}

// Names lists uploaded uniform names in order.
func (s *Shader) Names() []string {
	out := make([]string, len(s.Uploads))
	for i, u := range s.Uploads {
		out[i] = u.Name
	}
	return out
}

// Has reports whether name was uploaded.
func (s *Shader) Has(name string) bool {
	_, ok := s.Last(name)
	return ok
}

// Last returns the most recent upload for name.
func (s *Shader) Last(name string) (Upload, bool) {
	for i := len(s.Uploads) - 1; i >= 0; i-- {
		if s.Uploads[i].Name == name {
			return s.Uploads[i], true
		}
	}
	return Upload{}, false
}

// ── Mesh ──────────────────────────────────────────────────────────────────────

// Mesh records draw calls and, when Pipeline is set, the pipeline state
// observed at each draw.
type Mesh struct {
	Pipeline *Pipeline
	Draws    []gfx.Primitive
	States   []gfx.State
}

func (m *Mesh) Render(p gfx.Primitive) {
	m.Draws = append(m.Draws, p)
	if m.Pipeline != nil {
		m.States = append(m.States, m.Pipeline.Current)
	}
}

// ── Loaders ───────────────────────────────────────────────────────────────────

// ShaderLoader hands out one *Shader per path pair.
type ShaderLoader struct {
	Programs map[string]*Shader
	Reloads  int
	Fail     error
}

func NewShaderLoader() *ShaderLoader {
	return &ShaderLoader{Programs: make(map[string]*Shader)}
}

func (l *ShaderLoader) Shader(vs, fs string) (gfx.Shader, error) {
	if l.Fail != nil {
		return nil, l.Fail
	}
	key := vs + "|" + fs
	if s, ok := l.Programs[key]; ok {
		return s, nil
	}
	s := NewShader(vs, fs)
	l.Programs[key] = s
	return s, nil
}

// Get returns the recorded program for a pair, or nil.
func (l *ShaderLoader) Get(vs, fs string) *Shader {
	return l.Programs[vs+"|"+fs]
}

func (l *ShaderLoader) ReloadAll() error {
	l.Reloads++
	return nil
}

// MeshLoader hands out one *Mesh per path.
type MeshLoader struct {
	Meshes map[string]*Mesh
	Fail   map[string]error
}

func NewMeshLoader() *MeshLoader {
	return &MeshLoader{Meshes: make(map[string]*Mesh), Fail: make(map[string]error)}
}

func (l *MeshLoader) Mesh(path string) (gfx.Mesh, error) {
	if err := l.Fail[path]; err != nil {
		return nil, err
	}
	if m, ok := l.Meshes[path]; ok {
		return m, nil
	}
	m := &Mesh{}
	l.Meshes[path] = m
	return m, nil
}

// TextureLoader caches fake textures and environments. Paths listed in Fail
// return the mapped error.
type TextureLoader struct {
	Textures     map[string]*Texture
	Environments map[string]*hdre.Environment
	Cubemaps     map[string]*Texture
	Fail         map[string]error

	// Loads counts uncached texture loads per path.
	Loads map[string]int
}

func NewTextureLoader() *TextureLoader {
	return &TextureLoader{
		Textures:     make(map[string]*Texture),
		Environments: make(map[string]*hdre.Environment),
		Cubemaps:     make(map[string]*Texture),
		Fail:         make(map[string]error),
		Loads:        make(map[string]int),
	}
}

func (l *TextureLoader) Texture(path string) (gfx.Texture, error) {
	if err := l.Fail[path]; err != nil {
		return nil, err
	}
	if t, ok := l.Textures[path]; ok {
		return t, nil
	}
	l.Loads[path]++
	t := &Texture{ID: path}
	l.Textures[path] = t
	return t, nil
}

func (l *TextureLoader) Environment(path string) (*hdre.Environment, error) {
	if err := l.Fail[path]; err != nil {
		return nil, err
	}
	if env, ok := l.Environments[path]; ok {
		return env, nil
	}
	env, err := hdre.FromImage(path, Panorama(16, 8))
	if err != nil {
		return nil, err
	}
	l.Environments[path] = env
	return env, nil
}

func (l *TextureLoader) Cubemap(env *hdre.Environment, level int) (gfx.Texture, error) {
	if level < 0 || level >= hdre.Levels {
		return nil, fmt.Errorf("cubemap %q: %w", env.Name(), hdre.ErrLevel)
	}
	key := fmt.Sprintf("%s#%d", env.Name(), level)
	if t, ok := l.Cubemaps[key]; ok {
		return t, nil
	}
	t := &Texture{ID: key}
	l.Cubemaps[key] = t
	return t, nil
}

// Panorama returns a w×h vertical gradient, bright at the top.
func Panorama(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := uint8(255 - y*255/max(h-1, 1))
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: v, G: v, B: 255, A: 255})
		}
	}
	return img
}
