package material

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
	"shade-engine/light"
)

// Fixed auxiliary textures of the volume variant, relative to the data dir.
const (
	NoiseTexturePath    = "textures/blueNoise.png"
	TransferTexturePath = "textures/tf.png"
)

// Resources are the loaders a material is built from.
type Resources struct {
	Shaders   gfx.ShaderLoader
	Textures  gfx.TextureLoader
	ShaderDir string // prefix for shader source paths
	DataDir   string // prefix for texture and environment paths
}

func (r Resources) shader(vs, fs string) (gfx.Shader, error) {
	if r.Shaders == nil {
		return nil, gfx.ErrNoShader
	}
	vsPath, fsPath := filepath.Join(r.ShaderDir, vs), filepath.Join(r.ShaderDir, fs)
	s, err := r.Shaders.Shader(vsPath, fsPath)
	if err != nil {
		return nil, fmt.Errorf("shader %s/%s: %w", vs, fs, err)
	}
	return s, nil
}

func (r Resources) data(path string) string {
	if r.DataDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.DataDir, path)
}

func (r Resources) texture(slot, path string) (gfx.Texture, error) {
	if r.Textures == nil {
		return nil, fmt.Errorf("%s %q: no texture loader", slot, path)
	}
	t, err := r.Textures.Texture(r.data(path))
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", slot, path, err)
	}
	return t, nil
}

func (r Resources) cubemap(slot, path string, level int) (gfx.Texture, error) {
	if r.Textures == nil {
		return nil, fmt.Errorf("%s %q: no texture loader", slot, path)
	}
	env, err := r.Textures.Environment(r.data(path))
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", slot, path, err)
	}
	t, err := r.Textures.Cubemap(env, level)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", slot, path, err)
	}
	return t, nil
}

// options collects the settings shared by every variant.
type options struct {
	name        string
	color       *mgl32.Vec4
	texture     gfx.Texture
	texturePath string
	envPath     string
	light       light.ID
	vs, fs      string
}

// Option configures the shared header of a material.
type Option func(*options)

// WithName sets the material's name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithColor overrides the variant's default color.
func WithColor(c mgl32.Vec4) Option {
	return func(o *options) { o.color = &c }
}

// WithTexture uses an already loaded texture.
func WithTexture(t gfx.Texture) Option {
	return func(o *options) { o.texture = t }
}

// WithTexturePath loads the material texture from path.
func WithTexturePath(path string) Option {
	return func(o *options) { o.texturePath = path }
}

// WithEnvironmentMap loads level 0 of the environment at path as the
// material texture. Used by skybox and mirror variants.
func WithEnvironmentMap(path string) Option {
	return func(o *options) { o.envPath = path }
}

// WithLight references a light of the scene registry.
func WithLight(id light.ID) Option {
	return func(o *options) { o.light = id }
}

// WithShader replaces the variant's shader pair. Paths are relative to
// Resources.ShaderDir.
func WithShader(vs, fs string) Option {
	return func(o *options) { o.vs, o.fs = vs, fs }
}

// build resolves the shared header and attaches params.
func build(res Resources, kind Kind, params Params, opts []Option) (*Material, error) {
	o := options{name: kind.String()}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Material{
		Name:   o.name,
		Light:  o.light,
		Color:  white,
		Params: params,
	}
	if kind == Standard {
		m.Color = red
	}
	if o.color != nil {
		m.Color = *o.color
	}

	switch {
	case o.texture != nil:
		m.Texture = o.texture
	case o.texturePath != "":
		t, err := res.texture("texture", o.texturePath)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", o.name, err)
		}
		m.Texture = t
	case o.envPath != "":
		t, err := res.cubemap("environment", o.envPath, 0)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", o.name, err)
		}
		m.Texture = t
	}

	vs, fs := o.vs, o.fs
	if vs == "" || fs == "" {
		vs, fs = shaderPair(kind, m.Texture != nil)
	}
	s, err := res.shader(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", o.name, err)
	}
	m.Shader = s
	return m, nil
}

// shaderPair returns the default sources of a variant.
func shaderPair(kind Kind, textured bool) (vs, fs string) {
	switch kind {
	case Phong:
		return "phong.vs", "phong.fs"
	case Mirror:
		return "mirror.vs", "mirror.fs"
	case PhongMirror:
		return "phong.vs", "phong_mirror.fs"
	case PBR:
		return "pbr.vs", "pbr.fs"
	case Volume:
		return "basic.vs", "volume.fs"
	case Skybox:
		return "skybox.vs", "skybox.fs"
	case Standard:
		if textured {
			return "basic.vs", "texture.fs"
		}
	}
	return "basic.vs", "flat.fs"
}

// NewStandard builds a flat-color material, red unless WithColor is given.
func NewStandard(res Resources, opts ...Option) (*Material, error) {
	return build(res, Standard, &StandardParams{}, opts)
}

// NewWireframe builds a white line-mode material.
func NewWireframe(res Resources, opts ...Option) (*Material, error) {
	return build(res, Wireframe, &WireframeParams{}, opts)
}

// NewPhong builds a Blinn-Phong material with the default reflectance.
func NewPhong(res Resources, opts ...Option) (*Material, error) {
	p := DefaultPhong()
	return build(res, Phong, &p, opts)
}

// NewMirror builds a reflective material. Pair it with WithEnvironmentMap.
func NewMirror(res Resources, opts ...Option) (*Material, error) {
	return build(res, Mirror, &MirrorParams{PhongParams: DefaultPhong()}, opts)
}

// NewPhongMirror builds a lit reflective material.
func NewPhongMirror(res Resources, opts ...Option) (*Material, error) {
	return build(res, PhongMirror, &PhongMirrorParams{PhongParams: DefaultPhong()}, opts)
}

// NewSkybox builds the environment backdrop material.
func NewSkybox(res Resources, opts ...Option) (*Material, error) {
	return build(res, Skybox, &SkyboxParams{}, opts)
}

// NewVolume builds a ray-marching material. The noise and transfer function
// textures are loaded here so they are resident before the first draw.
func NewVolume(res Resources, opts ...Option) (*Material, error) {
	p := DefaultVolume()
	m, err := build(res, Volume, &p, opts)
	if err != nil {
		return nil, err
	}
	if p.Noise, err = res.texture("noise", NoiseTexturePath); err != nil {
		return nil, fmt.Errorf("material %s: %w", m.Name, err)
	}
	if p.TransferFunction, err = res.texture("transfer function", TransferTexturePath); err != nil {
		return nil, fmt.Errorf("material %s: %w", m.Name, err)
	}
	return m, nil
}

// New builds a material of any kind except PBR with default params.
func New(kind Kind, res Resources, opts ...Option) (*Material, error) {
	switch kind {
	case Standard:
		return NewStandard(res, opts...)
	case Phong:
		return NewPhong(res, opts...)
	case Volume:
		return NewVolume(res, opts...)
	case Skybox:
		return NewSkybox(res, opts...)
	case Mirror:
		return NewMirror(res, opts...)
	case PhongMirror:
		return NewPhongMirror(res, opts...)
	case Wireframe:
		return NewWireframe(res, opts...)
	case PBR:
		return NewPBR(res, WithBase(opts...))
	}
	return nil, fmt.Errorf("material: unknown kind %d", int(kind))
}
