package material

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"shade-engine/gfx"
	"shade-engine/light"
)

// ErrUnknownTextureSet is returned for texture set names with no preset.
var ErrUnknownTextureSet = errors.New("material: unknown texture set")

// ErrPBRHeaderTexture is returned when NewPBR is given a header texture
// option. The PBR header texture is always the environment base.
var ErrPBRHeaderTexture = errors.New("material: pbr header texture comes from the environment")

// DefaultEnvironment is the panorama PBR materials light themselves with
// unless told otherwise.
const DefaultEnvironment = "environments/panorama.png"

// TextureSet selects a preset group of surface maps.
type TextureSet int

const (
	RustedIron TextureSet = iota
	Gold
	Helmet
	Lantern
)

var textureSetNames = [...]string{
	RustedIron: "rusted_iron",
	Gold:       "gold",
	Helmet:     "helmet",
	Lantern:    "lantern",
}

func (t TextureSet) String() string {
	if t < 0 || int(t) >= len(textureSetNames) {
		return "unknown"
	}
	return textureSetNames[t]
}

// ParseTextureSet resolves a preset by name, case-insensitively.
func ParseTextureSet(s string) (TextureSet, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range textureSetNames {
		if name == s {
			return TextureSet(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTextureSet, s)
}

// TextureFiles are the surface map paths of a PBR material, relative to the
// data dir. Empty entries are left unbound.
type TextureFiles struct {
	Albedo    string
	Normal    string
	Metalness string
	Roughness string
	Occlusion string
	Opacity   string
}

// Files returns the map paths of the preset under models/<name>/.
func (t TextureSet) Files() (TextureFiles, error) {
	if t < 0 || int(t) >= len(textureSetNames) {
		return TextureFiles{}, fmt.Errorf("%w: %d", ErrUnknownTextureSet, int(t))
	}
	dir := path.Join("models", t.String())
	return TextureFiles{
		Albedo:    path.Join(dir, "albedo.png"),
		Normal:    path.Join(dir, "normal.png"),
		Metalness: path.Join(dir, "metalness.png"),
		Roughness: path.Join(dir, "roughness.png"),
		Occlusion: path.Join(dir, "ao.png"),
		Opacity:   path.Join(dir, "opacity.png"),
	}, nil
}

type pbrOptions struct {
	base    []Option
	set     *TextureSet
	files   *TextureFiles
	envPath string
	tweaks  []func(*PBRParams)
}

// PBROption configures NewPBR.
type PBROption func(*pbrOptions)

// WithBase applies shared header options (name, color, light, shader).
// WithTexture, WithTexturePath and WithEnvironmentMap are rejected; use
// WithEnvironment instead.
func WithBase(opts ...Option) PBROption {
	return func(o *pbrOptions) { o.base = append(o.base, opts...) }
}

// WithPreset loads the surface maps of a texture set.
func WithPreset(set TextureSet) PBROption {
	return func(o *pbrOptions) { o.set = &set }
}

// WithTextureFiles loads explicit surface maps. It takes precedence over
// WithPreset.
func WithTextureFiles(files TextureFiles) PBROption {
	return func(o *pbrOptions) { o.files = &files }
}

// WithEnvironment selects the environment every pre-filtered level is
// derived from.
func WithEnvironment(path string) PBROption {
	return func(o *pbrOptions) { o.envPath = path }
}

func WithRoughness(v float32) PBROption {
	return tweak(func(p *PBRParams) { p.Roughness = v })
}

func WithMetalness(v float32) PBROption {
	return tweak(func(p *PBRParams) { p.Metalness = v })
}

func WithDirect(on bool) PBROption {
	return tweak(func(p *PBRParams) { p.WithDirect = on })
}

func WithIndirect(on bool) PBROption {
	return tweak(func(p *PBRParams) { p.WithIndirect = on })
}

func WithNormalMap(on bool) PBROption {
	return tweak(func(p *PBRParams) { p.WithNormalMap = on })
}

func WithOcclusionMap(on bool) PBROption {
	return tweak(func(p *PBRParams) { p.WithOcclusion = on })
}

// WithOpacityMap also turns on blending while the material draws.
func WithOpacityMap(on bool) PBROption {
	return tweak(func(p *PBRParams) { p.WithOpacity = on })
}

func WithGammaCorrection(on bool) PBROption {
	return tweak(func(p *PBRParams) { p.GammaCorrection = on })
}

// WithPBRLight references the light used for direct shading.
func WithPBRLight(id light.ID) PBROption {
	return WithBase(WithLight(id))
}

func tweak(fn func(*PBRParams)) PBROption {
	return func(o *pbrOptions) { o.tweaks = append(o.tweaks, fn) }
}

// NewPBR builds a complete physically based material in one step: the
// surface maps, the environment base and all pre-filtered levels are loaded
// before it returns, so the result is ready to draw.
func NewPBR(res Resources, opts ...PBROption) (*Material, error) {
	var o pbrOptions
	for _, opt := range opts {
		opt(&o)
	}

	var hdr options
	for _, opt := range o.base {
		opt(&hdr)
	}
	if hdr.texture != nil || hdr.texturePath != "" || hdr.envPath != "" {
		return nil, ErrPBRHeaderTexture
	}

	p := DefaultPBR()
	for _, fn := range o.tweaks {
		fn(&p)
	}

	m, err := build(res, PBR, &p, o.base)
	if err != nil {
		return nil, err
	}

	files := o.files
	if files == nil && o.set != nil {
		f, err := o.set.Files()
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", m.Name, err)
		}
		files = &f
	}
	if files != nil {
		if err := p.loadMaps(res, *files); err != nil {
			return nil, fmt.Errorf("material %s: %w", m.Name, err)
		}
	}

	envPath := o.envPath
	if envPath == "" {
		envPath = DefaultEnvironment
	}
	if err := p.loadEnvironment(res, envPath); err != nil {
		return nil, fmt.Errorf("material %s: %w", m.Name, err)
	}
	m.Texture = p.Levels[0]
	return m, nil
}

func (p *PBRParams) loadMaps(res Resources, f TextureFiles) error {
	slots := []struct {
		name string
		path string
		dst  *gfx.Texture
	}{
		{"albedo", f.Albedo, &p.Albedo},
		{"normal", f.Normal, &p.Normal},
		{"metalness", f.Metalness, &p.MetalnessMap},
		{"roughness", f.Roughness, &p.RoughnessMap},
		{"occlusion", f.Occlusion, &p.Occlusion},
		{"opacity", f.Opacity, &p.Opacity},
	}
	for _, s := range slots {
		if s.path == "" {
			continue
		}
		t, err := res.texture(s.name, s.path)
		if err != nil {
			return err
		}
		*s.dst = t
	}
	return nil
}

// loadEnvironment resolves one environment source and derives every level
// from it.
func (p *PBRParams) loadEnvironment(res Resources, envPath string) error {
	if res.Textures == nil {
		return fmt.Errorf("environment %q: no texture loader", envPath)
	}
	env, err := res.Textures.Environment(res.data(envPath))
	if err != nil {
		return fmt.Errorf("environment %q: %w", envPath, err)
	}
	p.Environment = env
	for i := range p.Levels {
		t, err := res.Textures.Cubemap(env, i)
		if err != nil {
			return fmt.Errorf("environment %q level %d: %w", envPath, i, err)
		}
		p.Levels[i] = t
	}
	return nil
}

