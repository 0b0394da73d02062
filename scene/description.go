package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"shade-engine/gfx"
	"shade-engine/light"
	"shade-engine/material"
)

// ErrUnknownKind is returned for material kinds the description names but
// the engine does not have.
var ErrUnknownKind = errors.New("scene: unknown material kind")

// ── Description types ─────────────────────────────────────────────────────────

// Description is the YAML form of a scene.
type Description struct {
	Lights []LightDesc `yaml:"lights"`
	Nodes  []NodeDesc  `yaml:"nodes"`
}

type LightDesc struct {
	Name     string    `yaml:"name"`
	Position []float32 `yaml:"position"`
	Diffuse  []float32 `yaml:"diffuse"`
	Specular []float32 `yaml:"specular"`
	Ambient  []float32 `yaml:"ambient"`
}

type NodeDesc struct {
	Name     string       `yaml:"name"`
	Mesh     string       `yaml:"mesh"` // file path or builtin ("box")
	Skybox   bool         `yaml:"skybox"`
	Hidden   bool         `yaml:"hidden"`
	Position []float32    `yaml:"position"`
	Rotation []float32    `yaml:"rotation"` // euler degrees, applied Y then X then Z
	Scale    []float32    `yaml:"scale"`
	Material MaterialDesc `yaml:"material"`
}

type MaterialDesc struct {
	Kind        string    `yaml:"kind"`
	Color       []float32 `yaml:"color"`
	Texture     string    `yaml:"texture"`
	Environment string    `yaml:"environment"`
	Light       string    `yaml:"light"`
	Shader      []string  `yaml:"shader"` // [vs, fs]

	// Phong family
	Ambient   []float32 `yaml:"ambient"`
	Diffuse   []float32 `yaml:"diffuse"`
	Specular  []float32 `yaml:"specular"`
	Shininess *float32  `yaml:"shininess"`

	// PBR
	Preset    string   `yaml:"preset"`
	Roughness *float32 `yaml:"roughness"`
	Metalness *float32 `yaml:"metalness"`
	Direct    *bool    `yaml:"direct"`
	Indirect  *bool    `yaml:"indirect"`
	NormalMap *bool    `yaml:"normal_map"`
	Occlusion *bool    `yaml:"occlusion_map"`
	Opacity   *bool    `yaml:"opacity_map"`
	Gamma     *bool    `yaml:"gamma_correction"`

	// Volume
	Step      *float32 `yaml:"step"`
	Threshold *float32 `yaml:"threshold"`
}

// LoadDescription reads a YAML scene description.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}
	return ParseDescription(data)
}

// ParseDescription decodes a YAML scene description.
func ParseDescription(data []byte) (*Description, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &d, nil
}

// ── Build ─────────────────────────────────────────────────────────────────────

// Deps are the loaders a description is resolved with.
type Deps struct {
	Resources material.Resources
	Meshes    gfx.MeshLoader
	Log       *zap.Logger
}

// Build resolves d into a scene. A mesh that fails to load leaves its node
// without a mesh (the node then draws nothing); material errors abort.
func Build(d *Description, deps Deps) (*Scene, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	s := New()
	lights := make(map[string]light.ID, len(d.Lights))
	for _, ld := range d.Lights {
		l := light.New()
		l.Position = vec3(ld.Position, l.Position)
		l.Diffuse = vec3(ld.Diffuse, l.Diffuse)
		l.Specular = vec3(ld.Specular, l.Specular)
		l.Ambient = vec3(ld.Ambient, l.Ambient)
		lights[ld.Name] = s.Lights.Add(l)
	}

	wire, err := material.NewWireframe(deps.Resources, material.WithName("wireframe"))
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	s.Wireframe = wire

	for _, nd := range d.Nodes {
		mat, err := buildMaterial(nd, lights, deps.Resources)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}

		var mesh gfx.Mesh
		if nd.Mesh != "" && deps.Meshes != nil {
			mesh, err = deps.Meshes.Mesh(nd.Mesh)
			if err != nil {
				log.Warn("mesh unavailable, node will not draw",
					zap.String("node", nd.Name), zap.String("mesh", nd.Mesh), zap.Error(err))
				mesh = nil
			}
		}

		if nd.Skybox || mat.Kind() == material.Skybox {
			sky := NewSkybox(nd.Name, mesh, mat)
			sky.Hidden = nd.Hidden
			s.Add(sky)
			continue
		}
		n := NewNode(nd.Name, mesh, mat)
		n.Model = transform(nd)
		n.Hidden = nd.Hidden
		s.Add(n)
	}

	log.Info("scene built", zap.Int("entities", len(s.Entities)), zap.Int("lights", s.Lights.Len()))
	return s, nil
}

func buildMaterial(nd NodeDesc, lights map[string]light.ID, res material.Resources) (*material.Material, error) {
	md := nd.Material
	kindName := md.Kind
	if kindName == "" {
		kindName = material.Standard.String()
		if nd.Skybox {
			kindName = material.Skybox.String()
		}
	}
	kind, ok := material.ParseKind(kindName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kindName)
	}

	opts := []material.Option{material.WithName(nd.Name)}
	if len(md.Color) == 4 {
		opts = append(opts, material.WithColor(mgl32.Vec4{md.Color[0], md.Color[1], md.Color[2], md.Color[3]}))
	}
	if md.Light != "" {
		id, ok := lights[md.Light]
		if !ok {
			return nil, fmt.Errorf("unknown light %q", md.Light)
		}
		opts = append(opts, material.WithLight(id))
	}
	if len(md.Shader) == 2 {
		opts = append(opts, material.WithShader(md.Shader[0], md.Shader[1]))
	}

	if kind == material.PBR {
		return buildPBR(md, res, opts)
	}

	switch {
	case md.Texture != "":
		opts = append(opts, material.WithTexturePath(md.Texture))
	case md.Environment != "":
		opts = append(opts, material.WithEnvironmentMap(md.Environment))
	}
	m, err := material.New(kind, res, opts...)
	if err != nil {
		return nil, err
	}

	switch p := m.Params.(type) {
	case *material.PhongParams:
		applyPhong(md, p)
	case *material.MirrorParams:
		applyPhong(md, &p.PhongParams)
	case *material.PhongMirrorParams:
		applyPhong(md, &p.PhongParams)
	case *material.VolumeParams:
		setFloat(&p.Step, md.Step)
		setFloat(&p.Threshold, md.Threshold)
	}
	return m, nil
}

func buildPBR(md MaterialDesc, res material.Resources, base []material.Option) (*material.Material, error) {
	opts := []material.PBROption{material.WithBase(base...)}
	if md.Preset != "" {
		set, err := material.ParseTextureSet(md.Preset)
		if err != nil {
			return nil, err
		}
		opts = append(opts, material.WithPreset(set))
	}
	if md.Environment != "" {
		opts = append(opts, material.WithEnvironment(md.Environment))
	}
	if md.Roughness != nil {
		opts = append(opts, material.WithRoughness(*md.Roughness))
	}
	if md.Metalness != nil {
		opts = append(opts, material.WithMetalness(*md.Metalness))
	}
	toggles := []struct {
		v   *bool
		opt func(bool) material.PBROption
	}{
		{md.Direct, material.WithDirect},
		{md.Indirect, material.WithIndirect},
		{md.NormalMap, material.WithNormalMap},
		{md.Occlusion, material.WithOcclusionMap},
		{md.Opacity, material.WithOpacityMap},
		{md.Gamma, material.WithGammaCorrection},
	}
	for _, t := range toggles {
		if t.v != nil {
			opts = append(opts, t.opt(*t.v))
		}
	}
	return material.NewPBR(res, opts...)
}

func applyPhong(md MaterialDesc, p *material.PhongParams) {
	p.Ambient = vec3(md.Ambient, p.Ambient)
	p.Diffuse = vec3(md.Diffuse, p.Diffuse)
	p.Specular = vec3(md.Specular, p.Specular)
	setFloat(&p.Shininess, md.Shininess)
}

func transform(nd NodeDesc) mgl32.Mat4 {
	pos := vec3(nd.Position, mgl32.Vec3{})
	rot := vec3(nd.Rotation, mgl32.Vec3{})
	scale := vec3(nd.Scale, mgl32.Vec3{1, 1, 1})

	r := mgl32.AnglesToQuat(
		mgl32.DegToRad(rot.Y()), mgl32.DegToRad(rot.X()), mgl32.DegToRad(rot.Z()), mgl32.YXZ,
	).Mat4()
	return mgl32.Translate3D(pos.Elem()).Mul4(r).Mul4(mgl32.Scale3D(scale.Elem()))
}

func vec3(v []float32, def mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func setFloat(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}
