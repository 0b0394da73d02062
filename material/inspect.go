package material

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// ParamKind is the widget shape a Param wants.
type ParamKind int

const (
	ColorParam ParamKind = iota // *mgl32.Vec4 or *mgl32.Vec3
	Vec3Param                   // *mgl32.Vec3
	FloatParam                  // *float32
	BoolParam                   // *bool
)

// Param exposes one editable field to a control surface. Ptr points at the
// live field, so an edit is seen by the next SetUniforms.
type Param struct {
	Label    string
	Kind     ParamKind
	Ptr      any
	Min, Max float32 // slider range, FloatParam only
}

// Inspect lists the editable parameters of m.
func (m *Material) Inspect() []Param {
	out := []Param{{Label: "Color", Kind: ColorParam, Ptr: &m.Color}}

	switch p := m.Params.(type) {
	case *PhongParams:
		out = append(out, phongParams(p)...)
	case *MirrorParams:
		out = append(out, phongParams(&p.PhongParams)...)
	case *PhongMirrorParams:
		out = append(out, phongParams(&p.PhongParams)...)
	case *PBRParams:
		out = append(out,
			Param{Label: "Roughness", Kind: FloatParam, Ptr: &p.Roughness, Min: 0, Max: 1},
			Param{Label: "Metalness", Kind: FloatParam, Ptr: &p.Metalness, Min: 0, Max: 1},
			Param{Label: "Direct light", Kind: BoolParam, Ptr: &p.WithDirect},
			Param{Label: "Indirect light", Kind: BoolParam, Ptr: &p.WithIndirect},
			Param{Label: "Normal map", Kind: BoolParam, Ptr: &p.WithNormalMap},
			Param{Label: "Occlusion map", Kind: BoolParam, Ptr: &p.WithOcclusion},
			Param{Label: "Opacity map", Kind: BoolParam, Ptr: &p.WithOpacity},
			Param{Label: "Gamma correction", Kind: BoolParam, Ptr: &p.GammaCorrection},
		)
	case *VolumeParams:
		out = append(out,
			Param{Label: "Jittering", Kind: BoolParam, Ptr: &p.Jittering},
			Param{Label: "Ray step", Kind: FloatParam, Ptr: &p.Step, Min: 0.001, Max: 0.1},
			Param{Label: "Threshold", Kind: FloatParam, Ptr: &p.Threshold, Min: 0.01, Max: 0.99},
			Param{Label: "Clip X", Kind: FloatParam, Ptr: &p.ClipX, Min: -1, Max: 1},
			Param{Label: "Clip Y", Kind: FloatParam, Ptr: &p.ClipY, Min: -1, Max: 1},
			Param{Label: "Clip Z", Kind: FloatParam, Ptr: &p.ClipZ, Min: -1, Max: 1},
		)
	}
	return out
}

func phongParams(p *PhongParams) []Param {
	return []Param{
		{Label: "Ambient", Kind: Vec3Param, Ptr: &p.Ambient},
		{Label: "Diffuse", Kind: Vec3Param, Ptr: &p.Diffuse},
		{Label: "Specular", Kind: Vec3Param, Ptr: &p.Specular},
		{Label: "Shininess", Kind: FloatParam, Ptr: &p.Shininess, Min: 0, Max: 256},
	}
}

// Set assigns v to the field behind p, clamping floats to the slider range.
func (p Param) Set(v any) error {
	switch ptr := p.Ptr.(type) {
	case *float32:
		f, ok := v.(float32)
		if !ok {
			return fmt.Errorf("param %s: want float32, got %T", p.Label, v)
		}
		if p.Max > p.Min {
			f = mgl32.Clamp(f, p.Min, p.Max)
		}
		*ptr = f
	case *bool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("param %s: want bool, got %T", p.Label, v)
		}
		*ptr = b
	case *mgl32.Vec3:
		c, ok := v.(mgl32.Vec3)
		if !ok {
			return fmt.Errorf("param %s: want Vec3, got %T", p.Label, v)
		}
		*ptr = c
	case *mgl32.Vec4:
		c, ok := v.(mgl32.Vec4)
		if !ok {
			return fmt.Errorf("param %s: want Vec4, got %T", p.Label, v)
		}
		*ptr = c
	default:
		return fmt.Errorf("param %s: unsupported field %T", p.Label, p.Ptr)
	}
	return nil
}

// Clone returns a copy of m named name. Shader and texture handles are
// shared; the variant params are copied so edits do not leak between the two.
func (m *Material) Clone(name string) (*Material, error) {
	c := *m
	c.Name = name
	if m.Params == nil {
		return &c, nil
	}
	params := zeroParams(m.Kind())
	if err := copier.Copy(params, m.Params); err != nil {
		return nil, fmt.Errorf("clone material %s: %w", m.Name, err)
	}
	c.Params = params
	return &c, nil
}

func zeroParams(k Kind) Params {
	switch k {
	case Phong:
		return &PhongParams{}
	case PBR:
		return &PBRParams{}
	case Volume:
		return &VolumeParams{}
	case Skybox:
		return &SkyboxParams{}
	case Mirror:
		return &MirrorParams{}
	case PhongMirror:
		return &PhongMirrorParams{}
	case Wireframe:
		return &WireframeParams{}
	}
	return &StandardParams{}
}
