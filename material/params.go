package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
	"shade-engine/hdre"
)

// Params is the variant-specific state of a material. The set of
// implementations is closed to this package.
type Params interface {
	isParams()
}

// StandardParams is the flat-color variant. It has no extra state.
type StandardParams struct{}

// WireframeParams draws the standard variant in line polygon mode.
type WireframeParams struct{}

// PhongParams holds Blinn-Phong reflectance coefficients.
type PhongParams struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32 // exponent, >= 0
}

// MirrorParams reflects the environment bound as the material texture.
type MirrorParams struct {
	PhongParams
}

// PhongMirrorParams blends Phong lighting with an environment reflection.
type PhongMirrorParams struct {
	PhongParams
}

// PBRParams is the metallic-roughness shading model with image-based
// lighting. Levels are pre-filtered copies of Environment, level i matching
// roughness bucket i/4.
type PBRParams struct {
	Roughness float32 // [0,1]
	Metalness float32 // [0,1]

	WithDirect      bool
	WithIndirect    bool
	WithNormalMap   bool
	WithOcclusion   bool
	WithOpacity     bool
	GammaCorrection bool

	Albedo       gfx.Texture
	Normal       gfx.Texture
	MetalnessMap gfx.Texture
	RoughnessMap gfx.Texture
	Occlusion    gfx.Texture
	Opacity      gfx.Texture

	Environment *hdre.Environment
	Levels      [hdre.Levels]gfx.Texture
}

// VolumeParams configures ray marching through a 3D texture.
type VolumeParams struct {
	Jittering bool
	Step      float32 // ray step, > 0
	Threshold float32 // iso cutoff in (0,1)
	ClipX     float32 // [-1,1]
	ClipY     float32
	ClipZ     float32

	Noise            gfx.Texture // jitter noise
	TransferFunction gfx.Texture
}

// SkyboxParams has no state; the model matrix is derived from the eye on
// every draw.
type SkyboxParams struct{}

func (*StandardParams) isParams()    {}
func (*WireframeParams) isParams()   {}
func (*PhongParams) isParams()       {}
func (*MirrorParams) isParams()      {}
func (*PhongMirrorParams) isParams() {}
func (*PBRParams) isParams()         {}
func (*VolumeParams) isParams()      {}
func (*SkyboxParams) isParams()      {}

// DefaultPhong returns the engine's default reflectance.
func DefaultPhong() PhongParams {
	return PhongParams{
		Ambient:   mgl32.Vec3{0.35, 0.36, 0.35},
		Diffuse:   mgl32.Vec3{0.80, 0.80, 0.80},
		Specular:  mgl32.Vec3{0.95, 0.96, 0.95},
		Shininess: 35,
	}
}

// DefaultPBR returns a fully rough metal with every feature but the opacity
// map enabled.
func DefaultPBR() PBRParams {
	return PBRParams{
		Roughness:       1,
		Metalness:       1,
		WithDirect:      true,
		WithIndirect:    true,
		WithNormalMap:   true,
		WithOcclusion:   true,
		GammaCorrection: true,
	}
}

// DefaultVolume returns jittered marching with fine steps and no clipping.
func DefaultVolume() VolumeParams {
	return VolumeParams{
		Jittering: true,
		Step:      0.01,
		Threshold: 0.1,
		ClipX:     1,
		ClipY:     1,
		ClipZ:     1,
	}
}

var (
	white = mgl32.Vec4{1, 1, 1, 1}
	red   = mgl32.Vec4{1, 0, 0, 1}
)
