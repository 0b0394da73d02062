package material

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
	"shade-engine/hdre"
)

// Texture units the shaders hardcode. Units 10 and 12 are unused.
const (
	UnitTexture = 0

	UnitAlbedo      = 0
	UnitNormal      = 1
	UnitMetalness   = 2
	UnitRoughness   = 3
	UnitEnvironment = 4
	UnitLevels      = 5 // first of hdre.Levels consecutive units
	UnitOcclusion   = 11
	UnitOpacity     = 13

	UnitVolume   = 0
	UnitNoise    = 1
	UnitTransfer = 2
)

// levelUniforms are the sampler names of the pre-filtered environment.
var levelUniforms = func() (names [hdre.Levels]string) {
	for i := range names {
		names[i] = fmt.Sprintf("u_texture_prem_%d", i)
	}
	return names
}()

// SetUniforms uploads the material's current state into its shader. The
// shader must already be enabled. Missing textures and lights are skipped.
func (m *Material) SetUniforms(ctx *Context, cam Camera, model mgl32.Mat4) {
	s := m.Shader
	if s == nil {
		return
	}

	switch p := m.Params.(type) {
	case *SkyboxParams:
		m.skyboxUniforms(cam, model)
	case *PhongParams:
		m.baseUniforms(ctx, cam, model)
		m.phongUniforms(ctx, p)
	case *MirrorParams:
		m.baseUniforms(ctx, cam, model)
		m.phongUniforms(ctx, &p.PhongParams)
	case *PhongMirrorParams:
		m.baseUniforms(ctx, cam, model)
		m.phongUniforms(ctx, &p.PhongParams)
	case *PBRParams:
		m.baseUniforms(ctx, cam, model)
		m.pbrUniforms(ctx, p)
	case *VolumeParams:
		m.baseUniforms(ctx, cam, model)
		m.volumeUniforms(ctx, p)
	default: // Standard, Wireframe
		m.baseUniforms(ctx, cam, model)
	}
}

// baseUniforms is the set every non-skybox variant uploads.
func (m *Material) baseUniforms(ctx *Context, cam Camera, model mgl32.Mat4) {
	s := m.Shader
	var t float32
	if ctx != nil {
		t = ctx.Time
	}
	s.SetMat4("u_viewprojection", cam.ViewProjection())
	s.SetVec3("u_camera_position", cam.Eye())
	s.SetMat4("u_model", model)
	s.SetFloat("u_time", t)
	s.SetVec4("u_color", m.Color)

	if m.Texture != nil {
		unit := UnitTexture
		switch m.Params.(type) {
		case *PBRParams:
			unit = UnitEnvironment
		case *VolumeParams:
			unit = UnitVolume
		}
		s.SetTexture("u_texture", m.Texture, unit)
	}
}

func (m *Material) phongUniforms(ctx *Context, p *PhongParams) {
	l, ok := m.lightFor(ctx)
	if !ok {
		return
	}
	s := m.Shader
	s.SetVec3("light_position", l.Position)
	s.SetVec3("diffuse_i", l.Diffuse)
	s.SetVec3("specular_i", l.Specular)
	s.SetVec3("ambient_i", l.Ambient)

	s.SetVec3("diffuse_k", p.Diffuse)
	s.SetVec3("specular_k", p.Specular)
	s.SetVec3("ambient_k", p.Ambient)
	s.SetFloat("alpha", p.Shininess)
}

func (m *Material) pbrUniforms(ctx *Context, p *PBRParams) {
	s := m.Shader

	if l, ok := m.lightFor(ctx); ok {
		s.SetVec3("u_light_position", l.Position)
		s.SetVec3("u_light_color", l.Diffuse)
	}

	s.SetFloat("u_roughness_factor", p.Roughness)
	s.SetFloat("u_metalness_factor", p.Metalness)
	s.SetBool("u_with_direct", p.WithDirect)
	s.SetBool("u_with_indirect", p.WithIndirect)
	s.SetBool("u_with_normal_map", p.WithNormalMap)
	s.SetBool("u_with_occlusion_map", p.WithOcclusion)
	s.SetBool("u_with_opacity_map", p.WithOpacity)
	s.SetBool("u_gamma_correction", p.GammaCorrection)

	bind(s, "u_albedo_texture", p.Albedo, UnitAlbedo)
	bind(s, "u_normal_texture", p.Normal, UnitNormal)
	bind(s, "u_metalness_texture", p.MetalnessMap, UnitMetalness)
	bind(s, "u_roughness_texture", p.RoughnessMap, UnitRoughness)

	// The base environment goes out with the shared header on UnitEnvironment.
	if m.Texture != nil {
		for i, lvl := range p.Levels {
			bind(s, levelUniforms[i], lvl, UnitLevels+i)
		}
	}

	if p.WithOcclusion {
		bind(s, "u_occlusion_texture", p.Occlusion, UnitOcclusion)
	}
	if p.WithOpacity {
		bind(s, "u_opacity_texture", p.Opacity, UnitOpacity)
	}
}

func (m *Material) volumeUniforms(ctx *Context, p *VolumeParams) {
	s := m.Shader
	if l, ok := m.lightFor(ctx); ok {
		s.SetVec3("u_light_position", l.Position)
	}

	s.SetBool("u_jittering", p.Jittering)
	s.SetFloat("u_ray_step", p.Step)
	s.SetFloat("u_threshold", p.Threshold)
	s.SetFloat("u_clip_x", p.ClipX)
	s.SetFloat("u_clip_y", p.ClipY)
	s.SetFloat("u_clip_z", p.ClipZ)

	bind(s, "u_noise_texture", p.Noise, UnitNoise)
	bind(s, "u_tf_texture", p.TransferFunction, UnitTransfer)
}

// skyboxUniforms strips the translation from the view so the box stays
// centered on the eye regardless of the model matrix.
func (m *Material) skyboxUniforms(cam Camera, model mgl32.Mat4) {
	s := m.Shader
	s.SetMat4("u_view", RotationOnly(cam.View()))
	s.SetMat4("u_projection", cam.Projection())
	s.SetMat4("u_model", model)
	bind(s, "u_texture", m.Texture, UnitTexture)
}

// RotationOnly returns v with its translation column cleared.
func RotationOnly(v mgl32.Mat4) mgl32.Mat4 {
	return v.Mat3().Mat4()
}

func bind(s gfx.Shader, name string, tex gfx.Texture, unit int) {
	if tex == nil {
		return
	}
	s.SetTexture(name, tex, unit)
}
