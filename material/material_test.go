package material

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shade-engine/camera"
	"shade-engine/gfx"
	"shade-engine/gfx/gfxtest"
	"shade-engine/hdre"
	"shade-engine/light"
)

type fixture struct {
	res      Resources
	shaders  *gfxtest.ShaderLoader
	textures *gfxtest.TextureLoader
	pipeline *gfxtest.Pipeline
	lights   *light.Registry
	ctx      *Context
	cam      *camera.Camera
}

func newFixture() *fixture {
	f := &fixture{
		shaders:  gfxtest.NewShaderLoader(),
		textures: gfxtest.NewTextureLoader(),
		pipeline: gfxtest.NewPipeline(),
		lights:   light.NewRegistry(),
		cam:      camera.New(),
	}
	f.res = Resources{Shaders: f.shaders, Textures: f.textures, ShaderDir: "shaders", DataDir: "data"}
	f.ctx = &Context{Pipeline: f.pipeline, Lights: f.lights, Time: 2.5}
	f.cam.LookAt(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return f
}

func (f *fixture) build(t *testing.T, kind Kind, opts ...Option) *Material {
	t.Helper()
	m, err := New(kind, f.res, opts...)
	require.NoError(t, err, "build %s", kind)
	return m
}

func shaderOf(t *testing.T, m *Material) *gfxtest.Shader {
	t.Helper()
	s, ok := m.Shader.(*gfxtest.Shader)
	require.True(t, ok)
	return s
}

var lightingBlock = []string{
	"light_position", "diffuse_i", "specular_i", "ambient_i",
	"diffuse_k", "specular_k", "ambient_k", "alpha",
}

func TestKindStrings(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("toon")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestKindFollowsParams(t *testing.T) {
	f := newFixture()
	for _, k := range Kinds() {
		assert.Equal(t, k, f.build(t, k).Kind())
	}
	assert.Equal(t, Standard, (&Material{}).Kind())
}

func TestDefaultShaderPairs(t *testing.T) {
	f := newFixture()
	cases := []struct {
		kind   Kind
		vs, fs string
	}{
		{Standard, "basic.vs", "flat.fs"},
		{Phong, "phong.vs", "phong.fs"},
		{PBR, "pbr.vs", "pbr.fs"},
		{Volume, "basic.vs", "volume.fs"},
		{Skybox, "skybox.vs", "skybox.fs"},
		{Mirror, "mirror.vs", "mirror.fs"},
		{PhongMirror, "phong.vs", "phong_mirror.fs"},
		{Wireframe, "basic.vs", "flat.fs"},
	}
	for _, c := range cases {
		s := shaderOf(t, f.build(t, c.kind))
		assert.Equal(t, "shaders/"+c.vs, s.VS, c.kind.String())
		assert.Equal(t, "shaders/"+c.fs, s.FS, c.kind.String())
	}

	textured := shaderOf(t, f.build(t, Standard, WithTexturePath("textures/wood.png")))
	assert.Equal(t, "shaders/texture.fs", textured.FS)

	custom := shaderOf(t, f.build(t, Phong, WithShader("x.vs", "y.fs")))
	assert.Equal(t, "shaders/x.vs", custom.VS)
}

func TestShaderDeduplicatedByPath(t *testing.T) {
	f := newFixture()
	a := f.build(t, Standard)
	b := f.build(t, Wireframe)
	assert.Same(t, a.Shader, b.Shader)
}

func TestDefaultColors(t *testing.T) {
	f := newFixture()
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, f.build(t, Standard).Color)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, f.build(t, Wireframe).Color)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, f.build(t, Phong).Color)

	c := mgl32.Vec4{0.2, 0.4, 0.6, 0.8}
	assert.Equal(t, c, f.build(t, Standard, WithColor(c)).Color)
}

func TestRenderMissingMeshOrShaderIsNoop(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			f := newFixture()
			f.pipeline.Current = gfx.State{CullFace: true, Blend: true, Polygon: gfx.Fill}
			entry := f.pipeline.Current

			m := f.build(t, k)
			s := shaderOf(t, m)
			m.Render(f.ctx, nil, mgl32.Ident4(), f.cam)

			mesh := &gfxtest.Mesh{}
			m.Shader = nil
			m.Render(f.ctx, mesh, mgl32.Ident4(), f.cam)

			assert.Zero(t, f.pipeline.Changes())
			assert.Equal(t, entry, f.pipeline.State())
			assert.Empty(t, mesh.Draws)
			assert.Zero(t, s.Enables)
			assert.Empty(t, s.Uploads)
		})
	}
}

func TestRenderRestoresPipelineState(t *testing.T) {
	entries := []gfx.State{
		gfx.DefaultState,
		{},
		{DepthTest: false, CullFace: true, Blend: true, Polygon: gfx.Line},
	}
	for _, k := range Kinds() {
		for _, entry := range entries {
			f := newFixture()
			f.pipeline.Current = entry
			m := f.build(t, k)
			mesh := &gfxtest.Mesh{Pipeline: f.pipeline}

			m.Render(f.ctx, mesh, mgl32.Ident4(), f.cam)
			m.Render(f.ctx, mesh, mgl32.Ident4(), f.cam)

			assert.Equal(t, entry, f.pipeline.State(), "%s from %+v", k, entry)
			assert.Len(t, mesh.Draws, 2)
		}
	}
}

func TestRenderStateDuringDraw(t *testing.T) {
	want := map[Kind]gfx.State{
		Standard:    {DepthTest: true},
		Phong:       {DepthTest: true},
		Mirror:      {DepthTest: true},
		PhongMirror: {DepthTest: true},
		PBR:         {DepthTest: true},
		Wireframe:   {DepthTest: true, Polygon: gfx.Line},
		Volume:      {DepthTest: true, CullFace: true, Blend: true},
		Skybox:      {},
	}
	for k, s := range want {
		f := newFixture()
		mesh := &gfxtest.Mesh{Pipeline: f.pipeline}
		f.build(t, k).Render(f.ctx, mesh, mgl32.Ident4(), f.cam)

		require.Len(t, mesh.States, 1, k.String())
		assert.Equal(t, s, mesh.States[0], k.String())
		assert.Equal(t, []gfx.Primitive{gfx.Triangles}, mesh.Draws)
	}
}

func TestRenderEnablesAndDisablesShader(t *testing.T) {
	for _, k := range Kinds() {
		f := newFixture()
		m := f.build(t, k)
		s := shaderOf(t, m)
		m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)

		assert.Equal(t, 1, s.Enables, k.String())
		assert.Equal(t, 1, s.Disables, k.String())
		assert.False(t, s.Enabled, k.String())
		assert.Zero(t, s.Misuse, "%s uploaded uniforms while disabled", k)
	}
}

type panicMesh struct{}

func (panicMesh) Render(gfx.Primitive) { panic("lost context") }

func TestRenderRestoresStateOnPanic(t *testing.T) {
	f := newFixture()
	m := f.build(t, Wireframe)
	entry := f.pipeline.State()

	assert.Panics(t, func() { m.Render(f.ctx, panicMesh{}, mgl32.Ident4(), f.cam) })
	assert.Equal(t, entry, f.pipeline.State())
	assert.False(t, shaderOf(t, m).Enabled)
}

func TestRenderAppliesForcedFlagsLast(t *testing.T) {
	f := newFixture()
	m := f.build(t, Phong)
	mesh := &gfxtest.Mesh{Pipeline: f.pipeline}
	ctx := f.ctx.Forcing(func(s *gfx.State) { s.DepthTest = false })
	ctx = ctx.Forcing(func(s *gfx.State) { s.Polygon = gfx.Line })

	m.Render(ctx, mesh, mgl32.Ident4(), f.cam)

	require.Len(t, mesh.States, 1)
	assert.False(t, mesh.States[0].DepthTest)
	assert.Equal(t, gfx.Line, mesh.States[0].Polygon)
	assert.Equal(t, gfx.DefaultState, f.pipeline.State())
	assert.Nil(t, f.ctx.Force)

	var none *Context
	assert.Nil(t, none.Forcing(func(*gfx.State) {}))
}

func TestRenderWithoutPipeline(t *testing.T) {
	f := newFixture()
	m := f.build(t, Standard)
	mesh := &gfxtest.Mesh{}
	m.Render(&Context{}, mesh, mgl32.Ident4(), f.cam)
	m.Render(nil, mesh, mgl32.Ident4(), f.cam)
	assert.Len(t, mesh.Draws, 2)
}

func TestStandardUniforms(t *testing.T) {
	f := newFixture()
	m := f.build(t, Standard)
	s := shaderOf(t, m)
	model := mgl32.Translate3D(1, 2, 3)

	m.Render(f.ctx, &gfxtest.Mesh{}, model, f.cam)

	assert.Equal(t, []string{"u_viewprojection", "u_camera_position", "u_model", "u_time", "u_color"}, s.Names())
	u, _ := s.Last("u_viewprojection")
	assert.Equal(t, f.cam.ViewProjection(), u.Value)
	u, _ = s.Last("u_camera_position")
	assert.Equal(t, f.cam.Eye(), u.Value)
	u, _ = s.Last("u_model")
	assert.Equal(t, model, u.Value)
	u, _ = s.Last("u_time")
	assert.Equal(t, float32(2.5), u.Value)
}

func TestTextureBoundOnlyWhenPresent(t *testing.T) {
	f := newFixture()
	tex := &gfxtest.Texture{ID: "wood"}
	for _, k := range []Kind{Standard, Wireframe, Phong, Mirror, PhongMirror, Skybox} {
		m := f.build(t, k)
		s := shaderOf(t, m)
		s.Reset()

		s.Enable()
		m.SetUniforms(f.ctx, f.cam, mgl32.Ident4())
		assert.False(t, s.Has("u_texture"), k.String())

		s.Reset()
		m.Texture = tex
		m.SetUniforms(f.ctx, f.cam, mgl32.Ident4())
		u, ok := s.Last("u_texture")
		require.True(t, ok, k.String())
		assert.Equal(t, UnitTexture, u.Unit)
		assert.Same(t, tex, u.Value)
		s.Disable()
	}
}

func TestPhongFamilyWithoutLight(t *testing.T) {
	for _, k := range []Kind{Phong, Mirror, PhongMirror} {
		f := newFixture()
		m := f.build(t, k)
		s := shaderOf(t, m)
		m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)

		for _, name := range lightingBlock {
			assert.False(t, s.Has(name), "%s uploaded %s without a light", k, name)
		}
		for _, name := range []string{"u_viewprojection", "u_camera_position", "u_model", "u_color"} {
			assert.True(t, s.Has(name), "%s missing %s", k, name)
		}
	}
}

func TestPhongStaleLightIDIsUnlit(t *testing.T) {
	f := newFixture()
	id := f.lights.Add(light.New())
	m := f.build(t, Phong, WithLight(id))
	f.lights.Remove(id)

	s := shaderOf(t, m)
	m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)
	assert.False(t, s.Has("light_position"))
}

func TestPhongWithLight(t *testing.T) {
	f := newFixture()
	l := light.New()
	id := f.lights.Add(l)
	m := f.build(t, Phong, WithLight(id))
	s := shaderOf(t, m)

	m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)

	for _, name := range lightingBlock {
		assert.True(t, s.Has(name), name)
	}
	u, _ := s.Last("light_position")
	assert.Equal(t, l.Position, u.Value)
	u, _ = s.Last("ambient_i")
	assert.Equal(t, l.Ambient, u.Value)
	u, _ = s.Last("diffuse_k")
	assert.Equal(t, mgl32.Vec3{0.8, 0.8, 0.8}, u.Value)
	u, _ = s.Last("alpha")
	assert.Equal(t, float32(35), u.Value)
}

func TestMaterialsShareOneLight(t *testing.T) {
	f := newFixture()
	l := light.New()
	id := f.lights.Add(l)
	a := f.build(t, Phong, WithLight(id))
	b := f.build(t, PhongMirror, WithLight(id))

	l.Position = mgl32.Vec3{-1, 7, 2}
	for _, m := range []*Material{a, b} {
		s := shaderOf(t, m)
		s.Reset()
		m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)
		u, ok := s.Last("light_position")
		require.True(t, ok)
		assert.Equal(t, l.Position, u.Value)
	}
}

func TestColorRoundTrip(t *testing.T) {
	f := newFixture()
	m := f.build(t, Standard)
	c := mgl32.Vec4{1.7, -0.25, 0.123456789, 3}
	m.Color = c
	assert.Equal(t, c, m.Color)

	s := shaderOf(t, m)
	m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)
	u, _ := s.Last("u_color")
	assert.Equal(t, c, u.Value)
}

func TestPBRLevelsShareOneSource(t *testing.T) {
	f := newFixture()
	a, err := NewPBR(f.res, WithPreset(Gold))
	require.NoError(t, err)
	b, err := NewPBR(f.res, WithPreset(RustedIron))
	require.NoError(t, err)

	pa, pb := a.Params.(*PBRParams), b.Params.(*PBRParams)
	assert.Same(t, pa.Environment, pb.Environment)
	for i := range pa.Levels {
		assert.Same(t, pa.Levels[i], pb.Levels[i], "level %d", i)
	}
	assert.Len(t, f.textures.Environments, 1)
}

func TestPBRLanternEndToEnd(t *testing.T) {
	f := newFixture()
	m, err := NewPBR(f.res, WithPreset(Lantern))
	require.NoError(t, err)
	p := m.Params.(*PBRParams)

	slots := map[string]gfx.Texture{
		"albedo":      p.Albedo,
		"normal":      p.Normal,
		"metalness":   p.MetalnessMap,
		"roughness":   p.RoughnessMap,
		"occlusion":   p.Occlusion,
		"opacity":     p.Opacity,
		"environment": m.Texture,
	}
	for name, tex := range slots {
		assert.NotNil(t, tex, name)
	}
	for name, tex := range slots {
		if name != "environment" {
			assert.Contains(t, tex.Name(), "models/lantern/", name)
		}
	}

	require.NotNil(t, p.Environment)
	assert.Equal(t, "data/"+DefaultEnvironment, p.Environment.Name())
	for i, lvl := range p.Levels {
		require.NotNil(t, lvl, "level %d", i)
		assert.True(t, strings.HasPrefix(lvl.Name(), p.Environment.Name()+"#"), lvl.Name())
	}
	assert.Same(t, p.Levels[0], m.Texture)

	mesh := &gfxtest.Mesh{Pipeline: f.pipeline}
	entry := f.pipeline.State()
	m.Render(f.ctx, mesh, mgl32.Ident4(), f.cam)

	assert.Equal(t, []gfx.Primitive{gfx.Triangles}, mesh.Draws)
	require.Len(t, mesh.States, 1)
	assert.True(t, mesh.States[0].DepthTest)
	assert.False(t, mesh.States[0].Blend)
	for _, s := range f.pipeline.Applied {
		assert.True(t, s.DepthTest)
		assert.False(t, s.Blend)
	}
	assert.Equal(t, entry, f.pipeline.State())
}

func TestPBRTextureUnits(t *testing.T) {
	f := newFixture()
	id := f.lights.Add(light.New())
	m, err := NewPBR(f.res, WithPreset(Helmet), WithPBRLight(id))
	require.NoError(t, err)
	s := shaderOf(t, m)

	m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)

	units := map[string]int{
		"u_albedo_texture":    0,
		"u_normal_texture":    1,
		"u_metalness_texture": 2,
		"u_roughness_texture": 3,
		"u_texture":           4,
		"u_texture_prem_0":    5,
		"u_texture_prem_1":    6,
		"u_texture_prem_2":    7,
		"u_texture_prem_3":    8,
		"u_texture_prem_4":    9,
		"u_occlusion_texture": 11,
	}
	for name, unit := range units {
		u, ok := s.Last(name)
		require.True(t, ok, name)
		assert.Equal(t, unit, u.Unit, name)
	}
	assert.False(t, s.Has("u_opacity_texture"), "opacity map is off by default")
	assert.True(t, s.Has("u_light_position"))
	assert.True(t, s.Has("u_light_color"))

	for _, u := range s.Uploads {
		assert.NotEqual(t, 10, u.Unit)
		assert.NotEqual(t, 12, u.Unit)
	}
}

func TestPBRFlagsGateMaps(t *testing.T) {
	f := newFixture()
	m, err := NewPBR(f.res, WithPreset(Lantern), WithOcclusionMap(false), WithOpacityMap(true), WithRoughness(0.25))
	require.NoError(t, err)
	s := shaderOf(t, m)
	mesh := &gfxtest.Mesh{Pipeline: f.pipeline}

	m.Render(f.ctx, mesh, mgl32.Ident4(), f.cam)

	assert.False(t, s.Has("u_occlusion_texture"))
	u, ok := s.Last("u_opacity_texture")
	require.True(t, ok)
	assert.Equal(t, UnitOpacity, u.Unit)
	u, _ = s.Last("u_roughness_factor")
	assert.Equal(t, float32(0.25), u.Value)
	assert.True(t, mesh.States[0].Blend)
	assert.False(t, s.Has("u_light_position"))
	assert.Equal(t, gfx.DefaultState, f.pipeline.State())
}

func TestPBRLevelsNeedEnvironmentBase(t *testing.T) {
	f := newFixture()
	m, err := NewPBR(f.res)
	require.NoError(t, err)
	m.Texture = nil
	s := shaderOf(t, m)

	s.Enable()
	m.SetUniforms(f.ctx, f.cam, mgl32.Ident4())
	for i := 0; i < hdre.Levels; i++ {
		assert.False(t, s.Has(levelUniforms[i]))
	}
	assert.False(t, s.Has("u_albedo_texture"), "no preset, no surface maps")
	assert.True(t, s.Has("u_with_direct"))
}

func TestPBRLoadErrorsNameTheSlot(t *testing.T) {
	f := newFixture()
	boom := errors.New("disk on fire")
	f.textures.Fail["data/models/gold/normal.png"] = boom

	_, err := NewPBR(f.res, WithPreset(Gold), WithBase(WithName("coin")))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "normal")
	assert.Contains(t, err.Error(), "coin")

	f.textures.Fail["data/elsewhere.hdre"] = boom
	_, err = NewPBR(f.res, WithEnvironment("elsewhere.hdre"))
	assert.ErrorIs(t, err, boom)

	_, err = NewPBR(f.res, WithPreset(TextureSet(9)))
	assert.ErrorIs(t, err, ErrUnknownTextureSet)
}

func TestPBRRejectsHeaderTexture(t *testing.T) {
	f := newFixture()
	for _, opt := range []Option{
		WithTexture(&gfxtest.Texture{ID: "albedo"}),
		WithTexturePath("textures/albedo.png"),
		WithEnvironmentMap("environments/panorama.hdre"),
	} {
		_, err := NewPBR(f.res, WithBase(WithName("helmet"), opt))
		assert.ErrorIs(t, err, ErrPBRHeaderTexture)
	}
	assert.Empty(t, f.textures.Loads)
}

func TestParseTextureSet(t *testing.T) {
	set, err := ParseTextureSet(" Lantern ")
	require.NoError(t, err)
	assert.Equal(t, Lantern, set)

	_, err = ParseTextureSet("marble")
	assert.ErrorIs(t, err, ErrUnknownTextureSet)
}

func TestVolumeLoadsAuxTexturesAtBuild(t *testing.T) {
	f := newFixture()
	m := f.build(t, Volume, WithTexturePath("volumes/foot.png"))
	p := m.Params.(*VolumeParams)
	require.NotNil(t, p.Noise)
	require.NotNil(t, p.TransferFunction)
	assert.Equal(t, 1, f.textures.Loads["data/"+NoiseTexturePath])

	s := shaderOf(t, m)
	for i := 0; i < 3; i++ {
		m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)
	}
	assert.Equal(t, 1, f.textures.Loads["data/"+NoiseTexturePath], "aux textures are not reloaded per draw")

	units := map[string]int{"u_texture": 0, "u_noise_texture": 1, "u_tf_texture": 2}
	for name, unit := range units {
		u, ok := s.Last(name)
		require.True(t, ok, name)
		assert.Equal(t, unit, u.Unit, name)
	}
	for _, name := range []string{"u_jittering", "u_ray_step", "u_threshold", "u_clip_x", "u_clip_y", "u_clip_z"} {
		assert.True(t, s.Has(name), name)
	}
	u, _ := s.Last("u_ray_step")
	assert.Equal(t, float32(0.01), u.Value)
	assert.False(t, s.Has("u_light_position"))

	_, err := NewVolume(f.res)
	require.NoError(t, err)
	f.textures.Fail["data/"+TransferTexturePath] = errors.New("missing")
	_, err = NewVolume(f.res)
	assert.Error(t, err)
}

func TestSkyboxUniforms(t *testing.T) {
	f := newFixture()
	m := f.build(t, Skybox, WithEnvironmentMap("environments/city.png"))
	s := shaderOf(t, m)
	model := mgl32.Translate3D(3, 4, 5)

	m.Render(f.ctx, &gfxtest.Mesh{}, model, f.cam)

	assert.ElementsMatch(t, []string{"u_view", "u_projection", "u_model", "u_texture"}, s.Names())
	u, _ := s.Last("u_view")
	view := u.Value.(mgl32.Mat4)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, view.Col(3))
	assert.Equal(t, f.cam.View().Mat3(), view.Mat3())
	u, _ = s.Last("u_texture")
	assert.Equal(t, "data/environments/city.png#0", u.Value.(gfx.Texture).Name())
}

func TestInspectPointsAtLiveFields(t *testing.T) {
	f := newFixture()
	id := f.lights.Add(light.New())
	m := f.build(t, Phong, WithLight(id))
	s := shaderOf(t, m)

	var shininess Param
	for _, p := range m.Inspect() {
		if p.Label == "Shininess" {
			shininess = p
		}
	}
	require.NoError(t, shininess.Set(float32(64)))
	assert.Equal(t, float32(64), m.Params.(*PhongParams).Shininess)

	m.Render(f.ctx, &gfxtest.Mesh{}, mgl32.Ident4(), f.cam)
	u, _ := s.Last("alpha")
	assert.Equal(t, float32(64), u.Value)

	assert.Error(t, shininess.Set(true))
	require.NoError(t, shininess.Set(float32(1000)))
	assert.Equal(t, float32(256), m.Params.(*PhongParams).Shininess)

	color := m.Inspect()[0]
	require.NoError(t, color.Set(mgl32.Vec4{0, 1, 0, 1}))
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, m.Color)
}

func TestInspectCoversVariants(t *testing.T) {
	f := newFixture()
	counts := map[Kind]int{Standard: 1, Phong: 5, Mirror: 5, PBR: 9, Volume: 7, Skybox: 1}
	for k, n := range counts {
		assert.Len(t, f.build(t, k).Inspect(), n, k.String())
	}
}

func TestCloneCopiesParams(t *testing.T) {
	f := newFixture()
	a, err := NewPBR(f.res, WithPreset(Gold))
	require.NoError(t, err)

	b, err := a.Clone("gold-2")
	require.NoError(t, err)
	assert.Equal(t, "gold-2", b.Name)
	assert.Same(t, a.Shader, b.Shader)

	pa, pb := a.Params.(*PBRParams), b.Params.(*PBRParams)
	assert.NotSame(t, pa, pb)
	assert.Same(t, pa.Albedo, pb.Albedo)
	assert.Same(t, pa.Levels[3], pb.Levels[3])

	pb.Roughness = 0.1
	assert.Equal(t, float32(1), pa.Roughness)

	m, err := f.build(t, Mirror).Clone("m2")
	require.NoError(t, err)
	assert.Equal(t, float32(35), m.Params.(*MirrorParams).Shininess)
}

func TestBuildFailsWithoutShader(t *testing.T) {
	f := newFixture()
	f.shaders.Fail = gfx.ErrNoShader
	_, err := NewPhong(f.res)
	assert.ErrorIs(t, err, gfx.ErrNoShader)

	_, err = NewStandard(Resources{})
	assert.ErrorIs(t, err, gfx.ErrNoShader)
}
