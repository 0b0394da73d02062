package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shade-engine/camera"
	"shade-engine/gfx"
	"shade-engine/gfx/gfxtest"
	"shade-engine/material"
	"shade-engine/scene"
)

type target struct {
	clears    []mgl32.Vec4
	viewports [][2]int
}

func (t *target) Clear(c mgl32.Vec4)   { t.clears = append(t.clears, c) }
func (t *target) SetViewport(w, h int) { t.viewports = append(t.viewports, [2]int{w, h}) }

type fixture struct {
	app      *App
	shaders  *gfxtest.ShaderLoader
	pipeline *gfxtest.Pipeline
	target   *target
	box      *gfxtest.Mesh
	grid     *gfxtest.Mesh
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		shaders:  gfxtest.NewShaderLoader(),
		pipeline: gfxtest.NewPipeline(),
		target:   &target{},
	}
	f.box = &gfxtest.Mesh{Pipeline: f.pipeline}
	f.grid = &gfxtest.Mesh{Pipeline: f.pipeline}
	res := material.Resources{Shaders: f.shaders, Textures: gfxtest.NewTextureLoader()}

	sc := scene.New()
	var err error
	sc.Wireframe, err = material.NewWireframe(res)
	require.NoError(t, err)
	phong, err := material.NewPhong(res)
	require.NoError(t, err)
	sc.Add(scene.NewNode("box", f.box, phong))

	cam := camera.New()
	cam.LookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	f.app = New(sc, cam, f.pipeline, f.shaders, f.target, nil)
	gridMat, err := material.NewStandard(res)
	require.NoError(t, err)
	f.app.Grid = scene.NewNode("grid", f.grid, gridMat)
	return f
}

func held(keys ...Key) Input {
	in := Input{Held: map[Key]bool{}}
	for _, k := range keys {
		in.Held[k] = true
	}
	return in
}

func pressed(k Key) Input {
	return Input{Held: map[Key]bool{k: true}, Pressed: map[Key]bool{k: true}}
}

func TestForwardMovesBySpeedTimesDt(t *testing.T) {
	f := newFixture(t)
	f.app.Update(0.1, held(KeyW))
	assert.InDelta(t, 9, f.app.Camera.Eye().Z(), 1e-4)

	f.app.Update(0.1, held(KeyUp, KeyShift))
	assert.InDelta(t, -1, f.app.Camera.Eye().Z(), 1e-3)
}

func TestStrafeAndVertical(t *testing.T) {
	f := newFixture(t)
	f.app.Update(0.1, held(KeyD))
	assert.InDelta(t, 1, f.app.Camera.Eye().X(), 1e-4)

	f.app.Update(0.1, held(KeyQ))
	assert.InDelta(t, 1, f.app.Camera.Eye().Y(), 1e-4)
	f.app.Update(0.1, held(KeyCtrl))
	assert.InDelta(t, 0, f.app.Camera.Eye().Y(), 1e-4)
}

func TestToggles(t *testing.T) {
	f := newFixture(t)

	f.app.Update(0.016, pressed(KeyF1))
	assert.True(t, f.app.ShowGrid)
	// Holding the key does not toggle again.
	f.app.Update(0.016, held(KeyF1))
	assert.True(t, f.app.ShowGrid)
	f.app.Update(0.016, pressed(KeyF1))
	assert.False(t, f.app.ShowGrid)

	f.app.Update(0.016, pressed(KeyF2))
	assert.True(t, f.app.ShowWireframe)

	f.app.Update(0.016, pressed(KeyF5))
	assert.Equal(t, 1, f.shaders.Reloads)

	assert.False(t, f.app.Exit)
	f.app.Update(0.016, pressed(KeyEscape))
	assert.True(t, f.app.Exit)
}

func TestTogglesSameFrame(t *testing.T) {
	f := newFixture(t)
	in := Input{Pressed: map[Key]bool{KeyF1: true, KeyF2: true, KeyF5: true}}

	f.app.Update(0.016, in)

	assert.True(t, f.app.ShowGrid)
	assert.True(t, f.app.ShowWireframe)
	assert.Equal(t, 1, f.shaders.Reloads)
}

func TestWheelZoomsUnlessDragging(t *testing.T) {
	f := newFixture(t)
	f.app.Update(0, Input{Wheel: 2})
	assert.InDelta(t, 9, f.app.Camera.Distance(), 1e-4)
	assert.Equal(t, float32(DefaultSpeed), f.app.Speed)

	drag := Input{Wheel: 1}
	drag.Buttons[ButtonRight] = true
	f.app.Update(0, drag)
	assert.InDelta(t, 11, f.app.Speed, 1e-4)
	assert.InDelta(t, 9, f.app.Camera.Distance(), 1e-4)
}

func TestLeftDragOrbitsKeepingDistance(t *testing.T) {
	f := newFixture(t)
	in := Input{MouseDX: 40, MouseDY: 10}
	in.Buttons[ButtonLeft] = true
	f.app.Update(0.05, in)

	assert.InDelta(t, 10, f.app.Camera.Distance(), 1e-3)
	assert.NotEqual(t, mgl32.Vec3{0, 0, 10}, f.app.Camera.Eye())
	assert.Equal(t, mgl32.Vec3{}, f.app.Camera.Center())
}

func TestRenderDrawsSceneThenGrid(t *testing.T) {
	f := newFixture(t)
	f.app.Render()
	require.Len(t, f.target.clears, 1)
	assert.Len(t, f.box.Draws, 1)
	assert.Empty(t, f.grid.Draws)

	f.app.ShowGrid = true
	f.app.ShowWireframe = true
	f.app.Render()
	// Solid pass plus wireframe overlay.
	assert.Len(t, f.box.Draws, 3)
	assert.Equal(t, gfx.Line, f.box.States[2].Polygon)
	assert.Len(t, f.grid.Draws, 1)
	assert.Equal(t, gfx.DefaultState, f.pipeline.Current)
}

func TestRenderUploadsElapsedTime(t *testing.T) {
	f := newFixture(t)
	f.app.Update(0.25, Input{})
	f.app.Update(0.25, Input{})
	f.app.Render()

	s := f.shaders.Get("phong.vs", "phong.fs")
	require.NotNil(t, s)
	u, ok := s.Last("u_time")
	require.True(t, ok)
	assert.Equal(t, float32(0.5), u.Value)
}

func TestResize(t *testing.T) {
	f := newFixture(t)
	f.app.Resize(1600, 800)
	assert.InDelta(t, 2, f.app.Camera.Aspect, 1e-6)
	assert.Equal(t, [][2]int{{1600, 800}}, f.target.viewports)

	f.app.Resize(0, 0)
	assert.Len(t, f.target.viewports, 1)
}
