// Package app is the viewer's frame driver: it turns input into camera
// motion and debug toggles and renders the scene once per frame.
package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"shade-engine/camera"
	"shade-engine/gfx"
	"shade-engine/material"
	"shade-engine/scene"
)

// DefaultSpeed is the fly speed in units per second.
const DefaultSpeed = 10

// Target is the framebuffer the app draws into.
type Target interface {
	Clear(color mgl32.Vec4)
	SetViewport(width, height int)
}

// App holds the viewer state between frames.
type App struct {
	Scene    *scene.Scene
	Camera   *camera.Camera
	Pipeline gfx.Pipeline
	Shaders  gfx.ShaderLoader
	Target   Target
	Log      *zap.Logger

	// Grid is the debug floor drawn after the scene when ShowGrid is set.
	Grid *scene.Node

	Background    mgl32.Vec4
	Speed         float32
	ShowGrid      bool
	ShowWireframe bool
	Exit          bool

	locked  bool // a mouse drag is steering the camera
	elapsed float32
}

// New returns an app with the default fly speed and a black background.
func New(sc *scene.Scene, cam *camera.Camera, p gfx.Pipeline, shaders gfx.ShaderLoader, t Target, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		Scene:      sc,
		Camera:     cam,
		Pipeline:   p,
		Shaders:    shaders,
		Target:     t,
		Log:        log,
		Background: mgl32.Vec4{0, 0, 0, 1},
		Speed:      DefaultSpeed,
	}
}

// Elapsed is the total simulated time in seconds.
func (a *App) Elapsed() float32 { return a.elapsed }

// Update advances the app by dt seconds.
func (a *App) Update(dt float32, in Input) {
	a.elapsed += dt
	a.toggles(in)
	a.steer(dt, in)
}

func (a *App) toggles(in Input) {
	if in.Pressed[KeyEscape] {
		a.Exit = true
	}
	if in.Pressed[KeyF1] {
		a.ShowGrid = !a.ShowGrid
		a.Log.Debug("debug grid", zap.Bool("on", a.ShowGrid))
	}
	if in.Pressed[KeyF2] {
		a.ShowWireframe = !a.ShowWireframe
		a.Log.Debug("wireframe pass", zap.Bool("on", a.ShowWireframe))
	}
	if in.Pressed[KeyF5] && a.Shaders != nil {
		if err := a.Shaders.ReloadAll(); err != nil {
			a.Log.Warn("shader reload", zap.Error(err))
		}
	}
}

func (a *App) steer(dt float32, in Input) {
	cam := a.Camera
	speed := dt * a.Speed
	if in.held(KeyShift) {
		speed *= 10
	}
	orbit := dt * 0.5
	pan := speed * 0.5

	if in.held(KeyW, KeyUp) {
		cam.Move(mgl32.Vec3{0, 0, speed})
	}
	if in.held(KeyS, KeyDown) {
		cam.Move(mgl32.Vec3{0, 0, -speed})
	}
	if in.held(KeyA, KeyLeft) {
		cam.Move(mgl32.Vec3{speed, 0, 0})
	}
	if in.held(KeyD, KeyRight) {
		cam.Move(mgl32.Vec3{-speed, 0, 0})
	}

	a.locked = true
	switch {
	case in.button(ButtonRight):
		cam.Rotate(-in.MouseDX*orbit*0.5, mgl32.Vec3{0, 1, 0})
		cam.Rotate(-in.MouseDY*orbit*0.5, cam.LocalVector(mgl32.Vec3{1, 0, 0}))
	case in.button(ButtonLeft):
		cam.Orbit(-in.MouseDX*orbit, in.MouseDY*orbit)
	case in.button(ButtonMiddle):
		cam.Move(mgl32.Vec3{-in.MouseDX * pan, 0, 0})
		cam.Move(mgl32.Vec3{0, in.MouseDY * pan, 0})
	default:
		a.locked = false
	}

	if in.held(KeyQ, KeySpace) {
		cam.MoveGlobal(mgl32.Vec3{0, -speed, 0})
	}
	if in.held(KeyE, KeyCtrl) {
		cam.MoveGlobal(mgl32.Vec3{0, speed, 0})
	}

	if in.Wheel != 0 {
		if a.locked {
			a.Speed *= 1 + in.Wheel*0.1
		} else {
			cam.ChangeDistance(in.Wheel * 0.5)
		}
	}
}

// Render clears the target and draws the scene, then the debug grid.
func (a *App) Render() {
	if a.Target != nil {
		a.Target.Clear(a.Background)
	}
	ctx := a.Scene.Context(material.Context{Pipeline: a.Pipeline, Time: a.elapsed})
	a.Scene.Render(ctx, a.Camera, a.ShowWireframe)
	if a.ShowGrid && a.Grid != nil {
		a.Grid.Render(ctx, a.Camera)
	}
}

// Resize follows a framebuffer size change.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.Camera.SetAspect(float32(width) / float32(height))
	if a.Target != nil {
		a.Target.SetViewport(width, height)
	}
	a.Log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}
