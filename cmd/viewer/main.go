// Command viewer opens a window and renders a material showcase scene with
// fly/orbit camera controls.
//
//	F1 grid, F2 wireframe pass, F5 reload shaders, Esc quit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"shade-engine/app"
	"shade-engine/camera"
	"shade-engine/core"
	"shade-engine/internal/config"
	"shade-engine/internal/logger"
	"shade-engine/internal/opengl"
	"shade-engine/material"
	"shade-engine/meshio"
	"shade-engine/scene"
)

func main() {
	cfgPath := flag.String("config", "viewer.toml", "TOML configuration file")
	scenePath := flag.String("scene", "", "YAML scene description (overrides the config)")
	flag.Parse()

	if err := run(*cfgPath, *scenePath); err != nil {
		fmt.Fprintln(os.Stderr, "viewer:", err)
		os.Exit(1)
	}
}

func run(cfgPath, scenePath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if scenePath != "" {
		cfg.Paths.Scene = scenePath
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	window, err := core.NewWindow(core.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: true,
		VSync:     cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer(log)
	if err != nil {
		return err
	}
	shaders := opengl.NewShaderCache(log)
	defer shaders.Destroy()
	textures := opengl.NewTextureCache(log)
	defer textures.Destroy()
	meshes := opengl.NewMeshCache(cfg.Paths.Data, log)
	defer meshes.Destroy()

	res := material.Resources{
		Shaders:   shaders,
		Textures:  textures,
		ShaderDir: cfg.Paths.Shaders,
		DataDir:   cfg.Paths.Data,
	}
	sc, err := loadScene(cfg.Paths.Scene, scene.Deps{Resources: res, Meshes: meshes, Log: log})
	if err != nil {
		return err
	}

	cam := camera.New()
	cam.SetPerspective(cfg.Camera.FOV, float32(window.Width)/float32(max(window.Height, 1)), cfg.Camera.Near, cfg.Camera.Far)
	cam.LookAt(mgl32.Vec3(cfg.Camera.Eye), mgl32.Vec3(cfg.Camera.Target), mgl32.Vec3{0, 1, 0})

	a := app.New(sc, cam, renderer, shaders, renderer, log)
	a.Speed = cfg.Camera.Speed
	if a.Grid, err = gridNode(res); err != nil {
		return err
	}
	a.Resize(window.Width, window.Height)
	window.OnResize(a.Resize)

	input := core.NewInputManager(window, watchedKeys()...)
	last := window.Time()
	for !window.ShouldClose() {
		window.PollEvents()
		input.Update()

		now := window.Time()
		a.Update(float32(now-last), snapshot(input))
		last = now
		if a.Exit {
			window.SetShouldClose(true)
			continue
		}

		a.Render()
		window.SwapBuffers()
		input.EndFrame()
	}
	log.Info("viewer closed", zap.Float32("elapsed", a.Elapsed()))
	return nil
}

func loadScene(path string, deps scene.Deps) (*scene.Scene, error) {
	var (
		d   *scene.Description
		err error
	)
	if path == "" {
		d, err = scene.ParseDescription([]byte(defaultScene))
	} else {
		d, err = scene.LoadDescription(path)
	}
	if err != nil {
		return nil, err
	}
	return scene.Build(d, deps)
}

func gridNode(res material.Resources) (*scene.Node, error) {
	mat, err := material.NewStandard(res,
		material.WithName("grid"),
		material.WithColor(mgl32.Vec4{0.7, 0.7, 0.7, 0.5}))
	if err != nil {
		return nil, err
	}
	return scene.NewNode("grid", opengl.Upload(meshio.Grid(100, 100)), mat), nil
}

// defaultScene is shown when no scene file is configured.
const defaultScene = `
lights:
  - name: key
    position: [13, 13, 0]
nodes:
  - name: sky
    skybox: true
    mesh: box
    material:
      environment: environments/panorama.png
  - name: lantern
    mesh: models/lantern/lantern.obj
    scale: [0.5, 0.5, 0.5]
    material:
      kind: pbr
      preset: lantern
      light: key
      occlusion_map: true
      opacity_map: true
  - name: helmet
    mesh: models/helmet/helmet.obj
    position: [-20, 10, 0]
    scale: [8, 8, 8]
    material:
      kind: pbr
      preset: helmet
      light: key
  - name: mirror
    mesh: sphere
    position: [20, 10, 0]
    scale: [10, 10, 10]
    material:
      kind: phong_mirror
      light: key
      environment: environments/panorama.png
`
