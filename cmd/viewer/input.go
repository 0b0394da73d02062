package main

import (
	"shade-engine/app"
	"shade-engine/core"
)

// keyMap translates the app's keys to GLFW codes. Shift and Ctrl are read
// from the modifier state instead.
var keyMap = map[app.Key]int{
	app.KeyW:      core.KeyW,
	app.KeyA:      core.KeyA,
	app.KeyS:      core.KeyS,
	app.KeyD:      core.KeyD,
	app.KeyUp:     core.KeyUp,
	app.KeyDown:   core.KeyDown,
	app.KeyLeft:   core.KeyLeft,
	app.KeyRight:  core.KeyRight,
	app.KeyQ:      core.KeyQ,
	app.KeyE:      core.KeyE,
	app.KeySpace:  core.KeySpace,
	app.KeyEscape: core.KeyEscape,
	app.KeyF1:     core.KeyF1,
	app.KeyF2:     core.KeyF2,
	app.KeyF5:     core.KeyF5,
}

func watchedKeys() []int {
	keys := make([]int, 0, len(keyMap))
	for _, k := range keyMap {
		keys = append(keys, k)
	}
	return keys
}

func snapshot(im *core.InputManager) app.Input {
	in := app.Input{
		Held:    make(map[app.Key]bool, len(keyMap)+2),
		Pressed: make(map[app.Key]bool),
		MouseDX: float32(im.MouseDeltaX),
		MouseDY: float32(im.MouseDeltaY),
		Wheel:   float32(im.ScrollDelta),
	}
	for k, code := range keyMap {
		if im.IsKeyDown(code) {
			in.Held[k] = true
		}
		if im.IsKeyPressed(code) {
			in.Pressed[k] = true
		}
	}
	in.Held[app.KeyShift] = im.ShiftDown
	in.Held[app.KeyCtrl] = im.CtrlDown

	in.Buttons[app.ButtonLeft] = im.IsMouseDown(core.MouseLeft)
	in.Buttons[app.ButtonRight] = im.IsMouseDown(core.MouseRight)
	in.Buttons[app.ButtonMiddle] = im.IsMouseDown(core.MouseMiddle)
	return in
}
