package core

// InputManager tracks mouse and keyboard state between frames.
type InputManager struct {
	MouseDeltaX, MouseDeltaY float64
	lastMouseX, lastMouseY   float64
	ScrollDelta              float64

	mouseButtons     [3]bool
	mouseButtonsPrev [3]bool

	keys     [512]bool
	keysPrev [512]bool
	watched  []int

	ShiftDown bool
	CtrlDown  bool

	window     *Window
	firstFrame bool
}

// Mouse button constants
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

// NewInputManager polls the given keys every frame.
func NewInputManager(window *Window, keys ...int) *InputManager {
	im := &InputManager{
		window:     window,
		watched:    keys,
		firstFrame: true,
	}

	window.SetScrollCallback(func(xoff, yoff float64) {
		im.ScrollDelta += yoff
	})

	return im
}

// Update should be called once per frame, after PollEvents.
func (im *InputManager) Update() {
	x, y := im.window.GetCursorPos()
	if im.firstFrame {
		im.lastMouseX = x
		im.lastMouseY = y
		im.firstFrame = false
	}
	im.MouseDeltaX = x - im.lastMouseX
	im.MouseDeltaY = y - im.lastMouseY
	im.lastMouseX = x
	im.lastMouseY = y

	copy(im.mouseButtonsPrev[:], im.mouseButtons[:])
	copy(im.keysPrev[:], im.keys[:])

	for b := range im.mouseButtons {
		im.mouseButtons[b] = im.window.IsMouseButtonPressed(b)
	}

	im.ShiftDown = im.window.IsKeyPressed(KeyLeftShift) || im.window.IsKeyPressed(KeyRightShift)
	im.CtrlDown = im.window.IsKeyPressed(KeyLeftControl) || im.window.IsKeyPressed(KeyRightControl)

	for _, k := range im.watched {
		if k >= 0 && k < len(im.keys) {
			im.keys[k] = im.window.IsKeyPressed(k)
		}
	}
}

// EndFrame clears per-frame state
func (im *InputManager) EndFrame() {
	im.ScrollDelta = 0
}

func (im *InputManager) IsMouseDown(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return im.mouseButtons[button]
}

func (im *InputManager) IsKeyDown(key int) bool {
	if key < 0 || key >= len(im.keys) {
		return false
	}
	return im.keys[key]
}

// IsKeyPressed reports a key that went down this frame.
func (im *InputManager) IsKeyPressed(key int) bool {
	if key < 0 || key >= len(im.keys) {
		return false
	}
	return im.keys[key] && !im.keysPrev[key]
}
