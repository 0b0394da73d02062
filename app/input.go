package app

// Key is a key the viewer reacts to, independent of the windowing layer.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQ
	KeyE
	KeySpace
	KeyCtrl
	KeyShift
	KeyEscape
	KeyF1
	KeyF2
	KeyF5
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Input is one frame's worth of user input.
type Input struct {
	Held    map[Key]bool // down during this frame
	Pressed map[Key]bool // went down this frame

	Buttons [3]bool

	MouseDX, MouseDY float32 // cursor motion in pixels
	Wheel            float32 // vertical scroll steps
}

func (in Input) held(keys ...Key) bool {
	for _, k := range keys {
		if in.Held[k] {
			return true
		}
	}
	return false
}

func (in Input) button(b Button) bool {
	return in.Buttons[b]
}
