package game

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	closeKeys = map[glfw.Key]string{
		glfw.KeySpace:  "space",
		glfw.KeyEnter:  "enter",
		glfw.KeyEscape: "escape",
	}
	closeMouse = []glfw.MouseButton{glfw.MouseButtonLeft}
)

// Input watches for anything that should dismiss the screensaver.
type Input struct {
	mouseThreshold float64 // 0 disables cursor travel
	originSet      bool
	originX        float64
	originY        float64
}

func NewInput(mouseThreshold float64) *Input {
	return &Input{mouseThreshold: mouseThreshold}
}

// CloseRequested reports whether the user asked to leave, and why.
func (in *Input) CloseRequested(window *glfw.Window) (string, bool) {
	for k, name := range closeKeys {
		if window.GetKey(k) == glfw.Press {
			return "key " + name, true
		}
	}
	for _, b := range closeMouse {
		if window.GetMouseButton(b) == glfw.Press {
			return "mouse button", true
		}
	}

	if in.mouseThreshold <= 0 {
		return "", false
	}
	x, y := window.GetCursorPos()
	if !in.originSet {
		in.originX, in.originY, in.originSet = x, y, true
		return "", false
	}
	if math.Hypot(x-in.originX, y-in.originY) > in.mouseThreshold {
		return "cursor moved", true
	}
	return "", false
}
