package game

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"fireworksgl/internal/cli"
	"fireworksgl/internal/config"
)

// openWindow creates the GL 4.1 core window: a decorated preview window, or
// a borderless fullscreen window on the primary monitor at its native mode.
// glfw must already be initialised.
func openWindow(mode cli.Mode, cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	width, height := cfg.PreviewWidth, cfg.PreviewHeight
	var monitor *glfw.Monitor
	if !mode.Preview() {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			return nil, fmt.Errorf("%w: no primary monitor", cli.ErrWindow)
		}
		vm := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, vm.RedBits)
		glfw.WindowHint(glfw.GreenBits, vm.GreenBits)
		glfw.WindowHint(glfw.BlueBits, vm.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, vm.RefreshRate)
		glfw.WindowHint(glfw.Decorated, glfw.False)
		width, height = vm.Width, vm.Height
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
	}

	window, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cli.ErrWindow, err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	if !mode.Preview() {
		window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}
	return window, nil
}
