// Package gpu owns the OpenGL 4.3 core device: window/context creation,
// storage-buffer and texture allocation, compute-pipeline dispatch, and
// the performance-counter readback. It is the GPU-facing half of the
// pipeline described in spec.md sections 4.3-4.6; internal/trace is its
// host-testable twin.
package gpu

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW must be called from the thread that created the window.
	runtime.LockOSThread()
}

// Device owns the window, GL context, and the render-target dimensions.
type Device struct {
	Window *glfw.Window
	Width  int
	Height int
}

// NewDevice creates a GLFW window with an OpenGL 4.3 core context and
// makes it current, the same window-creation shape as the teacher's
// render.NewEngine bumped from 4.1 to 4.3 core for compute shader
// support.
func NewDevice(width, height int, title string, fullscreen, vsync bool) (*Device, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(width, height, title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &Device{Window: window, Width: width, Height: height}, nil
}

// Destroy tears down the window and terminates GLFW. Pipelines and
// buffers allocated on this device become invalid.
func (d *Device) Destroy() {
	if d.Window != nil {
		d.Window.Destroy()
	}
	glfw.Terminate()
}

// Resize updates the tracked render-target dimensions; the caller is
// responsible for recreating the accumulation and intermediate textures
// at the new size.
func (d *Device) Resize(width, height int) {
	d.Width = width
	d.Height = height
}
