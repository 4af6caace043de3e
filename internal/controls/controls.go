// Package controls implements the UI control surface spec.md section 6
// names as an external collaborator: samples-per-pixel, debug-overlay
// toggle, BVH-debug depth, scene selection, and accumulation reset.
// internal/controls supplies the concrete keyboard-driven
// implementation SPEC_FULL.md section 9 specifies, since this is a
// standalone renderer rather than one embedded in a larger editor.
package controls

import (
	"github.com/jinzhu/copier"

	"pathtracer/pkg/mathutil"
)

const (
	minSamplesPerPixel = 1
	maxSamplesPerPixel = 16
)

// Controls holds the mutable knobs the controller reads once per frame.
type Controls struct {
	SamplesPerPixel   int
	EnableDebug       bool
	BVHDepth          uint32
	SceneIndex        int
	ResetAccumulation bool
}

var defaultControls = Controls{
	SamplesPerPixel:   1,
	EnableDebug:       false,
	BVHDepth:          0,
	SceneIndex:        0,
	ResetAccumulation: false,
}

// DefaultControls returns the startup values, matching spec.md section
// 6's clamped ranges.
func DefaultControls() Controls {
	return defaultControls
}

// ResetToDefault restores every field to its startup value via
// github.com/jinzhu/copier, so a field added to Controls later cannot
// be silently skipped by a hand-written reset.
func (c *Controls) ResetToDefault() {
	copier.Copy(c, &defaultControls)
}

// KeyEvents is the set of single-press edge triggers observed this
// frame. It exists so the control-mutation logic in Apply can be unit
// tested without a GLFW window; internal/controls' glfw-polling layer
// is the only producer of a real KeyEvents value.
type KeyEvents struct {
	DecreaseSamples   bool
	IncreaseSamples   bool
	ToggleDebug       bool
	DecreaseBVHDepth  bool
	IncreaseBVHDepth  bool
	CycleScene        bool
	ResetAccumulation bool
	Screenshot        bool
	ResetDefaults     bool
}

// Apply mutates c in response to one frame's key events. sceneCount is
// the number of known scene manifests, used to wrap CycleScene.
// Screenshot is reported back via the return value rather than stored
// on Controls, since it is a one-shot action, not a persistent knob.
func (c *Controls) Apply(ev KeyEvents, sceneCount int) (sceneChanged, screenshot bool) {
	if ev.ResetDefaults {
		c.ResetToDefault()
		return false, false
	}

	if ev.DecreaseSamples {
		c.SamplesPerPixel = mathutil.ClampInt(c.SamplesPerPixel-1, minSamplesPerPixel, maxSamplesPerPixel)
	}
	if ev.IncreaseSamples {
		c.SamplesPerPixel = mathutil.ClampInt(c.SamplesPerPixel+1, minSamplesPerPixel, maxSamplesPerPixel)
	}
	if ev.ToggleDebug {
		c.EnableDebug = !c.EnableDebug
	}
	if ev.DecreaseBVHDepth && c.BVHDepth > 0 {
		c.BVHDepth--
	}
	if ev.IncreaseBVHDepth {
		c.BVHDepth++
	}
	if ev.CycleScene && sceneCount > 0 {
		c.SceneIndex = (c.SceneIndex + 1) % sceneCount
		sceneChanged = true
	}
	if ev.ResetAccumulation {
		c.ResetAccumulation = true
	}
	if ev.Screenshot {
		screenshot = true
	}
	return sceneChanged, screenshot
}

// ConsumeReset clears the one-shot accumulation-reset flag and reports
// whether it had been set, matching the producer-side-flag model of
// spec.md section 5 ("Reset accumulation is a producer-side flag that
// takes effect on the next frame").
func (c *Controls) ConsumeReset() bool {
	if !c.ResetAccumulation {
		return false
	}
	c.ResetAccumulation = false
	return true
}
