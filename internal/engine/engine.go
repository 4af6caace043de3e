// Package engine drives the per-frame sequence spec.md section 2
// describes: increment frame index, write uniforms, dispatch the
// path-tracing compute pass, barrier, dispatch the accumulation pass,
// optionally draw the BVH wireframe overlay, submit. It is grounded on
// the teacher's render.Engine.Run callback loop, generalized from a
// single raster draw call to this three-stage compute/compute/draw
// dispatch.
package engine

import (
	"pathtracer/internal/controls"
	"pathtracer/internal/errsink"
)

// FrameState is the minimal state that survives across frames: the
// frame index. The pending reset flag lives in
// controls.Controls.ResetAccumulation. Everything else the kernel
// needs (geometry, BVH, uniforms) is recomputed or rewritten fresh each
// frame from the current Scene/Controls.
type FrameState struct {
	FrameIndex uint32
}

// Advance increments the frame index, the normal per-frame step.
func (f *FrameState) Advance() {
	f.FrameIndex++
}

// Reset sets the frame index back to 0, the producer-side flag spec.md
// section 5 describes taking effect "on the next frame" — callers set
// this before the frame's uniform write, not mid-frame.
func (f *FrameState) Reset() {
	f.FrameIndex = 0
}

// Dispatcher is the subset of internal/gpu's pipeline surface the
// controller drives each frame. It is an interface so the frame
// sequencing logic below can be tested without a GL context.
type Dispatcher interface {
	WriteUniforms(frameIndex uint32, samplesPerPixel int, debugEnabled bool)
	DispatchPathTrace(width, height int)
	Barrier()
	DispatchAccumulate(width, height int)
	DrawOverlay(bvhDepth uint32)
	Submit()
}

// Controller ties the per-frame pieces together: frame state, the
// control surface, the GPU dispatcher, and the error sink user-visible
// failures surface through.
type Controller struct {
	State    FrameState
	Controls controls.Controls
	Sink     *errsink.Sink
	Width    int
	Height   int
}

// NewController returns a Controller at frame 0 with default controls.
func NewController(sink *errsink.Sink, width, height int) *Controller {
	return &Controller{
		Controls: controls.DefaultControls(),
		Sink:     sink,
		Width:    width,
		Height:   height,
	}
}

// RunFrame executes exactly one frame of spec.md section 2's control
// flow against d. A pending ConsumeReset() resets FrameState before the
// uniform write, so the reset frame's accumulator branch sees
// frameIndex == 0.
func (c *Controller) RunFrame(d Dispatcher) {
	if c.Controls.ConsumeReset() {
		c.State.Reset()
	} else {
		c.State.Advance()
	}

	d.WriteUniforms(c.State.FrameIndex, c.Controls.SamplesPerPixel, c.Controls.EnableDebug)
	d.DispatchPathTrace(c.Width, c.Height)
	d.Barrier()
	d.DispatchAccumulate(c.Width, c.Height)
	if c.Controls.EnableDebug {
		d.DrawOverlay(c.Controls.BVHDepth)
	}
	d.Submit()
}

// HandleKeyEvents applies one frame's key events to Controls and
// reports whether the scene selection changed and whether a screenshot
// was requested, forwarding both to the caller (cmd/pathtracer) which
// owns scene reload and screenshot I/O.
func (c *Controller) HandleKeyEvents(ev controls.KeyEvents, sceneCount int) (sceneChanged, screenshot bool) {
	return c.Controls.Apply(ev, sceneCount)
}

// ReportSceneLoadError records a non-fatal scene load failure, per
// spec.md section 7's recovery policy: the previous scene stays active.
func (c *Controller) ReportSceneLoadError(path string, err error) {
	c.Sink.Warnf("load scene %q: %v", path, err)
}

// ReportFatal records a device/pipeline failure. Callers are expected
// to stop the render loop after the current frame once this is called.
func (c *Controller) ReportFatal(stage string, err error) {
	c.Sink.Fatalf("%s: %v", stage, err)
}
