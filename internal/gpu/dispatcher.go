package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"pathtracer/internal/bvh"
	"pathtracer/internal/camera"
	"pathtracer/internal/gpulayout"
	"pathtracer/internal/scene"
)

// Fixed image-unit assignment for the two compute passes: 0-2 the three
// accumulation channels, 3 the intermediate estimate, 4 the final
// display texture.
const (
	imageAccumFirst   = 0
	imageIntermediate = 3
	imageDisplay      = 4
)

// noWireframeDepth is never a legal BVH depth (depths start at 0), so it
// forces the first DrawOverlay call to upload the wireframe.
const noWireframeDepth = ^uint32(0)

// RenderPipeline wires device, buffers, textures, compute pipelines and
// the debug overlay into one type satisfying internal/engine.Dispatcher.
// It is the concrete analogue of the teacher's render.Engine, generalized
// from a single raster draw call to this three-stage compute/compute/draw
// sequence.
type RenderPipeline struct {
	device *Device

	pathtrace  *ComputePipeline
	accumulate *ComputePipeline
	overlay    *Overlay
	counters   *PerfCounters

	accum        *AccumulationTextures
	intermediate *IntermediateTexture
	display      uint32

	buffers KernelBuffers

	cam          scene.Camera
	tree         *bvh.Tree
	lastDepth    uint32
	lastCounters [4]uint32
}

// NewRenderPipeline allocates every GPU resource for one loaded scene:
// packs geometry and the flattened BVH into storage buffers, compiles the
// path-trace/accumulate compute programs and the wireframe overlay
// program, and allocates the accumulation/intermediate/display textures
// at the device's resolution.
func NewRenderPipeline(d *Device, sc scene.Scene, tree *bvh.Tree, flat bvh.Flat, pathtraceSrc, accumulateSrc, wireVertSrc, wireFragSrc string) (*RenderPipeline, error) {
	pt, err := NewComputePipeline(pathtraceSrc)
	if err != nil {
		return nil, fmt.Errorf("compile pathtrace kernel: %w", err)
	}
	acc, err := NewComputePipeline(accumulateSrc)
	if err != nil {
		return nil, fmt.Errorf("compile accumulate kernel: %w", err)
	}
	ov, err := NewOverlay(wireVertSrc, wireFragSrc)
	if err != nil {
		return nil, fmt.Errorf("compile wireframe overlay: %w", err)
	}

	buffers := KernelBuffers{
		Spheres:      NewStorageBuffer(gpulayout.PackSpheres(sc.Spheres), gl.STATIC_DRAW),
		Triangles:    NewStorageBuffer(gpulayout.PackTriangles(sc.Triangles), gl.STATIC_DRAW),
		TriIndices:   NewStorageBuffer(packTriIndices(flat.TriangleIndices), gl.STATIC_DRAW),
		BVHNodes:     NewStorageBuffer(gpulayout.PackFlatNodes(flat.Nodes), gl.STATIC_DRAW),
		PerfCounters: nil, // set below, once the counter buffer exists
		Uniforms:     NewUniformBuffer(gpulayout.UniformsSize),
	}
	counters := NewPerfCounters()
	buffers.PerfCounters = counters.Buffer

	accumTex := NewAccumulationTextures(d.Width, d.Height)
	inter := NewIntermediateTexture(d.Width, d.Height)
	display := newDisplayTexture(d.Width, d.Height)

	p := &RenderPipeline{
		device:       d,
		pathtrace:    pt,
		accumulate:   acc,
		overlay:      ov,
		counters:     counters,
		accum:        accumTex,
		intermediate: inter,
		display:      display,
		buffers:      buffers,
		cam:          sc.Camera,
		tree:         tree,
		lastDepth:    noWireframeDepth,
	}
	return p, nil
}

// UploadWireframe replaces the tree the debug overlay draws from, used
// when a new scene loads.
func (p *RenderPipeline) UploadWireframe(tree *bvh.Tree) {
	p.tree = tree
	p.lastDepth = noWireframeDepth
}

// WriteUniforms packs and uploads the per-frame uniform block.
func (p *RenderPipeline) WriteUniforms(frameIndex uint32, samplesPerPixel int, debugEnabled bool) {
	u := gpulayout.Uniforms{
		CameraPosition:  p.cam.Position,
		CameraRotation:  p.cam.Rotation,
		FOV:             p.cam.FOV,
		Near:            p.cam.NearPlane,
		Far:             p.cam.FarPlane,
		FrameIndex:      frameIndex,
		ResolutionW:     uint32(p.device.Width),
		ResolutionH:     uint32(p.device.Height),
		SamplesPerPixel: uint32(samplesPerPixel),
		DebugEnabled:    debugEnabled,
	}
	packed := u.Pack()
	p.buffers.Uniforms.Update(packed[:])
}

// DispatchPathTrace binds every kernel resource and dispatches the
// path-tracing compute pass.
func (p *RenderPipeline) DispatchPathTrace(width, height int) {
	p.buffers.BindAll()
	p.intermediate.BindImage(imageIntermediate)
	p.pathtrace.Dispatch(width, height)
}

// Barrier inserts the memory barrier between the compute dispatches.
func (p *RenderPipeline) Barrier() {
	Barrier()
}

// DispatchAccumulate binds the three accumulation channels, the
// intermediate estimate, and the display texture, dispatches the
// accumulation compute pass, then blits the display texture to the
// default framebuffer (flipped vertically, since the kernel's row 0 is the
// top of the image).
func (p *RenderPipeline) DispatchAccumulate(width, height int) {
	p.buffers.Uniforms.BindBase(BindingUniforms)
	p.accum.BindImages(imageAccumFirst)
	p.intermediate.BindImage(imageIntermediate)
	bindDisplayImage(p.display, imageDisplay)
	p.accumulate.Dispatch(width, height)

	gl.MemoryBarrier(gl.FRAMEBUFFER_BARRIER_BIT)
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.display, 0)
	w, h := int32(width), int32(height)
	gl.BlitFramebuffer(0, 0, w, h, 0, h, w, 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.DeleteFramebuffers(1, &fbo)
}

// DrawOverlay renders the BVH wireframe at the given debug depth over
// the accumulator's output, re-uploading the overlay's vertex buffer
// only when the requested depth changed since the last frame.
func (p *RenderPipeline) DrawOverlay(bvhDepth uint32) {
	if p.tree == nil {
		return
	}
	if bvhDepth != p.lastDepth {
		p.overlay.Upload(p.tree.Wireframe(bvhDepth))
		p.lastDepth = bvhDepth
	}

	aspect := float32(p.device.Width) / float32(p.device.Height)
	view := camera.ViewMatrix(p.cam)
	proj := camera.ProjectionMatrix(p.cam, aspect)
	p.overlay.Draw(proj.Mul4(view))
}

// Submit reads the performance counters, swaps buffers, and polls window
// events, the same end-of-frame shape as the teacher's engine loop.
func (p *RenderPipeline) Submit() {
	p.lastCounters = p.counters.ReadAndReset()
	p.device.Window.SwapBuffers()
	glfw.PollEvents()
}

// LastCounters returns the performance-counter deltas read back at the
// most recent Submit call, for HUD/tests-per-second reporting.
func (p *RenderPipeline) LastCounters() [4]uint32 {
	return p.lastCounters
}

// ReadDisplayPixels reads back the display texture as float32 RGB,
// feeding internal/controls.SaveScreenshot.
func (p *RenderPipeline) ReadDisplayPixels() []float32 {
	return readDisplayTexture(p.display, p.device.Width, p.device.Height)
}

// Delete releases every GPU resource the pipeline owns.
func (p *RenderPipeline) Delete() {
	p.pathtrace.Delete()
	p.accumulate.Delete()
	p.overlay.Delete()
	p.buffers.Spheres.Delete()
	p.buffers.Triangles.Delete()
	p.buffers.TriIndices.Delete()
	p.buffers.BVHNodes.Delete()
	p.buffers.PerfCounters.Delete()
	p.buffers.Uniforms.Delete()
	p.accum.Delete()
	p.intermediate.Delete()
	deleteDisplayTexture(p.display)
}

func packTriIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, v := range indices {
		buf[i*4+0] = byte(v)
		buf[i*4+1] = byte(v >> 8)
		buf[i*4+2] = byte(v >> 16)
		buf[i*4+3] = byte(v >> 24)
	}
	return buf
}
