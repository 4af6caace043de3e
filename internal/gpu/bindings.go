package gpu

// Binding points for the path-tracing kernel's storage buffers, images,
// and uniform block. These must match assets/shaders/pathtrace.comp's
// layout(binding=...) declarations exactly.
const (
	BindingSpheres   = 0
	BindingTriangles = 1
	BindingBVHNodes  = 4 // collides with BindingPerfCounters below; see BindAll.
	BindingTriIndex  = 3
	BindingUniforms  = 0 // uniform-buffer binding namespace is separate from SSBO bindings

	// BindingPerfCounters documents the preserved bug from spec.md
	// section 9(b): this binding point is also 4, the same as
	// BindingBVHNodes. Whichever BindBase call runs last wins, so the
	// shader's view of the BVH-node buffer is ambiguous whenever the
	// performance counters are bound. Do not renumber this to "fix" it —
	// see DESIGN.md.
	BindingPerfCounters = 4
)

// KernelBuffers is every SSBO the compute kernel reads or writes in one
// frame.
type KernelBuffers struct {
	Spheres      *Buffer
	Triangles    *Buffer
	TriIndices   *Buffer
	BVHNodes     *Buffer
	PerfCounters *Buffer
	Uniforms     *Buffer
}

// BindAll binds every buffer to its binding point, in the order the
// teacher's engine binds per-draw-call resources: geometry first, then
// acceleration structure, then the buffers that change every frame.
// BVHNodes and PerfCounters are bound to the same index (4); whichever
// is bound last is the one the shader actually sees, reproducing the
// documented binding collision rather than hiding it behind a fixed
// binding scheme.
func (k *KernelBuffers) BindAll() {
	k.Spheres.BindBase(BindingSpheres)
	k.Triangles.BindBase(BindingTriangles)
	k.TriIndices.BindBase(BindingTriIndex)
	k.BVHNodes.BindBase(BindingBVHNodes)
	k.PerfCounters.BindBase(BindingPerfCounters)
	k.Uniforms.BindBase(BindingUniforms)
}
