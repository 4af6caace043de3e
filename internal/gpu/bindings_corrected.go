//go:build correctedbugs

package gpu

// correctedBindingPerfCounters is the performance-counter binding point
// spec.md section 9(b) describes as the fix: one past BindingBVHNodes
// instead of reusing it, so the two buffers no longer collide.
const correctedBindingPerfCounters = BindingBVHNodes + 1
