package gpu

import "testing"

// TestBindingsCollideOnFour pins the documented bug in spec.md section
// 9(b): the BVH-node and performance-counter buffers share binding point
// 4, so whichever BindBase call runs last in BindAll wins.
func TestBindingsCollideOnFour(t *testing.T) {
	if BindingBVHNodes != BindingPerfCounters {
		t.Fatalf("BindingBVHNodes = %d, BindingPerfCounters = %d, want them equal (the documented collision)", BindingBVHNodes, BindingPerfCounters)
	}
}
