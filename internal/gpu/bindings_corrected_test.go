//go:build correctedbugs

package gpu

import "testing"

func TestCorrectedBindingsDoNotCollide(t *testing.T) {
	if correctedBindingPerfCounters == BindingBVHNodes {
		t.Fatalf("corrected perf-counter binding (%d) still collides with BindingBVHNodes", correctedBindingPerfCounters)
	}
}
