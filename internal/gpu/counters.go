package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// counterSlots is the fixed number of u32 atomic counters the
// performance-counter buffer holds, per spec.md section 4.4. Slot 0 is
// the triangle-intersection-test counter.
const counterSlots = 4

// CounterTriangleTests is the slot index the kernel atomically
// increments once per Möller-Trumbore test.
const CounterTriangleTests = 0

// PerfCounters wraps the atomic counter buffer. It keeps no host-side
// totals: RenderPipeline.Submit calls ReadAndReset once per frame, so each
// read covers a single frame, and no tests/sec figure is reported.
type PerfCounters struct {
	Buffer *Buffer
}

// NewPerfCounters allocates a zero-initialized counter buffer.
func NewPerfCounters() *PerfCounters {
	data := make([]byte, counterSlots*4)
	return &PerfCounters{Buffer: NewStorageBuffer(data, gl.DYNAMIC_DRAW)}
}

// ReadAndReset reads back the counter values and immediately zeroes the
// buffer, so each call reports the delta since the previous call.
func (p *PerfCounters) ReadAndReset() [counterSlots]uint32 {
	var out [counterSlots]uint32
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, p.Buffer.ID)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, counterSlots*4, unsafe.Pointer(&out[0]))

	var zero [counterSlots]uint32
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, counterSlots*4, unsafe.Pointer(&zero[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return out
}

// TestsPerSecond converts a counter delta and the elapsed time since
// the last reset into a tests/sec rate.
func TestsPerSecond(counter uint32, elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	return float64(counter) / elapsedSeconds
}
