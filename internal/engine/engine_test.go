package engine

import (
	"testing"

	"pathtracer/internal/controls"
	"pathtracer/internal/errsink"
)

type fakeDispatcher struct {
	frameIndices  []uint32
	barriers      int
	overlaysDrawn int
	submits       int
}

func (f *fakeDispatcher) WriteUniforms(frameIndex uint32, samplesPerPixel int, debugEnabled bool) {
	f.frameIndices = append(f.frameIndices, frameIndex)
}
func (f *fakeDispatcher) DispatchPathTrace(width, height int)   {}
func (f *fakeDispatcher) Barrier()                              { f.barriers++ }
func (f *fakeDispatcher) DispatchAccumulate(width, height int)  {}
func (f *fakeDispatcher) DrawOverlay(bvhDepth uint32)           { f.overlaysDrawn++ }
func (f *fakeDispatcher) Submit()                               { f.submits++ }

func TestRunFrameAdvancesFrameIndex(t *testing.T) {
	c := NewController(errsink.New(8), 64, 64)
	d := &fakeDispatcher{}

	c.RunFrame(d)
	c.RunFrame(d)
	c.RunFrame(d)

	want := []uint32{1, 2, 3}
	if len(d.frameIndices) != len(want) {
		t.Fatalf("got %d frames, want %d", len(d.frameIndices), len(want))
	}
	for i, fi := range d.frameIndices {
		if fi != want[i] {
			t.Fatalf("frame %d index = %d, want %d", i, fi, want[i])
		}
	}
	if d.submits != 3 || d.barriers != 3 {
		t.Fatalf("submits=%d barriers=%d, want 3,3", d.submits, d.barriers)
	}
}

func TestRunFrameResetSetsFrameIndexToZero(t *testing.T) {
	// Reset sets FrameState to 0 before the uniform write, but RunFrame
	// always performs exactly one Reset-or-Advance before dispatch, so a
	// reset frame's uniform write sees frameIndex == 0, matching the
	// accumulator's first-frame branch in spec.md section 4.5.
	c := NewController(errsink.New(8), 64, 64)
	d := &fakeDispatcher{}

	c.RunFrame(d)
	c.RunFrame(d)
	c.Controls.ResetAccumulation = true
	c.RunFrame(d)

	if got := d.frameIndices[len(d.frameIndices)-1]; got != 0 {
		t.Fatalf("reset frame index = %d, want 0", got)
	}
}

func TestRunFrameDrawsOverlayOnlyWhenDebugEnabled(t *testing.T) {
	c := NewController(errsink.New(8), 64, 64)
	d := &fakeDispatcher{}

	c.RunFrame(d)
	if d.overlaysDrawn != 0 {
		t.Fatalf("overlaysDrawn = %d, want 0 before enabling debug", d.overlaysDrawn)
	}

	c.Controls.Apply(controls.KeyEvents{ToggleDebug: true}, 1)
	c.RunFrame(d)
	if d.overlaysDrawn != 1 {
		t.Fatalf("overlaysDrawn = %d, want 1 after enabling debug", d.overlaysDrawn)
	}
}
