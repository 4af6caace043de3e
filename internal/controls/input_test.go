package controls

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// fakeWindow satisfies the window interface with a map the test mutates
// directly, standing in for glfw.Window.GetKey.
type fakeWindow struct {
	pressed map[glfw.Key]bool
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{pressed: make(map[glfw.Key]bool)}
}

func (w *fakeWindow) GetKey(key glfw.Key) glfw.Action {
	if w.pressed[key] {
		return glfw.Press
	}
	return glfw.Release
}

func TestPollReportsOnlyTheRisingEdge(t *testing.T) {
	h := NewHandler()
	win := newFakeWindow()

	ev := h.Poll(win)
	if ev.ToggleDebug {
		t.Fatalf("ToggleDebug = true on an unpressed key")
	}

	win.pressed[glfw.KeyB] = true
	ev = h.Poll(win)
	if !ev.ToggleDebug {
		t.Fatalf("ToggleDebug = false on the frame the key was first pressed")
	}

	ev = h.Poll(win)
	if ev.ToggleDebug {
		t.Fatalf("ToggleDebug = true while the key is held, want only the rising edge")
	}

	win.pressed[glfw.KeyB] = false
	ev = h.Poll(win)
	if ev.ToggleDebug {
		t.Fatalf("ToggleDebug = true after release")
	}

	win.pressed[glfw.KeyB] = true
	ev = h.Poll(win)
	if !ev.ToggleDebug {
		t.Fatalf("ToggleDebug = false on a second press after a release")
	}
}

func TestPollTracksEachKeyIndependently(t *testing.T) {
	h := NewHandler()
	win := newFakeWindow()

	win.pressed[glfw.KeyRightBracket] = true
	win.pressed[glfw.KeyF5] = true
	ev := h.Poll(win)

	if !ev.IncreaseSamples {
		t.Fatalf("IncreaseSamples = false, want true")
	}
	if !ev.CycleScene {
		t.Fatalf("CycleScene = false, want true")
	}
	if ev.DecreaseSamples || ev.ToggleDebug || ev.ResetAccumulation || ev.Screenshot || ev.ResetDefaults {
		t.Fatalf("unrelated keys reported pressed: %+v", ev)
	}

	ev = h.Poll(win)
	if ev.IncreaseSamples || ev.CycleScene {
		t.Fatalf("held keys re-reported as rising edges on the next frame: %+v", ev)
	}
}

func TestPollMapsAllBindings(t *testing.T) {
	h := NewHandler()
	win := newFakeWindow()

	cases := []struct {
		key glfw.Key
		get func(KeyEvents) bool
	}{
		{keyBindings.decreaseSamples, func(ev KeyEvents) bool { return ev.DecreaseSamples }},
		{keyBindings.increaseSamples, func(ev KeyEvents) bool { return ev.IncreaseSamples }},
		{keyBindings.toggleDebug, func(ev KeyEvents) bool { return ev.ToggleDebug }},
		{keyBindings.decreaseBVHDepth, func(ev KeyEvents) bool { return ev.DecreaseBVHDepth }},
		{keyBindings.increaseBVHDepth, func(ev KeyEvents) bool { return ev.IncreaseBVHDepth }},
		{keyBindings.cycleScene, func(ev KeyEvents) bool { return ev.CycleScene }},
		{keyBindings.resetAccumulation, func(ev KeyEvents) bool { return ev.ResetAccumulation }},
		{keyBindings.screenshot, func(ev KeyEvents) bool { return ev.Screenshot }},
		{keyBindings.resetDefaults, func(ev KeyEvents) bool { return ev.ResetDefaults }},
	}

	for _, c := range cases {
		win.pressed = map[glfw.Key]bool{c.key: true}
		ev := h.Poll(win)
		if !c.get(ev) {
			t.Fatalf("key %v did not trigger its bound field", c.key)
		}
		win.pressed = map[glfw.Key]bool{}
		h.Poll(win)
	}
}
