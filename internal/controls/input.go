package controls

import "github.com/go-gl/glfw/v3.3/glfw"

// window is the minimal surface Handler needs from *glfw.Window,
// narrowed so Handler.Poll's edge-detection logic can be exercised
// without a real GL context.
type window interface {
	GetKey(key glfw.Key) glfw.Action
}

// Handler tracks per-key edge state across frames, the same
// last-state-map approach as the teacher's Game.wasKeyJustPressed.
type Handler struct {
	lastKeyStates map[glfw.Key]bool
}

// NewHandler returns a Handler with no prior key state.
func NewHandler() *Handler {
	return &Handler{lastKeyStates: make(map[glfw.Key]bool)}
}

var keyBindings = struct {
	decreaseSamples, increaseSamples   glfw.Key
	toggleDebug                        glfw.Key
	decreaseBVHDepth, increaseBVHDepth glfw.Key
	cycleScene                         glfw.Key
	resetAccumulation                  glfw.Key
	screenshot                         glfw.Key
	resetDefaults                      glfw.Key
}{
	decreaseSamples:   glfw.KeyLeftBracket,
	increaseSamples:   glfw.KeyRightBracket,
	toggleDebug:       glfw.KeyB,
	decreaseBVHDepth:  glfw.KeyMinus,
	increaseBVHDepth:  glfw.KeyEqual,
	cycleScene:        glfw.KeyF5,
	resetAccumulation: glfw.KeyR,
	screenshot:        glfw.KeyF2,
	resetDefaults:     glfw.KeyF9,
}

// Poll samples win and returns the set of keys that transitioned from
// released to pressed since the last call, per the keybinding table in
// SPEC_FULL.md section 9.
func (h *Handler) Poll(win window) KeyEvents {
	return KeyEvents{
		DecreaseSamples:   h.justPressed(win, keyBindings.decreaseSamples),
		IncreaseSamples:   h.justPressed(win, keyBindings.increaseSamples),
		ToggleDebug:       h.justPressed(win, keyBindings.toggleDebug),
		DecreaseBVHDepth:  h.justPressed(win, keyBindings.decreaseBVHDepth),
		IncreaseBVHDepth:  h.justPressed(win, keyBindings.increaseBVHDepth),
		CycleScene:        h.justPressed(win, keyBindings.cycleScene),
		ResetAccumulation: h.justPressed(win, keyBindings.resetAccumulation),
		Screenshot:        h.justPressed(win, keyBindings.screenshot),
		ResetDefaults:     h.justPressed(win, keyBindings.resetDefaults),
	}
}

func (h *Handler) justPressed(win window, key glfw.Key) bool {
	current := win.GetKey(key) == glfw.Press
	last := h.lastKeyStates[key]
	h.lastKeyStates[key] = current
	return current && !last
}
