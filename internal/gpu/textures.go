package gpu

import "github.com/go-gl/gl/v4.3-core/gl"

// AccumulationTextures holds the three single-channel R32F textures
// that store the running-average radiance per channel, per spec.md
// section 4.3. They are read-write from the device during the
// accumulator pass and are allocated once per surface size.
type AccumulationTextures struct {
	R, G, B uint32
	Width   int
	Height  int
}

// NewAccumulationTextures allocates the three R32F textures. Contents
// are left undefined — the first-frame branch in the accumulator
// (frameIndex == 0) is what logically "clears" them, not a physical
// texture clear, per spec.md section 3.
func NewAccumulationTextures(width, height int) *AccumulationTextures {
	mk := func() uint32 {
		var id uint32
		gl.GenTextures(1, &id)
		gl.BindTexture(gl.TEXTURE_2D, id)
		gl.TexStorage2D(gl.TEXTURE_2D, 1, gl.R32F, int32(width), int32(height))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return id
	}
	return &AccumulationTextures{R: mk(), G: mk(), B: mk(), Width: width, Height: height}
}

// BindImages binds the three channels as image load/store units at
// consecutive image-unit indices starting at first.
func (a *AccumulationTextures) BindImages(first uint32) {
	gl.BindImageTexture(first+0, a.R, 0, false, 0, gl.READ_WRITE, gl.R32F)
	gl.BindImageTexture(first+1, a.G, 0, false, 0, gl.READ_WRITE, gl.R32F)
	gl.BindImageTexture(first+2, a.B, 0, false, 0, gl.READ_WRITE, gl.R32F)
}

// Delete releases the three underlying textures.
func (a *AccumulationTextures) Delete() {
	ids := []uint32{a.R, a.G, a.B}
	gl.DeleteTextures(int32(len(ids)), &ids[0])
}

// IntermediateTexture is the RGBA16F surface carrying the per-frame
// path-traced estimate from the compute pass to the accumulation pass.
type IntermediateTexture struct {
	ID            uint32
	Width, Height int
}

// NewIntermediateTexture allocates the RGBA16F intermediate texture.
func NewIntermediateTexture(width, height int) *IntermediateTexture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexStorage2D(gl.TEXTURE_2D, 1, gl.RGBA16F, int32(width), int32(height))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return &IntermediateTexture{ID: id, Width: width, Height: height}
}

// BindImage binds the intermediate texture as an image load/store unit.
func (t *IntermediateTexture) BindImage(unit uint32) {
	gl.BindImageTexture(unit, t.ID, 0, false, 0, gl.READ_WRITE, gl.RGBA16F)
}

// Delete releases the underlying texture.
func (t *IntermediateTexture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}

// newDisplayTexture allocates the RGBA8 texture the accumulator writes
// its tonemapped output into and DispatchAccumulate blits to the window.
func newDisplayTexture(width, height int) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexStorage2D(gl.TEXTURE_2D, 1, gl.RGBA8, int32(width), int32(height))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// bindDisplayImage binds the display texture as an image load/store unit.
func bindDisplayImage(id, unit uint32) {
	gl.BindImageTexture(unit, id, 0, false, 0, gl.WRITE_ONLY, gl.RGBA8)
}

// readDisplayTexture reads the display texture back as float32 RGB (one
// float per channel, alpha dropped), the layout
// internal/controls.SaveScreenshot expects.
func readDisplayTexture(id uint32, width, height int) []float32 {
	pixels := make([]float32, width*height*3)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.GetTexImage(gl.TEXTURE_2D, 0, gl.RGB, gl.FLOAT, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return pixels
}

// deleteDisplayTexture releases the display texture.
func deleteDisplayTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}
