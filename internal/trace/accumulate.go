package trace

import "pathtracer/pkg/mathutil"

// Accumulate implements the fullscreen blend of spec.md section 4.5:
// out = saturate(S*(1-w) + E*w) with w = 1/(frameIndex+1). S is treated
// as zero whenever frameIndex is 0, regardless of what prev holds,
// because the first-frame branch is what "resets" accumulation — no
// physical texture clear is required.
func Accumulate(prev, estimate [3]float32, frameIndex uint32) [3]float32 {
	var s [3]float32
	if frameIndex >= 1 {
		s = prev
	}
	w := 1 / float32(frameIndex+1)

	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = mathutil.Clamp01(mathutil.Lerp(s[i], estimate[i], w))
	}
	return out
}
