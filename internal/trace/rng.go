package trace

// RNG is the per-invocation random state: a Wang-hash seed advanced by an
// xorshift step. The seed formula and the advance function are part of
// the deterministic-replay contract in spec.md section 9 — do not
// substitute a thread-local generator.
type RNG struct {
	state uint32
}

// Seed derives the per-pixel RNG state from
// hash(py*W+px+frameIndex*12345), per spec.md section 4.4.
func Seed(px, py, width int, frameIndex uint32) RNG {
	v := uint32(py*width+px) + frameIndex*12345
	return RNG{state: wangHash(v)}
}

func wangHash(seed uint32) uint32 {
	seed = (seed ^ 61) ^ (seed >> 16)
	seed *= 9
	seed = seed ^ (seed >> 4)
	seed *= 0x27d4eb2d
	seed = seed ^ (seed >> 15)
	return seed
}

// Float32 advances the state with an xorshift step and returns a uniform
// value in [0,1).
func (r *RNG) Float32() float32 {
	s := r.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	r.state = s
	return float32(s) / float32(1<<32)
}

// Float32Pair draws two independent uniform values in one call, for call
// sites that need a 2D sample (pixel jitter, light point selection, the
// cosine-hemisphere sample).
func (r *RNG) Float32Pair() (float32, float32) {
	return r.Float32(), r.Float32()
}
