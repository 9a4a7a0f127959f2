package sim

import "math/rand"

// RandomSource supplies the uniform draws consumed by measurement sampling
// and noise-channel selection. It is always passed in explicitly so a run is
// replayable from its seed and independent runs never share generator state.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a seeded source backed by math/rand.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}
