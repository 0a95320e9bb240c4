package prng

// SplitMixGamma is the golden-ratio increment of splitmix64.
const SplitMixGamma = 0x9e3779b97f4a7c15

// SplitMix64 advances the splitmix64 counter x and returns the finalized
// output and the new counter.
// see https://prng.di.unimi.it/splitmix64.c
func SplitMix64(x uint64) (uint64, uint64) {
	x += SplitMixGamma
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31), x
}

// SplitMix is the splitmix64 generator.
type SplitMix struct {
	x uint64
}

// NewSplitMix returns splitmix64 seeded with SeedWord0.
func NewSplitMix() *SplitMix {
	return &SplitMix{x: SeedWord0}
}

func (g *SplitMix) Uint64() (r uint64) {
	r, g.x = SplitMix64(g.x)
	return
}
