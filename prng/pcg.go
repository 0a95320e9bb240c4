package prng

import "math/bits"

// Truncated 128-bit LCG constants shared by pcg128 and spcg64.
const (
	pcgMul  = 0x9b60933458e17d7d
	pcgInc0 = 0xd737232eeccdf7ed
	pcgInc1 = 0x8b260b70b8e98891
)

// PCG-XSH-RR constants used by pcg64.
const (
	pcg32Mul  = 6364136223846793005
	pcg32Inc0 = 1442695040888963407
	pcg32Inc1 = 0xda3e39cb94b95bdb
)

// pcgShift takes the variable window of s: the shift is 29 minus the top
// three bits, so between 22 and 29.
func pcgShift(s uint64) uint64 {
	return s >> (29 - (s >> 61))
}

// PCG128 runs two LCG words with a common increment and combines the
// shifted post-update states into one word.
type PCG128 struct {
	s [2]uint64
}

// NewPCG128 returns pcg128 seeded with the reference pair.
func NewPCG128() *PCG128 {
	return &PCG128{s: [2]uint64{SeedWord0, SeedWord1}}
}

func (g *PCG128) Uint64() uint64 {
	g.s[0] = g.s[0]*pcgMul + pcgInc0
	g.s[1] = g.s[1]*pcgMul + pcgInc0
	return pcgShift(g.s[0])<<32 | uint64(uint32(pcgShift(g.s[1])))
}

// SPCG64 is PCG128 with distinct increments per word, whose output is
// taken from the state before the update.
type SPCG64 struct {
	s [2]uint64
}

// NewSPCG64 returns spcg64 seeded with the reference pair.
func NewSPCG64() *SPCG64 {
	return &SPCG64{s: [2]uint64{SeedWord0, SeedWord1}}
}

func (g *SPCG64) Uint64() uint64 {
	p0, p1 := g.s[0], g.s[1]
	g.s[0] = p0*pcgMul + pcgInc0
	g.s[1] = p1*pcgMul + pcgInc1
	return pcgShift(p0)<<32 | uint64(uint32(pcgShift(p1)))
}

// PCG64 concatenates two 32-bit permuted outputs. Each half xor-shifts the
// old state, applies the variable shift and rotates right by the top five
// bits of the old state.
type PCG64 struct {
	s [2]uint64
}

// NewPCG64 returns pcg64 seeded with the reference pair.
func NewPCG64() *PCG64 {
	return &PCG64{s: [2]uint64{SeedWord0, SeedWord1}}
}

func pcgPermute(p uint64) uint32 {
	x := p ^ (p >> 18)
	v := uint32(x >> (29 - (p >> 61)))
	return bits.RotateLeft32(v, -int(p>>59))
}

func (g *PCG64) Uint64() uint64 {
	p0, p1 := g.s[0], g.s[1]
	g.s[0] = p0*pcg32Mul + pcg32Inc0
	g.s[1] = p1*pcg32Mul + pcg32Inc1
	return uint64(pcgPermute(p0))<<32 | uint64(pcgPermute(p1))
}
