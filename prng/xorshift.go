package prng

// XorShift64S calculates predictable pseudorandom number
// with XOR/Shift 64* (xorshift64*) algorithm.
// Returns the output and the new state.
// see https://vigna.di.unimi.it/ftp/papers/xorshift.pdf
func XorShift64S(s uint64) (uint64, uint64) {
	s ^= s >> 12
	s ^= s << 25
	s ^= s >> 27
	return s * 0x2545f4914f6cdd1d, s
}

// XorShift128P calculates predictable pseudorandom number
// with XOR/Shift 128+ (xorshift128+) algorithm.
// see https://arxiv.org/abs/1404.0390
func XorShift128P(s0, s1 uint64) (uint64, uint64, uint64) {
	x, y := s0, s1
	x ^= x << 23
	s1 = x ^ y ^ (x >> 17) ^ (y >> 26)
	return s1 + y, y, s1
}

// XorShift64Star is the xorshift64* generator.
type XorShift64Star struct {
	s uint64
}

// NewXorShift64Star returns xorshift64* seeded with SeedWord0.
func NewXorShift64Star() *XorShift64Star {
	return &XorShift64Star{s: SeedWord0}
}

func (g *XorShift64Star) Uint64() (r uint64) {
	r, g.s = XorShift64S(g.s)
	return
}

// XorShift128Plus is the xorshift128+ generator.
type XorShift128Plus struct {
	s0, s1 uint64
}

// NewXorShift128Plus returns xorshift128+ seeded with the reference pair.
func NewXorShift128Plus() *XorShift128Plus {
	return &XorShift128Plus{s0: SeedWord0, s1: SeedWord1}
}

func (g *XorShift128Plus) Uint64() (r uint64) {
	r, g.s0, g.s1 = XorShift128P(g.s0, g.s1)
	return
}

const xorShift1024Mul = 1181783497276652981

// XorShift1024Star is the xorshift1024* generator: sixteen words of state
// and a rotating index.
type XorShift1024Star struct {
	s [16]uint64
	p int
}

// NewXorShift1024Star expands the reference pair into sixteen words with
// xorshift64*. Word i is drawn from the stream seeded by the pair element
// i&1, so both halves of the pair advance eight times.
func NewXorShift1024Star() *XorShift1024Star {
	g := new(XorShift1024Star)
	seed := [2]uint64{SeedWord0, SeedWord1}
	for i := range g.s {
		g.s[i], seed[i&1] = XorShift64S(seed[i&1])
	}
	return g
}

func (g *XorShift1024Star) Uint64() uint64 {
	s0 := g.s[g.p]
	g.p = (g.p + 1) & 15
	s1 := g.s[g.p]
	s1 ^= s1 << 31
	g.s[g.p] = s1 ^ s0 ^ (s1 >> 11) ^ (s0 >> 30)
	return g.s[g.p] * xorShift1024Mul
}
