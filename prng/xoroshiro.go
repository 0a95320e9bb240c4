package prng

// XoRoShiRo128P calculates predictable pseudorandom number
// with XOR/rotate/shift/rotate 128+ algorithm, 2016 constants (55, 14, 36).
// The output is the sum of the state before the update.
// see https://xoroshiro.di.unimi.it/xoroshiro128plus.c
func XoRoShiRo128P(s0, s1 uint64) (uint64, uint64, uint64) {
	r := s0 + s1
	s1 ^= s0
	s0 = rotl(s0, 55) ^ s1 ^ (s1 << 14)
	s1 = rotl(s1, 36)
	return r, s0, s1
}

// XoRoShiRo128P2 is XoRoShiRo128P with the 2018 constants (24, 16, 37).
// see https://prng.di.unimi.it/xoroshiro128plus.c
func XoRoShiRo128P2(s0, s1 uint64) (uint64, uint64, uint64) {
	r := s0 + s1
	s1 ^= s0
	s0 = rotl(s0, 24) ^ s1 ^ (s1 << 16)
	s1 = rotl(s1, 37)
	return r, s0, s1
}

// XoRoShiRo128Plus is xoroshiro128+ with the original constants.
type XoRoShiRo128Plus struct {
	s0, s1 uint64
}

// NewXoRoShiRo128Plus returns xoroshiro128+ seeded with the reference pair.
func NewXoRoShiRo128Plus() *XoRoShiRo128Plus {
	return &XoRoShiRo128Plus{s0: SeedWord0, s1: SeedWord1}
}

func (g *XoRoShiRo128Plus) Uint64() (r uint64) {
	r, g.s0, g.s1 = XoRoShiRo128P(g.s0, g.s1)
	return
}

// XoRoShiRo128PlusV2 is xoroshiro128+ with the updated constants.
type XoRoShiRo128PlusV2 struct {
	s0, s1 uint64
}

// NewXoRoShiRo128PlusV2 returns updated xoroshiro128+ seeded with the
// reference pair.
func NewXoRoShiRo128PlusV2() *XoRoShiRo128PlusV2 {
	return &XoRoShiRo128PlusV2{s0: SeedWord0, s1: SeedWord1}
}

func (g *XoRoShiRo128PlusV2) Uint64() (r uint64) {
	r, g.s0, g.s1 = XoRoShiRo128P2(g.s0, g.s1)
	return
}
