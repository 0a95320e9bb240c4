package prng

// xoshiro256 holds the state shared by xoshiro256** and xoshiro256++.
type xoshiro256 struct {
	s [4]uint64
}

// seed fills the state from splitmix64 started at SeedWord0, as recommended
// by the xoshiro authors.
func (x *xoshiro256) seed() {
	sm := SeedWord0
	for i := range x.s {
		x.s[i], sm = SplitMix64(sm)
	}
}

func (x *xoshiro256) advance() {
	t := x.s[1] << 17
	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]
	x.s[2] ^= t
	x.s[3] = rotl(x.s[3], 45)
}

// Xoshiro256StarStar is the xoshiro256** generator.
// see https://prng.di.unimi.it/xoshiro256starstar.c
type Xoshiro256StarStar struct {
	xoshiro256
}

// NewXoshiro256StarStar returns a seeded xoshiro256**.
func NewXoshiro256StarStar() *Xoshiro256StarStar {
	g := new(Xoshiro256StarStar)
	g.seed()
	return g
}

func (g *Xoshiro256StarStar) Uint64() uint64 {
	r := rotl(g.s[1]*5, 7) * 9
	g.advance()
	return r
}

// Xoshiro256PlusPlus is the xoshiro256++ generator.
// see https://prng.di.unimi.it/xoshiro256plusplus.c
type Xoshiro256PlusPlus struct {
	xoshiro256
}

// NewXoshiro256PlusPlus returns a seeded xoshiro256++.
func NewXoshiro256PlusPlus() *Xoshiro256PlusPlus {
	g := new(Xoshiro256PlusPlus)
	g.seed()
	return g
}

func (g *Xoshiro256PlusPlus) Uint64() uint64 {
	r := rotl(g.s[0]+g.s[3], 23) + g.s[0]
	g.advance()
	return r
}
