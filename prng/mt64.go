package prng

const (
	mtN         = 312
	mtM         = 156
	mtMatrixA   = 0xb5026f5aa96619e9
	mtUpperMask = 0xffffffff80000000
	mtLowerMask = 0x000000007fffffff
	mtInitMul   = 0x5851f42d4c957f2d
)

// MT64 is the 64-bit Mersenne Twister (MT19937-64).
type MT64 struct {
	v [mtN]uint64
	i int
}

// NewMT64 returns MT19937-64 seeded with SeedWord0.
func NewMT64() *MT64 {
	return NewMT64Seed(SeedWord0)
}

// NewMT64Seed returns MT19937-64 initialized with seed.
func NewMT64Seed(seed uint64) *MT64 {
	mt := &MT64{i: mtN}
	mt.v[0] = seed
	for i := 1; i < mtN; i++ {
		mt.v[i] = mtInitMul*(mt.v[i-1]^(mt.v[i-1]>>62)) + uint64(i)
	}
	return mt
}

func (mt *MT64) twist() {
	for i := 0; i < mtN; i++ {
		x := (mt.v[i] & mtUpperMask) | (mt.v[(i+1)%mtN] & mtLowerMask)
		xa := x >> 1
		if x&1 != 0 {
			xa ^= mtMatrixA
		}
		mt.v[i] = mt.v[(i+mtM)%mtN] ^ xa
	}
	mt.i = 0
}

func (mt *MT64) Uint64() uint64 {
	if mt.i >= mtN {
		mt.twist()
	}
	y := mt.v[mt.i]
	mt.i++
	y ^= (y >> 29) & 0x5555555555555555
	y ^= (y << 17) & 0x71d67fffeda60000
	y ^= (y << 37) & 0xfff7eee000000000
	y ^= y >> 43
	return y
}
