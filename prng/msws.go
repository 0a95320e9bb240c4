package prng

// mswsWeyl is the Weyl sequence increment; it must be odd.
const mswsWeyl = 0xb5ad4eceda1ce2a9

// MSWS64 is the middle-square Weyl sequence generator. Each word is made of
// two consecutive 32-bit outputs, the first one in the high half.
// see https://arxiv.org/abs/1704.00358
type MSWS64 struct {
	x, w uint64
}

// NewMSWS64 returns msws64 with zero square and Weyl words.
func NewMSWS64() *MSWS64 {
	return &MSWS64{}
}

func (g *MSWS64) next32() uint32 {
	g.x *= g.x
	g.w += mswsWeyl
	g.x += g.w
	g.x = (g.x >> 32) | (g.x << 32)
	return uint32(g.x)
}

func (g *MSWS64) Uint64() uint64 {
	hi := g.next32()
	return uint64(hi)<<32 | uint64(g.next32())
}
