// Package prng contains the generator kernels: pure arithmetic generators
// and generators built on top of block and stream ciphers.
//
// Every generator is seeded from a fixed literal so that output sequences
// are reproducible across implementations. Nothing here is safe for
// concurrent use; each generator owns its state exclusively.
package prng

import "math/bits"

// Generator produces the next 64-bit pseudorandom word from its state.
type Generator interface {
	Uint64() uint64
}

// Reference seed words shared by most of the arithmetic generators.
const (
	SeedWord0 uint64 = 0xdeadbeefcafebabe
	SeedWord1 uint64 = 0x8badf00dbaada555
)

// rotl rotates x left by k modulo 64.
func rotl(x uint64, k uint) uint64 {
	return bits.RotateLeft64(x, int(k))
}

// Baseline always returns zero. It measures loop and dispatch overhead.
type Baseline struct{}

// NewBaseline returns a Baseline generator.
func NewBaseline() *Baseline {
	return &Baseline{}
}

// Uint64 returns 0.
func (*Baseline) Uint64() uint64 {
	return 0
}
