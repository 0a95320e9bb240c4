// Package registry holds the closed, ordered catalog of generators.
//
// A generator's index is its public selector and never changes while the
// process runs. Instantiating an index always yields a freshly seeded
// generator which shares no state with any other instance.
package registry

import (
	"errors"
	"fmt"

	"github.com/zeebo/errs"

	"github.com/sot-tech/shootout/pkg/blowfish"
	"github.com/sot-tech/shootout/prng"
)

// Error is the class of errors returned by the registry.
var Error = errs.Class("registry")

var (
	// ErrIndexOutOfRange is returned for an index outside [0, Count()).
	ErrIndexOutOfRange = errors.New("generator index out of range")

	// ErrUnknownName is returned by Lookup for a name not in the catalog.
	ErrUnknownName = errors.New("unknown generator name")
)

// Descriptor binds a display name to a generator constructor.
type Descriptor struct {
	Name string
	New  func() prng.Generator
}

// Handle is a freshly seeded generator together with its catalog entry.
type Handle struct {
	Index int
	Name  string
	prng.Generator
}

var catalog = [...]Descriptor{
	{"baseline", func() prng.Generator { return prng.NewBaseline() }},
	{"xorshift64star", func() prng.Generator { return prng.NewXorShift64Star() }},
	{"xorshift128plus", func() prng.Generator { return prng.NewXorShift128Plus() }},
	{"xorshift1024star", func() prng.Generator { return prng.NewXorShift1024Star() }},
	{"xoroshiro128plus", func() prng.Generator { return prng.NewXoRoShiRo128Plus() }},
	{"xoroshiro128plusv2", func() prng.Generator { return prng.NewXoRoShiRo128PlusV2() }},
	{"splitmix64", func() prng.Generator { return prng.NewSplitMix() }},
	{"xoshiro256starstar", func() prng.Generator { return prng.NewXoshiro256StarStar() }},
	{"xoshiro256plusplus", func() prng.Generator { return prng.NewXoshiro256PlusPlus() }},
	{"mt64", func() prng.Generator { return prng.NewMT64() }},
	{"pcg128", func() prng.Generator { return prng.NewPCG128() }},
	{"spcg64", func() prng.Generator { return prng.NewSPCG64() }},
	{"pcg64", func() prng.Generator { return prng.NewPCG64() }},
	{"msws64", func() prng.Generator { return prng.NewMSWS64() }},
	{"blowfishcbc16", func() prng.Generator { return prng.NewBlowfishCBC(blowfish.FullRounds) }},
	{"blowfishcbc4", func() prng.Generator { return prng.NewBlowfishCBC(blowfish.FastRounds) }},
	{"blowfishctr16", func() prng.Generator { return prng.NewBlowfishCTR(blowfish.FullRounds) }},
	{"blowfishctr4", func() prng.Generator { return prng.NewBlowfishCTR(blowfish.FastRounds) }},
	{"rc4", func() prng.Generator { return prng.NewRC4() }},
	{"chacha20", func() prng.Generator { return prng.NewChaCha20() }},
}

// Count returns the number of registered generators.
func Count() int {
	return len(catalog)
}

func checkIndex(i int) error {
	if i < 0 || i >= len(catalog) {
		return Error.Wrap(fmt.Errorf("%w: %d, valid range is [0, %d)", ErrIndexOutOfRange, i, len(catalog)))
	}
	return nil
}

// Name returns the display name of generator i.
func Name(i int) (string, error) {
	if err := checkIndex(i); err != nil {
		return "", err
	}
	return catalog[i].Name, nil
}

// Instantiate returns a freshly seeded generator i.
func Instantiate(i int) (Handle, error) {
	if err := checkIndex(i); err != nil {
		return Handle{}, err
	}
	d := catalog[i]
	return Handle{Index: i, Name: d.Name, Generator: d.New()}, nil
}

// MustInstantiate is Instantiate which panics on an invalid index.
// Use it only with indices already validated against Count.
func MustInstantiate(i int) Handle {
	h, err := Instantiate(i)
	if err != nil {
		panic(err)
	}
	return h
}

// Lookup returns the index of the generator named name.
func Lookup(name string) (int, error) {
	for i := range catalog {
		if catalog[i].Name == name {
			return i, nil
		}
	}
	return -1, Error.Wrap(fmt.Errorf("%w: %q", ErrUnknownName, name))
}

// Descriptors returns a copy of the catalog in selection order.
func Descriptors() []Descriptor {
	return append([]Descriptor(nil), catalog[:]...)
}
