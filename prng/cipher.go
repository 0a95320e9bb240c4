package prng

import (
	"crypto/rc4"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/sot-tech/shootout/pkg/blowfish"
)

// Cipher keys. The feedback key is a single NUL byte, the others carry their
// terminating NUL as the fifth byte.
const (
	FeedbackKey = "\x00"
	CounterKey  = "seed\x00"
	StreamKey   = "seed\x00"
	ChaChaKey   = "seed"
)

func mustBlowfish(key string) *blowfish.Cipher {
	c, err := blowfish.NewCipher([]byte(key))
	if err != nil {
		panic(err)
	}
	return c
}

// BlowfishCBC encrypts its own previous output: the block starts at zero
// and every call replaces it with its encryption.
type BlowfishCBC struct {
	c      *blowfish.Cipher
	l, r   uint32
	rounds int
}

// NewBlowfishCBC returns the feedback generator with the given round count.
func NewBlowfishCBC(rounds int) *BlowfishCBC {
	return &BlowfishCBC{c: mustBlowfish(FeedbackKey), rounds: rounds}
}

func (g *BlowfishCBC) Uint64() uint64 {
	g.l, g.r = g.c.Encrypt(g.l, g.r, g.rounds)
	return uint64(g.r)<<32 | uint64(g.l)
}

// BlowfishCTR encrypts a 64-bit counter, high half on the left.
type BlowfishCTR struct {
	c      *blowfish.Cipher
	ctr    uint64
	rounds int
}

// NewBlowfishCTR returns the counter generator with the given round count.
func NewBlowfishCTR(rounds int) *BlowfishCTR {
	return &BlowfishCTR{c: mustBlowfish(CounterKey), rounds: rounds}
}

func (g *BlowfishCTR) Uint64() uint64 {
	l, r := g.c.Encrypt(uint32(g.ctr>>32), uint32(g.ctr), g.rounds)
	g.ctr++
	return uint64(r)<<32 | uint64(l)
}

// RC4 draws eight keystream bytes per word, first byte lowest.
type RC4 struct {
	c   *rc4.Cipher
	buf [8]byte
}

// NewRC4 returns the RC4 keystream generator keyed with StreamKey.
func NewRC4() *RC4 {
	c, err := rc4.NewCipher([]byte(StreamKey))
	if err != nil {
		panic(err)
	}
	return &RC4{c: c}
}

func (g *RC4) Uint64() uint64 {
	clear(g.buf[:])
	g.c.XORKeyStream(g.buf[:], g.buf[:])
	return binary.LittleEndian.Uint64(g.buf[:])
}

// ChaCha20 draws eight keystream bytes per word from ChaCha20 with
// ChaChaKey zero-padded to 32 bytes and an all-zero nonce.
type ChaCha20 struct {
	c   *chacha20.Cipher
	buf [8]byte
}

// NewChaCha20 returns the ChaCha20 keystream generator.
func NewChaCha20() *ChaCha20 {
	var key [chacha20.KeySize]byte
	var nonce [chacha20.NonceSize]byte
	copy(key[:], ChaChaKey)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic(err)
	}
	return &ChaCha20{c: c}
}

func (g *ChaCha20) Uint64() uint64 {
	clear(g.buf[:])
	g.c.XORKeyStream(g.buf[:], g.buf[:])
	return binary.LittleEndian.Uint64(g.buf[:])
}
