// Package blowfish implements the Blowfish block cipher with a selectable
// number of Feistel rounds.
//
// The key schedule is the standard one and always uses the full 16 rounds,
// so reduced-round encryption operates on exactly the same subkeys and
// S-boxes as the full cipher. Blocks are handled as two 32-bit halves.
package blowfish

import "strconv"

const (
	// BlockSize is the Blowfish block size in bytes.
	BlockSize = 8

	// MaxKeySize is the largest accepted key, in bytes. Only the first 56
	// bytes affect every bit of every subkey.
	MaxKeySize = 72

	// FastRounds is the reduced round count.
	FastRounds = 4

	// FullRounds is the standard round count.
	FullRounds = 16
)

// KeySizeError is returned by NewCipher for keys outside 1..MaxKeySize bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "blowfish: invalid key size " + strconv.Itoa(int(k))
}

// Cipher is an expanded Blowfish key. It is never modified after NewCipher.
type Cipher struct {
	p [18]uint32
	s [4][256]uint32
}

// NewCipher expands key into a Cipher.
func NewCipher(key []byte) (*Cipher, error) {
	if k := len(key); k < 1 || k > MaxKeySize {
		return nil, KeySizeError(k)
	}
	c := &Cipher{p: initP, s: initS}
	c.expandKey(key)
	return c, nil
}

func (c *Cipher) expandKey(key []byte) {
	j := 0
	for i := range c.p {
		var d uint32
		for k := 0; k < 4; k++ {
			d = d<<8 | uint32(key[j])
			if j++; j >= len(key) {
				j = 0
			}
		}
		c.p[i] ^= d
	}

	var l, r uint32
	for i := 0; i < len(c.p); i += 2 {
		l, r = c.Encrypt(l, r, FullRounds)
		c.p[i], c.p[i+1] = l, r
	}
	for b := range c.s {
		for i := 0; i < len(c.s[b]); i += 2 {
			l, r = c.Encrypt(l, r, FullRounds)
			c.s[b][i], c.s[b][i+1] = l, r
		}
	}
}

func (c *Cipher) f(x uint32) uint32 {
	return ((c.s[0][x>>24] + c.s[1][byte(x>>16)]) ^ c.s[2][byte(x>>8)]) + c.s[3][byte(x)]
}

// Encrypt encrypts the block (l, r) with the given number of rounds and
// returns the resulting halves. rounds must be even and at most FullRounds.
// The output whitening always uses the last two subkeys, so with FullRounds
// the result is standard Blowfish.
func (c *Cipher) Encrypt(l, r uint32, rounds int) (uint32, uint32) {
	if rounds <= 0 || rounds > FullRounds || rounds&1 != 0 {
		panic("blowfish: invalid round count " + strconv.Itoa(rounds))
	}
	for i := 0; i < rounds; i += 2 {
		l ^= c.p[i]
		r ^= c.f(l) ^ c.p[i+1]
		l ^= c.f(r)
	}
	return r ^ c.p[17], l ^ c.p[16]
}
