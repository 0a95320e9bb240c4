package blowfish

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	xbf "golang.org/x/crypto/blowfish"
)

func TestKnownAnswer(t *testing.T) {
	for _, tt := range []struct {
		key          []byte
		l, r         uint32
		wantL, wantR uint32
	}{
		{make([]byte, 8), 0, 0, 0x4ef99745, 0x6198dd78},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 0xffffffff, 0xffffffff, 0x51866fd5, 0xb85ecb8a},
	} {
		c, err := NewCipher(tt.key)
		require.NoError(t, err)
		l, r := c.Encrypt(tt.l, tt.r, FullRounds)
		require.Equal(t, tt.wantL, l)
		require.Equal(t, tt.wantR, r)
	}
}

func TestMatchesReference(t *testing.T) {
	keys := [][]byte{
		{0},
		[]byte("seed\x00"),
		[]byte("a moderately long key for the schedule"),
	}
	for _, key := range keys {
		c, err := NewCipher(key)
		require.NoError(t, err)
		ref, err := xbf.NewCipher(key)
		require.NoError(t, err)

		var src, dst [BlockSize]byte
		var l, r uint32
		for i := 0; i < 64; i++ {
			binary.BigEndian.PutUint32(src[:4], l)
			binary.BigEndian.PutUint32(src[4:], r)
			ref.Encrypt(dst[:], src[:])
			l, r = c.Encrypt(l, r, FullRounds)
			require.Equal(t, binary.BigEndian.Uint32(dst[:4]), l, "key %q block %d", key, i)
			require.Equal(t, binary.BigEndian.Uint32(dst[4:]), r, "key %q block %d", key, i)
		}
	}
}

func TestFastRoundsDiffer(t *testing.T) {
	c, err := NewCipher([]byte("seed\x00"))
	require.NoError(t, err)
	fl, fr := c.Encrypt(0, 1, FastRounds)
	sl, sr := c.Encrypt(0, 1, FullRounds)
	require.False(t, fl == sl && fr == sr)

	// schedule is untouched by encryption
	l2, r2 := c.Encrypt(0, 1, FastRounds)
	require.Equal(t, fl, l2)
	require.Equal(t, fr, r2)
}

func TestKeySize(t *testing.T) {
	_, err := NewCipher(nil)
	require.ErrorIs(t, err, KeySizeError(0))
	_, err = NewCipher(make([]byte, MaxKeySize+1))
	require.ErrorIs(t, err, KeySizeError(MaxKeySize+1))
	_, err = NewCipher(make([]byte, MaxKeySize))
	require.NoError(t, err)
}

func TestInvalidRounds(t *testing.T) {
	c, err := NewCipher([]byte{1})
	require.NoError(t, err)
	require.Panics(t, func() { c.Encrypt(0, 0, 3) })
	require.Panics(t, func() { c.Encrypt(0, 0, 18) })
}

func BenchmarkEncrypt4(b *testing.B) {
	c, _ := NewCipher([]byte{0})
	var l, r uint32
	for i := 0; i < b.N; i++ {
		l, r = c.Encrypt(l, r, FastRounds)
	}
	_, _ = l, r
}

func BenchmarkEncrypt16(b *testing.B) {
	c, _ := NewCipher([]byte{0})
	var l, r uint32
	for i := 0; i < b.N; i++ {
		l, r = c.Encrypt(l, r, FullRounds)
	}
	_, _ = l, r
}
