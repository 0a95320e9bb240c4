package registry

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	require.Equal(t, 20, Count())
	seen := make(map[string]int)
	for i, d := range Descriptors() {
		_, dup := seen[d.Name]
		require.False(t, dup, "duplicate name %s", d.Name)
		seen[d.Name] = i
		require.NotNil(t, d.New)
	}
	name, err := Name(0)
	require.NoError(t, err)
	require.Equal(t, "baseline", name)
}

func TestBounds(t *testing.T) {
	_, err := Instantiate(Count())
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.True(t, Error.Has(err))

	_, err = Name(Count())
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Instantiate(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	h, err := Instantiate(Count() - 1)
	require.NoError(t, err)
	require.Equal(t, Count()-1, h.Index)
	require.Equal(t, "chacha20", h.Name)

	require.Panics(t, func() { MustInstantiate(Count()) })
}

func TestLookup(t *testing.T) {
	for i, d := range Descriptors() {
		idx, err := Lookup(d.Name)
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
	_, err := Lookup("dual_ec_drbg")
	require.ErrorIs(t, err, ErrUnknownName)
	require.True(t, Error.Has(err))
}

func TestInstancesIndependent(t *testing.T) {
	for i := 0; i < Count(); i++ {
		a, b := MustInstantiate(i), MustInstantiate(i)
		// advance a alone first: b must not be affected
		first := make([]uint64, 64)
		for j := range first {
			first[j] = a.Uint64()
		}
		for j := range first {
			require.Equal(t, first[j], b.Uint64(), "%s word %d", a.Name, j)
		}
	}
}

func TestDescriptorsCopy(t *testing.T) {
	d := Descriptors()
	d[0].Name = "changed"
	name, err := Name(0)
	require.NoError(t, err)
	require.Equal(t, "baseline", name)
}

func TestGoldenPrefix(t *testing.T) {
	for _, d := range Descriptors() {
		f, err := os.Open(filepath.Join("..", "prng", "testdata", d.Name+".golden"))
		require.NoError(t, err, d.Name)
		g := d.New()
		s := bufio.NewScanner(f)
		for n := 0; n < 16 && s.Scan(); n++ {
			w, err := strconv.ParseUint(s.Text(), 16, 64)
			require.NoError(t, err)
			require.Equal(t, w, g.Uint64(), "%s word %d", d.Name, n)
		}
		_ = f.Close()
	}
}
