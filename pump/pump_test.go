package pump

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"github.com/sot-tech/shootout/prng"
	"github.com/sot-tech/shootout/registry"
)

// closingWriter accepts up to cap bytes and then fails like a closed pipe.
type closingWriter struct {
	bytes.Buffer
	cap int
}

func (w *closingWriter) Write(p []byte) (int, error) {
	if w.Len()+len(p) > w.cap {
		return 0, syscall.EPIPE
	}
	return w.Buffer.Write(p)
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func TestPumpStopsOnClosedSink(t *testing.T) {
	w := &closingWriter{cap: 80}
	s := NewWriterSink(w)
	n := Pump(prng.NewBaseline(), s)
	require.Equal(t, uint64(10), n)
	require.Equal(t, make([]byte, 80), w.Bytes())
	require.ErrorIs(t, s.Err(), syscall.EPIPE)
	require.False(t, s.Write(0))
}

func TestWriterSinkLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	require.True(t, s.Write(0x0102030405060708))
	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, buf.Bytes())
}

func TestWriterSinkShortWrite(t *testing.T) {
	s := NewWriterSink(shortWriter{})
	require.False(t, s.Write(1))
	require.ErrorIs(t, s.Err(), io.ErrShortWrite)
}

func TestLimitAndDigest(t *testing.T) {
	var buf bytes.Buffer
	ds := NewDigestSink(NewLimitSink(NewWriterSink(&buf), 100))
	n := Pump(prng.NewSplitMix(), ds)
	require.Equal(t, uint64(100), n)
	require.Equal(t, 800, buf.Len())
	require.Equal(t, xxhash.Sum64(buf.Bytes()), ds.Sum64())

	g := prng.NewSplitMix()
	for i := 0; i < 100; i++ {
		require.Equal(t, g.Uint64(), binary.LittleEndian.Uint64(buf.Bytes()[i*8:]))
	}
}

func TestStreamBaseline(t *testing.T) {
	w := &closingWriter{cap: 80}
	sum, err := Stream(0, w, 0)
	require.NoError(t, err)
	require.Equal(t, "baseline", sum.Name)
	require.Equal(t, uint64(10), sum.Words)
	require.Equal(t, make([]byte, 80), w.Bytes())
	require.True(t, errors.Is(sum.Err, syscall.EPIPE))
	require.Equal(t, xxhash.Sum64(make([]byte, 80)), sum.Digest)
}

func TestStreamLimit(t *testing.T) {
	var buf bytes.Buffer
	sum, err := Stream(1, &buf, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(3), sum.Words)
	require.NoError(t, sum.Err)

	g := prng.NewXorShift64Star()
	for i := 0; i < 3; i++ {
		require.Equal(t, g.Uint64(), binary.LittleEndian.Uint64(buf.Bytes()[i*8:]))
	}
}

func TestStreamInvalidIndex(t *testing.T) {
	_, err := Stream(registry.Count(), io.Discard, 1)
	require.ErrorIs(t, err, registry.ErrIndexOutOfRange)
}
