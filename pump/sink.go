package pump

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Sink accepts generated words one at a time.
// Write returns false once the sink cannot accept any more words; the
// rejected word is not considered written.
type Sink interface {
	Write(word uint64) bool
}

// WriterSink writes every word as 8 little-endian bytes into an io.Writer,
// one Write call per word. Any write error closes the sink.
type WriterSink struct {
	w   io.Writer
	buf [8]byte
	err error
}

// NewWriterSink creates WriterSink over w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Write(word uint64) bool {
	if s.err != nil {
		return false
	}
	binary.LittleEndian.PutUint64(s.buf[:], word)
	var n int
	if n, s.err = s.w.Write(s.buf[:]); s.err == nil && n < len(s.buf) {
		s.err = io.ErrShortWrite
	}
	return s.err == nil
}

// Err returns the error which closed the sink, if any.
func (s *WriterSink) Err() error {
	return s.err
}

// DigestSink computes xxhash64 over the little-endian bytes of every word
// accepted by the wrapped sink.
type DigestSink struct {
	next Sink
	d    *xxhash.Digest
	buf  [8]byte
}

// NewDigestSink wraps next.
func NewDigestSink(next Sink) *DigestSink {
	return &DigestSink{next: next, d: xxhash.New()}
}

func (s *DigestSink) Write(word uint64) bool {
	if !s.next.Write(word) {
		return false
	}
	binary.LittleEndian.PutUint64(s.buf[:], word)
	_, _ = s.d.Write(s.buf[:])
	return true
}

// Sum64 returns the digest of the words accepted so far.
func (s *DigestSink) Sum64() uint64 {
	return s.d.Sum64()
}

// LimitSink closes after n words have been accepted by the wrapped sink.
type LimitSink struct {
	next Sink
	left uint64
}

// NewLimitSink wraps next, accepting at most n words.
func NewLimitSink(next Sink, n uint64) *LimitSink {
	return &LimitSink{next: next, left: n}
}

func (s *LimitSink) Write(word uint64) bool {
	if s.left == 0 || !s.next.Write(word) {
		return false
	}
	s.left--
	return true
}
