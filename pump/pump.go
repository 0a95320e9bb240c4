// Package pump streams raw generator output, typically into external
// statistical test suites.
//
// The pump runs until its sink stops accepting words. That is the normal way
// for a stream to end and is never reported as a failure.
package pump

import (
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sot-tech/shootout/pkg/log"
	"github.com/sot-tech/shootout/prng"
	"github.com/sot-tech/shootout/registry"
)

var logger = log.NewLogger("pump")

func init() {
	prometheus.MustRegister(PromWordsTotal)
}

// PromWordsTotal counts words accepted by stream sinks, per generator.
var PromWordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "shootout_pump_words_total",
	Help: "Words streamed to sinks",
}, []string{"generator"})

// Pump writes words from g into s until s rejects one and returns the number
// of accepted words.
func Pump(g prng.Generator, s Sink) (n uint64) {
	for s.Write(g.Uint64()) {
		n++
	}
	return
}

// Summary describes a finished stream.
type Summary struct {
	Index  int
	Name   string
	Words  uint64
	Digest uint64
	// Err is the write error which closed the sink, nil if the stream ended
	// by reaching its limit.
	Err error
}

// Stream instantiates generator index and pumps it into w as little-endian
// words. limit > 0 ends the stream after limit words.
// The only error returned is an invalid index; the sink's own error is kept
// in Summary.Err.
func Stream(index int, w io.Writer, limit uint64) (sum Summary, err error) {
	h, err := registry.Instantiate(index)
	if err != nil {
		return
	}
	ws := NewWriterSink(w)
	var s Sink = ws
	if limit > 0 {
		s = NewLimitSink(s, limit)
	}
	ds := NewDigestSink(s)
	logger.Debug().Str("generator", h.Name).Uint64("limit", limit).Msg("stream started")

	sum = Summary{Index: index, Name: h.Name, Words: Pump(h, ds), Digest: ds.Sum64(), Err: ws.Err()}
	PromWordsTotal.WithLabelValues(h.Name).Add(float64(sum.Words))
	logger.Info().
		Str("generator", h.Name).
		Uint64("words", sum.Words).
		Str("digest", strconv.FormatUint(sum.Digest, 16)).
		AnErr("closedBy", sum.Err).
		Msg("stream finished")
	return
}
