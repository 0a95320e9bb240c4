// Package bench measures generator throughput.
//
// A sample runs one generator for a fixed wall-clock window and counts the
// words produced. Every word is stored into a caller-owned scratch buffer so
// the call cannot be optimized away. The stop flag is checked once per
// Config.Unroll words, so a window may overrun by up to Unroll-1 words plus
// timer latency; the overrun is not corrected for.
package bench

import (
	"context"
	"errors"
	"time"

	"github.com/sot-tech/shootout/pkg/alarm"
	"github.com/sot-tech/shootout/pkg/log"
	"github.com/sot-tech/shootout/prng"
	"github.com/sot-tech/shootout/registry"
)

var logger = log.NewLogger("bench")

// ErrEmptyScratch is returned by NewSampler for a zero-length scratch buffer.
var ErrEmptyScratch = errors.New("scratch buffer must hold at least one word")

// Result is the outcome of sampling one generator.
type Result struct {
	Index int
	Name  string
	// Best is the largest word count observed in a single window.
	Best uint64
	// Window is the nominal length of every sample.
	Window time.Duration
}

// BytesPerSecond returns the best throughput in bytes per second.
func (r Result) BytesPerSecond() float64 {
	return 8 * float64(r.Best) / r.Window.Seconds()
}

// Rate returns the best throughput in MB/s (2^20 bytes).
func (r Result) Rate() float64 {
	return r.BytesPerSecond() / 1024 / 1024
}

// Sampler runs best-of-N throughput measurements, one generator at a time.
// It is not safe for concurrent use since all runs share the scratch buffer.
type Sampler struct {
	cfg     Config
	scratch []uint64
}

// NewSampler creates Sampler with validated cfg writing into scratch.
func NewSampler(cfg Config, scratch []uint64) (*Sampler, error) {
	if len(scratch) == 0 {
		return nil, ErrEmptyScratch
	}
	return &Sampler{cfg: cfg.Validate(), scratch: scratch}, nil
}

// Config returns the sampler configuration.
func (s *Sampler) Config() Config {
	return s.cfg
}

// Sample runs g for one window and returns the number of words produced.
func (s *Sampler) Sample(g prng.Generator) (count uint64) {
	buf, unroll := s.scratch, s.cfg.Unroll
	j := 0
	a := alarm.Set(s.cfg.Window)
	defer a.Stop()
	for !a.Rung() {
		for i := 0; i < unroll; i++ {
			buf[j] = g.Uint64()
			if j++; j == len(buf) {
				j = 0
			}
		}
		count += uint64(unroll)
	}
	return
}

// Run samples generator index Config.Samples times, each time from a freshly
// seeded instance, and returns the best sample.
// ctx is checked between samples only.
func (s *Sampler) Run(ctx context.Context, index int) (res Result, err error) {
	name, err := registry.Name(index)
	if err != nil {
		return
	}
	res = Result{Index: index, Name: name, Window: s.cfg.Window}
	for i := 0; i < s.cfg.Samples; i++ {
		if err = ctx.Err(); err != nil {
			return
		}
		h := registry.MustInstantiate(index)
		c := s.Sample(h)
		PromSampleWords.WithLabelValues(name).Observe(float64(c))
		logger.Debug().
			Str("generator", name).
			Int("sample", i).
			Uint64("words", c).
			Msg("sample complete")
		if c > res.Best {
			res.Best = c
		}
	}
	PromBestRate.WithLabelValues(name).Set(res.Rate())
	logger.Info().
		Str("generator", name).
		Uint64("best", res.Best).
		Float64("rate", res.Rate()).
		Msg("generator measured")
	return
}

// RunRange measures generators from..to inclusive in registry order, passing
// each result to fn as soon as it is available. Iteration stops at the
// first error returned by Run or fn.
func (s *Sampler) RunRange(ctx context.Context, from, to int, fn func(Result) error) error {
	if _, err := registry.Name(from); err != nil {
		return err
	}
	if _, err := registry.Name(to); err != nil {
		return err
	}
	for i := from; i <= to; i++ {
		res, err := s.Run(ctx, i)
		if err != nil {
			return err
		}
		if err = fn(res); err != nil {
			return err
		}
	}
	return nil
}

// RunAll measures every registered generator.
func (s *Sampler) RunAll(ctx context.Context, fn func(Result) error) error {
	return s.RunRange(ctx, 0, registry.Count()-1, fn)
}
