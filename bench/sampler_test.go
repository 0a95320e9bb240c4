package bench

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/sot-tech/shootout/pkg/conf"
	"github.com/sot-tech/shootout/prng"
	"github.com/sot-tech/shootout/registry"
)

var quickConfig = Config{
	Window:      time.Millisecond,
	Samples:     1,
	Unroll:      DefaultUnroll,
	BufferWords: 1024,
}

func newSampler(t *testing.T, cfg Config) *Sampler {
	t.Helper()
	s, err := NewSampler(cfg, NewScratch(cfg))
	require.NoError(t, err)
	return s
}

func TestNewSamplerEmptyScratch(t *testing.T) {
	_, err := NewSampler(quickConfig, nil)
	require.ErrorIs(t, err, ErrEmptyScratch)
}

func TestConfigValidate(t *testing.T) {
	require.Equal(t, DefaultConfig, Config{}.Validate())
	require.Equal(t, quickConfig, quickConfig.Validate())
	require.Equal(t, DefaultConfig, Config{Window: -1, Samples: -1, Unroll: -1, BufferWords: -1}.Validate())
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(conf.MapConfig{"window": "250ms", "samples": 3, "unroll": 16})
	require.NoError(t, err)
	require.Equal(t, Config{
		Window:      250 * time.Millisecond,
		Samples:     3,
		Unroll:      16,
		BufferWords: DefaultBufferWords,
	}, cfg)

	cfg, err = NewConfig(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig, cfg)

	_, err = NewConfig(conf.MapConfig{"window": "soon"})
	require.Error(t, err)
}

func TestResultRate(t *testing.T) {
	r := Result{Best: 1024 * 1024, Window: time.Second}
	require.InDelta(t, 8.0, r.Rate(), 1e-9)
	require.InDelta(t, 8.0*1024*1024, r.BytesPerSecond(), 1e-6)

	r.Window = 500 * time.Millisecond
	require.InDelta(t, 16.0, r.Rate(), 1e-9)
}

func TestSampleCountsWholeUnrolls(t *testing.T) {
	cfg := quickConfig
	cfg.Window = 5 * time.Millisecond
	cfg.Unroll = 7
	s := newSampler(t, cfg)
	c := s.Sample(prng.NewSplitMix())
	require.NotZero(t, c)
	require.Zero(t, c%7)
}

func TestSampleFillsScratch(t *testing.T) {
	cfg := quickConfig
	cfg.Window = 5 * time.Millisecond
	scratch := make([]uint64, 3)
	s, err := NewSampler(cfg, scratch)
	require.NoError(t, err)
	s.Sample(prng.NewXorShift64Star())
	require.NotEqual(t, []uint64{0, 0, 0}, scratch)
}

func TestBaselineThroughputBounds(t *testing.T) {
	cfg := quickConfig
	cfg.Window = 20 * time.Millisecond
	cfg.Samples = 3
	s := newSampler(t, cfg)
	res, err := s.Run(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, "baseline", res.Name)
	require.Positive(t, res.Rate())
	// a single core cannot store 10^11 words per second
	require.Less(t, res.BytesPerSecond(), 8e11)
	require.Positive(t, testutil.ToFloat64(PromBestRate.WithLabelValues("baseline")))
}

func TestRunInvalidIndex(t *testing.T) {
	s := newSampler(t, quickConfig)
	_, err := s.Run(context.Background(), registry.Count())
	require.ErrorIs(t, err, registry.ErrIndexOutOfRange)
}

func TestRunCancelled(t *testing.T) {
	s := newSampler(t, quickConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Run(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunAll(t *testing.T) {
	s := newSampler(t, quickConfig)
	var got []Result
	err := s.RunAll(context.Background(), func(r Result) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, registry.Count())
	for i, r := range got {
		name, _ := registry.Name(i)
		require.Equal(t, i, r.Index)
		require.Equal(t, name, r.Name)
		require.GreaterOrEqual(t, r.Rate(), 0.0)
	}
}

func TestRunRange(t *testing.T) {
	s := newSampler(t, quickConfig)
	var idx []int
	require.NoError(t, s.RunRange(context.Background(), 2, 4, func(r Result) error {
		idx = append(idx, r.Index)
		return nil
	}))
	require.Equal(t, []int{2, 3, 4}, idx)

	err := s.RunRange(context.Background(), 0, registry.Count(), func(Result) error { return nil })
	require.ErrorIs(t, err, registry.ErrIndexOutOfRange)
}

func TestRunRangeStopsOnCallbackError(t *testing.T) {
	s := newSampler(t, quickConfig)
	calls := 0
	err := s.RunAll(context.Background(), func(Result) error {
		calls++
		return context.DeadlineExceeded
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, calls)
}
