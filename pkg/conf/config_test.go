package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Window  time.Duration `cfg:"window"`
	Samples int           `cfg:"samples"`
}

func TestUnmarshal(t *testing.T) {
	var c testConfig
	require.NoError(t, MapConfig{"window": "250ms", "samples": 3}.Unmarshal(&c))
	require.Equal(t, testConfig{Window: 250 * time.Millisecond, Samples: 3}, c)

	c = testConfig{Samples: 5}
	require.NoError(t, MapConfig{}.Unmarshal(&c))
	require.Equal(t, 5, c.Samples)

	require.ErrorIs(t, MapConfig(nil).Unmarshal(&c), ErrNilConfigMap)
}

func TestWith(t *testing.T) {
	base := MapConfig{"window": "1s", "samples": 8}
	m := base.With(MapConfig{"samples": 2})
	require.Equal(t, 2, m["samples"])
	require.Equal(t, "1s", m["window"])
	require.Equal(t, 8, base["samples"])

	require.Equal(t, MapConfig{"a": 1}, MapConfig(nil).With(MapConfig{"a": 1}))
}
