package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRings(t *testing.T) {
	a := Set(10 * time.Millisecond)
	defer a.Stop()
	require.False(t, a.Rung())
	require.Eventually(t, a.Rung, time.Second, time.Millisecond)
}

func TestImmediate(t *testing.T) {
	a := Set(0)
	require.True(t, a.Rung())
	a.Stop()
	a.Stop()
}

func TestStop(t *testing.T) {
	a := Set(20 * time.Millisecond)
	a.Stop()
	time.Sleep(50 * time.Millisecond)
	require.False(t, a.Rung())
}
