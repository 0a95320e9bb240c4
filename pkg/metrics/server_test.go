package metrics

import (
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sot-tech/shootout/pump"
)

func TestServeMetrics(t *testing.T) {
	_, err := pump.Stream(2, io.Discard, 4)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := Serve(ln)
	defer s.Close()
	require.True(t, Enabled())

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `shootout_pump_words_total{generator="xorshift128plus"} 4`)
}
