// Package metrics implements a standalone HTTP server for serving pprof
// profiles and Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sot-tech/shootout/pkg/log"
)

var (
	logger        = log.NewLogger("metrics")
	serverCounter atomic.Int32
)

// Enabled indicates that at least one metrics server is running
func Enabled() bool {
	return serverCounter.Load() > 0
}

// Server represents a standalone HTTP server for serving a Prometheus metrics
// endpoint.
type Server struct {
	srv *http.Server
}

// Close shuts down the server.
func (s *Server) Close() error {
	return s.srv.Shutdown(context.Background())
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// NewServer creates a new instance of a Prometheus server that asynchronously
// serves requests on addr.
func NewServer(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return Serve(ln), nil
}

// Serve starts a metrics server on the provided listener.
func Serve(ln net.Listener) *Server {
	s := &Server{
		srv: &http.Server{
			Handler: newMux(),
		},
	}

	serverCounter.Add(1)
	go func() {
		defer serverCounter.Add(-1)
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("failed while serving prometheus")
		}
	}()

	return s
}
