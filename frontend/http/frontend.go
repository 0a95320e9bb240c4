// Package http implements an HTTP frontend which lists generators, streams
// their raw output and benchmarks them on request.
//
// Routes:
//
//	GET /generators             "<index> <name>" lines
//	GET /stream/{index}?words=N little-endian words until the client goes away
//	                            or N words are sent
//	GET /bench/{index}          one benchmark report line
package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/libp2p/go-reuseport"
	"github.com/valyala/fasthttp"

	"github.com/sot-tech/shootout/bench"
	"github.com/sot-tech/shootout/pkg/conf"
	"github.com/sot-tech/shootout/pkg/log"
	"github.com/sot-tech/shootout/pump"
	"github.com/sot-tech/shootout/registry"
)

// Name - name of the frontend in configuration
const Name = "http"

var (
	logger           = log.NewLogger("frontend/http")
	errNilSampler    = errors.New("sampler not provided")
	errServerClosing = errors.New("server is shutting down")
)

// Config represents all configurable options for the HTTP frontend
type Config struct {
	Addr        string        `cfg:"addr"`
	ReusePort   bool          `cfg:"reuse_port"`
	ReadTimeout time.Duration `cfg:"read_timeout"`
	// MaxStreamWords caps every stream, 0 means unlimited.
	MaxStreamWords uint64 `cfg:"max_stream_words"`
}

const (
	defaultAddr        = "localhost:6880"
	defaultReadTimeout = 5 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// Validate sanity checks values set in a config and returns a new config with
// default values replacing anything that is invalid.
func (cfg Config) Validate() Config {
	valid := cfg
	if len(cfg.Addr) == 0 {
		valid.Addr = defaultAddr
		logger.Warn().
			Str("name", "Addr").
			Str("provided", cfg.Addr).
			Str("default", valid.Addr).
			Msg("falling back to default configuration")
	}
	if cfg.ReadTimeout <= 0 {
		valid.ReadTimeout = defaultReadTimeout
		logger.Warn().
			Str("name", "ReadTimeout").
			Dur("provided", cfg.ReadTimeout).
			Dur("default", valid.ReadTimeout).
			Msg("falling back to default configuration")
	}
	return valid
}

// Listen opens TCP listener for cfg.Addr, with SO_REUSEPORT if configured.
func (cfg Config) Listen() (net.Listener, error) {
	if cfg.ReusePort {
		return reuseport.Listen("tcp", cfg.Addr)
	}
	return net.Listen("tcp", cfg.Addr)
}

// Frontend serves the HTTP API.
type Frontend struct {
	srv        *fasthttp.Server
	sampler    *bench.Sampler
	benchMu    sync.Mutex
	maxWords   uint64
	onceCloser sync.Once
}

// NewFrontend builds the frontend from provided configuration and starts
// serving it in background.
func NewFrontend(c conf.MapConfig, sampler *bench.Sampler) (*Frontend, error) {
	var cfg Config
	if err := c.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("frontend %s: %w", Name, err)
	}
	cfg = cfg.Validate()
	f, err := newFrontend(cfg, sampler)
	if err != nil {
		return nil, err
	}
	ln, err := cfg.Listen()
	if err != nil {
		return nil, fmt.Errorf("frontend %s: %w", Name, err)
	}
	logger.Info().Str("address", ln.Addr().String()).Msg("frontend started")
	go func() {
		if err := f.Serve(ln); err != nil {
			logger.Error().Err(err).Msg("server failed")
		}
	}()
	return f, nil
}

func newFrontend(cfg Config, sampler *bench.Sampler) (*Frontend, error) {
	if sampler == nil {
		return nil, errNilSampler
	}
	f := &Frontend{sampler: sampler, maxWords: cfg.MaxStreamWords}

	r := router.New()
	r.GET("/generators", f.listRoute)
	r.GET("/stream/{index}", f.streamRoute)
	r.GET("/bench/{index}", f.benchRoute)

	f.srv = &fasthttp.Server{
		Handler:     r.Handler,
		Name:        "shootout",
		ReadTimeout: cfg.ReadTimeout,
	}
	return f, nil
}

// Serve serves requests on ln until Close is called.
func (f *Frontend) Serve(ln net.Listener) error {
	return f.srv.Serve(ln)
}

// Close gracefully shuts down the server. Open streams stop at the next
// word; connections still busy after shutdownTimeout are abandoned.
func (f *Frontend) Close() (err error) {
	f.onceCloser.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = f.srv.ShutdownWithContext(ctx)
	})
	return
}

func (f *Frontend) listRoute(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain; charset=utf-8")
	for i, d := range registry.Descriptors() {
		_, _ = fmt.Fprintf(ctx, "%d %s\n", i, d.Name)
	}
}

func indexParam(ctx *fasthttp.RequestCtx) (int, bool) {
	s, _ := ctx.UserValue("index").(string)
	i, err := strconv.Atoi(s)
	if err == nil {
		_, err = registry.Name(i)
	}
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusNotFound)
		return 0, false
	}
	return i, true
}

func (f *Frontend) streamRoute(ctx *fasthttp.RequestCtx) {
	index, ok := indexParam(ctx)
	if !ok {
		return
	}
	var limit uint64
	if words, err := ctx.QueryArgs().GetUint("words"); err == nil {
		limit = uint64(words)
	} else if !errors.Is(err, fasthttp.ErrNoArgValue) {
		ctx.Error("invalid words: "+err.Error(), fasthttp.StatusBadRequest)
		return
	}
	if f.maxWords > 0 && (limit == 0 || limit > f.maxWords) {
		limit = f.maxWords
	}

	ctx.SetContentType("application/octet-stream")
	done := ctx.Done()
	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		if _, err := pump.Stream(index, flushWriter{w: w, done: done}, limit); err != nil {
			logger.Error().Err(err).Int("index", index).Msg("stream failed")
		}
	})
}

func (f *Frontend) benchRoute(ctx *fasthttp.RequestCtx) {
	index, ok := indexParam(ctx)
	if !ok {
		return
	}
	f.benchMu.Lock()
	res, err := f.sampler.Run(ctx, index)
	f.benchMu.Unlock()
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString(bench.FormatLine(res))
}

// flushWriter pushes every word to the client as soon as it is written,
// so a disconnected client is noticed on the next word.
// It fails once done is closed, which ends the stream on server shutdown.
type flushWriter struct {
	w    *bufio.Writer
	done <-chan struct{}
}

func (f flushWriter) Write(p []byte) (n int, err error) {
	select {
	case <-f.done:
		return 0, errServerClosing
	default:
	}
	if n, err = f.w.Write(p); err == nil {
		err = f.w.Flush()
	}
	return
}
