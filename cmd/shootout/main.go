// Package main contains entry point logic of shootout: it benchmarks the
// registered generators, streams one of them to stdout or serves both over
// HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/zeebo/errs"

	"github.com/sot-tech/shootout/bench"
	fh "github.com/sot-tech/shootout/frontend/http"
	"github.com/sot-tech/shootout/pkg/conf"
	"github.com/sot-tech/shootout/pkg/log"
	"github.com/sot-tech/shootout/pkg/metrics"
	"github.com/sot-tech/shootout/pump"
	"github.com/sot-tech/shootout/registry"
)

const (
	logOutArg    = "logOut"
	logLevelArg  = "logLevel"
	logPrettyArg = "logPretty"
	logColorsArg = "logColored"
	configArg    = "config"
	indexArg     = "g"
	nameArg      = "n"
	helpArg      = "h"
	wordsArg     = "words"
	fromArg      = "from"
	toArg        = "to"
	windowArg    = "window"
	samplesArg   = "samples"
	unrollArg    = "unroll"
	bufferArg    = "buffer"
	formatArg    = "format"
	serveArg     = "serve"
	metricsArg   = "metrics"
)

const programName = "shootout"

const usageLine = programName + " [-g index | -n name [-words N]] [-from index] [-to index]" +
	" [-format text|yaml|bencode] [-serve addr] [-metrics addr] [-config file] [-h]"

const (
	exitOK = iota
	exitFailure
	exitUsage
)

// ConfigurationError is the class of operator errors detected before any
// generator runs.
var ConfigurationError = errs.Class("configuration")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	logOut, logLevel     string
	logPretty, logColors bool
	configPath           string
	index                int
	name                 string
	help                 bool
	words                uint64
	from, to             int
	window               time.Duration
	samples, unroll      int
	buffer               int
	format               string
	serve                string
	metricsAddr          string
	set                  map[string]bool
	fs                   *flag.FlagSet
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	o.fs = fs
	fs.StringVar(&o.logOut, logOutArg, "stderr", "output for logging, might be 'stderr', 'stdout' or file path")
	fs.StringVar(&o.logLevel, logLevelArg, "warn", "logging level: trace, debug, info, warn, error, fatal, panic")
	fs.BoolVar(&o.logPretty, logPrettyArg, false, "enable log pretty print. used only if 'logOut' set to 'stdout' or 'stderr'. if not set, log outputs json")
	fs.BoolVar(&o.logColors, logColorsArg, runtime.GOOS == "windows", "enable log coloring. used only if set 'logPretty'")
	fs.StringVar(&o.configPath, configArg, "", "location of optional configuration file")
	fs.IntVar(&o.index, indexArg, -1, "stream raw output of generator with this index to stdout")
	fs.StringVar(&o.name, nameArg, "", "stream raw output of generator with this name to stdout")
	fs.BoolVar(&o.help, helpArg, false, "print usage and the list of generators")
	fs.Uint64Var(&o.words, wordsArg, 0, "stop streaming after this many words, 0 means until stdout is closed")
	fs.IntVar(&o.from, fromArg, 0, "first generator index to benchmark")
	fs.IntVar(&o.to, toArg, registry.Count()-1, "last generator index to benchmark")
	fs.DurationVar(&o.window, windowArg, bench.DefaultWindow, "length of one benchmark sample")
	fs.IntVar(&o.samples, samplesArg, bench.DefaultSamples, "benchmark samples per generator, the best is reported")
	fs.IntVar(&o.unroll, unrollArg, bench.DefaultUnroll, "words generated between two checks of the sample deadline")
	fs.IntVar(&o.buffer, bufferArg, bench.DefaultBufferWords, "benchmark scratch buffer length in words")
	fs.StringVar(&o.format, formatArg, bench.FormatText, "benchmark report format: text, yaml or bencode")
	fs.StringVar(&o.serve, serveArg, "", "serve HTTP API on this address instead of running once")
	fs.StringVar(&o.metricsAddr, metricsArg, "", "serve prometheus metrics and pprof on this address")
	if err := fs.Parse(args); err != nil {
		return nil, ConfigurationError.Wrap(err)
	}
	if fs.NArg() > 0 {
		return nil, ConfigurationError.New("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// benchOverrides returns sampler options given on the command line.
func (o *options) benchOverrides() conf.MapConfig {
	m := conf.MapConfig{}
	if o.set[windowArg] {
		m["window"] = o.window
	}
	if o.set[samplesArg] {
		m["samples"] = o.samples
	}
	if o.set[unrollArg] {
		m["unroll"] = o.unroll
	}
	if o.set[bufferArg] {
		m["buffer_words"] = o.buffer
	}
	return m
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if err = log.ConfigureLogger(o.logOut, o.logLevel, o.logPretty, o.logColors); err != nil {
		_, _ = fmt.Fprintln(stderr, "unable to configure logger:", err)
		return exitFailure
	}
	defer log.Close()

	if o.help {
		printHelp(stdout, o.fs)
		return exitOK
	}

	cfg := new(Config)
	if len(o.configPath) > 0 {
		if cfg, err = ParseConfigFile(o.configPath); err != nil {
			log.Err(ConfigurationError.Wrap(err)).Msg("unable to read config file")
			return exitFailure
		}
	}
	if len(o.metricsAddr) > 0 {
		cfg.MetricsAddr = o.metricsAddr
	}
	if o.set[formatArg] || len(cfg.Format) == 0 {
		cfg.Format = o.format
	}

	if len(cfg.MetricsAddr) > 0 {
		log.Info().Str("address", cfg.MetricsAddr).Msg("starting metrics server")
		ms, err := metrics.NewServer(cfg.MetricsAddr)
		if err != nil {
			log.Err(err).Msg("unable to start metrics server")
			return exitFailure
		}
		defer ms.Close()
	}

	switch {
	case o.set[indexArg] || o.set[nameArg]:
		err = streamMode(o, stdout)
	case len(o.serve) > 0:
		err = serveMode(o, cfg)
	default:
		err = benchMode(o, cfg, stdout)
	}
	if err != nil {
		log.Err(err).Msg("shootout failed")
		return exitFailure
	}
	return exitOK
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintln(w, "usage:", usageLine)
	out := fs.Output()
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(out)
	_, _ = fmt.Fprintln(w, "generators:")
	for i, d := range registry.Descriptors() {
		_, _ = fmt.Fprintf(w, "%d %s\n", i, d.Name)
	}
}

func selectIndex(o *options) (int, error) {
	if o.set[nameArg] {
		i, err := registry.Lookup(o.name)
		if err != nil {
			return 0, ConfigurationError.Wrap(err)
		}
		return i, nil
	}
	if _, err := registry.Name(o.index); err != nil {
		return 0, ConfigurationError.Wrap(err)
	}
	return o.index, nil
}

func streamMode(o *options, stdout io.Writer) error {
	index, err := selectIndex(o)
	if err != nil {
		return err
	}
	ignoreBrokenPipe()
	sum, err := pump.Stream(index, stdout, o.words)
	if err != nil {
		return err
	}
	log.Debug().Str("generator", sum.Name).Uint64("words", sum.Words).Msg("stream closed")
	return nil
}

func newSampler(o *options, cfg *Config) (*bench.Sampler, error) {
	bc, err := bench.NewConfig(cfg.Bench.With(o.benchOverrides()))
	if err != nil {
		return nil, ConfigurationError.Wrap(err)
	}
	log.Debug().Object("config", cfg.Bench).Msg("sampler configured")
	return bench.NewSampler(bc, bench.NewScratch(bc))
}

func benchMode(o *options, cfg *Config, stdout io.Writer) error {
	if _, err := registry.Name(o.from); err != nil {
		return ConfigurationError.Wrap(err)
	}
	if _, err := registry.Name(o.to); err != nil {
		return ConfigurationError.Wrap(err)
	}
	if o.from > o.to {
		return ConfigurationError.New("empty range %d..%d", o.from, o.to)
	}
	rep, err := bench.NewReporter(stdout, cfg.Format)
	if err != nil {
		return ConfigurationError.Wrap(err)
	}
	s, err := newSampler(o, cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err = s.RunRange(ctx, o.from, o.to, rep.Add); err != nil {
		return err
	}
	return rep.Flush()
}

func serveMode(o *options, cfg *Config) error {
	s, err := newSampler(o, cfg)
	if err != nil {
		return err
	}
	f, err := fh.NewFrontend(cfg.HTTP.With(conf.MapConfig{"addr": o.serve}), s)
	if err != nil {
		return err
	}
	defer func() {
		log.Debug().Msg("stopping frontend")
		if err := f.Close(); err != nil {
			log.Err(err).Msg("error occurred while shutting down frontend")
		}
	}()
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	return nil
}
