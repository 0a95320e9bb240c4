// Package log adds a thin wrapper around zerolog.
//
// Root logger (called by log.Info, log.Warn etc.) uses global zerolog.Logger instance
// until ConfigureLogger called. Child loggers created with NewLogger bind to the
// root logger lazily, on their first event, so package level loggers declared
// before ConfigureLogger still pick up the configured output and format.
//
// Diagnostics only: generator output and reports never go through this package.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	// needs for async file logging
	_ "code.cloudfoundry.org/go-diodes"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	zl "github.com/rs/zerolog/log"
)

var (
	root        = zl.Logger
	rootMu      = sync.RWMutex{}
	rootGen     atomic.Uint64
	customOut   io.WriteCloser
	customOutMu = sync.Mutex{}
)

// ConfigureLogger initializes root logger.
// output might be 'stderr' (or empty), 'stdout' or file path,
// level is one of zerolog levels (trace, debug, info, warn, error...),
// formatted enables human-readable console output, colored enables colors
// for formatted output.
func ConfigureLogger(output, level string, formatted, colored bool) (err error) {
	lvl := zerolog.WarnLevel
	var w io.Writer
	switch strings.ToLower(output) {
	case "stderr", "":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		if w, err = os.OpenFile(output, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600); err != nil {
			return err
		}
		customOutMu.Lock()
		defer customOutMu.Unlock()
		customOut = diode.NewWriter(w, 1000, 0, func(missed int) {
			zl.Warn().Int("count", missed).Msg("Logger dropped messages")
		})
		w = customOut
	}
	return configure(w, level, lvl, formatted, colored)
}

// ConfigureWriter initializes root logger to write into w.
func ConfigureWriter(w io.Writer, level string, formatted bool) error {
	return configure(w, level, zerolog.WarnLevel, formatted, false)
}

func configure(w io.Writer, level string, lvl zerolog.Level, formatted, colored bool) error {
	if formatted {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !colored,
			TimeFormat: "2006-01-02 15:04:05.999",
		}
	}
	if len(level) > 0 {
		logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return err
		}
		lvl = logLevel
	}
	rootMu.Lock()
	defer rootMu.Unlock()
	root = zerolog.New(w).With().Timestamp().Logger()
	rootGen.Add(1)
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func rootLogger() *zerolog.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	l := root
	return &l
}

// Logger is the holder for zerolog.Logger bound to a component name.
// The child logger is built once per root configuration and reused.
type Logger struct {
	comp   string
	cached atomic.Pointer[childLogger]
}

type childLogger struct {
	gen uint64
	zl  zerolog.Logger
}

// NewLogger creates child logger with specified component name
func NewLogger(component string) *Logger {
	return &Logger{comp: component}
}

func (l *Logger) zl() *zerolog.Logger {
	if c := l.cached.Load(); c != nil && c.gen == rootGen.Load() {
		return &c.zl
	}
	rootMu.RLock()
	c := &childLogger{gen: rootGen.Load(), zl: root.With().Str("component", l.comp).Logger()}
	rootMu.RUnlock()
	l.cached.Store(c)
	return &c.zl
}

// Trace starts a new message with trace level.
func (l *Logger) Trace() *zerolog.Event {
	return l.zl().Trace()
}

// Debug starts a new message with debug level.
func (l *Logger) Debug() *zerolog.Event {
	return l.zl().Debug()
}

// Info starts a new message with info level.
func (l *Logger) Info() *zerolog.Event {
	return l.zl().Info()
}

// Warn starts a new message with warn level.
func (l *Logger) Warn() *zerolog.Event {
	return l.zl().Warn()
}

// Error starts a new message with error level.
func (l *Logger) Error() *zerolog.Event {
	return l.zl().Error()
}

// Err starts a new message with error level with err as a field if not nil or
// with info level if err is nil.
func (l *Logger) Err(err error) *zerolog.Event {
	return l.zl().Err(err)
}

// Debug starts a new root message with debug level.
func Debug() *zerolog.Event {
	return rootLogger().Debug()
}

// Info starts a new root message with info level.
func Info() *zerolog.Event {
	return rootLogger().Info()
}

// Warn starts a new root message with warn level.
func Warn() *zerolog.Event {
	return rootLogger().Warn()
}

// Error starts a new root message with error level.
func Error() *zerolog.Event {
	return rootLogger().Error()
}

// Err starts a new root message with error level with err as a field if not nil or
// with info level if err is nil.
func Err(err error) *zerolog.Event {
	return rootLogger().Err(err)
}

// Close closes custom output writer if it configured
func Close() {
	customOutMu.Lock()
	defer customOutMu.Unlock()
	if customOut != nil {
		_ = customOut.Close()
		customOut = nil
	}
}
