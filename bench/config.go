package bench

import (
	"time"

	"github.com/sot-tech/shootout/pkg/conf"
)

// Default sampler parameters.
const (
	DefaultWindow      = time.Second
	DefaultSamples     = 8
	DefaultUnroll      = 8
	DefaultBufferWords = 64 * 1024 * 1024
)

// Config represents the configurable options of a Sampler.
type Config struct {
	// Window is the wall-clock length of one sample.
	Window time.Duration `cfg:"window"`

	// Samples is the number of windows per generator; the best one is reported.
	Samples int `cfg:"samples"`

	// Unroll is the number of words generated between two checks of the
	// stop flag.
	Unroll int `cfg:"unroll"`

	// BufferWords is the length of the scratch buffer allocated by
	// NewScratch.
	BufferWords int `cfg:"buffer_words"`
}

// DefaultConfig is the configuration with all values set to defaults.
var DefaultConfig = Config{
	Window:      DefaultWindow,
	Samples:     DefaultSamples,
	Unroll:      DefaultUnroll,
	BufferWords: DefaultBufferWords,
}

// NewConfig decodes sampler configuration from c and validates it.
// Missing values are taken from DefaultConfig.
func NewConfig(c conf.MapConfig) (cfg Config, err error) {
	cfg = DefaultConfig
	if len(c) > 0 {
		err = c.Unmarshal(&cfg)
	}
	return cfg.Validate(), err
}

// Validate sanity checks values set in a config and returns a new config with
// default values replacing anything that is invalid.
//
// This function warns to the logger when a value is changed.
func (cfg Config) Validate() Config {
	valid := cfg
	if cfg.Window <= 0 {
		valid.Window = DefaultWindow
		logger.Warn().
			Str("name", "Window").
			Dur("provided", cfg.Window).
			Dur("default", valid.Window).
			Msg("falling back to default configuration")
	}
	if cfg.Samples <= 0 {
		valid.Samples = DefaultSamples
		logger.Warn().
			Str("name", "Samples").
			Int("provided", cfg.Samples).
			Int("default", valid.Samples).
			Msg("falling back to default configuration")
	}
	if cfg.Unroll <= 0 {
		valid.Unroll = DefaultUnroll
		logger.Warn().
			Str("name", "Unroll").
			Int("provided", cfg.Unroll).
			Int("default", valid.Unroll).
			Msg("falling back to default configuration")
	}
	if cfg.BufferWords <= 0 {
		valid.BufferWords = DefaultBufferWords
		logger.Warn().
			Str("name", "BufferWords").
			Int("provided", cfg.BufferWords).
			Int("default", valid.BufferWords).
			Msg("falling back to default configuration")
	}
	return valid
}

// NewScratch allocates the scratch buffer sized by cfg.BufferWords.
func NewScratch(cfg Config) []uint64 {
	return make([]uint64, cfg.BufferWords)
}
