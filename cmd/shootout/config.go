package main

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sot-tech/shootout/pkg/conf"
)

// Config represents the optional configuration file.
// Command line flags take precedence over its values.
type Config struct {
	MetricsAddr string         `yaml:"metrics_addr"`
	Format      string         `yaml:"format"`
	Bench       conf.MapConfig `yaml:"bench"`
	HTTP        conf.MapConfig `yaml:"http"`
}

// ParseConfigFile returns a new Config given the path to a YAML
// configuration file.
//
// It supports relative and absolute paths and environment variables.
func ParseConfigFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("no config path specified")
	}

	f, err := os.Open(os.ExpandEnv(path))
	if err == nil {
		defer f.Close()
		cfgFile := new(Config)
		err = yaml.NewDecoder(f).Decode(cfgFile)
		return cfgFile, err
	}
	return nil, err
}
