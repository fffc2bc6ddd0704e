// Package config loads the optional latgraph configuration file.
//
// The file is TOML:
//
//	method = "anticlockwise"
//	check_topology = true
//	plot_scale = 2.0
//	verbose = false
//
//	[generate]
//	spacing = 1.0
//	dim = 3
//
// It is looked up in this order: the --config flag, $LATGRAPH_CONFIG, then
// ./latgraph.toml. Only the last one may be missing. Command-line flags that
// are set explicitly override values from the file.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/relabel"
)

const (
	// EnvVar names the environment variable holding a config file path.
	EnvVar = "LATGRAPH_CONFIG"

	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = "latgraph.toml"
)

// Config holds user defaults for the CLI.
type Config struct {
	Method        string   `toml:"method"`
	CheckTopology bool     `toml:"check_topology"`
	PlotScale     float64  `toml:"plot_scale"`
	Verbose       bool     `toml:"verbose"`
	Generate      Generate `toml:"generate"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Generate holds defaults for the generate command.
type Generate struct {
	Spacing float64 `toml:"spacing"`
	Dim     int     `toml:"dim"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Method:    "innermost",
		PlotScale: 2.0,
		Generate:  Generate{Spacing: 1.0, Dim: 3},
	}
}

// Load resolves and reads the configuration file. explicit is the value of
// the --config flag and may be empty.
func Load(explicit string) (Config, error) {
	path, required := resolve(explicit, os.Getenv(EnvVar))
	return loadFile(path, required)
}

// resolve picks the config path and whether it must exist.
func resolve(explicit, env string) (string, bool) {
	switch {
	case explicit != "":
		return explicit, true
	case env != "":
		return env, true
	default:
		return DefaultFile, false
	}
}

func loadFile(path string, required bool) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if !required {
				return Default(), nil
			}
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := relabel.ParseMethod(c.Method); err != nil {
		return err
	}
	if c.PlotScale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "plot_scale must be positive, got %g", c.PlotScale)
	}
	if c.Generate.Spacing <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "generate.spacing must be positive, got %g", c.Generate.Spacing)
	}
	if c.Generate.Dim != 2 && c.Generate.Dim != 3 {
		return errors.New(errors.ErrCodeInvalidInput, "generate.dim must be 2 or 3, got %d", c.Generate.Dim)
	}
	return nil
}
