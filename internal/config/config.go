// Package config loads game settings from defaults, an optional HCL file, and
// the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/samdwyer/geopits/internal/world"
)

const (
	DefaultStart    = "merrill"
	DefaultLogLevel = "info"
	DefaultLogFile  = "geopits.log"
)

// Config holds game configuration options.
type Config struct {
	// Board parameters
	TileDegrees      float64 `env:"GEOPITS_TILE_DEGREES"`
	VisibilityRadius int     `env:"GEOPITS_VISIBILITY_RADIUS"`
	SpawnProbability float64 `env:"GEOPITS_SPAWN_PROBABILITY"`
	MaxInitialCoins  int     `env:"GEOPITS_MAX_INITIAL_COINS"`

	// Start is the ID of an embedded location the player starts at.
	Start string `env:"GEOPITS_START"`
	// PollInterval is how often tracking mode asks for a new position.
	// Zero disables tracking mode.
	PollInterval time.Duration `env:"GEOPITS_POLL_INTERVAL"`

	LogLevel string `env:"GEOPITS_LOG_LEVEL"`
	LogFile  string `env:"GEOPITS_LOG_FILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TileDegrees:      world.DefaultTileDegrees,
		VisibilityRadius: world.DefaultVisibilityRadius,
		SpawnProbability: world.DefaultSpawnProbability,
		MaxInitialCoins:  world.DefaultMaxInitialCoins,
		Start:            DefaultStart,
		PollInterval:     2 * time.Second,
		LogLevel:         DefaultLogLevel,
		LogFile:          DefaultLogFile,
	}
}

// fileConfig is the HCL file layout. Every block and attribute is optional.
// Board attributes are pointers so an explicit zero overrides the default.
type fileConfig struct {
	Board  *boardBlock  `hcl:"board,block"`
	Player *playerBlock `hcl:"player,block"`
	Log    *logBlock    `hcl:"log,block"`
}

type boardBlock struct {
	TileDegrees      *float64 `hcl:"tile_degrees,optional"`
	VisibilityRadius *int     `hcl:"visibility_radius,optional"`
	SpawnProbability *float64 `hcl:"spawn_probability,optional"`
	MaxInitialCoins  *int     `hcl:"max_initial_coins,optional"`
}

type playerBlock struct {
	Start        string `hcl:"start,optional"`
	PollInterval string `hcl:"poll_interval,optional"`
}

type logBlock struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Load builds the configuration from defaults, the HCL file at path (if it
// exists), and GEOPITS_* environment variables. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// applyFile overlays the settings from an HCL file. A missing file is not an error.
func (c *Config) applyFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("parse HCL file %s: %s", path, diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return fmt.Errorf("decode HCL file %s: %s", path, diags.Error())
	}

	if b := fc.Board; b != nil {
		if b.TileDegrees != nil {
			c.TileDegrees = *b.TileDegrees
		}
		if b.VisibilityRadius != nil {
			c.VisibilityRadius = *b.VisibilityRadius
		}
		if b.SpawnProbability != nil {
			c.SpawnProbability = *b.SpawnProbability
		}
		if b.MaxInitialCoins != nil {
			c.MaxInitialCoins = *b.MaxInitialCoins
		}
	}
	if p := fc.Player; p != nil {
		if p.Start != "" {
			c.Start = p.Start
		}
		if p.PollInterval != "" {
			d, err := time.ParseDuration(p.PollInterval)
			if err != nil {
				return fmt.Errorf("player.poll_interval in %s: %w", path, err)
			}
			c.PollInterval = d
		}
	}
	if l := fc.Log; l != nil {
		if l.Level != "" {
			c.LogLevel = l.Level
		}
		if l.File != "" {
			c.LogFile = l.File
		}
	}
	return nil
}

// Validate checks the configuration for values the board cannot use.
func (c Config) Validate() error {
	if c.TileDegrees < world.MinTileDegrees {
		return fmt.Errorf("tile degrees must be at least %g, got %g", world.MinTileDegrees, c.TileDegrees)
	}
	if c.VisibilityRadius < 0 {
		return fmt.Errorf("visibility radius must not be negative, got %d", c.VisibilityRadius)
	}
	if c.SpawnProbability < 0 || c.SpawnProbability > 1 {
		return fmt.Errorf("spawn probability must be within [0,1], got %g", c.SpawnProbability)
	}
	if c.MaxInitialCoins < 0 {
		return fmt.Errorf("max initial coins must not be negative, got %d", c.MaxInitialCoins)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll interval must not be negative, got %s", c.PollInterval)
	}
	if c.Start == "" {
		return errors.New("start location must be set")
	}
	return nil
}

// BoardOptions returns the board parameters.
func (c Config) BoardOptions() world.Options {
	return world.Options{
		TileDegrees:      c.TileDegrees,
		VisibilityRadius: c.VisibilityRadius,
		SpawnProbability: c.SpawnProbability,
		MaxInitialCoins:  c.MaxInitialCoins,
	}
}
