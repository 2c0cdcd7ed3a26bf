// Package main is the entry point for GeoPits.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/samdwyer/geopits/internal/config"
	"github.com/samdwyer/geopits/internal/gamedata"
	"github.com/samdwyer/geopits/internal/world"
)

// CLI is the command line interface.
type CLI struct {
	Config   string `short:"c" default:"geopits.hcl" type:"path" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	LogFile  string `help:"Log file for the interactive game (overrides config)"`

	Play      PlayCmd      `cmd:"" default:"withargs" help:"Explore the map and collect coins"`
	Scan      ScanCmd      `cmd:"" help:"Print the pits near a point"`
	Locations LocationsCmd `cmd:"" help:"List named start locations"`
}

// runContext is shared by every command.
type runContext struct {
	cfg       config.Config
	locations *gamedata.LocationRegistry
	stdout    io.Writer
}

func main() {
	// .env is optional; variables may already be set in the environment
	envErr := godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("geopits"),
		kong.Description("Walk the map, find pits, and collect coins."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	rc, err := newRunContext(&cli, os.Stdout)
	ctx.FatalIfErrorf(err)

	if envErr != nil {
		rc.logger(os.Stderr).Debug(".env file not loaded", "error", envErr)
	}

	ctx.FatalIfErrorf(ctx.Run(rc))
}

// newRunContext loads configuration and embedded data and applies CLI overrides.
func newRunContext(cli *CLI, stdout io.Writer) (*runContext, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.LogFile != "" {
		cfg.LogFile = cli.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	locations, err := gamedata.LoadLocationRegistry()
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}

	return &runContext{
		cfg:       cfg,
		locations: locations,
		stdout:    stdout,
	}, nil
}

// logger builds a logger writing to w at the configured level.
func (rc *runContext) logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(rc.cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "geopits",
	})
}

// resolveStart picks the start location: an explicit point wins over a named
// location, which wins over the configured default.
func (rc *runContext) resolveStart(name, at string) (gamedata.LocationDef, error) {
	if at != "" {
		p, err := parsePoint(at)
		if err != nil {
			return gamedata.LocationDef{}, err
		}
		return gamedata.LocationDef{ID: "custom", Name: p.String(), Lat: p.Lat, Lng: p.Lng}, nil
	}

	if name == "" {
		name = rc.cfg.Start
	}
	loc := rc.locations.GetByID(name)
	if loc == nil {
		return gamedata.LocationDef{}, fmt.Errorf("unknown location %q (see geopits locations)", name)
	}
	return *loc, nil
}

// parsePoint parses "LAT,LNG" in degrees.
func parsePoint(s string) (world.Point, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return world.Point{}, fmt.Errorf("invalid point %q: want LAT,LNG", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return world.Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return world.Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return world.Point{}, fmt.Errorf("point %q out of range", s)
	}
	return world.Point{Lat: lat, Lng: lng}, nil
}
