package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/geopits/internal/game"
	"github.com/samdwyer/geopits/internal/telemetry"
)

// PlayCmd runs the interactive terminal game.
type PlayCmd struct {
	Start string        `short:"s" help:"Named start location (see geopits locations)"`
	At    string        `placeholder:"LAT,LNG" help:"Start at an explicit point instead of a named location"`
	Track bool          `short:"t" help:"Follow the start location's route from the beginning"`
	Poll  time.Duration `help:"Tracker poll interval (overrides config)"`
}

// Run starts a play session.
func (c *PlayCmd) Run(rc *runContext) error {
	if c.Poll > 0 {
		rc.cfg.PollInterval = c.Poll
	}

	start, err := rc.resolveStart(c.Start, c.At)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file.
	logFile, err := os.OpenFile(rc.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	sessionID := uuid.NewString()
	logger := rc.logger(logFile).With("session", sessionID)

	ctx := context.Background()

	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx, sessionID)
		if err != nil {
			logger.Warn("Telemetry setup failed; running without observability", "error", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error("Error shutting down telemetry", "error", err)
				}
			}()
		}
	}

	g, err := game.New(rc.cfg, start, logger)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	if c.Track {
		g.TrackOnStart()
	}

	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// It reports whether an API key was found; without one nothing is exported.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_GEOPITS_API_KEY")
	if apiKey == "" {
		return false
	}
	dataset := os.Getenv("HONEYCOMB_GEOPITS_DATASET")
	if dataset == "" {
		dataset = "geopits"
	}

	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	// Built here because .env files may carry an unexpanded variable reference
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
