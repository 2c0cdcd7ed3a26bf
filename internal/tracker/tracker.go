// Package tracker polls a position source at a fixed interval and hands each
// fix to a callback, standing in for device geolocation.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/samdwyer/geopits/internal/world"
)

// Source reports the current position.
type Source interface {
	Position(ctx context.Context) (world.Point, error)
}

// ErrEmptyRoute is returned by a Route with no points.
var ErrEmptyRoute = errors.New("route has no points")

// Route is a Source that walks a fixed list of points, wrapping around at the end.
// It is safe to share between trackers; a restarted tracker resumes where the
// previous one stopped.
type Route struct {
	mu     sync.Mutex
	points []world.Point
	next   int
}

// NewRoute creates a route over the given points.
func NewRoute(points ...world.Point) *Route {
	return &Route{points: points}
}

// Position returns the next point on the route.
func (r *Route) Position(ctx context.Context) (world.Point, error) {
	if len(r.points) == 0 {
		return world.Point{}, ErrEmptyRoute
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.points[r.next]
	r.next = (r.next + 1) % len(r.points)
	return p, nil
}

// Len returns the number of points on the route.
func (r *Route) Len() int {
	return len(r.points)
}

// Tracker polls a Source on a clock.
type Tracker struct {
	source   Source
	interval time.Duration
	clock    quartz.Clock
	logger   *log.Logger
}

// New creates a tracker. Pass quartz.NewReal() outside of tests.
func New(source Source, interval time.Duration, clock quartz.Clock, logger *log.Logger) *Tracker {
	return &Tracker{
		source:   source,
		interval: interval,
		clock:    clock,
		logger:   logger.WithPrefix("tracker"),
	}
}

// Run polls once immediately and then on every tick until ctx is cancelled.
// Source errors are logged and the poll is skipped. Run returns nil when the
// context ends.
func (t *Tracker) Run(ctx context.Context, fix func(world.Point)) error {
	if t.interval <= 0 {
		return errors.New("tracker interval must be positive")
	}

	ticker := t.clock.NewTicker(t.interval, "tracker", "poll")
	defer ticker.Stop()

	t.logger.Debug("Tracking started", "interval", t.interval)
	t.poll(ctx, fix)

	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("Tracking stopped")
			return nil
		case <-ticker.C:
			t.poll(ctx, fix)
		}
	}
}

// poll asks the source for one position.
func (t *Tracker) poll(ctx context.Context, fix func(world.Point)) {
	p, err := t.source.Position(ctx)
	if err != nil {
		t.logger.Warn("Position unavailable", "error", err)
		return
	}
	t.logger.Debug("Position fix", "lat", p.Lat, "lng", p.Lng)
	fix(p)
}
