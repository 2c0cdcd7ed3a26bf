package game

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/geopits/internal/config"
	"github.com/samdwyer/geopits/internal/gamedata"
	"github.com/samdwyer/geopits/internal/ui"
	"github.com/samdwyer/geopits/internal/world"
)

var testRoute = [][2]float64{{0.001, 0.002}, {0.003, 0.004}, {0.005, 0.006}}

func routePoint(n int) world.Point {
	return world.Point{Lat: testRoute[n][0], Lng: testRoute[n][1]}
}

// newTestGame returns an initialized game on a simulation screen with a mock clock.
func newTestGame(t *testing.T, route [][2]float64) *Game {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	sim.SetSize(80, 30)

	cfg := config.Default()
	cfg.PollInterval = time.Second
	start := gamedata.LocationDef{ID: "test", Name: "Test", Route: route}
	logger := log.NewWithOptions(io.Discard, log.Options{})

	g := newGame(cfg, start, logger, screen, quartz.NewMock(t))
	g.init(context.Background())
	t.Cleanup(func() {
		g.stopTracking()
		assert.NoError(t, g.group.Wait())
		screen.Close()
	})
	return g
}

// nextInterrupt returns the next interrupt event queued on the game screen.
func nextInterrupt(t *testing.T, g *Game) *tcell.EventInterrupt {
	t.Helper()
	events := make(chan *tcell.EventInterrupt, 1)
	go func() {
		for {
			switch ev := g.screen.PollEvent().(type) {
			case *tcell.EventInterrupt:
				events <- ev
				return
			case nil:
				return
			}
		}
	}()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for interrupt event")
		return nil
	}
}

func pressRune(ctx context.Context, g *Game, r rune) {
	g.handleKeyEvent(ctx, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestFixIgnoredInManualMode(t *testing.T) {
	g := newTestGame(t, testRoute)
	ctx := context.Background()
	before := g.session.Position()

	require.True(t, g.screen.Post(trackFix{gen: g.trackGen, point: routePoint(2)}))
	g.handleFix(ctx, nextInterrupt(t, g))

	assert.Equal(t, StateManual, g.state)
	assert.Equal(t, before, g.session.Position())
}

func TestTrackingAppliesFixes(t *testing.T) {
	g := newTestGame(t, testRoute)
	ctx := context.Background()

	pressRune(ctx, g, 'g')
	require.Equal(t, StateTracking, g.state)

	g.handleFix(ctx, nextInterrupt(t, g))
	assert.Equal(t, routePoint(0), g.session.Position())

	// Interrupts that are not tracker fixes are ignored.
	require.True(t, g.screen.Post(routePoint(2)))
	g.handleFix(ctx, nextInterrupt(t, g))
	assert.Equal(t, routePoint(0), g.session.Position())

	// Keys do not move the player while tracking owns the position.
	pressRune(ctx, g, 'k')
	assert.Equal(t, routePoint(0), g.session.Position())
	assert.Contains(t, g.session.Message(), "Tracking is on")
}

func TestToggleDiscardsStaleFixesAndResumesRoute(t *testing.T) {
	g := newTestGame(t, testRoute)
	ctx := context.Background()

	pressRune(ctx, g, 'g')
	g.handleFix(ctx, nextInterrupt(t, g))
	require.Equal(t, routePoint(0), g.session.Position())

	pressRune(ctx, g, 'g')
	require.Equal(t, StateManual, g.state)

	// A fix from the stopped run still sitting in the queue.
	require.True(t, g.screen.Post(trackFix{gen: g.trackGen, point: world.Point{Lat: 9, Lng: 9}}))

	pressRune(ctx, g, 'g')
	require.Equal(t, StateTracking, g.state)

	g.handleFix(ctx, nextInterrupt(t, g))
	assert.Equal(t, routePoint(0), g.session.Position(), "stale fix must be discarded")

	g.handleFix(ctx, nextInterrupt(t, g))
	assert.Equal(t, routePoint(1), g.session.Position(), "route resumes after restart")
}

func TestTrackingUnavailableWithoutRoute(t *testing.T) {
	g := newTestGame(t, nil)
	ctx := context.Background()

	pressRune(ctx, g, 'g')
	assert.Equal(t, StateManual, g.state)
	assert.Equal(t, "Tracking unavailable here", g.session.Message())

	before := g.session.Here()
	pressRune(ctx, g, 'k')
	assert.Equal(t, before.I+1, g.session.Here().I)
}

func TestQuitKeys(t *testing.T) {
	g := newTestGame(t, nil)
	ctx := context.Background()

	pressRune(ctx, g, 'q')
	assert.False(t, g.running)

	g.running = true
	g.handleKeyEvent(ctx, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.False(t, g.running)
}
