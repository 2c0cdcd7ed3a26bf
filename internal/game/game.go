package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/geopits/internal/config"
	"github.com/samdwyer/geopits/internal/entity"
	"github.com/samdwyer/geopits/internal/gamedata"
	"github.com/samdwyer/geopits/internal/telemetry"
	"github.com/samdwyer/geopits/internal/tracker"
	"github.com/samdwyer/geopits/internal/ui"
	"github.com/samdwyer/geopits/internal/world"
)

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	cfg      config.Config
	start    gamedata.LocationDef
	logger   *log.Logger
	clock    quartz.Clock
	state    State
	running  bool

	trackOnStart bool

	group     *errgroup.Group
	groupCtx  context.Context
	stopTrack context.CancelFunc
	route     *tracker.Route
	trackGen  int // incremented each time tracking starts
}

// trackFix is a tracker position tagged with the tracking run that produced it.
type trackFix struct {
	gen   int
	point world.Point
}

// New creates a new game instance starting at the given location.
func New(cfg config.Config, start gamedata.LocationDef, logger *log.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return newGame(cfg, start, logger, screen, quartz.NewReal()), nil
}

func newGame(cfg config.Config, start gamedata.LocationDef, logger *log.Logger, screen *ui.Screen, clock quartz.Clock) *Game {
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, gamedata.DefaultPalette()),
		cfg:      cfg,
		start:    start,
		logger:   logger.WithPrefix("game"),
		clock:    clock,
		state:    StateManual,
		running:  true,
	}
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	g.init(ctx)
	board := g.session.Board()

	// Main game loop
	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.stopTracking()
	err := g.group.Wait()
	g.screen.Close()

	g.logger.Info("Game over", "purse", g.session.Purse().Len(), "known_cells", board.Len())
	return err
}

// init builds the board and session and starts tracking if requested.
func (g *Game) init(ctx context.Context) {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")

	board := world.NewBoard(g.cfg.BoardOptions())
	player := entity.NewPlayer(g.start.Lat, g.start.Lng)
	g.session = NewSession(ctx, board, player, tracer, g.logger)
	g.session.SetMessage("No coins yet...")

	initSpan.SetAttributes(
		attribute.String("start.id", g.start.ID),
		attribute.Float64("start.lat", g.start.Lat),
		attribute.Float64("start.lng", g.start.Lng),
		attribute.Int("board.visibility_radius", board.VisibilityRadius()),
		attribute.Float64("board.spawn_probability", board.SpawnProbability()),
		attribute.Int("board.visible_pits", len(g.session.Visible())),
	)
	initSpan.End()

	g.logger.Info("Game started", "start", g.start.ID, "pits", len(g.session.Visible()))

	g.group, g.groupCtx = errgroup.WithContext(ctx)
	if g.trackOnStart {
		g.toggleTracking()
	}
}

// TrackOnStart makes Run begin in tracking mode.
func (g *Game) TrackOnStart() {
	g.trackOnStart = true
}

// render draws the current frame.
func (g *Game) render() {
	g.renderer.Render(ui.View{
		Board:    g.session.Board(),
		Here:     g.session.Here(),
		Pits:     g.session.Visible(),
		Selected: g.session.Selected(),
		Player:   g.session.Player(),
		Mode:     g.state.String(),
		Message:  g.session.Message(),
	})
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventInterrupt:
		g.handleFix(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryStep(ctx, North)
	case tcell.KeyDown:
		g.tryStep(ctx, South)
	case tcell.KeyLeft:
		g.tryStep(ctx, West)
	case tcell.KeyRight:
		g.tryStep(ctx, East)
	case tcell.KeyTab:
		g.session.SelectNext()
	case tcell.KeyBacktab:
		g.session.SelectPrev()

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'k':
			g.tryStep(ctx, North)
		case 'j':
			g.tryStep(ctx, South)
		case 'h':
			g.tryStep(ctx, West)
		case 'l':
			g.tryStep(ctx, East)
		case 'p':
			g.session.Poke(ctx)
		case 'd':
			g.session.Place(ctx)
		case 'g':
			g.toggleTracking()
		}
	}
}

// tryStep moves the player one tile unless tracking mode owns the position.
func (g *Game) tryStep(ctx context.Context, dir Direction) {
	if g.state == StateTracking {
		g.session.SetMessage("Tracking is on; press g to move by hand")
		return
	}
	g.session.Step(ctx, dir)
}

// handleFix applies a tracker position posted to the event loop. Fixes from a
// tracking run that has since been stopped are discarded.
func (g *Game) handleFix(ctx context.Context, ev *tcell.EventInterrupt) {
	fix, ok := ev.Data().(trackFix)
	if !ok || g.state != StateTracking {
		return
	}
	if fix.gen != g.trackGen {
		g.logger.Debug("Discarded stale position fix", "point", fix.point)
		return
	}
	g.session.MoveTo(ctx, fix.point)
}

// toggleTracking switches between manual movement and tracker fixes.
func (g *Game) toggleTracking() {
	if g.state == StateTracking {
		g.stopTracking()
		g.state = StateManual
		g.session.SetMessage("Tracking off")
		return
	}

	if g.cfg.PollInterval <= 0 || !g.start.HasRoute() {
		g.session.SetMessage("Tracking unavailable here")
		return
	}

	if g.route == nil {
		points := make([]world.Point, len(g.start.Route))
		for n, p := range g.start.Route {
			points[n] = world.Point{Lat: p[0], Lng: p[1]}
		}
		g.route = tracker.NewRoute(points...)
	}
	t := tracker.New(g.route, g.cfg.PollInterval, g.clock, g.logger)

	trackCtx, cancel := context.WithCancel(g.groupCtx)
	g.stopTrack = cancel
	g.trackGen++
	gen := g.trackGen
	g.state = StateTracking
	g.session.SetMessage("Tracking on")

	// Fixes cross to the event loop as interrupts; the tracker never touches
	// the board. A fix dropped on a full queue is superseded by the next one.
	g.group.Go(func() error {
		return t.Run(trackCtx, func(p world.Point) {
			if !g.screen.Post(trackFix{gen: gen, point: p}) {
				g.logger.Debug("Dropped position fix", "point", p)
			}
		})
	})
}

// stopTracking cancels the running tracker, if any.
func (g *Game) stopTracking() {
	if g.stopTrack != nil {
		g.stopTrack()
		g.stopTrack = nil
	}
}
