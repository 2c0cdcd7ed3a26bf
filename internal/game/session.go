package game

import (
	"context"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/geopits/internal/entity"
	"github.com/samdwyer/geopits/internal/exchange"
	"github.com/samdwyer/geopits/internal/world"
)

// Direction is a one-tile step on the map.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// delta returns the latitude and longitude change in tiles.
func (d Direction) delta() (int, int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Session is the player's view of the board: where they are, which pits are
// in sight, and which pit they are interacting with. All methods must be
// called from the event loop goroutine.
type Session struct {
	board  *world.Board
	player *entity.Player
	tracer trace.Tracer
	logger *log.Logger

	visible  []*world.Cell
	selected int // index into visible, -1 when nothing is selected
	message  string
}

// NewSession creates a session and computes the pits visible from the
// player's starting position.
func NewSession(ctx context.Context, board *world.Board, player *entity.Player, tracer trace.Tracer, logger *log.Logger) *Session {
	s := &Session{
		board:    board,
		player:   player,
		tracer:   tracer,
		logger:   logger.WithPrefix("session"),
		selected: -1,
	}
	s.Refresh(ctx)
	return s
}

// Refresh recomputes the visible pits around the player.
// The previous selection is kept if that pit is still in sight.
func (s *Session) Refresh(ctx context.Context) []*world.Cell {
	_, span := s.tracer.Start(ctx, "board.refresh")
	defer span.End()

	previous := s.Selected()
	here := s.board.CellForPoint(s.Position())
	s.visible = s.board.CellsNearPoint(s.Position())

	s.selected = -1
	for n, c := range s.visible {
		if c == previous {
			s.selected = n
			break
		}
		if c == here || (s.selected < 0 && n == 0) {
			s.selected = n
		}
	}

	span.SetAttributes(
		attribute.Int("cell.i", here.I),
		attribute.Int("cell.j", here.J),
		attribute.Int("board.visible_pits", len(s.visible)),
		attribute.Int("board.known_cells", s.board.Len()),
	)
	s.logger.Debug("Refreshed neighborhood", "cell", here, "pits", len(s.visible))
	return s.visible
}

// Step moves the player one tile in the given direction.
func (s *Session) Step(ctx context.Context, dir Direction) {
	di, dj := dir.delta()
	step := s.board.TileDegrees()
	s.player.Move(float64(di)*step, float64(dj)*step)
	s.Refresh(ctx)
}

// MoveTo places the player at an absolute position, such as a tracker fix.
func (s *Session) MoveTo(ctx context.Context, p world.Point) {
	s.player.MoveTo(p.Lat, p.Lng)
	s.Refresh(ctx)
}

// Position returns the player's current position.
func (s *Session) Position() world.Point {
	lat, lng := s.player.Position()
	return world.Point{Lat: lat, Lng: lng}
}

// Here returns the cell under the player.
func (s *Session) Here() *world.Cell {
	return s.board.CellForPoint(s.Position())
}

// Visible returns the pits currently in sight, in scan order.
func (s *Session) Visible() []*world.Cell {
	return s.visible
}

// Selected returns the selected pit, or nil if none is in sight.
func (s *Session) Selected() *world.Cell {
	if s.selected < 0 || s.selected >= len(s.visible) {
		return nil
	}
	return s.visible[s.selected]
}

// SelectNext moves the selection to the next visible pit, wrapping around.
func (s *Session) SelectNext() {
	if len(s.visible) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.visible)
}

// SelectPrev moves the selection to the previous visible pit, wrapping around.
func (s *Session) SelectPrev() {
	if len(s.visible) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.visible)) % len(s.visible)
}

// Poke picks up a coin from the selected pit.
func (s *Session) Poke(ctx context.Context) exchange.Result {
	_, span := s.tracer.Start(ctx, "exchange.pickup")
	defer span.End()

	result := exchange.Pickup(s.Selected(), s.player.Purse)
	s.record(span, result)
	return result
}

// Place deposits the most recently picked up coin into the selected pit.
func (s *Session) Place(ctx context.Context) exchange.Result {
	_, span := s.tracer.Start(ctx, "exchange.deposit")
	defer span.End()

	result := exchange.Deposit(s.player.Purse, s.Selected())
	s.record(span, result)
	return result
}

// record stores the result message and annotates the span.
func (s *Session) record(span trace.Span, result exchange.Result) {
	s.message = result.Message
	span.SetAttributes(
		attribute.Bool("exchange.success", result.Success),
		attribute.Int("purse.size", s.player.Purse.Len()),
	)
	if pit := s.Selected(); pit != nil {
		span.SetAttributes(
			attribute.Int("cell.i", pit.I),
			attribute.Int("cell.j", pit.J),
			attribute.Int("cell.value", pit.Value()),
		)
	}
	if result.Success {
		s.logger.Info(result.Message, "purse", s.player.Purse.Len())
	} else {
		s.logger.Debug(result.Message)
	}
}

// Purse returns the player's purse.
func (s *Session) Purse() *entity.Purse {
	return s.player.Purse
}

// Player returns the player.
func (s *Session) Player() *entity.Player {
	return s.player
}

// Board returns the board the session explores.
func (s *Session) Board() *world.Board {
	return s.board
}

// Message returns the outcome of the last action.
func (s *Session) Message() string {
	return s.message
}

// SetMessage replaces the status message.
func (s *Session) SetMessage(msg string) {
	s.message = msg
}

// Total counts the coins in sight plus the purse.
func (s *Session) Total() int {
	return exchange.Total(s.visible, s.player.Purse)
}
