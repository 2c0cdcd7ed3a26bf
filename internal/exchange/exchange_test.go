package exchange

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/geopits/internal/entity"
	"github.com/samdwyer/geopits/internal/world"
)

func newPit(i, j, coins int) *world.Cell {
	c := &world.Cell{I: i, J: j, Pit: true}
	for n := 0; n < coins; n++ {
		c.PushCoin(entity.Coin{X: i, Y: j, Index: n})
	}
	return c
}

func TestPickup(t *testing.T) {
	cell := newPit(1, 2, 2)
	purse := entity.NewPurse()

	result := Pickup(cell, purse)
	require.True(t, result.Success)
	assert.Equal(t, entity.Coin{X: 1, Y: 2, Index: 1}, result.Coin)
	assert.Equal(t, 1, cell.Value())
	assert.Equal(t, 1, purse.Len())
	assert.Contains(t, result.Message, "1:2#1")
}

func TestPickupFromEmptyCell(t *testing.T) {
	cell := newPit(0, 0, 0)
	purse := entity.NewPurse()
	purse.Push(entity.Coin{X: 9, Y: 9, Index: 0})

	result := Pickup(cell, purse)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Nothing to pick up")
	assert.Equal(t, 0, cell.Value())
	assert.Equal(t, 1, purse.Len())
}

func TestDepositFromEmptyPurse(t *testing.T) {
	cell := newPit(3, 3, 1)
	purse := entity.NewPurse()

	result := Deposit(purse, cell)
	assert.False(t, result.Success)
	assert.Equal(t, "Purse is empty", result.Message)
	assert.Equal(t, 1, cell.Value())
}

func TestNilCell(t *testing.T) {
	purse := entity.NewPurse()
	purse.Push(entity.Coin{})

	assert.False(t, Pickup(nil, purse).Success)
	assert.False(t, Deposit(purse, nil).Success)
	assert.Equal(t, 1, purse.Len())
}

func TestPickupThenDepositRestoresCell(t *testing.T) {
	cell := newPit(-4, 7, 3)
	before := append([]entity.Coin(nil), cell.Coins...)
	purse := entity.NewPurse()

	require.True(t, Pickup(cell, purse).Success)
	require.True(t, Deposit(purse, cell).Success)

	assert.Equal(t, before, cell.Coins)
	assert.Equal(t, 0, purse.Len())
}

func TestDepositMovesLatestPickup(t *testing.T) {
	a := newPit(0, 0, 1)
	b := newPit(0, 1, 1)
	target := newPit(5, 5, 0)
	purse := entity.NewPurse()

	Pickup(a, purse)
	Pickup(b, purse)

	result := Deposit(purse, target)
	require.True(t, result.Success)
	assert.Equal(t, entity.Coin{X: 0, Y: 1, Index: 0}, result.Coin)
	assert.Equal(t, []entity.Coin{{X: 0, Y: 1, Index: 0}}, target.Coins)
}

func TestConservation(t *testing.T) {
	cells := []*world.Cell{newPit(0, 0, 3), newPit(0, 1, 0), newPit(1, 0, 2), newPit(-1, -1, 1)}
	purse := entity.NewPurse()
	want := Total(cells, purse)

	rng := rand.New(rand.NewSource(12345))
	for step := 0; step < 500; step++ {
		cell := cells[rng.Intn(len(cells))]
		if rng.Intn(2) == 0 {
			Pickup(cell, purse)
		} else {
			Deposit(purse, cell)
		}
		require.Equal(t, want, Total(cells, purse), "step %d", step)
	}
}

func TestNoCoinDuplicated(t *testing.T) {
	cells := []*world.Cell{newPit(0, 0, 2), newPit(2, 2, 2)}
	purse := entity.NewPurse()

	Pickup(cells[0], purse)
	Pickup(cells[0], purse)
	Deposit(purse, cells[1])
	Pickup(cells[1], purse)

	seen := map[entity.Coin]int{}
	for _, c := range cells {
		for _, coin := range c.Coins {
			seen[coin]++
		}
	}
	for _, coin := range purse.Coins() {
		seen[coin]++
	}
	for coin, n := range seen {
		assert.Equal(t, 1, n, "coin %s appears %d times", coin, n)
	}
	assert.Len(t, seen, 4)
}

func TestTotalCountsEachCellOnce(t *testing.T) {
	cell := newPit(0, 0, 2)
	purse := entity.NewPurse()
	purse.Push(entity.Coin{X: 1})

	assert.Equal(t, 3, Total([]*world.Cell{cell, cell, nil}, purse))
	assert.Equal(t, 2, Total([]*world.Cell{cell}, nil))
}

func TestWithBoard(t *testing.T) {
	board := world.NewBoard(world.DefaultOptions())
	pits := board.CellsNearPoint(world.Point{Lat: 0, Lng: 0})
	purse := entity.NewPurse()
	want := Total(pits, purse)

	for _, pit := range pits {
		for Pickup(pit, purse).Success {
		}
	}
	assert.Equal(t, want, purse.Len())

	// The same canonical cells reflect the emptied state on revisit.
	for _, pit := range board.CellsNearPoint(world.Point{Lat: 0, Lng: 0}) {
		assert.Equal(t, 0, pit.Value(), "pit %s", pit)
	}

	for purse.Len() > 0 {
		Deposit(purse, pits[0])
	}
	if len(pits) > 0 {
		assert.Equal(t, want, pits[0].Value())
	}
}
