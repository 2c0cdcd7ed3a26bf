package world

import (
	"fmt"

	"github.com/samdwyer/geopits/internal/entity"
)

// Cell is a canonical grid square. A Board hands out exactly one *Cell per
// coordinate pair, so coin changes made through any reference are visible
// through every other.
type Cell struct {
	I, J  int           // Grid coordinates
	Pit   bool          // True if the oracle placed a pit here
	Coins []entity.Coin // Coins currently in the cell, oldest first
}

// String returns the cell coordinates as "i,j".
func (c *Cell) String() string {
	return fmt.Sprintf("%d,%d", c.I, c.J)
}

// Value returns the number of coins in the cell.
func (c *Cell) Value() int {
	return len(c.Coins)
}

// PushCoin adds a coin to the top of the cell's list.
func (c *Cell) PushCoin(coin entity.Coin) {
	c.Coins = append(c.Coins, coin)
}

// PopCoin removes and returns the most recently added coin.
// Returns false if the cell is empty.
func (c *Cell) PopCoin() (entity.Coin, bool) {
	if len(c.Coins) == 0 {
		return entity.Coin{}, false
	}
	last := len(c.Coins) - 1
	coin := c.Coins[last]
	c.Coins = c.Coins[:last]
	return coin, true
}

// cellKey is the registry key for a coordinate pair.
type cellKey struct {
	i, j int
}
