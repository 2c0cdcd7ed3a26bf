// Package entity provides game entities like coins, the purse, and the player.
package entity

import (
	"fmt"
	"strings"
)

// Coin is a single unit of value. It is identified by the cell it was minted
// in and its serial number within that cell.
type Coin struct {
	X, Y  int // Minting cell coordinates
	Index int // Serial number within the minting cell
}

// String returns the coin identity in "i:j#serial" form.
func (c Coin) String() string {
	return fmt.Sprintf("%d:%d#%d", c.X, c.Y, c.Index)
}

// DescribeCoins formats a coin list for display, oldest first.
// An empty list yields an empty string.
func DescribeCoins(coins []Coin) string {
	parts := make([]string, len(coins))
	for n, c := range coins {
		parts[n] = fmt.Sprintf("X: %d, Y: %d index: %d", c.X, c.Y, c.Index)
	}
	return strings.Join(parts, " | ")
}
