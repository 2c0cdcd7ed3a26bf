// Package exchange moves coins between pits and the player's purse.
//
// Both operations move exactly one coin or nothing at all, so the number of
// coins across all cells and the purse never changes. A pickup followed by a
// deposit on the same cell restores the cell exactly.
package exchange

import (
	"fmt"

	"github.com/samdwyer/geopits/internal/entity"
	"github.com/samdwyer/geopits/internal/world"
)

// Result describes the outcome of a pickup or deposit.
type Result struct {
	Success bool        // True if a coin moved
	Coin    entity.Coin // The coin that moved (zero value on failure)
	Message string      // Human-readable description
}

// Pickup moves the most recently added coin from the cell to the purse.
// An empty cell leaves both untouched.
func Pickup(cell *world.Cell, purse *entity.Purse) Result {
	if cell == nil {
		return Result{Success: false, Message: "No pit selected"}
	}
	coin, ok := cell.PopCoin()
	if !ok {
		return Result{Success: false, Message: fmt.Sprintf("Nothing to pick up at %s", cell)}
	}
	purse.Push(coin)
	return Result{
		Success: true,
		Coin:    coin,
		Message: fmt.Sprintf("Picked up coin %s from %s", coin, cell),
	}
}

// Deposit moves the most recently picked up coin from the purse to the cell.
// An empty purse leaves both untouched.
func Deposit(purse *entity.Purse, cell *world.Cell) Result {
	if cell == nil {
		return Result{Success: false, Message: "No pit selected"}
	}
	coin, ok := purse.Pop()
	if !ok {
		return Result{Success: false, Message: "Purse is empty"}
	}
	cell.PushCoin(coin)
	return Result{
		Success: true,
		Coin:    coin,
		Message: fmt.Sprintf("Placed coin %s in %s", coin, cell),
	}
}

// Total counts the coins held by the given cells and the purse.
// A cell listed more than once is counted once.
func Total(cells []*world.Cell, purse *entity.Purse) int {
	seen := make(map[*world.Cell]bool, len(cells))
	total := 0
	for _, c := range cells {
		if c == nil || seen[c] {
			continue
		}
		seen[c] = true
		total += c.Value()
	}
	if purse != nil {
		total += purse.Len()
	}
	return total
}
