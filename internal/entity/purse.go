package entity

// Purse holds the coins the player is carrying. The most recently added coin
// is the first one removed.
type Purse struct {
	coins []Coin
}

// NewPurse creates an empty purse.
func NewPurse() *Purse {
	return &Purse{coins: make([]Coin, 0)}
}

// Push adds a coin to the top of the purse.
func (p *Purse) Push(c Coin) {
	p.coins = append(p.coins, c)
}

// Pop removes and returns the most recently added coin.
// Returns false if the purse is empty.
func (p *Purse) Pop() (Coin, bool) {
	if len(p.coins) == 0 {
		return Coin{}, false
	}
	last := len(p.coins) - 1
	c := p.coins[last]
	p.coins = p.coins[:last]
	return c, true
}

// Peek returns the coin Pop would remove without removing it.
func (p *Purse) Peek() (Coin, bool) {
	if len(p.coins) == 0 {
		return Coin{}, false
	}
	return p.coins[len(p.coins)-1], true
}

// Len returns the number of coins held.
func (p *Purse) Len() int {
	return len(p.coins)
}

// Coins returns a copy of the held coins, oldest first.
func (p *Purse) Coins() []Coin {
	out := make([]Coin, len(p.coins))
	copy(out, p.coins)
	return out
}
