// Package luck provides the deterministic pseudo-random oracle that decides
// where pits spawn and how many coins they start with.
//
// Every value is a pure function of its key, so the same cell yields the same
// result in every process without any stored world state.
package luck

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const (
	// TagPit keys the spawn decision for a cell.
	TagPit = "pit"
	// TagInitialValue keys the number of coins minted into a new pit.
	TagInitialValue = "initialValue"
)

// unitScale is 2^53, the number of distinct float64 values in [0, 1) with a
// fixed exponent.
const unitScale = 1 << 53

// String returns a reproducible value in [0, 1) for an arbitrary string key.
func String(key string) float64 {
	return unit(xxhash.Sum64String(key))
}

// Value returns a reproducible value in [0, 1) for a purpose tag and a cell
// coordinate pair.
//
// The key is hashed from its binary form: the tag bytes, a zero separator,
// then i and j as big-endian 64-bit integers. Coordinates never pass through
// string formatting.
func Value(tag string, i, j int) float64 {
	buf := make([]byte, 0, len(tag)+1+16)
	buf = append(buf, tag...)
	buf = append(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(i)))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(j)))
	return unit(xxhash.Sum64(buf))
}

// Below reports whether the oracle value for (tag, i, j) is strictly below
// the given threshold.
func Below(tag string, i, j int, threshold float64) bool {
	return Value(tag, i, j) < threshold
}

// Intn scales the oracle value for (tag, i, j) to an integer in [0, n).
// It returns 0 when n is not positive.
func Intn(tag string, i, j, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Value(tag, i, j) * float64(n))
}

// unit maps a 64-bit hash onto [0, 1) using its top 53 bits.
func unit(h uint64) float64 {
	return float64(h>>11) / unitScale
}
