package board

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/dragonsol/card"
)

// Simplify moves every safely resolvable exposed card to the foundations
// (or, for the flower, to the flower spot) until nothing more can move.
// After any firing the scan starts over from the first holding cell, so
// the result is the same fixed point regardless of how it was reached.
// Dragons are never moved here; see CollectDragon.
func (b *Board) Simplify() {
	for b.collapseOne() {
	}
}

// collapseOne retires at most one exposed card and reports whether it did.
func (b *Board) collapseOne() bool {
	for i := range b.cells {
		c, ok := b.cells[i].Card()
		if ok && b.retire(c) {
			b.cells[i] = EmptyCell()
			log.Trace().Stringer("card", c).Int("cell", i).Msg("auto-collapse")
			return true
		}
	}
	for i, col := range b.columns {
		if len(col) == 0 {
			continue
		}
		c := col[len(col)-1]
		if b.retire(c) {
			b.columns[i] = col[:len(col)-1]
			log.Trace().Stringer("card", c).Int("column", i).Msg("auto-collapse")
			return true
		}
	}
	return false
}

// retire updates the flower flag or a foundation for c if c is safe to
// take out of play. The caller removes the card.
func (b *Board) retire(c card.Card) bool {
	switch c.Kind() {
	case card.KindFlower:
		b.flower = true
		return true
	case card.KindNumber:
		if !b.SafeToRetire(c) {
			return false
		}
		b.foundations[c.Suit()] = c.Rank()
		return true
	}
	return false
}

// SafeToRetire reports whether number card c can go to its foundation
// without ever being needed again. A 1 always can; a 2 needs its own
// suit's 1 out. A higher card n needs every suit's foundation at n-1 or
// more, since only an n-1 of another suit could still want to sit on it.
func (b *Board) SafeToRetire(c card.Card) bool {
	if !c.IsNumber() {
		return false
	}
	switch r := c.Rank(); {
	case r == 1:
		return true
	case r == 2:
		return b.foundations[c.Suit()] == 1
	default:
		for _, f := range b.foundations {
			if f+1 < r {
				return false
			}
		}
		return true
	}
}
