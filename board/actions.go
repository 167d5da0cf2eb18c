package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dragonsol/card"
)

// Rule violations. A failed action leaves the board untouched.
var (
	ErrDragonNotCollectable = errors.New("dragon set is not collectable")
	ErrBadCount             = errors.New("bad number of cards to move")
	ErrSameSlot             = errors.New("source and destination are the same")
	ErrEmptySource          = errors.New("source does not hold enough cards")
	ErrBrokenRun            = errors.New("cards to move do not form a run")
	ErrNotAppendable        = errors.New("destination cannot take the card")
)

// CollectDragon parks the four exposed dragons of color col in a holding
// cell, which becomes permanently collected, then simplifies.
func (b *Board) CollectDragon(col card.Color) error {
	idx, ok := b.DragonCollectable(col)
	if !ok {
		return fmt.Errorf("%w: %v", ErrDragonNotCollectable, col)
	}
	b.cells[idx] = CollectedCell()
	for i, c := range b.cells {
		if c.state == CellHolding && c.card.IsDragon(col) {
			b.cells[i] = EmptyCell()
		}
	}
	for i, stack := range b.columns {
		if len(stack) > 0 && stack[len(stack)-1].IsDragon(col) {
			b.columns[i] = stack[:len(stack)-1]
		}
	}
	log.Debug().Stringer("color", col).Int("cell", idx).Msg("collected-dragons")
	b.Simplify()
	return nil
}

// TopRun returns the top n cards of s, bottom-most first, or false if s
// holds fewer than n cards. The result is a copy.
func (b *Board) TopRun(s Slot, n int) ([]card.Card, bool) {
	b.mustSlot(s)
	if s.kind == SlotCell {
		c, ok := b.cells[s.index].Card()
		if !ok || n != 1 {
			return nil, false
		}
		return []card.Card{c}, true
	}
	col := b.columns[s.index]
	if n < 1 || n > len(col) {
		return nil, false
	}
	return slices.Clone(col[len(col)-n:]), true
}

// IsRun reports whether every card in cards (bottom-most first) can stack
// onto the one before it.
func IsRun(cards []card.Card) bool {
	for i := 1; i < len(cards); i++ {
		if !card.CanStackOnto(cards[i], cards[i-1]) {
			return false
		}
	}
	return true
}

// CheckMove reports why moving count cards from src to dst would be
// illegal, or nil if it is legal.
func (b *Board) CheckMove(src Slot, count int, dst Slot) error {
	b.mustSlot(src)
	b.mustSlot(dst)
	if count < 1 {
		return fmt.Errorf("%w: %d", ErrBadCount, count)
	}
	if src == dst {
		return fmt.Errorf("%w: %v", ErrSameSlot, src)
	}
	if (src.IsCell() || dst.IsCell()) && count != 1 {
		return fmt.Errorf("%w: %d cards with a holding cell", ErrBadCount, count)
	}
	run, ok := b.TopRun(src, count)
	if !ok {
		return fmt.Errorf("%w: %d from %v", ErrEmptySource, count, src)
	}
	if !IsRun(run) {
		return fmt.Errorf("%w: %v", ErrBrokenRun, run)
	}
	if !b.Appendable(dst, run[0]) {
		return fmt.Errorf("%w: %v onto %v", ErrNotAppendable, run[0], dst)
	}
	return nil
}

// MoveCards moves the top count cards of src onto dst, keeping their
// order, then simplifies.
func (b *Board) MoveCards(src Slot, count int, dst Slot) error {
	if err := b.CheckMove(src, count, dst); err != nil {
		return err
	}
	moved := make([]card.Card, count)
	for i := 0; i < count; i++ {
		moved[i] = b.Pop(src)
	}
	slices.Reverse(moved)
	for _, c := range moved {
		b.Push(dst, c)
	}
	log.Debug().Stringer("src", src).Stringer("dst", dst).Int("count", count).
		Msg("moved-cards")
	b.Simplify()
	return nil
}
