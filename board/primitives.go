package board

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/dragonsol/card"
)

func (b *Board) mustSlot(s Slot) {
	if !s.valid() {
		panic(fmt.Sprintf("slot out of range: kind %d index %d", s.kind, s.index))
	}
}

// PeekTop returns the card in a holding cell or the last card of a column.
func (b *Board) PeekTop(s Slot) (card.Card, bool) {
	b.mustSlot(s)
	if s.kind == SlotCell {
		return b.cells[s.index].Card()
	}
	col := b.columns[s.index]
	if len(col) == 0 {
		return card.Card{}, false
	}
	return col[len(col)-1], true
}

// Pop removes and returns the top card of s. Popping a vacant slot is a
// programming error and panics.
func (b *Board) Pop(s Slot) card.Card {
	b.mustSlot(s)
	if s.kind == SlotCell {
		c, ok := b.cells[s.index].Card()
		if !ok {
			panic("pop from vacant " + s.String())
		}
		b.cells[s.index] = EmptyCell()
		return c
	}
	col := b.columns[s.index]
	if len(col) == 0 {
		panic("pop from vacant " + s.String())
	}
	c := col[len(col)-1]
	b.columns[s.index] = col[:len(col)-1]
	return c
}

// Push appends c to a column, or places it in an empty holding cell.
// Pushing into an occupied or collected cell panics; check Appendable
// first.
func (b *Board) Push(s Slot, c card.Card) {
	b.mustSlot(s)
	if s.kind == SlotCell {
		if !b.cells[s.index].IsEmpty() {
			panic("push into unavailable " + s.String())
		}
		b.cells[s.index] = HoldingCell(c)
		return
	}
	b.columns[s.index] = append(b.columns[s.index], c)
}

// Appendable reports whether c may be put on s: an empty holding cell, an
// empty column, or a column whose top card c can stack onto.
func (b *Board) Appendable(s Slot, c card.Card) bool {
	b.mustSlot(s)
	if s.kind == SlotCell {
		return b.cells[s.index].IsEmpty()
	}
	top, ok := b.PeekTop(s)
	if !ok {
		return true
	}
	return card.CanStackOnto(c, top)
}

// At reads the card at a location. A location past the end of a column,
// or an out-of-range index, panics. An empty or collected cell reports
// false.
func (b *Board) At(l Location) (card.Card, bool) {
	b.mustSlot(l.Slot)
	if l.kind == SlotCell {
		return b.cells[l.index].Card()
	}
	col := b.columns[l.index]
	if l.Pos < 0 || l.Pos >= len(col) {
		panic(fmt.Sprintf("position %d out of range for %v of length %d", l.Pos, l.Slot, len(col)))
	}
	return col[l.Pos], true
}

// exposedDragons counts the dragons of color col sitting in holding cells
// or on top of columns.
func (b *Board) exposedDragons(col card.Color) int {
	n := lo.CountBy(b.cells[:], func(c Cell) bool {
		return c.state == CellHolding && c.card.IsDragon(col)
	})
	n += lo.CountBy(b.columns[:], func(stack []card.Card) bool {
		return len(stack) > 0 && stack[len(stack)-1].IsDragon(col)
	})
	return n
}

// DragonCollectable returns the index of the holding cell that would
// receive the dragon set of color col: the first cell that is empty or
// already holds such a dragon. It reports false unless all four dragons
// of that color are exposed.
func (b *Board) DragonCollectable(col card.Color) (int, bool) {
	if b.exposedDragons(col) != card.DragonsPerColor {
		return 0, false
	}
	_, idx, ok := lo.FindIndexOf(b.cells[:], func(c Cell) bool {
		return c.state == CellEmpty || (c.state == CellHolding && c.card.IsDragon(col))
	})
	if !ok {
		return 0, false
	}
	return idx, true
}
