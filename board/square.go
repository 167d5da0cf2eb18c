package board

import (
	"fmt"
	"strconv"

	"github.com/domino14/dragonsol/card"
)

// CellState is the state of a holding cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	// CellCollected marks a cell holding a retired dragon set. It never
	// holds a card again.
	CellCollected
	CellHolding
)

// A Cell is one of the three single-card holding cells.
type Cell struct {
	state CellState
	card  card.Card
}

func EmptyCell() Cell {
	return Cell{}
}

func CollectedCell() Cell {
	return Cell{state: CellCollected}
}

func HoldingCell(c card.Card) Cell {
	return Cell{state: CellHolding, card: c}
}

func (c Cell) State() CellState {
	return c.state
}

// Card returns the held card, if any.
func (c Cell) Card() (card.Card, bool) {
	if c.state != CellHolding {
		return card.Card{}, false
	}
	return c.card, true
}

func (c Cell) IsEmpty() bool {
	return c.state == CellEmpty
}

// DisplayString is the two-character form used when drawing a board.
func (c Cell) DisplayString() string {
	switch c.state {
	case CellCollected:
		return "CO"
	case CellHolding:
		return c.card.String()
	}
	return "  "
}

func (c Cell) String() string {
	switch c.state {
	case CellCollected:
		return "<collected>"
	case CellHolding:
		return fmt.Sprintf("<%v>", c.card)
	}
	return "<empty>"
}

const (
	NumCells   = 3
	NumColumns = 8
)

// SlotKind says whether a Slot names a holding cell or a tableau column.
type SlotKind uint8

const (
	SlotCell SlotKind = iota
	SlotColumn
)

// A Slot addresses the top of a holding cell or a tableau column. It is
// the unit of the push/pop/peek primitives.
type Slot struct {
	kind  SlotKind
	index uint8
}

// CellSlot addresses holding cell i (0-2).
func CellSlot(i int) Slot {
	return Slot{kind: SlotCell, index: uint8(i)}
}

// ColumnSlot addresses tableau column i (0-7).
func ColumnSlot(i int) Slot {
	return Slot{kind: SlotColumn, index: uint8(i)}
}

func (s Slot) Kind() SlotKind { return s.kind }

func (s Slot) Index() int { return int(s.index) }

func (s Slot) IsCell() bool { return s.kind == SlotCell }

func (s Slot) IsColumn() bool { return s.kind == SlotColumn }

func (s Slot) valid() bool {
	switch s.kind {
	case SlotCell:
		return s.index < NumCells
	case SlotColumn:
		return s.index < NumColumns
	}
	return false
}

// String uses 1-based numbering, as shown to a player.
func (s Slot) String() string {
	if s.kind == SlotCell {
		return "cell " + strconv.Itoa(int(s.index)+1)
	}
	return "column " + strconv.Itoa(int(s.index)+1)
}

// A Location addresses a holding cell, or one position within a tableau
// column (0 is the bottom card). It is used for read-only access.
type Location struct {
	Slot
	Pos int
}

func CellLocation(i int) Location {
	return Location{Slot: CellSlot(i)}
}

func ColumnLocation(col, pos int) Location {
	return Location{Slot: ColumnSlot(col), Pos: pos}
}
