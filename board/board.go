// Package board contains the full state of a patience game: the three
// holding cells, the three suit foundations, the eight tableau columns and
// the flower flag. It also implements the rules that mutate that state:
// the push/pop primitives, the automatic foundation collapse, dragon
// collection and card moves.
package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/domino14/dragonsol/card"
)

// A Board is the whole game state. The zero Board is an empty table with
// every card accounted for nowhere; use New, ParseNotation, or a dealer to
// get a real one.
type Board struct {
	flower      bool
	cells       [NumCells]Cell
	foundations [card.NumSuits]int
	columns     [NumColumns][]card.Card
}

var ErrInvalidDeck = errors.New("board does not hold exactly one full deck")

// New builds a board from its parts and checks that every card of the
// deck is accounted for exactly once. The columns are copied. The board is
// not simplified.
func New(flower bool, cells [NumCells]Cell, foundations [card.NumSuits]int,
	columns [NumColumns][]card.Card) (*Board, error) {

	b := &Board{flower: flower, cells: cells, foundations: foundations}
	for i, col := range columns {
		b.columns[i] = slices.Clone(col)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Clone returns an independently owned deep copy of b.
func (b *Board) Clone() *Board {
	nb := &Board{
		flower:      b.flower,
		cells:       b.cells,
		foundations: b.foundations,
	}
	for i, col := range b.columns {
		if len(col) > 0 {
			nb.columns[i] = slices.Clone(col)
		}
	}
	return nb
}

// CopyFrom overwrites b with the contents of other, reusing b's column
// storage where it can.
func (b *Board) CopyFrom(other *Board) {
	b.flower = other.flower
	b.cells = other.cells
	b.foundations = other.foundations
	for i, col := range other.columns {
		b.columns[i] = append(b.columns[i][:0], col...)
	}
}

// Equal compares two boards structurally.
func (b *Board) Equal(other *Board) bool {
	if b.flower != other.flower || b.cells != other.cells ||
		b.foundations != other.foundations {
		return false
	}
	for i := range b.columns {
		if !slices.Equal(b.columns[i], other.columns[i]) {
			return false
		}
	}
	return true
}

// Flower reports whether the flower has been collected.
func (b *Board) Flower() bool {
	return b.flower
}

// Foundation returns how many cards of suit s (1..n) have been retired.
func (b *Board) Foundation(s card.Suit) int {
	return b.foundations[s]
}

func (b *Board) Cell(i int) Cell {
	return b.cells[i]
}

// Column returns a copy of column i, bottom card first.
func (b *Board) Column(i int) []card.Card {
	return slices.Clone(b.columns[i])
}

func (b *Board) ColumnLen(i int) int {
	return len(b.columns[i])
}

// Cleared reports whether every card has left the tableau and the holding
// cells.
func (b *Board) Cleared() bool {
	for _, c := range b.cells {
		if c.state == CellHolding {
			return false
		}
	}
	for _, col := range b.columns {
		if len(col) > 0 {
			return false
		}
	}
	return true
}

// Validate checks the full-deck invariant: the cards on the board, the
// flower flag, the foundation prefixes and four dragons per collected
// cell add up to exactly one deck.
func (b *Board) Validate() error {
	counts := map[card.Card]int{}
	collected := 0
	for i, c := range b.cells {
		switch c.state {
		case CellCollected:
			collected++
		case CellHolding:
			if !c.card.Valid() {
				return fmt.Errorf("%w: malformed card in cell %d", ErrInvalidDeck, i)
			}
			counts[c.card]++
		case CellEmpty:
		default:
			return fmt.Errorf("%w: cell %d has unknown state %d", ErrInvalidDeck, i, c.state)
		}
	}
	for i, col := range b.columns {
		for _, c := range col {
			if !c.Valid() {
				return fmt.Errorf("%w: malformed card in column %d", ErrInvalidDeck, i)
			}
			counts[c]++
		}
	}
	if b.flower {
		counts[card.Flower()]++
	}
	for _, s := range card.Suits {
		f := b.foundations[s]
		if f < 0 || f > card.MaxRank {
			return fmt.Errorf("%w: %v foundation is %d", ErrInvalidDeck, s, f)
		}
		for r := card.MinRank; r <= f; r++ {
			counts[card.Number(s, r)]++
		}
	}
	// Collected cells don't say which color they hold, so every color is
	// either fully present or fully gone, and the gone ones must match the
	// collected cells.
	gone := 0
	for _, col := range card.Colors {
		switch n := counts[card.Dragon(col)]; n {
		case 0:
			gone++
		case card.DragonsPerColor:
		default:
			return fmt.Errorf("%w: %d %v dragons", ErrInvalidDeck, n, col)
		}
		delete(counts, card.Dragon(col))
	}
	if gone != collected {
		return fmt.Errorf("%w: %d dragon sets missing but %d collected",
			ErrInvalidDeck, gone, collected)
	}
	for _, c := range card.FullDeck() {
		if c.Kind() == card.KindDragon {
			continue
		}
		if counts[c] != 1 {
			return fmt.Errorf("%w: %v appears %d times", ErrInvalidDeck, c, counts[c])
		}
	}
	return nil
}
