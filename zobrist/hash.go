package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/card"
)

const bignum = 1<<63 - 2

// MaxColumnDepth bounds how deep a column can get. A column can never
// hold more than the whole deck.
const MaxColumnDepth = card.DeckSize

// collectedIdx is the cell table entry for a collected dragon set.
const collectedIdx = card.NumFaces

// Zobrist generates a hash for a board position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	flower      uint64
	cellTable   [board.NumCells][card.NumFaces + 1]uint64
	foundations [card.NumSuits][card.MaxRank + 1]uint64
	posTable    [board.NumColumns][MaxColumnDepth][card.NumFaces]uint64
}

func (z *Zobrist) Initialize() {
	for i := range z.cellTable {
		for j := range z.cellTable[i] {
			z.cellTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for i := range z.foundations {
		// A foundation of 0 hashes to nothing, like an empty square.
		for j := 1; j <= card.MaxRank; j++ {
			z.foundations[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for i := range z.posTable {
		for j := range z.posTable[i] {
			for k := range z.posTable[i][j] {
				z.posTable[i][j][k] = frand.Uint64n(bignum) + 1
			}
		}
	}
	z.flower = frand.Uint64n(bignum) + 1
}

// Hash returns the key for b. Boards that are Equal have the same key.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	if b.Flower() {
		key ^= z.flower
	}
	for i := 0; i < board.NumCells; i++ {
		cell := b.Cell(i)
		switch cell.State() {
		case board.CellCollected:
			key ^= z.cellTable[i][collectedIdx]
		case board.CellHolding:
			c, _ := cell.Card()
			key ^= z.cellTable[i][c.Face()]
		}
	}
	for _, s := range card.Suits {
		key ^= z.foundations[s][b.Foundation(s)]
	}
	for i := 0; i < board.NumColumns; i++ {
		for p := 0; p < b.ColumnLen(i); p++ {
			c, _ := b.At(board.ColumnLocation(i, p))
			key ^= z.posTable[i][p][c.Face()]
		}
	}
	return key
}
