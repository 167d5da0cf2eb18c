// Package movegen generates every legal action from a board together with
// the board each one leads to. It only uses the board's own primitives, so
// the rules live in one place.
package movegen

import (
	"errors"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/card"
	"github.com/domino14/dragonsol/move"
)

// A Neighbor is a legal move and the simplified board it produces. Board
// is nil when the generator was built with MovesOnlyRecorder.
type Neighbor struct {
	Move  move.Move
	Board *board.Board
}

// dragonOrder is the order in which dragon collections are generated.
var dragonOrder = [card.NumColors]card.Color{card.Red, card.White, card.Green}

// Generator generates moves. Its play slice is reused from call to call,
// so a Generator must not be shared between goroutines, and the result of
// GenAll is only valid until the next call.
type Generator struct {
	plays    []Neighbor
	recorder PlayRecorderFunc
}

// NewGenerator returns a generator that records resulting boards.
func NewGenerator() *Generator {
	return &Generator{recorder: AllPlaysRecorder}
}

// SetPlayRecorder changes what gets recorded for each legal move.
func (gen *Generator) SetPlayRecorder(pr PlayRecorderFunc) {
	gen.recorder = pr
}

// Plays returns the moves found by the last GenAll.
func (gen *Generator) Plays() []Neighbor {
	return gen.plays
}

// GenAll generates, in order: dragon collections; holding cell to column
// moves; column to column moves, for every run length that is still a
// run; and, only if none of those exist, moves that park a column top in
// the first empty holding cell. Parking never helps by itself, so keeping
// it for when nothing else is possible trims the tree a solver has to
// search without losing any reachable position.
func (gen *Generator) GenAll(b *board.Board) []Neighbor {
	gen.plays = gen.plays[:0]
	gen.genDragons(b)
	gen.genCellToColumn(b)
	gen.genColumnToColumn(b)
	if len(gen.plays) == 0 {
		gen.genColumnToCell(b)
	}
	return gen.plays
}

func (gen *Generator) genDragons(b *board.Board) {
	for _, col := range dragonOrder {
		if _, ok := b.DragonCollectable(col); ok {
			gen.recorder(gen, b, move.NewCollectDragonMove(col))
		}
	}
}

func (gen *Generator) genCellToColumn(b *board.Board) {
	for i := 0; i < board.NumCells; i++ {
		src := board.CellSlot(i)
		c, ok := b.PeekTop(src)
		if !ok {
			continue
		}
		for j := 0; j < board.NumColumns; j++ {
			dst := board.ColumnSlot(j)
			if b.Appendable(dst, c) {
				gen.recorder(gen, b, move.NewTransferMove(src, 1, dst))
			}
		}
	}
}

func (gen *Generator) genColumnToColumn(b *board.Board) {
	for i := 0; i < board.NumColumns; i++ {
		n := b.ColumnLen(i)
		if n == 0 {
			continue
		}
		src := board.ColumnSlot(i)
		col := b.Column(i)
		for j := 0; j < board.NumColumns; j++ {
			if j == i {
				continue
			}
			dst := board.ColumnSlot(j)
			for count := 1; count <= n; count++ {
				base := col[n-count]
				if count > 1 && !card.CanStackOnto(col[n-count+1], base) {
					break
				}
				if b.Appendable(dst, base) {
					gen.recorder(gen, b, move.NewTransferMove(src, count, dst))
				}
			}
		}
	}
}

func (gen *Generator) genColumnToCell(b *board.Board) {
	target := -1
	for i := 0; i < board.NumCells; i++ {
		if b.Cell(i).IsEmpty() {
			target = i
			break
		}
	}
	if target < 0 {
		return
	}
	dst := board.CellSlot(target)
	for i := 0; i < board.NumColumns; i++ {
		if b.ColumnLen(i) > 0 {
			gen.recorder(gen, b, move.NewTransferMove(board.ColumnSlot(i), 1, dst))
		}
	}
}

// Neighbors returns every legal move from b with its resulting board.
func Neighbors(b *board.Board) []Neighbor {
	gen := NewGenerator()
	return gen.GenAll(b)
}

var ErrNoConnectingMove = errors.New("no single move leads from one board to the other")

// FindMove returns the first generated move that turns from into to.
func FindMove(from, to *board.Board) (move.Move, error) {
	for _, n := range Neighbors(from) {
		if n.Board.Equal(to) {
			return n.Move, nil
		}
	}
	return move.Move{}, ErrNoConnectingMove
}
