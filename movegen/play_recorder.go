package movegen

import (
	"fmt"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/move"
)

// PlayRecorderFunc is called once for every legal move the generator
// finds on b.
type PlayRecorderFunc func(gen *Generator, b *board.Board, m move.Move)

// AllPlaysRecorder plays m on a clone of b and records both.
func AllPlaysRecorder(gen *Generator, b *board.Board, m move.Move) {
	nb := b.Clone()
	if err := m.Apply(nb); err != nil {
		// The generator only proposes legal moves.
		panic(fmt.Sprintf("generated illegal move %v: %v", m.ShortDescription(), err))
	}
	gen.plays = append(gen.plays, Neighbor{Move: m, Board: nb})
}

// MovesOnlyRecorder records the move without building the resulting
// board. It is enough for counting leaves.
func MovesOnlyRecorder(gen *Generator, b *board.Board, m move.Move) {
	gen.plays = append(gen.plays, Neighbor{Move: m})
}
