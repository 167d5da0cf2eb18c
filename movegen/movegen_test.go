package movegen

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/samber/lo"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/card"
	"github.com/domino14/dragonsol/deal"
	"github.com/domino14/dragonsol/move"
)

func shortDescs(plays []Neighbor) []string {
	return lo.Map(plays, func(n Neighbor, _ int) string {
		return n.Move.ShortDescription()
	})
}

func TestGenLateGame(t *testing.T) {
	is := is.New(t)
	b := board.MustParseNotation(board.LateGame)
	plays := Neighbors(b)
	is.Equal(shortDescs(plays), []string{
		"c1-c8",
		"c2-c1", "c2-c5", "c2-c8",
		"c3-c1", "c3-c7", "c3-c8",
		"c4-c8",
		"c5-c8",
		"c6-c5", "c6-c7", "c6-c8",
		"c7-c8",
	})
	// The source board is untouched.
	is.Equal(b.Notation(), board.LateGame)

	is.Equal(plays[1].Board.Notation(), "CO,CO,.. F 6/6/6 G7DRB9G8/R7DR/B7R8/DR/DRR9/B8/G9/")
	// Moving the coin 8 off exposes the characters 7, which goes out.
	is.Equal(plays[4].Board.Notation(), "CO,CO,.. F 6/7/6 G7DRB9R8/R7DRG8//DR/DRR9/B8/G9/")
}

func TestGenRunsOfEveryLength(t *testing.T) {
	is := is.New(t)
	b := board.MustParseNotation("CO,CO,.. F 6/6/6 G7DRB9G8/R7DR/B7R8/DR/DRR9/B8/G9/")
	plays := Neighbors(b)
	// R8 on B7 is not a run, so column 3 only moves its top card.
	is.Equal(shortDescs(plays), []string{
		"c1-c5", "c1-c8", "c1-c8x2",
		"c2-c8",
		"c3-c7", "c3-c8",
		"c4-c8",
		"c5-c8",
		"c6-c5", "c6-c7", "c6-c8",
		"c7-c8",
	})
	is.Equal(plays[2].Move.Count(), 2)
	is.Equal(plays[2].Board.Notation(), "CO,CO,.. F 6/6/6 G7DR/R7DR/B7R8/DR/DRR9/B8/G9/B9G8")
}

func TestGenDragonsFirst(t *testing.T) {
	is := is.New(t)
	b := board.MustParseNotation(board.DragonsOnly)
	plays := Neighbors(b)
	is.Equal(shortDescs(plays), []string{
		"dG", "c1-c8", "c2-c8", "c3-c8", "c4-c8", "c5-c8", "c6-c8", "c7-c8",
	})
	is.Equal(plays[0].Move.Action(), move.MoveTypeCollectDragon)
	is.Equal(plays[0].Move.Color(), card.Green)
	is.Equal(plays[0].Board.Notation(), "CO,..,.. F 9/9/9 DR/DW//DR/DWDR/DWDR/DW/")
}

func TestGenParksOnlyWhenStuck(t *testing.T) {
	is := is.New(t)
	b := board.MustParseNotation(board.Stuck)
	plays := Neighbors(b)
	is.Equal(shortDescs(plays), []string{
		"c1-h3", "c2-h3", "c3-h3", "c4-h3", "c5-h3", "c6-h3", "c7-h3", "c8-h3",
	})
	is.Equal(plays[0].Board.Notation(), "CO,CO,DR F 7/6/7 /G8DR/B7DR/B8DR/G9/R8B9/R9/")
	is.Equal(plays[3].Board.Notation(), "CO,CO,R7 F 6/6/5 R6DR/G8DR/B7DR/B8DR/G9/R8B9/R9/G7")
}

func TestGenDeadEnd(t *testing.T) {
	is := is.New(t)
	// Four red dragons are exposed but there is no cell for them.
	b := board.MustParseNotation("CO,CO,R7 F 6/6/5 R6DR/G8DR/B7DR/B8DR/G9/R8B9/R9/G7")
	is.Equal(len(Neighbors(b)), 0)
}

func TestGenCellToColumn(t *testing.T) {
	is := is.New(t)
	b := board.MustParseNotation("CO,CO,G9 F 6/6/5 R6DR/G8DR/B7DR/B8DRR7//R8B9/R9/G7")
	plays := Neighbors(b)
	is.Equal(shortDescs(plays), []string{
		"h3-c5", "c1-c5", "c2-c5", "c3-c5", "c4-c5", "c6-c5", "c7-c5", "c8-c5",
	})
	is.Equal(plays[0].Board.Notation(), board.Stuck)
	// Clearing the first column still lets coin and bamboo 7 go out.
	is.Equal(plays[1].Board.Notation(), "CO,CO,G9 F 7/6/7 /G8DR/B7DR/B8DR/DR/R8B9/R9/")
}

func TestGenClearedBoard(t *testing.T) {
	is := is.New(t)
	b := board.MustParseNotation("CO,CO,CO F 9/9/9 ///////")
	is.Equal(len(Neighbors(b)), 0)
}

func TestMovesOnlyRecorder(t *testing.T) {
	is := is.New(t)
	b := board.MustParseNotation(board.LateGame)
	gen := NewGenerator()
	gen.SetPlayRecorder(MovesOnlyRecorder)
	plays := gen.GenAll(b)
	is.Equal(len(plays), 13)
	for _, p := range plays {
		is.True(p.Board == nil)
	}
	is.Equal(shortDescs(gen.Plays()), shortDescs(Neighbors(b)))
}

func TestGeneratorReuse(t *testing.T) {
	is := is.New(t)
	gen := NewGenerator()
	is.Equal(len(gen.GenAll(board.MustParseNotation(board.LateGame))), 13)
	is.Equal(len(gen.GenAll(board.MustParseNotation(board.DragonsOnly))), 8)
	is.Equal(len(gen.Plays()), 8)
}

func TestFindMove(t *testing.T) {
	is := is.New(t)
	from := board.MustParseNotation(board.LateGame)
	for _, n := range Neighbors(from) {
		m, err := FindMove(from, n.Board)
		is.NoErr(err)
		is.Equal(m, n.Move)
	}
	_, err := FindMove(from, from)
	is.True(errors.Is(err, ErrNoConnectingMove))
	_, err = FindMove(from, board.MustParseNotation(board.DragonsOnly))
	is.True(errors.Is(err, ErrNoConnectingMove))
}

// Walk a few random deals, always checking that every generated board is
// still a valid, fully simplified position that the move leads to.
func TestRandomWalks(t *testing.T) {
	is := is.New(t)
	for seed := uint64(1); seed <= 25; seed++ {
		b := deal.New(seed)
		for step := 0; step < 40; step++ {
			before := b.Clone()
			plays := Neighbors(b)
			is.True(b.Equal(before))
			if len(plays) == 0 {
				break
			}
			for _, n := range plays {
				is.NoErr(n.Board.Validate())
				settled := n.Board.Clone()
				settled.Simplify()
				is.True(settled.Equal(n.Board))
				for _, s := range card.Suits {
					is.True(n.Board.Foundation(s) >= b.Foundation(s))
				}
				replay := b.Clone()
				is.NoErr(n.Move.Apply(replay))
				is.True(replay.Equal(n.Board))
				m, err := FindMove(b, n.Board)
				is.NoErr(err)
				is.NoErr(m.Apply(b.Clone()))
			}
			b = plays[(int(seed)+step)%len(plays)].Board
		}
	}
}
