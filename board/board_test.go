package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/dragonsol/card"
)

func bam(r int) card.Card { return card.Number(card.Bamboo, r) }
func chr(r int) card.Card { return card.Number(card.Characters, r) }
func coin(r int) card.Card { return card.Number(card.Coin, r) }

var (
	dg = card.Dragon(card.Green)
	dw = card.Dragon(card.White)
	dr = card.Dragon(card.Red)
)

func TestNotationRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, pos := range []string{DragonsOnly, LateGame, Stuck, NinesLeft} {
		bd, err := ParseNotation(pos)
		is.NoErr(err)
		is.Equal(bd.Notation(), pos)
	}
}

func TestParseNotationErrors(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		notation string
		err      error
	}{
		{"", ErrBadNotation},
		{"..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrBadNotation},
		{"..,..,.. X 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrBadNotation},
		{"..,..,.. F 9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrBadNotation},
		{"..,..,.. F 9/9/x DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrBadNotation},
		{"..,..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW", ErrBadNotation},
		{"..,..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/D", ErrBadNotation},
		{"..,..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/XX", ErrBadNotation},
		// one green dragon short
		{"..,..,.. F 9/9/9 DRDG/DWDG/DG/DR/DWDR/DWDR/DW/", ErrInvalidDeck},
		// flower counted twice
		{"FL,..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrInvalidDeck},
		// bamboo 9 is both on the board and retired
		{"G9,..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrInvalidDeck},
		// a collected cell with no missing dragon color
		{"CO,..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrInvalidDeck},
		{"..,..,.. F 9/9/10 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/", ErrInvalidDeck},
	} {
		_, err := ParseNotation(tc.notation)
		is.True(errors.Is(err, tc.err))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(LateGame)
	cl := bd.Clone()
	is.True(cl.Equal(bd))

	is.NoErr(cl.MoveCards(ColumnSlot(1), 1, ColumnSlot(7)))
	is.True(!cl.Equal(bd))
	is.Equal(bd.Notation(), LateGame)

	var cp Board
	cp.CopyFrom(cl)
	is.True(cp.Equal(cl))
}

func TestPeekPopPush(t *testing.T) {
	is := is.New(t)
	bd := &Board{}
	_, ok := bd.PeekTop(ColumnSlot(0))
	is.True(!ok)
	_, ok = bd.PeekTop(CellSlot(0))
	is.True(!ok)

	bd.Push(ColumnSlot(0), bam(5))
	bd.Push(ColumnSlot(0), chr(4))
	top, ok := bd.PeekTop(ColumnSlot(0))
	is.True(ok)
	is.Equal(top, chr(4))
	is.Equal(bd.ColumnLen(0), 2)

	bd.Push(CellSlot(2), dr)
	top, ok = bd.PeekTop(CellSlot(2))
	is.True(ok)
	is.Equal(top, dr)

	is.Equal(bd.Pop(ColumnSlot(0)), chr(4))
	is.Equal(bd.Pop(CellSlot(2)), dr)
	is.True(bd.Cell(2).IsEmpty())
	is.Equal(bd.Column(0), []card.Card{bam(5)})
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	f()
}

func TestInvariantViolationsPanic(t *testing.T) {
	bd := &Board{}
	mustPanic(t, func() { bd.Pop(ColumnSlot(3)) })
	mustPanic(t, func() { bd.Pop(CellSlot(1)) })
	mustPanic(t, func() { bd.PeekTop(ColumnSlot(8)) })
	mustPanic(t, func() { bd.PeekTop(CellSlot(3)) })
	mustPanic(t, func() { bd.At(ColumnLocation(0, 0)) })

	bd.cells[0] = CollectedCell()
	mustPanic(t, func() { bd.Push(CellSlot(0), dg) })
	bd.cells[1] = HoldingCell(dg)
	mustPanic(t, func() { bd.Push(CellSlot(1), dw) })
}

func TestAt(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(LateGame)
	c, ok := bd.At(ColumnLocation(0, 0))
	is.True(ok)
	is.Equal(c, bam(7))
	c, ok = bd.At(ColumnLocation(0, 2))
	is.True(ok)
	is.Equal(c, chr(9))
	_, ok = bd.At(CellLocation(0))
	is.True(!ok)
	_, ok = bd.At(CellLocation(2))
	is.True(!ok)
}

func TestAppendable(t *testing.T) {
	is := is.New(t)
	bd := &Board{}
	bd.cells[1] = CollectedCell()
	bd.cells[2] = HoldingCell(bam(3))
	bd.Push(ColumnSlot(0), coin(6))
	bd.Push(ColumnSlot(1), dg)

	is.True(bd.Appendable(CellSlot(0), dw))
	is.True(!bd.Appendable(CellSlot(1), dw))
	is.True(!bd.Appendable(CellSlot(2), dw))
	is.True(bd.Appendable(ColumnSlot(0), bam(5)))
	is.True(!bd.Appendable(ColumnSlot(0), coin(5)))
	is.True(!bd.Appendable(ColumnSlot(0), dw))
	is.True(!bd.Appendable(ColumnSlot(1), bam(5)))
	is.True(bd.Appendable(ColumnSlot(2), dw))
	is.True(bd.Appendable(ColumnSlot(2), card.Flower()))
}

func TestDragonCollectable(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(DragonsOnly)
	idx, ok := bd.DragonCollectable(card.Green)
	is.True(ok)
	is.Equal(idx, 0)
	_, ok = bd.DragonCollectable(card.White)
	is.True(!ok)
	_, ok = bd.DragonCollectable(card.Red)
	is.True(!ok)
}

func TestDragonCollectablePrefersFirstMatchingCell(t *testing.T) {
	is := is.New(t)
	bd := &Board{}
	bd.cells[0] = HoldingCell(bam(4))
	bd.cells[1] = HoldingCell(dw)
	bd.cells[2] = EmptyCell()
	for i := 0; i < 3; i++ {
		bd.Push(ColumnSlot(i), dw)
	}
	idx, ok := bd.DragonCollectable(card.White)
	is.True(ok)
	is.Equal(idx, 1)

	// No usable cell at all.
	bd.cells[1] = HoldingCell(coin(4))
	bd.cells[2] = CollectedCell()
	bd.Push(ColumnSlot(3), dw)
	_, ok = bd.DragonCollectable(card.White)
	is.True(!ok)
}

func TestBuriedDragonIsNotExposed(t *testing.T) {
	is := is.New(t)
	bd := &Board{}
	bd.Push(ColumnSlot(0), dr)
	bd.Push(ColumnSlot(1), dr)
	bd.Push(ColumnSlot(2), dr)
	bd.Push(ColumnSlot(3), dr)
	bd.Push(ColumnSlot(3), bam(9))
	_, ok := bd.DragonCollectable(card.Red)
	is.True(!ok)
	is.True(errors.Is(bd.CollectDragon(card.Red), ErrDragonNotCollectable))
}

func TestCollectDragonCascade(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(DragonsOnly)
	is.True(errors.Is(bd.CollectDragon(card.White), ErrDragonNotCollectable))
	is.Equal(bd.Notation(), DragonsOnly)

	is.NoErr(bd.CollectDragon(card.Green))
	is.Equal(bd.Notation(), "CO,..,.. F 9/9/9 DR/DW//DR/DWDR/DWDR/DW/")
	is.NoErr(bd.Validate())

	idx, ok := bd.DragonCollectable(card.Red)
	is.True(ok)
	is.Equal(idx, 1)
	is.NoErr(bd.CollectDragon(card.Red))
	is.NoErr(bd.CollectDragon(card.White))
	is.Equal(bd.Notation(), "CO,CO,CO F 9/9/9 ///////")
	is.True(bd.Cleared())
	is.NoErr(bd.Validate())
}

func TestCollectDragonFromCells(t *testing.T) {
	is := is.New(t)
	bd := &Board{}
	bd.cells[0] = HoldingCell(bam(4))
	bd.cells[1] = HoldingCell(dw)
	bd.cells[2] = HoldingCell(dw)
	bd.Push(ColumnSlot(4), dw)
	bd.Push(ColumnSlot(6), chr(3))
	bd.Push(ColumnSlot(6), dw)
	bd.foundations = [card.NumSuits]int{3, 2, 3}

	is.NoErr(bd.CollectDragon(card.White))
	is.Equal(bd.Cell(1), CollectedCell())
	is.True(bd.Cell(2).IsEmpty())
	is.Equal(bd.ColumnLen(4), 0)
	// The characters 3 underneath is now exposed and auto-collapses, which
	// in turn lets the bamboo 4 in the first cell go.
	is.Equal(bd.ColumnLen(6), 0)
	is.Equal(bd.Foundation(card.Characters), 3)
	is.Equal(bd.Foundation(card.Bamboo), 4)
	is.True(bd.Cell(0).IsEmpty())
}

func TestCollectedCellIsInert(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(LateGame)
	for _, src := range []int{0, 1, 2, 3, 4, 5, 6} {
		err := bd.MoveCards(ColumnSlot(src), 1, CellSlot(0))
		is.True(errors.Is(err, ErrNotAppendable))
	}
	err := bd.MoveCards(CellSlot(0), 1, ColumnSlot(7))
	is.True(errors.Is(err, ErrEmptySource))
	is.Equal(bd.Notation(), LateGame)
}

func TestMoveCards(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(LateGame)

	is.NoErr(bd.MoveCards(ColumnSlot(1), 1, ColumnSlot(0)))
	is.Equal(bd.Notation(), "CO,CO,.. F 6/6/6 G7DRB9G8/R7DR/B7R8/DR/DRR9/B8/G9/")

	// A two card run onto an empty column keeps its order.
	is.NoErr(bd.MoveCards(ColumnSlot(0), 2, ColumnSlot(7)))
	is.Equal(bd.Notation(), "CO,CO,.. F 6/6/6 G7DR/R7DR/B7R8/DR/DRR9/B8/G9/B9G8")

	// Park a dragon and bring it back.
	is.NoErr(bd.MoveCards(ColumnSlot(3), 1, CellSlot(2)))
	is.Equal(bd.Notation(), "CO,CO,DR F 6/6/6 G7DR/R7DR/B7R8//DRR9/B8/G9/B9G8")
	is.NoErr(bd.MoveCards(CellSlot(2), 1, ColumnSlot(3)))
	is.Equal(bd.Notation(), "CO,CO,.. F 6/6/6 G7DR/R7DR/B7R8/DR/DRR9/B8/G9/B9G8")
	is.NoErr(bd.Validate())
}

func TestMoveCardsSimplifies(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(Stuck)
	// Parking the red dragon exposes the coin 6, which goes out, and then
	// the coin 7 and then the bamboo 7 follow.
	is.NoErr(bd.MoveCards(ColumnSlot(0), 1, CellSlot(2)))
	is.Equal(bd.Notation(), "CO,CO,DR F 7/6/7 /G8DR/B7DR/B8DR/G9/R8B9/R9/")
	is.NoErr(bd.Validate())
}

func TestMoveCardsRuleViolations(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(LateGame)
	for _, tc := range []struct {
		src   Slot
		count int
		dst   Slot
		err   error
	}{
		{ColumnSlot(0), 0, ColumnSlot(7), ErrBadCount},
		{ColumnSlot(0), -1, ColumnSlot(7), ErrBadCount},
		{ColumnSlot(0), 1, ColumnSlot(0), ErrSameSlot},
		{ColumnSlot(0), 2, CellSlot(2), ErrBadCount},
		{CellSlot(2), 1, ColumnSlot(7), ErrEmptySource},
		{ColumnSlot(7), 1, ColumnSlot(0), ErrEmptySource},
		{ColumnSlot(3), 2, ColumnSlot(7), ErrEmptySource},
		{ColumnSlot(0), 2, ColumnSlot(7), ErrBrokenRun},
		{ColumnSlot(0), 3, ColumnSlot(7), ErrBrokenRun},
		{ColumnSlot(2), 2, ColumnSlot(7), ErrBrokenRun},
		{ColumnSlot(6), 1, ColumnSlot(4), ErrNotAppendable},
		{ColumnSlot(3), 1, ColumnSlot(0), ErrNotAppendable},
		{ColumnSlot(5), 1, ColumnSlot(0), ErrNotAppendable},
	} {
		err := bd.MoveCards(tc.src, tc.count, tc.dst)
		is.True(errors.Is(err, tc.err))
		is.Equal(bd.Notation(), LateGame)
	}
}

func TestMoveLongRun(t *testing.T) {
	is := is.New(t)
	bd := &Board{}
	for _, c := range []card.Card{dg, coin(9), bam(8), chr(7), coin(6)} {
		bd.Push(ColumnSlot(0), c)
	}
	bd.Push(ColumnSlot(1), chr(9))
	bd.Push(ColumnSlot(1), dw)

	is.True(errors.Is(bd.MoveCards(ColumnSlot(0), 5, ColumnSlot(2)), ErrBrokenRun))
	is.NoErr(bd.MoveCards(ColumnSlot(0), 4, ColumnSlot(2)))
	is.Equal(bd.Column(2), []card.Card{coin(9), bam(8), chr(7), coin(6)})
	is.Equal(bd.Column(0), []card.Card{dg})
}

func TestTopRun(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(LateGame)
	run, ok := bd.TopRun(ColumnSlot(0), 2)
	is.True(ok)
	is.Equal(run, []card.Card{dr, chr(9)})
	is.True(!IsRun(run))
	_, ok = bd.TopRun(ColumnSlot(0), 4)
	is.True(!ok)
	_, ok = bd.TopRun(CellSlot(0), 1)
	is.True(!ok)
	is.True(IsRun([]card.Card{chr(9), bam(8), coin(7)}))
	is.True(IsRun(nil))
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	bd := MustParseNotation(LateGame)
	lines := strings.Split(bd.ToDisplayText(), "\n")
	is.Equal(lines[0], "+--+--+--+-----+--+--+--+")
	is.Equal(lines[1], "|CO|CO|  | F L |G6|B6|R6|")
	is.Equal(lines[2], "+--+--+--+-----+--+--+--+")
	is.Equal(lines[3], " G7 R7 B7 DR DR B8 G9    ")
	is.Equal(lines[4], " DR DR R8    R9          ")
	is.Equal(lines[5], " B9 G8                   ")
	is.Equal(len(lines), 7)
}
