package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/dragonsol/card"
)

const displayRule = "+--+--+--+-----+--+--+--+\n"

// ToDisplayText draws the board: the holding cells, the flower spot and
// the foundations across the top, then the columns top to bottom.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(displayRule)
	for _, c := range b.cells {
		sb.WriteString("|" + c.DisplayString())
	}
	if b.flower {
		sb.WriteString("| F L |")
	} else {
		sb.WriteString("|     |")
	}
	fmt.Fprintf(&sb, "G%d|B%d|R%d|\n", b.foundations[card.Bamboo],
		b.foundations[card.Characters], b.foundations[card.Coin])
	sb.WriteString(displayRule)
	height := lo.Max(lo.Map(b.columns[:], func(col []card.Card, _ int) int {
		return len(col)
	}))
	for row := 0; row < height; row++ {
		for _, col := range b.columns {
			if row < len(col) {
				sb.WriteString(" " + col[row].String())
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString(" \n")
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.ToDisplayText()
}

// Notation is a one-line form of a board, used for test positions and in
// the shell. Fields are separated by single spaces:
//
//	<cell>,<cell>,<cell> <F|-> <bamboo>/<characters>/<coin> <col>/.../<col>
//
// A cell is "..", "CO" or a card code. A column is its card codes from the
// bottom up, run together; an empty column is an empty string.
func (b *Board) Notation() string {
	cells := lo.Map(b.cells[:], func(c Cell, _ int) string {
		switch c.state {
		case CellCollected:
			return "CO"
		case CellHolding:
			return c.card.String()
		}
		return ".."
	})
	flower := "-"
	if b.flower {
		flower = "F"
	}
	foundations := lo.Map(b.foundations[:], func(f int, _ int) string {
		return strconv.Itoa(f)
	})
	columns := lo.Map(b.columns[:], func(col []card.Card, _ int) string {
		var sb strings.Builder
		for _, c := range col {
			sb.WriteString(c.String())
		}
		return sb.String()
	})
	return strings.Join([]string{
		strings.Join(cells, ","),
		flower,
		strings.Join(foundations, "/"),
		strings.Join(columns, "/"),
	}, " ")
}

var ErrBadNotation = errors.New("bad board notation")

// ParseNotation reads a board written by Notation. The board must hold
// exactly one deck; it is not simplified.
func ParseNotation(s string) (*Board, error) {
	fields := strings.Split(strings.TrimSpace(s), " ")
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: expected 4 space-separated fields, got %d",
			ErrBadNotation, len(fields))
	}
	var cells [NumCells]Cell
	cellCodes := strings.Split(fields[0], ",")
	if len(cellCodes) != NumCells {
		return nil, fmt.Errorf("%w: expected %d cells", ErrBadNotation, NumCells)
	}
	for i, code := range cellCodes {
		switch code {
		case "..":
			cells[i] = EmptyCell()
		case "CO":
			cells[i] = CollectedCell()
		default:
			c, err := card.Parse(code)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %d: %w", ErrBadNotation, i, err)
			}
			cells[i] = HoldingCell(c)
		}
	}

	var flower bool
	switch fields[1] {
	case "F":
		flower = true
	case "-":
	default:
		return nil, fmt.Errorf("%w: flower field %q", ErrBadNotation, fields[1])
	}

	var foundations [card.NumSuits]int
	counts := strings.Split(fields[2], "/")
	if len(counts) != card.NumSuits {
		return nil, fmt.Errorf("%w: expected %d foundations", ErrBadNotation, card.NumSuits)
	}
	for i, ct := range counts {
		n, err := strconv.Atoi(ct)
		if err != nil {
			return nil, fmt.Errorf("%w: foundation %q: %w", ErrBadNotation, ct, err)
		}
		foundations[i] = n
	}

	var columns [NumColumns][]card.Card
	cols := strings.Split(fields[3], "/")
	if len(cols) != NumColumns {
		return nil, fmt.Errorf("%w: expected %d columns, got %d",
			ErrBadNotation, NumColumns, len(cols))
	}
	for i, col := range cols {
		if len(col)%2 != 0 {
			return nil, fmt.Errorf("%w: column %d has an odd length", ErrBadNotation, i)
		}
		for j := 0; j < len(col); j += 2 {
			c, err := card.Parse(col[j : j+2])
			if err != nil {
				return nil, fmt.Errorf("%w: column %d: %w", ErrBadNotation, i, err)
			}
			columns[i] = append(columns[i], c)
		}
	}
	return New(flower, cells, foundations, columns)
}

// MustParseNotation is ParseNotation for fixed positions; it panics on
// error.
func MustParseNotation(s string) *Board {
	b, err := ParseNotation(s)
	if err != nil {
		panic(err)
	}
	return b
}
