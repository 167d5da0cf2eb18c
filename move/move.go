// Package move describes the actions a player can take on a board: collect
// a dragon set, or move cards from one slot to another.
package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/card"
)

// MoveType is the kind of action.
type MoveType uint8

const (
	MoveTypeCollectDragon MoveType = iota
	MoveTypeTransfer
)

// Move records what a player intends to do. It is a small value and holds
// no reference to any board.
type Move struct {
	action MoveType
	color  card.Color
	src    board.Slot
	dst    board.Slot
	count  int
}

// NewCollectDragonMove collects the dragon set of color c.
func NewCollectDragonMove(c card.Color) Move {
	return Move{action: MoveTypeCollectDragon, color: c}
}

// NewTransferMove moves the top count cards of src to dst.
func NewTransferMove(src board.Slot, count int, dst board.Slot) Move {
	return Move{action: MoveTypeTransfer, src: src, dst: dst, count: count}
}

func (m Move) Action() MoveType { return m.action }

// Color is only set for dragon collection.
func (m Move) Color() card.Color { return m.color }

func (m Move) Source() board.Slot { return m.src }

func (m Move) Dest() board.Slot { return m.dst }

func (m Move) Count() int { return m.count }

// Apply plays m on b. On error b is unchanged.
func (m Move) Apply(b *board.Board) error {
	switch m.action {
	case MoveTypeCollectDragon:
		return b.CollectDragon(m.color)
	case MoveTypeTransfer:
		return b.MoveCards(m.src, m.count, m.dst)
	}
	return fmt.Errorf("unhandled move type %d", m.action)
}

// String is a sentence describing the move for a player.
func (m Move) String() string {
	switch m.action {
	case MoveTypeCollectDragon:
		return fmt.Sprintf("Collect %v Dragon", m.color)
	case MoveTypeTransfer:
		if m.count == 1 {
			return fmt.Sprintf("Move card from %v to %v", m.src, m.dst)
		}
		return fmt.Sprintf("Move %d cards from %v to %v", m.count, m.src, m.dst)
	}
	return "<Unhandled move>"
}

func slotCode(s board.Slot) string {
	if s.IsCell() {
		return "h" + strconv.Itoa(s.Index()+1)
	}
	return "c" + strconv.Itoa(s.Index()+1)
}

var colorCodes = map[card.Color]string{card.Green: "G", card.White: "W", card.Red: "R"}

// ShortDescription is a compact form, useful for logging and for typing
// moves in the shell: "dR" collects the red dragons, "c2-c5" moves the top
// card of column 2 onto column 5, "c2-c5x3" moves three cards, and
// "h1" names the first holding cell. Slots are numbered from 1.
func (m Move) ShortDescription() string {
	switch m.action {
	case MoveTypeCollectDragon:
		return "d" + colorCodes[m.color]
	case MoveTypeTransfer:
		desc := slotCode(m.src) + "-" + slotCode(m.dst)
		if m.count != 1 {
			desc += "x" + strconv.Itoa(m.count)
		}
		return desc
	}
	return "?"
}

var (
	reCollect  = regexp.MustCompile(`^d(?P<color>[GWR])$`)
	reTransfer = regexp.MustCompile(`^(?P<src>[ch][1-8])-(?P<dst>[ch][1-8])(?:x(?P<count>[1-9][0-9]?))?$`)

	ErrBadMoveDescription = errors.New("could not understand move")
)

func parseSlot(code string) (board.Slot, error) {
	n := int(code[1] - '1')
	if code[0] == 'h' {
		if n >= board.NumCells {
			return board.Slot{}, fmt.Errorf("%w: no holding cell %s", ErrBadMoveDescription, code[1:])
		}
		return board.CellSlot(n), nil
	}
	return board.ColumnSlot(n), nil
}

// FromShortDescription parses the output of ShortDescription. It does
// not check the move against any board.
func FromShortDescription(desc string) (Move, error) {
	if sm := reCollect.FindStringSubmatch(desc); sm != nil {
		for c, code := range colorCodes {
			if code == sm[1] {
				return NewCollectDragonMove(c), nil
			}
		}
	}
	sm := reTransfer.FindStringSubmatch(desc)
	if sm == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMoveDescription, desc)
	}
	src, err := parseSlot(sm[reTransfer.SubexpIndex("src")])
	if err != nil {
		return Move{}, err
	}
	dst, err := parseSlot(sm[reTransfer.SubexpIndex("dst")])
	if err != nil {
		return Move{}, err
	}
	count := 1
	if ct := sm[reTransfer.SubexpIndex("count")]; ct != "" {
		count, err = strconv.Atoi(ct)
		if err != nil {
			return Move{}, fmt.Errorf("%w: %w", ErrBadMoveDescription, err)
		}
	}
	return NewTransferMove(src, count, dst), nil
}
