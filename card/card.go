// Package card holds the card values used in the three-suit, three-dragon
// patience: one flower, four of each dragon color, and the numbers 1-9 in
// each of three suits.
package card

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind tells the variants of a Card apart. The zero Kind is not a card.
type Kind uint8

const (
	KindNone Kind = iota
	KindFlower
	KindDragon
	KindNumber
)

// Color is a dragon color.
type Color uint8

const (
	Green Color = iota
	White
	Red
)

// NumColors is the number of dragon colors; DragonsPerColor the copies of each.
const (
	NumColors       = 3
	DragonsPerColor = 4
)

// Colors lists every dragon color in declaration order.
var Colors = [NumColors]Color{Green, White, Red}

func (c Color) String() string {
	switch c {
	case Green:
		return "Green"
	case White:
		return "White"
	case Red:
		return "Red"
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// Suit is a number card suit.
type Suit uint8

const (
	Bamboo Suit = iota
	Characters
	Coin
)

const (
	NumSuits = 3
	MinRank  = 1
	MaxRank  = 9
)

// Suits lists every suit in declaration order. Foundations are indexed the
// same way.
var Suits = [NumSuits]Suit{Bamboo, Characters, Coin}

func (s Suit) String() string {
	switch s {
	case Bamboo:
		return "Bamboo"
	case Characters:
		return "Characters"
	case Coin:
		return "Coin"
	}
	return "Suit(" + strconv.Itoa(int(s)) + ")"
}

// DeckSize is the number of cards in a full deck.
const DeckSize = 1 + NumColors*DragonsPerColor + NumSuits*MaxRank

// Card is an immutable card value. Cards are comparable and can be used as
// map keys. Only the fields relevant to the card's Kind are set.
type Card struct {
	kind  Kind
	color Color
	suit  Suit
	rank  uint8
}

// Flower returns the flower card.
func Flower() Card {
	return Card{kind: KindFlower}
}

// Dragon returns a dragon of the given color.
func Dragon(c Color) Card {
	return Card{kind: KindDragon, color: c}
}

// Number returns the number card of the given suit and rank. It panics
// unless s is a suit and rank is 1-9.
func Number(s Suit, rank int) Card {
	if s > Coin || rank < MinRank || rank > MaxRank {
		panic(fmt.Sprintf("no number card %v %d", s, rank))
	}
	return Card{kind: KindNumber, suit: s, rank: uint8(rank)}
}

func (c Card) Kind() Kind {
	return c.kind
}

// Color is only meaningful for dragons.
func (c Card) Color() Color {
	return c.color
}

// Suit is only meaningful for number cards.
func (c Card) Suit() Suit {
	return c.suit
}

// Rank is only meaningful for number cards; it is 0 otherwise.
func (c Card) Rank() int {
	return int(c.rank)
}

func (c Card) IsFlower() bool { return c.kind == KindFlower }

func (c Card) IsNumber() bool { return c.kind == KindNumber }

// IsDragon reports whether c is a dragon of color col.
func (c Card) IsDragon(col Color) bool {
	return c.kind == KindDragon && c.color == col
}

// Valid reports whether c is one of the 40 legal card values.
func (c Card) Valid() bool {
	switch c.kind {
	case KindFlower:
		return c.color == 0 && c.suit == 0 && c.rank == 0
	case KindDragon:
		return c.color <= Red && c.suit == 0 && c.rank == 0
	case KindNumber:
		return c.suit <= Coin && c.rank >= MinRank && c.rank <= MaxRank && c.color == 0
	}
	return false
}

// NumFaces is the number of distinct card values.
const NumFaces = 1 + NumColors + NumSuits*MaxRank

// Face numbers the distinct card values from 0 to NumFaces-1: the flower,
// then the dragon colors, then the numbers suit by suit. It panics for an
// invalid card.
func (c Card) Face() int {
	switch {
	case !c.Valid():
		panic(fmt.Sprintf("no face for invalid card %#v", c))
	case c.kind == KindFlower:
		return 0
	case c.kind == KindDragon:
		return 1 + int(c.color)
	}
	return 1 + NumColors + int(c.suit)*MaxRank + int(c.rank) - 1
}

// CanStackOnto reports whether a may be placed directly on top of b in a
// tableau column: both are number cards of different suits and a is one
// rank lower than b.
func CanStackOnto(a, b Card) bool {
	if a.kind != KindNumber || b.kind != KindNumber {
		return false
	}
	if a.suit == b.suit {
		return false
	}
	return a.rank+1 == b.rank
}

// FullDeck returns the 40 cards of a deck in a fixed order: flower,
// dragons, then number cards by rank.
func FullDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	cards = append(cards, Flower())
	for i := 0; i < DragonsPerColor; i++ {
		for _, col := range Colors {
			cards = append(cards, Dragon(col))
		}
	}
	for r := MinRank; r <= MaxRank; r++ {
		for _, s := range Suits {
			cards = append(cards, Number(s, r))
		}
	}
	return cards
}

var suitCodes = [NumSuits]byte{'G', 'B', 'R'}
var colorCodes = [NumColors]byte{'G', 'W', 'R'}

// String returns the two-character code for the card: FL for the flower,
// D plus the color initial for dragons, and a suit letter plus the rank
// for number cards (G bamboo, B characters, R coin).
func (c Card) String() string {
	switch c.kind {
	case KindFlower:
		return "FL"
	case KindDragon:
		if c.color <= Red {
			return string([]byte{'D', colorCodes[c.color]})
		}
	case KindNumber:
		if c.suit <= Coin {
			return string(suitCodes[c.suit]) + strconv.Itoa(int(c.rank))
		}
	}
	return "??"
}

var ErrBadCardCode = errors.New("bad card code")

// Parse reads a two-character card code as produced by String.
func Parse(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCardCode, code)
	}
	if code == "FL" {
		return Flower(), nil
	}
	if code[0] == 'D' {
		for i, cc := range colorCodes {
			if code[1] == cc {
				return Dragon(Color(i)), nil
			}
		}
		return Card{}, fmt.Errorf("%w: %q", ErrBadCardCode, code)
	}
	for i, sc := range suitCodes {
		if code[0] != sc {
			continue
		}
		r := int(code[1] - '0')
		if r < MinRank || r > MaxRank {
			return Card{}, fmt.Errorf("%w: rank out of range in %q", ErrBadCardCode, code)
		}
		return Number(Suit(i), r), nil
	}
	return Card{}, fmt.Errorf("%w: %q", ErrBadCardCode, code)
}
