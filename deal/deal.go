// Package deal shuffles a full deck and lays it out as a starting board.
package deal

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/card"
)

// CardsPerColumn is how many cards each column gets in a deal.
const CardsPerColumn = card.DeckSize / board.NumColumns

// seedBytes expands a 64-bit seed into the 32-byte ChaCha key.
func seedBytes(seed uint64) []byte {
	key := make([]byte, 32)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], seed+uint64(i))
	}
	return key
}

// Shuffled returns a full deck in an order determined entirely by seed.
func Shuffled(seed uint64) []card.Card {
	rng := frand.NewCustom(seedBytes(seed), 1024, 12)
	cards := card.FullDeck()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// FromCards lays cards out five to a column, in order, with empty
// holding cells and foundations, then simplifies. It panics unless cards
// is exactly one deck.
func FromCards(cards []card.Card) *board.Board {
	if len(cards) != card.DeckSize {
		panic("deal needs exactly one deck")
	}
	var columns [board.NumColumns][]card.Card
	for i := range columns {
		columns[i] = cards[i*CardsPerColumn : (i+1)*CardsPerColumn]
	}
	b, err := board.New(false, [board.NumCells]board.Cell{}, [card.NumSuits]int{}, columns)
	if err != nil {
		panic(err)
	}
	b.Simplify()
	return b
}

// New deals the board for seed. The same seed always gives the same board.
func New(seed uint64) *board.Board {
	log.Debug().Uint64("seed", seed).Msg("dealing")
	return FromCards(Shuffled(seed))
}

// SeedFromName turns a name such as "tuesday" into a deal seed.
func SeedFromName(name string) uint64 {
	return xxhash.Sum64String(name)
}

// FromName deals the board for a named game.
func FromName(name string) *board.Board {
	return New(SeedFromName(name))
}

// Random deals a board from a fresh random seed and returns the seed so
// the deal can be replayed.
func Random() (*board.Board, uint64) {
	seed := frand.Uint64n(1<<63 - 1)
	return New(seed), seed
}
