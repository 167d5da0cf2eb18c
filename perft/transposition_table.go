package perft

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/dragonsol/zobrist"
)

// 24 bytes (entrySize)
type tableEntry struct {
	key    uint64
	leaves uint64
	depth  uint8
}

const entrySize = 24

const (
	minSizePowerOf2 = 12
	maxSizePowerOf2 = 24
)

func (t tableEntry) valid() bool {
	return t.depth != 0
}

// TranspositionTable remembers how many leaves hang under a position at a
// given depth. It is direct-mapped: a store just overwrites whatever is
// in the bucket.
type TranspositionTable struct {
	sync.RWMutex
	table        []tableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	t2collisions atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64

	zobrist *zobrist.Zobrist
}

// Reset sizes the table to about fractionOfMemory of the machine's memory
// and clears it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	t.Lock()
	defer t.Unlock()
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	t.sizePowerOf2 = minSizePowerOf2
	if desiredNElems >= 1 {
		t.sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	t.sizePowerOf2 = max(minSizePowerOf2, min(maxSizePowerOf2, t.sizePowerOf2))

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]tableEntry, numElems)
	}
	if t.zobrist == nil {
		log.Info().Msg("creating zobrist hash")
		t.zobrist = &zobrist.Zobrist{}
		t.zobrist.Initialize()
	}

	log.Info().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}

func (t *TranspositionTable) lookup(zval uint64, depth int) (uint64, bool) {
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	e := t.table[zval&t.sizeMask]
	if e.key != zval || int(e.depth) != depth {
		if e.valid() {
			// There is another unrelated node at this position.
			t.t2collisions.Add(1)
		}
		return 0, false
	}
	t.hits.Add(1)
	return e.leaves, true
}

func (t *TranspositionTable) store(zval uint64, depth int, leaves uint64) {
	t.Lock()
	defer t.Unlock()
	t.table[zval&t.sizeMask] = tableEntry{key: zval, leaves: leaves, depth: uint8(depth)}
	t.created.Add(1)
}

func (t *TranspositionTable) Zobrist() *zobrist.Zobrist {
	return t.zobrist
}

// Size is the number of buckets.
func (t *TranspositionTable) Size() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.table)
}
