// Package perft counts the leaves of the move tree under a board to a fixed
// depth. The totals are what the move generator gets checked against, and
// give a feel for how bushy a deal is.
package perft

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/move"
	"github.com/domino14/dragonsol/movegen"
)

// MaxDepth is the deepest count Run accepts.
const MaxDepth = 64

var ErrBadDepth = errors.New("depth out of range")

// RootCount is the number of leaves under one root move.
type RootCount struct {
	Move   move.Move
	Leaves uint64
}

type Result struct {
	Depth  int
	Leaves uint64
	// Nodes counts the boards visited. The last ply is only counted, not
	// visited, and neither are subtrees found in the transposition table.
	Nodes uint64
	// Divide has one entry per root move, in generation order.
	Divide []RootCount
}

// Counter runs perft. A Counter can be reused but must not run twice at
// the same time.
type Counter struct {
	threads int
	ttable  *TranspositionTable
	nodes   atomic.Uint64
}

// NewCounter returns a Counter that uses up to threads goroutines and a
// transposition table of about memoryFraction of the system memory. A
// threads value below 1 means one per CPU; a memoryFraction of 0 turns
// the table off.
func NewCounter(threads int, memoryFraction float64) *Counter {
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	c := &Counter{threads: threads}
	if memoryFraction > 0 {
		c.ttable = &TranspositionTable{}
		c.ttable.Reset(memoryFraction)
	}
	return c
}

// Run counts the move sequences of exactly depth moves from b. Sequences
// that hit a dead end earlier are not counted. Work is split by root move.
func (c *Counter) Run(ctx context.Context, b *board.Board, depth int) (Result, error) {
	if depth < 0 || depth > MaxDepth {
		return Result{}, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	tstart := time.Now()
	c.nodes.Store(1)
	res := Result{Depth: depth}
	if depth == 0 {
		res.Leaves = 1
		res.Nodes = 1
		return res, nil
	}

	roots := movegen.Neighbors(b)
	res.Divide = make([]RootCount, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.threads)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			w := newWalker(c, depth-1)
			n, err := w.count(gctx, root.Board, depth-1)
			if err != nil {
				return err
			}
			res.Divide[i] = RootCount{Move: root.Move, Leaves: n}
			return nil
		})
	}
	err := g.Wait()
	for _, rc := range res.Divide {
		res.Leaves += rc.Leaves
	}
	res.Nodes = c.nodes.Load()

	ev := log.Info().
		Int("depth", depth).
		Int("threads", c.threads).
		Uint64("leaves", res.Leaves).
		Uint64("nodes", res.Nodes).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds())
	if c.ttable != nil {
		ev = ev.Uint64("ttable-created", c.ttable.created.Load()).
			Uint64("ttable-lookups", c.ttable.lookups.Load()).
			Uint64("ttable-hits", c.ttable.hits.Load()).
			Uint64("ttable-t2collisions", c.ttable.t2collisions.Load())
	}
	ev.Msg("perft-returning")
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// A walker owns one generator per remaining depth, so the plays of a ply
// stay put while the plies under it are generated.
type walker struct {
	c    *Counter
	gens []*movegen.Generator
}

func newWalker(c *Counter, depth int) *walker {
	gens := make([]*movegen.Generator, depth+1)
	for i := range gens {
		gens[i] = movegen.NewGenerator()
	}
	if depth >= 1 {
		// The last ply only needs counting.
		gens[1].SetPlayRecorder(movegen.MovesOnlyRecorder)
	}
	return &walker{c: c, gens: gens}
}

func (w *walker) count(ctx context.Context, b *board.Board, depth int) (uint64, error) {
	w.c.nodes.Add(1)
	if depth == 0 {
		return 1, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if depth == 1 {
		return uint64(len(w.gens[1].GenAll(b))), nil
	}

	tt := w.c.ttable
	var key uint64
	if tt != nil {
		key = tt.Zobrist().Hash(b)
		if n, ok := tt.lookup(key, depth); ok {
			return n, nil
		}
	}
	plays := w.gens[depth].GenAll(b)
	var total uint64
	for _, p := range plays {
		n, err := w.count(ctx, p.Board, depth-1)
		if err != nil {
			return 0, err
		}
		total += n
	}
	if tt != nil {
		tt.store(key, depth, total)
	}
	return total, nil
}
