// Package survey plays random games from many deals and keeps statistics
// on them: how many moves a deal starts with, how long a random game
// lasts, and how often one clears the board. It is a cheap way to see how
// a change to the move rules shifts the shape of the game.
package survey

import (
	"context"
	"encoding/binary"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/deal"
	"github.com/domino14/dragonsol/movegen"
	"github.com/domino14/dragonsol/stats"
)

// MaxPlayoutMoves ends a random game that is going in circles.
const MaxPlayoutMoves = 250

type Result struct {
	Deals    int
	Playouts int
	// RootMoves is the number of legal moves right after each deal.
	RootMoves stats.Statistic
	// Length is the number of moves in each random game.
	Length stats.Statistic
	// Cleared is 1 for a random game that cleared the board, else 0.
	Cleared stats.Statistic
}

func (r *Result) merge(o *Result) {
	r.Deals += o.Deals
	r.Playouts += o.Playouts
	r.RootMoves.Merge(&o.RootMoves)
	r.Length.Merge(&o.Length)
	r.Cleared.Merge(&o.Cleared)
}

// String summarizes r with 95% confidence intervals.
func (r *Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d deals, %d random games\n", r.Deals, r.Playouts)
	fmt.Fprintf(&sb, "moves after deal: %.2f ± %.2f (stdev %.2f)\n",
		r.RootMoves.Mean(), r.RootMoves.MarginOfError(95), r.RootMoves.Stdev())
	fmt.Fprintf(&sb, "game length:      %.2f ± %.2f (stdev %.2f)\n",
		r.Length.Mean(), r.Length.MarginOfError(95), r.Length.Stdev())
	fmt.Fprintf(&sb, "cleared:          %.2f%% ± %.2f%%",
		100*r.Cleared.Mean(), 100*r.Cleared.MarginOfError(95))
	return sb.String()
}

// Playout plays random moves from b, chosen with rng, until there are
// none left or max moves have been made. b is not changed. It returns the
// number of moves made and whether the board ended up cleared.
func Playout(b *board.Board, rng *frand.RNG, max int) (int, bool) {
	gen := movegen.NewGenerator()
	cur := b
	moves := 0
	for moves < max {
		plays := gen.GenAll(cur)
		if len(plays) == 0 {
			break
		}
		cur = plays[rng.Intn(len(plays))].Board
		moves++
	}
	return moves, cur.Cleared()
}

func rngFor(seed uint64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	copy(key[8:], "dragonsol-survey")
	return frand.NewCustom(key, 1024, 12)
}

// Run surveys the deals firstSeed, firstSeed+1, ... with playouts random
// games each, spread over threads goroutines. The result only depends on
// the arguments, not on threads.
func Run(ctx context.Context, firstSeed uint64, deals, playouts, threads int) (*Result, error) {
	if deals < 1 || playouts < 1 {
		return nil, fmt.Errorf("need at least one deal and one playout, got %d and %d", deals, playouts)
	}
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	tstart := time.Now()
	perDeal := make([]Result, deals)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < deals; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := firstSeed + uint64(i)
			b := deal.New(seed)
			rng := rngFor(seed)
			r := &perDeal[i]
			r.Deals = 1
			r.RootMoves.Push(float64(len(movegen.Neighbors(b))))
			for j := 0; j < playouts; j++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				n, cleared := Playout(b, rng, MaxPlayoutMoves)
				r.Playouts++
				r.Length.Push(float64(n))
				if cleared {
					r.Cleared.Push(1)
				} else {
					r.Cleared.Push(0)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in deal order so the sums come out the same every time.
	res := &Result{}
	for i := range perDeal {
		res.merge(&perDeal[i])
	}

	log.Info().
		Int("deals", res.Deals).
		Int("playouts", res.Playouts).
		Float64("cleared", res.Cleared.Mean()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("survey-returning")
	return res, nil
}
