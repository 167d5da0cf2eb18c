package shell

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/card"
	"github.com/domino14/dragonsol/config"
	"github.com/domino14/dragonsol/deal"
	"github.com/domino14/dragonsol/move"
	"github.com/domino14/dragonsol/movegen"
	"github.com/domino14/dragonsol/perft"
	"github.com/domino14/dragonsol/survey"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) perftRunning() bool {
	if sc.perftDone == nil {
		return false
	}
	select {
	case <-sc.perftDone:
		return false
	default:
		return true
	}
}

// setBoard starts a fresh game from b.
func (sc *ShellController) setBoard(b *board.Board) {
	sc.board = b
	sc.history = nil
	sc.played = nil
	sc.curGenPlays = nil
}

func (sc *ShellController) boardDisplay() string {
	var sb strings.Builder
	sb.WriteString(sc.board.ToDisplayText())
	if sc.hasSeed {
		fmt.Fprintf(&sb, "seed %d, ", sc.seed)
	}
	fmt.Fprintf(&sb, "%d moves played", len(sc.played))
	if sc.board.Cleared() {
		sb.WriteString("\nThe board is cleared!")
	}
	return sb.String()
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	if sc.perftRunning() {
		return nil, errPerftRunning
	}
	var seed uint64
	switch {
	case cmd.options.String("name") != "":
		seed = deal.SeedFromName(cmd.options.String("name"))
	case len(cmd.args) > 0:
		var err error
		seed, err = strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed: %w", err)
		}
	default:
		var b *board.Board
		b, seed = deal.Random()
		sc.seed, sc.hasSeed = seed, true
		sc.setBoard(b)
		return msg(sc.boardDisplay()), nil
	}
	sc.seed, sc.hasSeed = seed, true
	sc.setBoard(deal.New(seed))
	return msg(sc.boardDisplay()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need a board notation to load")
	}
	if sc.perftRunning() {
		return nil, errPerftRunning
	}
	b, err := board.ParseNotation(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	b.Simplify()
	sc.hasSeed = false
	sc.setBoard(b)
	return msg(sc.boardDisplay()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.board == nil {
		return nil, errNoBoard
	}
	return msg(sc.boardDisplay()), nil
}

func (sc *ShellController) notation(cmd *shellcmd) (*Response, error) {
	if sc.board == nil {
		return nil, errNoBoard
	}
	return msg(sc.board.Notation()), nil
}

func moveTableRow(idx int, m move.Move) string {
	return fmt.Sprintf("%3d: %-9s %s", idx+1, m.ShortDescription(), m.String())
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if sc.board == nil {
		return nil, errNoBoard
	}
	sc.curGenPlays = slices.Clone(sc.gen.GenAll(sc.board))
	if len(sc.curGenPlays) == 0 {
		return msg("No moves. This deal is lost; `undo` to back up."), nil
	}
	var sb strings.Builder
	for i, p := range sc.curGenPlays {
		sb.WriteString(moveTableRow(i, p.Move))
		sb.WriteString("\n")
	}
	return msg(strings.TrimSuffix(sb.String(), "\n")), nil
}

// commit plays m, which must be legal, and remembers the old board.
func (sc *ShellController) commit(m move.Move) error {
	nb := sc.board.Clone()
	if err := m.Apply(nb); err != nil {
		return err
	}
	sc.history = append(sc.history, sc.board)
	sc.played = append(sc.played, m)
	sc.board = nb
	sc.curGenPlays = nil
	log.Debug().Str("move", m.ShortDescription()).Int("ply", len(sc.played)).Msg("played")
	return nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.board == nil {
		return nil, errNoBoard
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <#n | move>")
	}
	if sc.perftRunning() {
		return nil, errPerftRunning
	}
	var m move.Move
	if strings.HasPrefix(cmd.args[0], "#") {
		playID, err := strconv.Atoi(cmd.args[0][1:])
		if err != nil {
			return nil, err
		}
		idx := playID - 1 // since playID starts from 1
		if idx < 0 || idx > len(sc.curGenPlays)-1 {
			return nil, errors.New("play outside range; `gen` first")
		}
		m = sc.curGenPlays[idx].Move
	} else {
		var err error
		m, err = move.FromShortDescription(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	if err := sc.commit(m); err != nil {
		return nil, err
	}
	return msg(m.String() + "\n" + sc.boardDisplay()), nil
}

func parseColor(s string) (card.Color, error) {
	for _, c := range card.Colors {
		name := c.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:1]) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("no dragon color %q", s)
}

func (sc *ShellController) collect(cmd *shellcmd) (*Response, error) {
	if sc.board == nil {
		return nil, errNoBoard
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: collect <green|white|red>")
	}
	if sc.perftRunning() {
		return nil, errPerftRunning
	}
	c, err := parseColor(cmd.args[0])
	if err != nil {
		return nil, err
	}
	m := move.NewCollectDragonMove(c)
	if err := sc.commit(m); err != nil {
		return nil, err
	}
	return msg(m.String() + "\n" + sc.boardDisplay()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	if sc.perftRunning() {
		return nil, errPerftRunning
	}
	last := len(sc.history) - 1
	undone := sc.played[last]
	sc.board = sc.history[last]
	sc.history = sc.history[:last]
	sc.played = sc.played[:last]
	sc.curGenPlays = nil
	return msg("Undid " + undone.ShortDescription() + "\n" + sc.boardDisplay()), nil
}

func (sc *ShellController) showHistory(cmd *shellcmd) (*Response, error) {
	if len(sc.played) == 0 {
		return msg("No moves played."), nil
	}
	descs := make([]string, len(sc.played))
	for i, m := range sc.played {
		descs[i] = m.ShortDescription()
	}
	return msg(strings.Join(descs, " ")), nil
}

// whatMove names the move that leads from the current board to the one
// given in notation.
func (sc *ShellController) whatMove(cmd *shellcmd) (*Response, error) {
	if sc.board == nil {
		return nil, errNoBoard
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("need a board notation")
	}
	to, err := board.ParseNotation(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	m, err := movegen.FindMove(sc.board, to)
	if err != nil {
		return nil, err
	}
	return msg(m.ShortDescription() + ": " + m.String()), nil
}

func (sc *ShellController) hash(cmd *shellcmd) (*Response, error) {
	if sc.board == nil {
		return nil, errNoBoard
	}
	return msg(fmt.Sprintf("%016x", sc.zobrist.Hash(sc.board))), nil
}

func perftTable(res perft.Result) string {
	var sb strings.Builder
	for _, rc := range res.Divide {
		fmt.Fprintf(&sb, "%-9s %d\n", rc.Move.ShortDescription(), rc.Leaves)
	}
	fmt.Fprintf(&sb, "depth %d: %d leaves, %d nodes", res.Depth, res.Leaves, res.Nodes)
	return sb.String()
}

// perft counts leaves in the background. `perft stop` cancels it.
func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if !sc.perftRunning() {
			return nil, errors.New("no running perft to stop")
		}
		sc.perftCancel()
		<-sc.perftDone
		return msg("perft stopped"), nil
	}
	if sc.board == nil {
		return nil, errNoBoard
	}
	if sc.perftRunning() {
		return nil, errPerftRunning
	}
	depth := 3
	if len(cmd.args) > 0 {
		var err error
		depth, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigPerftThreads))
	if err != nil {
		return nil, err
	}
	counter := perft.NewCounter(threads, sc.config.GetFloat64(config.ConfigPerftMemoryFraction))

	b := sc.board.Clone()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.perftCancel, sc.perftDone = cancel, done
	out := sc.out
	go func() {
		defer close(done)
		res, err := counter.Run(ctx, b, depth)
		if err != nil {
			showMessage("Error: "+err.Error(), out)
			return
		}
		showMessage(perftTable(res), out)
	}()
	return msg(fmt.Sprintf("perft to depth %d started", depth)), nil
}

// survey plays random games over a run of deals and reports statistics.
func (sc *ShellController) survey(cmd *shellcmd) (*Response, error) {
	if sc.perftRunning() {
		return nil, errPerftRunning
	}
	deals := 100
	if len(cmd.args) > 0 {
		var err error
		deals, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	playouts, err := cmd.options.IntDefault("playouts", 10)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigPerftThreads))
	if err != nil {
		return nil, err
	}
	firstSeed := uint64(1)
	if s := cmd.options.String("seed"); s != "" {
		firstSeed, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed: %w", err)
		}
	}
	res, err := survey.Run(context.Background(), firstSeed, deals, playouts, threads)
	if err != nil {
		return nil, err
	}
	return msg(res.String()), nil
}
