package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/dragonsol/board"
	"github.com/domino14/dragonsol/config"
	"github.com/domino14/dragonsol/move"
	"github.com/domino14/dragonsol/movegen"
	"github.com/domino14/dragonsol/zobrist"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoBoard           = errors.New("please deal or load a board first")
	errPerftRunning      = errors.New("perft is running, please do a `perft stop` first")
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	execPath   string
	gitVersion string

	board *board.Board
	// seed of the current deal, if it came from one.
	seed    uint64
	hasSeed bool
	// boards and moves played so far on the current deal, for undo.
	history []*board.Board
	played  []move.Move

	gen         *movegen.Generator
	curGenPlays []movegen.Neighbor
	zobrist     *zobrist.Zobrist

	perftCancel context.CancelFunc
	perftDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// syncWriter serializes writes from the readline loop and from a
// background perft.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// showMessage writes msg and its newline in one call, so two messages
// never interleave on a syncWriter.
func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg+"\n")
}

func newController(cfg *config.Config, execPath, gitVersion string, out io.Writer) *ShellController {
	z := &zobrist.Zobrist{}
	z.Initialize()
	return &ShellController{
		out:        &syncWriter{w: out},
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		gen:        movegen.NewGenerator(),
		zobrist:    z,
	}
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, execPath, gitVersion, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mdragonsol>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = &syncWriter{w: l.Stderr()}
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its arguments and its
// options. An option is a -name followed by its value, and may repeat.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			name := f[1:]
			options[name] = append(options[name], fields[idx+1])
			idx++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "deal":
		return sc.deal(cmd)
	case "load":
		return sc.load(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "notation":
		return sc.notation(cmd)
	case "gen":
		return sc.generate(cmd)
	case "play":
		return sc.play(cmd)
	case "collect":
		return sc.collect(cmd)
	case "undo":
		return sc.undo(cmd)
	case "history":
		return sc.showHistory(cmd)
	case "whatmove":
		return sc.whatMove(cmd)
	case "hash":
		return sc.hash(cmd)
	case "perft":
		return sc.perft(cmd)
	case "survey":
		return sc.survey(cmd)
	case "script":
		return sc.script(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
	return nil, fmt.Errorf("unrecognized command %q; type `help` for a list", cmd.cmd)
}

// execute runs one line. It reports whether the shell should quit.
func (sc *ShellController) execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "bye" || line == "exit" {
		return true
	}
	cmd, err := extractFields(line)
	if errors.Is(err, errNoData) {
		return false
	} else if err != nil {
		sc.showError(err)
		return false
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		sc.showError(err)
		return false
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return false
}

// Execute runs a single command line given on the command line, waiting
// for any perft it starts.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.execute(line)
	if sc.perftDone != nil {
		<-sc.perftDone
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if sc.execute(line) {
			sig <- syscall.SIGINT
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any running perft.
func (sc *ShellController) Cleanup() {
	if sc.perftCancel != nil {
		sc.perftCancel()
		<-sc.perftDone
	}
}
