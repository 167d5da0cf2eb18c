package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("dragonsol_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Exec runs one shell command line and pushes its output.
func Exec(L *lua.LState) int {
	line := L.ToString(1)
	sc := getShell(L)
	cmd, err := extractFields(line)
	if err == nil {
		var r *Response
		r, err = sc.dispatch(cmd)
		if err == nil {
			out := ""
			if r != nil {
				out = r.message
			}
			L.Push(lua.LString(out))
			return 1
		}
	}
	log.Err(err).Str("line", line).Msg("error-executing-script-command")
	L.Push(lua.LString("ERROR: " + err.Error()))
	// return number of results pushed to stack.
	return 1
}

// Gen pushes a table of the legal moves' short descriptions.
func Gen(L *lua.LState) int {
	sc := getShell(L)
	tbl := L.NewTable()
	if sc.board != nil {
		for _, p := range sc.gen.GenAll(sc.board) {
			tbl.Append(lua.LString(p.Move.ShortDescription()))
		}
	}
	L.Push(tbl)
	return 1
}

// Board pushes the current board's notation, or nil with no board.
func Board(L *lua.LState) int {
	sc := getShell(L)
	if sc.board == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(sc.board.Notation()))
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("dragonsol_shell", lsc)
	L.SetGlobal("dragonsol_exec", L.NewFunction(Exec))
	L.SetGlobal("dragonsol_gen", L.NewFunction(Gen))
	L.SetGlobal("dragonsol_board", L.NewFunction(Board))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
