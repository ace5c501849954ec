package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"
)

const (
	defaultDepth  = 6
	defaultQDepth = engine.DefaultQuiescenceDepth
)

func main() {
	shellLoop(os.Stdin, os.Stdout)
}

type shell struct {
	out      io.Writer
	rules    cm.Rules
	game     *cm.Game
	weights  engine.Weights
	searcher *engine.Searcher
}

func newShell(out io.Writer, v cm.Variant) *shell {
	sh := &shell{out: out}
	sh.setVariant(v)
	return sh
}

func (sh *shell) setVariant(v cm.Variant) {
	sh.rules = cm.MustRules(v)
	sh.game = cm.NewGame(sh.rules)
	sh.weights = engine.DefaultWeights(v)
	sh.rebuildSearcher()
}

func (sh *shell) rebuildSearcher() {
	sh.searcher = engine.NewSearcher(sh.rules,
		engine.WithEvaluator(engine.NewWeightedEvaluator(sh.rules, sh.weights)),
		engine.WithInfo(sh.out))
}

func (sh *shell) println(a ...any) { fmt.Fprintln(sh.out, a...) }

func shellLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	sh := newShell(out, cm.Standard)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "isready":
			sh.println("readyok")
		case "quit":
			return
		case "variant":
			if len(tokens) < 2 {
				sh.println("info string Current variant", sh.rules.Variant())
				continue
			}
			v, err := cm.ParseVariant(tokens[1])
			if err != nil {
				sh.println("info string", err)
				continue
			}
			sh.setVariant(v)
			sh.println("info string Variant", v)
		case "newgame":
			sh.game = cm.NewGame(sh.rules)
		case "position":
			sh.position(tokens[1:])
		case "d":
			sh.display()
		case "moves":
			sh.moves()
		case "play":
			if len(tokens) < 2 {
				sh.println("info string Malformed play command")
				continue
			}
			sh.play(tokens[1])
		case "status":
			sh.println("status", sh.game.Status())
		case "go":
			sh.goSearch(tokens[1:])
		case "perft":
			depth := 1
			if len(tokens) > 1 {
				var err error
				if depth, err = strconv.Atoi(tokens[1]); err != nil {
					sh.println("info string Malformed perft depth")
					continue
				}
			}
			sh.println("nodes", cm.Perft(sh.rules, sh.game.Board(), sh.game.ToMove(), depth))
		case "eval":
			e := engine.NewWeightedEvaluator(sh.rules, sh.weights)
			sh.println("eval", strconv.FormatFloat(e.Evaluate(sh.game.Board(), sh.game.ToMove()), 'f', 2, 64))
		case "setoption":
			sh.setOption(tokens[1:])
		default:
			sh.println("info string Unknown command:", line)
		}
	}
}

// position startpos [moves ...] | position fen <ranks> [r|b] [moves ...]
func (sh *shell) position(args []string) {
	if len(args) == 0 {
		sh.println("info string Malformed position command")
		return
	}
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		sh.game = cm.NewGame(sh.rules)
	case "fen":
		var fen []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fen = append(fen, rest[0])
			rest = rest[1:]
		}
		if len(fen) == 0 {
			sh.println("info string Invalid fen position")
			return
		}
		b, toMove, err := cm.ParseFEN(strings.Join(fen, " "))
		if err != nil {
			sh.println("info string", err)
			return
		}
		if !b.Valid(sh.rules.Variant()) {
			sh.println("info string Position is not valid for", sh.rules.Variant())
			return
		}
		sh.game = cm.NewGameFrom(sh.rules, b, toMove)
	default:
		sh.println("info string Invalid position subcommand")
		return
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, mv := range rest[1:] {
		if err := sh.playPath(mv); err != nil {
			sh.println("info string Move", mv, "not played:", err)
			return
		}
	}
}

func (sh *shell) playPath(s string) error {
	path, err := cm.ParsePath(s)
	if err != nil {
		return err
	}
	return sh.game.PlayPath(path)
}

func (sh *shell) play(s string) {
	if err := sh.playPath(s); err != nil {
		sh.println("info string", err)
		return
	}
	sh.println("info string Played", s, "status", sh.game.Status())
}

func (sh *shell) display() {
	fmt.Fprint(sh.out, sh.game.Board().String())
	sh.println("fen", cm.ToFEN(sh.game.Board(), sh.game.ToMove()))
	sh.println("tomove", sh.game.ToMove())
}

func (sh *shell) moves() {
	legal := sh.game.LegalMoves()
	for _, from := range sh.game.Movable() {
		targets := make([]string, len(legal[from]))
		for i, to := range legal[from] {
			targets[i] = to.String()
		}
		sh.println("moves", from, strings.Join(targets, " "))
	}
	for _, seq := range cm.TurnSequences(sh.rules, sh.game.Board(), sh.game.ToMove(), false) {
		if seq.Captures > 1 {
			sh.println("sequence", cm.PathString(seq.Path))
		}
	}
}

// go [depth N] [qdepth M]
func (sh *shell) goSearch(args []string) {
	depth, qdepth := defaultDepth, defaultQDepth
	for i := 0; i < len(args); i++ {
		name := strings.ToLower(args[i])
		if name != "depth" && name != "qdepth" {
			sh.println("info string Unknown go subcommand", args[i])
			continue
		}
		if i+1 >= len(args) {
			sh.println("info string Malformed go command option", name)
			return
		}
		i++
		n, err := strconv.Atoi(args[i])
		if err != nil {
			sh.println("info string Malformed go command option; could not convert", name)
			return
		}
		if name == "depth" {
			depth = n
		} else {
			qdepth = n
		}
	}
	if sh.game.InProgressJump() {
		sh.println("info string Jump in progress, finish it with play")
		return
	}
	if sh.game.Status().Over() {
		sh.println("bestmove (none)")
		return
	}
	res, ok := sh.searcher.Search(sh.game.Board(), sh.game.ToMove(), depth, qdepth)
	if !ok {
		sh.println("bestmove (none)")
		return
	}
	sh.println("bestmove", cm.PathString(res.Path))
}

// setoption name <Param> value <float>
func (sh *shell) setOption(args []string) {
	if len(args) != 4 || !strings.EqualFold(args[0], "name") || !strings.EqualFold(args[2], "value") {
		sh.println("info string Malformed setoption command")
		return
	}
	ptr, ok := sh.weights.Lookup(args[1])
	if !ok {
		sh.println("info string Unknown option", args[1])
		return
	}
	v, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		sh.println("info string", err)
		return
	}
	*ptr = v
	sh.rebuildSearcher()
}
