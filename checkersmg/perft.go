package checkersmg

import (
	"fmt"
	"strings"
)

// Perft counts the complete turns reachable in depth plies. Every capture sequence counts
// as one move, so two sequences removing the same pieces in a different order are two moves.
func Perft(r Rules, b Board, toMove Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	seqs := TurnSequences(r, b, toMove, false)
	if depth == 1 {
		return uint64(len(seqs))
	}
	var nodes uint64
	for _, s := range seqs {
		nodes += Perft(r, s.Result, toMove.Opponent(), depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each root turn, keyed by its path text.
func PerftDivide(r Rules, b Board, toMove Color, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, s := range TurnSequences(r, b, toMove, false) {
		out[PathString(s.Path)] += Perft(r, s.Result, toMove.Opponent(), depth-1)
	}
	return out
}

// PathString joins the visited squares, e.g. "c5-e3-c1".
func PathString(path []Position) string {
	buf := make([]byte, 0, len(path)*3)
	for i, p := range path {
		if i > 0 {
			buf = append(buf, '-')
		}
		buf = append(buf, p.String()...)
	}
	return string(buf)
}

// ParsePath reads a path written by PathString. Steps may be separated by '-' or 'x',
// or run together ("c5e3").
func ParsePath(s string) ([]Position, error) {
	s = strings.NewReplacer("-", "", "x", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if len(s) < 4 || len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: path %q", ErrIllegalMove, s)
	}
	path := make([]Position, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		p, err := ParsePosition(s[i : i+2])
		if err != nil {
			return nil, err
		}
		path = append(path, p)
	}
	return path, nil
}
