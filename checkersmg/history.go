package checkersmg

import (
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// GenerateBoardStateHash builds the repetition key of a position: the four masks in hex
// plus the side to move. Equal masks and side give equal keys; it is not meant to serve as
// a transposition key.
func GenerateBoardStateHash(b Board, toMove Color) string {
	var sb strings.Builder
	sb.Grow(72)
	sb.WriteString(strconv.FormatUint(b.BlackMen, 16))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(b.BlackKings, 16))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(b.RedMen, 16))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(b.RedKings, 16))
	sb.WriteByte(':')
	if toMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('r')
	}
	return sb.String()
}

// History counts how often each (board, side to move) has occurred. It belongs to the
// caller; the rules only read it.
type History map[string]int

// Record bumps the counter for the position and returns the new count.
func (h History) Record(b Board, toMove Color) int {
	key := GenerateBoardStateHash(b, toMove)
	h[key]++
	return h[key]
}

// Count returns how many times the position has been recorded. A nil History counts zero.
func (h History) Count(b Board, toMove Color) int {
	return h[GenerateBoardStateHash(b, toMove)]
}

// Clone copies the counters.
func (h History) Clone() History {
	return maps.Clone(h)
}
