package checkersmg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFEN is returned for malformed board strings.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN reads a board written as eight ranks, row 0 first, separated by '/', followed
// by the side to move. 'b'/'B' are black men/kings, 'r'/'R' red men/kings and digits
// count empty squares, e.g. "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/r1r1r1r1/1r1r1r1r/r1r1r1r1 r".
func ParseFEN(fen string) (Board, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) < 1 || len(fields) > 2 {
		return Board{}, Red, fmt.Errorf("%w: expected placement and side to move", ErrInvalidFEN)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != BoardSize {
		return Board{}, Red, fmt.Errorf("%w: incorrect number of ranks", ErrInvalidFEN)
	}

	var b Board
	for row, rankStr := range ranks {
		if len(rankStr) == 0 {
			return Board{}, Red, fmt.Errorf("%w: empty rank description", ErrInvalidFEN)
		}
		col := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			piece, ok := pieceFromChar(ch)
			if !ok {
				return Board{}, Red, fmt.Errorf("%w: unrecognized piece character %q", ErrInvalidFEN, ch)
			}
			if col >= BoardSize {
				return Board{}, Red, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, row)
			}
			b = b.Put(row*BoardSize+col, piece)
			col++
		}
		if col != BoardSize {
			return Board{}, Red, fmt.Errorf("%w: rank %d does not have 8 columns", ErrInvalidFEN, row)
		}
	}

	toMove := Red
	if len(fields) == 2 {
		c, err := ParseColor(fields[1])
		if err != nil {
			return Board{}, Red, fmt.Errorf("%w: side to move must be 'r' or 'b'", ErrInvalidFEN)
		}
		toMove = c
	}
	return b, toMove, nil
}

// MustParseFEN panics on invalid input. Intended for tests and constants.
func MustParseFEN(fen string) (Board, Color) {
	b, c, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b, c
}

// ToFEN is the inverse of ParseFEN.
func ToFEN(b Board, toMove Color) string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < BoardSize; col++ {
			p, ok := b.PieceAt(row*BoardSize + col)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
	}
	sb.WriteByte(' ')
	if toMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('r')
	}
	return sb.String()
}

// StartFEN returns the initial position of a rule set with Red to move.
func StartFEN(r Rules) string { return ToFEN(r.InitialSetup(), Red) }

func pieceFromChar(ch rune) (Piece, bool) {
	switch ch {
	case 'b':
		return Piece{Color: Black}, true
	case 'B':
		return Piece{Color: Black, King: true}, true
	case 'r':
		return Piece{Color: Red}, true
	case 'R':
		return Piece{Color: Red, King: true}, true
	}
	return Piece{}, false
}
