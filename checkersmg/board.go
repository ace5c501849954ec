package checkersmg

import (
	"fmt"
	"math/bits"
	"strings"
)

// Color is the side owning a piece.
type Color uint8

const (
	Red   Color = 0
	Black Color = 1
)

// Opponent returns the other side.
func (c Color) Opponent() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "red"
}

// ParseColor accepts "r", "red", "b" or "black".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "b", "black":
		return Black, nil
	}
	return Red, fmt.Errorf("unknown color %q", s)
}

// MarshalText lets colors travel as "red"/"black" in JSON payloads.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Piece is a derived view of what occupies a square. It is never stored.
type Piece struct {
	Color Color
	King  bool
}

// Promoted returns the king version of p.
func (p Piece) Promoted() Piece { return Piece{Color: p.Color, King: true} }

func (p Piece) String() string {
	ch := 'r'
	if p.Color == Black {
		ch = 'b'
	}
	if p.King {
		ch -= 'a' - 'A'
	}
	return string(ch)
}

// Position is a (row, col) coordinate, both in [0,7].
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoPosition marks "no square".
var NoPosition = Position{Row: -1, Col: -1}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return uint(p.Row) < BoardSize && uint(p.Col) < BoardSize
}

// Index returns the square index. Panics with ErrInvalidIndex when off the board.
func (p Position) Index() int { return RCToIndex(p.Row, p.Col) }

// PositionFromIndex converts a square index into a Position.
func PositionFromIndex(idx int) Position {
	checkIndex(idx)
	return Position{Row: idx >> 3, Col: idx & 7}
}

// String renders the position as column letter + row number, e.g. row 5 col 2 is "c5".
func (p Position) String() string {
	if !p.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(p.Col), '0' + byte(p.Row)})
}

// ParsePosition is the inverse of Position.String.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '0' || s[1] > '7' {
		return NoPosition, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	return Position{Row: int(s[1] - '0'), Col: int(s[0] - 'a')}, nil
}

// Move is a single step from one square to another.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) String() string { return m.From.String() + m.To.String() }

// Board holds every piece of both variants as four disjoint bitboards.
// Square index is row*8+col. Boards are values: every rule operation returns a new one.
type Board struct {
	BlackMen   uint64 `json:"blackMen"`
	BlackKings uint64 `json:"blackKings"`
	RedMen     uint64 `json:"redMen"`
	RedKings   uint64 `json:"redKings"`
}

// AllBlack is every black piece.
func (b Board) AllBlack() uint64 { return b.BlackMen | b.BlackKings }

// AllRed is every red piece.
func (b Board) AllRed() uint64 { return b.RedMen | b.RedKings }

// Occupied is every square holding a piece.
func (b Board) Occupied() uint64 { return b.AllBlack() | b.AllRed() }

// Empty is every square without a piece.
func (b Board) Empty() uint64 { return ^b.Occupied() }

// Men returns the men of one color.
func (b Board) Men(c Color) uint64 {
	if c == Black {
		return b.BlackMen
	}
	return b.RedMen
}

// Kings returns the kings of one color.
func (b Board) Kings(c Color) uint64 {
	if c == Black {
		return b.BlackKings
	}
	return b.RedKings
}

// Pieces returns every piece of one color.
func (b Board) Pieces(c Color) uint64 {
	if c == Black {
		return b.AllBlack()
	}
	return b.AllRed()
}

// PieceCount returns how many pieces c owns.
func (b Board) PieceCount(c Color) int { return PopCount(b.Pieces(c)) }

// IsEmpty reports whether neither side has a piece.
func (b Board) IsEmpty() bool { return b.Occupied() == 0 }

// PieceAt reports the piece on idx, if any.
func (b Board) PieceAt(idx int) (Piece, bool) {
	checkIndex(idx)
	bit := uint64(1) << uint(idx)
	switch {
	case b.BlackMen&bit != 0:
		return Piece{Color: Black}, true
	case b.BlackKings&bit != 0:
		return Piece{Color: Black, King: true}, true
	case b.RedMen&bit != 0:
		return Piece{Color: Red}, true
	case b.RedKings&bit != 0:
		return Piece{Color: Red, King: true}, true
	}
	return Piece{}, false
}

// PieceOn is PieceAt for a Position.
func (b Board) PieceOn(p Position) (Piece, bool) { return b.PieceAt(p.Index()) }

func (b *Board) mask(p Piece) *uint64 {
	switch {
	case p.Color == Black && p.King:
		return &b.BlackKings
	case p.Color == Black:
		return &b.BlackMen
	case p.King:
		return &b.RedKings
	default:
		return &b.RedMen
	}
}

// Remove returns a copy of b with idx cleared in every mask.
func (b Board) Remove(idx int) Board {
	checkIndex(idx)
	keep := ^(uint64(1) << uint(idx))
	b.BlackMen &= keep
	b.BlackKings &= keep
	b.RedMen &= keep
	b.RedKings &= keep
	return b
}

// Put returns a copy of b with p on idx, replacing whatever was there.
func (b Board) Put(idx int, p Piece) Board {
	b = b.Remove(idx)
	m := b.mask(p)
	*m |= uint64(1) << uint(idx)
	return b
}

// Disjoint reports whether no square is claimed by two masks.
func (b Board) Disjoint() bool {
	return b.BlackMen&b.BlackKings == 0 &&
		b.BlackMen&b.RedMen == 0 &&
		b.BlackMen&b.RedKings == 0 &&
		b.BlackKings&b.RedMen == 0 &&
		b.BlackKings&b.RedKings == 0 &&
		b.RedMen&b.RedKings == 0
}

// darkSquares are the squares with odd row+col, the playing squares of Standard checkers.
const darkSquares uint64 = 0x55AA55AA55AA55AA

// Valid checks the board invariants for a variant.
func (b Board) Valid(v Variant) bool {
	if !b.Disjoint() {
		return false
	}
	if v == Standard && b.Occupied()&^darkSquares != 0 {
		return false
	}
	return true
}

// Mirror rotates the board by 180 degrees and swaps colors. The result is the same
// position seen from the other side, so dark squares stay dark.
func (b Board) Mirror() Board {
	return Board{
		BlackMen:   reverse(b.RedMen),
		BlackKings: reverse(b.RedKings),
		RedMen:     reverse(b.BlackMen),
		RedKings:   reverse(b.BlackKings),
	}
}

// reverse maps square i to 63-i.
func reverse(bb uint64) uint64 { return bits.Reverse64(bb) }

// String draws the board with row 0 on top.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  abcdefgh\n")
	for r := 0; r < BoardSize; r++ {
		sb.WriteByte('0' + byte(r))
		sb.WriteByte(' ')
		for c := 0; c < BoardSize; c++ {
			if p, ok := b.PieceAt(r*BoardSize + c); ok {
				sb.WriteString(p.String())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
