package checkersmg

import (
	"errors"
	"fmt"
	"strings"
)

// Variant selects a rule set.
type Variant uint8

const (
	Standard Variant = iota
	Turkish
)

var (
	ErrUnknownVariant = errors.New("unknown rules variant")
	ErrIllegalMove    = errors.New("illegal move requested")
)

// Variants lists every supported rule set.
var Variants = []Variant{Standard, Turkish}

func (v Variant) String() string {
	switch v {
	case Standard:
		return "standard"
	case Turkish:
		return "turkish"
	}
	return fmt.Sprintf("variant(%d)", uint8(v))
}

// ParseVariant accepts the names produced by Variant.String plus a few aliases.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "checkers", "english", "std":
		return Standard, nil
	case "turkish", "dama", "turkish-dama":
		return Turkish, nil
	}
	return Standard, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MoveResult is what ApplyMove hands back. Captured is NoPosition for a quiet move.
type MoveResult struct {
	Board       Board    `json:"board"`
	TurnChanged bool     `json:"turnChanged"`
	PieceKinged bool     `json:"pieceKinged"`
	Captured    Position `json:"captured"`
}

// Rules is the contract shared by every variant. Implementations are stateless values.
type Rules interface {
	Variant() Variant

	// InitialSetup returns the starting position.
	InitialSetup() Board

	// RegularMoves lists the non-capturing destinations of piece standing on pos.
	RegularMoves(pos Position, piece Piece, b Board) []Position

	// JumpMoves lists the landing squares of single capture steps.
	JumpMoves(pos Position, piece Piece, b Board) []Position

	// FurtherJumps is JumpMoves for a piece that is in the middle of a multi-jump.
	FurtherJumps(pos Position, piece Piece, b Board) []Position

	// ApplyMove moves the piece of player from one square to another, removing a
	// captured piece and crowning on the king row. TurnChanged is false when the
	// piece just jumped and can jump again.
	ApplyMove(b Board, from, to Position, player Color) MoveResult

	// AllMovesForPlayer maps every movable piece of player to its first-step options,
	// honouring mandatory (and, where required, maximal) capture.
	AllMovesForPlayer(b Board, player Color, jumpsOnly bool) map[Position][]Position

	// CheckWinCondition decides the status of the position with player to move.
	CheckWinCondition(b Board, player Color, legalJumps, legalRegular map[Position][]Position, history History) GameStatus

	GenerateBoardStateHash(b Board, toMove Color) string

	IsMaximalCaptureMandatory() bool

	// Bitboard forms used on hot paths.
	RegularMask(sq int, piece Piece, b Board) uint64
	JumpMask(sq int, piece Piece, b Board) uint64
	CapturedSquare(from, to int, b Board) int
	PromotionRow(c Color) int
}

// NewRules builds the rule set for v.
func NewRules(v Variant) (Rules, error) {
	switch v {
	case Standard:
		return NewStandardRules(), nil
	case Turkish:
		return NewTurkishRules(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v))
}

// MustRules is NewRules for variants known at compile time.
func MustRules(v Variant) Rules {
	r, err := NewRules(v)
	if err != nil {
		panic(err)
	}
	return r
}

// forward returns the row delta a man of c advances by.
func forward(c Color) int {
	if c == Black {
		return 1
	}
	return -1
}

func promotionRow(c Color) int {
	if c == Black {
		return BoardSize - 1
	}
	return 0
}

// Positions converts a mask into positions in ascending square order.
func Positions(mask uint64) []Position {
	if mask == 0 {
		return nil
	}
	out := make([]Position, 0, PopCount(mask))
	for mask != 0 {
		sq := LSBIndex(mask)
		mask &= mask - 1
		out = append(out, Position{Row: sq >> 3, Col: sq & 7})
	}
	return out
}

// capturedBetween finds the single opponent piece between from and to on a straight
// line. It returns -1 for non-collinear squares, empty gaps and gaps holding more than
// one piece or a friendly piece.
func capturedBetween(from, to int, b Board) int {
	mover, ok := b.PieceAt(from)
	if !ok {
		return -1
	}
	dr := (to >> 3) - (from >> 3)
	dc := (to & 7) - (from & 7)
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return -1
	}
	sr, sc := sign(dr), sign(dc)
	delta := sr*BoardSize + sc
	if delta == 0 {
		return -1
	}
	occ := b.Occupied()
	enemy := b.Pieces(mover.Color.Opponent())
	found := -1
	for sq := from + delta; sq != to; sq += delta {
		bit := uint64(1) << uint(sq)
		if occ&bit == 0 {
			continue
		}
		if enemy&bit == 0 || found >= 0 {
			return -1
		}
		found = sq
	}
	return found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// applyMove carries out one step for any variant.
func applyMove(r Rules, b Board, from, to Position, player Color) MoveResult {
	fi, ti := from.Index(), to.Index()
	piece, ok := b.PieceAt(fi)
	if !ok || piece.Color != player {
		panic(fmt.Errorf("%w: no %s piece on %s", ErrIllegalMove, player, from))
	}
	if IsSet(b.Occupied(), ti) {
		panic(fmt.Errorf("%w: %s is occupied", ErrIllegalMove, to))
	}

	res := MoveResult{Captured: NoPosition}
	captured := r.CapturedSquare(fi, ti, b)
	next := b.Remove(fi)
	if captured >= 0 {
		next = next.Remove(captured)
		res.Captured = PositionFromIndex(captured)
	}
	if !piece.King && to.Row == r.PromotionRow(player) {
		piece = piece.Promoted()
		res.PieceKinged = true
	}
	next = next.Put(ti, piece)
	res.Board = next

	// Crowning ends the turn; otherwise a jumper keeps going while it can.
	res.TurnChanged = captured < 0 || res.PieceKinged || r.JumpMask(ti, piece, next) == 0
	return res
}

// allMovesForPlayer is the variant independent part of AllMovesForPlayer.
func allMovesForPlayer(r Rules, b Board, player Color, jumpsOnly bool) map[Position][]Position {
	out := make(map[Position][]Position)
	own := b.Pieces(player)
	kings := b.Kings(player)

	if r.IsMaximalCaptureMandatory() {
		best := 0
		firstSteps := make(map[int]uint64)
		for rest := own; rest != 0; rest &= rest - 1 {
			sq := LSBIndex(rest)
			for _, seq := range CaptureSequences(r, b, PositionFromIndex(sq)) {
				switch {
				case seq.Captures > best:
					best = seq.Captures
					firstSteps = map[int]uint64{sq: uint64(1) << uint(seq.Path[1].Index())}
				case seq.Captures == best:
					firstSteps[sq] |= uint64(1) << uint(seq.Path[1].Index())
				}
			}
		}
		for sq, mask := range firstSteps {
			out[PositionFromIndex(sq)] = Positions(mask)
		}
	} else {
		for rest := own; rest != 0; rest &= rest - 1 {
			sq := LSBIndex(rest)
			piece := Piece{Color: player, King: kings&(uint64(1)<<uint(sq)) != 0}
			if m := r.JumpMask(sq, piece, b); m != 0 {
				out[PositionFromIndex(sq)] = Positions(m)
			}
		}
	}
	if len(out) > 0 || jumpsOnly {
		return out
	}

	for rest := own; rest != 0; rest &= rest - 1 {
		sq := LSBIndex(rest)
		piece := Piece{Color: player, King: kings&(uint64(1)<<uint(sq)) != 0}
		if m := r.RegularMask(sq, piece, b); m != 0 {
			out[PositionFromIndex(sq)] = Positions(m)
		}
	}
	return out
}

// HasAnyJump reports whether player has at least one capture available.
func HasAnyJump(r Rules, b Board, player Color) bool {
	kings := b.Kings(player)
	for rest := b.Pieces(player); rest != 0; rest &= rest - 1 {
		sq := LSBIndex(rest)
		piece := Piece{Color: player, King: kings&(uint64(1)<<uint(sq)) != 0}
		if r.JumpMask(sq, piece, b) != 0 {
			return true
		}
	}
	return false
}

func checkWinCondition(b Board, player Color, legalJumps, legalRegular map[Position][]Position, history History) GameStatus {
	if history.Count(b, player) >= 3 {
		return GameStatus{Outcome: Draw, Reason: ThreefoldRepetition}
	}
	if b.Pieces(player) == 0 {
		return GameStatus{Outcome: Win, Winner: player.Opponent(), Reason: NoPiecesLeft}
	}
	if len(legalJumps) == 0 && len(legalRegular) == 0 {
		return GameStatus{Outcome: Win, Winner: player.Opponent(), Reason: NoMovesLeft}
	}
	return GameStatus{Outcome: Ongoing}
}
