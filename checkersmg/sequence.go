package checkersmg

// Sequence is one complete capture turn (or a single quiet step): the squares visited by
// the moving piece, how many pieces it removed and the board after the turn.
type Sequence struct {
	Path     []Position
	Captures int
	Kinged   bool
	Result   Board
}

// First returns the opening step of the sequence.
func (s Sequence) First() Move {
	return Move{From: s.Path[0], To: s.Path[1]}
}

// CaptureSequences enumerates every complete capture turn for the piece on from. Each
// step is applied with ApplyMove, so captured pieces leave the board immediately and a
// crowning ends the sequence. Returns nil when the piece has no capture.
func CaptureSequences(r Rules, b Board, from Position) []Sequence {
	piece, ok := b.PieceOn(from)
	if !ok {
		return nil
	}
	var out []Sequence
	path := make([]Position, 1, 8)
	path[0] = from
	walkCaptures(r, b, piece, from.Index(), path, 0, &out)
	return out
}

func walkCaptures(r Rules, b Board, piece Piece, sq int, path []Position, captures int, out *[]Sequence) {
	landings := r.JumpMask(sq, piece, b)
	for landings != 0 {
		to := LSBIndex(landings)
		landings &= landings - 1

		res := r.ApplyMove(b, PositionFromIndex(sq), PositionFromIndex(to), piece.Color)
		next := append(path, PositionFromIndex(to))
		if res.TurnChanged {
			full := make([]Position, len(next))
			copy(full, next)
			*out = append(*out, Sequence{
				Path:     full,
				Captures: captures + 1,
				Kinged:   res.PieceKinged,
				Result:   res.Board,
			})
			continue
		}
		walkCaptures(r, res.Board, piece, to, next, captures+1, out)
	}
}

// MaxCaptures returns the longest capture count among seqs.
func MaxCaptures(seqs []Sequence) int {
	best := 0
	for _, s := range seqs {
		if s.Captures > best {
			best = s.Captures
		}
	}
	return best
}

// TurnSequences lists every complete turn available to player: capture sequences when
// any capture exists (only the longest ones when maximal capture is mandatory),
// otherwise one single-step sequence per regular move. capturesOnly skips the quiet
// fallback.
func TurnSequences(r Rules, b Board, player Color, capturesOnly bool) []Sequence {
	own := b.Pieces(player)
	var captures []Sequence
	for rest := own; rest != 0; rest &= rest - 1 {
		sq := LSBIndex(rest)
		captures = append(captures, CaptureSequences(r, b, PositionFromIndex(sq))...)
	}
	if len(captures) > 0 {
		if r.IsMaximalCaptureMandatory() {
			best := MaxCaptures(captures)
			kept := captures[:0]
			for _, s := range captures {
				if s.Captures == best {
					kept = append(kept, s)
				}
			}
			captures = kept
		}
		return captures
	}
	if capturesOnly {
		return nil
	}

	var quiet []Sequence
	kings := b.Kings(player)
	for rest := own; rest != 0; rest &= rest - 1 {
		sq := LSBIndex(rest)
		piece := Piece{Color: player, King: kings&(uint64(1)<<uint(sq)) != 0}
		from := PositionFromIndex(sq)
		for targets := r.RegularMask(sq, piece, b); targets != 0; targets &= targets - 1 {
			to := PositionFromIndex(LSBIndex(targets))
			res := r.ApplyMove(b, from, to, player)
			quiet = append(quiet, Sequence{
				Path:   []Position{from, to},
				Kinged: res.PieceKinged,
				Result: res.Board,
			})
		}
	}
	return quiet
}
