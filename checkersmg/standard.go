package checkersmg

// StandardRules implements English/American checkers: men step and capture diagonally
// forward, kings step and capture one square along any diagonal.
type StandardRules struct{}

// NewStandardRules returns the Standard rule set.
func NewStandardRules() StandardRules { return StandardRules{} }

func (StandardRules) Variant() Variant { return Standard }

// Starting masks: dark squares of rows 0-2 for Black and 5-7 for Red.
const (
	standardBlackStart = darkSquares & 0x0000000000FFFFFF
	standardRedStart   = darkSquares & 0xFFFFFF0000000000
)

func (StandardRules) InitialSetup() Board {
	return Board{BlackMen: standardBlackStart, RedMen: standardRedStart}
}

func (StandardRules) PromotionRow(c Color) int { return promotionRow(c) }

func (StandardRules) IsMaximalCaptureMandatory() bool { return false }

// RegularMask returns the empty diagonal neighbours the piece may step to.
func (StandardRules) RegularMask(sq int, piece Piece, b Board) uint64 {
	checkIndex(sq)
	bit := uint64(1) << uint(sq)
	var targets uint64
	if piece.King || piece.Color == Red {
		targets |= shiftNorthEast(bit) | shiftNorthWest(bit)
	}
	if piece.King || piece.Color == Black {
		targets |= shiftSouthEast(bit) | shiftSouthWest(bit)
	}
	return targets & b.Empty()
}

// JumpMask returns landing squares two diagonals away with an enemy piece in between.
func (StandardRules) JumpMask(sq int, piece Piece, b Board) uint64 {
	checkIndex(sq)
	bit := uint64(1) << uint(sq)
	enemy := b.Pieces(piece.Color.Opponent())
	empty := b.Empty()
	var landings uint64
	if piece.King || piece.Color == Red {
		landings |= shiftNorthEast(shiftNorthEast(bit)&enemy) & empty
		landings |= shiftNorthWest(shiftNorthWest(bit)&enemy) & empty
	}
	if piece.King || piece.Color == Black {
		landings |= shiftSouthEast(shiftSouthEast(bit)&enemy) & empty
		landings |= shiftSouthWest(shiftSouthWest(bit)&enemy) & empty
	}
	return landings
}

// CapturedSquare returns the square jumped over by from->to, or -1 for a step.
func (StandardRules) CapturedSquare(from, to int, b Board) int {
	checkIndex(from)
	checkIndex(to)
	if abs((to>>3)-(from>>3)) != 2 {
		return -1
	}
	return capturedBetween(from, to, b)
}

func (r StandardRules) RegularMoves(pos Position, piece Piece, b Board) []Position {
	return Positions(r.RegularMask(pos.Index(), piece, b))
}

func (r StandardRules) JumpMoves(pos Position, piece Piece, b Board) []Position {
	return Positions(r.JumpMask(pos.Index(), piece, b))
}

func (r StandardRules) FurtherJumps(pos Position, piece Piece, b Board) []Position {
	return r.JumpMoves(pos, piece, b)
}

func (r StandardRules) ApplyMove(b Board, from, to Position, player Color) MoveResult {
	return applyMove(r, b, from, to, player)
}

func (r StandardRules) AllMovesForPlayer(b Board, player Color, jumpsOnly bool) map[Position][]Position {
	return allMovesForPlayer(r, b, player, jumpsOnly)
}

func (StandardRules) CheckWinCondition(b Board, player Color, legalJumps, legalRegular map[Position][]Position, history History) GameStatus {
	return checkWinCondition(b, player, legalJumps, legalRegular, history)
}

func (StandardRules) GenerateBoardStateHash(b Board, toMove Color) string {
	return GenerateBoardStateHash(b, toMove)
}
