package checkersmg

import "github.com/dylhunn/dragontoothmg"

// TurkishRules implements Turkish dama: men step and capture forward or sideways, kings
// slide any distance along ranks and files and capture flying. The longest capture
// sequence is mandatory.
type TurkishRules struct{}

// NewTurkishRules returns the Turkish rule set.
func NewTurkishRules() TurkishRules { return TurkishRules{} }

func (TurkishRules) Variant() Variant { return Turkish }

// Starting masks: every square of rows 1-2 for Black and 5-6 for Red.
const (
	turkishBlackStart uint64 = 0x0000000000FFFF00
	turkishRedStart   uint64 = 0x00FFFF0000000000
)

var orthogonalDirs = [4]int{DirNorth, DirSouth, DirEast, DirWest}

func (TurkishRules) InitialSetup() Board {
	return Board{BlackMen: turkishBlackStart, RedMen: turkishRedStart}
}

func (TurkishRules) PromotionRow(c Color) int { return promotionRow(c) }

func (TurkishRules) IsMaximalCaptureMandatory() bool { return true }

func manForward(bit uint64, c Color) uint64 {
	if c == Black {
		return shiftSouth(bit)
	}
	return shiftNorth(bit)
}

// RegularMask returns quiet destinations: one square forward/sideways for a man, every
// empty square up to the first blocker on each rank/file ray for a king.
func (TurkishRules) RegularMask(sq int, piece Piece, b Board) uint64 {
	checkIndex(sq)
	occ := b.Occupied()
	if piece.King {
		return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ) &^ occ
	}
	bit := uint64(1) << uint(sq)
	return (manForward(bit, piece.Color) | shiftEast(bit) | shiftWest(bit)) &^ occ
}

// JumpMask returns capture landings. A king looks at the first occupied square of each
// ray; when it is an enemy piece every empty square behind it, up to the next occupied
// square, is a landing.
func (TurkishRules) JumpMask(sq int, piece Piece, b Board) uint64 {
	checkIndex(sq)
	occ := b.Occupied()
	enemy := b.Pieces(piece.Color.Opponent())
	if !piece.King {
		bit := uint64(1) << uint(sq)
		empty := ^occ
		landings := manForward(manForward(bit, piece.Color)&enemy, piece.Color) & empty
		landings |= shiftEast(shiftEast(bit)&enemy) & empty
		landings |= shiftWest(shiftWest(bit)&enemy) & empty
		return landings
	}

	attacks := dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)
	var landings uint64
	for _, d := range orthogonalDirs {
		blocker := nearestOnRay(attacks&rays[sq][d]&occ, d)
		if blocker < 0 || enemy&(uint64(1)<<uint(blocker)) == 0 {
			continue
		}
		beyond := dragontoothmg.CalculateRookMoveBitboard(uint8(blocker), occ) & rays[blocker][d]
		landings |= beyond &^ occ
	}
	return landings
}

// CapturedSquare returns the single enemy piece passed over by from->to, or -1.
func (TurkishRules) CapturedSquare(from, to int, b Board) int {
	checkIndex(from)
	checkIndex(to)
	if from>>3 != to>>3 && from&7 != to&7 {
		return -1
	}
	return capturedBetween(from, to, b)
}

func (r TurkishRules) RegularMoves(pos Position, piece Piece, b Board) []Position {
	return Positions(r.RegularMask(pos.Index(), piece, b))
}

func (r TurkishRules) JumpMoves(pos Position, piece Piece, b Board) []Position {
	return Positions(r.JumpMask(pos.Index(), piece, b))
}

func (r TurkishRules) FurtherJumps(pos Position, piece Piece, b Board) []Position {
	return r.JumpMoves(pos, piece, b)
}

func (r TurkishRules) ApplyMove(b Board, from, to Position, player Color) MoveResult {
	return applyMove(r, b, from, to, player)
}

func (r TurkishRules) AllMovesForPlayer(b Board, player Color, jumpsOnly bool) map[Position][]Position {
	return allMovesForPlayer(r, b, player, jumpsOnly)
}

func (TurkishRules) CheckWinCondition(b Board, player Color, legalJumps, legalRegular map[Position][]Position, history History) GameStatus {
	return checkWinCondition(b, player, legalJumps, legalRegular, history)
}

func (TurkishRules) GenerateBoardStateHash(b Board, toMove Color) string {
	return GenerateBoardStateHash(b, toMove)
}
