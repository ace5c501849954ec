package checkersmg

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidIndex is the panic value (wrapped) for out of range squares and coordinates.
var ErrInvalidIndex = errors.New("invalid board index")

// Square count and board edge.
const (
	NumSquares = 64
	BoardSize  = 8
)

// File masks used to keep shifted bitboards from wrapping onto the next row.
const (
	FileA   uint64 = 0x0101010101010101
	FileH   uint64 = 0x8080808080808080
	NotFileA       = ^FileA
	NotFileH       = ^FileH
)

func checkIndex(idx int) {
	if uint(idx) >= NumSquares {
		panic(fmt.Errorf("%w: square %d", ErrInvalidIndex, idx))
	}
}

// SetBit returns bb with the bit for idx set.
func SetBit(bb uint64, idx int) uint64 {
	checkIndex(idx)
	return bb | uint64(1)<<uint(idx)
}

// ClearBit returns bb with the bit for idx cleared.
func ClearBit(bb uint64, idx int) uint64 {
	checkIndex(idx)
	return bb &^ (uint64(1) << uint(idx))
}

// IsSet reports whether the bit for idx is set in bb.
func IsSet(bb uint64, idx int) bool {
	checkIndex(idx)
	return bb&(uint64(1)<<uint(idx)) != 0
}

// RCToIndex maps a (row, col) pair to a square index (row*8+col).
func RCToIndex(r, c int) int {
	if uint(r) >= BoardSize || uint(c) >= BoardSize {
		panic(fmt.Errorf("%w: row %d col %d", ErrInvalidIndex, r, c))
	}
	return r*BoardSize + c
}

// IndexToRow returns the row of a square.
func IndexToRow(idx int) int {
	checkIndex(idx)
	return idx >> 3
}

// IndexToCol returns the column of a square.
func IndexToCol(idx int) int {
	checkIndex(idx)
	return idx & 7
}

// PopCount returns the number of set bits.
func PopCount(bb uint64) int { return bits.OnesCount64(bb) }

// LSBIndex returns the index of the least significant set bit, or 64 for an empty board.
func LSBIndex(bb uint64) int { return bits.TrailingZeros64(bb) }

// MSBIndex returns the index of the most significant set bit, or -1 for an empty board.
func MSBIndex(bb uint64) int { return 63 - bits.LeadingZeros64(bb) }

// Shift helpers. North is towards row 0, South towards row 7, West towards col 0.
func shiftNorth(bb uint64) uint64 { return bb >> 8 }
func shiftSouth(bb uint64) uint64 { return bb << 8 }
func shiftEast(bb uint64) uint64  { return (bb << 1) & NotFileA }
func shiftWest(bb uint64) uint64  { return (bb >> 1) & NotFileH }

func shiftNorthEast(bb uint64) uint64 { return shiftNorth(shiftEast(bb)) }
func shiftNorthWest(bb uint64) uint64 { return shiftNorth(shiftWest(bb)) }
func shiftSouthEast(bb uint64) uint64 { return shiftSouth(shiftEast(bb)) }
func shiftSouthWest(bb uint64) uint64 { return shiftSouth(shiftWest(bb)) }

// Direction indexes for the step and ray tables.
const (
	DirNorth = iota
	DirSouth
	DirEast
	DirWest
	DirNorthEast
	DirNorthWest
	DirSouthEast
	DirSouthWest
	numDirs
)

var dirDelta = [numDirs][2]int{
	DirNorth:     {-1, 0},
	DirSouth:     {1, 0},
	DirEast:      {0, 1},
	DirWest:      {0, -1},
	DirNorthEast: {-1, 1},
	DirNorthWest: {-1, -1},
	DirSouthEast: {1, 1},
	DirSouthWest: {1, -1},
}

// step[sq][dir] is the neighbouring square in dir, or -1 off the board.
var step [NumSquares][numDirs]int

// rays[sq][dir] holds every square in dir from sq, excluding sq.
var rays [NumSquares][numDirs]uint64

// diagNeighbours[sq] unions the neighbours in the four diagonal directions.
var diagNeighbours [NumSquares]uint64

// orthoNeighbours[sq] unions the neighbours in the four orthogonal directions.
var orthoNeighbours [NumSquares]uint64

// kingZone[sq] is all eight neighbours of sq.
var kingZone [NumSquares]uint64

func init() {
	initStepTables()
}

func initStepTables() {
	for sq := 0; sq < NumSquares; sq++ {
		r, c := sq>>3, sq&7
		for d := 0; d < numDirs; d++ {
			step[sq][d] = -1
			nr, nc := r+dirDelta[d][0], c+dirDelta[d][1]
			if nr >= 0 && nr < BoardSize && nc >= 0 && nc < BoardSize {
				step[sq][d] = nr*BoardSize + nc
			}
			var ray uint64
			for nr >= 0 && nr < BoardSize && nc >= 0 && nc < BoardSize {
				ray |= uint64(1) << uint(nr*BoardSize+nc)
				nr += dirDelta[d][0]
				nc += dirDelta[d][1]
			}
			rays[sq][d] = ray
		}
		for d := 0; d < numDirs; d++ {
			if step[sq][d] < 0 {
				continue
			}
			bit := uint64(1) << uint(step[sq][d])
			kingZone[sq] |= bit
			if d >= DirNorthEast {
				diagNeighbours[sq] |= bit
			} else {
				orthoNeighbours[sq] |= bit
			}
		}
	}
}

// nearestOnRay returns the first square of mask met when walking from the origin in dir.
func nearestOnRay(mask uint64, dir int) int {
	if mask == 0 {
		return -1
	}
	switch dir {
	case DirSouth, DirEast, DirSouthEast, DirSouthWest:
		return LSBIndex(mask)
	default:
		return MSBIndex(mask)
	}
}

// KingZone returns the eight neighbours of sq.
func KingZone(sq int) uint64 {
	checkIndex(sq)
	return kingZone[sq]
}

// DiagonalNeighbours returns the diagonal neighbours of sq.
func DiagonalNeighbours(sq int) uint64 {
	checkIndex(sq)
	return diagNeighbours[sq]
}

// OrthogonalNeighbours returns the rank and file neighbours of sq.
func OrthogonalNeighbours(sq int) uint64 {
	checkIndex(sq)
	return orthoNeighbours[sq]
}

// RowMask returns every square of row r, or 0 when r is off the board.
func RowMask(r int) uint64 {
	if uint(r) >= BoardSize {
		return 0
	}
	return uint64(0xFF) << uint(r*BoardSize)
}
